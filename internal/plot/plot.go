// Package plot renders amplitude charts as standalone HTML pages.
package plot

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Amplitudes writes a line chart of amps to w. Only every step-th sample is
// drawn; a step below 1 draws all of them.
func Amplitudes(w io.Writer, title string, amps []float64, step int) error {
	step = max(step, 1)
	var xAxisData []string
	var data []opts.LineData
	for i := 0; i < len(amps); i += step {
		xAxisData = append(xAxisData, strconv.Itoa(i))
		data = append(data, opts.LineData{Value: amps[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d samples, every %d drawn", len(amps), step),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Sample",
			Type: "category",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Amplitude",
			Type: "value",
			Min:  -1,
			Max:  1,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: 0,
			End:   100,
		}),
	)
	line.SetXAxis(xAxisData)
	line.AddSeries("Amplitude", data,
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)
	return line.Render(w)
}

// AmplitudesFile renders the chart into the file at path.
func AmplitudesFile(path, title string, amps []float64, step int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Amplitudes(f, title, amps, step); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
