// Package quality measures how far a stego signal drifts from its container
// and how much of a message survived extraction.
package quality

import (
	"errors"
	"fmt"
	"math"

	timestats "github.com/cwbudde/algo-dsp/stats/time"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yyyoichi/audiomark/internal/bitconv"
)

var ErrLengthMismatch = errors.New("signal length mismatch")

// Report summarizes the per-sample difference between two signals.
// SNR and PSNR are in decibels and are +Inf for identical signals.
type Report struct {
	Samples     int
	Changed     int
	MaxAbsDiff  float64
	MeanAbsDiff float64
	SNR         float64
	PSNR        float64
	Original    timestats.Stats
	Stego       timestats.Stats
}

// Compare reports the difference between original and stego. Samples whose
// absolute difference exceeds tolerance count as changed.
func Compare(original, stego []float64, tolerance float64) (Report, error) {
	if len(original) != len(stego) {
		return Report{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(original), len(stego))
	}
	r := Report{
		Samples:  len(original),
		Original: timestats.Calculate(original),
		Stego:    timestats.Calculate(stego),
	}
	if r.Samples == 0 {
		r.SNR, r.PSNR = math.Inf(1), math.Inf(1)
		return r, nil
	}

	diff := make([]float64, r.Samples)
	floats.SubTo(diff, stego, original)
	abs := make([]float64, r.Samples)
	for i, d := range diff {
		abs[i] = math.Abs(d)
		if abs[i] > tolerance {
			r.Changed++
		}
	}
	r.MaxAbsDiff = floats.Max(abs)
	r.MeanAbsDiff = stat.Mean(abs, nil)

	noise := timestats.RMS(diff)
	r.SNR = decibel(r.Original.RMS, noise)
	r.PSNR = decibel(1, noise)
	return r, nil
}

func decibel(signal, noise float64) float64 {
	if noise == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(signal/noise)
}

// BitAccuracy returns the fraction of bits of want that got reproduces.
// Bits missing from got count as wrong. An empty want is fully accurate.
func BitAccuracy(want, got []byte) float64 {
	w := bitconv.BytesToBools(want)
	if len(w) == 0 {
		return 1
	}
	g := bitconv.BytesToBools(got)
	var ok int
	for i, bit := range w {
		if i < len(g) && g[i] == bit {
			ok++
		}
	}
	return float64(ok) / float64(len(w))
}
