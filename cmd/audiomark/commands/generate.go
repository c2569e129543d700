package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/audiomark/internal/wavio"
)

type generateFlags struct {
	duration   float64
	channels   int
	sampleRate int
	name       string
}

func newGenerateCommand() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate-wav",
		Short: "Write a 440 Hz test tone",
		Long:  `Write a 16-bit full-scale 440 Hz sine WAV file to use as a container.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wavio.GenerateSine(f.name, f.duration, f.channels, f.sampleRate); err != nil {
				return err
			}
			slog.Debug("tone written", "duration", f.duration, "channels", f.channels, "sample_rate", f.sampleRate)
			fmt.Fprintf(cmd.OutOrStdout(), "WAV file written to %s\n", f.name)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&f.duration, "duration", "d", 0, "length in seconds")
	cmd.Flags().IntVar(&f.channels, "channels", 0, "number of channels (1 mono, 2 stereo)")
	cmd.Flags().IntVarP(&f.sampleRate, "sample-rate", "r", 44100, "sample rate in Hz")
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "file to write")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("channels")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
