package commands

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/audiomark"
	"github.com/yyyoichi/audiomark/internal/config"
	"github.com/yyyoichi/audiomark/mark"
)

// flags shared by every subcommand
type globalFlags struct {
	config  string
	verbose bool
	depth   float64
	ecc     string
	eccSeed int64
	ledger  string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var g globalFlags
	def := config.Default()

	rootCmd := &cobra.Command{
		Use:   "audiomark",
		Short: "Spread-spectrum watermarking of WAV audio",
		Long: `audiomark hides a UTF-8 message in the samples of a WAV file.

Every message bit is spread over a window of samples with a pseudo-random
key. Extraction compares the marked file against the original, so the
original, the key and the message parameters must travel to the receiver.

Examples:
  # Create a test tone
  audiomark generate-wav -d 5 --channels 1 -n container.wav

  # Hide message.txt and write key.csv
  audiomark encrypt -c container.wav -m message.txt -s stegacontainer.wav

  # Recover the message
  audiomark decrypt -c container.wav -s stegacontainer.wav -k key.csv -b 8 -l 5
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel := slog.LevelInfo
			if g.verbose {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			})))

			cfg, err := config.Load(g.config)
			if err != nil {
				return err
			}
			return applyConfig(cmd, cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.config, "config", "", "YAML file overriding flag defaults")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Float64Var(&g.depth, "depth", def.Depth, "modulation depth")
	rootCmd.PersistentFlags().StringVar(&g.ecc, "ecc", def.ECC, "error correction (none, golay)")
	rootCmd.PersistentFlags().Int64Var(&g.eccSeed, "ecc-seed", def.ECCSeed, "bit shuffle seed of the error correction")
	rootCmd.PersistentFlags().StringVar(&g.ledger, "ledger", def.Ledger, "session database recording encrypt parameters")

	rootCmd.AddCommand(newEncryptCommand(&g))
	rootCmd.AddCommand(newDecryptCommand(&g))
	rootCmd.AddCommand(newGenerateCommand())
	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch audiomark.Kind(err) {
	case audiomark.KindInvalidMessageEncoding:
		return 2
	case audiomark.KindInsufficientCapacity:
		return 3
	case audiomark.KindKeyParse:
		return 4
	case audiomark.KindPrecondition:
		return 5
	}
	return 1
}

// applyConfig copies configured values into flags left unset on the command line.
func applyConfig(cmd *cobra.Command, cfg *config.Config) error {
	values := map[string]string{
		"container": cfg.Container,
		"stego":     cfg.Stego,
		"message":   cfg.Message,
		"key":       cfg.Key,
		"ledger":    cfg.Ledger,
		"depth":     strconv.FormatFloat(cfg.Depth, 'g', -1, 64),
		"ecc":       cfg.ECC,
		"ecc-seed":  strconv.FormatInt(cfg.ECCSeed, 10),
		"plot":      strconv.FormatBool(cfg.Plot),
		"plot-step": strconv.Itoa(cfg.PlotStep),
		"tolerance": strconv.FormatFloat(cfg.Tolerance, 'g', -1, 64),
	}
	for name, value := range values {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return err
		}
	}
	return nil
}

func (g *globalFlags) eccOption() (mark.Option, error) {
	return mark.ByName(g.ecc, g.eccSeed)
}

func (g *globalFlags) watermark() (*audiomark.Watermark, error) {
	return audiomark.New(audiomark.WithDepth(g.depth))
}
