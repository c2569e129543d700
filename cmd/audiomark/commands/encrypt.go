package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/audiomark"
	"github.com/yyyoichi/audiomark/internal/config"
	"github.com/yyyoichi/audiomark/internal/ledger"
	"github.com/yyyoichi/audiomark/internal/plot"
	"github.com/yyyoichi/audiomark/internal/quality"
	"github.com/yyyoichi/audiomark/internal/wavio"
	"github.com/yyyoichi/audiomark/key"
	"github.com/yyyoichi/audiomark/mark"
)

type encryptFlags struct {
	container string
	stego     string
	message   string
	key       string
	plot      bool
	plotStep  int
	tolerance float64
}

func newEncryptCommand(g *globalFlags) *cobra.Command {
	var f encryptFlags
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Hide a message in a WAV container",
		Long: `Hide the message file in the container and write the marked file.

A fresh key is written to the key file. The receiver needs the original
container, the key and the printed bits-per-char and message-len values.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncrypt(cmd, g, &f)
		},
	}
	cmd.Flags().StringVarP(&f.container, "container", "c", def.Container, "cover WAV file")
	cmd.Flags().StringVarP(&f.stego, "stego", "s", def.Stego, "marked WAV file to write")
	cmd.Flags().StringVarP(&f.message, "message", "m", def.Message, "message file")
	cmd.Flags().StringVarP(&f.key, "key", "k", def.Key, "key file to write")
	cmd.Flags().BoolVar(&f.plot, "plot", def.Plot, "write container.html and stego.html amplitude charts")
	cmd.Flags().IntVar(&f.plotStep, "plot-step", def.PlotStep, "draw every n-th sample")
	cmd.Flags().Float64Var(&f.tolerance, "tolerance", def.Tolerance, "smallest difference reported as a changed sample")
	return cmd
}

func runEncrypt(cmd *cobra.Command, g *globalFlags, f *encryptFlags) error {
	ctx := cmd.Context()
	logger := slog.Default()

	w, err := g.watermark()
	if err != nil {
		return err
	}
	ecc, err := g.eccOption()
	if err != nil {
		return err
	}
	container, err := wavio.Read(f.container)
	if err != nil {
		return err
	}
	message, err := os.ReadFile(f.message)
	if err != nil {
		return err
	}

	bitsPerChar, err := audiomark.BitsPerChar(message)
	if err != nil {
		return err
	}
	m := mark.New(message, ecc)
	p := audiomark.Params{BitsPerChar: bitsPerChar, MessageLen: len(m.Payload())}
	if p.Windows() == 0 {
		return fmt.Errorf("%w: empty message", audiomark.ErrInsufficientCapacity)
	}
	n, err := audiomark.SamplesPerBit(container.Samples(), p)
	if err != nil {
		return err
	}
	gen := key.NewGenerator()
	logger.Debug("plan",
		"samples", container.Samples(),
		"channels", container.Channels,
		"windows", p.Windows(),
		"samples_per_bit", n,
		"ecc", m.ECC(),
		"seed", gen.Seed(),
	)
	k := gen.Generate(n)

	stego, err := w.Embed(ctx, container.Amplitudes, m.Payload(), p, k)
	if err != nil {
		return err
	}
	if err := wavio.Write(f.stego, container.WithAmplitudes(stego)); err != nil {
		return err
	}
	if err := writeKey(f.key, k); err != nil {
		// a stego file without its key cannot be decoded
		_ = os.Remove(f.stego)
		return err
	}

	report, err := quality.Compare(container.Amplitudes, stego, f.tolerance)
	if err != nil {
		return err
	}
	logger.Debug("quality",
		"changed", report.Changed,
		"max_abs_diff", report.MaxAbsDiff,
		"mean_abs_diff", report.MeanAbsDiff,
		"snr_db", report.SNR,
		"psnr_db", report.PSNR,
	)

	if f.plot {
		if err := plotPair(f, container.Amplitudes, stego); err != nil {
			return err
		}
	}
	if g.ledger != "" {
		if err := recordSession(cmd, g, f, k, bitsPerChar, len(message), n); err != nil {
			return err
		}
	}

	logger.Info("message hidden", "stego", f.stego, "key", f.key, "changed", report.Changed)
	fmt.Fprintf(cmd.OutOrStdout(), "bits-per-char: %d\nmessage-len: %d\n", bitsPerChar, len(message))
	return nil
}

func writeKey(path string, k key.Key) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := key.Write(file, k); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func plotPair(f *encryptFlags, container, stego []float64) error {
	dir := filepath.Dir(f.stego)
	if err := plot.AmplitudesFile(filepath.Join(dir, "container.html"), "Amplitudes of "+f.container, container, f.plotStep); err != nil {
		return err
	}
	return plot.AmplitudesFile(filepath.Join(dir, "stego.html"), "Amplitudes of "+f.stego, stego, f.plotStep)
}

func recordSession(cmd *cobra.Command, g *globalFlags, f *encryptFlags, k key.Key, bitsPerChar, messageLen, samplesPerBit int) error {
	stegoPath, err := filepath.Abs(f.stego)
	if err != nil {
		return err
	}
	db, err := ledger.Open(g.ledger)
	if err != nil {
		return err
	}
	defer db.Close()

	s := &ledger.Session{
		StegoPath:     stegoPath,
		Key:           k,
		BitsPerChar:   bitsPerChar,
		MessageLen:    messageLen,
		SamplesPerBit: samplesPerBit,
		ECC:           g.ecc,
		ECCSeed:       g.eccSeed,
	}
	if err := db.Record(cmd.Context(), s); err != nil {
		return err
	}
	slog.Debug("session recorded", "id", s.ID, "ledger", g.ledger)
	return nil
}
