package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yyyoichi/audiomark"
	"github.com/yyyoichi/audiomark/internal/config"
	"github.com/yyyoichi/audiomark/internal/ledger"
	"github.com/yyyoichi/audiomark/internal/wavio"
	"github.com/yyyoichi/audiomark/key"
	"github.com/yyyoichi/audiomark/mark"
)

type decryptFlags struct {
	container   string
	stego       string
	message     string
	key         string
	bitsPerChar int
	messageLen  int
}

func newDecryptCommand(g *globalFlags) *cobra.Command {
	var f decryptFlags
	def := config.Default()
	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Recover a message from a marked WAV file",
		Long: `Recover the message hidden in the marked file and write it to the message file.

The original container, the key, bits-per-char and message-len must match
the values used by encrypt. With --ledger, missing values are taken from
the latest session recorded for the marked file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecrypt(cmd, g, &f)
		},
	}
	cmd.Flags().StringVarP(&f.container, "container", "c", def.Container, "original WAV file")
	cmd.Flags().StringVarP(&f.stego, "stego", "s", def.Stego, "marked WAV file")
	cmd.Flags().StringVarP(&f.message, "message", "m", def.Message, "file to write the message to")
	cmd.Flags().StringVarP(&f.key, "key", "k", def.Key, "key file")
	cmd.Flags().IntVarP(&f.bitsPerChar, "bits-per-char", "b", 0, "bits per character used by encrypt")
	cmd.Flags().IntVarP(&f.messageLen, "message-len", "l", 0, "message length in bytes")
	return cmd
}

func runDecrypt(cmd *cobra.Command, g *globalFlags, f *decryptFlags) error {
	ctx := cmd.Context()
	logger := slog.Default()

	var k key.Key
	if g.ledger != "" {
		var err error
		k, err = fillFromLedger(cmd, g, f)
		if err != nil {
			return err
		}
	}
	if g.ledger == "" && (!cmd.Flags().Changed("bits-per-char") || !cmd.Flags().Changed("message-len")) {
		return fmt.Errorf("%w: --bits-per-char and --message-len are required", audiomark.ErrPrecondition)
	}
	if k == nil {
		var err error
		k, err = readKey(f.key)
		if err != nil {
			return err
		}
	}

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
	stego, err := wavio.Read(f.stego)
	if err != nil {
		return err
	}

	p := audiomark.Params{BitsPerChar: f.bitsPerChar, MessageLen: mark.PayloadLen(f.messageLen, ecc)}
	logger.Debug("plan",
		"samples", container.Samples(),
		"windows", p.Windows(),
		"key_len", len(k),
		"ecc", g.ecc,
	)
	payload, err := w.Extract(ctx, stego.Amplitudes, container.Amplitudes, p, k)
	if err != nil {
		return err
	}
	message, err := mark.Decode(payload, f.messageLen, ecc)
	if err != nil {
		return fmt.Errorf("%w: %w", audiomark.ErrPrecondition, err)
	}
	if err := os.WriteFile(f.message, message, 0644); err != nil {
		return err
	}
	logger.Info("message recovered", "message", f.message, "bytes", len(message))
	return nil
}

// fillFromLedger copies the recorded session into every value not given on
// the command line and returns the recorded key unless --key was given.
func fillFromLedger(cmd *cobra.Command, g *globalFlags, f *decryptFlags) (key.Key, error) {
	stegoPath, err := filepath.Abs(f.stego)
	if err != nil {
		return nil, err
	}
	db, err := ledger.Open(g.ledger)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	s, err := db.Latest(cmd.Context(), stegoPath)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", audiomark.ErrPrecondition, err)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("session found", "id", s.ID, "created", s.CreatedAt)

	flags := cmd.Flags()
	if !flags.Changed("bits-per-char") {
		f.bitsPerChar = s.BitsPerChar
	}
	if !flags.Changed("message-len") {
		f.messageLen = s.MessageLen
	}
	if !flags.Changed("ecc") {
		g.ecc = s.ECC
	}
	if !flags.Changed("ecc-seed") {
		g.eccSeed = s.ECCSeed
	}
	if flags.Changed("key") {
		return nil, nil
	}
	return s.Key, nil
}

func readKey(path string) (key.Key, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return key.Read(file)
}
