package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type files struct {
	dir, container, stego, message, key, out string
}

func setup(t *testing.T, channels string, message []byte) files {
	t.Helper()
	dir := t.TempDir()
	f := files{
		dir:       dir,
		container: filepath.Join(dir, "container.wav"),
		stego:     filepath.Join(dir, "stego.wav"),
		message:   filepath.Join(dir, "message.txt"),
		key:       filepath.Join(dir, "key.csv"),
		out:       filepath.Join(dir, "out.txt"),
	}
	_, err := run(t, "generate-wav", "-d", "1", "--channels", channels, "-r", "8000", "-n", f.container)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(f.message, message, 0644))
	return f
}

func TestRoundTrip(t *testing.T) {
	test := []struct {
		name     string
		channels string
		message  string
		bits     string
		extra    []string
	}{
		{"ascii mono", "1", "Hi", "8", nil},
		{"cyrillic stereo", "2", "Привет", "16", nil},
		{"golay", "1", "Hello", "8", []string{"--ecc", "golay", "--ecc-seed", "42"}},
		{"deeper", "1", "ok", "8", []string{"--depth", "0.01"}},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, tt.channels, []byte(tt.message))

			args := append([]string{"encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key}, tt.extra...)
			out, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "bits-per-char: "+tt.bits)
			assert.FileExists(t, f.stego)
			assert.FileExists(t, f.key)

			args = append([]string{"decrypt", "-c", f.container, "-s", f.stego, "-k", f.key,
				"-b", tt.bits, "-l", strconv.Itoa(len(tt.message)), "-m", f.out}, tt.extra...)
			_, err = run(t, args...)
			require.NoError(t, err)

			got, err := os.ReadFile(f.out)
			require.NoError(t, err)
			assert.Equal(t, tt.message, string(got))
		})
	}
}

func TestLedger(t *testing.T) {
	f := setup(t, "1", []byte("secret"))
	db := filepath.Join(f.dir, "sessions.db")

	_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key,
		"--ecc", "golay", "--ledger", db)
	require.NoError(t, err)

	// parameters, key and ecc come from the ledger
	_, err = run(t, "decrypt", "-c", f.container, "-s", f.stego, "-m", f.out,
		"-k", filepath.Join(f.dir, "missing.csv"), "--ledger", db)
	assert.Error(t, err, "explicit key path wins over the ledger")

	_, err = run(t, "decrypt", "-c", f.container, "-s", f.stego, "-m", f.out, "--ledger", db)
	require.NoError(t, err)
	got, err := os.ReadFile(f.out)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(got))

	_, err = run(t, "decrypt", "-c", f.container, "-s", f.container, "-m", f.out, "--ledger", db)
	assert.Equal(t, 5, ExitCode(err), "no session for that file")
}

func TestConfig(t *testing.T) {
	f := setup(t, "1", []byte("cfg"))
	cfg := filepath.Join(f.dir, "audiomark.yaml")
	data := "container: " + f.container + "\nstego: " + f.stego + "\nkey: " + f.key +
		"\nmessage: " + f.message + "\nplot: true\n"
	require.NoError(t, os.WriteFile(cfg, []byte(data), 0644))

	_, err := run(t, "encrypt", "--config", cfg)
	require.NoError(t, err)
	assert.FileExists(t, f.stego)
	assert.FileExists(t, filepath.Join(f.dir, "container.html"))
	assert.FileExists(t, filepath.Join(f.dir, "stego.html"))

	_, err = run(t, "decrypt", "--config", cfg, "-b", "8", "-l", "3", "-m", f.out)
	require.NoError(t, err)
	got, err := os.ReadFile(f.out)
	require.NoError(t, err)
	assert.Equal(t, "cfg", string(got))
}

func TestErrors(t *testing.T) {
	t.Run("insufficient capacity", func(t *testing.T) {
		f := setup(t, "1", bytes.Repeat([]byte("a"), 1001))
		_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key)
		assert.Equal(t, 3, ExitCode(err))
		assert.NoFileExists(t, f.stego)
	})

	t.Run("empty message", func(t *testing.T) {
		f := setup(t, "1", nil)
		_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key)
		assert.Equal(t, 3, ExitCode(err))
		assert.NoFileExists(t, f.stego)
		assert.NoFileExists(t, f.key)
	})

	t.Run("unwritable outputs leave nothing behind", func(t *testing.T) {
		test := []struct {
			name       string
			stego, key func(f files) string
		}{
			{
				name:  "stego",
				stego: func(f files) string { return filepath.Join(f.dir, "missing", "stego.wav") },
				key:   func(f files) string { return f.key },
			},
			{
				name:  "key",
				stego: func(f files) string { return f.stego },
				key:   func(f files) string { return filepath.Join(f.dir, "missing", "key.csv") },
			},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				f := setup(t, "1", []byte("x"))
				stego, key := tt.stego(f), tt.key(f)
				_, err := run(t, "encrypt", "-c", f.container, "-s", stego, "-m", f.message, "-k", key)
				assert.Error(t, err)
				assert.NoFileExists(t, stego)
				assert.NoFileExists(t, key)
			})
		}
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		f := setup(t, "1", []byte{0xff, 0xfe})
		_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key)
		assert.Equal(t, 2, ExitCode(err))
	})

	t.Run("bad key", func(t *testing.T) {
		f := setup(t, "1", []byte("x"))
		_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(f.key, []byte("1,x,1"), 0644))
		_, err = run(t, "decrypt", "-c", f.container, "-s", f.stego, "-k", f.key, "-b", "8", "-l", "1", "-m", f.out)
		assert.Equal(t, 4, ExitCode(err))
	})

	t.Run("missing parameters", func(t *testing.T) {
		f := setup(t, "1", []byte("x"))
		_, err := run(t, "decrypt", "-c", f.container, "-s", f.container, "-k", f.key, "-b", "8")
		assert.Equal(t, 5, ExitCode(err))
	})

	t.Run("unknown ecc", func(t *testing.T) {
		f := setup(t, "1", []byte("x"))
		_, err := run(t, "encrypt", "-c", f.container, "-s", f.stego, "-m", f.message, "-k", f.key, "--ecc", "rs")
		assert.Equal(t, 1, ExitCode(err))
	})

	t.Run("generate requires flags", func(t *testing.T) {
		_, err := run(t, "generate-wav", "-d", "1")
		assert.Error(t, err)
	})

	assert.Equal(t, 0, ExitCode(nil))
}
