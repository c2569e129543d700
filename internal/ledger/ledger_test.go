package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yyyoichi/audiomark/key"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestRecordLatest(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := &Session{
		StegoPath:     "/tmp/stego.wav",
		Key:           key.Key{1, -1, 1},
		BitsPerChar:   8,
		MessageLen:    5,
		SamplesPerBit: 3,
		ECC:           "none",
		CreatedAt:     base,
	}
	require.NoError(t, d.Record(ctx, first))
	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err)

	got, err := d.Latest(ctx, "/tmp/stego.wav")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, key.Key{1, -1, 1}, got.Key)
	assert.Equal(t, 8, got.BitsPerChar)
	assert.Equal(t, 5, got.MessageLen)
	assert.Equal(t, 3, got.SamplesPerBit)
	assert.Equal(t, "none", got.ECC)
	assert.True(t, base.Equal(got.CreatedAt))

	second := &Session{
		StegoPath: "/tmp/stego.wav",
		Key:       key.Key{-1},
		ECC:       "golay",
		ECCSeed:   99,
		CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, d.Record(ctx, second))
	other := &Session{StegoPath: "/tmp/other.wav", Key: key.Key{1}, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, d.Record(ctx, other))

	got, err = d.Latest(ctx, "/tmp/stego.wav")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "golay", got.ECC)
	assert.Equal(t, int64(99), got.ECCSeed)
}

func TestRecordDefaults(t *testing.T) {
	ctx := context.Background()
	d := openTest(t)
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	d.now = func() time.Time { return at }

	s := &Session{StegoPath: "a.wav", Key: key.Key{}}
	require.NoError(t, d.Record(ctx, s))
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, at, s.CreatedAt)

	got, err := d.Latest(ctx, "a.wav")
	require.NoError(t, err)
	assert.Empty(t, got.Key)

	assert.Error(t, d.Record(ctx, &Session{ID: s.ID, StegoPath: "a.wav"}), "duplicate id")
}

func TestLatestNotFound(t *testing.T) {
	d := openTest(t)
	_, err := d.Latest(context.Background(), "nothing.wav")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")
	d, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, d.Record(ctx, &Session{StegoPath: "s.wav", Key: key.Key{1, 1}}))
	require.NoError(t, d.Close())

	d, err = Open(path)
	require.NoError(t, err)
	defer d.Close()
	got, err := d.Latest(ctx, "s.wav")
	require.NoError(t, err)
	assert.Equal(t, key.Key{1, 1}, got.Key)
}
