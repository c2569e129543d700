package key

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator(t *testing.T) {
	t.Run("known sequence", func(t *testing.T) {
		// states: 16807, 282475249, 1622650073, 984943658,
		// 1144108930, 470211272, 101027544, 1457850878
		g := NewGeneratorWithSeed(1)
		assert.Equal(t, Key{-1, -1, 1, -1, 1, -1, -1, 1}, g.Generate(8))
		assert.Equal(t, int64(1457850878), g.Seed())
	})

	t.Run("same seed same sequence", func(t *testing.T) {
		for seed := range int64(100) {
			a := NewGeneratorWithSeed(seed).Generate(64)
			b := NewGeneratorWithSeed(seed).Generate(64)
			require.Equal(t, a, b, "seed %d", seed)
		}
	})

	t.Run("continues across calls", func(t *testing.T) {
		test := []struct{ a, b int }{
			{0, 10}, {1, 1}, {3, 17}, {32, 0}, {100, 250},
		}
		for _, tt := range test {
			whole := NewGeneratorWithSeed(42).Generate(tt.a + tt.b)
			g := NewGeneratorWithSeed(42)
			first := g.Generate(tt.a)
			second := g.Generate(tt.b)
			assert.Equal(t, whole[:tt.a], first)
			assert.Equal(t, whole[tt.a:], second)
		}
	})

	t.Run("values are unit", func(t *testing.T) {
		for seed := range int64(100) {
			k := NewGeneratorWithSeed(seed).Generate(257)
			require.Len(t, k, 257)
			assert.True(t, k.Valid(), "seed %d", seed)
		}
	})

	t.Run("zero seed is constant", func(t *testing.T) {
		k := NewGeneratorWithSeed(0).Generate(5)
		assert.Equal(t, Key{-1, -1, -1, -1, -1}, k)
	})

	t.Run("clock seed", func(t *testing.T) {
		at := func(us int64) func() time.Time {
			return func() time.Time { return time.UnixMicro(us) }
		}
		assert.Equal(t, int64(42), newGeneratorAt(at(1_700_000_000_000_042)).Seed())
		assert.Equal(t, int64(0), newGeneratorAt(at(1_700_000_000_000_100)).Seed())
		assert.Less(t, NewGenerator().Seed(), int64(100))
	})

	t.Run("non-positive count", func(t *testing.T) {
		assert.Empty(t, NewGeneratorWithSeed(1).Generate(0))
		assert.Empty(t, NewGeneratorWithSeed(1).Generate(-3))
	})
}

func TestCodec(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		assert.Equal(t, "1,-1,2,-2,3", Format(Key{1, -1, 2, -2, 3}))
		assert.Equal(t, "-1", Key{-1}.String())
		assert.Equal(t, "", Format(nil))

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, Key{1, 1, -1}))
		assert.Equal(t, "1,1,-1", buf.String())
	})

	t.Run("parse", func(t *testing.T) {
		test := []struct {
			name string
			src  string
			exp  Key
		}{
			{"single line", "1,-1,1", Key{1, -1, 1}},
			{"trailing newline", "1,-1\n", Key{1, -1}},
			{"crlf", "-1,-1\r\n", Key{-1, -1}},
			{"first line only", "1,1\n9,9,9\n", Key{1, 1}},
			{"magnitude not checked", "1,-1,2,-2,3", Key{1, -1, 2, -2, 3}},
			{"plus sign", "+1,-1", Key{1, -1}},
			{"empty", "", Key{}},
			{"blank first line", "\n1,-1", Key{}},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				k, err := Parse(tt.src)
				require.NoError(t, err)
				assert.Equal(t, tt.exp, k)
			})
		}
	})

	t.Run("parse errors", func(t *testing.T) {
		for _, src := range []string{
			"1,a",
			"1,,1",
			"1, -1",
			"1,-1,",
			"0.5",
			"40000",
		} {
			_, err := Parse(src)
			assert.ErrorIs(t, err, ErrParse, src)
		}
	})

	t.Run("read", func(t *testing.T) {
		k, err := Read(strings.NewReader("1,-1,-1\nignored"))
		require.NoError(t, err)
		assert.Equal(t, Key{1, -1, -1}, k)

		_, err = Read(strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("round trip", func(t *testing.T) {
		k := NewGeneratorWithSeed(77).Generate(1000)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, k))
		got, err := Read(&buf)
		require.NoError(t, err)
		assert.Equal(t, k, got)
	})
}
