package key

import "time"

const (
	multiplier = 16807
	modulus    = 2147483647
	bias       = 0.000000000233
)

// Generator is a Park-Miller (Lehmer) sequence generator that emits
// spreading key values of +1 or -1.
//
// A Generator is not safe for concurrent use. Callers that need keys from
// several goroutines should create one Generator each.
type Generator struct {
	state int64
}

// NewGenerator returns a Generator seeded from the wall clock.
// The seed is the current Unix time in microseconds reduced modulo 100,
// so only 100 distinct sequences can ever be produced.
func NewGenerator() *Generator {
	return newGeneratorAt(time.Now)
}

// NewGeneratorWithSeed returns a Generator starting from the given state.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{state: seed}
}

func newGeneratorAt(now func() time.Time) *Generator {
	return &Generator{state: now().UnixMicro() % 100}
}

// Seed returns the current internal state.
func (g *Generator) Seed() int64 {
	return g.state
}

// Next advances the generator by one step and returns +1 or -1.
func (g *Generator) Next() int16 {
	g.state = (g.state * multiplier) % modulus
	v := float64(g.state)/modulus + bias
	if v > 0.5 {
		return 1
	}
	return -1
}

// Generate returns the next count values of the sequence.
// Repeated calls continue where the previous call stopped.
func (g *Generator) Generate(count int) Key {
	k := make(Key, 0, max(count, 0))
	for range count {
		k = append(k, g.Next())
	}
	return k
}
