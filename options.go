package audiomark

import "fmt"

type Option func(*Watermark) error

// WithDepth overrides the modulation depth.
// Larger values make the mark easier to recover after re-quantization but
// add more audible noise. Embedding and extraction must use the same depth.
//
// The depth must be in (0, 0.5).
func WithDepth(depth float64) Option {
	return func(w *Watermark) error {
		if depth <= 0 || depth >= 0.5 {
			return fmt.Errorf("%w: depth %g out of range", ErrPrecondition, depth)
		}
		w.depth = depth
		return nil
	}
}
