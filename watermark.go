package audiomark

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/yyyoichi/audiomark/internal/bitconv"
	"github.com/yyyoichi/audiomark/internal/watermark"
	"github.com/yyyoichi/audiomark/key"
)

// DefaultDepth is the modulation depth applied to every message bit.
const DefaultDepth = 0.0005

var (
	ErrInvalidMessageEncoding = errors.New("message is not valid UTF-8")
	ErrInsufficientCapacity   = errors.New("not enough samples to hide the message")
	ErrPrecondition           = errors.New("precondition violated")
)

// Embed hides message in container with the specified options.
// This is a convenience function that creates a Watermark instance and calls its Embed method.
func Embed(ctx context.Context, container []float64, message []byte, p Params, k key.Key, opts ...Option) ([]float64, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Embed(ctx, container, message, p, k)
}

// Extract recovers a message from stego with the specified options.
// This is a convenience function that creates a Watermark instance and calls its Extract method.
func Extract(ctx context.Context, stego, original []float64, p Params, k key.Key, opts ...Option) ([]byte, error) {
	w, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return w.Extract(ctx, stego, original, p, k)
}

type Watermark struct {
	depth float64
}

// New initializes a watermark processing structure.
// The modulation depth can be optionally specified; it defaults to DefaultDepth.
func New(opts ...Option) (*Watermark, error) {
	w := new(Watermark)
	if err := w.init(opts...); err != nil {
		return nil, err
	}
	return w, nil
}

// Depth returns the modulation depth.
func (w *Watermark) Depth() float64 {
	return w.depth
}

// Embed hides message in a copy of container.
//
// Process:
//  1. Splits the first BitsPerChar*MessageLen*len(k) samples into one window per bit.
//  2. Reads the message bits MSB-first, eight per byte.
//  3. Scales each sample of a window by 1 ± depth*k[i], the sign following the bit.
//
// The container is left untouched. An empty message yields an exact copy.
// The window size is the samples per bit computed from len(container) and p,
// the same value the decoder derives. k must be at least that long; extra
// elements are ignored.
func (w *Watermark) Embed(ctx context.Context, container []float64, message []byte, p Params, k key.Key) ([]float64, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.MessageLen != len(message) {
		return nil, fmt.Errorf("%w: message length %d != %d", ErrPrecondition, len(message), p.MessageLen)
	}
	if p.Windows() == 0 {
		return slices.Clone(container), nil
	}
	n, err := SamplesPerBit(len(container), p)
	if err != nil {
		return nil, err
	}
	if len(k) < n {
		return nil, fmt.Errorf("%w: key length %d < samples per bit %d", ErrPrecondition, len(k), n)
	}
	windows := watermark.NewWindows(p.Windows(), n)
	if err := watermark.Enable(len(container), windows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	return watermark.Embed(ctx, container, bitconv.BytesToBools(message), windows, k, w.depth)
}

// Extract recovers BitsPerChar*MessageLen bits from stego and packs them
// MSB-first into whole bytes.
//
// stego and original must have the same length. Only the first sample of every
// window and the first element of k take part in the decision.
func (w *Watermark) Extract(ctx context.Context, stego, original []float64, p Params, k key.Key) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(stego) != len(original) {
		return nil, fmt.Errorf("%w: stego length %d != original length %d", ErrPrecondition, len(stego), len(original))
	}
	if p.Windows() == 0 {
		return []byte{}, nil
	}
	n, err := SamplesPerBit(len(original), p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	if len(k) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrPrecondition)
	}
	bits, err := watermark.Extract(ctx, stego, original, watermark.NewWindows(p.Windows(), n), k)
	if err != nil {
		return nil, err
	}
	return bitconv.BoolsToWholeBytes(bits), nil
}

func (w *Watermark) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return err
		}
	}
	if w.depth == 0 {
		w.depth = DefaultDepth
	}
	return nil
}

// Batch runs repeated watermark operations against one original sequence.
type Batch struct {
	original []float64
}

// NewBatch copies original so later changes by the caller do not affect the batch.
func NewBatch(original []float64) *Batch {
	return &Batch{original: slices.Clone(original)}
}

// Len returns the number of cached samples.
func (b *Batch) Len() int {
	return len(b.original)
}

// Plan computes the parameters for hiding message in the cached sequence.
func (b *Batch) Plan(message []byte) (Params, int, error) {
	return Plan(len(b.original), message)
}

// Embed hides message in a copy of the cached sequence with specified options.
func (b *Batch) Embed(ctx context.Context, message []byte, p Params, k key.Key, opts ...Option) ([]float64, error) {
	return Embed(ctx, b.original, message, p, k, opts...)
}

// Extract recovers a message from stego against the cached sequence with specified options.
func (b *Batch) Extract(ctx context.Context, stego []float64, p Params, k key.Key, opts ...Option) ([]byte, error) {
	return Extract(ctx, stego, b.original, p, k, opts...)
}
