package watermark

import (
	"context"
	"fmt"
)

// offset keeps the modulation factor positive for amplitudes in [-1, 1].
const offset = 2.0

func Enable(total int, windows Windows) error {
	if span := windows.Span(); total < span {
		return fmt.Errorf("total samples %d < window span %d", total, span)
	}
	return nil
}

// Embed returns a copy of src in which every window carries one bit of mark.
// Samples past the last window are copied unchanged.
func Embed(ctx context.Context, src []float64, mark []bool, windows Windows, chips []int16, depth float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if windows.Size() > len(chips) {
		return nil, fmt.Errorf("key length %d < window size %d", len(chips), windows.Size())
	}
	var (
		dst = make([]float64, len(src))
		mk  = embedMark(mark)
		p   = make([]float64, windows.Size())
	)
	copy(dst, src)
	for at := range windows.Count() {
		sign := mk.sign(at)
		for k := range p {
			p[k] = float64(chips[k]) * depth * sign
		}
		start, end := windows.bounds(at)
		data := dst[start:end:end]
		for k, amp := range data {
			data[k] = amp + p[k]*(amp+offset)
		}
	}
	return dst, nil
}

// Extract recovers one bit per window by comparing the first sample of each
// window in stego against original. Only chips[0] is consulted.
func Extract(ctx context.Context, stego, original []float64, windows Windows, chips []int16) ([]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mk := newExtractMark(windows.Count())
	if windows.IsZero() {
		return mk, nil
	}
	if len(chips) == 0 {
		return nil, fmt.Errorf("empty key")
	}
	for at := range windows.Count() {
		start, _ := windows.bounds(at)
		r := (stego[start] - original[start]) / (original[start] + offset)
		mk.decide(at, r, chips[0])
	}
	return mk, nil
}
