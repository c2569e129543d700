package watermark

// Windows describes the partition of an amplitude sequence into equally
// sized runs of samples, one run per message bit.
type Windows struct {
	count int
	size  int
}

func NewWindows(count, samplesPerBit int) Windows {
	return Windows{count: count, size: samplesPerBit}
}

// Count returns the number of windows.
func (w Windows) Count() int {
	return w.count
}

// Size returns the number of samples in one window.
func (w Windows) Size() int {
	return w.size
}

// Span returns the number of leading samples covered by all windows.
func (w Windows) Span() int {
	return w.count * w.size
}

func (w Windows) IsZero() bool {
	return w.count == 0
}

func (w Windows) bounds(at int) (start, end int) {
	start = at * w.size
	return start, start + w.size
}
