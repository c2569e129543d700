package watermark

type embedMark []bool

// sign returns +1 for a set bit and -1 for a cleared bit.
// Positions past the end of the mark count as set.
func (m embedMark) sign(at int) float64 {
	if at < len(m) && !m[at] {
		return -1
	}
	return 1
}

type extractMark []bool

func newExtractMark(markLen int) extractMark {
	return make(extractMark, markLen)
}

// decide stores the bit for a residual at the window start.
func (m extractMark) decide(at int, residual float64, chip int16) {
	m[at] = (residual > 0 && chip > 0) || (residual < 0 && chip < 0)
}
