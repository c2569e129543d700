package audiomark

import (
	"fmt"
	"unicode/utf8"
)

// Params carries the chunking parameters that both sides must agree on.
// They are not stored in the stego sequence and travel out-of-band.
type Params struct {
	// BitsPerChar is the bit width of the widest character in the message.
	BitsPerChar int
	// MessageLen is the message length in bytes.
	MessageLen int
}

// Windows returns the number of windows, one per message bit.
func (p Params) Windows() int {
	return p.BitsPerChar * p.MessageLen
}

func (p Params) validate() error {
	if p.BitsPerChar < 0 || p.MessageLen < 0 {
		return fmt.Errorf("%w: negative params %+v", ErrPrecondition, p)
	}
	return nil
}

// BitsPerChar returns eight times the widest UTF-8 encoding of any rune in message.
// An empty message has zero bits per char.
func BitsPerChar(message []byte) (int, error) {
	if !utf8.Valid(message) {
		return 0, ErrInvalidMessageEncoding
	}
	var widest int
	for len(message) > 0 {
		_, size := utf8.DecodeRune(message)
		widest = max(widest, size)
		message = message[size:]
	}
	return widest * 8, nil
}

// SamplesPerBit returns floor(total / windows), the number of samples that
// carry one message bit.
func SamplesPerBit(total int, p Params) (int, error) {
	if err := p.validate(); err != nil {
		return 0, err
	}
	windows := p.Windows()
	if windows == 0 || total < windows {
		return 0, fmt.Errorf("%w: %d samples for %d bits", ErrInsufficientCapacity, total, windows)
	}
	return total / windows, nil
}

// Plan computes the parameters and samples per bit for hiding message in a
// sequence of total samples.
func Plan(total int, message []byte) (Params, int, error) {
	n, err := BitsPerChar(message)
	if err != nil {
		return Params{}, 0, err
	}
	p := Params{BitsPerChar: n, MessageLen: len(message)}
	spb, err := SamplesPerBit(total, p)
	if err != nil {
		return p, 0, err
	}
	return p, spb, nil
}
