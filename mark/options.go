package mark

import (
	"fmt"
)

var (
	DefaultShuffleSeed int64 = 1234567890
)

const (
	NameNone  = "none"
	NameGolay = "golay"
)

type (
	// Option selects how the message is turned into a payload.
	Option func(*options)

	options struct {
		c codec
	}

	// codec maps a message to the payload bytes and back.
	codec interface {
		encode(message []byte) []byte
		// decode expects len(payload) >= payloadLen(messageLen).
		decode(payload []byte, messageLen int) []byte
		payloadLen(messageLen int) int
		name() string
	}
)

// WithoutECC is an option that does not use error correction codes.
// The payload is the message as-is.
func WithoutECC() Option {
	return func(o *options) {
		o.c = plain{}
	}
}

// WithGolay is an option that uses Golay code for error correction.
// seed is the seed value for shuffling the encoded bits, which spreads a burst
// of damaged windows over many code words.
func WithGolay(seed int64) Option {
	return func(o *options) {
		o.c = golayCodec(seed)
	}
}

// ByName returns the option registered under name.
// seed is used only by algorithms that shuffle.
func ByName(name string, seed int64) (Option, error) {
	switch name {
	case "", NameNone:
		return WithoutECC(), nil
	case NameGolay:
		return WithGolay(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownECC, name)
}

func newCodec(opts ...Option) codec {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.c == nil {
		return plain{}
	}
	return o.c
}
