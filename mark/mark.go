// Package mark frames a message into the payload that is actually hidden in
// the audio, optionally protected by an error correcting code.
package mark

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownECC   = errors.New("unknown error correction")
	ErrShortPayload = errors.New("payload too short")
)

// Mark holds a message and its encoded payload.
type Mark struct {
	message []byte
	payload []byte
	c       codec
}

// New encodes message into a payload.
// By default the payload equals the message; pass WithGolay to add ECC.
func New(message []byte, opts ...Option) *Mark {
	c := newCodec(opts...)
	return &Mark{
		message: message,
		payload: c.encode(message),
		c:       c,
	}
}

// Message returns the original message.
func (m *Mark) Message() []byte {
	return m.message
}

// Payload returns the bytes to embed.
func (m *Mark) Payload() []byte {
	return m.payload
}

// ECC returns the name of the error correction in use.
func (m *Mark) ECC() string {
	return m.c.name()
}

// PayloadLen returns the payload length in bytes for a message of messageLen bytes.
func PayloadLen(messageLen int, opts ...Option) int {
	return newCodec(opts...).payloadLen(messageLen)
}

// Decode restores a message of messageLen bytes from an extracted payload.
// Bytes past the expected payload length are ignored.
func Decode(payload []byte, messageLen int, opts ...Option) ([]byte, error) {
	if messageLen <= 0 {
		return []byte{}, nil
	}
	c := newCodec(opts...)
	if n := c.payloadLen(messageLen); len(payload) < n {
		return nil, fmt.Errorf("%w: %d bytes < %d bytes", ErrShortPayload, len(payload), n)
	}
	return c.decode(payload, messageLen), nil
}
