package audiomark

import (
	"errors"

	"github.com/yyyoichi/audiomark/key"
)

// ErrorKind classifies the errors returned by this module.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidMessageEncoding
	KindInsufficientCapacity
	KindKeyParse
	KindPrecondition
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidMessageEncoding:
		return "invalid message encoding"
	case KindInsufficientCapacity:
		return "insufficient capacity"
	case KindKeyParse:
		return "key parse"
	case KindPrecondition:
		return "precondition violation"
	}
	return "unknown"
}

// Kind reports which kind err belongs to.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidMessageEncoding):
		return KindInvalidMessageEncoding
	case errors.Is(err, key.ErrParse):
		return KindKeyParse
	case errors.Is(err, ErrPrecondition):
		return KindPrecondition
	case errors.Is(err, ErrInsufficientCapacity):
		return KindInsufficientCapacity
	}
	return KindUnknown
}
