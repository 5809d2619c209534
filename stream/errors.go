package stream

import (
	"errors"
	"fmt"
)

// Kind classifies a stream operation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindPermissionDenied
	KindInUse
	KindAlreadyExists
	KindNotSupported
	KindPathTooLong
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindInUse:
		return "in use"
	case KindAlreadyExists:
		return "already exists"
	case KindNotSupported:
		return "not supported"
	case KindPathTooLong:
		return "path too long"
	default:
		return "unknown error"
	}
}

// Error is a typed stream operation failure carrying the failed operation
// and the offending path or stream address.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind carried by err, or KindUnknown for errors that
// did not originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
