// Package xerrors defines the reportable error taxonomy shared across the
// core: the pixel, region and detect packages and the root
// sable package construct errors through New so callers can recover the
// Kind with errors.As/Is regardless of which package raised it.
//
// Wrapping follows caire's own habit (see process.go's use of
// github.com/pkg/errors) of attaching context with Wrap rather than
// inventing a bespoke error struct per call site.
package xerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind tags a reportable error with the taxonomy from the error-handling
// design: which errors are recoverable (GPU fallback), which indicate
// programmer bugs, and which are transient external failures.
type Kind int

const (
	// Unknown is the zero Kind; Error values constructed outside this
	// package never have this Kind.
	Unknown Kind = iota
	// OutOfBounds: a pixel, rect or area coordinate fell outside image
	// bounds where that isn't tolerated (e.g. Crop's origin).
	OutOfBounds
	// InvalidDimensions: zero/negative width or height, or a buffer
	// length that doesn't match width*height*channels.
	InvalidDimensions
	// CodecError: propagated unchanged from an external decode/encode.
	CodecError
	// GpuError: raised by a registered GPU callback; non-fatal, the
	// region pipeline falls back to the CPU path for the current call.
	GpuError
	// UnsupportedOperation: an unrecognized blend mode or resize
	// algorithm, or any other enum value the core doesn't implement.
	UnsupportedOperation
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out of bounds"
	case InvalidDimensions:
		return "invalid dimensions"
	case CodecError:
		return "codec error"
	case GpuError:
		return "gpu error"
	case UnsupportedOperation:
		return "unsupported operation"
	default:
		return "unknown"
	}
}

// Error is a reportable error carrying its taxonomy Kind and a message.
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// New constructs a reportable Error of the given Kind.
func New(kind Kind, format string, args ...any) error {
	return &Error{kind: kind, err: fmt.Errorf(format, args...)}
}

// Wrap attaches kind and a message to an existing error, preserving it in
// the error chain so errors.Is/errors.Unwrap still reach the original cause.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: errors.Wrap(err, message)}
}

// KindOf recovers the taxonomy Kind of err, walking the error chain.
// Returns Unknown for errors not constructed through this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Unknown
}
