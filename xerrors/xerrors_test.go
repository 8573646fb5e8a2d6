package xerrors

import (
	"errors"
	"testing"
)

func TestKindOfRecoversTheConstructedKind(t *testing.T) {
	err := New(InvalidDimensions, "width %d is not positive", -1)
	if got := KindOf(err); got != InvalidDimensions {
		t.Errorf("KindOf = %v, want %v", got, InvalidDimensions)
	}
}

func TestKindOfUnrecognizedErrorIsUnknown(t *testing.T) {
	if got := KindOf(errors.New("plain error")); got != Unknown {
		t.Errorf("KindOf(plain error) = %v, want Unknown", got)
	}
}

func TestWrapPreservesTheUnderlyingCauseInTheChain(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(CodecError, cause, "failed to encode")

	if KindOf(wrapped) != CodecError {
		t.Errorf("KindOf(wrapped) = %v, want CodecError", KindOf(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to still reach the wrapped cause")
	}
}

func TestWrapOfNilIsNil(t *testing.T) {
	if Wrap(GpuError, nil, "shouldn't happen") != nil {
		t.Error("expected Wrap(nil) to return nil")
	}
}

func TestKindStringNamesEveryTaxonomyEntry(t *testing.T) {
	cases := map[Kind]string{
		Unknown:              "unknown",
		OutOfBounds:          "out of bounds",
		InvalidDimensions:    "invalid dimensions",
		CodecError:           "codec error",
		GpuError:             "gpu error",
		UnsupportedOperation: "unsupported operation",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
