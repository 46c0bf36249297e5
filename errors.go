package png

import (
	"fmt"

	"github.com/jmgilman/go/errors"
)

// FormatErrorKind identifies why a chunk type was rejected.
type FormatErrorKind string

const (
	// KindNonASCIIByte indicates raw-byte construction received a byte above 127.
	KindNonASCIIByte FormatErrorKind = "non-ASCII byte in chunk type"

	// KindWrongLength indicates the input was not exactly four bytes long.
	KindWrongLength FormatErrorKind = "wrong length"

	// KindInvalidCharacter indicates text construction received a byte
	// outside A-Z and a-z.
	KindInvalidCharacter FormatErrorKind = "invalid character"
)

// Sentinels for use with errors.Is. Matching is by kind only.
var (
	ErrNonASCIIByte     = &FormatError{Kind: KindNonASCIIByte, Position: -1}
	ErrWrongLength      = &FormatError{Kind: KindWrongLength, Position: -1}
	ErrInvalidCharacter = &FormatError{Kind: KindInvalidCharacter, Position: -1}
)

// FormatError describes a chunk type that could not be constructed.
type FormatError struct {
	// Kind is the failure category.
	Kind FormatErrorKind

	// Input is the rejected input, byte for byte.
	Input string

	// Position is the index of the offending byte, or -1 when the failure
	// is not tied to a single byte.
	Position int
}

// Error returns the failure kind followed by the quoted input.
func (e *FormatError) Error() string {
	switch {
	case e.Input == "" && e.Kind != KindWrongLength:
		return string(e.Kind)
	case e.Position < 0:
		return fmt.Sprintf("%s: %q is %d bytes, want %d", e.Kind, e.Input, len(e.Input), Size)
	default:
		return fmt.Sprintf("%s at position %d in %q", e.Kind, e.Position, e.Input)
	}
}

// Is reports whether target is a *FormatError of the same kind.
func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// newFormatError wraps a FormatError as a CodeInvalidInput PlatformError.
func newFormatError(kind FormatErrorKind, input string, position int) errors.PlatformError {
	return errors.WrapWithContext(
		&FormatError{Kind: kind, Input: input, Position: position},
		errors.CodeInvalidInput,
		"invalid chunk type",
		map[string]interface{}{
			"kind":     string(kind),
			"input":    input,
			"position": position,
		},
	)
}
