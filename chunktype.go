package png

import "bytes"

// Size is the length of a chunk type in bytes.
const Size = 4

const (
	// propertyBit is bit 5 of a type byte. Clear means uppercase.
	propertyBit = 0x20

	maxASCII = 0x7f
)

// ChunkType is a four-byte PNG chunk type code.
//
// The zero value is not a valid chunk type; use Parse, FromBytes or
// FromSlice to construct one.
type ChunkType struct {
	b [Size]byte
}

// FromBytes creates a ChunkType from raw bytes.
//
// Only the structural check is applied: every byte must be ASCII. Digits
// and punctuation are accepted so that malformed type codes read from a
// datastream can still be represented; use IsValid to reject them.
//
// Returns CodeInvalidInput wrapping a KindNonASCIIByte FormatError.
func FromBytes(b [Size]byte) (ChunkType, error) {
	for i, c := range b {
		if c > maxASCII {
			return ChunkType{}, newFormatError(KindNonASCIIByte, string(b[:]), i)
		}
	}
	return ChunkType{b: b}, nil
}

// FromSlice creates a ChunkType from a byte slice such as the type field
// of a chunk header. The slice must be exactly Size bytes long; otherwise
// it behaves like FromBytes.
func FromSlice(b []byte) (ChunkType, error) {
	if len(b) != Size {
		return ChunkType{}, newFormatError(KindWrongLength, string(b), -1)
	}
	return FromBytes([Size]byte(b))
}

// Parse creates a ChunkType from its four-letter text form.
//
// The length is measured in bytes, not runes, so a four-character string
// containing multi-byte UTF-8 sequences is rejected as KindWrongLength.
// Every byte must be an ASCII letter; anything else is rejected as
// KindInvalidCharacter.
func Parse(s string) (ChunkType, error) {
	if len(s) != Size {
		return ChunkType{}, newFormatError(KindWrongLength, s, -1)
	}

	var b [Size]byte
	for i := 0; i < Size; i++ {
		if !isLetter(s[i]) {
			return ChunkType{}, newFormatError(KindInvalidCharacter, s, i)
		}
		b[i] = s[i]
	}

	return FromBytes(b)
}

// MustParse is like Parse but panics if s is not a valid chunk type.
// It is intended for package-level variables.
func MustParse(s string) ChunkType {
	ct, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// Bytes returns a copy of the four type bytes.
func (c ChunkType) Bytes() [Size]byte {
	return c.b
}

// String returns the four type bytes as literal characters.
func (c ChunkType) String() string {
	return string(c.b[:])
}

// Equal reports whether c and other hold the same bytes. Case matters.
func (c ChunkType) Equal(other ChunkType) bool {
	return c.b == other.b
}

// Compare orders chunk types by byte content. It returns -1, 0 or +1.
func (c ChunkType) Compare(other ChunkType) int {
	return bytes.Compare(c.b[:], other.b[:])
}

// IsCritical reports whether the ancillary bit is clear (byte 0 uppercase).
// Decoders encountering an unknown critical chunk cannot safely proceed.
func (c ChunkType) IsCritical() bool {
	return isUpper(c.b[0])
}

// IsPublic reports whether the private bit is clear (byte 1 uppercase).
func (c ChunkType) IsPublic() bool {
	return isUpper(c.b[1])
}

// IsReservedBitValid reports whether the reserved bit is clear (byte 2
// uppercase), as required by the current format revision.
func (c ChunkType) IsReservedBitValid() bool {
	return isUpper(c.b[2])
}

// IsSafeToCopy reports whether the safe-to-copy bit is set (byte 3
// lowercase). Editors that do not recognize the chunk may copy it
// unmodified into a derived file.
func (c ChunkType) IsSafeToCopy() bool {
	return !isUpper(c.b[3])
}

// IsValid reports whether the reserved bit is valid and every byte is an
// ASCII letter. Container code should use it to accept or reject type
// codes obtained through FromBytes.
func (c ChunkType) IsValid() bool {
	if !c.IsReservedBitValid() {
		return false
	}
	for _, b := range c.b {
		if !isLetter(b) {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (c ChunkType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (c *ChunkType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func isUpper(b byte) bool {
	return b&propertyBit == 0
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
