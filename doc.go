// Package png provides a validated representation of PNG chunk types.
//
// Every chunk in a PNG datastream is labelled by a four-byte type code such
// as IHDR or tEXt. The case of each byte carries meaning: bit 5 (0x20) of
// each byte is a property flag that decoders and editors use to decide how
// to treat a chunk they do not recognize. This package parses type codes,
// rejects malformed ones, and exposes those flags as predicates.
//
// # Construction
//
// Chunk types are built either from text or from raw bytes:
//
//	ct, err := png.Parse("tEXt")
//	if err != nil {
//	    return err
//	}
//
//	ct, err := png.FromBytes([4]byte{116, 69, 88, 116})
//
// Parse is strict: the input must be exactly four bytes and every byte must
// be an ASCII letter. FromBytes only checks that every byte is ASCII, so a
// type code read from a file that contains digits or punctuation can still
// be represented and then rejected by the caller through IsValid.
//
// # Property Bits
//
//   - IsCritical: byte 0 uppercase. Decoders must not ignore unknown critical chunks.
//   - IsPublic: byte 1 uppercase. The type is part of the public registry.
//   - IsReservedBitValid: byte 2 uppercase, as required by the current format revision.
//   - IsSafeToCopy: byte 3 lowercase. Editors may copy the chunk unmodified.
//   - IsValid: reserved bit valid and all four bytes are ASCII letters.
//
// The checks look only at bit 5 of each byte; no locale-aware case mapping
// is involved.
//
// # Errors
//
// Construction failures are returned as PlatformErrors from
// github.com/jmgilman/go/errors with CodeInvalidInput. The underlying
// *FormatError is reachable with errors.As and carries the failure kind and
// the offending input:
//
//	_, err := png.Parse("Ru1t")
//	var fe *png.FormatError
//	if errors.As(err, &fe) {
//	    fmt.Println(fe.Kind, fe.Position) // invalid character 2
//	}
//
// errors.Is also matches the sentinels ErrNonASCIIByte, ErrWrongLength and
// ErrInvalidCharacter by kind.
//
// # Concurrency
//
// ChunkType is a small immutable value. It can be copied, compared with ==,
// used as a map key and shared between goroutines freely.
package png
