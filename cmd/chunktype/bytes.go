package main

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"
)

// parseByteArg decodes a raw byte argument. Two forms are accepted: a
// comma-separated list of decimal values ("82,117,83,116") and a hex
// string with a 0x prefix ("0x52755374"). The length is not checked here.
func parseByteArg(s string) ([]byte, error) {
	if hexDigits, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		b, err := hex.DecodeString(hexDigits)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid hex bytes",
				map[string]interface{}{"input": s})
		}
		return b, nil
	}

	fields := strings.Split(s, ",")
	b := make([]byte, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeInvalidInput, "invalid decimal byte",
				map[string]interface{}{"input": s, "field": field})
		}
		b = append(b, byte(v))
	}
	return b, nil
}
