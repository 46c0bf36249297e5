package png

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   [Size]byte
		want    string
		wantErr bool
	}{
		{"letters", [Size]byte{82, 117, 83, 116}, "RuSt", false},
		{"digit accepted", [Size]byte{82, 117, 49, 116}, "Ru1t", false},
		{"punctuation accepted", [Size]byte{'!', '#', '-', '.'}, "!#-.", false},
		{"control accepted", [Size]byte{0, 1, 2, 127}, "\x00\x01\x02\x7f", false},
		{"high byte rejected", [Size]byte{82, 117, 200, 116}, "", true},
		{"first byte rejected", [Size]byte{128, 'u', 'S', 't'}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromBytes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrNonASCIIByte)
				require.Equal(t, ChunkType{}, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got.String())
			require.Equal(t, tt.input, got.Bytes())
		})
	}
}

func TestFromSlice(t *testing.T) {
	got, err := FromSlice([]byte("IDAT"))
	require.NoError(t, err)
	require.Equal(t, IDAT, got)

	_, err = FromSlice([]byte("IDA"))
	require.ErrorIs(t, err, ErrWrongLength)

	_, err = FromSlice(nil)
	require.ErrorIs(t, err, ErrWrongLength)

	_, err = FromSlice([]byte{'I', 'D', 0xff, 'T'})
	require.ErrorIs(t, err, ErrNonASCIIByte)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind FormatErrorKind
		wantPos  int
	}{
		{"valid", "RuSt", "", 0},
		{"all lowercase", "rust", "", 0},
		{"too short", "Ru", KindWrongLength, -1},
		{"too long", "Rustt", KindWrongLength, -1},
		{"empty", "", KindWrongLength, -1},
		{"digit", "Ru1t", KindInvalidCharacter, 2},
		{"space", " uSt", KindInvalidCharacter, 0},
		{"punctuation", "RuS!", KindInvalidCharacter, 3},
		{"multibyte fits in four bytes", "Rü!", KindInvalidCharacter, 1},
		{"multibyte four runes", "RüSt", KindWrongLength, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantKind == "" {
				require.NoError(t, err)
				require.Equal(t, tt.input, got.String())
				return
			}

			require.Error(t, err)
			require.Equal(t, ChunkType{}, got)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.input, fe.Input)
			assert.Equal(t, tt.wantPos, fe.Position)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	letters := "AaZzMmQq"
	for _, a := range letters {
		for _, b := range letters {
			for _, c := range letters {
				for _, d := range letters {
					s := string([]rune{a, b, c, d})
					ct, err := Parse(s)
					require.NoError(t, err)
					require.Equal(t, s, ct.String())
				}
			}
		}
	}
}

func TestParse_MatchesFromBytes(t *testing.T) {
	fromText, err := Parse("RuSt")
	require.NoError(t, err)

	fromBytes, err := FromBytes([Size]byte{82, 117, 83, 116})
	require.NoError(t, err)

	require.True(t, fromText.Equal(fromBytes))
	require.Equal(t, fromText, fromBytes)
}

func TestMustParse(t *testing.T) {
	require.Equal(t, "tEXt", MustParse("tEXt").String())
	require.Panics(t, func() { MustParse("tEX") })
	require.Panics(t, func() { MustParse("t3Xt") })
}

func TestChunkType_Equal(t *testing.T) {
	a := MustParse("RuSt")
	b := MustParse("RuSt")
	c := MustParse("rust")

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestChunkType_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"IDAT", "IDAT", 0},
		{"IDAT", "IEND", -1},
		{"IEND", "IDAT", 1},
		{"IHDR", "iTXt", -1},
		{"tIME", "tEXt", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)))
		})
	}
}

func TestChunkType_Predicates(t *testing.T) {
	tests := []struct {
		input         string
		critical      bool
		public        bool
		reservedValid bool
		safeToCopy    bool
		valid         bool
	}{
		{"RuSt", true, false, true, true, true},
		{"ruSt", false, false, true, true, true},
		{"RUSt", true, true, true, true, true},
		{"RuST", true, false, true, false, true},
		{"Rust", true, false, false, true, false},
		{"IHDR", true, true, true, false, true},
		{"tEXt", false, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ct := MustParse(tt.input)
			assert.Equal(t, tt.critical, ct.IsCritical(), "IsCritical")
			assert.Equal(t, tt.public, ct.IsPublic(), "IsPublic")
			assert.Equal(t, tt.reservedValid, ct.IsReservedBitValid(), "IsReservedBitValid")
			assert.Equal(t, tt.safeToCopy, ct.IsSafeToCopy(), "IsSafeToCopy")
			assert.Equal(t, tt.valid, ct.IsValid(), "IsValid")
		})
	}
}

func TestChunkType_IsValid_NonLetterBytes(t *testing.T) {
	tests := []struct {
		name  string
		input [Size]byte
	}{
		{"digit in reserved position", [Size]byte{82, 117, 49, 116}},
		{"digit in first position", [Size]byte{'1', 'u', 'S', 't'}},
		{"punctuation in last position", [Size]byte{'R', 'u', 'S', '@'}},
		{"nul bytes", [Size]byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := FromBytes(tt.input)
			require.NoError(t, err)
			require.False(t, ct.IsValid())
		})
	}
}

func TestChunkType_TextMarshaling(t *testing.T) {
	type doc struct {
		Type ChunkType `json:"type" yaml:"type"`
	}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(doc{Type: MustParse("tIME")})
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"tIME"}`, string(data))

		var got doc
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, MustParse("tIME"), got.Type)

		err = json.Unmarshal([]byte(`{"type":"t1ME"}`), &got)
		require.ErrorIs(t, err, ErrInvalidCharacter)
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(doc{Type: MustParse("pHYs")})
		require.NoError(t, err)
		require.Equal(t, "type: pHYs\n", string(data))

		var got doc
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Equal(t, MustParse("pHYs"), got.Type)

		err = yaml.Unmarshal([]byte("type: pHY\n"), &got)
		require.Error(t, err)
	})
}

func TestChunkType_MapKey(t *testing.T) {
	seen := map[ChunkType]int{}
	for _, s := range []string{"IDAT", "IDAT", "IEND", "idat"} {
		seen[MustParse(s)]++
	}
	require.Len(t, seen, 3)
	require.Equal(t, 2, seen[IDAT])
}
