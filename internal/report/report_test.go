package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/png"
	"github.com/jmgilman/go/png/policy"
)

func TestInspect(t *testing.T) {
	in := Inspect("RuSt", png.MustParse("RuSt"))

	require.Nil(t, in.Error)
	require.Equal(t, "RuSt", in.Type)
	require.Equal(t, []int{82, 117, 83, 116}, in.Bytes)
	require.Empty(t, in.Name)
	require.Equal(t, &Properties{
		Critical:         true,
		Public:           false,
		ReservedBitValid: true,
		SafeToCopy:       true,
		Valid:            true,
	}, in.Properties)
	require.True(t, in.OK())

	require.Equal(t, "Textual data", Inspect("tEXt", png.MustParse("tEXt")).Name)
}

func TestFailed(t *testing.T) {
	_, err := png.Parse("Ru1t")
	require.Error(t, err)

	in := Failed("Ru1t", err)
	require.NotNil(t, in.Error)
	require.False(t, in.OK())
	assert.Equal(t, string(png.KindInvalidCharacter), in.Error.Kind)
	assert.Equal(t, "INVALID_INPUT", in.Error.Code)
	assert.Equal(t, `invalid character at position 2 in "Ru1t"`, in.Error.Message)
	assert.Empty(t, in.Type)
}

func TestInspection_OK_WithDecision(t *testing.T) {
	ct := png.MustParse("RuSt")
	in := Inspect("RuSt", ct)

	d := policy.Default().Evaluate(context.Background(), ct)
	in.Decision = &d
	require.False(t, in.OK())

	d.Accepted = true
	require.True(t, in.OK())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "yaml"} {
		_, err := ParseFormat(s)
		require.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func sample(t *testing.T) []Inspection {
	t.Helper()
	_, err := png.Parse("Ru")
	require.Error(t, err)
	return []Inspection{
		Inspect("RuSt", png.MustParse("RuSt")),
		Inspect("IHDR", png.IHDR),
		Failed("Ru", err),
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, sample(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "INPUT"))
	assert.NotContains(t, lines[0], "DECISION")
	assert.Contains(t, lines[1], `"RuSt"`)
	assert.Contains(t, lines[1], "82,117,83,116")
	assert.Contains(t, lines[2], "Image header")
	assert.Contains(t, lines[3], `error: wrong length: "Ru" is 2 bytes, want 4`)
}

func TestWrite_TextWithDecision(t *testing.T) {
	ct := png.MustParse("RuSt")
	in := Inspect("RuSt", ct)
	d := policy.Default().Evaluate(context.Background(), ct)
	in.Decision = &d

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatText, []Inspection{in}))
	assert.Contains(t, buf.String(), "DECISION")
	assert.Contains(t, buf.String(), "reject (private)")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample(t)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "RuSt", got[0]["type"])
	assert.Equal(t, true, got[0]["properties"].(map[string]any)["safeToCopy"])
	assert.Equal(t, "wrong length", got[2]["error"].(map[string]any)["kind"])
	assert.NotContains(t, got[2], "properties")
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sample(t)[:2]))

	var got []Inspection
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "IHDR", got[1].Type)
	assert.Equal(t, "Image header", got[1].Name)
	assert.False(t, got[1].Properties.SafeToCopy)
	assert.Contains(t, buf.String(), "bytes: [82, 117, 83, 116]")
}

func TestWrite_UnknownFormat(t *testing.T) {
	require.Error(t, Write(&bytes.Buffer{}, Format("xml"), nil))
}
