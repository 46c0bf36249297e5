// Package report renders chunk type inspections for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jmgilman/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/png"
	"github.com/jmgilman/go/png/policy"
)

// Format selects the output encoding.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", errors.Newf(errors.CodeInvalidInput, "unsupported output format %q", s)
	}
}

// Properties holds the predicates of a chunk type.
type Properties struct {
	Critical         bool `json:"critical" yaml:"critical"`
	Public           bool `json:"public" yaml:"public"`
	ReservedBitValid bool `json:"reservedBitValid" yaml:"reservedBitValid"`
	SafeToCopy       bool `json:"safeToCopy" yaml:"safeToCopy"`
	Valid            bool `json:"valid" yaml:"valid"`
}

// Failure describes input that could not be turned into a chunk type.
type Failure struct {
	Kind    string `json:"kind" yaml:"kind"`
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Inspection is the result of examining one input.
type Inspection struct {
	// Input is the argument as given.
	Input string `json:"input" yaml:"input"`

	Type       string           `json:"type,omitempty" yaml:"type,omitempty"`
	Bytes      []int            `json:"bytes,omitempty" yaml:"bytes,omitempty,flow"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	Properties *Properties      `json:"properties,omitempty" yaml:"properties,omitempty"`
	Decision   *policy.Decision `json:"decision,omitempty" yaml:"decision,omitempty"`
	Error      *Failure         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Inspect describes a successfully constructed chunk type.
func Inspect(input string, ct png.ChunkType) Inspection {
	raw := ct.Bytes()
	bs := make([]int, len(raw))
	for i, b := range raw {
		bs[i] = int(b)
	}

	in := Inspection{
		Input: input,
		Type:  ct.String(),
		Bytes: bs,
		Properties: &Properties{
			Critical:         ct.IsCritical(),
			Public:           ct.IsPublic(),
			ReservedBitValid: ct.IsReservedBitValid(),
			SafeToCopy:       ct.IsSafeToCopy(),
			Valid:            ct.IsValid(),
		},
	}
	if d, ok := png.Lookup(ct); ok {
		in.Name = d.Name
	}
	return in
}

// Failed describes input rejected by a constructor. The failure kind is
// taken from the png.FormatError in err's chain when there is one.
func Failed(input string, err error) Inspection {
	f := &Failure{
		Code:    string(errors.GetCode(err)),
		Message: err.Error(),
	}

	var fe *png.FormatError
	if errors.As(err, &fe) {
		f.Kind = string(fe.Kind)
		f.Message = fe.Error()
	}

	return Inspection{Input: input, Error: f}
}

// OK reports whether the input parsed and, when a decision is present,
// was accepted.
func (i Inspection) OK() bool {
	if i.Error != nil {
		return false
	}
	return i.Decision == nil || i.Decision.Accepted
}

// Write renders inspections to w.
func Write(w io.Writer, format Format, inspections []Inspection) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(inspections); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to encode JSON report")
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(inspections); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to encode YAML report")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to flush YAML report")
		}
		return nil
	case FormatText:
		return writeText(w, inspections)
	default:
		return errors.Newf(errors.CodeInvalidInput, "unsupported output format %q", format)
	}
}

func writeText(w io.Writer, inspections []Inspection) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)

	hasDecision := false
	for _, in := range inspections {
		if in.Decision != nil {
			hasDecision = true
			break
		}
	}

	header := "INPUT\tTYPE\tBYTES\tCRITICAL\tPUBLIC\tRESERVED\tSAFE-TO-COPY\tVALID\tNAME"
	if hasDecision {
		header += "\tDECISION"
	}
	fmt.Fprintln(tw, header)

	for _, in := range inspections {
		if in.Error != nil {
			fmt.Fprintf(tw, "%s\terror: %s\n", strconv.Quote(in.Input), in.Error.Message)
			continue
		}

		p := in.Properties
		row := fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s",
			strconv.Quote(in.Input),
			strconv.Quote(in.Type),
			joinInts(in.Bytes),
			yesNo(p.Critical),
			yesNo(p.Public),
			validInvalid(p.ReservedBitValid),
			yesNo(p.SafeToCopy),
			yesNo(p.Valid),
			dash(in.Name),
		)
		if hasDecision {
			row += "\t" + decisionText(in.Decision)
		}
		fmt.Fprintln(tw, row)
	}

	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write report")
	}
	return nil
}

func decisionText(d *policy.Decision) string {
	if d == nil {
		return "-"
	}
	verdict := "reject"
	if d.Accepted {
		verdict = "accept"
	}
	s := verdict + " (" + string(d.Reason)
	if d.Rule != "" {
		s += ": " + d.Rule
	}
	return s + ")"
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func validInvalid(b bool) string {
	if b {
		return "valid"
	}
	return "invalid"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
