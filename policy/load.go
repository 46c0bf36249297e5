package policy

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/core"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format identifies a policy file encoding.
type Format string

// Supported policy file formats.
const (
	FormatCUE  Format = "cue"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the policy format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json", ".jsonc":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Load reads a policy configuration from fsys. The format is chosen by
// file extension: .cue, .yaml/.yml or .json/.jsonc.
//
// Returns CodeNotFound if the file does not exist.
// Returns CodeInvalidConfig if the file cannot be read, has an unsupported
// extension, or does not decode into a valid configuration.
func Load(ctx context.Context, fsys core.ReadFS, path string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, wrapConfigErrorWithContext(err, "context cancelled", makeContext("path", path))
	}

	format, ok := FormatFromPath(path)
	if !ok {
		return Config{}, errors.WithContextMap(
			errors.Newf(errors.CodeInvalidConfig, "unsupported policy file extension %q", filepath.Ext(path)),
			makeContext("path", path),
		)
	}

	exists, err := fsys.Exists(path)
	if err != nil {
		return Config{}, wrapConfigErrorWithContext(err, "failed to stat policy file", makeContext("path", path))
	}
	if !exists {
		return Config{}, errors.WithContextMap(
			errors.Newf(errors.CodeNotFound, "policy file %s not found", path),
			makeContext("path", path),
		)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return Config{}, wrapConfigErrorWithContext(err, "failed to read policy file", makeContext("path", path))
	}

	cfg, err := Decode(ctx, format, data)
	if err != nil {
		return Config{}, errors.WithContext(err, "path", path)
	}
	return cfg, nil
}

// Decode parses a policy configuration in the given format.
func Decode(ctx context.Context, format Format, data []byte) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, wrapConfigError(err, "context cancelled before decoding")
	}

	switch format {
	case FormatCUE:
		return decodeCUE(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return Config{}, errors.Newf(errors.CodeInvalidConfig, "unsupported policy format %q", format)
	}
}

func decodeCUE(data []byte) (Config, error) {
	cueCtx := cuecontext.New()

	schema := cueCtx.CompileString(schemaSource, cue.Filename("policy_schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, errors.Wrap(err, errors.CodeInternal, "policy schema does not compile")
	}

	value := cueCtx.CompileBytes(data, cue.Filename("policy.cue"))
	if err := value.Err(); err != nil {
		return Config{}, wrapConfigErrorWithContext(
			err,
			"failed to compile CUE policy",
			makeContext("details", cueerrors.Details(err, nil)),
		)
	}

	unified := schema.LookupPath(cue.ParsePath(schemaPath)).Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.Final(), cue.All()); err != nil {
		return Config{}, wrapConfigErrorWithContext(
			err,
			"CUE policy does not match schema",
			makeContext("details", cueerrors.Details(err, nil)),
		)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, wrapConfigError(err, "failed to decode CUE policy")
	}
	return normalize(cfg), nil
}

func decodeYAML(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, wrapConfigError(err, "failed to decode YAML policy")
	}
	return normalize(cfg), nil
}

func decodeJSON(data []byte) (Config, error) {
	var cfg Config
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, wrapConfigError(err, "failed to decode JSON policy")
	}
	return normalize(cfg), nil
}

// normalize maps empty lists to nil so equivalent files decode to equal
// configurations regardless of format.
func normalize(cfg Config) Config {
	if len(cfg.Allow) == 0 {
		cfg.Allow = nil
	}
	if len(cfg.Deny) == 0 {
		cfg.Deny = nil
	}
	return cfg
}
