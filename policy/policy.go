package policy

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/jmgilman/go/errors"

	"github.com/jmgilman/go/png"
	"github.com/jmgilman/go/png/internal/logging"
)

// maxPatternLength bounds glob patterns read from configuration.
const maxPatternLength = 64

// globMeta lists the characters that turn an entry into a glob pattern.
const globMeta = "*?[{"

// Config is the user-facing policy configuration.
type Config struct {
	// AllowPrivate accepts chunk types whose private bit is set.
	AllowPrivate bool `json:"allowPrivate" yaml:"allowPrivate"`

	// AllowUnknownCritical accepts critical chunk types that are not
	// registered. Decoders normally have to stop on such chunks.
	AllowUnknownCritical bool `json:"allowUnknownCritical" yaml:"allowUnknownCritical"`

	// Allow lists chunk types or glob patterns that are always accepted
	// when valid.
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty"`

	// Deny lists chunk types or glob patterns that are always rejected.
	Deny []string `json:"deny,omitempty" yaml:"deny,omitempty"`
}

// Reason explains a Decision.
type Reason string

// Decision reasons, in evaluation order.
const (
	ReasonInvalid         Reason = "invalid"
	ReasonDenied          Reason = "denied"
	ReasonAllowed         Reason = "allowed"
	ReasonKnown           Reason = "known"
	ReasonPrivate         Reason = "private"
	ReasonUnknownCritical Reason = "unknown critical"
	ReasonPermitted       Reason = "permitted"
)

// Decision is the outcome of evaluating one chunk type.
type Decision struct {
	Type     png.ChunkType `json:"type" yaml:"type"`
	Accepted bool          `json:"accepted" yaml:"accepted"`
	Reason   Reason        `json:"reason" yaml:"reason"`

	// Rule is the allow or deny entry that matched, if any.
	Rule string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Policy evaluates chunk types against a Config.
type Policy struct {
	cfg    Config
	allow  []matcher
	deny   []matcher
	logger *logging.Logger
}

// Option configures a Policy.
type Option func(*Policy)

// WithLogger sets the logger used to record decisions at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = logging.FromSlog(logger)
	}
}

// New builds a Policy from cfg.
//
// Returns CodeInvalidConfig if an entry is neither a valid chunk type nor
// a valid glob pattern, or if the same chunk type is both allowed and
// denied.
func New(cfg Config, opts ...Option) (*Policy, error) {
	p := &Policy{
		cfg: Config{
			AllowPrivate:         cfg.AllowPrivate,
			AllowUnknownCritical: cfg.AllowUnknownCritical,
			Allow:                slices.Clone(cfg.Allow),
			Deny:                 slices.Clone(cfg.Deny),
		},
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	var err error
	if p.allow, err = compileEntries("allow", cfg.Allow); err != nil {
		return nil, err
	}
	if p.deny, err = compileEntries("deny", cfg.Deny); err != nil {
		return nil, err
	}

	for _, a := range p.allow {
		if !a.exact {
			continue
		}
		for _, d := range p.deny {
			if d.exact && d.chunkType == a.chunkType {
				return nil, errors.WithContextMap(
					errors.Newf(errors.CodeInvalidConfig, "chunk type %s is both allowed and denied", a.chunkType),
					makeContext("chunk_type", a.chunkType.String()),
				)
			}
		}
	}

	return p, nil
}

// Default returns a Policy built from the zero Config: registered chunk
// types and public ancillary chunk types are accepted.
func Default() *Policy {
	p, _ := New(Config{})
	return p
}

// Config returns a copy of the configuration the Policy was built from.
func (p *Policy) Config() Config {
	return Config{
		AllowPrivate:         p.cfg.AllowPrivate,
		AllowUnknownCritical: p.cfg.AllowUnknownCritical,
		Allow:                slices.Clone(p.cfg.Allow),
		Deny:                 slices.Clone(p.cfg.Deny),
	}
}

// Evaluate decides whether ct should be accepted.
func (p *Policy) Evaluate(ctx context.Context, ct png.ChunkType) Decision {
	d := p.decide(ct)
	p.logger.WithOperation(logging.OpEvaluate).WithChunkType(ct.String()).Debug(ctx, "chunk type evaluated",
		"accepted", d.Accepted,
		"reason", string(d.Reason),
		"rule", d.Rule,
	)
	return d
}

func (p *Policy) decide(ct png.ChunkType) Decision {
	reject := func(reason Reason, rule string) Decision {
		return Decision{Type: ct, Accepted: false, Reason: reason, Rule: rule}
	}
	accept := func(reason Reason, rule string) Decision {
		return Decision{Type: ct, Accepted: true, Reason: reason, Rule: rule}
	}

	if !ct.IsValid() {
		return reject(ReasonInvalid, "")
	}
	if m, ok := firstMatch(p.deny, ct); ok {
		return reject(ReasonDenied, m.entry)
	}
	if m, ok := firstMatch(p.allow, ct); ok {
		return accept(ReasonAllowed, m.entry)
	}
	if png.IsKnown(ct) {
		return accept(ReasonKnown, "")
	}
	if !ct.IsPublic() && !p.cfg.AllowPrivate {
		return reject(ReasonPrivate, "")
	}
	if ct.IsCritical() && !p.cfg.AllowUnknownCritical {
		return reject(ReasonUnknownCritical, "")
	}
	return accept(ReasonPermitted, "")
}

// matcher is a compiled allow or deny entry.
type matcher struct {
	entry     string
	exact     bool
	chunkType png.ChunkType
	pattern   glob.Glob
}

func (m matcher) match(ct png.ChunkType) bool {
	if m.exact {
		return m.chunkType == ct
	}
	return m.pattern.Match(ct.String())
}

func firstMatch(matchers []matcher, ct png.ChunkType) (matcher, bool) {
	for _, m := range matchers {
		if m.match(ct) {
			return m, true
		}
	}
	return matcher{}, false
}

func compileEntries(list string, entries []string) ([]matcher, error) {
	matchers := make([]matcher, 0, len(entries))
	for i, entry := range entries {
		m, err := compileEntry(entry)
		if err != nil {
			return nil, wrapConfigErrorWithContext(
				err,
				"invalid "+list+" entry",
				makeContext("list", list, "index", i, "entry", entry),
			)
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

func compileEntry(entry string) (matcher, error) {
	if !strings.ContainsAny(entry, globMeta) {
		ct, err := png.Parse(entry)
		if err != nil {
			return matcher{}, err
		}
		return matcher{entry: entry, exact: true, chunkType: ct}, nil
	}

	if len(entry) > maxPatternLength {
		return matcher{}, errors.Newf(errors.CodeInvalidInput, "pattern longer than %d bytes", maxPatternLength)
	}
	g, err := glob.Compile(entry)
	if err != nil {
		return matcher{}, errors.Wrap(err, errors.CodeInvalidInput, "invalid glob pattern")
	}
	return matcher{entry: entry, pattern: g}, nil
}
