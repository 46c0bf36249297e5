// Package policy decides whether chunk types should be accepted by a
// container reader.
//
// A chunk type built with png.FromBytes is only structurally checked. A
// Policy combines the composite png.ChunkType.IsValid predicate with the
// PNG handling rules for unknown chunks and user-supplied allow and deny
// lists:
//
//  1. Invalid chunk types are always rejected.
//  2. Chunk types matching a Deny entry are rejected.
//  3. Chunk types matching an Allow entry are accepted.
//  4. Registered chunk types (png.IsKnown) are accepted.
//  5. Private chunk types are rejected unless AllowPrivate is set.
//  6. Unknown critical chunk types are rejected unless AllowUnknownCritical is set.
//  7. Everything else (unknown, public or permitted-private, ancillary) is accepted.
//
// Allow and Deny entries are either exact four-letter chunk types or glob
// patterns such as "?u??" or "{tEXt,zTXt,iTXt}", matched case-sensitively
// against the chunk type's text form.
//
// Configurations can be loaded from CUE, YAML or JSON (with comments) files:
//
//	cfg, err := policy.Load(ctx, billy.NewLocal(), "/etc/chunktype/policy.cue")
//	if err != nil {
//	    return err
//	}
//	p, err := policy.New(cfg, policy.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if d := p.Evaluate(ctx, ct); !d.Accepted {
//	    return fmt.Errorf("chunk %s rejected: %s", ct, d.Reason)
//	}
//
// A Policy is immutable once built and safe for concurrent use.
package policy
