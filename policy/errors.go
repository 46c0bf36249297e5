package policy

import "github.com/jmgilman/go/errors"

// wrapConfigError wraps an error with CodeInvalidConfig.
func wrapConfigError(err error, message string) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, errors.CodeInvalidConfig, message)
}

// wrapConfigErrorWithContext wraps an error with CodeInvalidConfig and attaches context metadata.
func wrapConfigErrorWithContext(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, message, ctx)
}

// makeContext builds a context map from alternating keys and values.
// Non-string keys are skipped.
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
