package llm

import (
	"context"
	"errors"
	"strings"
)

// transientSignals are substrings that mark an otherwise untyped error
// as transient. Providers wrap their SDK errors in the typed errors
// above; this list catches failures surfacing from lower layers (HTTP
// clients, proxies) as plain errors.
var transientSignals = []string{
	"rate limit",
	"rate_limit",
	"too many requests",
	"429",
	"quota",
	"overload",
	"unavailable",
	"502",
	"503",
	"504",
	"timeout",
	"deadline exceeded",
	"connection reset",
	"temporarily",
}

// IsTransient reports whether err is worth retrying. Typed transport
// errors are classified directly; anything else is matched against the
// known transient signals and treated as terminal when none match.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Context errors are never retried: the caller gave up.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range transientSignals {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
