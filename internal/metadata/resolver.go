package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/imamik/imageboot/internal/retry"
)

// Lookup is the narrow metadata access the resolver depends on.
// Implemented by *Client; replaced with fakes in tests.
type Lookup interface {
	Get(ctx context.Context, scope Scope, key string) (string, error)
}

// Policy bounds the resolution retry loop.
type Policy struct {
	// MaxAttempts is the number of additional full instance-then-project
	// rounds after the first, so resolution runs at most MaxAttempts+1
	// rounds.
	MaxAttempts int

	// Interval is the fixed sleep between rounds.
	Interval time.Duration
}

// Resolver resolves a key with instance-to-project fallback and
// bounded retry of the combined outcome.
type Resolver struct {
	lookup Lookup
	policy Policy
}

// NewResolver creates a resolver over the given lookup.
func NewResolver(lookup Lookup, policy Policy) *Resolver {
	return &Resolver{lookup: lookup, policy: policy}
}

// Resolve returns the value for key. Instance scope is tried first;
// any instance-scope failure triggers exactly one project-scope
// attempt for the same key. The project-scope error decides the fate
// of the round: transient errors are retried up to the policy bound
// with a fixed sleep in between, anything else ends resolution
// immediately.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	var value string

	err := retry.Do(ctx, func() error {
		v, err := r.resolveOnce(ctx, key)
		if err != nil {
			var le *LookupError
			if errors.As(err, &le) && !le.Kind.Retryable() {
				return retry.Fatal(err)
			}
			return err
		}
		value = v
		return nil
	},
		retry.WithMaxAttempts(r.policy.MaxAttempts),
		retry.WithInterval(r.policy.Interval),
	)
	if err != nil {
		return "", err
	}

	return value, nil
}

// resolveOnce performs one instance-then-project round.
func (r *Resolver) resolveOnce(ctx context.Context, key string) (string, error) {
	v, err := r.lookup.Get(ctx, ScopeInstance, key)
	if err == nil {
		return v, nil
	}

	return r.lookup.Get(ctx, ScopeProject, key)
}
