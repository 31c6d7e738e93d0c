package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// call records one Get invocation against the fake lookup.
type call struct {
	scope Scope
	key   string
}

// scriptedLookup replays a fixed sequence of responses, recording
// every call it receives.
type scriptedLookup struct {
	responses []response
	calls     []call
}

type response struct {
	value string
	err   error
}

func (s *scriptedLookup) Get(_ context.Context, scope Scope, key string) (string, error) {
	s.calls = append(s.calls, call{scope: scope, key: key})
	if len(s.responses) == 0 {
		return "", &LookupError{Kind: KindTransport, Scope: scope, Key: key}
	}
	r := s.responses[0]
	s.responses = s.responses[1:]
	return r.value, r.err
}

func retryableErr(scope Scope) *LookupError {
	return &LookupError{Kind: KindConnection, Scope: scope, Key: "attributes/foo"}
}

func fatalErr(scope Scope) *LookupError {
	return &LookupError{Kind: KindStatus, Scope: scope, Key: "attributes/foo", Status: 404}
}

func testPolicy(maxAttempts int) Policy {
	return Policy{MaxAttempts: maxAttempts, Interval: time.Millisecond}
}

func TestResolver_InstanceScopeWins(t *testing.T) {
	t.Parallel()

	lookup := &scriptedLookup{responses: []response{
		{value: "instance-value"},
	}}
	r := NewResolver(lookup, testPolicy(3))

	v, err := r.Resolve(context.Background(), "attributes/foo")

	require.NoError(t, err)
	assert.Equal(t, "instance-value", v)
	assert.Equal(t, []call{{ScopeInstance, "attributes/foo"}}, lookup.calls)
}

func TestResolver_FallsBackToProjectScope(t *testing.T) {
	t.Parallel()

	// Even a fatal instance-scope error only moves resolution on to
	// project scope; it does not end the round.
	lookup := &scriptedLookup{responses: []response{
		{err: fatalErr(ScopeInstance)},
		{value: "project-value"},
	}}
	r := NewResolver(lookup, testPolicy(3))

	v, err := r.Resolve(context.Background(), "attributes/foo")

	require.NoError(t, err)
	assert.Equal(t, "project-value", v)
	assert.Equal(t, []call{
		{ScopeInstance, "attributes/foo"},
		{ScopeProject, "attributes/foo"},
	}, lookup.calls)
}

func TestResolver_RetryableThenSuccess(t *testing.T) {
	t.Parallel()

	// First round fails with a connection error at both scopes, second
	// round succeeds at instance scope with the exact body.
	lookup := &scriptedLookup{responses: []response{
		{err: retryableErr(ScopeInstance)},
		{err: retryableErr(ScopeProject)},
		{value: "gs://bucket/path"},
	}}
	r := NewResolver(lookup, testPolicy(3))

	v, err := r.Resolve(context.Background(), "attributes/foo")

	require.NoError(t, err)
	assert.Equal(t, "gs://bucket/path", v)
	assert.Len(t, lookup.calls, 3)
}

func TestResolver_ExhaustsRetryBound(t *testing.T) {
	t.Parallel()

	// Retry bound 3: the connection failure is retried until exactly
	// 4 full instance-then-project rounds have run.
	lookup := &scriptedLookup{}
	for i := 0; i < 8; i++ {
		lookup.responses = append(lookup.responses, response{err: retryableErr(ScopeInstance)})
	}
	r := NewResolver(lookup, testPolicy(3))

	_, err := r.Resolve(context.Background(), "attributes/foo")

	require.Error(t, err)
	assert.Len(t, lookup.calls, 8) // 4 rounds x 2 scopes
	assert.Equal(t, 7, ExitCode(err))
}

func TestResolver_FatalAtProjectScopeShortCircuits(t *testing.T) {
	t.Parallel()

	lookup := &scriptedLookup{responses: []response{
		{err: retryableErr(ScopeInstance)},
		{err: fatalErr(ScopeProject)},
	}}
	r := NewResolver(lookup, testPolicy(100))

	_, err := r.Resolve(context.Background(), "attributes/foo")

	require.Error(t, err)
	assert.Len(t, lookup.calls, 2)
	assert.Equal(t, 22, ExitCode(err))
}

func TestResolver_FatalAfterRetryableRounds(t *testing.T) {
	t.Parallel()

	lookup := &scriptedLookup{responses: []response{
		{err: retryableErr(ScopeInstance)},
		{err: retryableErr(ScopeProject)},
		{err: retryableErr(ScopeInstance)},
		{err: fatalErr(ScopeProject)},
	}}
	r := NewResolver(lookup, testPolicy(100))

	_, err := r.Resolve(context.Background(), "attributes/foo")

	require.Error(t, err)
	assert.Len(t, lookup.calls, 4)
	assert.Equal(t, 22, ExitCode(err))
}

func TestResolver_SuccessAfterEachRetryableLength(t *testing.T) {
	t.Parallel()

	// For every number of leading retryable rounds within the bound,
	// resolution returns the eventual success and stops immediately.
	for rounds := 0; rounds <= 3; rounds++ {
		lookup := &scriptedLookup{}
		for i := 0; i < rounds; i++ {
			lookup.responses = append(lookup.responses,
				response{err: retryableErr(ScopeInstance)},
				response{err: retryableErr(ScopeProject)},
			)
		}
		lookup.responses = append(lookup.responses, response{value: "v"})

		r := NewResolver(lookup, testPolicy(3))
		v, err := r.Resolve(context.Background(), "attributes/foo")

		require.NoError(t, err, "rounds=%d", rounds)
		assert.Equal(t, "v", v)
		assert.Len(t, lookup.calls, rounds*2+1, "rounds=%d", rounds)
	}
}
