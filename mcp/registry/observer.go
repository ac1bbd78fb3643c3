package registry

import (
	"context"
	"errors"
	"time"

	"github.com/viant/mcp-registry/mcp/schema"
)

// Outcome classifies a finished call.
type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeDenied     Outcome = "denied"
	OutcomeInvalid    Outcome = "invalid_arguments"
	OutcomeHookFailed Outcome = "hook_failed"
	OutcomeFailed     Outcome = "failed"
)

// OutcomeOf classifies err.
func OutcomeOf(err error) Outcome {
	var invalid *schema.InvalidArgumentsError
	var hookErr *HookError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrAccessDenied):
		return OutcomeDenied
	case errors.As(err, &invalid):
		return OutcomeInvalid
	case errors.As(err, &hookErr):
		return OutcomeHookFailed
	}
	return OutcomeFailed
}

// Observation describes one finished call.
type Observation struct {
	CallID   string
	Tool     string
	Outcome  Outcome
	Stage    Stage
	Duration time.Duration
	Err      error
}

// Observer receives call observations.
type Observer interface {
	ObserveCall(ctx context.Context, observation Observation)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, observation Observation)

// ObserveCall calls fn
func (fn ObserverFunc) ObserveCall(ctx context.Context, observation Observation) {
	fn(ctx, observation)
}

type nopObserver struct{}

func (nopObserver) ObserveCall(context.Context, Observation) {}
