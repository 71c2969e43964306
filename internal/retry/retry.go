// Package retry provides a small fixed-delay retry loop with an observable
// state machine, used by ingestion steps that talk to the stats feed.
package retry

import (
	"context"
	"fmt"
	"time"
)

// State describes where an attempt sequence currently is.
type State int

const (
	// StatePending means no attempt has been made yet.
	StatePending State = iota
	// StateRetrying means at least one attempt failed and another will run.
	StateRetrying
	// StateSucceeded means an attempt returned without error.
	StateSucceeded
	// StateExhausted means every allowed attempt failed.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Policy controls how many attempts run and how long to wait between them.
// The delay is fixed, not exponential; feed hiccups clear quickly and a
// short constant pause is enough.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Runner executes functions under a Policy and records the outcome of the
// most recent Do call. It is not safe for concurrent use.
type Runner struct {
	policy   Policy
	state    State
	attempts int
	lastErr  error
}

// NewRunner returns a Runner in StatePending. Attempts below 1 are raised
// to 1 so Do always runs the function at least once.
func NewRunner(policy Policy) *Runner {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Runner{policy: policy, state: StatePending}
}

// State returns the state after the most recent Do call.
func (r *Runner) State() State {
	return r.state
}

// Attempts returns how many attempts the most recent Do call made.
func (r *Runner) Attempts() int {
	return r.attempts
}

// Do runs fn until it succeeds, attempts are exhausted, or ctx is done.
// On exhaustion the returned error wraps the last attempt's error.
func (r *Runner) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	r.state = StatePending
	r.attempts = 0
	r.lastErr = nil

	for attempt := 1; attempt <= r.policy.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			r.state = StateExhausted
			return err
		}

		r.attempts = attempt
		err := fn(ctx)
		if err == nil {
			r.state = StateSucceeded
			return nil
		}
		r.lastErr = err

		if attempt == r.policy.Attempts {
			break
		}

		r.state = StateRetrying
		select {
		case <-time.After(r.policy.Delay):
		case <-ctx.Done():
			r.state = StateExhausted
			return ctx.Err()
		}
	}

	r.state = StateExhausted
	return fmt.Errorf("all %d attempts failed: %w", r.policy.Attempts, r.lastErr)
}
