// Package poll repeatedly evaluates a condition with bounded attempts and a growing interval.
//
// It is the single polling primitive used for every readiness check against container state:
// "container is running" and "container has an address" share the same Config.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrConditionNotMet is returned when every attempt completed without the condition holding.
var ErrConditionNotMet = errors.New("condition not met")

// ErrInvalidConfig is returned when a Config cannot drive a poll loop.
var ErrInvalidConfig = errors.New("invalid poll config")

var errPending = errors.New("condition pending")

// Config bounds a poll loop.
type Config struct {
	// Attempts is the maximum number of times the condition is evaluated.
	Attempts int
	// Interval is the wait before the second attempt.
	Interval time.Duration
	// Multiplier scales the wait after every attempt. 1 keeps the interval fixed.
	Multiplier float64
	// MaxInterval caps the wait. Zero means Interval.
	MaxInterval time.Duration
	// OnRetry, when set, is called before each wait with the last condition error
	// (nil when the condition simply did not hold yet).
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Condition reports whether the awaited state was reached. Returning an error wrapped with
// Permanent stops polling immediately; any other error counts as a failed attempt.
type Condition func(ctx context.Context) (bool, error)

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Validate checks that c can drive a poll loop.
func (c Config) Validate() error {
	switch {
	case c.Attempts < 1:
		return fmt.Errorf("%w: attempts must be at least 1, got %d", ErrInvalidConfig, c.Attempts)
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	case c.Multiplier < 1:
		return fmt.Errorf("%w: multiplier must be at least 1, got %g", ErrInvalidConfig, c.Multiplier)
	}

	return nil
}

func (c Config) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.Interval
	exp.Multiplier = c.Multiplier
	exp.RandomizationFactor = 0
	exp.MaxInterval = max(c.MaxInterval, c.Interval)
	exp.MaxElapsedTime = 0
	exp.Reset()

	//nolint:gosec // Attempts is validated to be at least 1.
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.Attempts-1)), ctx)
}

// Until evaluates cond until it holds, the attempts are exhausted, cond returns a permanent
// error, or ctx is done.
func Until(ctx context.Context, cfg Config, cond Condition) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	var (
		attempt      int
		lastErr      error
		permanentErr error
	)

	operation := func() error {
		attempt++

		done, condErr := cond(ctx)

		var permErr *backoff.PermanentError
		if errors.As(condErr, &permErr) {
			permanentErr = condErr

			return permErr
		}

		lastErr = condErr

		switch {
		case condErr != nil:
			return condErr
		case done:
			return nil
		default:
			return errPending
		}
	}

	notify := func(err error, wait time.Duration) {
		if cfg.OnRetry == nil {
			return
		}

		if errors.Is(err, errPending) {
			err = nil
		}

		cfg.OnRetry(attempt, err, wait)
	}

	err = backoff.RetryNotify(operation, cfg.backOff(ctx), notify)

	switch {
	case err == nil:
		return nil
	case permanentErr != nil:
		return permanentErr
	case ctx.Err() != nil:
		return fmt.Errorf("polling aborted after %d attempts: %w", attempt, ctx.Err())
	case lastErr != nil:
		return fmt.Errorf("%w after %d attempts: %w", ErrConditionNotMet, attempt, lastErr)
	default:
		return fmt.Errorf("%w after %d attempts", ErrConditionNotMet, attempt)
	}
}
