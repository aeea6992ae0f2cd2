// Package retry runs idempotent reads with exponential backoff and jitter.
// Writes are never passed through here.
package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
)

type Config struct {
	MaxAttempts         int
	InitialDelay        time.Duration
	MaxDelay            time.Duration
	BackoffFactor       float64
	RandomizationFactor float64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:         3,
		InitialDelay:        200 * time.Millisecond,
		MaxDelay:            2 * time.Second,
		BackoffFactor:       2.0,
		RandomizationFactor: 0.2,
	}
}

func (c Config) policy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialDelay
	b.MaxInterval = c.MaxDelay
	b.Multiplier = c.BackoffFactor
	b.RandomizationFactor = c.RandomizationFactor
	b.MaxElapsedTime = 0

	retries := c.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// Do calls fn until it succeeds, returns a non-retryable error, or attempts
// run out. A non-retryable error is returned as is. When attempts run out on
// a transient error the result reads as ErrUnavailable and still unwraps to
// the last cause.
func Do(ctx context.Context, cfg Config, op string, fn func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Warn().
			Err(err).
			Str("op", op).
			Int("attempt", attempt).
			Dur("next_delay", next).
			Msg("retrying")
	}

	err := backoff.RetryNotify(operation, cfg.policy(ctx), notify)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	if IsRetryable(err) {
		return &exhaustedError{op: op, cause: err}
	}
	return err
}

// exhaustedError is a transient failure that outlived its retries.
type exhaustedError struct {
	op    string
	cause error
}

func (e *exhaustedError) Error() string {
	return e.op + ": retries exhausted: " + e.cause.Error()
}

func (e *exhaustedError) Unwrap() error { return e.cause }

// As exposes the error as httperr's ServiceUnavailable.
func (e *exhaustedError) As(target any) bool {
	be, ok := target.(*httperr.BusinessError)
	if !ok {
		return false
	}
	*be = httperr.ErrUnavailable(httperr.CodeServiceUnavailable).(httperr.BusinessError)
	return true
}

// DoValue is Do for functions returning a value.
func DoValue[T any](ctx context.Context, cfg Config, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, cfg, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// httpStatusError matches smithy/AWS response errors without importing them.
type httpStatusError interface {
	HTTPStatusCode() int
}

// IsRetryable reports whether err is transient: lost connections, timeouts,
// serialization failures, exhausted pools and throttled or failed upstreams.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return retryablePgCode(pgErr.Code)
	}

	var hs httpStatusError
	if errors.As(err, &hs) {
		code := hs.HTTPStatusCode()
		return code == 429 || code >= 500
	}

	if pgconn.Timeout(err) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func retryablePgCode(code string) bool {
	if strings.HasPrefix(code, "08") {
		return true
	}
	switch code {
	case "40001", "40P01", "53300", "57P01", "57P02", "57P03":
		return true
	}
	return false
}
