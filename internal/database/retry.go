package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/classforge/engine/internal/domain"
	"github.com/classforge/engine/internal/logger"
	"github.com/classforge/engine/internal/metrics"
)

// PostgreSQL SQLSTATE codes that indicate transient contention rather than a
// business failure. Retrying the whole transaction is safe for these.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
	pgCodeQueryCanceled        = "57014"
)

// IsTransient reports whether err is a retryable store error. Business-rule
// errors and context cancellation are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrTransientStore) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable, pgCodeQueryCanceled:
			return true
		}
	}

	// Connection-level failures are safe to retry because the whole
	// transaction rolled back with the connection.
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// WithRetry runs fn up to DefaultMaxAttempts times, backing off with jitter
// between attempts, but only while failures are transient. When txTimeout is
// positive each attempt runs under its own deadline, so an attempt stuck on
// a contended row lock is cancelled instead of waiting forever. The last
// error is wrapped with domain.ErrTransientStore when all attempts are
// exhausted.
func WithRetry(ctx context.Context, op string, txTimeout time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= DefaultMaxAttempts; attempt++ {
		lastErr = runAttempt(ctx, txTimeout, fn)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == DefaultMaxAttempts {
			break
		}

		delay := backoffDelay(attempt)
		metrics.TxRetries.Inc()
		logger.FromContext(ctx).Warn(LogMsgRetryingTransientError,
			"operation", op,
			"attempt", attempt,
			"delay", delay,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("%w: %s after %d attempts: %v", domain.ErrTransientStore, op, DefaultMaxAttempts, lastErr)
}

func runAttempt(ctx context.Context, txTimeout time.Duration, fn func(ctx context.Context) error) error {
	if txTimeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()
	return fn(attemptCtx)
}

// backoffDelay doubles the base delay per attempt and adds up to 50% jitter
// so retrying transactions don't re-collide in lockstep.
func backoffDelay(attempt int) time.Duration {
	base := time.Duration(DefaultBackoffBaseMS) * time.Millisecond << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))
	return base + jitter
}
