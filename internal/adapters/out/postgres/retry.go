package postgres

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"luggage/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes worth retrying the whole transaction for.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// RetryObserver is told about every retry and every give-up.
type RetryObserver interface {
	Retried(op string)
	Exhausted(op string)
}

type nopRetryObserver struct{}

func (nopRetryObserver) Retried(string) {}
func (nopRetryObserver) Exhausted(string) {}

// Retrier reruns a transaction body on serialization failures, deadlocks
// and lock timeouts with jittered exponential backoff.
type Retrier struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	observer    RetryObserver
	logger      *slog.Logger
}

type RetrierOption func(*Retrier)

func WithRetryObserver(o RetryObserver) RetrierOption {
	return func(r *Retrier) {
		if o != nil {
			r.observer = o
		}
	}
}

func WithBackoff(base, maxDelay time.Duration) RetrierOption {
	return func(r *Retrier) {
		r.baseDelay = base
		r.maxDelay = maxDelay
	}
}

// NewRetrier allows maxAttempts runs in total; values below 1 mean one.
func NewRetrier(maxAttempts int, logger *slog.Logger, opts ...RetrierOption) *Retrier {
	r := &Retrier{
		maxAttempts: max(maxAttempts, 1),
		baseDelay:   10 * time.Millisecond,
		maxDelay:    500 * time.Millisecond,
		observer:    nopRetryObserver{},
		logger:      logger.With("component", "tx_retrier"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do runs fn until it succeeds, fails with a non-retryable error or the
// attempts run out. Exhaustion is reported as errs.TransientError.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil || !IsRetryable(err) {
			return err
		}

		if attempt >= r.maxAttempts {
			r.observer.Exhausted(op)
			r.logger.WarnContext(ctx, "transaction retries exhausted", "op", op, "attempts", attempt, "error", err)
			return errs.NewTransientError(op, attempt, err)
		}

		r.observer.Retried(op)
		r.logger.DebugContext(ctx, "retrying transaction", "op", op, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay(attempt)):
		}
	}
}

func (r *Retrier) delay(attempt int) time.Duration {
	d := r.baseDelay << (attempt - 1)
	if d <= 0 || d > r.maxDelay {
		d = r.maxDelay
	}
	if d <= 0 {
		return 0
	}
	// Full jitter keeps competing transactions from retrying in lockstep.
	return time.Duration(rand.Int64N(int64(d) + 1))
}

// IsRetryable reports whether err carries one of the transient SQLSTATEs.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	default:
		return false
	}
}
