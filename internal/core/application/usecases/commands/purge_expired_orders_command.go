package commands

import (
	"context"
	"errors"
	"time"

	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

var ErrPurgeExpiredOrdersCommandIsNotConstructed = errors.New(
	"PurgeExpiredOrdersCommand must be created via NewPurgeExpiredOrdersCommand constructor",
)

// PurgeExpiredOrdersCommand deletes orders created more than retention
// before now.
type PurgeExpiredOrdersCommand struct { //nolint:recvcheck //using for validation
	now       time.Time
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeExpiredOrdersCommand(now time.Time, retention time.Duration) (PurgeExpiredOrdersCommand, error) {
	if now.IsZero() {
		return PurgeExpiredOrdersCommand{}, errs.NewValueIsRequiredError("now")
	}
	if retention <= 0 {
		return PurgeExpiredOrdersCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "unbounded")
	}
	return PurgeExpiredOrdersCommand{now: now, retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeExpiredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredOrdersCommandIsNotConstructed)
}

// Cutoff is the creation time below which orders are deleted.
func (c PurgeExpiredOrdersCommand) Cutoff() time.Time {
	return c.now.Add(-c.retention)
}

type PurgeExpiredOrdersCommandHandler struct {
	uowFactory RetentionUoWFactory
	retrier    Retrier
}

func NewPurgeExpiredOrdersCommandHandler(uowFactory RetentionUoWFactory, retrier Retrier) PurgeExpiredOrdersCommandHandler {
	return PurgeExpiredOrdersCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle returns the number of deleted orders.
func (h *PurgeExpiredOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var deleted int64
	err := h.retrier.Do(ctx, "purge expired orders", func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		n, err := uow.OrderRetention().DeleteCreatedBefore(ctx, cmd.Cutoff())
		if err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
