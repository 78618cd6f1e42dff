package commands

import (
	"context"
	"errors"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/pkg/guard"
)

var ErrNextSequenceCommandIsNotConstructed = errors.New(
	"NextSequenceCommand must be created via NewNextSequenceCommand constructor",
)

// NextSequenceCommand draws one number from a daily counter on its own,
// outside order submission.
type NextSequenceCommand struct { //nolint:recvcheck //using for validation
	kind sequence.Kind
	date kernel.BusinessDate

	guard guard.ConstructorGuard
}

func NewNextSequenceCommand(kind sequence.Kind, date kernel.BusinessDate) (NextSequenceCommand, error) {
	if err := errors.Join(kind.Validate(), date.Validate()); err != nil {
		return NextSequenceCommand{}, err
	}
	return NextSequenceCommand{kind: kind, date: date, guard: guard.NewConstructorGuard()}, nil
}

func (c NextSequenceCommand) Validate() error {
	return c.guard.Validate(ErrNextSequenceCommandIsNotConstructed)
}

func (c NextSequenceCommand) Kind() sequence.Kind { return c.kind }
func (c NextSequenceCommand) Date() kernel.BusinessDate { return c.date }

type NextSequenceCommandHandler struct {
	uowFactory CounterUoWFactory
	retrier    Retrier
}

func NewNextSequenceCommandHandler(uowFactory CounterUoWFactory, retrier Retrier) NextSequenceCommandHandler {
	return NextSequenceCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

// Handle returns the incremented counter value.
func (h *NextSequenceCommandHandler) Handle(ctx context.Context, cmd NextSequenceCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var next int
	err := h.retrier.Do(ctx, "next sequence", func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		seq, err := uow.CounterRepository().Next(ctx, cmd.Kind(), cmd.Date())
		if err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		next = seq
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
