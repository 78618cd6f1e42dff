package commands

import (
	"context"

	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/core/domain/services"
	"luggage/internal/core/ports"
)

// SubmitOrderCommandHandler prices a check-in, mints its order number and
// claim tag from the day's counters and stores the order. Counters and the
// order row share one transaction, so an aborted submission consumes no
// numbers.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
	lifecycle  *services.OrderLifecycle
	clock      ports.Clock
}

func NewSubmitOrderCommandHandler(
	uowFactory OrderUoWFactory,
	retrier Retrier,
	lifecycle *services.OrderLifecycle,
	clock ports.Clock,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		retrier:    retrier,
		lifecycle:  lifecycle,
		clock:      clock,
	}
}

// Handle returns the new order number.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (order.ID, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	now := h.clock.Now()
	booking, err := h.lifecycle.Book(cmd.BookingRequest(), now)
	if err != nil {
		return "", err
	}
	date := h.lifecycle.Engine().Calendar().BusinessDateOf(now)

	var created order.ID
	err = h.retrier.Do(ctx, "submit order", func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		counters := uow.CounterRepository()
		orderSeq, err := counters.Next(ctx, sequence.OrderKind, date)
		if err != nil {
			return err
		}
		tagSeq, err := counters.Next(ctx, sequence.TagKind, date)
		if err != nil {
			return err
		}

		format := sequence.FormatOrderID
		if cmd.IsManualEntry() {
			format = sequence.FormatManualOrderID
		}
		id, err := format(date, orderSeq)
		if err != nil {
			return err
		}
		tagNo, err := sequence.FormatTagNo(tagSeq)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(order.ID(id), tagNo, cmd.Customer(), booking, cmd.DeclaredPaymentMethod())
		if err != nil {
			return err
		}
		if actor := cmd.Actor(); actor != nil {
			if err = o.Touch(*actor); err != nil {
				return err
			}
		}

		if err = uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		created = o.ID()
		return nil
	})
	if err != nil {
		return "", err
	}

	return created, nil
}
