package commands

import (
	"context"
	"errors"
	"strings"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/model/sequence"
	"luggage/internal/core/domain/services"
	"luggage/internal/pkg/guard"
)

var ErrMarkOrderPaidCommandIsNotConstructed = errors.New(
	"MarkOrderPaidCommand must be created via NewMarkOrderPaidCommand constructor",
)

// MarkOrderPaidCommand records payment. TagNo optionally replaces the claim
// tag; when empty and the order has none, one is issued from the TAG
// counter of the order's business date.
type MarkOrderPaidCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	method order.PaymentMethod
	tagNo  string

	guard guard.ConstructorGuard
}

func NewMarkOrderPaidCommand(orderID, method, tagNo string, actor kernel.Actor) (MarkOrderPaidCommand, error) {
	base, idErr := newOrderCommand(orderID, actor)
	m, methodErr := order.ParsePaymentMethod(method)
	if err := errors.Join(idErr, methodErr); err != nil {
		return MarkOrderPaidCommand{}, err
	}

	return MarkOrderPaidCommand{
		orderCommand: base,
		method:       m,
		tagNo:        strings.TrimSpace(tagNo),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPaidCommandIsNotConstructed)
}

func (c MarkOrderPaidCommand) Method() order.PaymentMethod { return c.method }
func (c MarkOrderPaidCommand) TagNo() string { return c.tagNo }

type MarkOrderPaidCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
	engine     *services.PricingEngine
}

func NewMarkOrderPaidCommandHandler(
	uowFactory OrderUoWFactory,
	retrier Retrier,
	engine *services.PricingEngine,
) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{uowFactory: uowFactory, retrier: retrier, engine: engine}
}

func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.retrier, "mark order paid", cmd.OrderID(), cmd.Actor(),
		func(ctx context.Context, uow OrderUoW, o *order.Order) error {
			if err := o.MarkPaid(cmd.Method()); err != nil {
				return err
			}

			switch {
			case cmd.TagNo() != "":
				return o.AssignTag(cmd.TagNo())
			case o.NeedsTag():
				date := h.engine.Calendar().BusinessDateOf(o.CreatedAt())
				seq, err := uow.CounterRepository().Next(ctx, sequence.TagKind, date)
				if err != nil {
					return err
				}
				tagNo, err := sequence.FormatTagNo(seq)
				if err != nil {
					return err
				}
				return o.AssignTag(tagNo)
			default:
				return nil
			}
		})
}
