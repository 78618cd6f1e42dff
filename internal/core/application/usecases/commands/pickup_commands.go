package commands

import (
	"context"
	"errors"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/services"
	"luggage/internal/core/ports"
	"luggage/internal/pkg/guard"
)

var (
	ErrCompletePickupCommandIsNotConstructed = errors.New(
		"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
	)
	ErrUndoPickupCommandIsNotConstructed = errors.New(
		"UndoPickupCommand must be created via NewUndoPickupCommand constructor",
	)
)

// CompletePickupCommand hands the luggage back and charges any overage.
type CompletePickupCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	guard guard.ConstructorGuard
}

func NewCompletePickupCommand(orderID string, actor kernel.Actor) (CompletePickupCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return CompletePickupCommand{}, err
	}
	return CompletePickupCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}

type CompletePickupCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
	lifecycle  *services.OrderLifecycle
	clock      ports.Clock
}

func NewCompletePickupCommandHandler(
	uowFactory OrderUoWFactory,
	retrier Retrier,
	lifecycle *services.OrderLifecycle,
	clock ports.Clock,
) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{uowFactory: uowFactory, retrier: retrier, lifecycle: lifecycle, clock: clock}
}

func (h *CompletePickupCommandHandler) Handle(ctx context.Context, cmd CompletePickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	return mutateOrder(ctx, h.uowFactory, h.retrier, "complete pickup", cmd.OrderID(), cmd.Actor(),
		func(_ context.Context, _ OrderUoW, o *order.Order) error {
			return h.lifecycle.CompletePickup(o, now)
		})
}

// UndoPickupCommand reverts a pickup recorded by mistake.
type UndoPickupCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	guard guard.ConstructorGuard
}

func NewUndoPickupCommand(orderID string, actor kernel.Actor) (UndoPickupCommand, error) {
	base, err := newOrderCommand(orderID, actor)
	if err != nil {
		return UndoPickupCommand{}, err
	}
	return UndoPickupCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c UndoPickupCommand) Validate() error {
	return c.guard.Validate(ErrUndoPickupCommandIsNotConstructed)
}

type UndoPickupCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
}

func NewUndoPickupCommandHandler(uowFactory OrderUoWFactory, retrier Retrier) UndoPickupCommandHandler {
	return UndoPickupCommandHandler{uowFactory: uowFactory, retrier: retrier}
}

func (h *UndoPickupCommandHandler) Handle(ctx context.Context, cmd UndoPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, h.retrier, "undo pickup", cmd.OrderID(), cmd.Actor(),
		func(_ context.Context, _ OrderUoW, o *order.Order) error {
			return o.UndoPickup()
		})
}
