package commands

import (
	"context"
	"errors"
	"time"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/membership"
	"luggage/internal/core/domain/model/order"
	"luggage/internal/core/domain/services"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

var (
	ErrEditPickupScheduleCommandIsNotConstructed = errors.New(
		"EditPickupScheduleCommand must be created via NewEditPickupScheduleCommand constructor",
	)
	ErrRecalculatePrepaidCommandIsNotConstructed = errors.New(
		"RecalculatePrepaidCommand must be created via NewRecalculatePrepaidCommand constructor",
	)
)

// Repricing holds the optional pricing inputs shared by schedule edits and
// prepaid recalculation. A nil Tier keeps the order's tier; a nil
// StaffPrepaidAmount returns the order to the automatic amount.
type Repricing struct {
	Tier               *membership.Tier
	StaffPrepaidAmount *int64
}

func (r Repricing) validate() error {
	if r.StaffPrepaidAmount != nil && *r.StaffPrepaidAmount < 0 {
		return errs.NewValueIsOutOfRangeError("staffPrepaidAmount", *r.StaffPrepaidAmount, 0, "unbounded")
	}
	return nil
}

// EditPickupScheduleCommand moves the expected pickup and reprices.
type EditPickupScheduleCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	pickupAt  time.Time
	repricing Repricing

	guard guard.ConstructorGuard
}

func NewEditPickupScheduleCommand(
	orderID string,
	pickupAt time.Time,
	repricing Repricing,
	actor kernel.Actor,
) (EditPickupScheduleCommand, error) {
	base, idErr := newOrderCommand(orderID, actor)
	var pickupErr error
	if pickupAt.IsZero() {
		pickupErr = errs.NewValueIsRequiredError("expectedPickupAt")
	}
	if err := errors.Join(idErr, pickupErr, repricing.validate()); err != nil {
		return EditPickupScheduleCommand{}, err
	}

	return EditPickupScheduleCommand{
		orderCommand: base,
		pickupAt:     pickupAt,
		repricing:    repricing,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c EditPickupScheduleCommand) Validate() error {
	return c.guard.Validate(ErrEditPickupScheduleCommandIsNotConstructed)
}

func (c EditPickupScheduleCommand) PickupAt() time.Time { return c.pickupAt }
func (c EditPickupScheduleCommand) Repricing() Repricing { return c.repricing }

type EditPickupScheduleCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
	lifecycle  *services.OrderLifecycle
}

func NewEditPickupScheduleCommandHandler(
	uowFactory OrderUoWFactory,
	retrier Retrier,
	lifecycle *services.OrderLifecycle,
) EditPickupScheduleCommandHandler {
	return EditPickupScheduleCommandHandler{uowFactory: uowFactory, retrier: retrier, lifecycle: lifecycle}
}

func (h *EditPickupScheduleCommandHandler) Handle(ctx context.Context, cmd EditPickupScheduleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r := cmd.Repricing()
	return mutateOrder(ctx, h.uowFactory, h.retrier, "edit pickup schedule", cmd.OrderID(), cmd.Actor(),
		func(_ context.Context, _ OrderUoW, o *order.Order) error {
			return h.lifecycle.EditPickupSchedule(o, cmd.PickupAt(), r.Tier, r.StaffPrepaidAmount)
		})
}

// RecalculatePrepaidCommand reprices an order for a day count, tier or
// staff amount without moving the pickup.
type RecalculatePrepaidCommand struct { //nolint:recvcheck //using for validation
	orderCommand
	days      *int
	repricing Repricing

	guard guard.ConstructorGuard
}

func NewRecalculatePrepaidCommand(
	orderID string,
	days *int,
	repricing Repricing,
	actor kernel.Actor,
) (RecalculatePrepaidCommand, error) {
	base, idErr := newOrderCommand(orderID, actor)
	if err := errors.Join(idErr, repricing.validate()); err != nil {
		return RecalculatePrepaidCommand{}, err
	}

	var d *int
	if days != nil {
		v := *days
		d = &v
	}
	return RecalculatePrepaidCommand{
		orderCommand: base,
		days:         d,
		repricing:    repricing,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c RecalculatePrepaidCommand) Validate() error {
	return c.guard.Validate(ErrRecalculatePrepaidCommandIsNotConstructed)
}

func (c RecalculatePrepaidCommand) Days() *int { return c.days }
func (c RecalculatePrepaidCommand) Repricing() Repricing { return c.repricing }

type RecalculatePrepaidCommandHandler struct {
	uowFactory OrderUoWFactory
	retrier    Retrier
	lifecycle  *services.OrderLifecycle
}

func NewRecalculatePrepaidCommandHandler(
	uowFactory OrderUoWFactory,
	retrier Retrier,
	lifecycle *services.OrderLifecycle,
) RecalculatePrepaidCommandHandler {
	return RecalculatePrepaidCommandHandler{uowFactory: uowFactory, retrier: retrier, lifecycle: lifecycle}
}

func (h *RecalculatePrepaidCommandHandler) Handle(ctx context.Context, cmd RecalculatePrepaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r := cmd.Repricing()
	return mutateOrder(ctx, h.uowFactory, h.retrier, "recalculate prepaid", cmd.OrderID(), cmd.Actor(),
		func(_ context.Context, _ OrderUoW, o *order.Order) error {
			return h.lifecycle.RecalculatePrepaid(o, cmd.Days(), r.Tier, r.StaffPrepaidAmount)
		})
}
