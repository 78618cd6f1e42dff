package commands

import (
	"context"

	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/model/order"
)

// mutateOrder locks the order row, applies mutate and writes the whole row
// back with a version bump, retrying the transaction on conflicts.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	retrier Retrier,
	op string,
	id order.ID,
	actor kernel.Actor,
	mutate func(ctx context.Context, uow OrderUoW, o *order.Order) error,
) error {
	return retrier.Do(ctx, op, func(ctx context.Context) error {
		uow := uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err = mutate(ctx, uow, o); err != nil {
			return err
		}
		if err = o.Touch(actor); err != nil {
			return err
		}

		if err = repo.Update(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}

// orderCommand carries the fields every order transition needs.
type orderCommand struct {
	orderID order.ID
	actor   kernel.Actor
}

func newOrderCommand(rawID string, actor kernel.Actor) (orderCommand, error) {
	id, err := order.ParseID(rawID)
	if err != nil {
		return orderCommand{}, err
	}
	if err = actor.Validate(); err != nil {
		return orderCommand{}, err
	}
	return orderCommand{orderID: id, actor: actor}, nil
}

func (c orderCommand) OrderID() order.ID { return c.orderID }
func (c orderCommand) Actor() kernel.Actor { return c.actor }
