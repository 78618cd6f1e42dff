package commands

import (
	"context"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/ports"
)

// closingDeps are shared by every cash closing handler.
type closingDeps struct {
	uowFactory CashClosingUoWFactory
	retrier    Retrier
	calendar   kernel.ShopCalendar
	clock      ports.Clock
}

// inTx runs fn in a fresh unit of work and commits when it succeeds.
func (d closingDeps) inTx(ctx context.Context, op string, fn func(ctx context.Context, uow CashClosingUoW) error) error {
	return d.retrier.Do(ctx, op, func(ctx context.Context) error {
		uow := d.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := fn(ctx, uow); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}

func (d closingDeps) ledgerSales(ctx context.Context, uow CashClosingUoW, date kernel.BusinessDate) (cashclosing.LedgerSales, error) {
	from, to := d.calendar.DayRange(date)
	return uow.SalesLedger().Summarize(ctx, from, to)
}

func (d closingDeps) save(
	ctx context.Context,
	uow CashClosingUoW,
	closing *cashclosing.CashClosing,
	audit cashclosing.AuditEntry,
	isNew bool,
) error {
	repo := uow.CashClosingRepository()
	var err error
	if isNew {
		err = repo.Add(ctx, closing)
	} else {
		err = repo.Update(ctx, closing)
	}
	if err != nil {
		return err
	}
	return uow.CashClosingAuditRepository().Append(ctx, audit)
}

type CreateCashClosingCommandHandler struct {
	closingDeps
}

func NewCreateCashClosingCommandHandler(
	uowFactory CashClosingUoWFactory,
	retrier Retrier,
	calendar kernel.ShopCalendar,
	clock ports.Clock,
) CreateCashClosingCommandHandler {
	return CreateCashClosingCommandHandler{closingDeps{uowFactory, retrier, calendar, clock}}
}

// Handle returns the id of the new closing.
func (h *CreateCashClosingCommandHandler) Handle(ctx context.Context, cmd CreateCashClosingCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	entry := cmd.Entry()
	now := h.clock.Now()
	var created kernel.UUID
	err := h.inTx(ctx, "create cash closing", func(ctx context.Context, uow CashClosingUoW) error {
		exists, err := uow.CashClosingRepository().ExistsFor(ctx, entry.BusinessDate, entry.ClosingType, nil)
		if err != nil {
			return err
		}
		if exists {
			return duplicateClosingError(entry)
		}

		sales, err := h.ledgerSales(ctx, uow, entry.BusinessDate)
		if err != nil {
			return err
		}
		closing, audit, err := cashclosing.NewCashClosing(kernel.NewUUID(), entry, sales, cmd.Actor(), now)
		if err != nil {
			return err
		}
		if err = h.save(ctx, uow, closing, audit, true); err != nil {
			return err
		}

		created = closing.ID()
		return nil
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return created, nil
}

type UpdateCashClosingCommandHandler struct {
	closingDeps
}

func NewUpdateCashClosingCommandHandler(
	uowFactory CashClosingUoWFactory,
	retrier Retrier,
	calendar kernel.ShopCalendar,
	clock ports.Clock,
) UpdateCashClosingCommandHandler {
	return UpdateCashClosingCommandHandler{closingDeps{uowFactory, retrier, calendar, clock}}
}

func (h *UpdateCashClosingCommandHandler) Handle(ctx context.Context, cmd UpdateCashClosingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry := cmd.Entry()
	now := h.clock.Now()
	return h.inTx(ctx, "update cash closing", func(ctx context.Context, uow CashClosingUoW) error {
		repo := uow.CashClosingRepository()
		closing, err := repo.GetForUpdate(ctx, cmd.ClosingID())
		if err != nil {
			return err
		}

		id := closing.ID()
		exists, err := repo.ExistsFor(ctx, entry.BusinessDate, entry.ClosingType, &id)
		if err != nil {
			return err
		}
		if exists {
			return duplicateClosingError(entry)
		}

		sales, err := h.ledgerSales(ctx, uow, entry.BusinessDate)
		if err != nil {
			return err
		}
		audit, err := closing.Update(entry, sales, cmd.Actor(), cmd.Reason(), now)
		if err != nil {
			return err
		}
		return h.save(ctx, uow, closing, audit, false)
	})
}

type SubmitCashClosingCommandHandler struct {
	closingDeps
}

func NewSubmitCashClosingCommandHandler(
	uowFactory CashClosingUoWFactory,
	retrier Retrier,
	clock ports.Clock,
) SubmitCashClosingCommandHandler {
	return SubmitCashClosingCommandHandler{closingDeps{uowFactory: uowFactory, retrier: retrier, clock: clock}}
}

func (h *SubmitCashClosingCommandHandler) Handle(ctx context.Context, cmd SubmitCashClosingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	return h.inTx(ctx, "submit cash closing", func(ctx context.Context, uow CashClosingUoW) error {
		closing, err := uow.CashClosingRepository().GetForUpdate(ctx, cmd.ClosingID())
		if err != nil {
			return err
		}
		audit, err := closing.Submit(cmd.Actor(), now)
		if err != nil {
			return err
		}
		return h.save(ctx, uow, closing, audit, false)
	})
}

type VerifyCashClosingCommandHandler struct {
	closingDeps
}

func NewVerifyCashClosingCommandHandler(
	uowFactory CashClosingUoWFactory,
	retrier Retrier,
	clock ports.Clock,
) VerifyCashClosingCommandHandler {
	return VerifyCashClosingCommandHandler{closingDeps{uowFactory: uowFactory, retrier: retrier, clock: clock}}
}

func (h *VerifyCashClosingCommandHandler) Handle(ctx context.Context, cmd VerifyCashClosingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	return h.inTx(ctx, "verify cash closing", func(ctx context.Context, uow CashClosingUoW) error {
		closing, err := uow.CashClosingRepository().GetForUpdate(ctx, cmd.ClosingID())
		if err != nil {
			return err
		}
		audit, err := closing.VerifyAndLock(cmd.Checklist(), cmd.Actor(), now)
		if err != nil {
			return err
		}
		return h.save(ctx, uow, closing, audit, false)
	})
}
