package commands

import (
	"errors"
	"fmt"

	"luggage/internal/core/domain/model/cashclosing"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/pkg/errs"
	"luggage/internal/pkg/guard"
)

var (
	ErrCreateCashClosingCommandIsNotConstructed = errors.New(
		"CreateCashClosingCommand must be created via NewCreateCashClosingCommand constructor",
	)
	ErrUpdateCashClosingCommandIsNotConstructed = errors.New(
		"UpdateCashClosingCommand must be created via NewUpdateCashClosingCommand constructor",
	)
	ErrSubmitCashClosingCommandIsNotConstructed = errors.New(
		"SubmitCashClosingCommand must be created via NewSubmitCashClosingCommand constructor",
	)
	ErrVerifyCashClosingCommandIsNotConstructed = errors.New(
		"VerifyCashClosingCommand must be created via NewVerifyCashClosingCommand constructor",
	)
)

// ClosingEntryParams is the raw drawer count form.
type ClosingEntryParams struct {
	BusinessDate string
	ClosingType  string
	Counts       map[int64]int
	// ReportedQR below zero, or nil, means "take the ledger QR total".
	ReportedQR *int64
	OwnerName  string
	Note       string
}

func (p ClosingEntryParams) toEntry() (cashclosing.Entry, error) {
	date, dateErr := kernel.ParseBusinessDate(p.BusinessDate)
	closingType, typeErr := cashclosing.ParseClosingType(p.ClosingType)
	counts, countsErr := cashclosing.NewCounts(p.Counts)
	if err := errors.Join(dateErr, typeErr, countsErr); err != nil {
		return cashclosing.Entry{}, err
	}

	var reported *int64
	if p.ReportedQR != nil {
		v := *p.ReportedQR
		reported = &v
	}
	return cashclosing.Entry{
		BusinessDate: date,
		ClosingType:  closingType,
		Counts:       counts,
		ReportedQR:   reported,
		OwnerName:    p.OwnerName,
		Note:         p.Note,
	}, nil
}

// CreateCashClosingCommand records a new drawer count.
type CreateCashClosingCommand struct { //nolint:recvcheck //using for validation
	entry cashclosing.Entry
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateCashClosingCommand(p ClosingEntryParams, actor kernel.Actor) (CreateCashClosingCommand, error) {
	entry, entryErr := p.toEntry()
	if err := errors.Join(entryErr, actor.Validate()); err != nil {
		return CreateCashClosingCommand{}, err
	}
	return CreateCashClosingCommand{entry: entry, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCashClosingCommand) Validate() error {
	return c.guard.Validate(ErrCreateCashClosingCommandIsNotConstructed)
}

func (c CreateCashClosingCommand) Entry() cashclosing.Entry { return c.entry }
func (c CreateCashClosingCommand) Actor() kernel.Actor { return c.actor }

// UpdateCashClosingCommand recounts an existing closing. Reason is
// mandatory when an admin reopens a locked closing.
type UpdateCashClosingCommand struct { //nolint:recvcheck //using for validation
	closingID kernel.UUID
	entry     cashclosing.Entry
	reason    string
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateCashClosingCommand(
	closingID kernel.UUID,
	p ClosingEntryParams,
	reason string,
	actor kernel.Actor,
) (UpdateCashClosingCommand, error) {
	entry, entryErr := p.toEntry()
	if err := errors.Join(closingID.Validate(), entryErr, actor.Validate()); err != nil {
		return UpdateCashClosingCommand{}, err
	}
	return UpdateCashClosingCommand{
		closingID: closingID,
		entry:     entry,
		reason:    reason,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCashClosingCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCashClosingCommandIsNotConstructed)
}

func (c UpdateCashClosingCommand) ClosingID() kernel.UUID { return c.closingID }
func (c UpdateCashClosingCommand) Entry() cashclosing.Entry { return c.entry }
func (c UpdateCashClosingCommand) Reason() string { return c.reason }
func (c UpdateCashClosingCommand) Actor() kernel.Actor { return c.actor }

// SubmitCashClosingCommand hands a closing over for review.
type SubmitCashClosingCommand struct { //nolint:recvcheck //using for validation
	closingID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewSubmitCashClosingCommand(closingID kernel.UUID, actor kernel.Actor) (SubmitCashClosingCommand, error) {
	if err := errors.Join(closingID.Validate(), actor.Validate()); err != nil {
		return SubmitCashClosingCommand{}, err
	}
	return SubmitCashClosingCommand{closingID: closingID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitCashClosingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCashClosingCommandIsNotConstructed)
}

func (c SubmitCashClosingCommand) ClosingID() kernel.UUID { return c.closingID }
func (c SubmitCashClosingCommand) Actor() kernel.Actor { return c.actor }

// VerifyCashClosingCommand confirms the checklist and locks the closing.
type VerifyCashClosingCommand struct { //nolint:recvcheck //using for validation
	closingID kernel.UUID
	checklist cashclosing.Checklist
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewVerifyCashClosingCommand(
	closingID kernel.UUID,
	checklist cashclosing.Checklist,
	actor kernel.Actor,
) (VerifyCashClosingCommand, error) {
	if err := errors.Join(closingID.Validate(), actor.Validate()); err != nil {
		return VerifyCashClosingCommand{}, err
	}
	return VerifyCashClosingCommand{
		closingID: closingID,
		checklist: checklist,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyCashClosingCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCashClosingCommandIsNotConstructed)
}

func (c VerifyCashClosingCommand) ClosingID() kernel.UUID { return c.closingID }
func (c VerifyCashClosingCommand) Checklist() cashclosing.Checklist { return c.checklist }
func (c VerifyCashClosingCommand) Actor() kernel.Actor { return c.actor }

func duplicateClosingError(entry cashclosing.Entry) error {
	return errs.NewUniquenessConflictError(
		"cashClosing",
		fmt.Sprintf("%s/%s", entry.BusinessDate, entry.ClosingType),
	)
}
