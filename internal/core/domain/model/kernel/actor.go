package kernel

import (
	"errors"

	"luggage/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Actor is the authenticated staff member performing an operation.
// Authentication itself happens outside the core; the core only needs the
// identity and whether it carries administrator rights.
type Actor struct {
	staffID UUID
	isAdmin bool

	guard guard.ConstructorGuard
}

func NewActor(staffID UUID, isAdmin bool) (Actor, error) {
	if err := staffID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{staffID: staffID, isAdmin: isAdmin, guard: guard.NewConstructorGuard()}, nil
}

// NewStaff is shorthand for a non-admin actor.
func NewStaff(staffID UUID) (Actor, error) {
	return NewActor(staffID, false)
}

// NewAdmin is shorthand for an administrator actor.
func NewAdmin(staffID UUID) (Actor, error) {
	return NewActor(staffID, true)
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) StaffID() UUID { return a.staffID }
func (a Actor) IsAdmin() bool { return a.isAdmin }

// Is reports whether the actor is the staff member identified by id.
func (a Actor) Is(id *UUID) bool {
	return id != nil && a.staffID.IsEqual(*id)
}
