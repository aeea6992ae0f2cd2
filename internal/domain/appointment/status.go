package appointment

import "github.com/BruksfildServices01/amai-mens-care/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// BlocksSlot reports whether an appointment in this status occupies its slot.
func (s Status) BlocksSlot() bool {
	return s == StatusScheduled
}

// CountsAsCut reports whether the appointment is included in cut counters,
// revenue and commission.
func (s Status) CountsAsCut() bool {
	return s == StatusScheduled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanTransition allows only scheduled -> terminal. Terminal states are one-way.
func CanTransition(from, to Status) error {
	if from != StatusScheduled || !to.IsTerminal() {
		return httperr.ErrConflict(httperr.CodeInvalidTransition)
	}
	return nil
}

// ===============================
// Appointment Type
// ===============================

type Type string

const (
	TypeAppointment Type = "appointment"
	TypeWalkIn      Type = "walk-in"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeAppointment, nil
	case TypeAppointment, TypeWalkIn:
		return Type(s), nil
	}
	return "", httperr.ErrBusiness("invalid_type")
}

// InitialStatus is scheduled for bookings; walk-ins are served on arrival.
func InitialStatus(t Type) Status {
	if t == TypeWalkIn {
		return StatusCompleted
	}
	return StatusScheduled
}
