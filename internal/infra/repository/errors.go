package repository

import (
	stderrors "errors"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
)

const (
	pgUniqueViolation = "23505"
	// Raised when an id is not a valid uuid literal.
	pgInvalidTextRepresentation = "22P02"
)

// Name of the partial unique index guarding scheduled slots.
const scheduledSlotIndex = "idx_appointments_scheduled_slot"

func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr, true
	}
	return nil, false
}

// mapCreateAppointmentErr turns a lost race on the scheduled-slot index into
// a slot conflict.
func mapCreateAppointmentErr(err error) error {
	if err == nil {
		return nil
	}
	if pgErr, ok := isUniqueViolation(err); ok {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == scheduledSlotIndex {
			return httperr.ErrConflict(httperr.CodeSlotConflict)
		}
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrConflict(httperr.CodeSlotConflict)
	}
	return errors.Wrap(err, "create appointment")
}

func isMalformedID(err error) bool {
	var pgErr *pgconn.PgError
	return stderrors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

// notFoundAs converts gorm's not-found, and a lookup by an id that cannot
// exist, into a business error carrying code.
func notFoundAs(err error, code, op string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) || isMalformedID(err) {
		return httperr.ErrNotFound(code)
	}
	return errors.Wrap(err, op)
}
