package appointment

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap into to, stamping completion/cancellation times.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled, StatusNoShow:
		ap.CancelledAt = &now
	}
	return nil
}

// Commission is price x rate% rounded to cents.
func Commission(price, ratePercent float64) float64 {
	return math.Round(price*ratePercent) / 100
}

// IsPersistedClientID rejects empty and placeholder ids such as "guest";
// persisted clients always carry a non-nil UUID.
func IsPersistedClientID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) < 32 {
		return false
	}
	parsed, err := uuid.Parse(id)
	return err == nil && parsed != uuid.Nil
}
