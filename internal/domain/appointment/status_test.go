package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("no-show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseStatus("done")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if from == StatusScheduled && to != StatusScheduled {
				assert.NoError(t, err, "%s -> %s", from, to)
				continue
			}
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(ap, StatusCompleted, now))
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.Equal(t, now, *ap.CompletedAt)

	err := Transition(ap, StatusCancelled, now)
	assert.Error(t, err)
	assert.Equal(t, "completed", ap.Status)

	cancelled := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Transition(cancelled, StatusNoShow, now))
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Nil(t, cancelled.CompletedAt)
}

func TestStatusFlags(t *testing.T) {
	assert.True(t, StatusScheduled.BlocksSlot())
	assert.False(t, StatusCancelled.BlocksSlot())
	assert.False(t, StatusNoShow.BlocksSlot())
	assert.True(t, StatusCompleted.CountsAsCut())
	assert.False(t, StatusNoShow.CountsAsCut())
}

func TestParseType(t *testing.T) {
	tp, err := ParseType("")
	require.NoError(t, err)
	assert.Equal(t, TypeAppointment, tp)

	tp, err = ParseType("walk-in")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, InitialStatus(tp))
	assert.Equal(t, StatusScheduled, InitialStatus(TypeAppointment))

	_, err = ParseType("drop-in")
	assert.Error(t, err)
}
