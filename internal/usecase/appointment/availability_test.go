package appointment

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/amai-mens-care/internal/domain/appointment"
	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

func TestGetAvailabilityExcludesOnlyScheduled(t *testing.T) {
	repo := newMemoryRepo()
	alex := repo.addBarber("Alex", 50, true)
	ctx := context.Background()

	ap := &models.Appointment{BarberID: alex.ID, Date: "2024-06-10", Time: "14:00", Status: "scheduled"}
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	uc := NewGetAvailability(repo, fastRetry())

	got := uc.Execute(ctx, alex.ID, "2024-06-10")
	assert.False(t, got.Degraded)
	assert.Len(t, got.Slots, 24)
	assert.NotContains(t, got.Slots, "14:00")
	assert.Contains(t, got.Slots, "13:30")
	assert.Contains(t, got.Slots, "14:30")

	cancelled := *ap
	cancelled.Status = "cancelled"
	require.NoError(t, repo.UpdateStatus(ctx, &cancelled, domain.StatusScheduled))

	got = uc.Execute(ctx, alex.ID, "2024-06-10")
	assert.Len(t, got.Slots, 25)
	assert.Contains(t, got.Slots, "14:00")

	other := uc.Execute(ctx, alex.ID, "2024-06-11")
	assert.Equal(t, domain.GenerateAllTimeSlots(), other.Slots)
}

func TestGetAvailabilityFailsClosed(t *testing.T) {
	repo := newMemoryRepo()
	repo.bookedErr = errors.New("permission denied")
	repo.bookedErrLeft = -1

	got := NewGetAvailability(repo, fastRetry()).Execute(context.Background(), "b1", "2024-06-10")

	assert.True(t, got.Degraded)
	assert.Empty(t, got.Slots)
	assert.NotNil(t, got.Slots)
}

func TestGetAvailabilityRetriesTransientErrors(t *testing.T) {
	repo := newMemoryRepo()
	repo.bookedErr = driver.ErrBadConn
	repo.bookedErrLeft = 2

	got := NewGetAvailability(repo, fastRetry()).Execute(context.Background(), "b1", "2024-06-10")

	assert.False(t, got.Degraded)
	assert.Len(t, got.Slots, 25)
}

func TestGetAvailabilityInvalidDate(t *testing.T) {
	got := NewGetAvailability(newMemoryRepo(), fastRetry()).Execute(context.Background(), "b1", "10/06/2024")
	assert.True(t, got.Degraded)
	assert.Empty(t, got.Slots)
}

func TestAllBarbersAvailability(t *testing.T) {
	repo := newMemoryRepo()
	alex := repo.addBarber("Alex", 50, true)
	bilal := repo.addBarber("Bilal", 40, true)
	repo.addBarber("Retired", 40, false)
	ctx := context.Background()

	require.NoError(t, repo.CreateAppointment(ctx, &models.Appointment{
		BarberID: bilal.ID, Date: "2024-06-11", Time: "10:00", Status: "scheduled",
	}))

	clock := timezone.NewFixedClock(time.Date(2024, 6, 10, 21, 0, 0, 0, time.UTC))
	uc := NewAllBarbersAvailability(repo, NewGetAvailability(repo, fastRetry()), clock, fastRetry())

	out, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, alex.ID, out[0].BarberID)
	assert.Equal(t, bilal.ID, out[1].BarberID)

	for _, b := range out {
		require.Len(t, b.Days, HorizonDays)
		assert.Equal(t, "2024-06-10", b.Days[0].Date)
		assert.Equal(t, "2024-06-23", b.Days[HorizonDays-1].Date)
	}

	assert.Len(t, out[0].Days[1].Slots, 25)
	assert.Len(t, out[1].Days[1].Slots, 24)
	assert.NotContains(t, out[1].Days[1].Slots, "10:00")
}

func TestAllBarbersAvailabilityListFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.barbersErr = errors.New("relation \"barbers\" does not exist")

	clock := timezone.NewFixedClock(time.Now())
	uc := NewAllBarbersAvailability(repo, NewGetAvailability(repo, fastRetry()), clock, fastRetry())

	_, err := uc.Execute(context.Background())
	assert.True(t, httperr.IsKind(err, httperr.KindUnavailable))
}
