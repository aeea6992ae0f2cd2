package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "Europe/Berlin", Location("Europe/Berlin").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.False(t, IsValid(""))
}

func TestParseDate(t *testing.T) {
	_, ok := ParseDate("2024-06-10")
	assert.True(t, ok)

	for _, bad := range []string{"2024-6-10", "2024-02-30", "10/06/2024", "", "2024-06-10T00:00:00Z"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestNextDays(t *testing.T) {
	loc := Location("Europe/Berlin")
	// Crosses the spring DST switch on 2024-03-31.
	from := time.Date(2024, 3, 29, 23, 45, 0, 0, loc)

	days := NextDays(from, 4)
	assert.Equal(t, []string{"2024-03-29", "2024-03-30", "2024-03-31", "2024-04-01"}, days)
	assert.Len(t, NextDays(from, 14), 14)
}

func TestFixedClock(t *testing.T) {
	c := NewFixedClock(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-06-10", Today(c))

	c.Set(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2024-12-31", Today(c))
}
