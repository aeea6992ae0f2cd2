package timezone

import "time"

const (
	DefaultTimezone = "Africa/Cairo"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC, for unknown names.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate accepts only YYYY-MM-DD calendar dates.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// ======================================================
// Clock
// ======================================================

type Clock interface {
	Now() time.Time
}

// ShopClock reports wall time in the shop's timezone.
type ShopClock struct {
	loc *time.Location
}

func NewShopClock(tz string) *ShopClock {
	return &ShopClock{loc: Location(tz)}
}

func (c *ShopClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type FixedClock struct {
	current time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

func (c *FixedClock) Now() time.Time {
	return c.current
}

func (c *FixedClock) Set(t time.Time) {
	c.current = t
}

// Today is the clock's current calendar date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// NextDays returns n consecutive dates starting at from's calendar day.
func NextDays(from time.Time, n int) []string {
	start := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, from.Location())
	out := make([]string, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return out
}
