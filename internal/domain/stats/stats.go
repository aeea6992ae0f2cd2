// Package stats rolls appointment rows up into the dashboard figures.
// Everything here is pure; callers load rows and pass the shop-local "today".
package stats

import (
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// Row is the projection of an appointment the aggregations need.
type Row struct {
	BarberID   string
	Date       string
	Type       string
	Status     string
	Price      float64
	Commission float64
}

func (r Row) counted() bool {
	return r.Status == "scheduled" || r.Status == "completed"
}

type Bucket struct {
	Label        string  `json:"label"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Appointments int     `json:"appointments"`
	WalkIns      int     `json:"walk_ins"`
	Total        int     `json:"total"`
	Revenue      float64 `json:"revenue"`
	Commission   float64 `json:"commission"`
}

func (b *Bucket) add(r Row) {
	if r.Type == "walk-in" {
		b.WalkIns++
	} else {
		b.Appointments++
	}
	b.Total++
	b.Revenue += r.Price
	b.Commission += r.Commission
}

func (b *Bucket) round() {
	b.Revenue = round2(b.Revenue)
	b.Commission = round2(b.Commission)
}

type Summary struct {
	TotalCuts              int     `json:"total_cuts"`
	Appointments           int     `json:"appointments"`
	WalkIns                int     `json:"walk_ins"`
	AppointmentsPercentage int     `json:"appointments_percentage"`
	WalkInsPercentage      int     `json:"walk_ins_percentage"`
	Revenue                float64 `json:"revenue"`
	Commission             float64 `json:"commission"`
}

type Trends struct {
	Cuts       int `json:"cuts"`
	Revenue    int `json:"revenue"`
	Commission int `json:"commission"`
}

// Percentage is count/total as a rounded whole percent, 0 when total is 0.
func Percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// Trend is the rounded percent change from previous to current.
// A rise from zero counts as +100.
func Trend(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}

func Summarize(rows []Row) Summary {
	var b Bucket
	for _, r := range rows {
		if r.counted() {
			b.add(r)
		}
	}
	return Summary{
		TotalCuts:              b.Total,
		Appointments:           b.Appointments,
		WalkIns:                b.WalkIns,
		AppointmentsPercentage: Percentage(b.Appointments, b.Total),
		WalkInsPercentage:      Percentage(b.WalkIns, b.Total),
		Revenue:                round2(b.Revenue),
		Commission:             round2(b.Commission),
	}
}

// Daily returns one bucket per day for the last n days ending today, oldest first.
func Daily(rows []Row, today time.Time, n int) []Bucket {
	today = dateOnly(today)
	buckets := make([]Bucket, n)
	for i := range buckets {
		d := today.AddDate(0, 0, i-n+1)
		buckets[i] = Bucket{
			Label: d.Format("Mon"),
			Start: d.Format(dateLayout),
			End:   d.Format(dateLayout),
		}
	}
	return fill(rows, buckets)
}

// Weekly returns n Sunday-start weeks ending with the current one, oldest first.
func Weekly(rows []Row, today time.Time, n int) []Bucket {
	current := WeekStart(today)
	buckets := make([]Bucket, n)
	for i := range buckets {
		start := current.AddDate(0, 0, 7*(i-n+1))
		buckets[i] = Bucket{
			Label: start.Format("Jan 2"),
			Start: start.Format(dateLayout),
			End:   start.AddDate(0, 0, 6).Format(dateLayout),
		}
	}
	return fill(rows, buckets)
}

// Monthly returns n calendar months ending with the current one, oldest first.
func Monthly(rows []Row, today time.Time, n int) []Bucket {
	current := MonthStart(today)
	buckets := make([]Bucket, n)
	for i := range buckets {
		start := current.AddDate(0, i-n+1, 0)
		buckets[i] = Bucket{
			Label: start.Format("Jan 2006"),
			Start: start.Format(dateLayout),
			End:   start.AddDate(0, 1, -1).Format(dateLayout),
		}
	}
	return fill(rows, buckets)
}

// MonthOverMonth compares the current calendar month with the previous one.
func MonthOverMonth(rows []Row, today time.Time) Trends {
	months := Monthly(rows, today, 2)
	prev, cur := months[0], months[1]
	return Trends{
		Cuts:       Trend(float64(cur.Total), float64(prev.Total)),
		Revenue:    Trend(cur.Revenue, prev.Revenue),
		Commission: Trend(cur.Commission, prev.Commission),
	}
}

func WeekStart(t time.Time) time.Time {
	d := dateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// fill adds every counted row to the bucket whose [Start, End] holds its date.
// Dates are ISO strings so lexical order is chronological.
func fill(rows []Row, buckets []Bucket) []Bucket {
	for _, r := range rows {
		if !r.counted() {
			continue
		}
		for i := range buckets {
			if r.Date >= buckets[i].Start && r.Date <= buckets[i].End {
				buckets[i].add(r)
				break
			}
		}
	}
	for i := range buckets {
		buckets[i].round()
	}
	return buckets
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
