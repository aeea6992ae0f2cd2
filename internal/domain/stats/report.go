package stats

import (
	"sort"
	"time"
)

const (
	DailyWindow   = 7
	WeeklyWindow  = 4
	MonthlyWindow = 6
)

// Snapshot sources.
const (
	SourceLive   = "live"
	SourceCached = "cached"
)

type BarberRef struct {
	ID   string
	Name string
}

type LeaderboardEntry struct {
	BarberID   string  `json:"barber_id"`
	Name       string  `json:"name"`
	TotalCuts  int     `json:"total_cuts"`
	WalkIns    int     `json:"walk_ins"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

type Report struct {
	Summary
	Daily   []Bucket `json:"daily"`
	Weekly  []Bucket `json:"weekly"`
	Monthly []Bucket `json:"monthly"`
	Trends  Trends   `json:"trends"`
}

type DashboardStats struct {
	Report
	Barbers     []LeaderboardEntry `json:"barbers"`
	Source      string             `json:"source"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type BarberStats struct {
	Report
	BarberID    string    `json:"barber_id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}

func BuildReport(rows []Row, today time.Time) Report {
	return Report{
		Summary: Summarize(rows),
		Daily:   Daily(rows, today, DailyWindow),
		Weekly:  Weekly(rows, today, WeeklyWindow),
		Monthly: Monthly(rows, today, MonthlyWindow),
		Trends:  MonthOverMonth(rows, today),
	}
}

func BuildDashboard(rows []Row, barbers []BarberRef, today time.Time) DashboardStats {
	return DashboardStats{
		Report:  BuildReport(rows, today),
		Barbers: Leaderboard(rows, barbers),
	}
}

func BuildBarber(rows []Row, barber BarberRef, today time.Time) BarberStats {
	own := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.BarberID == barber.ID {
			own = append(own, r)
		}
	}
	return BarberStats{
		Report:   BuildReport(own, today),
		BarberID: barber.ID,
		Name:     barber.Name,
	}
}

// Leaderboard ranks barbers by cuts, then revenue, then name.
func Leaderboard(rows []Row, barbers []BarberRef) []LeaderboardEntry {
	idx := make(map[string]*Bucket, len(barbers))
	for _, b := range barbers {
		idx[b.ID] = &Bucket{}
	}
	for _, r := range rows {
		if b, ok := idx[r.BarberID]; ok && r.counted() {
			b.add(r)
		}
	}

	out := make([]LeaderboardEntry, 0, len(barbers))
	for _, b := range barbers {
		agg := idx[b.ID]
		out = append(out, LeaderboardEntry{
			BarberID:   b.ID,
			Name:       b.Name,
			TotalCuts:  agg.Total,
			WalkIns:    agg.WalkIns,
			Revenue:    round2(agg.Revenue),
			Commission: round2(agg.Commission),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalCuts != out[j].TotalCuts {
			return out[i].TotalCuts > out[j].TotalCuts
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WindowStart is the earliest date any report bucket covers.
func WindowStart(today time.Time) time.Time {
	earliest := MonthStart(today).AddDate(0, -(MonthlyWindow - 1), 0)
	if w := WeekStart(today).AddDate(0, 0, -7*(WeeklyWindow-1)); w.Before(earliest) {
		earliest = w
	}
	return earliest
}
