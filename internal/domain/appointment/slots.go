package appointment

import "fmt"

// Working day bounds in minutes since midnight. Closing is the last bookable start.
const (
	OpeningMinutes = 10 * 60
	ClosingMinutes = 22 * 60
	SlotMinutes    = 30
)

// GenerateAllTimeSlots returns every bookable slot start from opening to
// closing, both inclusive, in chronological order.
func GenerateAllTimeSlots() []string {
	slots := make([]string, 0, (ClosingMinutes-OpeningMinutes)/SlotMinutes+1)
	for m := OpeningMinutes; m <= ClosingMinutes; m += SlotMinutes {
		slots = append(slots, minutesToHM(m))
	}
	return slots
}

func IsValidSlot(hm string) bool {
	m, ok := hmToMinutes(hm)
	if !ok {
		return false
	}
	return m >= OpeningMinutes && m <= ClosingMinutes && (m-OpeningMinutes)%SlotMinutes == 0
}

// FreeSlots is the slot catalog minus booked, in catalog order.
func FreeSlots(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	all := GenerateAllTimeSlots()
	free := make([]string, 0, len(all))
	for _, s := range all {
		if _, ok := taken[s]; !ok {
			free = append(free, s)
		}
	}
	return free
}

func minutesToHM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func hmToMinutes(hm string) (int, bool) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, false
	}
	h, ok1 := twoDigits(hm[0:2])
	m, ok2 := twoDigits(hm[3:5])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func twoDigits(s string) (int, bool) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}
