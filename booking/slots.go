package booking

import (
	"fmt"
	"time"
)

// Consultations are point-in-time slots every 30 minutes inside a fixed
// daily business window, 09:00 inclusive to 18:00 exclusive.
const (
	slotOpenHour  = 9
	slotCloseHour = 18
	slotInterval  = 30 * time.Minute

	slotDateLayout = "2006-01-02"
)

// ParseSlotDate parses a calendar date in YYYY-MM-DD form as a UTC day.
func ParseSlotDate(value string) (time.Time, error) {
	day, err := time.ParseInLocation(slotDateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)}
	}
	return day, nil
}

// DaySlots returns the ordered candidate slot start instants for a calendar
// day. It has no knowledge of existing bookings.
func DaySlots(day time.Time) []time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), slotOpenHour, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), slotCloseHour, 0, 0, 0, day.Location())

	slots := make([]time.Time, 0, int(end.Sub(start)/slotInterval))
	for t := start; t.Before(end); t = t.Add(slotInterval) {
		slots = append(slots, t)
	}
	return slots
}

// FilterAvailable returns the candidates with no exact-instant match among
// the occupied slots. Appointments are point events, so equality is exact
// timestamp comparison rather than interval overlap.
func FilterAvailable(candidates, occupied []time.Time) []time.Time {
	free := make([]time.Time, 0, len(candidates))
	for _, slot := range candidates {
		taken := false
		for _, busy := range occupied {
			if slot.Equal(busy) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return free
}
