// Package availability computes bookable appointment start times for a day.
//
// Everything here is a pure function of its arguments: callers fetch the
// salon's weekly hours, the day's non-cancelled appointments and the day's
// blocked windows, and pass fresh snapshots in on every call.
package availability

import (
	"fmt"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// SlotStep is the fixed grid, in minutes, on which candidate start times are generated.
const SlotStep = 30

// ErrInvalidArgument is the shared response sentinel, so engine errors map to 400 unchanged.
var ErrInvalidArgument = response.ErrInvalidArgument

// DayHours is the opening schedule for one weekday (0 = Sunday).
type DayHours struct {
	Weekday  int
	IsClosed bool
	Open     TimeOfDay
	Close    TimeOfDay
}

// Interval is a half-open range [Start, End).
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// HoursFor returns the first entry in week for weekday.
func HoursFor(week []DayHours, weekday int) (DayHours, bool) {
	for _, h := range week {
		if h.Weekday == weekday {
			return h, true
		}
	}
	return DayHours{}, false
}

// IsOpen reports whether the salon opens at all on date.
func IsOpen(date time.Time, week []DayHours) bool {
	h, ok := HoursFor(week, WeekdayOf(date))
	return ok && !h.IsClosed
}

// ComputeAvailableSlots returns, in ascending order, every start time on the
// SlotStep grid from opening time at which a service of durationMinutes
// finishes by closing time without overlapping an occupied or blocked interval.
//
// A missing or closed weekday yields an empty, non-nil result.
func ComputeAvailableSlots(date time.Time, durationMinutes int, week []DayHours, occupied, blocked []Interval) ([]TimeOfDay, error) {
	const op = "availability.ComputeAvailableSlots"

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%s: duration must be positive, got %d: %w", op, durationMinutes, ErrInvalidArgument)
	}

	slots := []TimeOfDay{}

	day, ok := HoursFor(week, WeekdayOf(date))
	if !ok || day.IsClosed {
		return slots, nil
	}

	for start := day.Open; start < day.Close; start = start.Add(SlotStep) {
		// compare remaining minutes instead of start+duration to stay clear of overflow
		if int(day.Close-start) < durationMinutes {
			break
		}

		candidate := Interval{Start: start, End: start.Add(durationMinutes)}
		if overlapsAny(candidate, occupied) || overlapsAny(candidate, blocked) {
			continue
		}

		slots = append(slots, start)
	}

	return slots, nil
}

// IsBookable reports whether start is one of the slots ComputeAvailableSlots
// would return for the same inputs.
func IsBookable(date time.Time, start TimeOfDay, durationMinutes int, week []DayHours, occupied, blocked []Interval) (bool, error) {
	slots, err := ComputeAvailableSlots(date, durationMinutes, week, occupied, blocked)
	if err != nil {
		return false, err
	}

	for _, s := range slots {
		if s == start {
			return true, nil
		}
		if s > start {
			break
		}
	}

	return false, nil
}

func overlapsAny(candidate Interval, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}
