package availability

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format.
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
type TimeOfDay int

// EndOfDay is "24:00", only meaningful as a closing time.
const EndOfDay TimeOfDay = 24 * 60

// ParseTimeOfDay parses a zero-padded 24h "HH:MM" value. The "HH:MM:SS" form
// returned by Postgres TIME columns is accepted when the seconds are zero.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	const op = "availability.ParseTimeOfDay"

	switch len(s) {
	case 5:
	case 8:
		if s[5] != ':' || s[6] != '0' || s[7] != '0' {
			return 0, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
		}
	default:
		return 0, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
	}

	if s[2] != ':' || !isDigit(s[0]) || !isDigit(s[1]) || !isDigit(s[3]) || !isDigit(s[4]) {
		return 0, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
	}

	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')

	if h == 24 && m == 0 {
		return EndOfDay, nil
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%s: %q out of range: %w", op, s, ErrInvalidArgument)
	}

	return TimeOfDay(h*60 + m), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns t shifted by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// On combines a calendar date with t in the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Minute)
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	const op = "availability.ParseDate"

	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q: %w", op, s, ErrInvalidArgument)
	}

	return d, nil
}

// WeekdayOf returns the weekday index of date, 0 = Sunday ... 6 = Saturday.
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}

// FormatSlots renders slots as "HH:MM" strings.
func FormatSlots(slots []TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}
