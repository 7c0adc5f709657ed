package availability

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"09:30", 570},
		{"23:59", 1439},
		{"24:00", EndOfDay},
		{"18:00:00", 1080},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%q: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "09:0", "24:01", "25:00", "12:60", "ab:cd", "09-00", "09:00:30", "09:00:00Z"} {
		if _, err := ParseTimeOfDay(in); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", in, err)
		}
	}
}

func TestTimeOfDay_String(t *testing.T) {
	if got := TimeOfDay(545).String(); got != "09:05" {
		t.Fatalf("expected 09:05, got %s", got)
	}
	if got := EndOfDay.String(); got != "24:00" {
		t.Fatalf("expected 24:00, got %s", got)
	}
}

func TestTimeOfDay_TextRoundTrip(t *testing.T) {
	var v TimeOfDay
	if err := v.UnmarshalText([]byte("17:30")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := v.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "17:30" {
		t.Fatalf("expected 17:30, got %s", b)
	}
}

func TestTimeOfDay_On(t *testing.T) {
	got := TimeOfDay(570).On(time.Date(2025, 6, 2, 15, 4, 5, 0, time.UTC))
	want := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if WeekdayOf(d) != 0 {
		t.Fatalf("expected 2025-06-01 to be weekday 0 (Sunday), got %d", WeekdayOf(d))
	}

	for _, in := range []string{"", "2025-6-1", "01/06/2025", "2025-02-30"} {
		if _, err := ParseDate(in); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%q: expected ErrInvalidArgument, got %v", in, err)
		}
	}
}

func TestParseErrors_MapToBadRequest(t *testing.T) {
	_, dateErr := ParseDate("2025-13-01")
	_, timeErr := ParseTimeOfDay("9h")

	for _, err := range []error{dateErr, timeErr} {
		if status, resp := response.FromError(err, ""); status != http.StatusBadRequest || resp.Code != string(response.INVALID_ARGUMENT) {
			t.Fatalf("%v mapped to %d %q", err, status, resp.Code)
		}
	}
}
