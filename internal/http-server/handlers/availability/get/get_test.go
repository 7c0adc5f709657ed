package get

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

type stubGetter struct {
	gotDate     string
	gotDuration int
	gotIDs      []string
	err         error
}

func (s *stubGetter) GetAvailableSlots(_ context.Context, date string, duration int) (*api.AvailabilityResponse, error) {
	s.gotDate, s.gotDuration = date, duration
	if s.err != nil {
		return nil, s.err
	}
	return &api.AvailabilityResponse{Date: date, DurationMinutes: duration, Slots: []string{"09:00", "09:30"}}, nil
}

func (s *stubGetter) GetAvailableSlotsForServices(_ context.Context, date string, ids []string) (*api.AvailabilityResponse, error) {
	s.gotDate, s.gotIDs = date, ids
	if s.err != nil {
		return nil, s.err
	}
	return &api.AvailabilityResponse{Date: date, DurationMinutes: 90, Slots: []string{"10:00"}}, nil
}

func serve(t *testing.T, g AvailabilityGetter, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rw := httptest.NewRecorder()
	New(log, g).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, target, nil))

	var body Response
	if err := json.Unmarshal(rw.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rw.Body.String(), err)
	}
	return rw, body
}

func TestNew_Duration(t *testing.T) {
	g := &stubGetter{}
	rw, body := serve(t, g, "/availability?date=2025-06-02&duration=60")

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	if g.gotDate != "2025-06-02" || g.gotDuration != 60 {
		t.Fatalf("getter called with %q/%d", g.gotDate, g.gotDuration)
	}
	if body.Availability == nil || len(body.Availability.Slots) != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestNew_ServiceIDs(t *testing.T) {
	g := &stubGetter{}
	rw, body := serve(t, g, "/availability?date=2025-06-02&service_ids=a,%20b,,c")

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	if fmt.Sprint(g.gotIDs) != "[a b c]" {
		t.Fatalf("ids = %v", g.gotIDs)
	}
	if body.Availability.DurationMinutes != 90 {
		t.Fatalf("duration = %d", body.Availability.DurationMinutes)
	}
}

func TestNew_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   response.ErrCode
	}{
		{"missing date", "/availability?duration=60", nil, http.StatusBadRequest, response.INVALID_ARGUMENT},
		{"missing duration", "/availability?date=2025-06-02", nil, http.StatusBadRequest, response.INVALID_ARGUMENT},
		{"duration not a number", "/availability?date=2025-06-02&duration=abc", nil, http.StatusBadRequest, response.INVALID_ARGUMENT},
		{
			"invalid argument from service",
			"/availability?date=2025-13-40&duration=60",
			fmt.Errorf("service.GetAvailableSlots: date %q: %w", "2025-13-40", response.ErrInvalidArgument),
			http.StatusBadRequest,
			response.INVALID_ARGUMENT,
		},
		{"unknown service", "/availability?date=2025-06-02&service_ids=x", response.ErrNotFound, http.StatusNotFound, response.NOT_FOUND},
		{"storage failure", "/availability?date=2025-06-02&duration=60", fmt.Errorf("boom"), http.StatusInternalServerError, response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, body := serve(t, &stubGetter{err: tt.err}, tt.target)

			if rw.Code != tt.status {
				t.Fatalf("status = %d, want %d", rw.Code, tt.status)
			}
			if body.Code != string(tt.code) {
				t.Fatalf("code = %q, want %q", body.Code, tt.code)
			}
			if body.Availability != nil {
				t.Fatalf("error response carries availability: %+v", body.Availability)
			}
		})
	}
}
