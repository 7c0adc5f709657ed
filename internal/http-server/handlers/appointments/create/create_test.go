package create

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

type stubCreator struct {
	got *api.AppointmentRequest
	err error
}

func (s *stubCreator) CreateAppointment(_ context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &api.AppointmentResponse{
		ID:                "appt-1",
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           "10:00",
		Status:            "scheduled",
		CancellationToken: "tok",
	}, nil
}

const validBody = `{
	"client": {"name": "Ana", "whatsapp": "+5215512345678"},
	"appointment_date": "2025-06-02",
	"start_time": "09:00",
	"service_ids": ["svc-mani"]
}`

func post(t *testing.T, c AppointmentCreator, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rw := httptest.NewRecorder()
	New(log, c).ServeHTTP(rw, req)

	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rw.Body.String(), err)
	}
	return rw, resp
}

func TestNew_Created(t *testing.T) {
	c := &stubCreator{}
	rw, resp := post(t, c, validBody)

	if rw.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rw.Code)
	}
	if c.got == nil || c.got.Client.WhatsApp != "+5215512345678" || c.got.ServiceIDs[0] != "svc-mani" {
		t.Fatalf("creator got %+v", c.got)
	}
	if resp.Appointment == nil || resp.Appointment.CancellationToken != "tok" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestNew_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"malformed json", `{"client":`, nil, http.StatusBadRequest, response.BAD_REQUEST},
		{
			"no services",
			`{"client":{"name":"Ana","whatsapp":"5512345678"},"appointment_date":"2025-06-02","start_time":"09:00","service_ids":[]}`,
			nil, http.StatusBadRequest, response.VALIDATION_FAILED,
		},
		{
			"missing whatsapp",
			`{"client":{"name":"Ana"},"appointment_date":"2025-06-02","start_time":"09:00","service_ids":["a"]}`,
			nil, http.StatusBadRequest, response.VALIDATION_FAILED,
		},
		{"slot taken", validBody, fmt.Errorf("service.CreateAppointment: %w", response.ErrSlotNotAvailable), http.StatusConflict, response.SLOT_NOT_AVAILABLE},
		{"day locked", validBody, fmt.Errorf("service.CreateAppointment: %w", response.ErrLocked), http.StatusLocked, response.LOCKED},
		{"past date", validBody, fmt.Errorf("service.CreateAppointment: start is in the past: %w", response.ErrInvalidArgument), http.StatusBadRequest, response.INVALID_ARGUMENT},
		{"storage failure", validBody, fmt.Errorf("postgres.CreateBooking: connection refused"), http.StatusInternalServerError, response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &stubCreator{err: tt.err}
			rw, resp := post(t, c, tt.body)

			if rw.Code != tt.status {
				t.Fatalf("status = %d, want %d", rw.Code, tt.status)
			}
			if resp.Code != string(tt.code) {
				t.Fatalf("code = %q, want %q", resp.Code, tt.code)
			}
			if tt.err == nil && c.got != nil {
				t.Fatal("creator must not be called for an invalid body")
			}
		})
	}
}
