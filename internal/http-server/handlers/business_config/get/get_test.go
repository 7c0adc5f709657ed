package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

type stubGetter struct {
	err error
}

func (s stubGetter) GetBusinessConfig(context.Context) (*api.BusinessConfigResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &api.BusinessConfigResponse{SalonName: "Glam Nails", BookingAdvanceDays: 30, CancellationHoursBefore: 2}, nil
}

func TestNew(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"ok", nil, http.StatusOK},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw := httptest.NewRecorder()
			New(log, stubGetter{err: tt.err}).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/business_config", nil))

			if rw.Code != tt.status {
				t.Fatalf("status = %d, want %d", rw.Code, tt.status)
			}

			var resp Response
			if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if tt.err == nil && (resp.Config == nil || resp.Config.SalonName != "Glam Nails") {
				t.Fatalf("unexpected body: %s", rw.Body.String())
			}
			if tt.err != nil && resp.Code != string(response.FAILED_REQUEST) {
				t.Fatalf("code = %q", resp.Code)
			}
		})
	}
}
