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
	month string
	err   error
}

func (s *stubGetter) GetFinancialReport(_ context.Context, month string) (*api.FinancialReportResponse, error) {
	s.month = month
	if s.err != nil {
		return nil, s.err
	}
	return &api.FinancialReportResponse{Month: month, CurrentMonthRevenue: 250, TotalAppointments: 10, AverageTicket: 25}, nil
}

func serve(t *testing.T, g ReportGetter, target string) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rw := httptest.NewRecorder()
	New(log, g).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, target, nil))

	var resp Response
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body %q: %v", rw.Body.String(), err)
	}
	return rw, resp
}

func TestNew_OK(t *testing.T) {
	g := &stubGetter{}
	rw, resp := serve(t, g, "/reports/financial?month=2025-06")

	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	if g.month != "2025-06" {
		t.Fatalf("month = %q, want 2025-06", g.month)
	}
	if resp.Report == nil || resp.Report.TotalAppointments != 10 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"bad month", fmt.Errorf("service.GetFinancialReport: month %q: %w", "2025-13", response.ErrInvalidArgument), http.StatusBadRequest, response.INVALID_ARGUMENT},
		{"storage failure", fmt.Errorf("postgres.RevenueBetween: connection refused"), http.StatusInternalServerError, response.FAILED_REQUEST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, resp := serve(t, &stubGetter{err: tt.err}, "/reports/financial?month=2025-13")

			if rw.Code != tt.status {
				t.Fatalf("status = %d, want %d", rw.Code, tt.status)
			}
			if resp.Code != string(tt.code) {
				t.Fatalf("code = %q, want %q", resp.Code, tt.code)
			}
		})
	}
}
