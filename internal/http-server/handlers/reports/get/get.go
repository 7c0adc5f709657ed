package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type ReportGetter interface {
	GetFinancialReport(ctx context.Context, month string) (*api.FinancialReportResponse, error)
}

type Response struct {
	response.Response
	Report *api.FinancialReportResponse `json:"report,omitempty"`
}

// New serves GET /reports/financial?month=YYYY-MM.
func New(log *slog.Logger, getter ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.reports.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		report, err := getter.GetFinancialReport(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			status, body := response.FromError(err, "failed to build report")
			if status == http.StatusInternalServerError {
				log.Error("Failed to build report", sl.Err(err))
			} else {
				log.Warn("Report request rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Debug("Report built", slog.String("month", report.Month))

		render.JSON(w, r, Response{Report: report})
	}
}
