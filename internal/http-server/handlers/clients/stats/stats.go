package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type ClientStatsGetter interface {
	GetClientStats(ctx context.Context, id string) (*api.ClientStatsResponse, error)
}

type Response struct {
	response.Response
	Stats *api.ClientStatsResponse `json:"stats,omitempty"`
}

func New(log *slog.Logger, getter ClientStatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clients.stats.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		stats, err := getter.GetClientStats(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			status, body := response.FromError(err, "failed to get client stats")
			if status == http.StatusInternalServerError {
				log.Error("Failed to get client stats", sl.Err(err))
			} else {
				log.Warn("Client stats request rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		render.JSON(w, r, Response{Stats: stats})
	}
}
