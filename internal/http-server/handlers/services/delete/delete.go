package delete

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type ServiceDeleter interface {
	DeleteService(ctx context.Context, id string) error
}

// New serves DELETE /services/{id}. Past appointments keep the service
// name and price they were booked with.
func New(log *slog.Logger, deleter ServiceDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.services.delete.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if err := deleter.DeleteService(r.Context(), id); err != nil {
			status, body := response.FromError(err, "failed to delete service")
			if status == http.StatusInternalServerError {
				log.Error("Failed to delete service", sl.Err(err))
			} else {
				log.Warn("Delete rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Service deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
