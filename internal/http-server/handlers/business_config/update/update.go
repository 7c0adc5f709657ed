package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type BusinessConfigUpdater interface {
	UpdateBusinessConfig(ctx context.Context, req *api.BusinessConfigRequest) (*api.BusinessConfigResponse, error)
}

type Request struct {
	api.BusinessConfigRequest
}

type Response struct {
	response.Response
	Config *api.BusinessConfigResponse `json:"config,omitempty"`
}

// New serves PUT /business_config. Fields left out of the body are kept.
func New(log *slog.Logger, updater BusinessConfigUpdater) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.business_config.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			errors.As(err, &verrs)
			log.Warn("Invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}

		cfg, err := updater.UpdateBusinessConfig(r.Context(), &req.BusinessConfigRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to update business config")
			if status == http.StatusInternalServerError {
				log.Error("Failed to update business config", sl.Err(err))
			} else {
				log.Warn("Business config rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Business config updated",
			slog.Int("booking_advance_days", cfg.BookingAdvanceDays),
			slog.Int("cancellation_hours_before", cfg.CancellationHoursBefore),
		)

		render.JSON(w, r, Response{Config: cfg})
	}
}
