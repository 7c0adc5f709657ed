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

type BusinessHoursReplacer interface {
	ReplaceBusinessHours(ctx context.Context, req *api.BusinessHoursRequest) (*api.BusinessHoursResponse, error)
}

type Request struct {
	api.BusinessHoursRequest
}

type Response struct {
	response.Response
	*api.BusinessHoursResponse
}

// New serves PUT /business_hours, which replaces the whole week.
func New(log *slog.Logger, replacer BusinessHoursReplacer) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.business_hours.update.New"

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

		week, err := replacer.ReplaceBusinessHours(r.Context(), &req.BusinessHoursRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to update business hours")
			if status == http.StatusInternalServerError {
				log.Error("Failed to update business hours", sl.Err(err))
			} else {
				log.Warn("Business hours rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Business hours replaced", slog.Int("days", len(week.Hours)))

		render.JSON(w, r, Response{BusinessHoursResponse: week})
	}
}
