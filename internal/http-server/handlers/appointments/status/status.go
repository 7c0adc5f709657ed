package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type StatusUpdater interface {
	UpdateAppointmentStatus(ctx context.Context, id, status string) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentStatusRequest
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, updater StatusUpdater) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.status.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

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

		appt, err := updater.UpdateAppointmentStatus(r.Context(), id, req.Status)
		if err != nil {
			status, body := response.FromError(err, "failed to update appointment status")
			if status == http.StatusInternalServerError {
				log.Error("Failed to update appointment status", sl.Err(err))
			} else {
				log.Warn("Status update rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Appointment status updated", slog.String("id", id), slog.String("status", appt.Status))

		render.JSON(w, r, Response{Appointment: appt})
	}
}
