package create

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

type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error)
}

type Request struct {
	api.AppointmentRequest
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

func New(log *slog.Logger, creator AppointmentCreator) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.create.New"

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

		appt, err := creator.CreateAppointment(r.Context(), &req.AppointmentRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to create appointment")
			if status == http.StatusInternalServerError {
				log.Error("Failed to create appointment", sl.Err(err))
			} else {
				log.Warn("Appointment rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Appointment created",
			slog.String("id", appt.ID),
			slog.String("date", appt.Date),
			slog.String("start_time", appt.StartTime),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Appointment: appt})
	}
}
