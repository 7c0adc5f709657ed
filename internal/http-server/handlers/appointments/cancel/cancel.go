package cancel

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

type AppointmentCanceller interface {
	CancelAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error)
	CancelByToken(ctx context.Context, token string) (*api.AppointmentResponse, error)
}

type Response struct {
	response.Response
	Appointment *api.AppointmentResponse `json:"appointment,omitempty"`
}

// New serves the back-office cancel, PUT /appointments/{id}/cancel.
func New(log *slog.Logger, canceller AppointmentCanceller) http.HandlerFunc {
	return handle(log, "handlers.appointments.cancel.New", "id", canceller.CancelAppointment)
}

// NewByToken serves the public self-service cancel, POST /appointments/cancel/{token}.
func NewByToken(log *slog.Logger, canceller AppointmentCanceller) http.HandlerFunc {
	return handle(log, "handlers.appointments.cancel.NewByToken", "token", canceller.CancelByToken)
}

func handle(
	log *slog.Logger,
	op, param string,
	cancel func(ctx context.Context, key string) (*api.AppointmentResponse, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		appt, err := cancel(r.Context(), chi.URLParam(r, param))
		if err != nil {
			status, body := response.FromError(err, "failed to cancel appointment")
			if status == http.StatusInternalServerError {
				log.Error("Failed to cancel appointment", sl.Err(err))
			} else {
				log.Warn("Cancellation rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Appointment cancelled", slog.String("id", appt.ID))

		render.JSON(w, r, Response{Appointment: appt})
	}
}
