package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/service"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type AppointmentGetter interface {
	GetAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error)
	ListAppointments(ctx context.Context, q service.AppointmentQuery) ([]*api.AppointmentResponse, error)
}

type Response struct {
	response.Response
	Appointments []*api.AppointmentResponse `json:"appointments,omitempty"`
	Appointment  *api.AppointmentResponse   `json:"appointment,omitempty"`
}

// New serves GET /appointments/{id} and the filtered list
// GET /appointments?date=&from=&to=&status=&client_id=.
func New(log *slog.Logger, getter AppointmentGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.appointments.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			appt, err := getter.GetAppointment(r.Context(), id)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			render.JSON(w, r, Response{Appointment: appt})
			return
		}

		q := r.URL.Query()
		list, err := getter.ListAppointments(r.Context(), service.AppointmentQuery{
			Date:     q.Get("date"),
			From:     q.Get("from"),
			To:       q.Get("to"),
			Status:   q.Get("status"),
			ClientID: q.Get("client_id"),
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		log.Debug("Appointments listed", slog.Int("count", len(list)))

		render.JSON(w, r, Response{Appointments: list})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := response.FromError(err, "failed to get appointments")
	if status == http.StatusInternalServerError {
		log.Error("Failed to get appointments", sl.Err(err))
	} else {
		log.Warn("Appointments request rejected", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
