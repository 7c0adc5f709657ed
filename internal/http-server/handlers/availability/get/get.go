package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type AvailabilityGetter interface {
	GetAvailableSlots(ctx context.Context, date string, durationMinutes int) (*api.AvailabilityResponse, error)
	GetAvailableSlotsForServices(ctx context.Context, date string, serviceIDs []string) (*api.AvailabilityResponse, error)
}

type Response struct {
	response.Response
	Availability *api.AvailabilityResponse `json:"availability,omitempty"`
}

// New serves GET /availability?date=YYYY-MM-DD and either duration=<minutes>
// or service_ids=<id>,<id> for a cart of catalog services.
func New(log *slog.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()

		date := q.Get("date")
		if date == "" {
			log.Warn("date is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_ARGUMENT), "date is required"))
			return
		}

		var (
			resp *api.AvailabilityResponse
			err  error
		)

		switch {
		case q.Get("service_ids") != "":
			var ids []string
			for _, id := range strings.Split(q.Get("service_ids"), ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
			resp, err = getter.GetAvailableSlotsForServices(r.Context(), date, ids)

		case q.Get("duration") != "":
			duration, convErr := strconv.Atoi(q.Get("duration"))
			if convErr != nil {
				log.Warn("duration is not a number", sl.Err(convErr))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.INVALID_ARGUMENT), "duration must be a whole number of minutes"))
				return
			}
			resp, err = getter.GetAvailableSlots(r.Context(), date, duration)

		default:
			log.Warn("neither duration nor service_ids given")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_ARGUMENT), "duration or service_ids is required"))
			return
		}

		if err != nil {
			status, body := response.FromError(err, "failed to compute availability")
			if status == http.StatusInternalServerError {
				log.Error("Failed to compute availability", sl.Err(err))
			} else {
				log.Warn("Availability request rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Debug("Availability computed", slog.String("date", resp.Date), slog.Int("slots", len(resp.Slots)))

		render.JSON(w, r, Response{Availability: resp})
	}
}
