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

type BusinessHoursGetter interface {
	GetBusinessHours(ctx context.Context) (*api.BusinessHoursResponse, error)
}

type Response struct {
	response.Response
	*api.BusinessHoursResponse
}

func New(log *slog.Logger, getter BusinessHoursGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.business_hours.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		week, err := getter.GetBusinessHours(r.Context())
		if err != nil {
			log.Error("Failed to get business hours", sl.Err(err))
			status, body := response.FromError(err, "failed to get business hours")
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		render.JSON(w, r, Response{BusinessHoursResponse: week})
	}
}
