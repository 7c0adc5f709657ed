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

type BusinessConfigGetter interface {
	GetBusinessConfig(ctx context.Context) (*api.BusinessConfigResponse, error)
}

type Response struct {
	response.Response
	Config *api.BusinessConfigResponse `json:"config,omitempty"`
}

func New(log *slog.Logger, getter BusinessConfigGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.business_config.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		cfg, err := getter.GetBusinessConfig(r.Context())
		if err != nil {
			status, body := response.FromError(err, "failed to get business config")
			if status == http.StatusInternalServerError {
				log.Error("Failed to get business config", sl.Err(err))
			} else {
				log.Warn("Business config request rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		render.JSON(w, r, Response{Config: cfg})
	}
}
