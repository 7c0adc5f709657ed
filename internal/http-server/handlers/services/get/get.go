package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

type ServiceGetter interface {
	GetService(ctx context.Context, id string) (*api.ServiceResponse, error)
	ListServices(ctx context.Context, includeInactive bool) ([]*api.ServiceResponse, error)
}

type Response struct {
	response.Response
	Services []*api.ServiceResponse `json:"services,omitempty"`
	Service  *api.ServiceResponse   `json:"service,omitempty"`
}

// New serves GET /services/{id} and GET /services; the list shows only
// active services unless all=true.
func New(log *slog.Logger, getter ServiceGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.services.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			sv, err := getter.GetService(r.Context(), id)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			render.JSON(w, r, Response{Service: sv})
			return
		}

		all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

		list, err := getter.ListServices(r.Context(), all)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, Response{Services: list})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := response.FromError(err, "failed to get services")
	if status == http.StatusInternalServerError {
		log.Error("Failed to get services", sl.Err(err))
	} else {
		log.Warn("Services request rejected", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
