package get

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

type ClientGetter interface {
	GetClient(ctx context.Context, id string) (*api.ClientResponse, error)
	ListClients(ctx context.Context, search string) ([]*api.ClientResponse, error)
}

type Response struct {
	response.Response
	Clients []*api.ClientResponse `json:"clients,omitempty"`
	Client  *api.ClientResponse   `json:"client,omitempty"`
}

func New(log *slog.Logger, getter ClientGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clients.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			client, err := getter.GetClient(r.Context(), id)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			render.JSON(w, r, Response{Client: client})
			return
		}

		list, err := getter.ListClients(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, Response{Clients: list})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := response.FromError(err, "failed to get clients")
	if status == http.StatusInternalServerError {
		log.Error("Failed to get clients", sl.Err(err))
	} else {
		log.Warn("Clients request rejected", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
