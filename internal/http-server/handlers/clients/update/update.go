package update

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

type ClientUpdater interface {
	UpdateClient(ctx context.Context, id string, req *api.ClientRequest) (*api.ClientResponse, error)
}

type Request struct {
	api.ClientRequest
}

type Response struct {
	response.Response
	Client *api.ClientResponse `json:"client,omitempty"`
}

func New(log *slog.Logger, updater ClientUpdater) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clients.update.New"

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

		client, err := updater.UpdateClient(r.Context(), id, &req.ClientRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to update client")
			if status == http.StatusInternalServerError {
				log.Error("Failed to update client", sl.Err(err))
			} else {
				log.Warn("Client update rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Client updated", slog.String("id", id))

		render.JSON(w, r, Response{Client: client})
	}
}
