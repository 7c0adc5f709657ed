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

type ClientCreator interface {
	CreateClient(ctx context.Context, req *api.ClientRequest) (*api.ClientResponse, error)
}

type Request struct {
	api.ClientRequest
}

type Response struct {
	response.Response
	Client *api.ClientResponse `json:"client,omitempty"`
}

func New(log *slog.Logger, creator ClientCreator) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.clients.create.New"

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

		client, err := creator.CreateClient(r.Context(), &req.ClientRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to create client")
			if status == http.StatusInternalServerError {
				log.Error("Failed to create client", sl.Err(err))
			} else {
				log.Warn("Client rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Client created", slog.String("id", client.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{Client: client})
	}
}
