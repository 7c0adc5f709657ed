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

type BlockedSlotCreator interface {
	CreateBlockedSlot(ctx context.Context, req *api.BlockedSlotRequest) (*api.BlockedSlotResponse, error)
}

type Request struct {
	api.BlockedSlotRequest
}

type Response struct {
	response.Response
	BlockedSlot *api.BlockedSlotResponse `json:"blocked_slot,omitempty"`
}

func New(log *slog.Logger, creator BlockedSlotCreator) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blocked_slots.create.New"

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

		block, err := creator.CreateBlockedSlot(r.Context(), &req.BlockedSlotRequest)
		if err != nil {
			status, body := response.FromError(err, "failed to create blocked slot")
			if status == http.StatusInternalServerError {
				log.Error("Failed to create blocked slot", sl.Err(err))
			} else {
				log.Warn("Blocked slot rejected", sl.Err(err))
			}
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}

		log.Info("Blocked slot created", slog.String("id", block.ID), slog.String("date", block.Date))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{BlockedSlot: block})
	}
}
