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

type BlockedSlotGetter interface {
	GetBlockedSlot(ctx context.Context, id string) (*api.BlockedSlotResponse, error)
	ListBlockedSlots(ctx context.Context, from string, all bool) ([]*api.BlockedSlotResponse, error)
}

type Response struct {
	response.Response
	BlockedSlots []*api.BlockedSlotResponse `json:"blocked_slots,omitempty"`
	BlockedSlot  *api.BlockedSlotResponse   `json:"blocked_slot,omitempty"`
}

// New serves GET /blocked_slots/{id} and GET /blocked_slots?from=&all=true.
// The list defaults to upcoming slots only.
func New(log *slog.Logger, getter BlockedSlotGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.blocked_slots.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := chi.URLParam(r, "id"); id != "" {
			block, err := getter.GetBlockedSlot(r.Context(), id)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			render.JSON(w, r, Response{BlockedSlot: block})
			return
		}

		all, _ := strconv.ParseBool(r.URL.Query().Get("all"))

		list, err := getter.ListBlockedSlots(r.Context(), r.URL.Query().Get("from"), all)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		render.JSON(w, r, Response{BlockedSlots: list})
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, body := response.FromError(err, "failed to get blocked slots")
	if status == http.StatusInternalServerError {
		log.Error("Failed to get blocked slots", sl.Err(err))
	} else {
		log.Warn("Blocked slots request rejected", sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
