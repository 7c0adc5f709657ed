package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/availability"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// #### blocked_slots/create ####

func (s *Service) CreateBlockedSlot(ctx context.Context, req *api.BlockedSlotRequest) (*api.BlockedSlotResponse, error) {
	const op = "service.CreateBlockedSlot"

	day, err := availability.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	iv, err := toInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if iv.Start >= iv.End {
		return nil, fmt.Errorf("%s: start must be before end: %w", op, response.ErrInvalidArgument)
	}

	created, err := s.store.CreateBlockedSlot(ctx, &models.BlockedTimeSlot{
		BlockDate: day,
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
		Reason:    req.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBlockedSlotResponse(created), nil
}

// #### blocked_slots/get ####

func (s *Service) GetBlockedSlot(ctx context.Context, id string) (*api.BlockedSlotResponse, error) {
	const op = "service.GetBlockedSlot"

	b, err := s.store.GetBlockedSlot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBlockedSlotResponse(b), nil
}

// ListBlockedSlots lists slots from the given date, today when from is empty.
// With all set every slot ever stored is returned.
func (s *Service) ListBlockedSlots(ctx context.Context, from string, all bool) ([]*api.BlockedSlotResponse, error) {
	const op = "service.ListBlockedSlots"

	var since *time.Time
	if !all {
		d := s.today()
		if from != "" {
			parsed, err := availability.ParseDate(from)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			d = parsed
		}
		since = &d
	}

	blocks, err := s.store.ListBlockedSlots(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*api.BlockedSlotResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, toBlockedSlotResponse(&blocks[i]))
	}

	return out, nil
}

// #### blocked_slots/delete ####

func (s *Service) DeleteBlockedSlot(ctx context.Context, id string) error {
	const op = "service.DeleteBlockedSlot"

	if err := s.store.DeleteBlockedSlot(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
