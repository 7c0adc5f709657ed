package service

import (
	"context"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// #### business_hours/get ####

func (s *Service) GetBusinessHours(ctx context.Context) (*api.BusinessHoursResponse, error) {
	const op = "service.GetBusinessHours"

	rows, err := s.store.ListBusinessHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.BusinessHoursResponse{Hours: make([]api.BusinessHoursEntry, 0, len(rows))}
	for _, r := range rows {
		resp.Hours = append(resp.Hours, api.BusinessHoursEntry{
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			IsClosed:  r.IsClosed,
		})
	}

	return resp, nil
}

// #### business_hours/update ####

// ReplaceBusinessHours swaps the stored week for req. Weekdays left out are
// treated as closed by the availability engine.
func (s *Service) ReplaceBusinessHours(ctx context.Context, req *api.BusinessHoursRequest) (*api.BusinessHoursResponse, error) {
	const op = "service.ReplaceBusinessHours"

	week := make([]models.BusinessHours, 0, len(req.Hours))
	seen := make(map[int]bool, len(req.Hours))

	for _, h := range req.Hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return nil, fmt.Errorf("%s: day_of_week %d: %w", op, h.DayOfWeek, response.ErrInvalidArgument)
		}
		if seen[h.DayOfWeek] {
			return nil, fmt.Errorf("%s: day_of_week %d given twice: %w", op, h.DayOfWeek, response.ErrInvalidArgument)
		}
		seen[h.DayOfWeek] = true

		row := models.BusinessHours{DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}

		if h.IsClosed && h.StartTime == "" && h.EndTime == "" {
			row.StartTime, row.EndTime = "00:00", "00:00"
			week = append(week, row)
			continue
		}

		iv, err := toInterval(h.StartTime, h.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: day_of_week %d: %w", op, h.DayOfWeek, err)
		}
		if !h.IsClosed && iv.Start >= iv.End {
			return nil, fmt.Errorf("%s: day_of_week %d opens at or after closing: %w", op, h.DayOfWeek, response.ErrInvalidArgument)
		}

		row.StartTime, row.EndTime = iv.Start.String(), iv.End.String()
		week = append(week, row)
	}

	if err := s.store.ReplaceBusinessHours(ctx, week); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetBusinessHours(ctx)
}
