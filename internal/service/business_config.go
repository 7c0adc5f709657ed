package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// businessConfig returns the stored salon settings, or the configured
// defaults while the salon has not saved any.
func (s *Service) businessConfig(ctx context.Context) (*models.BusinessConfig, error) {
	const op = "service.businessConfig"

	c, err := s.store.GetBusinessConfig(ctx)
	if errors.Is(err, response.ErrNotFound) {
		return &models.BusinessConfig{
			SalonName:               s.opts.SalonName,
			BookingAdvanceDays:      s.opts.AdvanceDays,
			ReminderHoursBefore:     s.opts.ReminderHoursBefore,
			CancellationHoursBefore: s.opts.CancellationHoursBefore,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *Service) GetBusinessConfig(ctx context.Context) (*api.BusinessConfigResponse, error) {
	const op = "service.GetBusinessConfig"

	c, err := s.businessConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBusinessConfigResponse(c), nil
}

// UpdateBusinessConfig merges the given fields over the current settings and saves them.
func (s *Service) UpdateBusinessConfig(ctx context.Context, req *api.BusinessConfigRequest) (*api.BusinessConfigResponse, error) {
	const op = "service.UpdateBusinessConfig"

	c, err := s.businessConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.SalonName != nil {
		c.SalonName = *req.SalonName
	}
	if req.SalonDescription != nil {
		c.SalonDescription = *req.SalonDescription
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.BookingAdvanceDays != nil {
		c.BookingAdvanceDays = *req.BookingAdvanceDays
	}
	if req.ReminderHoursBefore != nil {
		c.ReminderHoursBefore = *req.ReminderHoursBefore
	}
	if req.CancellationHoursBefore != nil {
		c.CancellationHoursBefore = *req.CancellationHoursBefore
	}

	switch {
	case c.SalonName == "":
		return nil, fmt.Errorf("%s: salon name is required: %w", op, response.ErrInvalidArgument)
	case c.BookingAdvanceDays < 1 || c.BookingAdvanceDays > 365:
		return nil, fmt.Errorf("%s: booking_advance_days must be 1..365: %w", op, response.ErrInvalidArgument)
	case c.ReminderHoursBefore < 1 || c.ReminderHoursBefore > 168:
		return nil, fmt.Errorf("%s: reminder_hours_before must be 1..168: %w", op, response.ErrInvalidArgument)
	case c.CancellationHoursBefore < 1 || c.CancellationHoursBefore > 72:
		return nil, fmt.Errorf("%s: cancellation_hours_before must be 1..72: %w", op, response.ErrInvalidArgument)
	}

	saved, err := s.store.UpsertBusinessConfig(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBusinessConfigResponse(saved), nil
}

func toBusinessConfigResponse(c *models.BusinessConfig) *api.BusinessConfigResponse {
	resp := &api.BusinessConfigResponse{
		SalonName:               c.SalonName,
		SalonDescription:        c.SalonDescription,
		Phone:                   c.Phone,
		Email:                   c.Email,
		Address:                 c.Address,
		BookingAdvanceDays:      c.BookingAdvanceDays,
		ReminderHoursBefore:     c.ReminderHoursBefore,
		CancellationHoursBefore: c.CancellationHoursBefore,
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
