package service

import (
	"context"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

func validateService(op string, req *api.ServiceRequest) error {
	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%s: duration must be positive: %w", op, response.ErrInvalidArgument)
	}
	if req.Price < 0 {
		return fmt.Errorf("%s: price must not be negative: %w", op, response.ErrInvalidArgument)
	}
	return nil
}

func (s *Service) CreateService(ctx context.Context, req *api.ServiceRequest) (*api.ServiceResponse, error) {
	const op = "service.CreateService"

	if err := validateService(op, req); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	sv, err := s.store.CreateService(ctx, &models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ImageURL:        req.ImageURL,
		IsActive:        active,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toServiceResponse(sv), nil
}

func (s *Service) GetService(ctx context.Context, id string) (*api.ServiceResponse, error) {
	const op = "service.GetService"

	sv, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toServiceResponse(sv), nil
}

func (s *Service) ListServices(ctx context.Context, includeInactive bool) ([]*api.ServiceResponse, error) {
	const op = "service.ListServices"

	list, err := s.store.ListServices(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*api.ServiceResponse, 0, len(list))
	for i := range list {
		out = append(out, toServiceResponse(&list[i]))
	}

	return out, nil
}

// UpdateService overwrites the catalog entry; is_active is kept when omitted.
func (s *Service) UpdateService(ctx context.Context, id string, req *api.ServiceRequest) (*api.ServiceResponse, error) {
	const op = "service.UpdateService"

	if err := validateService(op, req); err != nil {
		return nil, err
	}

	current, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	current.Name = req.Name
	current.Description = req.Description
	current.DurationMinutes = req.DurationMinutes
	current.Price = req.Price
	current.ImageURL = req.ImageURL
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	sv, err := s.store.UpdateService(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toServiceResponse(sv), nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	const op = "service.DeleteService"

	if err := s.store.DeleteService(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
