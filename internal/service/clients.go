package service

import (
	"context"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/availability"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

func (s *Service) CreateClient(ctx context.Context, req *api.ClientRequest) (*api.ClientResponse, error) {
	const op = "service.CreateClient"

	c, err := s.store.CreateClient(ctx, &models.Client{
		Name:     req.Name,
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toClientResponse(c), nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*api.ClientResponse, error) {
	const op = "service.GetClient"

	c, err := s.store.GetClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toClientResponse(c), nil
}

func (s *Service) ListClients(ctx context.Context, search string) ([]*api.ClientResponse, error) {
	const op = "service.ListClients"

	clients, err := s.store.ListClients(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*api.ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}

	return out, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, req *api.ClientRequest) (*api.ClientResponse, error) {
	const op = "service.UpdateClient"

	c, err := s.store.UpdateClient(ctx, &models.Client{
		ID:       id,
		Name:     req.Name,
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toClientResponse(c), nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	const op = "service.DeleteClient"

	if err := s.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetClientStats summarises a client's non-cancelled appointments.
func (s *Service) GetClientStats(ctx context.Context, id string) (*api.ClientStatsResponse, error) {
	const op = "service.GetClientStats"

	if _, err := s.store.GetClient(ctx, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	st, err := s.store.GetClientStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.ClientStatsResponse{
		ClientID:          id,
		TotalSpent:        st.TotalSpent,
		TotalAppointments: st.TotalAppointments,
	}
	if st.TotalAppointments > 0 {
		resp.AverageSpent = st.TotalSpent / float64(st.TotalAppointments)
	}
	if st.LastAppointment != nil {
		resp.LastAppointment = st.LastAppointment.Format(availability.DateLayout)
	}

	return resp, nil
}
