package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/availability"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// dayInputs is one consistent-enough snapshot of what the engine needs for a date.
type dayInputs struct {
	week     []availability.DayHours
	occupied []availability.Interval
	blocked  []availability.Interval
}

func (s *Service) loadDay(ctx context.Context, date time.Time) (*dayInputs, error) {
	const op = "service.loadDay"

	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("date", date.Format(availability.DateLayout)),
	))
	defer span.End()

	var (
		hours  []models.BusinessHours
		appts  []models.Appointment
		blocks []models.BlockedTimeSlot
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		hours, err = s.store.ListBusinessHours(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appts, err = s.store.ListActiveAppointmentsByDate(gctx, date)
		return err
	})
	g.Go(func() error {
		var err error
		blocks, err = s.store.ListBlockedSlotsByDate(gctx, date)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		in  dayInputs
		err error
	)
	if in.week, err = toDayHours(hours); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.occupied, err = appointmentIntervals(appts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if in.blocked, err = blockedIntervals(blocks); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &in, nil
}

func (s *Service) GetAvailableSlots(ctx context.Context, date string, durationMinutes int) (*api.AvailabilityResponse, error) {
	const op = "service.GetAvailableSlots"

	day, err := availability.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%s: duration must be positive: %w", op, response.ErrInvalidArgument)
	}

	in, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slots, err := availability.ComputeAvailableSlots(day, durationMinutes, in.week, in.occupied, in.blocked)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &api.AvailabilityResponse{
		Date:            day.Format(availability.DateLayout),
		DurationMinutes: durationMinutes,
		IsClosed:        !availability.IsOpen(day, in.week),
		Slots:           availability.FormatSlots(slots),
	}, nil
}

// GetAvailableSlotsForServices computes availability for a cart of catalog
// services booked back to back.
func (s *Service) GetAvailableSlotsForServices(ctx context.Context, date string, serviceIDs []string) (*api.AvailabilityResponse, error) {
	const op = "service.GetAvailableSlotsForServices"

	cart, err := s.resolveServices(ctx, serviceIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.GetAvailableSlots(ctx, date, cart.duration)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return resp, nil
}

type cart struct {
	duration int
	price    float64
	lines    []models.AppointmentService
}

// resolveServices loads the requested catalog entries in request order.
// Duplicate ids are collapsed; unknown or inactive services are ErrNotFound.
func (s *Service) resolveServices(ctx context.Context, ids []string) (*cart, error) {
	const op = "service.resolveServices"

	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: no services selected: %w", op, response.ErrInvalidArgument)
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := s.store.GetServicesByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]models.Service, len(found))
	for _, sv := range found {
		byID[sv.ID] = sv
	}

	c := &cart{lines: make([]models.AppointmentService, 0, len(unique))}
	for _, id := range unique {
		sv, ok := byID[id]
		if !ok || !sv.IsActive {
			return nil, fmt.Errorf("%s: service %s: %w", op, id, response.ErrNotFound)
		}
		c.duration += sv.DurationMinutes
		c.price += sv.Price
		c.lines = append(c.lines, models.AppointmentService{
			ServiceID:   sv.ID,
			ServiceName: sv.Name,
			Price:       sv.Price,
		})
	}

	return c, nil
}
