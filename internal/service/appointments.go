package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/availability"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/lock"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
)

// #### appointments/create ####

func (s *Service) CreateAppointment(ctx context.Context, req *api.AppointmentRequest) (*api.AppointmentResponse, error) {
	const op = "service.CreateAppointment"

	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("appointment.date", req.Date),
		attribute.String("appointment.start_time", req.StartTime),
		attribute.Int("appointment.services", len(req.ServiceIDs)),
	))
	defer span.End()

	day, err := availability.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	start, err := availability.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	settings, err := s.businessConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkBookingWindow(day, start, settings.BookingAdvanceDays); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c, err := s.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	end := start.Add(c.duration)
	if end > availability.EndOfDay {
		return nil, fmt.Errorf("%s: %w", op, response.ErrSlotNotAvailable)
	}

	release, ok, err := s.locker.Lock(ctx, lock.AppointmentsKey(day), s.opts.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, response.ErrLocked)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("Failed to release booking lock",
				slog.String("op", op),
				slog.String("date", req.Date),
				sl.Err(err),
			)
		}
	}()

	in, err := s.loadDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookable, err := availability.IsBookable(day, start, c.duration, in.week, in.occupied, in.blocked)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !bookable {
		return nil, fmt.Errorf("%s: %s %s: %w", op, req.Date, start, response.ErrSlotNotAvailable)
	}

	client := &models.Client{
		Name:     req.Client.Name,
		WhatsApp: req.Client.WhatsApp,
		Email:    req.Client.Email,
		Notes:    req.Client.Notes,
	}

	appt := &models.Appointment{
		AppointmentDate:      day,
		StartTime:            start.String(),
		EndTime:              end.String(),
		TotalPrice:           c.price,
		TotalDurationMinutes: c.duration,
		Status:               models.AppointmentScheduled,
		Notes:                req.Notes,
		CancellationToken:    uuid.NewString(),
		Services:             c.lines,
	}

	created, err := s.store.CreateBooking(ctx, client, appt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	span.SetAttributes(attribute.String("appointment.id", created.ID))

	return toAppointmentResponse(created, true), nil
}

// checkBookingWindow rejects starts in the past and dates more than
// advanceDays ahead. advanceDays <= 0 disables the upper bound.
func (s *Service) checkBookingWindow(day time.Time, start availability.TimeOfDay, advanceDays int) error {
	const op = "service.checkBookingWindow"

	if start.On(day).Before(s.localNow()) {
		return fmt.Errorf("%s: start is in the past: %w", op, response.ErrInvalidArgument)
	}

	if advanceDays > 0 {
		last := s.today().AddDate(0, 0, advanceDays)
		if day.After(last) {
			return fmt.Errorf("%s: more than %d days ahead: %w", op, advanceDays, response.ErrInvalidArgument)
		}
	}

	return nil
}

// #### appointments/get ####

func (s *Service) GetAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error) {
	const op = "service.GetAppointment"

	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toAppointmentResponse(a, false), nil
}

type AppointmentQuery struct {
	Date     string
	From     string
	To       string
	Status   string
	ClientID string
}

func (s *Service) ListAppointments(ctx context.Context, q AppointmentQuery) ([]*api.AppointmentResponse, error) {
	const op = "service.ListAppointments"

	var filter models.AppointmentFilter

	for _, f := range []struct {
		raw string
		dst **time.Time
	}{
		{q.Date, &filter.Date},
		{q.From, &filter.From},
		{q.To, &filter.To},
	} {
		if f.raw == "" {
			continue
		}
		d, err := availability.ParseDate(f.raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		*f.dst = &d
	}

	if q.Status != "" {
		status := models.AppointmentStatus(q.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%s: unknown status %q: %w", op, q.Status, response.ErrInvalidArgument)
		}
		filter.Status = &status
	}

	if q.ClientID != "" {
		filter.ClientID = &q.ClientID
	}

	appts, err := s.store.ListAppointments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]*api.AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i], false))
	}

	return out, nil
}

// #### appointments/status ####

func (s *Service) UpdateAppointmentStatus(ctx context.Context, id, status string) (*api.AppointmentResponse, error) {
	const op = "service.UpdateAppointmentStatus"

	st := models.AppointmentStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, status, response.ErrInvalidArgument)
	}

	if err := s.store.UpdateAppointmentStatus(ctx, id, st); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.GetAppointment(ctx, id)
}

// #### appointments/cancel ####

// CancelAppointment is the back-office cancel; it ignores the cancellation window.
func (s *Service) CancelAppointment(ctx context.Context, id string) (*api.AppointmentResponse, error) {
	const op = "service.CancelAppointment"

	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if a.Status == models.AppointmentCancelled {
		return toAppointmentResponse(a, false), nil
	}

	if err := s.store.UpdateAppointmentStatus(ctx, id, models.AppointmentCancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Status = models.AppointmentCancelled
	return toAppointmentResponse(a, false), nil
}

var errTooLateToCancel = errors.New("too late to cancel")

// CancelByToken lets a client cancel their own booking with the token they
// received when booking, up to CancellationHoursBefore hours before the start.
func (s *Service) CancelByToken(ctx context.Context, token string) (*api.AppointmentResponse, error) {
	const op = "service.CancelByToken"

	if err := uuid.Validate(token); err != nil {
		return nil, fmt.Errorf("%s: malformed token: %w", op, response.ErrInvalidArgument)
	}

	a, err := s.store.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch a.Status {
	case models.AppointmentCancelled:
		return toAppointmentResponse(a, false), nil
	case models.AppointmentCompleted, models.AppointmentNoShow:
		return nil, fmt.Errorf("%s: appointment is %s: %w", op, a.Status, response.ErrConflict)
	}

	start, err := availability.ParseTimeOfDay(a.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	settings, err := s.businessConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	deadline := start.On(a.AppointmentDate).Add(-time.Duration(settings.CancellationHoursBefore) * time.Hour)
	if s.localNow().After(deadline) {
		return nil, fmt.Errorf("%s: %w: %w", op, errTooLateToCancel, response.ErrConflict)
	}

	if err := s.store.UpdateAppointmentStatus(ctx, a.ID, models.AppointmentCancelled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Status = models.AppointmentCancelled
	return toAppointmentResponse(a, false), nil
}

// #### appointments/delete ####

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	const op = "service.DeleteAppointment"

	if err := s.store.DeleteAppointment(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
