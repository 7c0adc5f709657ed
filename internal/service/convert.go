package service

import (
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/availability"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

func toDayHours(rows []models.BusinessHours) ([]availability.DayHours, error) {
	const op = "service.toDayHours"

	week := make([]availability.DayHours, 0, len(rows))
	for _, r := range rows {
		day := availability.DayHours{Weekday: r.DayOfWeek, IsClosed: r.IsClosed}

		if !r.IsClosed {
			open, err := availability.ParseTimeOfDay(r.StartTime)
			if err != nil {
				return nil, fmt.Errorf("%s: day %d open: %w", op, r.DayOfWeek, err)
			}
			closing, err := availability.ParseTimeOfDay(r.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%s: day %d close: %w", op, r.DayOfWeek, err)
			}
			day.Open, day.Close = open, closing
		}

		week = append(week, day)
	}

	return week, nil
}

func toInterval(start, end string) (availability.Interval, error) {
	s, err := availability.ParseTimeOfDay(start)
	if err != nil {
		return availability.Interval{}, err
	}
	e, err := availability.ParseTimeOfDay(end)
	if err != nil {
		return availability.Interval{}, err
	}
	return availability.Interval{Start: s, End: e}, nil
}

func appointmentIntervals(appts []models.Appointment) ([]availability.Interval, error) {
	const op = "service.appointmentIntervals"

	out := make([]availability.Interval, 0, len(appts))
	for _, a := range appts {
		iv, err := toInterval(a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: appointment %s: %w", op, a.ID, err)
		}
		out = append(out, iv)
	}
	return out, nil
}

func blockedIntervals(blocks []models.BlockedTimeSlot) ([]availability.Interval, error) {
	const op = "service.blockedIntervals"

	out := make([]availability.Interval, 0, len(blocks))
	for _, b := range blocks {
		iv, err := toInterval(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: blocked slot %s: %w", op, b.ID, err)
		}
		out = append(out, iv)
	}
	return out, nil
}

func toClientResponse(c *models.Client) *api.ClientResponse {
	if c == nil {
		return nil
	}
	return &api.ClientResponse{
		ID:       c.ID,
		Name:     c.Name,
		WhatsApp: c.WhatsApp,
		Email:    c.Email,
		Notes:    c.Notes,
	}
}

func toAppointmentResponse(a *models.Appointment, withToken bool) *api.AppointmentResponse {
	resp := &api.AppointmentResponse{
		ID:                   a.ID,
		ClientID:             a.ClientID,
		Date:                 a.AppointmentDate.Format(availability.DateLayout),
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
		TotalPrice:           a.TotalPrice,
		TotalDurationMinutes: a.TotalDurationMinutes,
		Status:               string(a.Status),
		Notes:                a.Notes,
		Client:               toClientResponse(a.Client),
		Services:             make([]api.AppointmentServiceResponse, 0, len(a.Services)),
	}

	if withToken {
		resp.CancellationToken = a.CancellationToken
	}

	for _, l := range a.Services {
		resp.Services = append(resp.Services, api.AppointmentServiceResponse{
			ServiceID: l.ServiceID,
			Name:      l.ServiceName,
			Price:     l.Price,
		})
	}

	return resp
}

func toBlockedSlotResponse(b *models.BlockedTimeSlot) *api.BlockedSlotResponse {
	return &api.BlockedSlotResponse{
		ID:        b.ID,
		Date:      b.BlockDate.Format(availability.DateLayout),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
	}
}

func toServiceResponse(sv *models.Service) *api.ServiceResponse {
	return &api.ServiceResponse{
		ID:              sv.ID,
		Name:            sv.Name,
		Description:     sv.Description,
		DurationMinutes: sv.DurationMinutes,
		Price:           sv.Price,
		ImageURL:        sv.ImageURL,
		IsActive:        sv.IsActive,
	}
}
