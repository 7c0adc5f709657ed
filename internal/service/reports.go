package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/api"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

const (
	monthLayout = "2006-01"
	topN        = 5
)

// GetFinancialReport builds the monthly dashboard for month ("YYYY-MM",
// current month when empty). Cancelled appointments are never counted.
func (s *Service) GetFinancialReport(ctx context.Context, month string) (*api.FinancialReportResponse, error) {
	const op = "service.GetFinancialReport"

	start := s.today()
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	if month != "" {
		m, err := time.Parse(monthLayout, month)
		if err != nil {
			return nil, fmt.Errorf("%s: month %q: %w", op, month, response.ErrInvalidArgument)
		}
		start = m
	}
	end := start.AddDate(0, 1, 0)
	prev := start.AddDate(0, -1, 0)

	var (
		curRevenue, prevRevenue float64
		curCount                int
		services                []models.ServiceStat
		clients                 []models.ClientStat
		daily                   []models.DailyRevenue
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		curRevenue, curCount, err = s.store.RevenueBetween(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		prevRevenue, _, err = s.store.RevenueBetween(gctx, prev, start)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.store.TopServices(gctx, start, end, topN)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.store.TopClients(gctx, start, end, topN)
		return err
	})
	g.Go(func() error {
		var err error
		daily, err = s.store.DailyRevenue(gctx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &api.FinancialReportResponse{
		Month:               start.Format(monthLayout),
		CurrentMonthRevenue: curRevenue,
		LastMonthRevenue:    prevRevenue,
		TotalAppointments:   curCount,
		PopularServices:     make([]api.ServiceStat, 0, len(services)),
		VIPClients:          make([]api.ClientStat, 0, len(clients)),
	}

	if prevRevenue > 0 {
		resp.RevenueGrowth = (curRevenue - prevRevenue) / prevRevenue * 100
	}
	if curCount > 0 {
		resp.AverageTicket = curRevenue / float64(curCount)
	}

	for _, st := range services {
		resp.PopularServices = append(resp.PopularServices, api.ServiceStat{Name: st.Name, Count: st.Count, Revenue: st.Revenue})
	}
	for _, st := range clients {
		resp.VIPClients = append(resp.VIPClients, api.ClientStat{
			ClientID:         st.ClientID,
			Name:             st.Name,
			TotalSpent:       st.TotalSpent,
			AppointmentCount: st.AppointmentCount,
		})
	}

	resp.DailyRevenue = fillDays(start, end, daily)

	return resp, nil
}

// fillDays expands the sparse per-day rows into one entry per day of the month.
func fillDays(start, end time.Time, rows []models.DailyRevenue) []api.DailyRevenue {
	byDay := make(map[int]models.DailyRevenue, len(rows))
	for _, r := range rows {
		byDay[r.Date.Day()] = r
	}

	var out []api.DailyRevenue
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		r := byDay[d.Day()]
		out = append(out, api.DailyRevenue{Day: d.Day(), Revenue: r.Revenue, Appointments: r.Appointments})
	}

	return out
}
