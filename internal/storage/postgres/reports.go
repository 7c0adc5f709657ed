package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

// All report queries cover non-cancelled appointments with from <= date < to.

func (s *Storage) RevenueBetween(ctx context.Context, from, to time.Time) (float64, int, error) {
	const op = "storage.postgres.RevenueBetween"

	var (
		revenue float64
		count   int
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_price), 0), COUNT(*)
		FROM appointments
		WHERE status <> 'cancelled' AND appointment_date >= $1 AND appointment_date < $2`,
		dateArg(from), dateArg(to),
	).Scan(&revenue, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	return revenue, count, nil
}

func (s *Storage) TopServices(ctx context.Context, from, to time.Time, limit int) ([]models.ServiceStat, error) {
	const op = "storage.postgres.TopServices"

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.service_name, COUNT(*), COALESCE(SUM(l.price), 0)
		FROM appointment_services l
		JOIN appointments a ON a.id = l.appointment_id
		WHERE a.status <> 'cancelled' AND a.appointment_date >= $1 AND a.appointment_date < $2
		GROUP BY l.service_name
		ORDER BY COUNT(*) DESC, l.service_name
		LIMIT $3`,
		dateArg(from), dateArg(to), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.ServiceStat{}
	for rows.Next() {
		var st models.ServiceStat
		if err := rows.Scan(&st.Name, &st.Count, &st.Revenue); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Storage) TopClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientStat, error) {
	const op = "storage.postgres.TopClients"

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(SUM(a.total_price), 0), COUNT(*)
		FROM appointments a
		JOIN clients c ON c.id = a.client_id
		WHERE a.status <> 'cancelled' AND a.appointment_date >= $1 AND a.appointment_date < $2
		GROUP BY c.id, c.name
		ORDER BY SUM(a.total_price) DESC, c.name
		LIMIT $3`,
		dateArg(from), dateArg(to), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.ClientStat{}
	for rows.Next() {
		var st models.ClientStat
		if err := rows.Scan(&st.ClientID, &st.Name, &st.TotalSpent, &st.AppointmentCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// DailyRevenue returns only days that have appointments.
func (s *Storage) DailyRevenue(ctx context.Context, from, to time.Time) ([]models.DailyRevenue, error) {
	const op = "storage.postgres.DailyRevenue"

	rows, err := s.db.QueryContext(ctx, `
		SELECT appointment_date, COALESCE(SUM(total_price), 0), COUNT(*)
		FROM appointments
		WHERE status <> 'cancelled' AND appointment_date >= $1 AND appointment_date < $2
		GROUP BY appointment_date
		ORDER BY appointment_date`,
		dateArg(from), dateArg(to),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.DailyRevenue{}
	for rows.Next() {
		var d models.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.Appointments); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
