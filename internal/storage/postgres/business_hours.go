package postgres

import (
	"context"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

// #### business_hours/get ####

func (s *Storage) ListBusinessHours(ctx context.Context) ([]models.BusinessHours, error) {
	const op = "storage.postgres.ListBusinessHours"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day_of_week, to_char(start_time, `+timeFormat+`), to_char(end_time, `+timeFormat+`), is_closed, updated_at
		FROM business_hours
		ORDER BY day_of_week`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var week []models.BusinessHours
	for rows.Next() {
		var h models.BusinessHours
		if err := rows.Scan(&h.ID, &h.DayOfWeek, &h.StartTime, &h.EndTime, &h.IsClosed, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		week = append(week, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return week, nil
}

// #### business_hours/update ####

// ReplaceBusinessHours swaps the whole week in a single transaction.
func (s *Storage) ReplaceBusinessHours(ctx context.Context, week []models.BusinessHours) error {
	const op = "storage.postgres.ReplaceBusinessHours"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM business_hours`); err != nil {
		return fmt.Errorf("%s: delete: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO business_hours (day_of_week, start_time, end_time, is_closed)
		VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	for _, h := range week {
		if _, err := stmt.ExecContext(ctx, h.DayOfWeek, h.StartTime, h.EndTime, h.IsClosed); err != nil {
			return fmt.Errorf("%s: insert day %d: %w", op, h.DayOfWeek, mapError(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}
