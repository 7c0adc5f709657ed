package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

const blockedColumns = `id, block_date, to_char(start_time, ` + timeFormat + `), to_char(end_time, ` + timeFormat + `), reason, created_at`

func scanBlocked(row interface{ Scan(...any) error }) (models.BlockedTimeSlot, error) {
	var b models.BlockedTimeSlot
	err := row.Scan(&b.ID, &b.BlockDate, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedAt)
	return b, err
}

// #### blocked_slots/create ####

func (s *Storage) CreateBlockedSlot(ctx context.Context, b *models.BlockedTimeSlot) (*models.BlockedTimeSlot, error) {
	const op = "storage.postgres.CreateBlockedSlot"

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blocked_time_slots (block_date, start_time, end_time, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING `+blockedColumns,
		dateArg(b.BlockDate), b.StartTime, b.EndTime, b.Reason,
	)

	created, err := scanBlocked(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &created, nil
}

// #### blocked_slots/get ####

func (s *Storage) GetBlockedSlot(ctx context.Context, id string) (*models.BlockedTimeSlot, error) {
	const op = "storage.postgres.GetBlockedSlot"

	row := s.db.QueryRowContext(ctx, `SELECT `+blockedColumns+` FROM blocked_time_slots WHERE id = $1`, id)

	b, err := scanBlocked(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &b, nil
}

// ListBlockedSlots returns slots on or after from, or every slot when from is nil.
func (s *Storage) ListBlockedSlots(ctx context.Context, from *time.Time) ([]models.BlockedTimeSlot, error) {
	const op = "storage.postgres.ListBlockedSlots"

	var (
		rows *sql.Rows
		err  error
	)
	if from != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+blockedColumns+` FROM blocked_time_slots
			WHERE block_date >= $1
			ORDER BY block_date, start_time`, dateArg(*from))
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+blockedColumns+` FROM blocked_time_slots
			ORDER BY block_date, start_time`)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return collectBlocked(op, rows)
}

func (s *Storage) ListBlockedSlotsByDate(ctx context.Context, date time.Time) ([]models.BlockedTimeSlot, error) {
	const op = "storage.postgres.ListBlockedSlotsByDate"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blockedColumns+` FROM blocked_time_slots
		WHERE block_date = $1
		ORDER BY start_time`, dateArg(date))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return collectBlocked(op, rows)
}

func collectBlocked(op string, rows *sql.Rows) ([]models.BlockedTimeSlot, error) {
	defer rows.Close()

	out := []models.BlockedTimeSlot{}
	for rows.Next() {
		b, err := scanBlocked(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// #### blocked_slots/delete ####

func (s *Storage) DeleteBlockedSlot(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteBlockedSlot"

	res, err := s.db.ExecContext(ctx, `DELETE FROM blocked_time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
