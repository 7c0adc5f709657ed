package postgres

import (
	"context"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

const businessConfigColumns = `salon_name, salon_description, phone, email, address,
	booking_advance_days, reminder_hours_before, cancellation_hours_before, updated_at`

// GetBusinessConfig returns the salon settings row, ErrNotFound until it is first saved.
func (s *Storage) GetBusinessConfig(ctx context.Context) (*models.BusinessConfig, error) {
	const op = "storage.postgres.GetBusinessConfig"

	var c models.BusinessConfig
	err := s.db.QueryRowContext(ctx, `SELECT `+businessConfigColumns+` FROM business_config WHERE id = 1`).Scan(
		&c.SalonName, &c.SalonDescription, &c.Phone, &c.Email, &c.Address,
		&c.BookingAdvanceDays, &c.ReminderHoursBefore, &c.CancellationHoursBefore, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &c, nil
}

func (s *Storage) UpsertBusinessConfig(ctx context.Context, c *models.BusinessConfig) (*models.BusinessConfig, error) {
	const op = "storage.postgres.UpsertBusinessConfig"

	var saved models.BusinessConfig
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO business_config (id, salon_name, salon_description, phone, email, address,
			booking_advance_days, reminder_hours_before, cancellation_hours_before)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			salon_name = EXCLUDED.salon_name,
			salon_description = EXCLUDED.salon_description,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			booking_advance_days = EXCLUDED.booking_advance_days,
			reminder_hours_before = EXCLUDED.reminder_hours_before,
			cancellation_hours_before = EXCLUDED.cancellation_hours_before,
			updated_at = now()
		RETURNING `+businessConfigColumns,
		c.SalonName, c.SalonDescription, c.Phone, c.Email, c.Address,
		c.BookingAdvanceDays, c.ReminderHoursBefore, c.CancellationHoursBefore,
	).Scan(
		&saved.SalonName, &saved.SalonDescription, &saved.Phone, &saved.Email, &saved.Address,
		&saved.BookingAdvanceDays, &saved.ReminderHoursBefore, &saved.CancellationHoursBefore, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &saved, nil
}
