package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

const clientColumns = `id, name, whatsapp, email, notes, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.WhatsApp, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// #### clients/create ####

func (s *Storage) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	const op = "storage.postgres.CreateClient"

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO clients (name, whatsapp, email, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+clientColumns,
		c.Name, c.WhatsApp, c.Email, c.Notes,
	)

	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &created, nil
}

// upsertClientTx finds the client by WhatsApp number, refreshing the contact
// details that were supplied, or creates it.
func upsertClientTx(ctx context.Context, tx *sql.Tx, c *models.Client) (*models.Client, error) {
	const op = "storage.postgres.upsertClientTx"

	row := tx.QueryRowContext(ctx, `
		INSERT INTO clients (name, whatsapp, email, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (whatsapp) DO UPDATE
		SET name = EXCLUDED.name,
			email = COALESCE(NULLIF(EXCLUDED.email, ''), clients.email),
			notes = COALESCE(NULLIF(EXCLUDED.notes, ''), clients.notes),
			updated_at = now()
		RETURNING `+clientColumns,
		c.Name, c.WhatsApp, c.Email, c.Notes,
	)

	client, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &client, nil
}

// #### clients/get ####

func (s *Storage) GetClient(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.postgres.GetClient"

	c, err := scanClient(s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &c, nil
}

// ListClients matches search against name or WhatsApp number; empty search lists everyone.
func (s *Storage) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	const op = "storage.postgres.ListClients"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+clientColumns+` FROM clients
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR whatsapp LIKE '%' || $1 || '%'
		ORDER BY name`, search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// #### clients/update ####

func (s *Storage) UpdateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	const op = "storage.postgres.UpdateClient"

	row := s.db.QueryRowContext(ctx, `
		UPDATE clients
		SET name = $2, whatsapp = $3, email = $4, notes = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+clientColumns,
		c.ID, c.Name, c.WhatsApp, c.Email, c.Notes,
	)

	updated, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &updated, nil
}

// #### clients/delete ####

func (s *Storage) DeleteClient(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteClient"

	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### clients/stats ####

func (s *Storage) GetClientStats(ctx context.Context, id string) (*models.ClientStats, error) {
	const op = "storage.postgres.GetClientStats"

	var (
		stats models.ClientStats
		last  sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_price), 0), COUNT(*), MAX(appointment_date)
		FROM appointments
		WHERE client_id = $1 AND status <> 'cancelled'`, id,
	).Scan(&stats.TotalSpent, &stats.TotalAppointments, &last)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	if last.Valid {
		stats.LastAppointment = &last.Time
	}

	return &stats, nil
}
