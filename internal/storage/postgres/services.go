package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

const serviceColumns = `id, name, description, duration_minutes, price, image_url, is_active, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (models.Service, error) {
	var sv models.Service
	err := row.Scan(&sv.ID, &sv.Name, &sv.Description, &sv.DurationMinutes, &sv.Price,
		&sv.ImageURL, &sv.IsActive, &sv.CreatedAt, &sv.UpdatedAt)
	return sv, err
}

// #### services/create ####

func (s *Storage) CreateService(ctx context.Context, sv *models.Service) (*models.Service, error) {
	const op = "storage.postgres.CreateService"

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO services (name, description, duration_minutes, price, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+serviceColumns,
		sv.Name, sv.Description, sv.DurationMinutes, sv.Price, sv.ImageURL, sv.IsActive,
	)

	created, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &created, nil
}

// #### services/get ####

func (s *Storage) GetService(ctx context.Context, id string) (*models.Service, error) {
	const op = "storage.postgres.GetService"

	sv, err := scanService(s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &sv, nil
}

func (s *Storage) ListServices(ctx context.Context, includeInactive bool) ([]models.Service, error) {
	const op = "storage.postgres.ListServices"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE is_active OR $1
		ORDER BY name`, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.Service{}
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// GetServicesByIDs returns the services found among ids, in no particular order.
// Missing ids are simply absent from the result.
func (s *Storage) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	const op = "storage.postgres.GetServicesByIDs"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+serviceColumns+` FROM services
		WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer rows.Close()

	var out []models.Service
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// #### services/update ####

func (s *Storage) UpdateService(ctx context.Context, sv *models.Service) (*models.Service, error) {
	const op = "storage.postgres.UpdateService"

	row := s.db.QueryRowContext(ctx, `
		UPDATE services
		SET name = $2, description = $3, duration_minutes = $4, price = $5,
			image_url = $6, is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+serviceColumns,
		sv.ID, sv.Name, sv.Description, sv.DurationMinutes, sv.Price, sv.ImageURL, sv.IsActive,
	)

	updated, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return &updated, nil
}

// #### services/delete ####

func (s *Storage) DeleteService(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteService"

	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
