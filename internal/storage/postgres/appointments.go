package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

const appointmentColumns = `a.id, a.client_id, a.appointment_date,
	to_char(a.start_time, ` + timeFormat + `), to_char(a.end_time, ` + timeFormat + `),
	a.total_price, a.total_duration_minutes, a.status, a.notes, a.cancellation_token,
	a.created_at, a.updated_at,
	c.id, c.name, c.whatsapp, c.email, c.notes, c.created_at, c.updated_at`

const appointmentFrom = `FROM appointments a JOIN clients c ON c.id = a.client_id`

func scanAppointment(row interface{ Scan(...any) error }) (models.Appointment, error) {
	var (
		a models.Appointment
		c models.Client
	)

	err := row.Scan(&a.ID, &a.ClientID, &a.AppointmentDate, &a.StartTime, &a.EndTime,
		&a.TotalPrice, &a.TotalDurationMinutes, &a.Status, &a.Notes, &a.CancellationToken,
		&a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.WhatsApp, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return a, err
	}

	a.Client = &c
	return a, nil
}

// #### appointments/create ####

// CreateBooking stores a booking atomically: the client is found by WhatsApp
// number or created, then the appointment and its service lines are inserted.
// An overlapping non-cancelled appointment trips the exclusion constraint.
func (s *Storage) CreateBooking(ctx context.Context, client *models.Client, appt *models.Appointment) (*models.Appointment, error) {
	const op = "storage.postgres.CreateBooking"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer rollback(tx)

	c, err := upsertClientTx(ctx, tx, client)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created := *appt
	created.ClientID = c.ID
	created.Client = c

	err = tx.QueryRowContext(ctx, `
		INSERT INTO appointments (client_id, appointment_date, start_time, end_time,
			total_price, total_duration_minutes, status, notes, cancellation_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		c.ID, dateArg(appt.AppointmentDate), appt.StartTime, appt.EndTime,
		appt.TotalPrice, appt.TotalDurationMinutes, appt.Status, appt.Notes, appt.CancellationToken,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: insert appointment: %w", op, mapError(err))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO appointment_services (appointment_id, service_id, service_name, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`)
	if err != nil {
		return nil, fmt.Errorf("%s: prepare: %w", op, err)
	}
	defer stmt.Close()

	created.Services = make([]models.AppointmentService, 0, len(appt.Services))
	for _, line := range appt.Services {
		line.AppointmentID = created.ID
		if err := stmt.QueryRowContext(ctx, created.ID, line.ServiceID, line.ServiceName, line.Price).Scan(&line.ID); err != nil {
			return nil, fmt.Errorf("%s: insert service line: %w", op, mapError(err))
		}
		created.Services = append(created.Services, line)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, mapError(err))
	}

	return &created, nil
}

// #### appointments/get ####

func (s *Storage) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	const op = "storage.postgres.GetAppointment"

	return s.getAppointmentBy(ctx, op, "a.id", id)
}

func (s *Storage) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	const op = "storage.postgres.GetAppointmentByToken"

	return s.getAppointmentBy(ctx, op, "a.cancellation_token", token)
}

func (s *Storage) getAppointmentBy(ctx context.Context, op, column, value string) (*models.Appointment, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` `+appointmentFrom+` WHERE `+column+` = $1`, value)

	a, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	lines, err := s.serviceLines(ctx, []string{a.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Services = lines[a.ID]

	return &a, nil
}

// ListAppointments returns the appointments matching filter ordered by date then start time.
func (s *Storage) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	const op = "storage.postgres.ListAppointments"

	var (
		where []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Date != nil {
		add("a.appointment_date = $%d", dateArg(*filter.Date))
	}
	if filter.From != nil {
		add("a.appointment_date >= $%d", dateArg(*filter.From))
	}
	if filter.To != nil {
		add("a.appointment_date <= $%d", dateArg(*filter.To))
	}
	if filter.Status != nil {
		add("a.status = $%d", string(*filter.Status))
	}
	if filter.ClientID != nil {
		add("a.client_id = $%d", *filter.ClientID)
	}

	query := `SELECT ` + appointmentColumns + ` ` + appointmentFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY a.appointment_date, a.start_time`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer rows.Close()

	out := []models.Appointment{}
	ids := []string{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, a)
		ids = append(ids, a.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		return out, nil
	}

	lines, err := s.serviceLines(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for i := range out {
		out[i].Services = lines[out[i].ID]
	}

	return out, nil
}

// ListActiveAppointmentsByDate returns the non-cancelled appointments on date,
// which is everything that occupies salon time.
func (s *Storage) ListActiveAppointmentsByDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	const op = "storage.postgres.ListActiveAppointmentsByDate"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, to_char(start_time, `+timeFormat+`), to_char(end_time, `+timeFormat+`), status
		FROM appointments
		WHERE appointment_date = $1 AND status <> 'cancelled'
		ORDER BY start_time`, dateArg(date))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a := models.Appointment{AppointmentDate: date}
		if err := rows.Scan(&a.ID, &a.StartTime, &a.EndTime, &a.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Storage) serviceLines(ctx context.Context, appointmentIDs []string) (map[string][]models.AppointmentService, error) {
	const op = "storage.postgres.serviceLines"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, appointment_id, COALESCE(service_id::text, ''), service_name, price
		FROM appointment_services
		WHERE appointment_id = ANY($1::uuid[])
		ORDER BY service_name`, pq.Array(appointmentIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make(map[string][]models.AppointmentService, len(appointmentIDs))
	for rows.Next() {
		var l models.AppointmentService
		if err := rows.Scan(&l.ID, &l.AppointmentID, &l.ServiceID, &l.ServiceName, &l.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out[l.AppointmentID] = append(out[l.AppointmentID], l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// #### appointments/status ####

func (s *Storage) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	const op = "storage.postgres.UpdateAppointmentStatus"

	res, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET status = $2, updated_at = now()
		WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### appointments/delete ####

func (s *Storage) DeleteAppointment(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteAppointment"

	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	if err := affectedOrNotFound(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
