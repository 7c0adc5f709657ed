package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

//go:embed schema.sql
var schema string

// Time columns are read back through this format so the service always sees "HH:MM".
const timeFormat = "'HH24:MI'"

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.postgres.Ping"

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Migrate creates the tables, indexes and constraints if they are missing.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// mapError translates driver errors into the sentinels handlers understand.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return response.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", response.ErrConflict, pqErr.Message)
		case "23503":
			return fmt.Errorf("%w: %s", response.ErrNotFound, pqErr.Message)
		case "23P01":
			return fmt.Errorf("%w: %s", response.ErrSlotNotAvailable, pqErr.Message)
		case "22P02", "22007", "22008", "23514":
			return fmt.Errorf("%w: %s", response.ErrInvalidArgument, pqErr.Message)
		}
	}

	return err
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return response.ErrNotFound
	}
	return nil
}

// dateArg renders a civil date the way Postgres DATE columns expect it.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}
