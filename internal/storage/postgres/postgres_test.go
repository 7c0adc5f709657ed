package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, response.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), response.ErrNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, response.ErrConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, response.ErrNotFound},
		{"exclusion violation", &pq.Error{Code: "23P01"}, response.ErrSlotNotAvailable},
		{"invalid uuid text", &pq.Error{Code: "22P02"}, response.ErrInvalidArgument},
		{"check violation", &pq.Error{Code: "23514"}, response.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapError(tt.in); !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMapError_PassesThroughUnknown(t *testing.T) {
	in := &pq.Error{Code: "57014"}
	if got := mapError(in); got != error(in) {
		t.Fatalf("expected the original error back, got %v", got)
	}
}

func TestDateArg(t *testing.T) {
	d := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
	if got := dateArg(d); got != "2025-06-02" {
		t.Fatalf("expected 2025-06-02, got %s", got)
	}
}

func TestSchemaHasOverlapGuard(t *testing.T) {
	if schema == "" {
		t.Fatalf("embedded schema is empty")
	}
	for _, want := range []string{"appointments_no_overlap", "btree_gist", "status <> 'cancelled'"} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema is missing %q", want)
		}
	}
}

func TestSchemaHasSingleBusinessConfigRow(t *testing.T) {
	for _, want := range []string{"CREATE TABLE IF NOT EXISTS business_config", "CHECK (id = 1)", "cancellation_hours_before BETWEEN 1 AND 72"} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema is missing %q", want)
		}
	}
}
