package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   ErrCode
		msg    string
	}{
		{"invalid argument", fmt.Errorf("service.GetAvailableSlots: duration must be positive: %w", ErrInvalidArgument), http.StatusBadRequest, INVALID_ARGUMENT, "duration must be positive: invalid argument"},
		{"not found", fmt.Errorf("postgres.GetService: %w", ErrNotFound), http.StatusNotFound, NOT_FOUND, "resource not found"},
		{"locked", ErrLocked, http.StatusLocked, LOCKED, "resource is locked, try again"},
		{"slot taken", fmt.Errorf("a.B: %w", ErrSlotNotAvailable), http.StatusConflict, SLOT_NOT_AVAILABLE, "slot is not available"},
		{"conflict", fmt.Errorf("service.CancelByToken: appointment is completed: %w", ErrConflict), http.StatusConflict, CONFLICT, "appointment is completed: conflict"},
		{"unknown", errors.New("dial tcp: refused"), http.StatusInternalServerError, FAILED_REQUEST, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := FromError(tt.err, "fallback")
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if resp.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.Message != tt.msg {
				t.Errorf("message = %q, want %q", resp.Message, tt.msg)
			}
		})
	}
}

func TestFromError_SlotCheckedBeforeConflict(t *testing.T) {
	err := fmt.Errorf("x.Y: %w", errors.Join(ErrSlotNotAvailable, ErrConflict))

	if _, resp := FromError(err, ""); resp.Code != string(SLOT_NOT_AVAILABLE) {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestValidationError(t *testing.T) {
	type req struct {
		Name   string   `validate:"required"`
		Status string   `validate:"oneof=a b"`
		IDs    []string `validate:"min=1"`
	}

	err := validator.New().Struct(req{Status: "c", IDs: []string{}})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	resp := ValidationError(verrs)
	if resp.Code != string(VALIDATION_FAILED) {
		t.Fatalf("code = %q", resp.Code)
	}
	want := "field 'Name' is required, field 'Status' must be one of [a b], field 'IDs' must be at least 1"
	if resp.Message != want {
		t.Fatalf("message = %q\nwant      %q", resp.Message, want)
	}
}
