package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST     ErrCode = "REQUEST_FAILED"
	BAD_REQUEST        ErrCode = "FAILED_TO_DECODE"
	INVALID_ARGUMENT   ErrCode = "INVALID_ARGUMENT"
	VALIDATION_FAILED  ErrCode = "VALIDATION_FAILED"
	NOT_FOUND          ErrCode = "NOT_FOUND"
	LOCKED             ErrCode = "LOCKED"
	CONFLICT           ErrCode = "CONFLICT"
	SLOT_NOT_AVAILABLE ErrCode = "SLOT_NOT_AVAILABLE"
	RATE_LIMITED       ErrCode = "RATE_LIMITED"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("resource not found")
	ErrLocked           = errors.New("resource is locked")
	ErrConflict         = errors.New("conflict")
	ErrSlotNotAvailable = errors.New("slot is not available")
	ErrInvalidArgument  = errors.New("invalid argument")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

// FromError maps a service error onto its HTTP status and error body.
// Unknown errors become a 500 carrying fallback as the message.
func FromError(err error, fallback string) (int, Response) {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, Error(string(INVALID_ARGUMENT), errMessage(err))
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, Error(string(BAD_REQUEST), "bad request")
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, Error(string(NOT_FOUND), "resource not found")
	case errors.Is(err, ErrLocked):
		return http.StatusLocked, Error(string(LOCKED), "resource is locked, try again")
	case errors.Is(err, ErrSlotNotAvailable):
		return http.StatusConflict, Error(string(SLOT_NOT_AVAILABLE), "slot is not available")
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, Error(string(CONFLICT), errMessage(err))
	default:
		return http.StatusInternalServerError, Error(string(FAILED_REQUEST), fallback)
	}
}

// errMessage drops the "pkg.Func: " op prefixes so clients see only the cause.
func errMessage(err error) string {
	parts := strings.Split(err.Error(), ": ")
	for i, p := range parts {
		if !strings.Contains(p, ".") || strings.Contains(p, " ") {
			return strings.Join(parts[i:], ": ")
		}
	}
	return err.Error()
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required", "required_if":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be at least %s", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be at most %s", err.Field(), err.Param()))
		case "gt":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be greater than %s", err.Field(), err.Param()))
		case "gte":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be at least %s", err.Field(), err.Param()))
		case "oneof":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be one of [%s]", err.Field(), err.Param()))
		case "email":
			errMsg = append(errMsg, fmt.Sprintf("field '%s' must be a valid email", err.Field()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("field '%s' is invalid", err.Field()))
		}
	}

	return Error(string(VALIDATION_FAILED), strings.Join(errMsg, ", "))
}
