// FILE: internal/pkg/apperror/apperror.go
// Central error taxonomy. Every user-visible failure maps to a stable code
// plus a human-readable message; raw internal errors never reach the client.
package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeValidation         = "VALIDATION_ERROR"
	CodeOutOfRange         = "OUT_OF_RANGE"
	CodeInvalidTarget      = "INVALID_TARGET"
	CodeExpired            = "EXPIRED"
	CodeInvalidState       = "INVALID_STATE"
	CodeConflict           = "CONFLICT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error // wrapped cause, logged but never serialized
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: fiber.StatusUnauthorized}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: fiber.StatusNotFound}
}

func Validation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: fiber.StatusUnprocessableEntity}
}

func OutOfRange(message string) *AppError {
	return &AppError{Code: CodeOutOfRange, Message: message, Status: fiber.StatusUnprocessableEntity}
}

func InvalidTarget(message string) *AppError {
	return &AppError{Code: CodeInvalidTarget, Message: message, Status: fiber.StatusUnprocessableEntity}
}

func Expired(message string) *AppError {
	return &AppError{Code: CodeExpired, Message: message, Status: fiber.StatusConflict}
}

func InvalidState(message string) *AppError {
	return &AppError{Code: CodeInvalidState, Message: message, Status: fiber.StatusConflict}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: fiber.StatusConflict}
}

func StorageUnavailable(err error) *AppError {
	return &AppError{
		Code:    CodeStorageUnavailable,
		Message: "storage temporarily unavailable",
		Status:  fiber.StatusServiceUnavailable,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  fiber.StatusInternalServerError,
		Err:     err,
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
