package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status a failure maps to. Anything that is not
// an AppError is reported as a generic 500 without detail leakage.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(msg string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *AppError {
	if msg == "" {
		msg = "unauthorized"
	}
	return &AppError{Status: fiber.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *AppError {
	if msg == "" {
		msg = "forbidden"
	}
	return &AppError{Status: fiber.StatusForbidden, Message: msg}
}

func NotFound(msg string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: msg}
}

func Internal(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "internal server error", Err: err}
}

// AsAppError unwraps err into an AppError, if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
