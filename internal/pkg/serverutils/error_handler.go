package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is a failure that carries its HTTP status and optional remediation
// hints to the client.
type AppError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *AppError {
	return NewAppError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return NewAppError(fiber.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return NewAppError(fiber.StatusConflict, message)
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

// ErrorHandlerMiddleware converts every error returned by a handler into a
// structured JSON response. Nothing propagates as an unhandled fault.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(appErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
}
