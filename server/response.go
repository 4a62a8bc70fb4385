package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Envelope is the uniform API response body. Data is always present,
// serialized as null when a response carries no payload.
type Envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{
		Success:   status < fiber.StatusBadRequest,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// RespondOK sends a 200 envelope
func RespondOK(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusOK, message, data)
}

// RespondCreated sends a 201 envelope
func RespondCreated(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusCreated, message, data)
}

// RespondError maps an error to the envelope once, centrally. Rich
// errors carry their category; anything else is an internal error and
// its detail stays out of the response body.
func RespondError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return respond(c, fiber.StatusInternalServerError, "internal server error", nil)
	}

	status := statusFor(richErr)

	message := richErr.Message
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return respond(c, status, message, nil)
}

func statusFor(err *errors.Error) int {
	switch err.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondValidation sends a 400 with field-level validation detail
func RespondValidation(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(Envelope{
		Success:   false,
		Message:   "validation failed",
		Data:      fiber.Map{"errors": err.Error()},
		Timestamp: time.Now().UTC(),
	})
}
