package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/booking"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondError maps a booking error onto the matching HTTP status. Unknown
// errors are logged and reported generically so storage internals never
// reach the client.
func RespondError(c *fiber.Ctx, err error) error {
	var validationErr *booking.ValidationError
	var stateErr *booking.InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: validationErr.Message})
	case errors.As(err, &stateErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Message: stateErr.Error()})
	case errors.Is(err, booking.ErrUnauthorized):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, booking.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, booking.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Message: err.Error()})
	case errors.Is(err, booking.ErrInvalidSignature):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "Something went wrong"})
	}
}
