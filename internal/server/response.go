package server

import (
	"errors"

	"github.com/Rana718/jsonsql/internal/types"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// errorStatus maps domain error kinds onto HTTP status codes.
func errorStatus(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, types.ErrMappingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrInvalidMapping),
		errors.Is(err, types.ErrMalformedJSON),
		errors.Is(err, types.ErrInvalidIdentifier):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders every error that reaches fiber as a JSON error body.
func errorHandler(c *fiber.Ctx, err error) error {
	return JSONError(c, errorStatus(err), err.Error())
}
