package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/blossom/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// errorHandler keeps fiber's own errors (unknown route, bad method) in the JSON error shape.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}
	return apiError(c, status, message)
}

// requestNow resolves the analysis clock. ?today=YYYY-MM-DD pins it to noon of
// that day in the journal's location.
func (handler *Handler) requestNow(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("today")
	if raw == "" {
		return handler.now(), nil
	}
	day, err := services.ParseEntryDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, handler.location), nil
}
