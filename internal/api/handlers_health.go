package api

import "github.com/gofiber/fiber/v2"

// Health reports liveness plus a database round trip.
func (handler *Handler) Health(c *fiber.Ctx) error {
	count, err := handler.entries.CountEntries()
	if err != nil {
		handler.logger.Error().Err(err).Msg("health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok", "entries": count})
}
