package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/blossom/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	entries, err := handler.entries.ListEntries(strings.TrimSpace(c.Query("from")), strings.TrimSpace(c.Query("to")))
	if err != nil {
		return handler.entryError(c, err, "failed to fetch entries")
	}
	return c.JSON(entries)
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	entry, err := handler.entries.GetEntry(c.Params("date"))
	if err != nil {
		return handler.entryError(c, err, "failed to fetch entry")
	}
	return c.JSON(entry)
}

// PutEntry replaces the whole day at :date. A body date, when present, must match the path.
func (handler *Handler) PutEntry(c *fiber.Ctx) error {
	date := c.Params("date")

	var input services.EntryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if body := strings.TrimSpace(input.Date); body != "" && body != date {
		return apiError(c, fiber.StatusBadRequest, "payload date does not match path")
	}
	input.Date = date

	entry, err := handler.entries.SaveEntry(input)
	if err != nil {
		return handler.entryError(c, err, "failed to save entry")
	}
	handler.logger.Debug().Str("date", entry.Date).Str("flow", entry.Flow).Msg("entry saved")
	return c.JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	if err := handler.entries.DeleteEntry(c.Params("date")); err != nil {
		return handler.entryError(c, err, "failed to delete entry")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearEntries wipes the whole journal.
func (handler *Handler) ClearEntries(c *fiber.Ctx) error {
	deleted, err := handler.entries.ClearEntries()
	if err != nil {
		return handler.entryError(c, err, "failed to clear entries")
	}
	handler.logger.Info().Int64("deleted", deleted).Msg("journal cleared")
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) entryError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidEntry):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "entry not found")
	default:
		handler.logger.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
