package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/blossom/internal/services"
)

func (handler *Handler) GetCycle(c *fiber.Ctx) error {
	now, err := handler.requestNow(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	overview, err := handler.analysis.CycleOverview(now)
	if err != nil {
		return handler.analysisError(c, err)
	}
	return c.JSON(overview)
}

func (handler *Handler) GetWellness(c *fiber.Ctx) error {
	now, err := handler.requestNow(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	score, err := handler.analysis.Wellness(now)
	if err != nil {
		return handler.analysisError(c, err)
	}
	return c.JSON(score)
}

func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	now, err := handler.requestNow(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	insights, err := handler.analysis.Insights(now)
	if err != nil {
		return handler.analysisError(c, err)
	}
	return c.JSON(insights)
}

func (handler *Handler) GetPrimaryStory(c *fiber.Ctx) error {
	now, err := handler.requestNow(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	story, err := handler.analysis.PrimaryStory(now)
	if err != nil {
		return handler.analysisError(c, err)
	}
	return c.JSON(fiber.Map{"story": story})
}

func (handler *Handler) GetSnapshot(c *fiber.Ctx) error {
	now, err := handler.requestNow(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today date")
	}
	snapshot, err := handler.analysis.Snapshot(now)
	if err != nil {
		return handler.analysisError(c, err)
	}
	return c.JSON(snapshot)
}

func (handler *Handler) analysisError(c *fiber.Ctx, err error) error {
	event := handler.logger.Error().Err(err).Str("path", c.Path())
	var dateErr *services.EntryDateError
	if errors.As(err, &dateErr) {
		event = event.Str("stored_date", dateErr.Date)
	}
	event.Msg("analysis failed")
	return apiError(c, fiber.StatusInternalServerError, "failed to analyze journal")
}
