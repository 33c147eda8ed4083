package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/blossom/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	summary, err := handler.exports.BuildSummary(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.exportError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	now := handler.now().In(handler.location)
	report, err := handler.exports.BuildJSON(c.Query("from"), c.Query("to"), now)
	if err != nil {
		return handler.exportError(c, err)
	}

	serialized, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.ExportFilename(now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	rows, err := handler.exports.BuildCSVRows(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.exportError(c, err)
	}

	var output bytes.Buffer
	if err := services.WriteExportCSV(&output, rows); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	now := handler.now().In(handler.location)
	setExportAttachmentHeaders(c, "text/csv", services.ExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	case errors.Is(err, services.ErrExportToDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	case errors.Is(err, services.ErrExportRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	default:
		handler.logger.Error().Err(err).Str("path", c.Path()).Msg("export failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch entries")
	}
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
