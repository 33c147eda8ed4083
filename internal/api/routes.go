package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with middleware and routes attached.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Blossom",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(handler.RequestID)
	app.Use(handler.AccessLog)
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	return app
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.TokenRequired)

	entries := api.Group("/entries")
	entries.Get("", handler.ListEntries)
	entries.Delete("", handler.ClearEntries)
	entries.Get("/:date", handler.GetEntry)
	entries.Put("/:date", handler.PutEntry)
	entries.Delete("/:date", handler.DeleteEntry)

	api.Get("/cycle", handler.GetCycle)
	api.Get("/wellness", handler.GetWellness)
	api.Get("/insights", handler.GetInsights)
	api.Get("/insights/primary", handler.GetPrimaryStory)
	api.Get("/snapshot", handler.GetSnapshot)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}
