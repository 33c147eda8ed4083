package api

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/blossom/internal/db"
	"github.com/terraincognita07/blossom/internal/services"
	"gorm.io/gorm"
)

type Options struct {
	// SecretKey enables bearer-token auth on /api when non-empty.
	SecretKey string
	Location  *time.Location
	Windows   services.AnalysisWindows
	Insights  services.InsightOptions
	Logger    zerolog.Logger
	Now       func() time.Time
}

type Handler struct {
	entries      *services.EntryService
	analysis     *services.AnalysisService
	exports      *services.ExportService
	secretKey    []byte
	location     *time.Location
	logger       zerolog.Logger
	now          func() time.Time
	tokenLimiter *attemptLimiter
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		entries:      services.NewEntryService(repositories.LogEntries),
		analysis:     services.NewAnalysisService(repositories.LogEntries, options.Windows, options.Location, options.Insights),
		exports:      services.NewExportService(repositories.LogEntries),
		secretKey:    []byte(options.SecretKey),
		location:     options.Location,
		logger:       options.Logger,
		now:          options.Now,
		tokenLimiter: newAttemptLimiter(),
	}, nil
}

func (handler *Handler) authEnabled() bool {
	return len(handler.secretKey) > 0
}
