package db

import (
	"github.com/terraincognita07/blossom/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// upsertColumns are replaced when a day is logged again.
var upsertColumns = []string{
	"cycle_phase",
	"flow",
	"symptoms",
	"psych",
	"lifestyle",
	"custom_values",
	"updated_at",
}

type LogEntryRepository struct {
	database *gorm.DB
}

func NewLogEntryRepository(database *gorm.DB) *LogEntryRepository {
	return &LogEntryRepository{database: database}
}

func (repo *LogEntryRepository) ListAll() ([]models.LogEntry, error) {
	entries := make([]models.LogEntry, 0)
	if err := repo.database.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRange returns entries with from <= date <= to. An empty bound is open.
// YYYY-MM-DD text compares in calendar order.
func (repo *LogEntryRepository) ListRange(from string, to string) ([]models.LogEntry, error) {
	query := repo.database.Model(&models.LogEntry{})
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	entries := make([]models.LogEntry, 0)
	if err := query.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *LogEntryRepository) FindByDate(date string) (models.LogEntry, bool, error) {
	entry := models.LogEntry{}
	result := repo.database.Where("date = ?", date).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.LogEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.LogEntry{}, false, nil
	}
	return entry, true, nil
}

// Upsert inserts the day or replaces every logged field of the existing row for that date.
func (repo *LogEntryRepository) Upsert(entry *models.LogEntry) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(entry).Error
}

func (repo *LogEntryRepository) DeleteByDate(date string) (bool, error) {
	result := repo.database.Where("date = ?", date).Delete(&models.LogEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *LogEntryRepository) DeleteAll() (int64, error) {
	result := repo.database.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LogEntry{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (repo *LogEntryRepository) Count() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.LogEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
