package db

import "gorm.io/gorm"

type Repositories struct {
	LogEntries *LogEntryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		LogEntries: NewLogEntryRepository(database),
	}
}
