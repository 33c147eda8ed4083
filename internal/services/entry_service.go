package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/blossom/internal/models"
)

var (
	ErrEntryNotFound     = errors.New("log entry not found")
	ErrEntryLoadFailed   = errors.New("load log entry failed")
	ErrEntrySaveFailed   = errors.New("save log entry failed")
	ErrEntryDeleteFailed = errors.New("delete log entry failed")
)

type EntryRepository interface {
	ListAll() ([]models.LogEntry, error)
	ListRange(from string, to string) ([]models.LogEntry, error)
	FindByDate(date string) (models.LogEntry, bool, error)
	Upsert(entry *models.LogEntry) error
	DeleteByDate(date string) (bool, error)
	DeleteAll() (int64, error)
	Count() (int64, error)
}

type EntryService struct {
	entries EntryRepository
}

func NewEntryService(entries EntryRepository) *EntryService {
	return &EntryService{entries: entries}
}

func (service *EntryService) SaveEntry(input EntryInput) (models.LogEntry, error) {
	entry, err := NormalizeEntryInput(input)
	if err != nil {
		return models.LogEntry{}, err
	}
	if err := service.entries.Upsert(&entry); err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: %v", ErrEntrySaveFailed, err)
	}
	return entry, nil
}

func (service *EntryService) GetEntry(date string) (models.LogEntry, error) {
	if _, err := ParseEntryDate(date); err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEntry)
	}
	entry, found, err := service.entries.FindByDate(date)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	if !found {
		return models.LogEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

// ListEntries returns entries between from and to inclusive; an empty bound is open.
func (service *EntryService) ListEntries(from string, to string) ([]models.LogEntry, error) {
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := ParseEntryDate(bound); err != nil {
			return nil, fmt.Errorf("%w: range bound %q must be YYYY-MM-DD", ErrInvalidEntry, bound)
		}
	}
	if from != "" && to != "" && from > to {
		return nil, fmt.Errorf("%w: range start %s is after end %s", ErrInvalidEntry, from, to)
	}

	var (
		entries []models.LogEntry
		err     error
	)
	if from == "" && to == "" {
		entries, err = service.entries.ListAll()
	} else {
		entries, err = service.entries.ListRange(from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *EntryService) DeleteEntry(date string) error {
	if _, err := ParseEntryDate(date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEntry)
	}
	deleted, err := service.entries.DeleteByDate(date)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEntryDeleteFailed, err)
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

// ImportEntries validates the whole batch before writing anything, then upserts
// in order. It returns the number of entries written.
func (service *EntryService) ImportEntries(inputs []EntryInput) (int, error) {
	entries := make([]models.LogEntry, 0, len(inputs))
	for index, input := range inputs {
		entry, err := NormalizeEntryInput(input)
		if err != nil {
			return 0, fmt.Errorf("entry %d (%s): %w", index, input.Date, err)
		}
		entries = append(entries, entry)
	}

	for index := range entries {
		if err := service.entries.Upsert(&entries[index]); err != nil {
			return index, fmt.Errorf("%w: entry %d (%s): %v", ErrEntrySaveFailed, index, entries[index].Date, err)
		}
	}
	return len(entries), nil
}

// ClearEntries removes the whole journal and reports how many days were deleted.
func (service *EntryService) ClearEntries() (int64, error) {
	deleted, err := service.entries.DeleteAll()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntryDeleteFailed, err)
	}
	return deleted, nil
}

func (service *EntryService) CountEntries() (int64, error) {
	count, err := service.entries.Count()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	return count, nil
}
