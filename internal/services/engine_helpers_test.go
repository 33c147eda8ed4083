package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

func mustParseEngineDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := ParseEntryDate(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func shiftDay(t *testing.T, raw string, days int) string {
	t.Helper()
	return mustParseEngineDay(t, raw).AddDate(0, 0, days).Format(entryDateLayout)
}

func flowEntry(date string, flow string) models.LogEntry {
	return models.LogEntry{Date: date, Flow: flow}
}

// truePeriodEntries logs a medium/heavy pair starting at start, closed by a flow-free day.
func truePeriodEntries(t *testing.T, start string) []models.LogEntry {
	t.Helper()
	return []models.LogEntry{
		flowEntry(start, models.FlowMedium),
		flowEntry(shiftDay(t, start, 1), models.FlowHeavy),
		flowEntry(shiftDay(t, start, 2), models.FlowNone),
	}
}

// periodsWithLengths logs true periods whose consecutive starts are lengths apart.
func periodsWithLengths(t *testing.T, firstStart string, lengths ...int) []models.LogEntry {
	t.Helper()
	entries := truePeriodEntries(t, firstStart)
	start := firstStart
	for _, length := range lengths {
		start = shiftDay(t, start, length)
		entries = append(entries, truePeriodEntries(t, start)...)
	}
	return entries
}

func sequentialDates(t *testing.T, first string, count int) []string {
	t.Helper()
	dates := make([]string, 0, count)
	for index := 0; index < count; index++ {
		dates = append(dates, shiftDay(t, first, index))
	}
	return dates
}
