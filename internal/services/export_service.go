package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

// ExportFormatVersion is bumped when the JSON export shape changes.
const ExportFormatVersion = "1.0"

var ExportCSVHeaders = []string{
	"Date",
	"Cycle phase",
	"Flow",
	"Acne",
	"Hirsutism",
	"Hair loss",
	"Bloat",
	"Cramps",
	"Mood",
	"Stress",
	"Anxiety",
	"Body image",
	"Sleep",
	"Water",
	"Exercise",
	"Diet",
	"Custom",
}

type ExportService struct {
	entries EntryReader
}

type ExportSummary struct {
	TotalEntries int    `json:"totalEntries"`
	HasData      bool   `json:"hasData"`
	DateFrom     string `json:"dateFrom"`
	DateTo       string `json:"dateTo"`
}

// JournalExport is the downloadable report. Entries use the same shape the
// import command accepts.
type JournalExport struct {
	ExportedAt string            `json:"exportedAt"`
	Version    string            `json:"version"`
	Summary    ExportSummary     `json:"summary"`
	Entries    []models.LogEntry `json:"entries"`
}

func NewExportService(entries EntryReader) *ExportService {
	return &ExportService{entries: entries}
}

// LoadEntries validates the raw bounds and returns the matching entries in
// date order.
func (service *ExportService) LoadEntries(rawFrom string, rawTo string) ([]models.LogEntry, error) {
	from, to, err := ParseExportRange(rawFrom, rawTo)
	if err != nil {
		return nil, err
	}

	var entries []models.LogEntry
	if from == "" && to == "" {
		entries, err = service.entries.ListAll()
	} else {
		entries, err = service.entries.ListRange(from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return entries, nil
}

func (service *ExportService) BuildSummary(rawFrom string, rawTo string) (ExportSummary, error) {
	entries, err := service.LoadEntries(rawFrom, rawTo)
	if err != nil {
		return ExportSummary{}, err
	}
	return summarizeEntries(entries), nil
}

func (service *ExportService) BuildJSON(rawFrom string, rawTo string, now time.Time) (JournalExport, error) {
	entries, err := service.LoadEntries(rawFrom, rawTo)
	if err != nil {
		return JournalExport{}, err
	}
	return JournalExport{
		ExportedAt: now.Format(time.RFC3339),
		Version:    ExportFormatVersion,
		Summary:    summarizeEntries(entries),
		Entries:    entries,
	}, nil
}

// BuildCSVRows returns one row per entry, columns matching ExportCSVHeaders.
func (service *ExportService) BuildCSVRows(rawFrom string, rawTo string) ([][]string, error) {
	entries, err := service.LoadEntries(rawFrom, rawTo)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entryCSVColumns(entry))
	}
	return rows, nil
}

// WriteExportCSV writes the header row followed by rows.
func WriteExportCSV(output io.Writer, rows [][]string) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

func ExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("blossom-journal-%s.%s", now.Format(entryDateLayout), extension)
}

func summarizeEntries(entries []models.LogEntry) ExportSummary {
	if len(entries) == 0 {
		return ExportSummary{}
	}

	first := entries[0].Date
	last := entries[0].Date
	for _, entry := range entries[1:] {
		if entry.Date < first {
			first = entry.Date
		}
		if entry.Date > last {
			last = entry.Date
		}
	}

	return ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     first,
		DateTo:       last,
	}
}

func entryCSVColumns(entry models.LogEntry) []string {
	return []string{
		entry.Date,
		entry.CyclePhase,
		csvFlowLabel(entry.Flow),
		strconv.Itoa(entry.Symptoms.Acne),
		strconv.Itoa(entry.Symptoms.Hirsutism),
		strconv.Itoa(entry.Symptoms.HairLoss),
		strconv.Itoa(entry.Symptoms.Bloat),
		strconv.Itoa(entry.Symptoms.Cramps),
		csvOptionalInt(entry.Psych.Mood),
		entry.Psych.Stress,
		entry.Psych.Anxiety,
		entry.Psych.BodyImage,
		entry.Lifestyle.Sleep,
		strconv.Itoa(entry.Lifestyle.WaterIntake),
		entry.Lifestyle.Exercise,
		entry.Lifestyle.Diet,
		csvCustomValues(entry.CustomValues),
	}
}

func csvOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvCustomValues(values map[string]int) string {
	if len(values) == 0 {
		return ""
	}
	tags := make([]string, 0, len(values))
	for tag := range values {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	pairs := make([]string, 0, len(tags))
	for _, tag := range tags {
		pairs = append(pairs, fmt.Sprintf("%s=%d", tag, values[tag]))
	}
	return strings.Join(pairs, "; ")
}

func csvFlowLabel(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowSpotting:
		return "Spotting"
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}
