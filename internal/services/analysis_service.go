package services

import (
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

type EntryReader interface {
	ListAll() ([]models.LogEntry, error)
	ListRange(from string, to string) ([]models.LogEntry, error)
}

// AnalysisWindows sizes the rolling windows, in calendar days including today.
type AnalysisWindows struct {
	WellnessDays int
	InsightDays  int
}

func DefaultAnalysisWindows() AnalysisWindows {
	return AnalysisWindows{
		WellnessDays: WellnessWindowDays,
		InsightDays:  InsightWindowDays,
	}
}

type CycleOverview struct {
	Analysis CycleAnalysis `json:"analysis"`
	Summary  CycleSummary  `json:"summary"`
	Insight  string        `json:"insight"`
	Guidance string        `json:"guidance"`
}

type Snapshot struct {
	Today        string        `json:"today"`
	Cycle        CycleOverview `json:"cycle"`
	Wellness     WellnessScore `json:"wellness"`
	Insights     []Insight     `json:"insights"`
	PrimaryStory string        `json:"primaryStory"`
}

// AnalysisService loads log windows from storage and runs the engine over them.
type AnalysisService struct {
	entries  EntryReader
	windows  AnalysisWindows
	location *time.Location
	options  InsightOptions
}

func NewAnalysisService(entries EntryReader, windows AnalysisWindows, location *time.Location, options InsightOptions) *AnalysisService {
	if windows.WellnessDays <= 0 {
		windows.WellnessDays = WellnessWindowDays
	}
	if windows.InsightDays <= 0 {
		windows.InsightDays = InsightWindowDays
	}
	if location == nil {
		location = time.UTC
	}
	return &AnalysisService{
		entries:  entries,
		windows:  windows,
		location: location,
		options:  options,
	}
}

func (service *AnalysisService) CycleOverview(now time.Time) (CycleOverview, error) {
	entries, err := service.entries.ListAll()
	if err != nil {
		return CycleOverview{}, err
	}
	analysis, err := AnalyzeCycle(entries, service.today(now))
	if err != nil {
		return CycleOverview{}, err
	}
	summary := SummarizeCycle(analysis)
	return CycleOverview{
		Analysis: analysis,
		Summary:  summary,
		Insight:  CycleInsight(analysis),
		Guidance: PhaseGuidance(summary.Phase),
	}, nil
}

func (service *AnalysisService) Wellness(now time.Time) (WellnessScore, error) {
	window, err := service.window(now, service.windows.WellnessDays)
	if err != nil {
		return WellnessScore{}, err
	}
	return ComputeWellnessScore(window)
}

func (service *AnalysisService) Insights(now time.Time) ([]Insight, error) {
	window, err := service.window(now, service.windows.InsightDays)
	if err != nil {
		return nil, err
	}
	return GenerateInsights(window, service.options)
}

func (service *AnalysisService) PrimaryStory(now time.Time) (string, error) {
	insights, err := service.Insights(now)
	if err != nil {
		return "", err
	}
	return PrimaryStory(insights), nil
}

func (service *AnalysisService) Snapshot(now time.Time) (Snapshot, error) {
	cycle, err := service.CycleOverview(now)
	if err != nil {
		return Snapshot{}, err
	}
	wellness, err := service.Wellness(now)
	if err != nil {
		return Snapshot{}, err
	}
	insights, err := service.Insights(now)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Today:        service.today(now).Format(entryDateLayout),
		Cycle:        cycle,
		Wellness:     wellness,
		Insights:     insights,
		PrimaryStory: PrimaryStory(insights),
	}, nil
}

// WindowBounds returns the inclusive first and last dates of a window of days ending today.
func WindowBounds(today time.Time, days int) (string, string) {
	last := calendarDay(today)
	first := last.AddDate(0, 0, -(days - 1))
	return first.Format(entryDateLayout), last.Format(entryDateLayout)
}

func (service *AnalysisService) window(now time.Time, days int) ([]models.LogEntry, error) {
	from, to := WindowBounds(service.today(now), days)
	return service.entries.ListRange(from, to)
}

func (service *AnalysisService) today(now time.Time) time.Time {
	return calendarDay(now.In(service.location))
}
