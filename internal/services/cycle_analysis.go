package services

import (
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

type CycleAnalysis struct {
	CurrentDay     int          `json:"currentDay"`
	IsLongCycle    bool         `json:"isLongCycle"`
	Variability    float64      `json:"variability"`
	LastTruePeriod *CycleEvent  `json:"lastTruePeriod,omitempty"`
	CycleHistory   []CycleEvent `json:"cycleHistory"`
	IsUntracked    bool         `json:"isUntracked"`
}

// AnalyzeCycle rebuilds the cycle timeline from the full log history and
// measures it against the calendar day of now.
func AnalyzeCycle(entries []models.LogEntry, now time.Time) (CycleAnalysis, error) {
	vectors, err := normalizeEntries(entries)
	if err != nil {
		return CycleAnalysis{}, err
	}
	return analyzeCycle(detectTruePeriods(vectors), now), nil
}

func analyzeCycle(history []CycleEvent, now time.Time) CycleAnalysis {
	if len(history) == 0 {
		return CycleAnalysis{
			CycleHistory: []CycleEvent{},
			IsUntracked:  true,
		}
	}

	lastTruePeriod := history[len(history)-1]
	lastStart, _ := ParseEntryDate(lastTruePeriod.StartDate)

	currentDay := daysBetween(lastStart, calendarDay(now))
	if currentDay < 0 {
		currentDay = 0
	}

	return CycleAnalysis{
		CurrentDay:     currentDay,
		IsLongCycle:    currentDay > LongCycleThresholdDays,
		Variability:    populationStdDev(intsToFloats(recentCycleLengths(history))),
		LastTruePeriod: &lastTruePeriod,
		CycleHistory:   history,
	}
}

// recentCycleLengths returns the known gaps of the last RecentCycleEventCount events.
func recentCycleLengths(history []CycleEvent) []int {
	recent := history
	if len(recent) > RecentCycleEventCount {
		recent = recent[len(recent)-RecentCycleEventCount:]
	}

	lengths := make([]int, 0, len(recent))
	for _, event := range recent {
		if event.DaysFromPrevious != nil {
			lengths = append(lengths, *event.DaysFromPrevious)
		}
	}
	return lengths
}

func calendarDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intsToFloats(values []int) []float64 {
	converted := make([]float64, 0, len(values))
	for _, value := range values {
		converted = append(converted, float64(value))
	}
	return converted
}
