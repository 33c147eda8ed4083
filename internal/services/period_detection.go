package services

import (
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

// CycleEvent is one detected true period. DaysFromPrevious is the gap in days
// from the previous event's start and is nil for the first event.
type CycleEvent struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	DaysFromPrevious *int   `json:"daysFromPrevious,omitempty"`
}

// DetectTruePeriods groups flow days into episodes and keeps the ones confirmed
// by an adjacent medium/heavy pair. Spotting-only runs never qualify.
func DetectTruePeriods(entries []models.LogEntry) ([]CycleEvent, error) {
	vectors, err := normalizeEntries(entries)
	if err != nil {
		return nil, err
	}
	return detectTruePeriods(vectors), nil
}

func detectTruePeriods(vectors []dayVector) []CycleEvent {
	events := make([]CycleEvent, 0)
	var previousStart time.Time

	flush := func(episode []dayVector) {
		if !isTruePeriod(episode) {
			return
		}
		start := episode[0]
		event := CycleEvent{
			StartDate: start.Date,
			EndDate:   episode[len(episode)-1].Date,
		}
		if len(events) > 0 {
			gap := daysBetween(previousStart, start.Day)
			event.DaysFromPrevious = &gap
		}
		events = append(events, event)
		previousStart = start.Day
	}

	episode := make([]dayVector, 0)
	for _, vector := range vectors {
		if vector.Flow != models.FlowNone {
			episode = append(episode, vector)
			continue
		}
		if len(episode) > 0 {
			flush(episode)
			episode = make([]dayVector, 0)
		}
	}
	if len(episode) > 0 {
		flush(episode)
	}

	return events
}

func isTruePeriod(episode []dayVector) bool {
	if len(episode) < 2 {
		return false
	}
	for index := 0; index+1 < len(episode); index++ {
		current := episode[index]
		next := episode[index+1]
		if !isSignificantFlow(current.Flow) || !isSignificantFlow(next.Flow) {
			continue
		}
		if daysBetween(current.Day, next.Day) <= 1 {
			return true
		}
	}
	return false
}

func isSignificantFlow(flow string) bool {
	return flow == models.FlowMedium || flow == models.FlowHeavy
}
