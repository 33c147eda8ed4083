package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

const neutralMood = 50

var sleepHoursByBucket = map[string]float64{
	models.SleepUnder6: 5,
	models.Sleep6To7:   6.5,
	models.Sleep7To8:   7.5,
	models.SleepOver8:  8.5,
}

var exerciseLevelByIntensity = map[string]float64{
	models.ExerciseRest:     1,
	models.ExerciseLight:    3,
	models.ExerciseModerate: 6,
	models.ExerciseIntense:  9,
}

var anxietyScoreByLevel = map[string]float64{
	models.AnxietyNone: 0,
	models.AnxietyLow:  3,
	models.AnxietyHigh: 8,
}

const defaultAnxietyScore = 5

// EntryDateError reports a log entry whose date cannot be parsed.
type EntryDateError struct {
	Index int
	Date  string
	Err   error
}

func (err *EntryDateError) Error() string {
	return fmt.Sprintf("log entry %d has invalid date %q: %v", err.Index, err.Date, err.Err)
}

func (err *EntryDateError) Unwrap() error {
	return err.Err
}

// dayVector is a LogEntry with every optional field resolved to a number.
type dayVector struct {
	Day  time.Time
	Date string
	Flow string

	SymptomScore  float64
	SymptomBurden float64

	SleepHours    float64
	SleepKnown    bool
	ExerciseLevel float64
	ExerciseKnown bool
	Moving        bool
	Diet          string
	Stress        string

	Anxiety float64
	Mood    float64
	Energy  float64
}

// ParseEntryDate parses a YYYY-MM-DD journal date as UTC midnight.
func ParseEntryDate(raw string) (time.Time, error) {
	return time.ParseInLocation(entryDateLayout, raw, time.UTC)
}

func normalizeEntries(entries []models.LogEntry) ([]dayVector, error) {
	vectors := make([]dayVector, 0, len(entries))
	for index, entry := range entries {
		day, err := ParseEntryDate(entry.Date)
		if err != nil {
			return nil, &EntryDateError{Index: index, Date: entry.Date, Err: err}
		}
		vectors = append(vectors, normalizeEntry(entry, day))
	}

	sort.SliceStable(vectors, func(i, j int) bool {
		return vectors[i].Day.Before(vectors[j].Day)
	})
	return vectors, nil
}

func normalizeEntry(entry models.LogEntry, day time.Time) dayVector {
	flow := entry.Flow
	if !entry.HasFlow() {
		flow = models.FlowNone
	}

	sleepHours, sleepKnown := sleepHoursByBucket[entry.Lifestyle.Sleep]
	exerciseLevel, exerciseKnown := exerciseLevelByIntensity[entry.Lifestyle.Exercise]

	anxiety, ok := anxietyScoreByLevel[entry.Psych.Anxiety]
	if !ok {
		anxiety = defaultAnxietyScore
	}

	mood := float64(neutralMood)
	if entry.Psych.Mood != nil {
		mood = float64(*entry.Psych.Mood) * 10
	}

	energy := math.Min(10, sleepHours)
	if value, ok := entry.CustomValues[models.EnergyTag]; ok {
		energy = float64(value)
	}

	symptoms := entry.Symptoms
	return dayVector{
		Day:  day,
		Date: entry.Date,
		Flow: flow,

		SymptomScore:  averageFloats([]float64{float64(symptoms.Acne), float64(symptoms.Hirsutism), float64(symptoms.HairLoss), float64(symptoms.Bloat), float64(symptoms.Cramps)}),
		SymptomBurden: averageFloats([]float64{float64(symptoms.Acne), float64(symptoms.Bloat), float64(symptoms.Cramps)}),

		SleepHours:    sleepHours,
		SleepKnown:    sleepKnown,
		ExerciseLevel: exerciseLevel,
		ExerciseKnown: exerciseKnown,
		Moving:        exerciseKnown && entry.Lifestyle.Exercise != models.ExerciseRest,
		Diet:          entry.Lifestyle.Diet,
		Stress:        entry.Psych.Stress,

		Anxiety: anxiety,
		Mood:    mood,
		Energy:  energy,
	}
}

func averageFloats(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := averageFloats(values)
	var squared float64
	for _, value := range values {
		squared += (value - mean) * (value - mean)
	}
	return math.Sqrt(squared / float64(len(values)))
}

func daysBetween(from time.Time, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

func clampFloat(value float64, low float64, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}
