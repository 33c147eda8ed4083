package models

import "time"

const (
	FlowNone     = "none"
	FlowSpotting = "spotting"
	FlowLight    = "light"
	FlowMedium   = "medium"
	FlowHeavy    = "heavy"
)

const (
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseOvulatory  = "ovulatory"
	PhaseLuteal     = "luteal"
	PhaseUnknown    = "unknown"
)

const (
	StressLow    = "low"
	StressMedium = "medium"
	StressHigh   = "high"
)

const (
	BodyImagePositive = "positive"
	BodyImageNeutral  = "neutral"
	BodyImageNegative = "negative"
)

const (
	AnxietyNone = "none"
	AnxietyLow  = "low"
	AnxietyHigh = "high"
)

const (
	SleepUnder6 = "<6h"
	Sleep6To7   = "6-7h"
	Sleep7To8   = "7-8h"
	SleepOver8  = ">8h"
)

const (
	ExerciseRest     = "rest"
	ExerciseLight    = "light"
	ExerciseModerate = "moderate"
	ExerciseIntense  = "intense"
)

const (
	DietBalanced    = "balanced"
	DietCravings    = "cravings"
	DietRestrictive = "restrictive"
)

// MaxCustomValues caps the free-text tags a single entry can carry.
const MaxCustomValues = 3

// EnergyTag is the custom value tag read as a self-reported energy level.
const EnergyTag = "energy"

// Symptoms holds physical symptom severities on a 0-10 scale. Zero means not present.
type Symptoms struct {
	Acne      int `json:"acne"`
	Hirsutism int `json:"hirsutism"`
	HairLoss  int `json:"hairLoss"`
	Bloat     int `json:"bloat"`
	Cramps    int `json:"cramps"`
}

type Psych struct {
	Stress    string `json:"stress,omitempty"`
	BodyImage string `json:"bodyImage,omitempty"`
	// Mood is recorded on a 0-10 scale; nil when the day had no mood entry.
	Mood    *int   `json:"mood,omitempty"`
	Anxiety string `json:"anxiety,omitempty"`
}

type Lifestyle struct {
	Sleep       string `json:"sleep,omitempty"`
	WaterIntake int    `json:"waterIntake"`
	Exercise    string `json:"exercise,omitempty"`
	Diet        string `json:"diet,omitempty"`
}

// LogEntry is one calendar day of the journal. Date (YYYY-MM-DD) is its identity.
type LogEntry struct {
	ID           uint           `gorm:"primaryKey" json:"-"`
	Date         string         `gorm:"type:text;not null;uniqueIndex:uidx_log_entries_date" json:"date"`
	CyclePhase   string         `gorm:"not null;default:unknown" json:"cyclePhase"`
	Flow         string         `gorm:"not null;default:none" json:"flow"`
	Symptoms     Symptoms       `gorm:"serializer:json" json:"symptoms"`
	Psych        Psych          `gorm:"serializer:json" json:"psych"`
	Lifestyle    Lifestyle      `gorm:"serializer:json" json:"lifestyle"`
	CustomValues map[string]int `gorm:"serializer:json" json:"customValues,omitempty"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}

// HasFlow reports whether the entry records any bleeding, spotting included.
func (entry LogEntry) HasFlow() bool {
	return entry.Flow != "" && entry.Flow != FlowNone
}

// IntPtr is a small helper for optional integer fields such as Psych.Mood.
func IntPtr(value int) *int {
	return &value
}
