package services

// Cycle classification thresholds.
const (
	LongCycleThresholdDays   = 35
	IrregularVariabilityDays = 7
	MinimumCycleLengthDays   = 15
	DefaultCycleLength       = 28
	RecentCycleEventCount    = 3
)

// Phase boundaries by cycle day. Day 0 is the first day of the last true period.
const (
	MenstrualPhaseLastDay  = 5
	FollicularPhaseLastDay = 13
	OvulationDay           = 14
	LutealPhaseLastDay     = 21
)

// Wellness scorer window and weights.
const (
	WellnessWindowDays      = 14
	WellnessMinimumEntries  = 7
	WellnessNeutralScore    = 50
	wellnessSymptomWeight   = 0.4
	wellnessSelfCareWeight  = 0.3
	wellnessEmotionalWeight = 0.3
	goodSleepHours          = 7
	symptomTrendDetailDelta = 10
)

// Insight engine window and thresholds.
const (
	InsightWindowDays        = 30
	InsightMinimumEntries    = 5
	CohortMinimumSize        = 3
	correlationThreshold     = 15
	dietCorrelationThreshold = 10
	poorSleepHours           = 6
	activeExerciseLevel      = 3
)

const entryDateLayout = "2006-01-02"
