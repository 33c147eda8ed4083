package services

import (
	"fmt"
	"math"

	"github.com/terraincognita07/blossom/internal/models"
)

type CycleStatus string

const (
	CycleStatusRegular   CycleStatus = "regular"
	CycleStatusLong      CycleStatus = "long"
	CycleStatusIrregular CycleStatus = "irregular"
	CycleStatusUnknown   CycleStatus = "unknown"
)

// CycleSummary is the presentation-ready classification of a CycleAnalysis.
// When HasEnoughData is false the lengths hold DefaultCycleLength.
type CycleSummary struct {
	CurrentDay         int         `json:"currentDay"`
	LastCycleLength    int         `json:"lastCycleLength"`
	AverageCycleLength int         `json:"averageCycleLength"`
	Variability        float64     `json:"variability"`
	Status             CycleStatus `json:"status"`
	Phase              string      `json:"phase"`
	HasEnoughData      bool        `json:"hasEnoughData"`
}

func SummarizeCycle(analysis CycleAnalysis) CycleSummary {
	summary := CycleSummary{
		CurrentDay:         analysis.CurrentDay,
		LastCycleLength:    DefaultCycleLength,
		AverageCycleLength: DefaultCycleLength,
		Status:             CycleStatusUnknown,
		Phase:              models.PhaseUnknown,
	}
	if analysis.IsUntracked {
		return summary
	}
	summary.Phase = EstimatePhase(analysis.CurrentDay)

	lengths := recentCycleLengths(analysis.CycleHistory)
	if len(lengths) == 0 {
		return summary
	}

	lastLength := lengths[len(lengths)-1]
	if lastLength < MinimumCycleLengthDays {
		return summary
	}

	valid := make([]float64, 0, len(lengths))
	for _, length := range lengths {
		if length >= MinimumCycleLengthDays {
			valid = append(valid, float64(length))
		}
	}

	summary.LastCycleLength = lastLength
	summary.AverageCycleLength = int(math.Round(averageFloats(valid)))
	summary.Variability = populationStdDev(valid)
	summary.Status = ClassifyCycle(lastLength, summary.Variability)
	summary.HasEnoughData = true
	return summary
}

// ClassifyCycle applies the long/irregular/regular rules to a known cycle length.
func ClassifyCycle(lastCycleLength int, variability float64) CycleStatus {
	switch {
	case lastCycleLength < MinimumCycleLengthDays:
		return CycleStatusUnknown
	case lastCycleLength > LongCycleThresholdDays:
		return CycleStatusLong
	case variability > IrregularVariabilityDays:
		return CycleStatusIrregular
	default:
		return CycleStatusRegular
	}
}

func EstimatePhase(cycleDay int) string {
	switch {
	case cycleDay < 0:
		return models.PhaseUnknown
	case cycleDay <= MenstrualPhaseLastDay:
		return models.PhaseMenstrual
	case cycleDay <= FollicularPhaseLastDay:
		return models.PhaseFollicular
	case cycleDay == OvulationDay:
		return models.PhaseOvulatory
	default:
		return models.PhaseLuteal
	}
}

var phaseGuidance = map[string]string{
	models.PhaseMenstrual:  "Hormones are at baseline. Your body is resetting.",
	models.PhaseFollicular: "Estrogen is rising. You may feel a boost in energy and focus.",
	models.PhaseOvulatory:  "Peak energy. A great time for important conversations.",
	models.PhaseLuteal:     "Progesterone is dominant. Prioritize rest and gentle movement.",
}

// PhaseGuidance returns the short note shown next to a phase, or "" for unknown.
func PhaseGuidance(phase string) string {
	return phaseGuidance[phase]
}

// CycleInsight turns an analysis into the one-line cycle headline.
func CycleInsight(analysis CycleAnalysis) string {
	day := analysis.CurrentDay
	switch {
	case analysis.IsUntracked:
		return "Start tracking your cycle to see insights"
	case analysis.IsLongCycle:
		return fmt.Sprintf("Day %d - Long cycle detected. Consider metabolic support.", day)
	case analysis.Variability > IrregularVariabilityDays:
		return fmt.Sprintf("Day %d - High variability (%d days). Focus on cycle regulation.", day, int(math.Round(analysis.Variability)))
	case day <= MenstrualPhaseLastDay:
		return fmt.Sprintf("Day %d - Menstrual phase. Rest and replenish.", day)
	case day <= OvulationDay:
		return fmt.Sprintf("Day %d - Follicular phase. Energy building.", day)
	case day <= LutealPhaseLastDay:
		return fmt.Sprintf("Day %d - Luteal phase. Nurture and balance.", day)
	default:
		return fmt.Sprintf("Day %d - Listen to your body's rhythm.", day)
	}
}
