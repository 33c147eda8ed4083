package services

import (
	"fmt"
	"math"

	"github.com/terraincognita07/blossom/internal/models"
)

type WellnessDetails struct {
	SymptomImprovement  string `json:"symptomImprovement"`
	SelfCareConsistency string `json:"selfCareConsistency"`
	EmotionalWellbeing  string `json:"emotionalWellbeing"`
}

// WellnessScore is the 0-100 composite plus its rounded components.
type WellnessScore struct {
	Total               int             `json:"total"`
	SymptomImprovement  int             `json:"symptomImprovement"`
	SelfCareConsistency int             `json:"selfCareConsistency"`
	EmotionalWellbeing  int             `json:"emotionalWellbeing"`
	Details             WellnessDetails `json:"details"`
	HasEnoughData       bool            `json:"hasEnoughData"`
}

func neutralWellnessScore() WellnessScore {
	return WellnessScore{
		Total:               WellnessNeutralScore,
		SymptomImprovement:  WellnessNeutralScore,
		SelfCareConsistency: 0,
		EmotionalWellbeing:  WellnessNeutralScore,
		Details: WellnessDetails{
			SymptomImprovement:  "Not enough data yet",
			SelfCareConsistency: "Keep logging to see your consistency",
			EmotionalWellbeing:  "Your emotional journey is just beginning",
		},
	}
}

// ComputeWellnessScore compares the older and newer halves of the window.
// Windows with fewer than WellnessMinimumEntries entries score a neutral 50.
func ComputeWellnessScore(window []models.LogEntry) (WellnessScore, error) {
	vectors, err := normalizeEntries(window)
	if err != nil {
		return WellnessScore{}, err
	}
	return computeWellnessScore(vectors), nil
}

func computeWellnessScore(vectors []dayVector) WellnessScore {
	if len(vectors) < WellnessMinimumEntries {
		return neutralWellnessScore()
	}

	// The older half takes the extra day when the count is odd.
	split := (len(vectors) + 1) / 2
	previousHalf := vectors[:split]
	currentHalf := vectors[split:]

	symptomComponent, symptomDetail := symptomImprovement(previousHalf, currentHalf)
	selfCareComponent, selfCareDetail := selfCareConsistency(currentHalf)
	emotionalComponent, emotionalDetail := emotionalWellbeing(currentHalf)

	total := math.Round(
		symptomComponent*wellnessSymptomWeight +
			selfCareComponent*wellnessSelfCareWeight +
			emotionalComponent*wellnessEmotionalWeight,
	)

	return WellnessScore{
		Total:               int(clampFloat(total, 0, 100)),
		SymptomImprovement:  int(math.Round(symptomComponent)),
		SelfCareConsistency: int(math.Round(selfCareComponent)),
		EmotionalWellbeing:  int(math.Round(emotionalComponent)),
		Details: WellnessDetails{
			SymptomImprovement:  symptomDetail,
			SelfCareConsistency: selfCareDetail,
			EmotionalWellbeing:  emotionalDetail,
		},
		HasEnoughData: true,
	}
}

func symptomImprovement(previousHalf []dayVector, currentHalf []dayVector) (float64, string) {
	previousMean := meanOf(previousHalf, func(vector dayVector) float64 { return vector.SymptomScore })
	currentMean := meanOf(currentHalf, func(vector dayVector) float64 { return vector.SymptomScore })

	if previousMean == 0 {
		if currentMean == 0 {
			return 100, "Baseline established"
		}
		return WellnessNeutralScore, "Baseline established"
	}

	improvement := (previousMean - currentMean) / previousMean * 100
	component := clampFloat(WellnessNeutralScore+improvement, 0, 100)
	switch {
	case improvement > symptomTrendDetailDelta:
		return component, fmt.Sprintf("Your symptoms improved by %d%%", int(math.Round(improvement)))
	case improvement < -symptomTrendDetailDelta:
		return component, fmt.Sprintf("Symptoms increased by %d%%", int(math.Round(-improvement)))
	default:
		return component, "Symptoms remain stable"
	}
}

func selfCareConsistency(currentHalf []dayVector) (float64, string) {
	selfCareDays := 0
	for _, vector := range currentHalf {
		goodSleep := vector.SleepKnown && vector.SleepHours >= goodSleepHours
		if goodSleep || vector.Diet == models.DietBalanced || vector.Moving {
			selfCareDays++
		}
	}
	if len(currentHalf) == 0 {
		return 0, "0 of 0 days with self-care"
	}
	component := float64(selfCareDays) / float64(len(currentHalf)) * 100
	return component, fmt.Sprintf("%d of %d days with self-care", selfCareDays, len(currentHalf))
}

func emotionalWellbeing(currentHalf []dayVector) (float64, string) {
	component := float64(neutralMood)
	if len(currentHalf) > 0 {
		component = meanOf(currentHalf, func(vector dayVector) float64 { return vector.Mood })
	}
	return component, fmt.Sprintf("Average mood: %d/100", int(math.Round(component)))
}

func meanOf(vectors []dayVector, value func(dayVector) float64) float64 {
	if len(vectors) == 0 {
		return 0
	}
	var total float64
	for _, vector := range vectors {
		total += value(vector)
	}
	return total / float64(len(vectors))
}
