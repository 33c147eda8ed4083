package services

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/terraincognita07/blossom/internal/models"
)

type InsightCategory string

const (
	InsightCategorySleep     InsightCategory = "sleep"
	InsightCategoryMovement  InsightCategory = "movement"
	InsightCategoryDiet      InsightCategory = "diet"
	InsightCategoryStress    InsightCategory = "stress"
	InsightCategoryEducation InsightCategory = "education"
)

type InsightConfidence string

const (
	ConfidenceHigh   InsightConfidence = "high"
	ConfidenceMedium InsightConfidence = "medium"
	ConfidenceLow    InsightConfidence = "low"
)

type Insight struct {
	Story      string            `json:"story"`
	Category   InsightCategory   `json:"category"`
	Confidence InsightConfidence `json:"confidence"`
}

// TipPicker returns an index in [0, n) into the educational tips list.
type TipPicker func(n int) int

type InsightOptions struct {
	PickTip TipPicker
}

const keepLoggingStory = "Keep logging daily to discover personalized insights about your body's patterns."

var EducationalTips = []string{
	"Did you know? Consistent sleep helps regulate insulin levels.",
	"Research shows that regular movement can improve insulin sensitivity by up to 25%.",
	"Balanced meals with low-GI foods help stabilize blood sugar throughout the day.",
	"Chronic stress can worsen PCOS symptoms by increasing cortisol levels.",
	"Staying hydrated supports metabolic function and reduces inflammation.",
	"Strength training builds muscle, which naturally improves insulin resistance.",
	"Mindful eating practices can help reduce inflammation and support hormone balance.",
	"Quality sleep (7-9 hours) is essential for reproductive hormone regulation.",
	"Anti-inflammatory foods like leafy greens and berries support ovarian health.",
	"Regular physical activity helps reduce androgen levels naturally.",
}

// correlationFactor compares an outcome between a "good" cohort and a
// reference cohort expected to fare worse. Improvement is measured relative to
// the reference mean, in the direction given by lowerIsBetter.
type correlationFactor struct {
	category      InsightCategory
	threshold     float64
	good          func(dayVector) bool
	reference     func(dayVector) bool
	outcome       func(dayVector) float64
	lowerIsBetter bool
	improved      string
	reversed      string
}

var correlationFactors = []correlationFactor{
	{
		category:      InsightCategorySleep,
		threshold:     correlationThreshold,
		good:          func(v dayVector) bool { return v.SleepKnown && v.SleepHours >= goodSleepHours },
		reference:     func(v dayVector) bool { return v.SleepKnown && v.SleepHours < poorSleepHours },
		outcome:       func(v dayVector) float64 { return v.Anxiety },
		lowerIsBetter: true,
		improved:      "On nights you sleep 7h+, your anxiety is %d%% lower. Rest is your medicine.",
		reversed:      "Interestingly, your anxiety runs %d%% higher after 7h+ nights, so sleep may not be the main driver. Let's explore other factors.",
	},
	{
		category:  InsightCategoryMovement,
		threshold: correlationThreshold,
		good:      func(v dayVector) bool { return v.ExerciseKnown && v.ExerciseLevel >= activeExerciseLevel },
		reference: func(v dayVector) bool { return v.ExerciseKnown && v.ExerciseLevel < activeExerciseLevel },
		outcome:   func(v dayVector) float64 { return v.Energy },
		improved:  "Movement fuels you. You reported %d%% more energy on active days.",
		reversed:  "Your body is telling you it needs more rest. Energy levels are %d%% higher on lighter activity days.",
	},
	{
		category:  InsightCategoryDiet,
		threshold: dietCorrelationThreshold,
		good:      func(v dayVector) bool { return v.Diet == models.DietBalanced },
		reference: func(v dayVector) bool { return v.Diet == models.DietCravings },
		outcome:   func(v dayVector) float64 { return v.Mood },
		improved:  "Balanced nutrition stabilizes your mood. You feel %d%% better on those days.",
		reversed:  "Your mood runs %d%% lower on balanced-eating days than on craving days. Other factors may be at play.",
	},
	{
		category:  InsightCategoryStress,
		threshold: correlationThreshold,
		good:      func(v dayVector) bool { return v.Stress == models.StressLow },
		reference: func(v dayVector) bool {
			return v.Stress == models.StressMedium || v.Stress == models.StressHigh
		},
		outcome:       func(v dayVector) float64 { return v.SymptomBurden },
		lowerIsBetter: true,
		improved:      "Lower stress days correlate with %d%% fewer physical symptoms. Your mind-body connection is strong.",
		reversed:      "Physical symptoms run %d%% higher on low-stress days, so stress may not be your main trigger.",
	},
}

// GenerateInsights returns correlation stories in factor order, or a single
// placeholder/tip when nothing clears its threshold.
func GenerateInsights(window []models.LogEntry, options InsightOptions) ([]Insight, error) {
	vectors, err := normalizeEntries(window)
	if err != nil {
		return nil, err
	}
	return generateInsights(vectors, options), nil
}

func generateInsights(vectors []dayVector, options InsightOptions) []Insight {
	if len(vectors) < InsightMinimumEntries {
		return []Insight{{
			Story:      keepLoggingStory,
			Category:   InsightCategoryEducation,
			Confidence: ConfidenceLow,
		}}
	}

	insights := make([]Insight, 0, len(correlationFactors))
	for _, factor := range correlationFactors {
		if insight, ok := factor.evaluate(vectors); ok {
			insights = append(insights, insight)
		}
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Story:      EducationalTips[pickTipIndex(options.PickTip, len(EducationalTips))],
			Category:   InsightCategoryEducation,
			Confidence: ConfidenceLow,
		})
	}
	return insights
}

func (factor correlationFactor) evaluate(vectors []dayVector) (Insight, bool) {
	goodCohort := make([]dayVector, 0)
	referenceCohort := make([]dayVector, 0)
	for _, vector := range vectors {
		switch {
		case factor.good(vector):
			goodCohort = append(goodCohort, vector)
		case factor.reference(vector):
			referenceCohort = append(referenceCohort, vector)
		}
	}
	if len(goodCohort) < CohortMinimumSize || len(referenceCohort) < CohortMinimumSize {
		return Insight{}, false
	}

	goodMean := meanOf(goodCohort, factor.outcome)
	referenceMean := meanOf(referenceCohort, factor.outcome)
	if referenceMean == 0 {
		return Insight{}, false
	}

	difference := (goodMean - referenceMean) / referenceMean * 100
	if factor.lowerIsBetter {
		difference = -difference
	}
	if math.IsNaN(difference) || math.IsInf(difference, 0) || math.Abs(difference) <= factor.threshold {
		return Insight{}, false
	}

	template := factor.improved
	if difference < 0 {
		template = factor.reversed
	}
	return Insight{
		Story:      fmt.Sprintf(template, int(math.Round(math.Abs(difference)))),
		Category:   factor.category,
		Confidence: ConfidenceHigh,
	}, true
}

func pickTipIndex(pick TipPicker, count int) int {
	if pick == nil {
		pick = rand.Intn
	}
	index := pick(count) % count
	if index < 0 {
		index += count
	}
	return index
}

// PrimaryStory prefers the first high-confidence insight, then the first of any confidence.
func PrimaryStory(insights []Insight) string {
	for _, insight := range insights {
		if insight.Confidence == ConfidenceHigh {
			return insight.Story
		}
	}
	if len(insights) == 0 {
		return ""
	}
	return insights[0].Story
}

func SelectPrimaryStory(window []models.LogEntry, options InsightOptions) (string, error) {
	insights, err := GenerateInsights(window, options)
	if err != nil {
		return "", err
	}
	return PrimaryStory(insights), nil
}
