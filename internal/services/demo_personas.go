package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

var ErrUnknownPersona = errors.New("unknown demo persona")

type DemoPersona struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	ExpectedCurrentDay int    `json:"expectedCurrentDay"`
}

type personaBuilder struct {
	persona DemoPersona
	build   func(day func(daysAgo int) string) []EntryInput
}

var demoPersonas = map[string]personaBuilder{
	"sarah": {
		persona: DemoPersona{
			Name:               "sarah",
			Description:        "The spotter: a lone light day five days ago must not restart the cycle.",
			ExpectedCurrentDay: 32,
		},
		build: sarahEntries,
	},
	"alex": {
		persona: DemoPersona{
			Name:               "alex",
			Description:        "The long cycle: sixty flow-free days of steady lifestyle tracking.",
			ExpectedCurrentDay: 65,
		},
		build: alexEntries,
	},
}

// DemoPersonaNames lists the personas accepted by BuildDemoEntries.
func DemoPersonaNames() []string {
	names := make([]string, 0, len(demoPersonas))
	for name := range demoPersonas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildDemoEntries returns a deterministic demo journal dated relative to today.
func BuildDemoEntries(name string, today time.Time) ([]EntryInput, DemoPersona, error) {
	builder, ok := demoPersonas[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, DemoPersona{}, ErrUnknownPersona
	}

	anchor := calendarDay(today)
	day := func(daysAgo int) string {
		return anchor.AddDate(0, 0, -daysAgo).Format(entryDateLayout)
	}
	return builder.build(day), builder.persona, nil
}

func demoEntry(date string, phase string, flow string) EntryInput {
	return EntryInput{Date: date, CyclePhase: phase, Flow: flow}
}

func sarahEntries(day func(int) string) []EntryInput {
	entries := make([]EntryInput, 0, 16)

	first := demoEntry(day(78), models.PhaseMenstrual, models.FlowHeavy)
	first.Symptoms = SymptomsInput{Cramps: 6, Bloat: 5}
	first.Psych = PsychInput{Mood: models.IntPtr(4), Stress: models.StressMedium}
	first.Lifestyle = LifestyleInput{Sleep: models.SleepUnder6, WaterIntake: 4, Exercise: models.ExerciseRest, Diet: models.DietCravings}

	second := demoEntry(day(77), models.PhaseMenstrual, models.FlowMedium)
	second.Symptoms = SymptomsInput{Cramps: 4, Bloat: 4}
	second.Psych = PsychInput{Mood: models.IntPtr(5), Stress: models.StressMedium}
	second.Lifestyle = LifestyleInput{Sleep: models.Sleep6To7, WaterIntake: 5, Exercise: models.ExerciseLight, Diet: models.DietRestrictive}

	third := demoEntry(day(76), models.PhaseMenstrual, models.FlowLight)
	third.Symptoms = SymptomsInput{Cramps: 2, Bloat: 2}
	third.Psych = PsychInput{Mood: models.IntPtr(6), Stress: models.StressLow}
	third.Lifestyle = LifestyleInput{Sleep: models.Sleep7To8, WaterIntake: 6, Exercise: models.ExerciseLight, Diet: models.DietBalanced}

	entries = append(entries, first, second, third, demoEntry(day(75), models.PhaseFollicular, models.FlowNone))

	fourth := demoEntry(day(32), models.PhaseMenstrual, models.FlowMedium)
	fourth.Symptoms = SymptomsInput{Cramps: 5, Bloat: 4, Acne: 3}
	fourth.Psych = PsychInput{Mood: models.IntPtr(5), Stress: models.StressMedium}
	fourth.Lifestyle = LifestyleInput{Sleep: models.Sleep6To7, WaterIntake: 5, Exercise: models.ExerciseRest, Diet: models.DietRestrictive}

	fifth := demoEntry(day(31), models.PhaseMenstrual, models.FlowHeavy)
	fifth.Symptoms = SymptomsInput{Cramps: 7, Bloat: 6, Acne: 4}
	fifth.Psych = PsychInput{Mood: models.IntPtr(4), Stress: models.StressHigh}
	fifth.Lifestyle = LifestyleInput{Sleep: models.SleepUnder6, WaterIntake: 4, Exercise: models.ExerciseRest, Diet: models.DietCravings}

	sixth := demoEntry(day(30), models.PhaseMenstrual, models.FlowLight)
	sixth.Symptoms = SymptomsInput{Cramps: 3, Bloat: 2}
	sixth.Psych = PsychInput{Mood: models.IntPtr(6), Stress: models.StressMedium}
	sixth.Lifestyle = LifestyleInput{Sleep: models.Sleep6To7, WaterIntake: 6, Exercise: models.ExerciseLight, Diet: models.DietRestrictive}

	entries = append(entries, fourth, fifth, sixth, demoEntry(day(29), models.PhaseFollicular, models.FlowNone))

	for daysAgo := 25; daysAgo >= 6; daysAgo-- {
		if daysAgo%3 != 0 {
			continue
		}
		entry := demoEntry(day(daysAgo), models.PhaseFollicular, models.FlowNone)
		entry.Symptoms = SymptomsInput{Acne: 1 + daysAgo%3}
		entry.Psych = PsychInput{Mood: models.IntPtr(6 + daysAgo%3), Stress: models.StressLow}
		entry.Lifestyle = LifestyleInput{Sleep: models.Sleep7To8, WaterIntake: 6 + daysAgo%3, Exercise: models.ExerciseModerate, Diet: models.DietBalanced}
		entries = append(entries, entry)
	}

	spotting := demoEntry(day(5), models.PhaseUnknown, models.FlowLight)
	spotting.Symptoms = SymptomsInput{Bloat: 2}
	spotting.Psych = PsychInput{Mood: models.IntPtr(7), Stress: models.StressLow}
	spotting.Lifestyle = LifestyleInput{Sleep: models.Sleep7To8, WaterIntake: 7, Exercise: models.ExerciseModerate, Diet: models.DietBalanced}

	return append(entries, spotting, demoEntry(day(4), models.PhaseUnknown, models.FlowNone))
}

func alexEntries(day func(int) string) []EntryInput {
	entries := make([]EntryInput, 0, 63)

	first := demoEntry(day(65), models.PhaseMenstrual, models.FlowHeavy)
	first.Symptoms = SymptomsInput{Cramps: 6, Bloat: 5, Acne: 4}
	first.Psych = PsychInput{Mood: models.IntPtr(5), Stress: models.StressMedium, Anxiety: models.AnxietyHigh}
	first.Lifestyle = LifestyleInput{Sleep: models.Sleep6To7, WaterIntake: 5, Exercise: models.ExerciseRest, Diet: models.DietRestrictive}

	second := demoEntry(day(64), models.PhaseMenstrual, models.FlowMedium)
	second.Symptoms = SymptomsInput{Cramps: 5, Bloat: 4, Acne: 3}
	second.Psych = PsychInput{Mood: models.IntPtr(5), Stress: models.StressMedium, Anxiety: models.AnxietyHigh}
	second.Lifestyle = LifestyleInput{Sleep: models.Sleep6To7, WaterIntake: 6, Exercise: models.ExerciseLight, Diet: models.DietRestrictive}

	third := demoEntry(day(63), models.PhaseMenstrual, models.FlowLight)
	third.Symptoms = SymptomsInput{Cramps: 2, Bloat: 2}
	third.Psych = PsychInput{Mood: models.IntPtr(6), Stress: models.StressLow, Anxiety: models.AnxietyLow}
	third.Lifestyle = LifestyleInput{Sleep: models.Sleep7To8, WaterIntake: 7, Exercise: models.ExerciseLight, Diet: models.DietBalanced}

	entries = append(entries, first, second, third)

	for daysAgo := 60; daysAgo >= 1; daysAgo-- {
		phase := models.PhaseLuteal
		switch {
		case daysAgo > 45:
			phase = models.PhaseFollicular
		case daysAgo > 30:
			phase = models.PhaseOvulatory
		}

		sleep := models.Sleep7To8
		if daysAgo%7 == 0 {
			sleep = models.Sleep6To7
		}
		exercise := models.ExerciseIntense
		switch {
		case daysAgo%5 == 0:
			exercise = models.ExerciseLight
		case daysAgo%3 == 0:
			exercise = models.ExerciseModerate
		}
		diet := models.DietBalanced
		if daysAgo%10 == 0 {
			diet = models.DietRestrictive
		}

		symptoms := SymptomsInput{Acne: 2 + daysAgo%3, Bloat: 2 + daysAgo%3}
		if daysAgo > 40 {
			symptoms = SymptomsInput{Acne: 1 + daysAgo%2, Bloat: daysAgo % 2}
		}

		entry := demoEntry(day(daysAgo), phase, models.FlowNone)
		entry.Symptoms = symptoms
		entry.Psych = PsychInput{Mood: models.IntPtr(7 + daysAgo%2), Stress: models.StressLow, Anxiety: models.AnxietyLow, BodyImage: models.BodyImagePositive}
		entry.Lifestyle = LifestyleInput{Sleep: sleep, WaterIntake: 7 + daysAgo%2, Exercise: exercise, Diet: diet}
		entries = append(entries, entry)
	}
	return entries
}
