package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/blossom/internal/models"
)

var ErrInvalidEntry = errors.New("invalid log entry")

// EntryInput is the wire shape accepted by the API and the import command.
type EntryInput struct {
	Date         string         `json:"date" validate:"required,datetime=2006-01-02"`
	CyclePhase   string         `json:"cyclePhase" validate:"omitempty,oneof=menstrual follicular ovulatory luteal unknown"`
	Flow         string         `json:"flow" validate:"omitempty,oneof=none spotting light medium heavy"`
	Symptoms     SymptomsInput  `json:"symptoms"`
	Psych        PsychInput     `json:"psych"`
	Lifestyle    LifestyleInput `json:"lifestyle"`
	CustomValues map[string]int `json:"customValues" validate:"omitempty,max=3,dive,keys,min=1,max=20,endkeys,min=0,max=10"`
}

type SymptomsInput struct {
	Acne      int `json:"acne" validate:"min=0,max=10"`
	Hirsutism int `json:"hirsutism" validate:"min=0,max=10"`
	HairLoss  int `json:"hairLoss" validate:"min=0,max=10"`
	Bloat     int `json:"bloat" validate:"min=0,max=10"`
	Cramps    int `json:"cramps" validate:"min=0,max=10"`
}

type PsychInput struct {
	Stress    string `json:"stress" validate:"omitempty,oneof=low medium high"`
	BodyImage string `json:"bodyImage" validate:"omitempty,oneof=positive neutral negative"`
	Mood      *int   `json:"mood" validate:"omitempty,min=0,max=10"`
	Anxiety   string `json:"anxiety" validate:"omitempty,oneof=none low high"`
}

type LifestyleInput struct {
	Sleep       string `json:"sleep" validate:"omitempty,oneof=<6h 6-7h 7-8h >8h"`
	WaterIntake int    `json:"waterIntake" validate:"min=0,max=40"`
	Exercise    string `json:"exercise" validate:"omitempty,oneof=rest light moderate intense"`
	Diet        string `json:"diet" validate:"omitempty,oneof=balanced cravings restrictive"`
}

var entryValidator = validator.New(validator.WithRequiredStructEnabled())

// NormalizeEntryInput trims free text, validates every field and converts the
// input into a storable LogEntry. Validation failures wrap ErrInvalidEntry.
func NormalizeEntryInput(input EntryInput) (models.LogEntry, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.CyclePhase = strings.ToLower(strings.TrimSpace(input.CyclePhase))
	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))

	var customValues map[string]int
	if len(input.CustomValues) > 0 {
		customValues = make(map[string]int, len(input.CustomValues))
		for tag, value := range input.CustomValues {
			trimmed := strings.TrimSpace(tag)
			if _, duplicate := customValues[trimmed]; duplicate {
				return models.LogEntry{}, fmt.Errorf("%w: duplicate custom value %q", ErrInvalidEntry, trimmed)
			}
			customValues[trimmed] = value
		}
	}
	input.CustomValues = customValues

	if err := entryValidator.Struct(input); err != nil {
		return models.LogEntry{}, fmt.Errorf("%w: %s", ErrInvalidEntry, describeValidationError(err))
	}

	cyclePhase := input.CyclePhase
	if cyclePhase == "" {
		cyclePhase = models.PhaseUnknown
	}
	flow := input.Flow
	if flow == "" {
		flow = models.FlowNone
	}

	return models.LogEntry{
		Date:       input.Date,
		CyclePhase: cyclePhase,
		Flow:       flow,
		Symptoms: models.Symptoms{
			Acne:      input.Symptoms.Acne,
			Hirsutism: input.Symptoms.Hirsutism,
			HairLoss:  input.Symptoms.HairLoss,
			Bloat:     input.Symptoms.Bloat,
			Cramps:    input.Symptoms.Cramps,
		},
		Psych: models.Psych{
			Stress:    input.Psych.Stress,
			BodyImage: input.Psych.BodyImage,
			Mood:      input.Psych.Mood,
			Anxiety:   input.Psych.Anxiety,
		},
		Lifestyle: models.Lifestyle{
			Sleep:       input.Lifestyle.Sleep,
			WaterIntake: input.Lifestyle.WaterIntake,
			Exercise:    input.Lifestyle.Exercise,
			Diet:        input.Lifestyle.Diet,
		},
		CustomValues: customValues,
	}, nil
}

func describeValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	first := validationErrors[0]
	field := strings.TrimPrefix(first.Namespace(), "EntryInput.")
	if first.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", field, first.Tag(), first.Param())
	}
	return fmt.Sprintf("%s failed %s", field, first.Tag())
}
