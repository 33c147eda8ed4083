package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/blossom/internal/models"
)

func TestBuildDemoEntriesMatchesExpectedCycleDay(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.April, 20, 15, 0, 0, 0, time.UTC)
	for _, name := range DemoPersonaNames() {
		t.Run(name, func(t *testing.T) {
			inputs, persona, err := BuildDemoEntries(name, today)
			if err != nil {
				t.Fatalf("BuildDemoEntries(%q) unexpected error: %v", name, err)
			}

			entries := make([]models.LogEntry, 0, len(inputs))
			for _, input := range inputs {
				entry, err := NormalizeEntryInput(input)
				if err != nil {
					t.Fatalf("demo entry %s is invalid: %v", input.Date, err)
				}
				entries = append(entries, entry)
			}

			analysis, err := AnalyzeCycle(entries, today)
			if err != nil {
				t.Fatalf("AnalyzeCycle() unexpected error: %v", err)
			}
			if analysis.CurrentDay != persona.ExpectedCurrentDay {
				t.Fatalf("expected current day %d, got %d", persona.ExpectedCurrentDay, analysis.CurrentDay)
			}
		})
	}
}

func TestBuildDemoEntriesIsDeterministic(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)
	first, _, err := BuildDemoEntries("Alex", today)
	if err != nil {
		t.Fatalf("BuildDemoEntries() unexpected error: %v", err)
	}
	second, _, err := BuildDemoEntries(" alex ", today)
	if err != nil {
		t.Fatalf("BuildDemoEntries() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical demo journals for the same day")
	}
}

func TestBuildDemoEntriesRejectsUnknownPersona(t *testing.T) {
	t.Parallel()

	if _, _, err := BuildDemoEntries("jordan", time.Now()); !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("expected ErrUnknownPersona, got %v", err)
	}
}
