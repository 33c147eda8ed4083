package db

import (
	"testing"

	"github.com/terraincognita07/blossom/internal/models"
)

func TestLogEntryRepositoryUpsertReplacesDay(t *testing.T) {
	repo := NewRepositories(openTestDatabase(t)).LogEntries

	first := models.LogEntry{
		Date:       "2026-03-04",
		CyclePhase: models.PhaseMenstrual,
		Flow:       models.FlowMedium,
		Symptoms:   models.Symptoms{Cramps: 4},
		Psych:      models.Psych{Mood: models.IntPtr(5)},
		CustomValues: map[string]int{
			models.EnergyTag: 3,
		},
	}
	if err := repo.Upsert(&first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := models.LogEntry{
		Date:       "2026-03-04",
		CyclePhase: models.PhaseMenstrual,
		Flow:       models.FlowHeavy,
		Symptoms:   models.Symptoms{Cramps: 7, Bloat: 2},
		Lifestyle:  models.Lifestyle{Sleep: models.Sleep6To7, WaterIntake: 5},
	}
	if err := repo.Upsert(&second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per date, got %d", count)
	}

	stored, found, err := repo.FindByDate("2026-03-04")
	if err != nil || !found {
		t.Fatalf("find by date: found=%v err=%v", found, err)
	}
	if stored.Flow != models.FlowHeavy || stored.Symptoms.Cramps != 7 || stored.Symptoms.Bloat != 2 {
		t.Fatalf("expected second write to win, got %#v", stored)
	}
	if stored.Psych.Mood != nil {
		t.Fatalf("expected mood cleared by replacement, got %d", *stored.Psych.Mood)
	}
	if len(stored.CustomValues) != 0 {
		t.Fatalf("expected custom values cleared, got %#v", stored.CustomValues)
	}
	if stored.Lifestyle.Sleep != models.Sleep6To7 || stored.Lifestyle.WaterIntake != 5 {
		t.Fatalf("unexpected lifestyle %#v", stored.Lifestyle)
	}
}

func TestLogEntryRepositoryListRangeIsInclusive(t *testing.T) {
	repo := NewLogEntryRepository(openTestDatabase(t))

	for _, date := range []string{"2026-03-09", "2026-02-28", "2026-03-01", "2026-03-10", "2026-03-05"} {
		entry := models.LogEntry{Date: date, Flow: models.FlowNone, CyclePhase: models.PhaseUnknown}
		if err := repo.Upsert(&entry); err != nil {
			t.Fatalf("upsert %s: %v", date, err)
		}
	}

	tests := []struct {
		name string
		from string
		to   string
		want []string
	}{
		{name: "closed", from: "2026-03-01", to: "2026-03-09", want: []string{"2026-03-01", "2026-03-05", "2026-03-09"}},
		{name: "open start", to: "2026-03-01", want: []string{"2026-02-28", "2026-03-01"}},
		{name: "open end", from: "2026-03-09", want: []string{"2026-03-09", "2026-03-10"}},
		{name: "empty", from: "2026-04-01", to: "2026-04-30", want: []string{}},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			entries, err := repo.ListRange(testCase.from, testCase.to)
			if err != nil {
				t.Fatalf("ListRange() unexpected error: %v", err)
			}
			got := make([]string, 0, len(entries))
			for _, entry := range entries {
				got = append(got, entry.Date)
			}
			if len(got) != len(testCase.want) {
				t.Fatalf("ListRange(%q, %q) = %v, want %v", testCase.from, testCase.to, got, testCase.want)
			}
			for index := range got {
				if got[index] != testCase.want[index] {
					t.Fatalf("ListRange(%q, %q) = %v, want %v", testCase.from, testCase.to, got, testCase.want)
				}
			}
		})
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() unexpected error: %v", err)
	}
	if len(all) != 5 || all[0].Date != "2026-02-28" || all[4].Date != "2026-03-10" {
		t.Fatalf("expected all entries in date order, got %#v", all)
	}
}

func TestLogEntryRepositoryDelete(t *testing.T) {
	repo := NewLogEntryRepository(openTestDatabase(t))

	for _, date := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		entry := models.LogEntry{Date: date, Flow: models.FlowNone, CyclePhase: models.PhaseUnknown}
		if err := repo.Upsert(&entry); err != nil {
			t.Fatalf("upsert %s: %v", date, err)
		}
	}

	deleted, err := repo.DeleteByDate("2026-03-02")
	if err != nil || !deleted {
		t.Fatalf("DeleteByDate() = %v, %v", deleted, err)
	}
	deleted, err = repo.DeleteByDate("2026-03-02")
	if err != nil || deleted {
		t.Fatalf("second DeleteByDate() = %v, %v", deleted, err)
	}
	if _, found, err := repo.FindByDate("2026-03-02"); err != nil || found {
		t.Fatalf("expected deleted day to be gone, found=%v err=%v", found, err)
	}

	removed, err := repo.DeleteAll()
	if err != nil {
		t.Fatalf("DeleteAll() unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 rows removed, got %d", removed)
	}
	if count, err := repo.Count(); err != nil || count != 0 {
		t.Fatalf("expected empty journal, got %d (%v)", count, err)
	}
}
