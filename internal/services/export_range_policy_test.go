package services

import (
	"errors"
	"testing"
)

func TestParseExportRange(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{name: "open range", from: "", to: ""},
		{name: "trimmed bounds", from: " 2026-02-01 ", to: "2026-02-10 ", wantFrom: "2026-02-01", wantTo: "2026-02-10"},
		{name: "single day", from: "2026-02-10", to: "2026-02-10", wantFrom: "2026-02-10", wantTo: "2026-02-10"},
		{name: "only upper bound", to: "2026-02-10", wantTo: "2026-02-10"},
		{name: "invalid from", from: "2026-13-01", wantErr: ErrExportFromDateInvalid},
		{name: "invalid to", to: "10.02.2026", wantErr: ErrExportToDateInvalid},
		{name: "reversed", from: "2026-02-11", to: "2026-02-10", wantErr: ErrExportRangeInvalid},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			from, to, err := ParseExportRange(testCase.from, testCase.to)
			if testCase.wantErr != nil {
				if !errors.Is(err, testCase.wantErr) {
					t.Fatalf("expected %v, got %v", testCase.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if from != testCase.wantFrom || to != testCase.wantTo {
				t.Fatalf("expected %q..%q, got %q..%q", testCase.wantFrom, testCase.wantTo, from, to)
			}
		})
	}
}
