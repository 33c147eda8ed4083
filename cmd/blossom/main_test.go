package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/blossom/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func setupCLIEnv(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "blossom.db")
	t.Setenv("BLOSSOM_CONFIG", "")
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("TZ", "UTC")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	return dbPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestSeedThenAnalyzeReportsPersonaCycle(t *testing.T) {
	setupCLIEnv(t)

	output, err := runCLI(t, "seed", "Sarah", "--reset", "--today", "2026-03-20")
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(output, "seeded sarah") || !strings.Contains(output, "expected cycle day 32") {
		t.Fatalf("unexpected seed output: %q", output)
	}

	output, err = runCLI(t, "analyze", "--today", "2026-03-20")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(output, "Period starts: 2026-01-01, 2026-02-16") {
		t.Fatalf("expected both true periods in report, got:\n%s", output)
	}
	if !strings.Contains(output, "2026-03-20") {
		t.Fatalf("expected report date in output, got:\n%s", output)
	}
}

func TestSeedResetReplacesJournal(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "seed", "alex", "--today", "2026-03-20"); err != nil {
		t.Fatalf("seed alex failed: %v", err)
	}
	if _, err := runCLI(t, "seed", "sarah", "--reset", "--today", "2026-03-20"); err != nil {
		t.Fatalf("seed sarah failed: %v", err)
	}

	output, err := runCLI(t, "analyze", "--today", "2026-03-20")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if strings.Contains(output, "2026-01-14") {
		t.Fatalf("expected alex period to be cleared by --reset, got:\n%s", output)
	}
}

func TestSeedRejectsUnknownPersona(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "seed", "morgan")
	if !errors.Is(err, services.ErrUnknownPersona) {
		t.Fatalf("expected ErrUnknownPersona, got %v", err)
	}
}

func TestImportCommandWritesEntries(t *testing.T) {
	setupCLIEnv(t)

	payload := []map[string]any{
		{"date": "2026-03-01", "flow": "heavy"},
		{"date": "2026-03-02", "flow": "medium"},
		{"date": "2026-03-03", "flow": "none"},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	file := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(file, raw, 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	output, err := runCLI(t, "import", file)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if strings.TrimSpace(output) != "imported 3 entries" {
		t.Fatalf("unexpected import output: %q", output)
	}

	output, err = runCLI(t, "analyze", "--today", "2026-03-10")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(output, "Period starts: 2026-03-01") {
		t.Fatalf("expected imported period in report, got:\n%s", output)
	}
}

func TestImportCommandRejectsInvalidBatch(t *testing.T) {
	setupCLIEnv(t)

	file := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(file, []byte(`[{"date":"2026-03-01","flow":"gushing"}]`), 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	_, err := runCLI(t, "import", file)
	if !errors.Is(err, services.ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestAnalyzeRejectsMalformedToday(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "analyze", "--today", "20-03-2026"); err == nil {
		t.Fatal("expected malformed --today to fail")
	}
}

func TestTokenCommandSignsWithConfiguredSecret(t *testing.T) {
	setupCLIEnv(t)
	t.Setenv("SECRET_KEY", testSecretKey)

	output, err := runCLI(t, "token")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(output), claims, func(*jwt.Token) (any, error) {
		return []byte(testSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		t.Fatalf("expected a valid token, got err=%v", err)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < 29*24*time.Hour {
		t.Fatalf("expected default 30 day expiry, got %v", claims.ExpiresAt)
	}
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "token"); err == nil {
		t.Fatal("expected token without SECRET_KEY to fail")
	}
}

func TestTokenInitPrintsFreshSecret(t *testing.T) {
	setupCLIEnv(t)

	first, err := runCLI(t, "token", "--init")
	if err != nil {
		t.Fatalf("token --init failed: %v", err)
	}
	second, err := runCLI(t, "token", "--init")
	if err != nil {
		t.Fatalf("token --init failed: %v", err)
	}

	first = strings.TrimSpace(first)
	if len(first) < 32 {
		t.Fatalf("expected a long secret, got %q", first)
	}
	if first == strings.TrimSpace(second) {
		t.Fatal("expected distinct secrets across runs")
	}
}

func TestExportJSONRoundTripsThroughImport(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "seed", "alex", "--today", "2026-03-20"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	file := filepath.Join(t.TempDir(), "journal.json")
	if _, err := runCLI(t, "export", "--output", file); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "restored.db"))
	output, err := runCLI(t, "import", file)
	if err != nil {
		t.Fatalf("import of export failed: %v", err)
	}
	if strings.TrimSpace(output) != "imported 63 entries" {
		t.Fatalf("unexpected import output: %q", output)
	}
}

func TestExportCSVToStdout(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "seed", "sarah", "--today", "2026-03-20"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	output, err := runCLI(t, "export", "--format", "csv", "--from", "2026-01-01", "--to", "2026-01-03")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus three rows, got %d lines:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[0], "Date,Cycle phase,Flow") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2026-01-01,menstrual,Heavy") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	setupCLIEnv(t)

	if _, err := runCLI(t, "export", "--format", "xml"); err == nil {
		t.Fatal("expected unknown export format to fail")
	}
}
