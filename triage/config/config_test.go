package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theimaginaryfoundation/triage-o-bot/triage"
)

func TestDefault_HasWorkingBaseline(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Model == "" {
		t.Fatalf("default model empty")
	}
	if len(cfg.HighRiskPhrases) == 0 {
		t.Fatalf("default phrase list empty")
	}
	if cfg.Resources.CrisisLine == "" || cfg.Resources.Emergency == "" {
		t.Fatalf("default resources incomplete: %+v", cfg.Resources)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParse_OverlaysOnDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(`
model: gpt-5
high_risk_phrases:
  - red flag
audit_db: sessions/audit.db
scripts:
  breathing: "custom breathing"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Model != "gpt-5" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if len(cfg.HighRiskPhrases) != 1 || cfg.HighRiskPhrases[0] != "red flag" {
		t.Fatalf("HighRiskPhrases=%v", cfg.HighRiskPhrases)
	}
	if cfg.AuditDB != "sessions/audit.db" {
		t.Fatalf("AuditDB=%q", cfg.AuditDB)
	}
	// Unset resources keep their defaults.
	if cfg.Resources.CrisisLine == "" {
		t.Fatalf("default resources lost")
	}
	m := cfg.Scripts.Map()
	if m[triage.TechniqueBreathing] != "custom breathing" {
		t.Fatalf("scripts map=%v", m)
	}
	if _, ok := m[triage.TechniqueGrounding]; ok {
		t.Fatalf("empty script entries should be dropped from the map")
	}
}

func TestParse_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("TRIAGE_TEST_MODEL", "gpt-5-mini")

	cfg, err := Parse([]byte("model: ${TRIAGE_TEST_MODEL}\naudit_db: ${TRIAGE_TEST_DB:-fallback.db}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Model != "gpt-5-mini" {
		t.Fatalf("Model=%q", cfg.Model)
	}
	if cfg.AuditDB != "fallback.db" {
		t.Fatalf("AuditDB=%q", cfg.AuditDB)
	}
}

func TestParse_RejectsBlankModel(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte(`model: ""`)); err == nil {
		t.Fatalf("expected error for blank model")
	}
}

func TestParse_RejectsBlankPhrase(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("high_risk_phrases:\n  - \"  \"\n")); err == nil {
		t.Fatalf("expected error for blank phrase")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "triage.yaml")
	if err := os.WriteFile(path, []byte("model: gpt-5\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Model != "gpt-5" {
		t.Fatalf("Model=%q", cfg.Model)
	}
}
