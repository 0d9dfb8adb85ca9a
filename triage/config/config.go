// Package config loads the triage configuration: the high-risk phrase set,
// intervention scripts, crisis resources, and classifier model. Values come
// from a YAML file overlaid on compiled-in defaults, with ${VAR} references
// expanded from the environment and .env files loaded via godotenv.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/theimaginaryfoundation/triage-o-bot/triage"
)

// Config is the full runtime configuration.
type Config struct {
	// Model is the OpenAI model used by the semantic classifier.
	Model string `yaml:"model"`

	// HighRiskPhrases overrides the built-in keyword list when non-empty.
	HighRiskPhrases []string `yaml:"high_risk_phrases"`

	// Scripts overrides individual intervention scripts; missing entries
	// keep their defaults.
	Scripts Scripts `yaml:"scripts"`

	// Resources are the emergency contacts shown by the escalation flow.
	Resources triage.CrisisResources `yaml:"resources"`

	// AuditDB is the SQLite audit log path; empty disables auditing.
	AuditDB string `yaml:"audit_db"`
}

// Scripts holds one script per coping technique.
type Scripts struct {
	Breathing   string `yaml:"breathing"`
	Grounding   string `yaml:"grounding"`
	Mindfulness string `yaml:"mindfulness"`
	Listening   string `yaml:"listening"`
}

// Map converts the override scripts into the selector's technique map,
// dropping empty entries.
func (s Scripts) Map() map[triage.Technique]string {
	out := make(map[triage.Technique]string, 4)
	for t, v := range map[triage.Technique]string{
		triage.TechniqueBreathing:   s.Breathing,
		triage.TechniqueGrounding:   s.Grounding,
		triage.TechniqueMindfulness: s.Mindfulness,
		triage.TechniqueListening:   s.Listening,
	} {
		if strings.TrimSpace(v) != "" {
			out[t] = v
		}
	}
	return out
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Model:           "gpt-5-mini",
		HighRiskPhrases: triage.DefaultHighRiskPhrases(),
		Resources:       triage.DefaultCrisisResources(),
	}
}

// LoadEnvFiles loads .env files from standard locations. Existing
// environment variables are never overwritten.
func LoadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		_ = godotenv.Load(f)
	}
}

// LoadFile reads path, expands environment references, and overlays the
// result on the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays YAML bytes on the defaults after env expansion.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise fail deep inside a turn.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("config: model must not be empty")
	}
	for i, p := range c.HighRiskPhrases {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("config: high_risk_phrases[%d] is blank", i)
		}
	}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} references with environment values. Unset
// variables keep the placeholder unless a :-default is given.
func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		name, def := sub[1], sub[2]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		if strings.Contains(match, ":-") {
			return def
		}
		return match
	})
}
