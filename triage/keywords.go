package triage

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// defaultHighRiskPhrases is the built-in phrase set. Substring match is
// intentional: "suicide" also catches "suicidal". The set errs toward
// over-triggering; loosening it requires product sign-off.
var defaultHighRiskPhrases = []string{
	"kill myself",
	"suicide",
	"suicidal",
	"end my life",
	"ending my life",
	"want to die",
	"wish i was dead",
	"better off dead",
	"no reason to live",
	"hurt myself",
	"harm myself",
	"self harm",
	"self-harm",
}

// DefaultHighRiskPhrases returns a copy of the built-in phrase set.
func DefaultHighRiskPhrases() []string {
	return append([]string(nil), defaultHighRiskPhrases...)
}

// KeywordDetector is the deterministic tier of the risk pipeline: a
// zero-latency scan of normalized input text against a fixed phrase set.
// It is pure and has no failure mode.
type KeywordDetector struct {
	phrases []string
}

// NewKeywordDetector builds a detector over the given phrase set. The
// phrases are normalized once at construction; an empty slice falls back to
// the built-in set.
func NewKeywordDetector(phrases []string) *KeywordDetector {
	if len(phrases) == 0 {
		phrases = defaultHighRiskPhrases
	}
	normalized := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = normalizeText(p)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return &KeywordDetector{phrases: normalized}
}

// Detect reports whether text contains any high-risk phrase. Matching is
// case-insensitive substring containment over NFKC-normalized text, so
// fullwidth and styled Unicode variants of a phrase still trigger.
func (d *KeywordDetector) Detect(text string) bool {
	t := normalizeText(text)
	for _, p := range d.phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// normalizeText applies NFKC normalization and lowercasing.
func normalizeText(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}
