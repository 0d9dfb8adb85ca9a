package triage

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known emotional state labels. The classifier is free to return labels
// outside this set; only Crisis and Unknown carry special meaning in the
// pipeline.
const (
	StateCrisis  = "Crisis"
	StateUnknown = "Unknown"
)

// Assessment is the structured output of one risk-classification turn,
// produced exactly once per turn by either the keyword path or the
// classifier path.
type Assessment struct {
	EmotionalState string  `json:"emotional_state"`
	Intensity      int     `json:"intensity"`
	IsCrisis       bool    `json:"is_crisis"`
	Reason         string  `json:"reason"`
	Confidence     float64 `json:"confidence"`
}

// crisisReason is the fixed reason attached to keyword-path assessments.
const crisisReason = "High-risk keyword detected."

// fallbackReason is the fixed reason attached to fallback assessments when
// the classifier is unreachable or returns a malformed payload.
const fallbackReason = "Could not perform LLM analysis due to a technical error."

// CrisisAssessment returns the synthetic assessment produced when the
// deterministic keyword scan fires. It is maximal on every axis: the safety
// net does not hedge.
func CrisisAssessment() Assessment {
	return Assessment{
		EmotionalState: StateCrisis,
		Intensity:      10,
		IsCrisis:       true,
		Reason:         crisisReason,
		Confidence:     1.0,
	}
}

// FallbackAssessment returns the neutral assessment used whenever the
// classifier fails. It is deliberately non-crisis with zero confidence so a
// broken classifier degrades into ordinary listening rather than a false
// escalation.
func FallbackAssessment() Assessment {
	return Assessment{
		EmotionalState: StateUnknown,
		Intensity:      5,
		IsCrisis:       false,
		Reason:         fallbackReason,
		Confidence:     0.0,
	}
}

// ValidateAssessment reports whether a classifier-produced assessment is
// usable. Callers must replace an invalid assessment with
// FallbackAssessment rather than propagating it.
func ValidateAssessment(a Assessment) error {
	if strings.TrimSpace(a.EmotionalState) == "" {
		return errors.New("assessment: empty emotional_state")
	}
	if a.Intensity < 1 || a.Intensity > 10 {
		return fmt.Errorf("assessment: intensity %d outside [1,10]", a.Intensity)
	}
	if a.Confidence < 0.0 || a.Confidence > 1.0 {
		return fmt.Errorf("assessment: confidence %.3f outside [0,1]", a.Confidence)
	}
	return nil
}
