package triage

import "strings"

// Technique identifies a scripted coping intervention.
type Technique string

const (
	TechniqueBreathing   Technique = "breathing"
	TechniqueGrounding   Technique = "grounding"
	TechniqueMindfulness Technique = "mindfulness"
	TechniqueListening   Technique = "listening"
)

// techniqueByState is the static dispatch table from lowercased
// emotional-state labels to techniques. Labels absent from the table fall
// through to TechniqueListening; selection never fails.
var techniqueByState = map[string]Technique{
	"anxious":   TechniqueBreathing,
	"agitated":  TechniqueBreathing,
	"sad":       TechniqueGrounding,
	"depressed": TechniqueGrounding,
	"hopeless":  TechniqueGrounding,
	"stressed":  TechniqueMindfulness,
}

var defaultScripts = map[Technique]string{
	TechniqueBreathing: "Let's slow things down together. Breathe in through your nose for four counts, " +
		"hold for four, then breathe out through your mouth for six. Repeat that three times, " +
		"and notice how your shoulders feel afterwards.",
	TechniqueGrounding: "Let's try grounding ourselves in this moment. Name five things you can see around you, " +
		"four things you can touch, three things you can hear, two things you can smell, " +
		"and one thing you can taste. Take your time with each one.",
	TechniqueMindfulness: "Let's take a brief pause. Close your eyes if you're comfortable, and for the next " +
		"thirty seconds just notice your breath moving in and out. You don't need to change it, " +
		"only observe it.",
	TechniqueListening: "I'm here with you. Tell me more about what's on your mind right now.",
}

// DefaultScripts returns a copy of the built-in intervention scripts.
func DefaultScripts() map[Technique]string {
	out := make(map[Technique]string, len(defaultScripts))
	for k, v := range defaultScripts {
		out[k] = v
	}
	return out
}

// InterventionSelector maps a non-crisis emotional-state label to a coping
// script. It is pure and total: unrecognized labels get the open-ended
// listening prompt.
type InterventionSelector struct {
	scripts map[Technique]string
}

// NewInterventionSelector builds a selector. Scripts missing from the given
// map are filled from the defaults, so a partial override is fine.
func NewInterventionSelector(scripts map[Technique]string) *InterventionSelector {
	merged := DefaultScripts()
	for k, v := range scripts {
		if strings.TrimSpace(v) != "" {
			merged[k] = v
		}
	}
	return &InterventionSelector{scripts: merged}
}

// Select returns the script for the given emotional state, case-insensitive.
func (s *InterventionSelector) Select(emotionalState string) string {
	t, ok := techniqueByState[strings.ToLower(strings.TrimSpace(emotionalState))]
	if !ok {
		t = TechniqueListening
	}
	return s.scripts[t]
}
