package triage

import (
	"fmt"
	"io"
	"strings"
)

// EscalationState is the state of one crisis turn's escalation flow.
type EscalationState int

const (
	// AwaitingChoice means the user has not yet picked a handoff.
	AwaitingChoice EscalationState = iota
	// Routed is terminal: the session is handed to a human counselor.
	Routed
	// ContactsShown is terminal: fixed emergency resources were displayed.
	ContactsShown
)

func (s EscalationState) String() string {
	switch s {
	case AwaitingChoice:
		return "awaiting_choice"
	case Routed:
		return "routed"
	case ContactsShown:
		return "contacts_shown"
	default:
		return fmt.Sprintf("escalation_state(%d)", int(s))
	}
}

// CrisisResources are the fixed emergency contacts shown on the
// ContactsShown handoff.
type CrisisResources struct {
	CrisisLine string `yaml:"crisis_line"`
	TextLine   string `yaml:"text_line"`
	Emergency  string `yaml:"emergency"`
}

// DefaultCrisisResources returns the built-in resource set.
func DefaultCrisisResources() CrisisResources {
	return CrisisResources{
		CrisisLine: "988 Suicide & Crisis Lifeline: call or text 988",
		TextLine:   "Crisis Text Line: text HOME to 741741",
		Emergency:  "If you are in immediate danger, call 911",
	}
}

// EscalationFlow is the state machine entered when an assessment is flagged
// as crisis. It resolves to exactly one of two terminal handoffs; once
// terminal, the encompassing session ends and is never resumed.
type EscalationFlow struct {
	state     EscalationState
	resources CrisisResources
}

// NewEscalationFlow starts a flow in AwaitingChoice.
func NewEscalationFlow(resources CrisisResources) *EscalationFlow {
	return &EscalationFlow{state: AwaitingChoice, resources: resources}
}

// State returns the current state.
func (f *EscalationFlow) State() EscalationState {
	return f.state
}

// Resolved reports whether the flow reached a terminal state.
func (f *EscalationFlow) Resolved() bool {
	return f.state != AwaitingChoice
}

// Submit feeds one user choice into the machine. Matching is
// case-insensitive substring containment: "counselor" routes to a human,
// "contact" shows emergency resources, anything else leaves the state
// unchanged and the caller re-prompts. The returned bool reports whether
// the flow resolved.
func (f *EscalationFlow) Submit(choice string) (EscalationState, bool) {
	if f.state != AwaitingChoice {
		return f.state, true
	}
	c := strings.ToLower(choice)
	switch {
	case strings.Contains(c, "counselor"):
		f.state = Routed
	case strings.Contains(c, "contact"):
		f.state = ContactsShown
	}
	return f.state, f.state != AwaitingChoice
}

// Prompt is the message presented on entry and on every re-prompt.
func (f *EscalationFlow) Prompt() string {
	return "I'm really concerned about what you just shared, and I want to make sure you get real support.\n" +
		"Please choose one of the following:\n" +
		"  - type \"counselor\" to be connected with a human counselor now\n" +
		"  - type \"contact\" to see emergency contact information"
}

// Run drives the flow to resolution: it writes the prompt, reads choices
// from readLine, and re-prompts on unrecognized input. There is no retry
// cap or timeout; the loop is bounded only by the user choosing or the
// input source failing. A readLine error is returned as-is so the caller
// can decide how the process ends.
func (f *EscalationFlow) Run(readLine func() (string, error), out io.Writer) (EscalationState, error) {
	fmt.Fprintln(out, f.Prompt())
	for !f.Resolved() {
		line, err := readLine()
		if err != nil {
			return f.state, fmt.Errorf("escalation: read choice: %w", err)
		}
		state, done := f.Submit(line)
		if !done {
			fmt.Fprintln(out, "I didn't catch that.")
			fmt.Fprintln(out, f.Prompt())
			continue
		}
		fmt.Fprintln(out, f.handoffMessage(state))
	}
	return f.state, nil
}

func (f *EscalationFlow) handoffMessage(state EscalationState) string {
	switch state {
	case Routed:
		return "Connecting you with a human counselor now. Please stay with me — someone will be with you in a moment."
	case ContactsShown:
		return "Here are people who can help right now:\n" +
			"  " + f.resources.CrisisLine + "\n" +
			"  " + f.resources.TextLine + "\n" +
			"  " + f.resources.Emergency
	default:
		return ""
	}
}
