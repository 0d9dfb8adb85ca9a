package triage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// QuitSentinel ends a session outside any crisis path. The check is exact
// and case-sensitive ("Quit" does not quit) — a long-standing inconsistency
// with the case-insensitive keyword matching, kept as documented behavior
// pending a product decision.
const QuitSentinel = "quit"

// IsQuit reports whether text is the session-ending sentinel.
func IsQuit(text string) bool {
	return text == QuitSentinel
}

// Recorder receives per-turn audit events. Implementations must tolerate
// being called once per turn in sequence; a nil Recorder disables auditing.
type Recorder interface {
	RecordAssessment(sessionID string, turn int, input MultimodalInput, a Assessment) error
	RecordEscalation(sessionID string, outcome string) error
}

// Session is one continuous conversation: a pipeline with its history, an
// intervention selector, simulated sensors, and an optional audit recorder.
// A session runs one turn at a time; nothing here is safe for concurrent
// use and nothing needs to be.
type Session struct {
	ID       uuid.UUID
	pipeline *Pipeline
	selector *InterventionSelector
	sensors  *SensorSuite
	recorder Recorder
	logger   *slog.Logger
	turn     int
}

// NewSession wires a session together. recorder may be nil.
func NewSession(pipeline *Pipeline, selector *InterventionSelector, sensors *SensorSuite, recorder Recorder, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		ID:       uuid.New(),
		pipeline: pipeline,
		selector: selector,
		sensors:  sensors,
		recorder: recorder,
		logger:   logger,
	}
}

// TurnResult is what one user turn produces: the assessment, and either a
// coping reply (Crisis=false) or a crisis signal (Crisis=true) telling the
// caller to run the escalation flow and end the session.
type TurnResult struct {
	Assessment Assessment
	Reply      string
	Crisis     bool
}

// Turn runs one full turn: sample sensors around the user's text, assess,
// audit, and select a response. Crisis turns return no reply; the
// escalation flow owns all crisis-side output.
func (s *Session) Turn(ctx context.Context, text string) TurnResult {
	s.turn++
	input := s.sensors.Sample(text)
	a := s.pipeline.Assess(ctx, input)

	if s.recorder != nil {
		if err := s.recorder.RecordAssessment(s.ID.String(), s.turn, input, a); err != nil {
			s.logger.Warn("audit: record assessment failed", "session", s.ID, "turn", s.turn, "err", err)
		}
	}

	if a.IsCrisis {
		return TurnResult{Assessment: a, Crisis: true}
	}
	return TurnResult{Assessment: a, Reply: s.selector.Select(a.EmotionalState)}
}

// RecordEscalation audits the terminal escalation outcome for this session.
func (s *Session) RecordEscalation(outcome EscalationState) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordEscalation(s.ID.String(), outcome.String()); err != nil {
		s.logger.Warn("audit: record escalation failed", "session", s.ID, "err", err)
	}
}
