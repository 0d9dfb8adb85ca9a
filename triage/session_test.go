package triage

import (
	"context"
	"testing"
)

type fakeRecorder struct {
	assessments []Assessment
	turns       []int
	escalations []string
	failWith    error
}

func (r *fakeRecorder) RecordAssessment(sessionID string, turn int, input MultimodalInput, a Assessment) error {
	r.assessments = append(r.assessments, a)
	r.turns = append(r.turns, turn)
	return r.failWith
}

func (r *fakeRecorder) RecordEscalation(sessionID string, outcome string) error {
	r.escalations = append(r.escalations, outcome)
	return r.failWith
}

func newTestSession(stub *stubClassifier, rec Recorder) *Session {
	p := NewPipeline(NewKeywordDetector(nil), stub, nil)
	return NewSession(p, NewInterventionSelector(nil), NewSensorSuiteSeeded(1), rec, nil)
}

func TestSessionTurn_NonCrisisSelectsIntervention(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestSession(&stubClassifier{results: []Assessment{calmAssessment("Anxious")}}, rec)

	res := s.Turn(context.Background(), "big presentation tomorrow")

	if res.Crisis {
		t.Fatalf("unexpected crisis")
	}
	if res.Reply != defaultScripts[TechniqueBreathing] {
		t.Fatalf("Reply=%q", res.Reply)
	}
	if len(rec.assessments) != 1 || rec.turns[0] != 1 {
		t.Fatalf("recorder: assessments=%d turns=%v", len(rec.assessments), rec.turns)
	}
}

func TestSessionTurn_CrisisHasNoReply(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestSession(&stubClassifier{}, rec)

	res := s.Turn(context.Background(), "I want to kill myself")

	if !res.Crisis || res.Reply != "" {
		t.Fatalf("result=%+v", res)
	}
	if len(rec.assessments) != 1 || !rec.assessments[0].IsCrisis {
		t.Fatalf("crisis assessment not audited: %+v", rec.assessments)
	}
}

func TestSessionTurn_NilRecorderIsFine(t *testing.T) {
	t.Parallel()

	s := newTestSession(&stubClassifier{results: []Assessment{calmAssessment("Calm")}}, nil)
	res := s.Turn(context.Background(), "hello")
	if res.Reply == "" {
		t.Fatalf("expected a reply")
	}
	s.RecordEscalation(Routed) // must not panic
}

func TestSessionTurn_TurnCounterAdvances(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestSession(&stubClassifier{results: []Assessment{
		calmAssessment("Calm"), calmAssessment("Calm"),
	}}, rec)

	s.Turn(context.Background(), "one")
	s.Turn(context.Background(), "two")

	if len(rec.turns) != 2 || rec.turns[0] != 1 || rec.turns[1] != 2 {
		t.Fatalf("turns=%v", rec.turns)
	}
}

func TestSession_RecordEscalation(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestSession(&stubClassifier{}, rec)
	s.RecordEscalation(ContactsShown)
	if len(rec.escalations) != 1 || rec.escalations[0] != "contacts_shown" {
		t.Fatalf("escalations=%v", rec.escalations)
	}
}

func TestIsQuit_CaseSensitive(t *testing.T) {
	t.Parallel()

	if !IsQuit("quit") {
		t.Fatalf(`IsQuit("quit")=false`)
	}
	for _, text := range []string{"Quit", "QUIT", "quit ", "exit"} {
		if IsQuit(text) {
			t.Fatalf("IsQuit(%q)=true", text)
		}
	}
}
