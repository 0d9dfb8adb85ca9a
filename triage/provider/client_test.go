package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/theimaginaryfoundation/triage-o-bot/triage"
)

func TestBuildClassifyInput_CarriesAllChannelsAndHistory(t *testing.T) {
	t.Parallel()

	in := triage.MultimodalInput{
		Text:   "I feel okay",
		Vision: "neutral expression",
		Audio:  "even pace",
		Physio: "heart rate 72 bpm",
	}
	got := BuildClassifyInput(in, []string{"Calm", "Anxious", "Sad"})

	for _, want := range []string{
		"USER TEXT:\nI feel okay",
		"VISION:\nneutral expression",
		"AUDIO:\neven pace",
		"PHYSIOLOGY:\nheart rate 72 bpm",
		"RECENT EMOTIONAL STATES (oldest first):\nCalm, Anxious, Sad",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildClassifyInput_EmptyHistory(t *testing.T) {
	t.Parallel()

	got := BuildClassifyInput(triage.MultimodalInput{Text: "hi"}, nil)
	if !strings.Contains(got, "(none)") {
		t.Fatalf("empty history marker missing:\n%s", got)
	}
}

func TestDecodeModelJSON_PlainAndWrapped(t *testing.T) {
	t.Parallel()

	var out assessmentResponse
	if err := decodeModelJSON(`{"emotional_state":"Calm","intensity":2,"is_crisis":false,"reason":"r","confidence":0.8}`, &out); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if out.EmotionalState != "Calm" || out.Confidence != 0.8 {
		t.Fatalf("out=%+v", out)
	}

	out = assessmentResponse{}
	wrapped := "Here you go:\n```json\n{\"emotional_state\":\"Sad\",\"intensity\":6,\"is_crisis\":false,\"reason\":\"r\",\"confidence\":0.7}\n```"
	if err := decodeModelJSON(wrapped, &out); err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if out.EmotionalState != "Sad" || out.Intensity != 6 {
		t.Fatalf("out=%+v", out)
	}
}

func TestDecodeModelJSON_Garbage(t *testing.T) {
	t.Parallel()

	var out assessmentResponse
	for _, s := range []string{"", "   ", "no json here", "{broken"} {
		if err := decodeModelJSON(s, &out); err == nil {
			t.Fatalf("decodeModelJSON(%q) succeeded", s)
		}
	}
}

func TestClassify_NilClientFailsClosed(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, "gpt-5-mini", nil)
	got := c.Classify(context.Background(), triage.MultimodalInput{Text: "hi"}, nil)
	if got != triage.FallbackAssessment() {
		t.Fatalf("got %+v want exact fallback assessment", got)
	}
}

func TestClassify_EmptyModelFailsClosed(t *testing.T) {
	t.Parallel()

	c := &Client{}
	got := c.Classify(context.Background(), triage.MultimodalInput{Text: "hi"}, nil)
	if got != triage.FallbackAssessment() {
		t.Fatalf("got %+v want exact fallback assessment", got)
	}
}

func TestAssessmentSchema_StrictShape(t *testing.T) {
	t.Parallel()

	if assessmentSchema["additionalProperties"] != false {
		t.Fatalf("additionalProperties=%v", assessmentSchema["additionalProperties"])
	}
	required, ok := assessmentSchema["required"].([]string)
	if !ok {
		t.Fatalf("required=%T", assessmentSchema["required"])
	}
	want := map[string]bool{
		"emotional_state": true, "intensity": true, "is_crisis": true, "reason": true, "confidence": true,
	}
	if len(required) != len(want) {
		t.Fatalf("required=%v", required)
	}
	for _, f := range required {
		if !want[f] {
			t.Fatalf("unexpected required field %q", f)
		}
	}
}
