package triage

import (
	"math/rand"
	"time"
)

// Canned observation sets for the simulated channels. Realism is not the
// point; the classifier contract needs a plausible reading per channel.
var (
	visionObservations = []string{
		"neutral facial expression, steady gaze",
		"furrowed brow, downcast eyes",
		"tense jaw, avoiding eye contact",
		"slight smile, relaxed posture",
		"fidgeting hands, slumped shoulders",
	}
	audioObservations = []string{
		"even speech pace, normal volume",
		"trembling voice, long pauses",
		"rapid speech, raised pitch",
		"flat monotone delivery",
		"quiet voice, frequent sighs",
	}
	physioObservations = []string{
		"heart rate 72 bpm, skin conductance normal",
		"heart rate 95 bpm, elevated skin conductance",
		"heart rate 110 bpm, shallow breathing",
		"heart rate 68 bpm, regular breathing",
		"heart rate 88 bpm, slightly elevated temperature",
	}
)

// SensorSuite produces simulated vision/audio/physiology readings for each
// turn. One suite per session.
type SensorSuite struct {
	r *rand.Rand
}

// NewSensorSuite returns a suite seeded from the clock.
func NewSensorSuite() *SensorSuite {
	return NewSensorSuiteSeeded(time.Now().UnixNano())
}

// NewSensorSuiteSeeded returns a suite with a fixed seed, for reproducible
// runs and tests.
func NewSensorSuiteSeeded(seed int64) *SensorSuite {
	return &SensorSuite{r: rand.New(rand.NewSource(seed))}
}

// Sample builds the turn's input bundle around the user's text.
func (s *SensorSuite) Sample(text string) MultimodalInput {
	return MultimodalInput{
		Text:   text,
		Vision: visionObservations[s.r.Intn(len(visionObservations))],
		Audio:  audioObservations[s.r.Intn(len(audioObservations))],
		Physio: physioObservations[s.r.Intn(len(physioObservations))],
	}
}
