package triage

import (
	"context"
	"log/slog"
)

// Classifier turns one input bundle plus recent history into an assessment.
// Implementations must fail closed: any transport or payload problem is
// resolved locally into FallbackAssessment, never an error or panic, so the
// conversation loop always receives a well-formed result.
type Classifier interface {
	Classify(ctx context.Context, input MultimodalInput, history []string) Assessment
}

// Pipeline is the two-tier risk classifier: a deterministic keyword scan
// followed, only on a miss, by the semantic classifier. It owns the session
// history.
type Pipeline struct {
	detector   *KeywordDetector
	classifier Classifier
	history    *History
	logger     *slog.Logger
}

// NewPipeline builds a pipeline with a fresh, empty history.
func NewPipeline(detector *KeywordDetector, classifier Classifier, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		detector:   detector,
		classifier: classifier,
		history:    NewHistory(),
		logger:     logger,
	}
}

// Assess produces exactly one assessment for the turn.
//
// The keyword scan runs first and independently of the classifier: on a hit
// it returns the synthetic crisis assessment immediately, touching neither
// the history nor the network, so crisis detection keeps working when the
// classifier is unreachable. Only classifier-path states enter the history.
func (p *Pipeline) Assess(ctx context.Context, input MultimodalInput) Assessment {
	if p.detector.Detect(input.Text) {
		return CrisisAssessment()
	}

	a := p.classifier.Classify(ctx, input, p.history.Labels())
	if err := ValidateAssessment(a); err != nil {
		// The classifier contract forbids this, but a misbehaving
		// implementation must not leak malformed data downstream.
		p.logger.Warn("classifier returned invalid assessment, using fallback", "err", err)
		a = FallbackAssessment()
	}
	p.history.Append(a.EmotionalState)
	return a
}

// History exposes the session history snapshot, oldest first.
func (p *Pipeline) History() []string {
	return p.history.Labels()
}
