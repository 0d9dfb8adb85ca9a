package triage

// MultimodalInput is the per-turn input bundle: the user's text plus
// readings from the simulated vision, audio, and physiology channels.
// One bundle exists per turn and is owned by the pipeline call.
type MultimodalInput struct {
	Text   string `json:"text"`
	Vision string `json:"vision"`
	Audio  string `json:"audio"`
	Physio string `json:"physio"`
}
