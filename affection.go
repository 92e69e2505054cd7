package novacore

// ──────────────────────────────────────────────
// Affection Engine — closeness / readiness recurrence
// ──────────────────────────────────────────────

// AffectionState tracks emotional closeness and intimacy readiness.
// It never produces output text; it only shapes tone, hesitation, and
// intent.
type AffectionState struct {
	Affection float64 `json:"affection"` // emotional closeness
	Arousal   float64 `json:"arousal"`
	Comfort   float64 `json:"comfort"`
	Fluster   float64 `json:"fluster"`
	Readiness float64 `json:"readiness"`
}

// AffectionEngine advances the affection recurrence once per turn from the
// current aggregate state.
type AffectionEngine struct {
	state AffectionState
}

// NewAffectionEngine creates the engine with the neutral starting point.
func NewAffectionEngine() *AffectionEngine {
	return &AffectionEngine{state: AffectionState{
		Affection: 0.3,
		Comfort:   0.5,
	}}
}

// State returns the current affection state.
func (a *AffectionEngine) State() AffectionState { return a.state }

// Update applies the per-turn recurrence and returns the new state.
// Affection trails trust, arousal rises slowly with intensity, comfort
// with stability, fluster with the affection/maturity gap. Readiness is a
// fixed blend, clamped like everything else.
func (a *AffectionEngine) Update(rel RelationshipSnapshot, mood MoodSnapshot, emo EmotionSnapshot, maturity float64) AffectionState {
	s := &a.state

	s.Affection += (rel.Trust - s.Affection) * 0.05
	if mood.Valence > 0.2 {
		s.Affection += 0.02
	}
	if emo.Intensity > 0.4 {
		s.Arousal += 0.015 * emo.Intensity
	}
	if emo.Stability > 0.5 {
		s.Comfort += 0.01
	}
	if s.Affection > 0.55 && maturity < 0.5 {
		s.Fluster += 0.02
	}

	s.Affection = clamp01(s.Affection)
	s.Arousal = clamp01(s.Arousal)
	s.Comfort = clamp01(s.Comfort)
	s.Fluster = clamp01(s.Fluster)

	s.Readiness = clamp01(s.Affection*0.4 + s.Arousal*0.4 + s.Comfort*0.2)

	return a.state
}
