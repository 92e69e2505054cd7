package novacore

// ──────────────────────────────────────────────
// Maturity Engine — composure scoring
// ──────────────────────────────────────────────

// MaturityInputs carries everything the maturity formula reads. Components
// never reach into each other; the orchestrator assembles this from the
// per-turn snapshots.
type MaturityInputs struct {
	IdentityBase       float64 // stable personality anchor, 0-1
	RelationshipLevel  int     // 0-7
	MoodBalance        float64 // mood valence, 0-1
	EmotionalIntensity float64 // 0-1
	EmotionalStability float64 // 0-1
	NeedPressure       float64 // 0-1
}

// MaturityEngine computes the emotional maturity score. High maturity
// reads as calm and composed; low maturity as reactive, pouty, flustered.
type MaturityEngine struct{}

// NewMaturityEngine creates a maturity engine.
func NewMaturityEngine() *MaturityEngine { return &MaturityEngine{} }

// Compute applies the weighted linear blend and clamps to [0,1].
func (m *MaturityEngine) Compute(in MaturityInputs) float64 {
	relationshipFactor := 1.0 - float64(in.RelationshipLevel)/float64(RelationshipMaxLevel)

	score := in.IdentityBase*0.30 +
		relationshipFactor*0.25 +
		in.MoodBalance*0.15 +
		in.EmotionalStability*0.10 -
		in.EmotionalIntensity*0.10 -
		in.NeedPressure*0.10

	return clamp01(score)
}
