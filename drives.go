package novacore

// ──────────────────────────────────────────────
// Drive Engine — motivational forces
// ──────────────────────────────────────────────

// DriveSnapshot holds the motivational forces in [0,1]. These are not
// emotions: they shape response depth, warmth, initiative, and recall.
type DriveSnapshot struct {
	Curiosity  float64 `json:"curiosity"`
	Bonding    float64 `json:"bonding"`
	Safety     float64 `json:"safety"`
	Stability  float64 `json:"stability"`
	Comfort    float64 `json:"comfort"`
	Reflection float64 `json:"reflection"`
}

var driveBase = DriveSnapshot{
	Curiosity:  0.45,
	Bonding:    0.50,
	Safety:     0.30,
	Stability:  0.40,
	Comfort:    0.35,
	Reflection: 0.45,
}

// DriveEngine derives the motivational snapshot from the current primary
// emotion and an optional continuity trend. Pure function of its inputs.
type DriveEngine struct{}

// NewDriveEngine creates a drive engine.
func NewDriveEngine() *DriveEngine { return &DriveEngine{} }

// Compute starts from the base constants, applies per-emotion and trend
// deltas, and clamps every drive to [0,1].
func (d *DriveEngine) Compute(primary Emotion, trend Emotion) DriveSnapshot {
	s := driveBase

	switch primary {
	case EmotionCurious:
		s.Curiosity += 0.25
		s.Reflection += 0.05
	case EmotionHappy:
		s.Bonding += 0.20
		s.Curiosity += 0.10
	case EmotionSad:
		s.Comfort += 0.25
		s.Bonding += 0.10
		s.Safety += 0.10
	case EmotionNostalgic:
		s.Reflection += 0.30
		s.Bonding += 0.10
	case EmotionAfraid:
		s.Safety += 0.35
		s.Stability += 0.10
	case EmotionExcited:
		s.Curiosity += 0.15
		s.Bonding += 0.15
	default:
		// neutral and unlisted emotions keep the base profile
	}

	switch trend {
	case EmotionNostalgic:
		s.Reflection += 0.15
	case EmotionHappy:
		s.Bonding += 0.15
	case EmotionSad:
		s.Comfort += 0.20
	}

	s.Curiosity = clamp01(s.Curiosity)
	s.Bonding = clamp01(s.Bonding)
	s.Safety = clamp01(s.Safety)
	s.Stability = clamp01(s.Stability)
	s.Comfort = clamp01(s.Comfort)
	s.Reflection = clamp01(s.Reflection)
	return s
}
