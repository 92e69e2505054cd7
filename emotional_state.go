package novacore

import (
	"encoding/json"
	"time"
)

// ──────────────────────────────────────────────
// Emotion labels
// ──────────────────────────────────────────────

// Emotion is a discrete emotion label. The string values double as the
// serialization identifiers used in persisted state, so they must never
// be renamed once shipped.
type Emotion string

const (
	EmotionNeutral    Emotion = "neutral"
	EmotionHappy      Emotion = "happy"
	EmotionWarm       Emotion = "warm"
	EmotionCalm       Emotion = "calm"
	EmotionSoft       Emotion = "soft"
	EmotionCurious    Emotion = "curious"
	EmotionExcited    Emotion = "excited"
	EmotionNostalgic  Emotion = "nostalgic"
	EmotionBored      Emotion = "bored"
	EmotionSad        Emotion = "sad"
	EmotionMelancholy Emotion = "melancholy"
	EmotionHurt       Emotion = "hurt"
	EmotionAfraid     Emotion = "afraid"
	EmotionAnxious    Emotion = "anxious"
	EmotionAnnoyed    Emotion = "annoyed"
	EmotionFrustrated Emotion = "frustrated"
	EmotionTired      Emotion = "tired"
)

// Valence maps an emotion onto a rough positive/negative axis in [0,1].
// Used by the mood snapshot and by playfulness scoring.
func (e Emotion) Valence() float64 {
	switch e {
	case EmotionHappy, EmotionExcited, EmotionWarm:
		return 0.8
	case EmotionCurious, EmotionCalm:
		return 0.6
	case EmotionNeutral, EmotionNostalgic, EmotionSoft:
		return 0.5
	case EmotionBored, EmotionTired:
		return 0.4
	case EmotionAnnoyed, EmotionFrustrated, EmotionAnxious:
		return 0.3
	case EmotionSad, EmotionMelancholy, EmotionHurt, EmotionAfraid:
		return 0.2
	default:
		return 0.5
	}
}

// Energy maps an emotion onto a rough arousal axis in [0,1].
func (e Emotion) Energy() float64 {
	switch e {
	case EmotionExcited:
		return 0.9
	case EmotionHappy, EmotionAnnoyed, EmotionFrustrated, EmotionAfraid, EmotionAnxious:
		return 0.7
	case EmotionCurious:
		return 0.6
	case EmotionNeutral, EmotionWarm, EmotionNostalgic:
		return 0.5
	case EmotionSad, EmotionHurt, EmotionSoft, EmotionCalm:
		return 0.35
	case EmotionBored, EmotionMelancholy, EmotionTired:
		return 0.25
	default:
		return 0.5
	}
}

// MaxEmotionHistory bounds the emotion history used for mood smoothing.
const MaxEmotionHistory = 20

// ──────────────────────────────────────────────
// EmotionalState — the shared mutable heart
// ──────────────────────────────────────────────

// EmotionalState tracks the layered emotional condition across turns:
// a stable baseline, a smoothed mood trend, the immediate primary emotion,
// secondary shades, an optional emergent fusion label, and a bounded
// history feeding the mood engine.
//
// The zero value is not usable; call NewEmotionalState.
type EmotionalState struct {
	Baseline  Emotion   `json:"baseline"`
	Mood      Emotion   `json:"mood"`
	Primary   Emotion   `json:"primary"`
	Secondary []Emotion `json:"secondary"`
	History   []Emotion `json:"history"`

	// Fusion is the emergent higher-order label ("" = none).
	Fusion FusionLabel `json:"fusion,omitempty"`

	// Derived scalars in [0,1], updated by the emotion engine.
	Intensity float64 `json:"intensity"`
	Stability float64 `json:"stability"`

	LastUpdate       time.Time `json:"last_update"`
	LastFusionUpdate time.Time `json:"last_fusion_update"`
}

// NewEmotionalState creates a fresh heart anchored on the given baseline.
func NewEmotionalState(baseline Emotion) *EmotionalState {
	if baseline == "" {
		baseline = EmotionCurious
	}
	now := time.Now()
	return &EmotionalState{
		Baseline:         baseline,
		Mood:             EmotionNeutral,
		Primary:          EmotionNeutral,
		Secondary:        []Emotion{},
		History:          []Emotion{},
		Intensity:        0.2,
		Stability:        0.5,
		LastUpdate:       now,
		LastFusionUpdate: now,
	}
}

// Push registers a new immediate emotion and appends it to the bounded
// history. Empty emotions are ignored.
func (s *EmotionalState) Push(e Emotion) {
	if e == "" {
		return
	}
	s.Primary = e
	s.History = append(s.History, e)
	if len(s.History) > MaxEmotionHistory {
		s.History = s.History[len(s.History)-MaxEmotionHistory:]
	}
	s.LastUpdate = time.Now()
}

// HasSecondary reports whether the shade is already present.
func (s *EmotionalState) HasSecondary(e Emotion) bool {
	for _, cur := range s.Secondary {
		if cur == e {
			return true
		}
	}
	return false
}

// AddSecondary appends a shade if not already present.
func (s *EmotionalState) AddSecondary(e Emotion) {
	if e == "" || s.HasSecondary(e) {
		return
	}
	s.Secondary = append(s.Secondary, e)
}

// Snapshot returns an immutable per-turn view for the intent layer.
func (s *EmotionalState) Snapshot() EmotionSnapshot {
	return EmotionSnapshot{
		Primary:   s.Primary,
		Fusion:    s.Fusion,
		Intensity: s.Intensity,
		Stability: s.Stability,
	}
}

// MoodSnapshot derives the per-turn mood view (label plus valence/energy).
func (s *EmotionalState) MoodSnapshot() MoodSnapshot {
	return MoodSnapshot{
		Label:   s.Mood,
		Valence: s.Mood.Valence(),
		Energy:  s.Mood.Energy(),
	}
}

// Encode serializes the state for the durable store.
func (s *EmotionalState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeEmotionalState restores a state from persisted bytes. Missing
// fields fall back to defaults so older saves keep loading.
func DecodeEmotionalState(data []byte) (*EmotionalState, error) {
	st := NewEmotionalState(EmotionCurious)
	if err := json.Unmarshal(data, st); err != nil {
		return nil, err
	}
	if st.Baseline == "" {
		st.Baseline = EmotionCurious
	}
	if st.Mood == "" {
		st.Mood = EmotionNeutral
	}
	if st.Primary == "" {
		st.Primary = EmotionNeutral
	}
	if st.Secondary == nil {
		st.Secondary = []Emotion{}
	}
	if st.History == nil {
		st.History = []Emotion{}
	}
	if len(st.History) > MaxEmotionHistory {
		st.History = st.History[len(st.History)-MaxEmotionHistory:]
	}
	st.Intensity = clamp01(st.Intensity)
	st.Stability = clamp01(st.Stability)
	return st, nil
}

// clamp01 bounds v to [0,1]. Every derived scalar in the pipeline goes
// through this after each mutation; downstream consumers rely on it.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
