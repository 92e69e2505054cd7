package novacore

import (
	"time"

	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────
// Turn state — the aggregate snapshot the pipeline flows through
// ──────────────────────────────────────────────

// NovaState is the mutable aggregate the brain loop assembles once per turn
// and hands to each stage. Engines read the snapshots here rather than
// reaching into each other.
type NovaState struct {
	Emotion      EmotionSnapshot      `json:"emotion"`
	Mood         MoodSnapshot         `json:"mood"`
	Needs        NeedsSnapshot        `json:"needs"`
	Drives       DriveSnapshot        `json:"drives"`
	Relationship RelationshipSnapshot `json:"relationship"`
	Affection    AffectionState       `json:"affection"`
	Maturity     float64              `json:"maturity"`

	PersonaBrief     string            `json:"persona_brief,omitempty"`
	RecentMemory     []MemorySnippet   `json:"recent_memory,omitempty"`
	EpisodicMemory   []MemorySnippet   `json:"episodic_memory,omitempty"`
	ContinuityMemory []MemorySnippet   `json:"continuity_memory,omitempty"`
	ShortTerm        []ShortTermRecord `json:"short_term,omitempty"`

	LastUserMessage string    `json:"last_user_message,omitempty"`
	LastReply       string    `json:"last_reply,omitempty"`
	TurnCount       int       `json:"turn_count"`
	LastTurnAt      time.Time `json:"last_turn_at"`

	Asleep  bool      `json:"asleep"`
	SleptAt time.Time `json:"slept_at,omitempty"`
}

// RecordTurn appends both sides of an exchange to the short-term buffer
// and advances the turn counter.
func (s *NovaState) RecordTurn(userText, reply string, primary Emotion) {
	s.ShortTerm = append(s.ShortTerm,
		ShortTermRecord{Speaker: "user", Text: userText, Emotion: primary, Turn: s.TurnCount},
		ShortTermRecord{Speaker: "agent", Text: reply, Emotion: primary, Turn: s.TurnCount},
	)
	s.LastUserMessage = userText
	s.LastReply = reply
	s.TurnCount++
	s.LastTurnAt = time.Now()
}

// ─── Emotional-state persistence ───

// LoadEmotionalState restores the persisted emotional state, falling back to
// a fresh default when the key is missing or unreadable. Persistence faults
// degrade to defaults rather than failing the caller.
func LoadEmotionalState(store StateStore, baseline Emotion, log zerolog.Logger) *EmotionalState {
	data, found, err := store.Load(KeyEmotionalState)
	if err != nil {
		log.Warn().Err(err).Str("key", KeyEmotionalState).Msg("emotional state load failed, using defaults")
		return NewEmotionalState(baseline)
	}
	if !found {
		return NewEmotionalState(baseline)
	}
	state, err := DecodeEmotionalState(data)
	if err != nil {
		log.Warn().Err(err).Str("key", KeyEmotionalState).Msg("emotional state decode failed, using defaults")
		return NewEmotionalState(baseline)
	}
	return state
}

// SaveEmotionalState persists the emotional state; faults are logged and
// swallowed so a flaky backend never breaks a turn.
func SaveEmotionalState(store StateStore, state *EmotionalState, log zerolog.Logger) {
	data, err := state.Encode()
	if err != nil {
		log.Warn().Err(err).Msg("emotional state encode failed")
		return
	}
	if err := store.Save(KeyEmotionalState, data); err != nil {
		log.Warn().Err(err).Str("key", KeyEmotionalState).Msg("emotional state save failed")
	}
}
