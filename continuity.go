package novacore

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────
// Continuity — the thread between days
// ──────────────────────────────────────────────

// How many past days the recent arc looks across, and how many session
// summaries are retained before the oldest are dropped.
const (
	continuityArcDays    = 7
	maxSessionSummaries  = 30
	sessionSummaryMaxLen = 120
)

// SessionSummary is one ended session distilled to a line: when it was,
// what it felt like, and how heavily it should count in the arc.
type SessionSummary struct {
	Date            time.Time `json:"date"`
	Summary         string    `json:"summary"`
	DominantEmotion Emotion   `json:"dominant_emotion"`
	Weight          float64   `json:"overall_weight"`
	Turns           int       `json:"turns"`
}

// ContinuityEngine keeps the recent session summaries and condenses them
// into "yesterday" and "recent arc" snippets that flow back into each turn
// and into dream synthesis. Summaries are written when a session ends —
// falling asleep or shutting down — never mid-conversation.
type ContinuityEngine struct {
	store    StateStore
	log      zerolog.Logger
	sessions []SessionSummary

	now func() time.Time
}

// NewContinuityEngine creates the engine over the given store.
func NewContinuityEngine(store StateStore, log zerolog.Logger) *ContinuityEngine {
	return &ContinuityEngine{store: store, log: log, now: time.Now}
}

// Load restores past session summaries. Faults degrade to an empty list.
func (c *ContinuityEngine) Load() {
	if c.store == nil {
		return
	}
	data, found, err := c.store.Load(KeyContinuity)
	if err != nil {
		c.log.Warn().Err(err).Str("key", KeyContinuity).Msg("continuity load failed, starting empty")
		return
	}
	if !found {
		return
	}
	if err := json.Unmarshal(data, &c.sessions); err != nil {
		c.log.Warn().Err(err).Str("key", KeyContinuity).Msg("continuity corrupt, starting empty")
		c.sessions = nil
	}
}

// Flush writes the summaries back. Best effort.
func (c *ContinuityEngine) Flush() {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(c.sessions)
	if err != nil {
		c.log.Warn().Err(err).Str("key", KeyContinuity).Msg("continuity encode failed")
		return
	}
	if err := c.store.Save(KeyContinuity, data); err != nil {
		c.log.Warn().Err(err).Str("key", KeyContinuity).Msg("continuity save failed")
	}
}

// RecordSession distills the ending session into one summary entry and
// persists the list. A session with no turns leaves no trace.
func (c *ContinuityEngine) RecordSession(state *NovaState, emo EmotionSnapshot) {
	if state == nil || state.TurnCount == 0 {
		return
	}

	summary := "It felt " + string(emo.Primary) + "."
	if state.LastUserMessage != "" {
		summary = "We talked about " + truncate(state.LastUserMessage, sessionSummaryMaxLen) + ". " + summary
	}

	c.sessions = append(c.sessions, SessionSummary{
		Date:            c.now(),
		Summary:         summary,
		DominantEmotion: emo.Primary,
		Weight:          0.5 + emo.Intensity*0.5,
		Turns:           state.TurnCount,
	})
	if len(c.sessions) > maxSessionSummaries {
		c.sessions = c.sessions[len(c.sessions)-maxSessionSummaries:]
	}
	c.Flush()
}

// YesterdaySummary describes what yesterday felt like. When nothing was
// recorded for yesterday, the most recent day stands in; when nothing was
// recorded at all, she says so.
func (c *ContinuityEngine) YesterdaySummary() string {
	if len(c.sessions) == 0 {
		return "I don't remember any previous days yet."
	}

	yesterday := c.now().AddDate(0, 0, -1)
	var summaries []string
	for _, s := range c.sessions {
		if sameDay(s.Date, yesterday) && s.Summary != "" {
			summaries = append(summaries, s.Summary)
		}
	}

	if len(summaries) == 0 {
		latest := c.sessions[len(c.sessions)-1]
		if latest.Summary == "" {
			return "My sense of yesterday is still forming."
		}
		return "I don't have a clear memory of yesterday, but the most recent day felt like this: " + latest.Summary
	}
	if len(summaries) == 1 {
		return "Yesterday felt like this: " + summaries[0]
	}
	return "Yesterday had multiple moments. Overall it felt like: " + strings.Join(summaries, " ")
}

// RecentArc sums the session weights per dominant emotion over the last
// maxDays days and renders the winner as a readable trend line.
func (c *ContinuityEngine) RecentArc(maxDays int) (arc string, dominant Emotion, count int) {
	earliest := c.now().AddDate(0, 0, -maxDays)

	weights := map[Emotion]float64{}
	for _, s := range c.sessions {
		if s.Date.Before(earliest) {
			continue
		}
		em := s.DominantEmotion
		if em == "" {
			em = EmotionNeutral
		}
		weights[em] += s.Weight
		count++
	}
	if count == 0 {
		return "Recent days feel quiet and undefined so far.", EmotionNeutral, 0
	}

	dominant = EmotionNeutral
	best := -1.0
	for em, w := range weights {
		if w > best {
			best = w
			dominant = em
		}
	}

	arc = fmt.Sprintf("Looking back over the last few days, things have felt %s.", describeTrend(dominant))
	return arc, dominant, count
}

// Snippets renders the continuity view as memory snippets for the turn
// state. Empty until at least one session has been recorded.
func (c *ContinuityEngine) Snippets() []MemorySnippet {
	if len(c.sessions) == 0 {
		return nil
	}
	out := []MemorySnippet{
		{Text: c.YesterdaySummary(), Weight: 0.4, Kind: MemoryContinuity},
	}
	if arc, _, n := c.RecentArc(continuityArcDays); n > 0 {
		out = append(out, MemorySnippet{Text: arc, Weight: 0.3, Kind: MemoryContinuity})
	}
	return out
}

// describeTrend maps a dominant emotion to the arc wording.
func describeTrend(em Emotion) string {
	switch em {
	case EmotionHappy, EmotionWarm, EmotionExcited:
		return "mostly bright and uplifting"
	case EmotionNostalgic:
		return "soft and reflective"
	case EmotionSad, EmotionMelancholy, EmotionHurt:
		return "a bit heavy and quiet"
	case EmotionAfraid, EmotionAnxious:
		return "tense and cautious"
	case EmotionAnnoyed, EmotionFrustrated:
		return "sharp and unsettled"
	case EmotionTired:
		return "slow and drained"
	case EmotionBored:
		return "flat and uneventful"
	default:
		return "fairly steady and neutral"
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
