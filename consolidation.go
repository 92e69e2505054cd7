package novacore

import (
	"strings"
	"time"
)

// ──────────────────────────────────────────────
// Memory Consolidation — scoring, promotion, decay, dreams
// ──────────────────────────────────────────────

// Consolidation constants. These were tuned empirically in the field;
// keep them as named constants rather than re-deriving them.
const (
	consolidationFloor  = 0.15 // below: discard outright
	promotionThreshold  = 0.35 // strictly above: promote to episodic
	survivalFloor       = 0.05 // below after decay: prune
	baseDecayRate       = 0.01
	ageDecayRate        = 0.0005
	dreamLessonFactor   = 0.25 // p(lesson) = factor * intensity
	sleepPruneDecayRate = 0.005
)

// ShortTermRecord is one turn's raw material awaiting consolidation.
type ShortTermRecord struct {
	Speaker string  `json:"speaker"` // "user" or "agent"
	Text    string  `json:"text"`
	Emotion Emotion `json:"emotion,omitempty"`
	Turn    int     `json:"turn"`
}

// MemoryConsolidationEngine scores short-term records, promotes qualifying
// ones into the episodic library, decays existing episodic strength, and on
// a sleep trigger synthesizes dream compressions that may become semantic
// facts.
type MemoryConsolidationEngine struct {
	library *MemoryLibrary
	rand    *Rand
}

// NewMemoryConsolidationEngine wires the engine to its library.
func NewMemoryConsolidationEngine(library *MemoryLibrary, rand *Rand) *MemoryConsolidationEngine {
	return &MemoryConsolidationEngine{library: library, rand: rand}
}

// Consolidate runs the per-turn pass over the state's short-term buffer:
// score, discard, promote, decay, then clear the buffer unconditionally.
func (c *MemoryConsolidationEngine) Consolidate(state *NovaState) {
	for _, rec := range state.ShortTerm {
		scored := c.score(rec, state)
		if scored == nil {
			continue
		}
		if promotes(scored.OverallStrength) {
			c.library.AddEpisodic(scored)
		}
	}

	c.decayEpisodic()

	state.ShortTerm = state.ShortTerm[:0]
}

// promotes reports whether a consolidated strength clears the promotion
// gate. Strictly above: a record landing exactly on the threshold stays
// short-term.
func promotes(strength float64) bool {
	return strength > promotionThreshold
}

// score evaluates one record. Returns nil when strength lands below the
// consolidation floor.
func (c *MemoryConsolidationEngine) score(rec ShortTermRecord, state *NovaState) *EpisodicMemory {
	text := strings.ToLower(rec.Text)

	novelty := c.rand.Uniform(0.1, 0.4)
	if len(text) > 40 {
		novelty += 0.1
	}

	emotionalWeight := state.Emotion.Intensity*0.6 + state.Affection.Fluster*0.2 + state.Affection.Arousal*0.2

	relationshipWeight := state.Relationship.Trust*0.5 + state.Affection.Affection*0.3
	if strings.Contains(text, "thank") {
		relationshipWeight += 0.1
	}
	if strings.Contains(text, "love") {
		relationshipWeight += 0.2
	}

	strength := emotionalWeight*0.4 + relationshipWeight*0.4 + novelty*0.2

	if strength < consolidationFloor {
		return nil
	}

	var emotions []Emotion
	if rec.Emotion != "" {
		emotions = []Emotion{rec.Emotion}
	}

	return &EpisodicMemory{
		Summary:            rec.Text,
		Emotions:           emotions,
		EmotionalWeight:    clamp01(emotionalWeight),
		RelationshipWeight: clamp01(relationshipWeight),
		Novelty:            clamp01(novelty),
		OverallStrength:    clamp01(strength),
	}
}

// decayEpisodic ages every entry one tick and prunes the fallen.
func (c *MemoryConsolidationEngine) decayEpisodic() {
	keep := c.library.Episodic[:0]
	for _, mem := range c.library.Episodic {
		mem.TurnsAgo++
		mem.OverallStrength -= baseDecayRate + float64(mem.TurnsAgo)*ageDecayRate
		if mem.OverallStrength > survivalFloor {
			keep = append(keep, mem)
		}
	}
	c.library.Episodic = keep
}

// ─── Sleep cycle ───

// DreamResult is the outcome of one sleep-cycle consolidation.
type DreamResult struct {
	Text       string
	Tone       Emotion
	MoodShift  float64 // signed valence nudge applied to the waking mood
	BecameFact bool
}

// SleepCycle runs the dream-time variant: gather the strongest seeds,
// synthesize one dream, nudge mood valence by its tone, maybe distill a
// semantic lesson, then run a lighter pruning pass.
func (c *MemoryConsolidationEngine) SleepCycle(state *NovaState, idleSeeds []string) *DreamResult {
	seeds := c.gatherSeeds(state, idleSeeds)
	text, tone := synthesizeDream(c.rand, state.Emotion.Primary, state.Emotion.Fusion, seeds)

	shift := 0.0
	switch {
	case tone.Valence() > 0.5:
		shift = 0.05
	case tone.Valence() < 0.5:
		shift = -0.05
	}

	result := &DreamResult{Text: text, Tone: tone, MoodShift: shift}

	if c.rand.Float64() < dreamLessonFactor*state.Emotion.Intensity {
		key := "lesson." + time.Now().Format("2006-01-02_15:04:05")
		c.library.RememberFact(key, text, 0.5, false)
		result.BecameFact = true
	}

	// Lighter pruning than the per-turn pass: no aging tick, gentle decay.
	keep := c.library.Episodic[:0]
	for _, mem := range c.library.Episodic {
		mem.OverallStrength -= sleepPruneDecayRate
		if mem.OverallStrength > survivalFloor {
			keep = append(keep, mem)
		}
	}
	c.library.Episodic = keep

	return result
}

// gatherSeeds pulls the strongest episodic and continuity material plus
// any idle-activity notes for dream imagery.
func (c *MemoryConsolidationEngine) gatherSeeds(state *NovaState, idleSeeds []string) []string {
	var seeds []string
	for _, m := range c.library.Recall(state.LastUserMessage, state.Emotion.Primary, 3) {
		seeds = append(seeds, m.Summary)
	}
	for _, s := range state.ContinuityMemory {
		seeds = append(seeds, s.Text)
	}
	seeds = append(seeds, idleSeeds...)
	return seeds
}
