package novacore

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────
// Emotion Engine — keyword classification + stimulus reinforcement
// ──────────────────────────────────────────────

// emotionKeywords associates each emotion with its trigger words.
type emotionKeywords struct {
	emotion  Emotion
	keywords []string
}

// Declared as an ordered slice so arg-max ties resolve deterministically
// before the random fallback kicks in.
var keywordTable = []emotionKeywords{
	{EmotionHappy, []string{"smile", "orange", "fun", "sun", "good"}},
	{EmotionNostalgic, []string{"drawing", "duck", "memory", "paper", "old", "rain"}},
	{EmotionCurious, []string{"what", "why", "how", "unknown", "new", "mystery"}},
	{EmotionExcited, []string{"game", "win", "yay", "party", "start"}},
	{EmotionBored, []string{"nothing", "wait", "blank", "idle"}},
	{EmotionAfraid, []string{"glass", "sharp", "danger", "hurt", "pain", "blood"}},
	{EmotionSad, []string{"broken", "lost", "goodbye", "crack", "forgot", "gone"}},
	{EmotionNeutral, nil},
}

// secondaryShades lists the shade emotions each primary pulls in.
var secondaryShades = map[Emotion][]Emotion{
	EmotionHappy:     {EmotionCurious, EmotionExcited},
	EmotionNostalgic: {EmotionSad, EmotionWarm},
	EmotionCurious:   {EmotionNeutral, "hopeful"},
	EmotionAfraid:    {"alert", "cautious"},
	EmotionSad:       {EmotionNostalgic, EmotionTired},
	EmotionBored:     {"blank", "restless"},
	EmotionExcited:   {EmotionHappy, "eager"},
	EmotionNeutral:   nil,
}

// Reinforcement thresholds. A stimulus flips to afraid once its running
// reinforcement falls to the avoidance threshold, and adopts a new emotion
// once it climbs to the adoption threshold.
const (
	avoidanceThreshold = -2
	adoptionThreshold  = 2
	continuityBonus    = 0.5
)

// StimulusEntry is one row of the persisted stimulus→emotion map.
type StimulusEntry struct {
	Emotion       Emotion   `json:"emotion"`
	Reinforcement int       `json:"reinforcement"`
	Count         int       `json:"count"`
	LastSeen      time.Time `json:"last_seen"`
}

// StimulusMap is the persistent reinforcement memory: what each exact
// stimulus string has come to mean emotionally. Loaded at startup, written
// at shutdown; any I/O fault degrades to an empty map.
type StimulusMap struct {
	entries map[string]*StimulusEntry
	store   StateStore
	log     zerolog.Logger
}

// LoadStimulusMap reads the persisted map from the store. Load faults are
// swallowed: the engine starts with an empty memory instead of failing.
func LoadStimulusMap(store StateStore, log zerolog.Logger) *StimulusMap {
	m := &StimulusMap{
		entries: make(map[string]*StimulusEntry),
		store:   store,
		log:     log,
	}
	if store == nil {
		return m
	}
	data, found, err := store.Load(KeyStimulusMap)
	if err != nil {
		log.Warn().Err(err).Msg("stimulus map load failed, starting empty")
		return m
	}
	if !found {
		return m
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		log.Warn().Err(err).Msg("stimulus map corrupt, starting empty")
		m.entries = make(map[string]*StimulusEntry)
	}
	return m
}

// Flush writes the map back to the store. Best effort.
func (m *StimulusMap) Flush() {
	if m.store == nil {
		return
	}
	data, err := json.Marshal(m.entries)
	if err != nil {
		m.log.Warn().Err(err).Msg("stimulus map encode failed")
		return
	}
	if err := m.store.Save(KeyStimulusMap, data); err != nil {
		m.log.Warn().Err(err).Msg("stimulus map save failed")
	}
}

// Len returns the number of remembered stimuli.
func (m *StimulusMap) Len() int { return len(m.entries) }

// Avoided reports whether the stimulus has accumulated enough negative
// reinforcement to trigger outright avoidance.
func (m *StimulusMap) Avoided(stimulus string) bool {
	e, ok := m.entries[stimulus]
	return ok && e.Emotion == EmotionAfraid && e.Reinforcement <= avoidanceThreshold
}

// Remembered returns the stored emotion for the exact stimulus, if any.
func (m *StimulusMap) Remembered(stimulus string) (Emotion, bool) {
	e, ok := m.entries[stimulus]
	if !ok {
		return "", false
	}
	return e.Emotion, true
}

// Reinforce updates or creates the entry for a stimulus. Positive delta
// strengthens the association; negative delta pushes toward fear.
func (m *StimulusMap) Reinforce(stimulus string, emotion Emotion, delta int) {
	e, ok := m.entries[stimulus]
	if !ok {
		e = &StimulusEntry{Emotion: emotion}
		m.entries[stimulus] = e
	}
	e.Reinforcement += delta
	e.Count++
	e.LastSeen = time.Now()

	if delta < 0 && e.Reinforcement <= avoidanceThreshold {
		e.Emotion = EmotionAfraid
	} else if delta > 0 && e.Reinforcement >= adoptionThreshold {
		e.Emotion = emotion
	}
}

// EmotionEngine classifies incoming text into the next primary emotion and
// maintains the stimulus reinforcement map.
type EmotionEngine struct {
	Memory *StimulusMap
	rand   *Rand
}

// NewEmotionEngine creates an engine over the given stimulus memory.
func NewEmotionEngine(memory *StimulusMap, rand *Rand) *EmotionEngine {
	return &EmotionEngine{Memory: memory, rand: rand}
}

// Classify computes the emotional reaction to heard text and mutates the
// state in place: primary, history, mood, secondary shades, and fusion.
func (e *EmotionEngine) Classify(state *EmotionalState, heardText string) {
	stimulus := strings.ToLower(strings.TrimSpace(heardText))

	// 1) Fear avoidance short-circuits everything else.
	if e.Memory.Avoided(stimulus) {
		state.Push(EmotionAfraid)
		state.Mood = EmotionAfraid
		state.Secondary = []Emotion{"alert", "cautious"}
		e.raiseIntensity(state, 0.3)
		return
	}

	// 2) Exact-stimulus recall reinforces the remembered association.
	primary, remembered := e.Memory.Remembered(stimulus)
	if remembered {
		e.Memory.Reinforce(stimulus, primary, +1)
	} else {
		// 3) Keyword scoring with a light continuity bonus.
		primary = e.scoreKeywords(state, stimulus)
		e.Memory.Reinforce(stimulus, primary, 0)
	}

	// 4) Apply the new primary and recompute the trend.
	state.Push(primary)
	state.Mood = CalculateMood(state.History)

	// 5) Secondary shades from primary, mood, and baseline.
	state.Secondary = deriveSecondary(primary, state.Mood, state.Baseline)

	// 6) Derived scalars.
	e.updateScalars(state, primary)

	// 7) Fusion layer. Spikes come from higher-level systems; none here.
	UpdateFusion(state, nil)
}

func (e *EmotionEngine) scoreKeywords(state *EmotionalState, stimulus string) Emotion {
	best := EmotionNeutral
	bestScore := 0.0
	total := 0.0
	for _, row := range keywordTable {
		score := 0.0
		for _, w := range row.keywords {
			if strings.Contains(stimulus, w) {
				score++
			}
		}
		if row.emotion == state.Primary {
			score += continuityBonus
		}
		total += score
		if score > bestScore {
			best = row.emotion
			bestScore = score
		}
	}
	// Nothing matched at all: fall back to a coin flip between the two
	// designated idle reactions.
	if total == 0 {
		if e.rand.Float64() < 0.5 {
			return EmotionCurious
		}
		return EmotionNeutral
	}
	return best
}

func deriveSecondary(primary, mood, baseline Emotion) []Emotion {
	combined := make([]Emotion, 0, 6)
	add := func(list []Emotion) {
		for _, s := range list {
			if s == primary || s == mood {
				continue
			}
			dup := false
			for _, cur := range combined {
				if cur == s {
					dup = true
					break
				}
			}
			if !dup {
				combined = append(combined, s)
			}
		}
	}
	add(secondaryShades[primary])
	add(secondaryShades[mood])
	add(secondaryShades[baseline])
	return combined
}

// updateScalars adjusts intensity and stability from the transition.
// Repeating the same primary steadies the state; switching shakes it.
func (e *EmotionEngine) updateScalars(state *EmotionalState, primary Emotion) {
	n := len(state.History)
	if n >= 2 && state.History[n-2] == primary {
		state.Intensity = clamp01(state.Intensity + 0.1)
		state.Stability = clamp01(state.Stability + 0.05)
	} else {
		state.Intensity = clamp01(state.Intensity*0.7 + 0.25)
		state.Stability = clamp01(state.Stability - 0.05)
	}
	if primary == EmotionNeutral {
		state.Intensity = clamp01(state.Intensity * 0.6)
		state.Stability = clamp01(state.Stability + 0.05)
	}
}

func (e *EmotionEngine) raiseIntensity(state *EmotionalState, amount float64) {
	state.Intensity = clamp01(state.Intensity + amount)
	state.Stability = clamp01(state.Stability - amount/2)
}
