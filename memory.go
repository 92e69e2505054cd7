package novacore

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ──────────────────────────────────────────────
// Memory Library — episodic, semantic, emotional
// ──────────────────────────────────────────────

// EpisodicMemory is a decaying, scored record of a meaningful exchange.
// Strength only decreases absent reinforcement; entries are pruned once it
// falls below the survival floor.
type EpisodicMemory struct {
	ID       string    `json:"id"`
	Created  time.Time `json:"created"`
	Summary  string    `json:"summary"`
	Details  string    `json:"details,omitempty"`
	Emotions []Emotion `json:"emotions,omitempty"`
	Tags     []string  `json:"tags,omitempty"`

	EmotionalWeight    float64 `json:"emotional_weight"`
	RelationshipWeight float64 `json:"relationship_weight"`
	Novelty            float64 `json:"novelty"`
	OverallStrength    float64 `json:"overall_strength"`

	TurnsAgo     int        `json:"turns_ago"`
	RecallCount  int        `json:"recall_count"`
	LastRecalled *time.Time `json:"last_recalled,omitempty"`
}

// SemanticFact is a key→value belief. Stable facts never auto-delete;
// non-stable facts decay and may be forgotten.
type SemanticFact struct {
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	Importance float64   `json:"importance"`
	Stable     bool      `json:"stable"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`

	RecallCount  int        `json:"recall_count"`
	LastRecalled *time.Time `json:"last_recalled,omitempty"`
}

// EmotionalEvent logs an emotional moment, optionally linked to an
// episodic entry.
type EmotionalEvent struct {
	At         time.Time `json:"at"`
	Emotion    Emotion   `json:"emotion"`
	Intensity  float64   `json:"intensity"`
	Context    string    `json:"context"`
	EpisodicID string    `json:"episodic_id,omitempty"`
}

// MemoryLibrary holds the long-lived memory collections. All reads and
// writes are buffered in memory and flushed explicitly through the
// StateStore — loaded in full at startup, saved in full on Flush.
type MemoryLibrary struct {
	Episodic  []*EpisodicMemory
	Semantic  map[string]*SemanticFact
	Emotional []EmotionalEvent

	store StateStore
	rand  *Rand
	log   zerolog.Logger
}

// NewMemoryLibrary creates an empty library over the given store.
func NewMemoryLibrary(store StateStore, rand *Rand, log zerolog.Logger) *MemoryLibrary {
	return &MemoryLibrary{
		Semantic: make(map[string]*SemanticFact),
		store:    store,
		rand:     rand,
		log:      log,
	}
}

// Load reads all collections from the store. Faults degrade to empty
// collections and a warn line; the library is always usable afterward.
func (l *MemoryLibrary) Load() {
	if l.store == nil {
		return
	}
	load := func(key string, v interface{}) {
		data, found, err := l.store.Load(key)
		if err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("memory load failed, starting empty")
			return
		}
		if !found {
			return
		}
		if err := json.Unmarshal(data, v); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("memory corrupt, starting empty")
		}
	}
	load(KeyEpisodic, &l.Episodic)
	var facts []*SemanticFact
	load(KeySemantic, &facts)
	l.Semantic = make(map[string]*SemanticFact, len(facts))
	for _, f := range facts {
		l.Semantic[f.Key] = f
	}
	load(KeyEmotionalLog, &l.Emotional)
}

// Flush writes all collections back to the store. Best effort; failures
// are logged and swallowed.
func (l *MemoryLibrary) Flush() {
	if l.store == nil {
		return
	}
	save := func(key string, v interface{}) {
		data, err := json.Marshal(v)
		if err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("memory encode failed")
			return
		}
		if err := l.store.Save(key, data); err != nil {
			l.log.Warn().Err(err).Str("key", key).Msg("memory save failed")
		}
	}
	save(KeyEpisodic, l.Episodic)
	facts := make([]*SemanticFact, 0, len(l.Semantic))
	for _, f := range l.Semantic {
		facts = append(facts, f)
	}
	sort.Slice(facts, func(i, j int) bool { return facts[i].Key < facts[j].Key })
	save(KeySemantic, facts)
	save(KeyEmotionalLog, l.Emotional)
}

// ─── Semantic facts ───

// RememberFact stores or updates a fact. Importance only ratchets up and
// the stable flag is sticky.
func (l *MemoryLibrary) RememberFact(key, value string, importance float64, stable bool) {
	now := time.Now()
	importance = clamp01(importance)

	if existing, ok := l.Semantic[key]; ok {
		existing.Value = value
		if importance > existing.Importance {
			existing.Importance = importance
		}
		existing.Stable = existing.Stable || stable
		existing.Updated = now
		return
	}
	l.Semantic[key] = &SemanticFact{
		Key:        key,
		Value:      value,
		Importance: importance,
		Stable:     stable,
		Created:    now,
		Updated:    now,
	}
}

// RecallFact returns a fact value and records the recall.
func (l *MemoryLibrary) RecallFact(key string) (string, bool) {
	f, ok := l.Semantic[key]
	if !ok {
		return "", false
	}
	f.RecallCount++
	now := time.Now()
	f.LastRecalled = &now
	return f.Value, true
}

// TopFacts returns up to limit of the most important facts, for context
// building.
func (l *MemoryLibrary) TopFacts(limit int) []*SemanticFact {
	facts := make([]*SemanticFact, 0, len(l.Semantic))
	for _, f := range l.Semantic {
		facts = append(facts, f)
	}
	sort.Slice(facts, func(i, j int) bool {
		if facts[i].Importance != facts[j].Importance {
			return facts[i].Importance > facts[j].Importance
		}
		return facts[i].RecallCount > facts[j].RecallCount
	})
	if len(facts) > limit {
		facts = facts[:limit]
	}
	return facts
}

// ─── Episodic memory ───

// AddEpisodic appends a new episodic entry. Strong emotions amplify
// importance slightly.
func (l *MemoryLibrary) AddEpisodic(mem *EpisodicMemory) *EpisodicMemory {
	if mem.ID == "" {
		mem.ID = uuid.NewString()
	}
	if mem.Created.IsZero() {
		mem.Created = time.Now()
	}
	mem.OverallStrength = clamp01(mem.OverallStrength)
	for _, e := range mem.Emotions {
		switch e {
		case EmotionSad, EmotionHurt, EmotionAfraid, EmotionNostalgic, EmotionHappy:
			mem.OverallStrength = clamp01(mem.OverallStrength + 0.15)
		default:
			continue
		}
		break
	}
	l.Episodic = append(l.Episodic, mem)
	return mem
}

// Recall scores entries against a query with an optional emotion bias and
// returns up to limit matches, recording the recall on each.
func (l *MemoryLibrary) Recall(query string, bias Emotion, limit int) []*EpisodicMemory {
	if len(l.Episodic) == 0 {
		return nil
	}
	const minScore = 0.15

	type scored struct {
		score float64
		mem   *EpisodicMemory
	}
	var hits []scored
	for _, mem := range l.Episodic {
		s := l.episodicScore(mem, query, bias)
		if s < minScore {
			continue
		}
		hits = append(hits, scored{s, mem})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	now := time.Now()
	out := make([]*EpisodicMemory, len(hits))
	for i, h := range hits {
		h.mem.RecallCount++
		h.mem.LastRecalled = &now
		out[i] = h.mem
	}
	return out
}

func (l *MemoryLibrary) episodicScore(mem *EpisodicMemory, query string, bias Emotion) float64 {
	q := lowerTrim(query)
	base := 0.1
	if q != "" {
		blob := strings.ToLower(mem.Summary + " " + mem.Details + " " + strings.Join(mem.Tags, " "))
		words := strings.Fields(q)
		matches := 0
		for _, w := range words {
			if strings.Contains(blob, w) {
				matches++
			}
		}
		base = float64(matches) / float64(len(words)+1)
	}

	ageDays := time.Since(mem.Created).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	recency := 1.0 / (1.0 + ageDays)

	score := base*0.5 + recency*0.25 + mem.OverallStrength*0.25

	if bias != "" {
		for _, e := range mem.Emotions {
			if e == bias {
				score *= 1.3
				break
			}
		}
	}
	return score
}

// Snippets converts episodic entries into intent-layer memory snippets.
func (l *MemoryLibrary) Snippets(query string, bias Emotion, limit int) []MemorySnippet {
	mems := l.Recall(query, bias, limit)
	out := make([]MemorySnippet, 0, len(mems))
	for _, m := range mems {
		out = append(out, MemorySnippet{
			Text:   m.Summary,
			Weight: m.OverallStrength,
			Kind:   MemoryEpisodicK,
		})
	}
	return out
}

// ─── Emotional history ───

// RecordEmotionEvent logs one emotional moment.
func (l *MemoryLibrary) RecordEmotionEvent(emotion Emotion, intensity float64, context, episodicID string) {
	l.Emotional = append(l.Emotional, EmotionalEvent{
		At:         time.Now(),
		Emotion:    emotion,
		Intensity:  clamp01(intensity),
		Context:    strings.TrimSpace(context),
		EpisodicID: episodicID,
	})
}

// RecentEmotionalTrend returns the intensity-weighted distribution of
// emotions within the window.
func (l *MemoryLibrary) RecentEmotionalTrend(window time.Duration) map[Emotion]float64 {
	cutoff := time.Now().Add(-window)
	counts := make(map[Emotion]float64)
	total := 0.0
	for _, ev := range l.Emotional {
		if ev.At.Before(cutoff) {
			continue
		}
		counts[ev.Emotion] += ev.Intensity
		total += ev.Intensity
	}
	if total <= 0 {
		return map[Emotion]float64{}
	}
	for k := range counts {
		counts[k] /= total
	}
	return counts
}

// DominantTrend returns the strongest recent emotion, or neutral.
func (l *MemoryLibrary) DominantTrend(window time.Duration) Emotion {
	trend := l.RecentEmotionalTrend(window)
	best := EmotionNeutral
	bestV := 0.0
	for e, v := range trend {
		if v > bestV {
			best = e
			bestV = v
		}
	}
	return best
}

// ─── Forgetting ───

// RunDecay applies the long-horizon forgetting rules: old, unimportant,
// never-recalled episodic entries drop; non-stable low-importance facts are
// forgotten; everything else softly loses importance. Call on shutdown or
// wake, not per turn (per-turn decay lives in the consolidation engine).
func (l *MemoryLibrary) RunDecay() {
	now := time.Now()

	keep := l.Episodic[:0]
	for _, mem := range l.Episodic {
		ageDays := now.Sub(mem.Created).Hours() / 24

		if mem.OverallStrength >= 0.85 {
			keep = append(keep, mem)
			continue
		}
		if mem.RecallCount == 0 && mem.OverallStrength < 0.4 && ageDays > 14 {
			continue
		}
		if ageDays > 7 && mem.OverallStrength > 0.3 {
			mem.OverallStrength *= 0.98
		}
		keep = append(keep, mem)
	}
	l.Episodic = keep

	for key, f := range l.Semantic {
		if f.Stable {
			continue
		}
		ageDays := now.Sub(f.Created).Hours() / 24
		lastUsedDays := ageDays
		if f.LastRecalled != nil {
			lastUsedDays = now.Sub(*f.LastRecalled).Hours() / 24
		}
		if f.Importance < 0.3 && ageDays > 14 && lastUsedDays > 7 {
			delete(l.Semantic, key)
		} else if ageDays > 7 && f.Importance > 0.3 {
			f.Importance *= 0.99
		}
	}
}
