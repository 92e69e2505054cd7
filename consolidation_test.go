package novacore

import (
	"testing"

	"github.com/rs/zerolog"
)

// ══════════════════════════════════════════════
// Memory Consolidation tests
// ══════════════════════════════════════════════

func newConsolidation() (*MemoryConsolidationEngine, *MemoryLibrary) {
	l := NewMemoryLibrary(NewMemoryStateStore(), NewRand(1), zerolog.Nop())
	return NewMemoryConsolidationEngine(l, NewRand(1)), l
}

func TestConsolidate_PromotesStrongMoments(t *testing.T) {
	c, l := newConsolidation()
	state := &NovaState{
		Emotion:      EmotionSnapshot{Intensity: 0.9},
		Relationship: RelationshipSnapshot{Trust: 0.8},
		Affection:    AffectionState{Affection: 0.7, Fluster: 0.5, Arousal: 0.3},
		ShortTerm: []ShortTermRecord{
			{Speaker: "user", Text: "I love talking to you about everything", Emotion: EmotionHappy, Turn: 1},
		},
	}

	c.Consolidate(state)

	if len(l.Episodic) != 1 {
		t.Fatalf("expected one promoted memory, got %d", len(l.Episodic))
	}
	mem := l.Episodic[0]
	if mem.Summary != "I love talking to you about everything" {
		t.Fatalf("summary = %q", mem.Summary)
	}
	if mem.OverallStrength <= promotionThreshold {
		t.Fatalf("promoted strength should exceed the threshold, got %v", mem.OverallStrength)
	}
	if len(state.ShortTerm) != 0 {
		t.Fatal("short-term buffer must be cleared after consolidation")
	}
}

func TestConsolidate_DiscardsFlatMoments(t *testing.T) {
	c, l := newConsolidation()
	state := &NovaState{
		ShortTerm: []ShortTermRecord{
			{Speaker: "user", Text: "ok", Turn: 1},
			{Speaker: "agent", Text: "mm", Turn: 1},
		},
	}

	c.Consolidate(state)

	if len(l.Episodic) != 0 {
		t.Fatalf("flat moments should not be promoted: %+v", l.Episodic)
	}
	if len(state.ShortTerm) != 0 {
		t.Fatal("buffer is cleared even when nothing qualifies")
	}
}

func TestConsolidate_PromotionBoundaryIsStrict(t *testing.T) {
	if promotes(promotionThreshold) {
		t.Fatal("strength landing exactly on the threshold must stay short-term")
	}
	if promotes(promotionThreshold - 1e-9) {
		t.Fatal("strength below the threshold must stay short-term")
	}
	if !promotes(promotionThreshold + 1e-9) {
		t.Fatal("strength one unit above the threshold must promote")
	}
}

func TestConsolidate_DecaysAndPrunesEpisodic(t *testing.T) {
	c, l := newConsolidation()
	strong := &EpisodicMemory{Summary: "strong", OverallStrength: 0.5}
	fading := &EpisodicMemory{Summary: "fading", OverallStrength: 0.055}
	l.Episodic = []*EpisodicMemory{strong, fading}

	c.Consolidate(&NovaState{})

	if len(l.Episodic) != 1 || l.Episodic[0] != strong {
		t.Fatalf("the fading entry should be pruned: %+v", l.Episodic)
	}
	if !almostEqual(strong.OverallStrength, 0.5-baseDecayRate-ageDecayRate) {
		t.Fatalf("strength = %v", strong.OverallStrength)
	}
	if strong.TurnsAgo != 1 {
		t.Fatalf("turns ago = %d, want 1", strong.TurnsAgo)
	}
}

func TestConsolidate_OlderMemoriesDecayFaster(t *testing.T) {
	c, l := newConsolidation()
	fresh := &EpisodicMemory{Summary: "fresh", OverallStrength: 0.5}
	ancient := &EpisodicMemory{Summary: "ancient", OverallStrength: 0.5, TurnsAgo: 100}
	l.Episodic = []*EpisodicMemory{fresh, ancient}

	c.Consolidate(&NovaState{})

	if ancient.OverallStrength >= fresh.OverallStrength {
		t.Fatalf("age should accelerate decay: fresh=%v ancient=%v",
			fresh.OverallStrength, ancient.OverallStrength)
	}
}

func TestSleepCycle_ProducesDream(t *testing.T) {
	c, l := newConsolidation()
	l.AddEpisodic(&EpisodicMemory{Summary: "the rainy day talk", OverallStrength: 0.8})

	state := &NovaState{
		Emotion:         EmotionSnapshot{Primary: EmotionSad, Intensity: 0},
		LastUserMessage: "rainy day",
	}

	res := c.SleepCycle(state, []string{"doodling quietly"})

	if res.Text == "" {
		t.Fatal("dream text should never be empty")
	}
	if res.Tone == "" {
		t.Fatal("dream tone should be set")
	}
	if res.MoodShift != 0.05 && res.MoodShift != -0.05 && res.MoodShift != 0 {
		t.Fatalf("mood shift = %v", res.MoodShift)
	}
	// Zero intensity means the lesson draw can never succeed.
	if res.BecameFact {
		t.Fatal("no lesson should form at zero intensity")
	}
}

func TestSleepCycle_LightPrune(t *testing.T) {
	c, l := newConsolidation()
	mem := &EpisodicMemory{Summary: "kept", OverallStrength: 0.5}
	l.Episodic = []*EpisodicMemory{mem}

	c.SleepCycle(&NovaState{Emotion: EmotionSnapshot{Primary: EmotionNeutral}}, nil)

	// Sleep pruning neither ages nor removes healthy entries.
	if mem.TurnsAgo != 0 {
		t.Fatalf("sleep pruning must not age entries, turnsAgo = %d", mem.TurnsAgo)
	}
	if !almostEqual(mem.OverallStrength, 0.5-sleepPruneDecayRate) {
		t.Fatalf("strength = %v", mem.OverallStrength)
	}
}

func TestSleepCycle_LessonDistillsAtFullIntensity(t *testing.T) {
	c, l := newConsolidation()
	state := &NovaState{Emotion: EmotionSnapshot{Primary: EmotionHappy, Intensity: 1}}

	sawLesson := false
	for i := 0; i < 100 && !sawLesson; i++ {
		res := c.SleepCycle(state, nil)
		sawLesson = res.BecameFact
	}
	if !sawLesson {
		t.Fatal("a lesson should eventually distill at full intensity")
	}
	if len(l.Semantic) == 0 {
		t.Fatal("distilled lessons should land in the semantic store")
	}
}
