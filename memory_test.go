package novacore

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ══════════════════════════════════════════════
// Memory Library tests
// ══════════════════════════════════════════════

func newTestLibrary() *MemoryLibrary {
	return NewMemoryLibrary(NewMemoryStateStore(), NewRand(1), zerolog.Nop())
}

func TestRememberFact_ImportanceRatchetsUp(t *testing.T) {
	l := newTestLibrary()
	l.RememberFact("favorite_color", "orange", 0.8, false)
	l.RememberFact("favorite_color", "blue", 0.2, false)

	f := l.Semantic["favorite_color"]
	if f.Value != "blue" {
		t.Fatalf("value should update, got %q", f.Value)
	}
	if f.Importance != 0.8 {
		t.Fatalf("importance should never drop, got %v", f.Importance)
	}
}

func TestRememberFact_StableFlagIsSticky(t *testing.T) {
	l := newTestLibrary()
	l.RememberFact("name", "Nova", 0.9, true)
	l.RememberFact("name", "Nova", 0.9, false)
	if !l.Semantic["name"].Stable {
		t.Fatal("stable flag must not be cleared by later writes")
	}
}

func TestRecallFact_RecordsRecall(t *testing.T) {
	l := newTestLibrary()
	l.RememberFact("hobby", "sketching ducks", 0.5, false)

	v, ok := l.RecallFact("hobby")
	if !ok || v != "sketching ducks" {
		t.Fatalf("recall failed: %q %v", v, ok)
	}
	f := l.Semantic["hobby"]
	if f.RecallCount != 1 || f.LastRecalled == nil {
		t.Fatalf("recall bookkeeping missing: %+v", f)
	}

	if _, ok := l.RecallFact("nope"); ok {
		t.Fatal("unknown key should not be found")
	}
}

func TestTopFacts_OrdersByImportance(t *testing.T) {
	l := newTestLibrary()
	l.RememberFact("a", "1", 0.2, false)
	l.RememberFact("b", "2", 0.9, false)
	l.RememberFact("c", "3", 0.5, false)

	top := l.TopFacts(2)
	if len(top) != 2 || top[0].Key != "b" || top[1].Key != "c" {
		t.Fatalf("unexpected ordering: %+v", top)
	}
}

func TestAddEpisodic_StrongEmotionAmplifiesOnce(t *testing.T) {
	l := newTestLibrary()
	mem := l.AddEpisodic(&EpisodicMemory{
		Summary:         "we talked about the old duck drawing",
		Emotions:        []Emotion{EmotionSad, EmotionHappy},
		OverallStrength: 0.5,
	})
	if !almostEqual(mem.OverallStrength, 0.65) {
		t.Fatalf("strength = %v, want one-time +0.15", mem.OverallStrength)
	}
	if mem.ID == "" || mem.Created.IsZero() {
		t.Fatal("identity fields should be filled in")
	}
}

func TestRecall_ScoresAndBias(t *testing.T) {
	l := newTestLibrary()
	l.AddEpisodic(&EpisodicMemory{
		Summary:         "we watched the rain together",
		Emotions:        []Emotion{EmotionNostalgic},
		OverallStrength: 0.5,
	})
	l.AddEpisodic(&EpisodicMemory{
		Summary:         "a game we played last week",
		OverallStrength: 0.5,
	})

	hits := l.Recall("rain on the window", "", 3)
	if len(hits) == 0 || hits[0].Summary != "we watched the rain together" {
		t.Fatalf("keyword match should rank first: %+v", hits)
	}
	if hits[0].RecallCount != 1 || hits[0].LastRecalled == nil {
		t.Fatal("recall bookkeeping missing on episodic entry")
	}

	plain := l.episodicScore(l.Episodic[0], "rain", "")
	biased := l.episodicScore(l.Episodic[0], "rain", EmotionNostalgic)
	if !almostEqual(biased, plain*1.3) {
		t.Fatalf("bias should multiply by 1.3: %v vs %v", plain, biased)
	}
}

func TestRecall_MinScoreFiltersNoise(t *testing.T) {
	l := newTestLibrary()
	old := time.Now().Add(-60 * 24 * time.Hour)
	l.AddEpisodic(&EpisodicMemory{
		Summary:         "something forgettable",
		Created:         old,
		OverallStrength: 0.1,
	})

	if hits := l.Recall("completely unrelated query words", "", 3); len(hits) != 0 {
		t.Fatalf("weak old entries should not surface: %+v", hits)
	}
}

func TestSnippets_CarriesStrengthAsWeight(t *testing.T) {
	l := newTestLibrary()
	l.AddEpisodic(&EpisodicMemory{Summary: "the rainy day talk", OverallStrength: 0.8})

	snips := l.Snippets("rainy day", "", 2)
	if len(snips) != 1 {
		t.Fatalf("snippets = %+v", snips)
	}
	if snips[0].Kind != MemoryEpisodicK || snips[0].Weight != 0.8 {
		t.Fatalf("snippet = %+v", snips[0])
	}
}

func TestEmotionalTrend_WeightedByIntensity(t *testing.T) {
	l := newTestLibrary()
	l.RecordEmotionEvent(EmotionSad, 0.9, "a rough turn", "")
	l.RecordEmotionEvent(EmotionHappy, 0.1, "a small joke", "")

	if got := l.DominantTrend(time.Hour); got != EmotionSad {
		t.Fatalf("dominant = %s, want sad", got)
	}

	trend := l.RecentEmotionalTrend(time.Hour)
	if !almostEqual(trend[EmotionSad]+trend[EmotionHappy], 1.0) {
		t.Fatalf("trend should normalize to 1: %+v", trend)
	}
}

func TestDominantTrend_EmptyWindowIsNeutral(t *testing.T) {
	l := newTestLibrary()
	if got := l.DominantTrend(time.Hour); got != EmotionNeutral {
		t.Fatalf("got %s, want neutral", got)
	}
}

func TestRunDecay_EpisodicRules(t *testing.T) {
	l := newTestLibrary()
	old := time.Now().Add(-20 * 24 * time.Hour)

	core := &EpisodicMemory{Summary: "core memory", Created: old, OverallStrength: 0.9}
	stale := &EpisodicMemory{Summary: "stale never recalled", Created: old, OverallStrength: 0.3}
	aging := &EpisodicMemory{Summary: "aging but loved", Created: old, OverallStrength: 0.6, RecallCount: 2}
	l.Episodic = []*EpisodicMemory{core, stale, aging}

	l.RunDecay()

	if len(l.Episodic) != 2 {
		t.Fatalf("expected the stale entry to drop, got %d entries", len(l.Episodic))
	}
	if core.OverallStrength != 0.9 {
		t.Fatalf("core memories never decay, got %v", core.OverallStrength)
	}
	if !almostEqual(aging.OverallStrength, 0.6*0.98) {
		t.Fatalf("aging entry should soften: %v", aging.OverallStrength)
	}
}

func TestRunDecay_SemanticRules(t *testing.T) {
	l := newTestLibrary()
	old := time.Now().Add(-20 * 24 * time.Hour)

	l.Semantic["stable"] = &SemanticFact{Key: "stable", Importance: 0.1, Stable: true, Created: old}
	l.Semantic["weak"] = &SemanticFact{Key: "weak", Importance: 0.1, Created: old}
	l.Semantic["strong"] = &SemanticFact{Key: "strong", Importance: 0.8, Created: old}

	l.RunDecay()

	if _, ok := l.Semantic["stable"]; !ok {
		t.Fatal("stable facts must never be forgotten")
	}
	if _, ok := l.Semantic["weak"]; ok {
		t.Fatal("weak old unused facts should be forgotten")
	}
	strong, ok := l.Semantic["strong"]
	if !ok || !almostEqual(strong.Importance, 0.8*0.99) {
		t.Fatalf("strong facts should only soften: %+v", strong)
	}
}

func TestMemoryLibrary_FlushAndLoadRoundTrip(t *testing.T) {
	store := NewMemoryStateStore()
	l := NewMemoryLibrary(store, NewRand(1), zerolog.Nop())
	l.AddEpisodic(&EpisodicMemory{Summary: "the rainy day talk", OverallStrength: 0.7})
	l.RememberFact("name", "Nova", 0.9, true)
	l.RecordEmotionEvent(EmotionHappy, 0.6, "good turn", "")
	l.Flush()

	reloaded := NewMemoryLibrary(store, NewRand(1), zerolog.Nop())
	reloaded.Load()

	if len(reloaded.Episodic) != 1 || reloaded.Episodic[0].Summary != "the rainy day talk" {
		t.Fatalf("episodic not restored: %+v", reloaded.Episodic)
	}
	if f, ok := reloaded.Semantic["name"]; !ok || f.Value != "Nova" || !f.Stable {
		t.Fatalf("semantic not restored: %+v", f)
	}
	if len(reloaded.Emotional) != 1 {
		t.Fatalf("emotional log not restored: %+v", reloaded.Emotional)
	}
}
