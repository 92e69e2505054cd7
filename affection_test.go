package novacore

import "testing"

// ══════════════════════════════════════════════
// Affection Engine tests
// ══════════════════════════════════════════════

func TestAffectionEngine_StartingState(t *testing.T) {
	a := NewAffectionEngine()
	s := a.State()
	if s.Affection != 0.3 || s.Comfort != 0.5 {
		t.Fatalf("unexpected starting state: %+v", s)
	}
	if s.Arousal != 0 || s.Fluster != 0 || s.Readiness != 0 {
		t.Fatalf("derived scalars should start at zero: %+v", s)
	}
}

func TestAffectionEngine_AffectionTrailsTrust(t *testing.T) {
	a := NewAffectionEngine()
	rel := RelationshipSnapshot{Trust: 0.9}
	mood := MoodSnapshot{Valence: 0.1} // below the warmth bonus cutoff
	emo := EmotionSnapshot{Intensity: 0.2, Stability: 0.3}

	prev := a.State().Affection
	for i := 0; i < 50; i++ {
		s := a.Update(rel, mood, emo, 0.8)
		if s.Affection < prev {
			t.Fatalf("affection should climb toward trust, dipped at turn %d", i)
		}
		prev = s.Affection
	}
	if prev < 0.8 {
		t.Fatalf("affection should approach trust 0.9 after 50 turns, got %v", prev)
	}
}

func TestAffectionEngine_FlusterNeedsClosenessAndLowMaturity(t *testing.T) {
	a := NewAffectionEngine()
	a.state.Affection = 0.6

	mood := MoodSnapshot{Valence: 0.5}
	emo := EmotionSnapshot{Intensity: 0.2, Stability: 0.3}

	s := a.Update(RelationshipSnapshot{Trust: 0.6}, mood, emo, 0.8)
	if s.Fluster != 0 {
		t.Fatalf("high maturity should suppress fluster, got %v", s.Fluster)
	}

	s = a.Update(RelationshipSnapshot{Trust: 0.6}, mood, emo, 0.3)
	if s.Fluster <= 0 {
		t.Fatal("low maturity with high closeness should build fluster")
	}
}

func TestAffectionEngine_ArousalTracksIntensity(t *testing.T) {
	a := NewAffectionEngine()
	mood := MoodSnapshot{Valence: 0.5}

	s := a.Update(RelationshipSnapshot{Trust: 0.3}, mood, EmotionSnapshot{Intensity: 0.2}, 0.6)
	if s.Arousal != 0 {
		t.Fatalf("low intensity should not raise arousal, got %v", s.Arousal)
	}

	s = a.Update(RelationshipSnapshot{Trust: 0.3}, mood, EmotionSnapshot{Intensity: 0.8}, 0.6)
	if s.Arousal <= 0 {
		t.Fatal("high intensity should raise arousal")
	}
}

func TestAffectionEngine_ReadinessBlend(t *testing.T) {
	a := NewAffectionEngine()
	a.state = AffectionState{Affection: 1, Arousal: 1, Comfort: 1}

	s := a.Update(RelationshipSnapshot{Trust: 1}, MoodSnapshot{Valence: 0.9}, EmotionSnapshot{Intensity: 0.9, Stability: 0.9}, 0.9)
	if s.Readiness != 1 {
		t.Fatalf("readiness should clamp at 1, got %v", s.Readiness)
	}

	b := NewAffectionEngine()
	b.state = AffectionState{}
	s = b.Update(RelationshipSnapshot{}, MoodSnapshot{Valence: 0.1}, EmotionSnapshot{}, 0.9)
	if s.Readiness != 0 {
		t.Fatalf("empty state should yield zero readiness, got %v", s.Readiness)
	}
}
