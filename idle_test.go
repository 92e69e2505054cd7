package novacore

import (
	"strings"
	"testing"
)

// ══════════════════════════════════════════════
// Idle line and dream synthesis tests
// ══════════════════════════════════════════════

func TestGenerateIdlePingLine_PoolsByEmotion(t *testing.T) {
	r := NewRand(1)
	cases := []struct {
		primary Emotion
		pool    []string
	}{
		{EmotionHappy, idleHappyLines},
		{EmotionMelancholy, idleSadLines},
		{EmotionFrustrated, idleAnnoyedLines},
		{EmotionCurious, idleNeutralLines},
	}
	for _, tc := range cases {
		line := generateIdlePingLine(r, tc.primary)
		if !inLines(line, tc.pool) {
			t.Errorf("%s: line %q not in its pool", tc.primary, line)
		}
	}
}

func TestReturnReaction_Tiers(t *testing.T) {
	cases := []struct {
		name    string
		elapsed float64
		fusion  FusionLabel
		last    string
		want    string
	}{
		{"quick wc", 30, FusionNone, "wc, one sec", "That was quick~"},
		{"quick plain", 30, FusionNone, "hold on", "Oh—there you are."},
		{"brb insecure", 500, FusionInsecure, "brb", "Oh… you're back. I was a little worried."},
		{"brb mischievous", 500, FusionMischievous, "brb!", "That wasn't a 'b', mister~"},
		{"brb plain", 500, FusionNone, "brb", "Welcome back."},
		{"hour clingy", 3600, FusionClingy, "", "You were gone a while… I missed you."},
		{"hour wc", 3600, FusionNone, "wc", "You didn't fall in, right?"},
		{"hour plain", 3600, FusionNone, "", "There you are. Took a bit."},
		{"long bitter", 9000, FusionBitter, "", "…You left me alone that long?"},
		{"long plain", 9000, FusionNone, "", "Hi… welcome back."},
	}
	for _, tc := range cases {
		if got := returnReaction(tc.elapsed, tc.fusion, tc.last); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSynthesizeDream_SadImagery(t *testing.T) {
	r := NewRand(3)
	dream, tone := synthesizeDream(r, EmotionSad, FusionNone, nil)

	if tone != EmotionSad {
		t.Fatalf("tone = %s, want sad", tone)
	}
	if !strings.Contains(dream, dreamToneLines[EmotionSad]) {
		t.Fatalf("dream missing tone line: %q", dream)
	}
	sadImagery := []string{"rain", "long hallways", "empty rooms", "silence", "fog"}
	found := 0
	for _, img := range sadImagery {
		if strings.Contains(dream, img) {
			found++
		}
	}
	if found < 3 {
		t.Fatalf("expected three sad symbols, got %d in %q", found, dream)
	}
}

func TestSynthesizeDream_UnknownEmotionFallsBackNeutral(t *testing.T) {
	r := NewRand(1)
	dream, tone := synthesizeDream(r, EmotionBored, FusionNone, nil)
	if tone != EmotionNeutral {
		t.Fatalf("tone = %s, want neutral fallback", tone)
	}
	if !strings.Contains(dream, "The feeling lingered after I woke up.") {
		t.Fatalf("missing fallback tone line: %q", dream)
	}
}

func TestSynthesizeDream_SeedBleedsIn(t *testing.T) {
	r := NewRand(1)
	dream, _ := synthesizeDream(r, EmotionHappy, FusionNone, []string{"the old duck drawing"})
	if !strings.Contains(dream, "the old duck drawing") {
		t.Fatalf("seed should bleed into the dream: %q", dream)
	}
}

func TestSampleStrings_DistinctAndBounded(t *testing.T) {
	r := NewRand(1)
	pool := []string{"a", "b", "c", "d", "e"}

	out := sampleStrings(r, pool, 3)
	if len(out) != 3 {
		t.Fatalf("len = %d", len(out))
	}
	seen := map[string]bool{}
	for _, s := range out {
		if seen[s] {
			t.Fatalf("duplicate sample %q in %v", s, out)
		}
		seen[s] = true
	}

	if out := sampleStrings(r, pool[:2], 5); len(out) != 2 {
		t.Fatalf("oversized k should clamp to pool size, got %v", out)
	}
}
