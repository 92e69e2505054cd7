package novacore

import (
	"strings"
	"testing"
)

// ══════════════════════════════════════════════
// Inner Voice tests
// ══════════════════════════════════════════════

func TestInnerVoice_ThresholdThoughts(t *testing.T) {
	v := NewInnerVoice()

	ctx := baseContext()
	ctx.Needs = NeedsSnapshot{Fatigue: 0.7, Affection: 0.6}
	ctx.Emotion = EmotionSnapshot{Primary: EmotionSad, Intensity: 0.6}
	ctx.Relationship.Trust = 0.8
	ctx.Maturity = 0.3

	thoughts := v.Generate(ctx)
	if len(thoughts) != 5 {
		t.Fatalf("expected 5 thoughts, got %d: %+v", len(thoughts), thoughts)
	}

	var sawTired, sawPout bool
	for _, th := range thoughts {
		if strings.Contains(th.Text, "tired") {
			sawTired = true
		}
		if strings.Contains(th.Text, "pout") {
			sawPout = true
		}
		if th.Weight <= 0 || th.Weight > 1 {
			t.Errorf("thought weight out of range: %+v", th)
		}
	}
	if !sawTired || !sawPout {
		t.Fatalf("missing expected thoughts: %+v", thoughts)
	}
}

func TestInnerVoice_QuietWhenBalanced(t *testing.T) {
	v := NewInnerVoice()

	ctx := baseContext()
	ctx.Needs = NeedsSnapshot{Fatigue: 0.2, Affection: 0.2}
	ctx.Relationship.Trust = 0.5
	ctx.Maturity = 0.5

	if thoughts := v.Generate(ctx); len(thoughts) != 0 {
		t.Fatalf("balanced state should stay silent, got %+v", thoughts)
	}
}

func TestInnerVoice_MergeAdjustsIntent(t *testing.T) {
	v := NewInnerVoice()
	intent := &Intent{Vulnerability: 0.5, Playfulness: 0.5, Hesitation: 0.1}
	thoughts := []InnerThought{{Text: "x", Weight: 0.6}, {Text: "y", Weight: 0.4}}

	v.MergeIntoIntent(intent, thoughts)

	if !almostEqual(intent.Vulnerability, 0.6) {
		t.Errorf("vulnerability = %v, want 0.6", intent.Vulnerability)
	}
	if !almostEqual(intent.Playfulness, 0.45) {
		t.Errorf("playfulness = %v, want 0.45", intent.Playfulness)
	}
	if !almostEqual(intent.Hesitation, 0.2) {
		t.Errorf("hesitation = %v, want 0.2", intent.Hesitation)
	}
}

func TestInnerVoice_MergeClamps(t *testing.T) {
	v := NewInnerVoice()
	intent := &Intent{Vulnerability: 0.99, Playfulness: 0.01, Hesitation: 0.99}
	thoughts := []InnerThought{{Text: "x", Weight: 1}, {Text: "y", Weight: 1}}

	v.MergeIntoIntent(intent, thoughts)

	if intent.Vulnerability != 1 || intent.Hesitation != 1 {
		t.Fatalf("adjustments must clamp at 1: %+v", intent)
	}
	if intent.Playfulness != 0 {
		t.Fatalf("playfulness must clamp at 0, got %v", intent.Playfulness)
	}
}
