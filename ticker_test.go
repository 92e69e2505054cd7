package novacore

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// ══════════════════════════════════════════════
// Idle ticker and idle state machine tests
// ══════════════════════════════════════════════

type speakRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *speakRecorder) fn() SpeakFn {
	return func(text string, _ *Intent) {
		r.mu.Lock()
		r.lines = append(r.lines, text)
		r.mu.Unlock()
	}
}

func (r *speakRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func newTestBrain(rec *speakRecorder) *BrainLoop {
	cfg := BrainConfig{
		Seed:   1,
		Logger: zerolog.Nop(),
	}
	if rec != nil {
		cfg.Speak = rec.fn()
	}
	return NewBrainLoop(cfg)
}

func TestIdleTicker_StartStopIdempotent(t *testing.T) {
	b := newTestBrain(nil)
	tk := NewIdleTicker(b, time.Hour)

	tk.Start()
	tk.Start()
	tk.Stop()
	tk.Stop()

	tk.Start()
	tk.Stop()
}

func TestNewIdleTicker_DefaultInterval(t *testing.T) {
	tk := NewIdleTicker(newTestBrain(nil), 0)
	if tk.Interval != DefaultTickInterval {
		t.Fatalf("interval = %v", tk.Interval)
	}
}

func TestIdleDecay_AngerChain(t *testing.T) {
	b := newTestBrain(nil)

	b.emotional.Primary = EmotionFrustrated
	b.idleDecay(100) // tier 1
	if b.emotional.Primary != EmotionAnnoyed {
		t.Fatalf("frustrated should soften to annoyed, got %s", b.emotional.Primary)
	}

	b.idleDecay(300) // tier 2
	if b.emotional.Primary != EmotionNeutral {
		t.Fatalf("annoyed should settle to neutral, got %s", b.emotional.Primary)
	}
}

func TestIdleDecay_SadnessChain(t *testing.T) {
	b := newTestBrain(nil)

	b.emotional.Primary = EmotionSad
	b.idleDecay(100)
	if b.emotional.Primary != EmotionMelancholy {
		t.Fatalf("sad should soften to melancholy, got %s", b.emotional.Primary)
	}
	b.idleDecay(300)
	if b.emotional.Primary != EmotionSoft {
		t.Fatalf("melancholy should soften to soft, got %s", b.emotional.Primary)
	}
	b.idleDecay(700)
	if b.emotional.Primary != EmotionCalm {
		t.Fatalf("soft should settle into calm after a long while, got %s", b.emotional.Primary)
	}
}

func TestIdleDecay_ShortIdleChangesNothing(t *testing.T) {
	b := newTestBrain(nil)
	b.emotional.Primary = EmotionFrustrated
	b.idleDecay(30)
	if b.emotional.Primary != EmotionFrustrated {
		t.Fatalf("tier 0 must not decay, got %s", b.emotional.Primary)
	}
}

func TestIdleDecay_SecondaryShadesDropByTier(t *testing.T) {
	b := newTestBrain(nil)
	b.emotional.Secondary = []Emotion{"lonely", "restless", EmotionAnnoyed}

	b.idleDecay(300) // tier 2: lonely drops
	if b.emotional.HasSecondary("lonely") {
		t.Fatal("lonely should drop at tier 2")
	}
	if !b.emotional.HasSecondary("restless") || !b.emotional.HasSecondary(EmotionAnnoyed) {
		t.Fatalf("restless and annoyed survive tier 2: %v", b.emotional.Secondary)
	}

	b.idleDecay(700) // tier 3: the rest drop
	if len(b.emotional.Secondary) != 0 {
		t.Fatalf("tier 3 should clear the drifted shades: %v", b.emotional.Secondary)
	}
}

func TestIdleDecay_UnstableFusionClearsAtTierThree(t *testing.T) {
	b := newTestBrain(nil)
	b.emotional.Fusion = FusionInsecure

	b.idleDecay(300)
	if b.emotional.Fusion != FusionInsecure {
		t.Fatal("unstable fusion survives tier 2")
	}
	b.idleDecay(700)
	if b.emotional.Fusion != FusionNone {
		t.Fatalf("unstable fusion should clear at tier 3, got %q", b.emotional.Fusion)
	}

	b.emotional.Fusion = FusionTender
	b.idleDecay(700)
	if b.emotional.Fusion != FusionTender {
		t.Fatal("stable fusions are not cleared by idle decay")
	}
}

func TestIdleDrift_LayersShades(t *testing.T) {
	b := newTestBrain(nil)
	b.emotional.Primary = EmotionSad
	b.state.LastUserMessage = "brb, two minutes"

	b.idleDrift(40)
	if !b.emotional.HasSecondary("lonely") {
		t.Fatal("short silence should add lonely for sad primaries")
	}
	b.idleDrift(120)
	if !b.emotional.HasSecondary("restless") {
		t.Fatal("longer silence should add restless")
	}
	b.idleDrift(200)
	if !b.emotional.HasSecondary(EmotionAnnoyed) {
		t.Fatal("a broken brb promise should add annoyed")
	}
}

func TestIdleDrift_HappyStaysContent(t *testing.T) {
	b := newTestBrain(nil)
	b.emotional.Primary = EmotionHappy
	b.idleDrift(40)
	if b.emotional.HasSecondary("lonely") {
		t.Fatal("happy primaries do not get lonely this fast")
	}
}

func TestIdleTimings_MoodAndFusionAdjust(t *testing.T) {
	b := newTestBrain(nil)

	ping, rest, sleep := b.idleTimings()
	if ping != basePingAfter || rest != baseRestAfter || sleep != baseSleepAfter {
		t.Fatalf("neutral timings = %v %v %v", ping, rest, sleep)
	}

	b.emotional.Mood = EmotionBored
	b.emotional.Fusion = FusionInsecure
	ping, _, _ = b.idleTimings()
	if ping != minPingAfter {
		t.Fatalf("bored+insecure should floor the ping delay, got %v", ping)
	}

	b.emotional.Mood = EmotionHappy
	b.emotional.Fusion = FusionMischievous
	ping, _, _ = b.idleTimings()
	if ping != basePingAfter+60 {
		t.Fatalf("happy+mischievous ping = %v, want %v", ping, basePingAfter+60)
	}

	b.emotional.Primary = EmotionTired
	_, rest, sleep = b.idleTimings()
	if rest != baseRestAfter-120 || sleep != minSleepAfter {
		t.Fatalf("tired timings = %v %v", rest, sleep)
	}
}

func TestIdleTick_PingsOnceThenWaits(t *testing.T) {
	rec := &speakRecorder{}
	b := newTestBrain(rec)

	past := time.Now().Add(-200 * time.Second)
	b.lastUserAt = past
	b.lastSpokeAt = past

	b.idleTick(time.Now())

	lines := rec.all()
	if len(lines) != 1 {
		t.Fatalf("expected one idle ping, got %v", lines)
	}
	if !b.didPing {
		t.Fatal("ping latch should be set")
	}

	// A second tick inside the same silence stays quiet, but speaking
	// reset lastSpokeAt, so re-age it for the check.
	b.lastSpokeAt = past
	b.idleTick(time.Now())
	if len(rec.all()) != 1 {
		t.Fatalf("ping must fire once per silence, got %v", rec.all())
	}
}

func TestIdleTick_FallsAsleepAfterLongSilence(t *testing.T) {
	rec := &speakRecorder{}
	b := newTestBrain(rec)

	past := time.Now().Add(-2 * time.Hour)
	b.lastUserAt = past
	b.lastSpokeAt = past

	b.idleTick(time.Now())

	if !b.daily.Asleep() {
		t.Fatal("two silent hours should put her to sleep")
	}
	if b.dream == "" {
		t.Fatal("falling asleep should synthesize a dream")
	}
	lines := rec.all()
	if len(lines) != 1 {
		t.Fatalf("expected the falling-asleep line, got %v", lines)
	}

	// Asleep ticks do nothing until the cycle completes.
	b.idleTick(time.Now())
	if len(rec.all()) != 1 {
		t.Fatal("asleep ticks must stay silent")
	}

	// Finish the cycle and wake with the dream narration.
	b.daily.sleptAt = time.Now().Add(-7 * time.Hour)
	b.idleTick(time.Now())
	if b.daily.Asleep() {
		t.Fatal("a finished cycle should wake her")
	}
	lines = rec.all()
	if len(lines) != 2 {
		t.Fatalf("expected a wake line, got %v", lines)
	}
}
