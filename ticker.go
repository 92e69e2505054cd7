package novacore

import (
	"strings"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// IdleTicker — background passage of time
// ──────────────────────────────────────────────

// DefaultTickInterval is how often idle staging and emotional drift are
// re-evaluated while nobody is talking.
const DefaultTickInterval = 5 * time.Second

// Base idle staging thresholds in seconds, before emotional adjustment.
const (
	basePingAfter  = 180.0
	baseRestAfter  = 600.0
	baseSleepAfter = 1800.0

	minPingAfter  = 10.0
	minRestAfter  = 300.0
	minSleepAfter = 1500.0
)

// IdleTicker drives the brain's sense of time: idle pings, resting,
// falling asleep, emotional decay while alone, and waking after a full
// sleep cycle.
//
// Usage:
//
//	ticker := novacore.NewIdleTicker(brain, 0)
//	ticker.Start()   // non-blocking, starts a background goroutine
//	defer ticker.Stop()
type IdleTicker struct {
	Interval time.Duration

	brain *BrainLoop

	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
}

// NewIdleTicker creates a ticker for the brain. interval <= 0 uses
// DefaultTickInterval.
func NewIdleTicker(brain *BrainLoop, interval time.Duration) *IdleTicker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &IdleTicker{
		Interval: interval,
		brain:    brain,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the background tick loop. Non-blocking; starting twice is
// a no-op.
func (t *IdleTicker) Start() {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.stopCh = make(chan struct{})
	t.mu.Unlock()

	go t.loop()
	t.brain.log.Info().Dur("interval", t.Interval).Msg("idle ticker started")
}

// Stop halts the loop. Stopping twice is a no-op.
func (t *IdleTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stopCh)
	t.brain.log.Info().Msg("idle ticker stopped")
}

func (t *IdleTicker) loop() {
	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.brain.idleTick(time.Now())
		}
	}
}

// ─── Brain-side tick logic ───

// idleTick runs one evaluation of the idle state machine.
func (b *BrainLoop) idleTick(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Asleep: only a finished sleep cycle wakes her here; user activity
	// wakes her in ProcessTurn.
	if b.daily.Asleep() {
		if b.daily.TimeToWake() {
			b.wakeLocked()
		}
		return
	}

	last := b.lastUserAt
	if b.lastSpokeAt.After(last) {
		last = b.lastSpokeAt
	}
	idle := now.Sub(last).Seconds()

	b.idleDrift(idle)
	UpdateFusion(b.emotional, nil)
	b.idleDecay(idle)

	ping, rest, sleep := b.idleTimings()

	switch {
	case idle >= sleep:
		line := b.fallAsleepLocked()
		b.emitLocked("*her breathing slows as she drifts into a deep sleep…* " + line)

	case idle >= rest && !b.didRest:
		b.didRest = true
		b.needs.Rest()
		b.emitLocked("*lies down quietly, relaxing*")

	case idle >= ping && !b.didPing:
		b.didPing = true
		b.emitLocked(generateIdlePingLine(b.rand, b.emotional.Primary))
	}
}

// idleDrift layers loneliness and restlessness onto the secondary shades
// as the silence stretches.
func (b *BrainLoop) idleDrift(idle float64) {
	if idle > 30 {
		switch b.emotional.Primary {
		case EmotionSad, EmotionNeutral, EmotionBored:
			b.emotional.AddSecondary("lonely")
		}
	}
	if idle > 90 {
		b.emotional.AddSecondary("restless")
	}
	if idle > 180 && strings.Contains(strings.ToLower(b.state.LastUserMessage), "brb") {
		b.emotional.AddSecondary(EmotionAnnoyed)
	}
}

// idleDecay lets sharp emotions soften as time alone passes. Longer idle
// windows decay harder.
func (b *BrainLoop) idleDecay(idle float64) {
	var strength int
	switch {
	case idle < 60:
		strength = 0
	case idle < 180:
		strength = 1
	case idle < 600:
		strength = 2
	default:
		strength = 3
	}

	if strength >= 1 {
		switch b.emotional.Primary {
		case EmotionFrustrated:
			b.emotional.Primary = EmotionAnnoyed
		case EmotionAnnoyed:
			if strength >= 2 {
				b.emotional.Primary = EmotionNeutral
			}
		case EmotionSad:
			b.emotional.Primary = EmotionMelancholy
		case EmotionMelancholy:
			if strength >= 2 {
				b.emotional.Primary = EmotionSoft
			}
		case EmotionSoft:
			if strength >= 3 {
				b.emotional.Primary = EmotionCalm
			}
		}
	}

	keep := b.emotional.Secondary[:0]
	for _, e := range b.emotional.Secondary {
		if e == "lonely" && strength >= 2 {
			continue
		}
		if e == "restless" && strength >= 3 {
			continue
		}
		if e == EmotionAnnoyed && strength >= 3 {
			continue
		}
		keep = append(keep, e)
	}
	b.emotional.Secondary = keep

	if strength == 3 && unstableFusions[b.emotional.Fusion] {
		b.emotional.Fusion = FusionNone
	}
}

// idleTimings adjusts the staging thresholds by the current mood, fusion,
// and fatigue.
func (b *BrainLoop) idleTimings() (ping, rest, sleep float64) {
	ping, rest, sleep = basePingAfter, baseRestAfter, baseSleepAfter

	switch b.emotional.Mood {
	case EmotionBored:
		ping -= 60
	case EmotionSad:
		ping -= 30
	case EmotionHappy:
		ping += 30
	}

	switch b.emotional.Fusion {
	case FusionMischievous:
		ping += 30
	case FusionInsecure:
		ping -= 120
	case FusionFrustrated:
		ping -= 60
	}

	if b.emotional.Primary == EmotionTired {
		rest -= 120
		sleep -= 300
	}

	if ping < minPingAfter {
		ping = minPingAfter
	}
	if rest < minRestAfter {
		rest = minRestAfter
	}
	if sleep < minSleepAfter {
		sleep = minSleepAfter
	}
	return ping, rest, sleep
}
