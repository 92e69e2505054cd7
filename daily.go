package novacore

import (
	"time"
)

// ──────────────────────────────────────────────
// Daily cycle — fatigue, sleep, wake, recovery
// ──────────────────────────────────────────────

// Sleep triggers and recovery constants.
const (
	sleepFatigueThreshold  = 0.75
	sleepOverloadThreshold = 0.75
	normalSleepHours       = 6.0
	fallAsleepLine         = "*falls asleep…*"
	wakeLine               = "*wakes up slowly…*"
)

// DailyCycleEngine owns the asleep/awake toggle. It never speaks on its
// own; the brain loop and the idle ticker call into it and relay the lines.
type DailyCycleEngine struct {
	asleep  bool
	sleptAt time.Time
	now     func() time.Time
}

// NewDailyCycleEngine starts awake.
func NewDailyCycleEngine() *DailyCycleEngine {
	return &DailyCycleEngine{now: time.Now}
}

// Asleep reports the current toggle.
func (d *DailyCycleEngine) Asleep() bool { return d.asleep }

// SleptAt reports when the current sleep started; zero when awake.
func (d *DailyCycleEngine) SleptAt() time.Time { return d.sleptAt }

// ShouldSleep reports whether fatigue or emotional overload warrants
// falling asleep right now.
func (d *DailyCycleEngine) ShouldSleep(needs NeedsSnapshot, emo EmotionSnapshot) bool {
	if d.asleep {
		return false
	}
	return needs.Fatigue > sleepFatigueThreshold || emo.Intensity > sleepOverloadThreshold
}

// Sleep puts her under: emotional intensity discharges, mood drifts toward
// neutral, and trust gets the small closeness bump of being trusted enough
// to sleep nearby.
func (d *DailyCycleEngine) Sleep(emotional *EmotionalState, identity *IdentityEngine) string {
	d.asleep = true
	d.sleptAt = d.now()

	emotional.Intensity = clamp01(emotional.Intensity * 0.4)
	if emotional.Mood.Valence() > 0.5 {
		emotional.Mood = EmotionCalm
	} else if emotional.Mood.Valence() < 0.5 {
		emotional.Mood = EmotionSoft
	}

	identity.RewardTrust(0.01)
	return fallAsleepLine
}

// TimeToWake reports whether a full sleep cycle has elapsed.
func (d *DailyCycleEngine) TimeToWake() bool {
	if !d.asleep {
		return false
	}
	return d.now().Sub(d.sleptAt).Hours() >= normalSleepHours
}

// Wake brings her back: fatigue resets, hunger and thirst crept up while
// she slept, and stability recovers a step.
func (d *DailyCycleEngine) Wake(needs *NeedsEngine, emotional *EmotionalState) string {
	d.asleep = false
	d.sleptAt = time.Time{}

	needs.setFatigue(0.1)
	needs.adjust(0.2, 0.15, 0)
	emotional.Stability = clamp01(emotional.Stability + 0.1)

	return wakeLine
}
