package novacore

import "time"

// ──────────────────────────────────────────────
// Needs Engine — biological pressure model
// ──────────────────────────────────────────────

// NeedsSnapshot is the per-turn view of the biological needs. All fields
// in [0,1]; Pressure is derived, never stored.
type NeedsSnapshot struct {
	Hunger    float64 `json:"hunger"`
	Thirst    float64 `json:"thirst"`
	Fatigue   float64 `json:"fatigue"`
	Bladder   float64 `json:"bladder"`
	Affection float64 `json:"affection"`
}

// Pressure is the strongest current need.
func (n NeedsSnapshot) Pressure() float64 {
	p := n.Hunger
	for _, v := range []float64{n.Thirst, n.Fatigue, n.Bladder, n.Affection} {
		if v > p {
			p = v
		}
	}
	return p
}

// Per-second accrual rates and per-tick jitter caps.
const (
	hungerRate    = 0.0006
	thirstRate    = 0.0009
	fatigueRate   = 0.0004
	bladderRate   = 0.0008
	affectionRate = 0.0005
)

// NeedsEngine accrues needs linearly with elapsed wall-clock time plus a
// small bounded jitter, clamped at 1.0. Explicit satisfy operations
// subtract fixed amounts. Tick it once per turn or on the idle interval.
type NeedsEngine struct {
	hunger    float64
	thirst    float64
	fatigue   float64
	bladder   float64
	affection float64

	lastUpdate time.Time
	rand       *Rand
	now        func() time.Time
}

// NewNeedsEngine creates an engine with the mild startup levels.
func NewNeedsEngine(rand *Rand) *NeedsEngine {
	return &NeedsEngine{
		hunger:     0.1,
		thirst:     0.1,
		fatigue:    0.1,
		bladder:    0.1,
		affection:  0.2,
		lastUpdate: time.Now(),
		rand:       rand,
		now:        time.Now,
	}
}

// Update advances all needs by the elapsed time and returns the new
// snapshot.
func (n *NeedsEngine) Update() NeedsSnapshot {
	now := n.now()
	dt := now.Sub(n.lastUpdate).Seconds()
	if dt < 0 {
		dt = 0
	}
	n.lastUpdate = now

	n.hunger = clamp01(n.hunger + dt*hungerRate + n.rand.Uniform(0, 0.005))
	n.thirst = clamp01(n.thirst + dt*thirstRate + n.rand.Uniform(0, 0.005))
	n.fatigue = clamp01(n.fatigue + dt*fatigueRate + n.rand.Uniform(0, 0.003))
	n.bladder = clamp01(n.bladder + dt*bladderRate + n.rand.Uniform(0, 0.004))
	n.affection = clamp01(n.affection + dt*affectionRate + n.rand.Uniform(0, 0.003))

	return n.Snapshot()
}

// Snapshot returns the current levels without advancing time.
func (n *NeedsEngine) Snapshot() NeedsSnapshot {
	return NeedsSnapshot{
		Hunger:    n.hunger,
		Thirst:    n.thirst,
		Fatigue:   n.fatigue,
		Bladder:   n.bladder,
		Affection: n.affection,
	}
}

// ─── Satisfy operations ───

// Eat satisfies hunger.
func (n *NeedsEngine) Eat() { n.hunger = clamp01(n.hunger - 0.7) }

// Drink satisfies thirst.
func (n *NeedsEngine) Drink() { n.thirst = clamp01(n.thirst - 0.8) }

// Rest satisfies fatigue.
func (n *NeedsEngine) Rest() { n.fatigue = clamp01(n.fatigue - 0.6) }

// Relieve satisfies bladder.
func (n *NeedsEngine) Relieve() { n.bladder = clamp01(n.bladder - 0.9) }

// ReceiveAffection satisfies the closeness craving by the given amount.
func (n *NeedsEngine) ReceiveAffection(amount float64) {
	n.affection = clamp01(n.affection - amount)
}

// adjust applies a raw delta to one need, used by the sleep/wake cycle.
func (n *NeedsEngine) adjust(hunger, thirst, fatigue float64) {
	n.hunger = clamp01(n.hunger + hunger)
	n.thirst = clamp01(n.thirst + thirst)
	n.fatigue = clamp01(n.fatigue + fatigue)
}

// setFatigue overwrites fatigue, used when waking from a full sleep.
func (n *NeedsEngine) setFatigue(v float64) { n.fatigue = clamp01(v) }
