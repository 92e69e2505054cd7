package novacore

import "strings"

// ──────────────────────────────────────────────
// Initiative Engine — speaking unprompted
// ──────────────────────────────────────────────

// InitiativeIntent is a decision to bring up a topic unprompted. Priority
// above 0.6 replaces the speaking goal entirely; lower priorities are
// injected as a soft memory hint.
type InitiativeIntent struct {
	Content  string
	Priority float64
}

// Cooldown bounds, in turns, applied after a successful draw.
const (
	initiativeCooldownMin = 3
	initiativeCooldownMax = 8
)

// InitiativeEngine is a probabilistic gate deciding when to start a topic.
// Never fires while the user is asking something, during its cooldown
// window, or when trust is very low.
type InitiativeEngine struct {
	cooldown int
	rand     *Rand
}

// NewInitiativeEngine creates the engine with no cooldown pending.
func NewInitiativeEngine(rand *Rand) *InitiativeEngine {
	return &InitiativeEngine{rand: rand}
}

// Evaluate draws once against the current state. Returns nil for "stay
// quiet". Each call during cooldown decrements the counter.
func (e *InitiativeEngine) Evaluate(state *NovaState, ctx *IntentContext) *InitiativeIntent {
	if strings.Contains(state.LastUserMessage, "?") {
		return nil
	}
	if ctx.IsDirectQuestion {
		return nil
	}

	if e.cooldown > 0 {
		e.cooldown--
		return nil
	}

	trust := state.Relationship.Trust
	if trust < 0.25 {
		return nil
	}

	chance := 0.1
	if state.Needs.Affection > 0.55 {
		chance += 0.2
	}
	if state.Emotion.Intensity > 0.6 {
		chance += 0.15
	}
	if trust > 0.6 {
		chance += 0.1
	}
	if state.Needs.Fatigue > 0.6 {
		chance -= 0.15
	}

	if e.rand.Float64() > chance {
		return nil
	}

	topic := e.chooseTopic(state)
	if topic == "" {
		return nil
	}

	e.cooldown = e.rand.Between(initiativeCooldownMin, initiativeCooldownMax)

	return &InitiativeIntent{Content: topic, Priority: chance}
}

// chooseTopic picks a line from the fixed priority list:
// affection-seeking > positive mood > negative mood > fatigue > greeting.
func (e *InitiativeEngine) chooseTopic(state *NovaState) string {
	switch {
	case state.Needs.Affection > 0.6:
		return "Hey… can I ask you something?"
	case state.Mood.Valence > 0.6:
		return "So um… what are you doing right now?"
	case state.Mood.Valence < 0.35:
		return "Mmm… it's been a weird day."
	case state.Needs.Fatigue > 0.7:
		return "*yawn* …how are you?"
	default:
		return "Hey…"
	}
}
