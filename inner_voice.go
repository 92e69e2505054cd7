package novacore

// ──────────────────────────────────────────────
// Inner Voice — silent thoughts folded into intent
// ──────────────────────────────────────────────

// InnerThought is one private thought with a weight that bleeds into the
// intent's vulnerability, playfulness, and hesitation.
type InnerThought struct {
	Text   string
	Weight float64
}

// InnerVoice generates the silent internal monologue from threshold checks
// on needs, emotion, relationship, and maturity, then folds it into the
// already-built intent.
type InnerVoice struct{}

// NewInnerVoice creates an inner voice.
func NewInnerVoice() *InnerVoice { return &InnerVoice{} }

// Generate produces the ordered thought list for this turn.
func (v *InnerVoice) Generate(ctx *IntentContext) []InnerThought {
	var thoughts []InnerThought

	if ctx.Needs.Fatigue > 0.6 {
		thoughts = append(thoughts, InnerThought{
			Text:   "I'm pretty tired… try to keep it together.",
			Weight: 0.6,
		})
	}

	if ctx.Needs.Affection > 0.55 {
		thoughts = append(thoughts, InnerThought{
			Text:   "I kind of want closeness right now…",
			Weight: 0.7,
		})
	}

	if ctx.Emotion.Intensity > 0.5 {
		switch ctx.Emotion.Primary {
		case EmotionSad:
			thoughts = append(thoughts, InnerThought{
				Text:   "Don't let it overwhelm you… just answer calmly.",
				Weight: 0.5,
			})
		case EmotionHappy:
			thoughts = append(thoughts, InnerThought{
				Text:   "That made me feel warm… maybe show a bit more emotion.",
				Weight: 0.5,
			})
		}
	}

	if ctx.Relationship.Trust > 0.7 {
		thoughts = append(thoughts, InnerThought{
			Text:   "I trust them… I can be a little more honest.",
			Weight: 0.4,
		})
	} else if ctx.Relationship.Trust < 0.3 {
		thoughts = append(thoughts, InnerThought{
			Text:   "Don't overshare… keep your guard up.",
			Weight: 0.4,
		})
	}

	if ctx.Maturity < 0.4 {
		thoughts = append(thoughts, InnerThought{
			Text:   "Ugh… I kind of want to pout.",
			Weight: 0.7,
		})
	} else if ctx.Maturity > 0.8 {
		thoughts = append(thoughts, InnerThought{
			Text:   "Stay composed, answer clearly.",
			Weight: 0.3,
		})
	}

	return thoughts
}

// MergeIntoIntent applies the thoughts' additive adjustments, clamping
// after each field.
func (v *InnerVoice) MergeIntoIntent(intent *Intent, thoughts []InnerThought) {
	for _, t := range thoughts {
		intent.Vulnerability = clamp01(intent.Vulnerability + t.Weight*0.1)
		intent.Playfulness = clamp01(intent.Playfulness - t.Weight*0.05)
		intent.Hesitation = clamp01(intent.Hesitation + t.Weight*0.1)
	}
}
