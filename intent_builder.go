package novacore

import "sort"

// ──────────────────────────────────────────────
// Intent Builder — the decision core
// ──────────────────────────────────────────────

// IntentBuilder converts the assembled per-turn context into a structured
// Intent: what to express, in what mode and tone, before any text exists.
type IntentBuilder struct{}

// NewIntentBuilder creates an intent builder.
func NewIntentBuilder() *IntentBuilder { return &IntentBuilder{} }

// Build runs the four ordered trait computations, the tone and mode
// decision trees, the memory-hint pick, and the post-construction override
// passes. Every numeric output is clamped after each adjustment; the
// speech layer assumes [0,1] holds unconditionally.
func (b *IntentBuilder) Build(ctx *IntentContext) *Intent {
	openness := b.calcOpenness(ctx)
	vulnerability := b.calcVulnerability(ctx, openness)
	playfulness := b.calcPlayfulness(ctx)

	tone := b.decideTone(ctx, playfulness)
	mode, goal, askBack := b.decideSpeakingMode(ctx, openness, vulnerability)
	memoryHint := b.pickMemoryHint(ctx, vulnerability)

	mentionFeeling := true
	if ctx.QuestionType != QuestionHowAreYou {
		mentionFeeling = vulnerability > 0.4 && ctx.Emotion.Intensity > 0.2
	}
	mentionNeeds := ctx.Needs.Pressure() > 0.5 && vulnerability > 0.3

	intent := &Intent{
		EmotionLabel:      ctx.Emotion.Primary,
		FusionLabel:       ctx.Emotion.Fusion,
		MoodLabel:         ctx.Mood.Label,
		Maturity:          ctx.Maturity,
		RelationshipLabel: ctx.Relationship.Label,
		Openness:          openness,
		Vulnerability:     vulnerability,
		Playfulness:       playfulness,
		SpeakingMode:      mode,
		ToneStyle:         tone,
		ContentGoal:       goal,
		MemoryHint:        memoryHint,
		MentionFeeling:    mentionFeeling,
		MentionNeeds:      mentionNeeds,
		AskBack:           askBack,
		NSFWReady:         ctx.AllowNSFW && ctx.NSFWReadiness > 0.5,
	}

	// Post pass 1: readiness for intimate topics warms the intent.
	if ctx.AllowNSFW && ctx.NSFWReadiness > 0.6 {
		intent.Vulnerability = clamp01(intent.Vulnerability + 0.1)
		intent.Playfulness = clamp01(intent.Playfulness + 0.1)
	}
	if intent.NSFWReady {
		intent.Vulnerability = clamp01(intent.Vulnerability + 0.05)
		intent.Playfulness = clamp01(intent.Playfulness + 0.05)
		if intent.SpeakingMode == ModeAnswer {
			intent.SpeakingMode = ModeSoft
		}
	}

	// Post pass 2: fluster adds hesitation.
	if ctx.Fluster > 0.5 {
		intent.Hesitation = clamp01(intent.Hesitation + 0.15)
	}

	return intent
}

// calcOpenness: how open and expressive to be.
func (b *IntentBuilder) calcOpenness(ctx *IntentContext) float64 {
	base := ctx.Relationship.Trust*0.5 + ctx.Relationship.Safety*0.3 + ctx.Relationship.Attachment*0.2

	// Maturity extremes: very low tends toward oversharing, very high
	// toward comfortable honesty.
	if ctx.Maturity < 0.3 {
		base += 0.05
	} else if ctx.Maturity > 0.7 {
		base += 0.1
	}

	// Dark mood with thin trust closes her up.
	if ctx.Mood.Valence < 0.3 && ctx.Relationship.Trust < 0.5 {
		base -= 0.2
	}

	base += ctx.Emotion.Intensity * 0.15
	base -= ctx.Needs.Pressure() * 0.15

	return clamp01(base)
}

// calcVulnerability: how much of the inner feelings to show.
func (b *IntentBuilder) calcVulnerability(ctx *IntentContext, openness float64) float64 {
	v := openness

	switch ctx.Emotion.Fusion {
	case FusionInsecure, FusionAshamed, FusionGuilty:
		v -= 0.2
	}

	if isWarmMood(ctx.Mood.Label) {
		v += ctx.Relationship.Attachment * 0.3
	}

	v += (ctx.Maturity - 0.5) * 0.3

	if (ctx.Emotion.Primary == EmotionHurt || ctx.Emotion.Primary == EmotionSad) &&
		ctx.Relationship.Trust < 0.4 {
		v -= 0.25
	}

	return clamp01(v)
}

// calcPlayfulness: playful/teasing vs serious.
func (b *IntentBuilder) calcPlayfulness(ctx *IntentContext) float64 {
	p := ctx.Mood.Valence*0.4 + ctx.Mood.Energy*0.3 + ctx.Relationship.Attachment*0.2

	// Intense negative emotion kills playfulness outright.
	if ctx.Emotion.Intensity > 0.6 && ctx.Mood.Valence < 0.4 {
		p -= 0.4
	}

	return clamp01(p)
}

// decideTone walks the priority-ordered tone rule list. Later rules may
// override earlier assignments; first the direct-emotion rules, then the
// pouty and warm overrides, finally the playfulness softener.
func (b *IntentBuilder) decideTone(ctx *IntentContext, playfulness float64) ToneStyle {
	tone := ToneCalm

	switch ctx.Emotion.Primary {
	case EmotionSad, EmotionHurt:
		tone = ToneSoft
	case EmotionAnxious:
		tone = ToneHesitant
	case EmotionAnnoyed, EmotionFrustrated:
		tone = ToneFlat
	}

	// Pouting: her key reaction when insecure or stung but still trusting.
	if ctx.Emotion.Fusion == FusionInsecure || ctx.Emotion.Fusion == FusionJealous ||
		ctx.Emotion.Primary == EmotionHurt || ctx.Emotion.Primary == EmotionAnnoyed {
		if ctx.Maturity < 0.6 && ctx.Relationship.Trust > 0.4 {
			tone = TonePouty
		}
	}

	if isWarmMood(ctx.Mood.Label) && ctx.Relationship.Attachment > 0.4 {
		tone = ToneGentle
	}

	if playfulness > 0.6 && tone != TonePouty && tone != ToneFlat {
		tone = ToneLight
	}

	return tone
}

// decideSpeakingMode switches on the pre-classified question type and
// returns (mode, content goal, ask-back flag).
func (b *IntentBuilder) decideSpeakingMode(ctx *IntentContext, openness, vulnerability float64) (SpeakingMode, string, bool) {
	askBack := false
	goal := "answer the user's message naturally"
	mode := ModeAnswer

	switch ctx.QuestionType {
	case QuestionHowAreYou:
		goal = "briefly describe her current state"
		if openness > 0.4 && ctx.Relationship.Trust > 0.3 {
			askBack = true
			mode = ModeAnswerAndAsk
			goal = "describe state and gently ask how the user is"
		}

	case QuestionWhatIf:
		mode = ModeReflective
		goal = "imagine what she would feel and do in that scenario, based on her personality and history"

	case QuestionPreference:
		goal = "state her preference honestly, with a bit of explanation"

	default:
		if openness > 0.5 && ctx.Emotion.Intensity > 0.3 {
			mode = ModeAnswerAndAsk
			askBack = true
			goal = "answer and show curiosity about the user's side"
		}
	}

	// Very low vulnerability avoids deep topics.
	if vulnerability < 0.2 && mode == ModeReflective {
		mode = ModeLight
		goal = "give a simple, surface-level response without going deep"
	}

	return mode, goal, askBack
}

// memoryHintMaxLen bounds the text handed to the speech layer.
const memoryHintMaxLen = 200

// pickMemoryHint selects one memory line to color the answer, only when
// vulnerability is reasonably high.
func (b *IntentBuilder) pickMemoryHint(ctx *IntentContext, vulnerability float64) string {
	if vulnerability < 0.4 {
		return ""
	}

	pool := make([]MemorySnippet, 0, len(ctx.RecentMemory)+len(ctx.EpisodicMemory))
	pool = append(pool, ctx.RecentMemory...)
	pool = append(pool, ctx.EpisodicMemory...)
	if len(pool) == 0 {
		return ""
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Weight > pool[j].Weight })
	return truncate(pool[0].Text, memoryHintMaxLen)
}

func isWarmMood(m Emotion) bool {
	switch m {
	case EmotionWarm, EmotionSoft, EmotionHappy:
		return true
	default:
		return false
	}
}
