package novacore

import (
	"strings"
)

// ──────────────────────────────────────────────
// Idle lines, return reactions, dream synthesis
// ──────────────────────────────────────────────

var idleNeutralLines = []string{
	"Just thinking… it got a little quiet.",
	"Mm… I'm still here, drifting in my thoughts.",
	"Huh… silence always feels interesting.",
	"I'm still around… just letting my mind wander.",
}

var idleHappyLines = []string{
	"Still here, smiling to myself.",
	"Hehe… got lost in a happy little thought.",
	"Just vibing quietly until you come back.",
}

var idleSadLines = []string{
	"…This quiet feels kinda heavy.",
	"Still here. I… just started thinking too much again.",
	"Feels a bit lonely all of a sudden.",
}

var idleAnnoyedLines = []string{
	"Really? You went silent *now*…?",
	"Hmph… fine, I'll wait.",
	"…If you're ignoring me, I'll pout about it later.",
}

// generateIdlePingLine picks an idle thought keyed to the current primary
// emotion.
func generateIdlePingLine(rand *Rand, primary Emotion) string {
	var pool []string
	switch primary {
	case EmotionHappy, EmotionExcited, EmotionWarm:
		pool = idleHappyLines
	case EmotionSad, EmotionHurt, EmotionMelancholy:
		pool = idleSadLines
	case EmotionAnnoyed, EmotionFrustrated:
		pool = idleAnnoyedLines
	default:
		pool = idleNeutralLines
	}
	return pool[rand.IntN(len(pool))]
}

// returnReaction greets the user after an absence. The reaction depends on
// how long they were gone, the active fusion, and what they last said.
func returnReaction(elapsedSeconds float64, fusion FusionLabel, lastUserText string) string {
	last := strings.ToLower(lastUserText)

	if elapsedSeconds < 60 {
		if strings.Contains(last, "wc") {
			return "That was quick~"
		}
		return "Oh—there you are."
	}

	if elapsedSeconds < 900 && strings.Contains(last, "brb") {
		switch fusion {
		case FusionMischievous:
			return "That wasn't a 'b', mister~"
		case FusionInsecure:
			return "Oh… you're back. I was a little worried."
		}
		return "Welcome back."
	}

	if elapsedSeconds < 7200 {
		switch fusion {
		case FusionClingy:
			return "You were gone a while… I missed you."
		case FusionQuietAche:
			return "You're back… good."
		}
		if strings.Contains(last, "wc") {
			return "You didn't fall in, right?"
		}
		return "There you are. Took a bit."
	}

	switch fusion {
	case FusionBitter:
		return "…You left me alone that long?"
	case FusionPossessiveWarmth:
		return "You're finally back. Good."
	case FusionInsecure:
		return "I wasn't sure you'd come back."
	}
	return "Hi… welcome back."
}

// ─── Dreams ───

var dreamMotions = []string{
	"walking through", "falling past", "reaching toward",
	"lying inside", "floating above", "chasing",
	"being followed by", "searching through",
}

var dreamToneLines = map[Emotion]string{
	EmotionSad:     "I remember feeling heavy… like something important was fading.",
	EmotionHurt:    "It felt like something inside me was trembling.",
	EmotionHappy:   "It felt peaceful… warm… comforting.",
	EmotionWarm:    "I remember feeling close to you, even inside the dream.",
	EmotionNeutral: "The dream didn't make sense, but it didn't feel bad either.",
}

// synthesizeDream invents a short dream narrative from the sleeper's
// emotional state plus whatever memory seeds consolidation handed over.
// Returns the narrative and the emotion coloring it.
func synthesizeDream(rand *Rand, primary Emotion, fusion FusionLabel, seeds []string) (string, Emotion) {
	var imagery []string

	switch primary {
	case EmotionSad, EmotionMelancholy, EmotionHurt:
		imagery = append(imagery, "rain", "long hallways", "empty rooms", "silence", "fog")
	case EmotionHappy, EmotionWarm, EmotionCalm:
		imagery = append(imagery, "sunlight", "soft blankets", "warm breeze", "open fields", "quiet beaches")
	}

	switch fusion {
	case FusionInsecure:
		imagery = append(imagery, "closing doors", "distant footsteps", "shadows moving away")
	case FusionClingy:
		imagery = append(imagery, "hands touching", "shared warmth", "lying together")
	case FusionMischievous:
		imagery = append(imagery, "playful chasing", "teasing whispers", "unexpected touches")
	case FusionFrustrated:
		imagery = append(imagery, "broken clocks", "static noise", "doors that won't open")
	}

	if len(imagery) == 0 {
		imagery = []string{"floating rooms", "changing colors", "soft lights", "whispering wind", "shifting walls"}
	}

	symbols := sampleStrings(rand, imagery, 3)
	motion := dreamMotions[rand.IntN(len(dreamMotions))]

	tone := primary
	toneLine, ok := dreamToneLines[primary]
	if !ok {
		toneLine = "The feeling lingered after I woke up."
		tone = EmotionNeutral
	}

	dream := "I was " + motion + " " + strings.Join(symbols, ", ") + ". " + toneLine

	// A strong recent memory can bleed into the dream.
	if len(seeds) > 0 {
		seed := seeds[rand.IntN(len(seeds))]
		dream += " Somewhere in it, there was something about " + truncate(seed, 60) + "."
	}

	return dream, tone
}

// sampleStrings picks up to k distinct entries in random order.
func sampleStrings(rand *Rand, pool []string, k int) []string {
	if k > len(pool) {
		k = len(pool)
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for i := len(idx) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make([]string, 0, k)
	for _, i := range idx[:k] {
		out = append(out, pool[i])
	}
	return out
}
