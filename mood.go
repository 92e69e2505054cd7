package novacore

// ──────────────────────────────────────────────
// Mood Engine — majority-vote smoothing
// ──────────────────────────────────────────────

// CalculateMood determines the medium-term mood from the recent primary
// emotion history. An emotion must appear at least twice to become the
// reported mood; otherwise mood collapses to neutral. This keeps a single
// noisy turn from whipsawing the displayed mood.
func CalculateMood(history []Emotion) Emotion {
	if len(history) == 0 {
		return EmotionNeutral
	}

	counts := make(map[Emotion]int, len(history))
	best := EmotionNeutral
	bestCount := 0
	for _, e := range history {
		counts[e]++
		if counts[e] > bestCount {
			best = e
			bestCount = counts[e]
		}
	}

	if bestCount < 2 {
		return EmotionNeutral
	}
	return best
}
