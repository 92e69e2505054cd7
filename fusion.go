package novacore

import (
	"strings"
	"time"
)

// ──────────────────────────────────────────────
// Fusion Engine — emergent secondary emotion lookup
// ──────────────────────────────────────────────

// FusionLabel is an emergent, higher-order emotion derived from combining
// the primary emotion with a secondary shade or a transient spike.
// The empty string means "no fusion".
type FusionLabel string

const (
	FusionNone              FusionLabel = ""
	FusionInsecure          FusionLabel = "insecure"
	FusionTender            FusionLabel = "tender"
	FusionFlustered         FusionLabel = "flustered"
	FusionBittersweet       FusionLabel = "bittersweet"
	FusionMischievous       FusionLabel = "mischievous"
	FusionTeasingIrritation FusionLabel = "teasing_irritation"
	FusionPossessiveWarmth  FusionLabel = "possessive_warmth"
	FusionFrustrated        FusionLabel = "frustrated"
	FusionClingy            FusionLabel = "clingy"
	FusionQuietAche         FusionLabel = "quiet_ache"
	FusionBitter            FusionLabel = "bitter"
	FusionCompetitiveWarmth FusionLabel = "competitive_warmth"
	FusionAshamed           FusionLabel = "ashamed"
	FusionGuilty            FusionLabel = "guilty"
	FusionJealous           FusionLabel = "jealous"
)

type fusionKey struct {
	primary  Emotion
	modifier Emotion
}

// fusionRules maps (primary, modifier) pairs to their emergent label.
// Modifiers may be secondary shades or spike emotions; the caller controls
// priority by the order modifiers are tried, not by this table.
var fusionRules = map[fusionKey]FusionLabel{
	// sadness + isolation → insecurity
	{EmotionSad, "lonely"}:     FusionInsecure,
	{EmotionSad, "loneliness"}: FusionInsecure,

	// happy + shy/soft → tenderness
	{EmotionHappy, "shy"}:     FusionTender,
	{EmotionHappy, "bashful"}: FusionTender,
	{EmotionHappy, "soft"}:    FusionTender,

	// curious + fear/anxiety → flustered
	{EmotionCurious, EmotionAfraid}:  FusionFlustered,
	{EmotionCurious, EmotionAnxious}: FusionFlustered,
	{EmotionCurious, "nervous"}:      FusionFlustered,

	// nostalgic + sad → bittersweet
	{EmotionNostalgic, EmotionSad}:   FusionBittersweet,
	{EmotionNostalgic, EmotionTired}: FusionBittersweet,

	// playful + anger/annoyance → mischievous edge
	{EmotionHappy, "angry"}:          FusionMischievous,
	{EmotionHappy, EmotionAnnoyed}:   FusionMischievous,
	{EmotionExcited, "angry"}:        FusionMischievous,
	{EmotionExcited, EmotionAnnoyed}: FusionMischievous,
	{EmotionCurious, EmotionAnnoyed}: FusionTeasingIrritation,

	// affection + jealousy → possessive warmth
	{EmotionHappy, "jealous"}:     FusionPossessiveWarmth,
	{EmotionNostalgic, "jealous"}: FusionPossessiveWarmth,

	// bored + restless → frustrated
	{EmotionBored, "restless"}:  FusionFrustrated,
	{EmotionBored, "impatient"}: FusionFrustrated,

	// afraid + attachment → clingy
	{EmotionAfraid, "lonely"}:    FusionClingy,
	{EmotionAfraid, "abandoned"}: FusionClingy,

	// calm + lonely → soft sadness
	{EmotionCalm, "lonely"}: FusionQuietAche,

	// generic combos
	{EmotionSad, "jealous"}: FusionBitter,
	{EmotionSad, "envy"}:    FusionBitter,
	{EmotionHappy, "envy"}:  FusionCompetitiveWarmth,
}

// unstableFusions fade quickly during idle decay.
var unstableFusions = map[FusionLabel]bool{
	FusionFrustrated:        true,
	FusionInsecure:          true,
	FusionClingy:            true,
	FusionTeasingIrritation: true,
	FusionBitter:            true,
}

func normalizeEmotion(e Emotion) Emotion {
	return Emotion(strings.ToLower(strings.TrimSpace(string(e))))
}

// ComputeFusion determines the emergent fusion label for a primary emotion
// combined with secondary shades and transient spikes.
//
// Spikes take priority over secondary shades; within each list the first
// match wins, in the list's own order. Pure function: no match → FusionNone.
func ComputeFusion(primary Emotion, secondary, spikes []Emotion) FusionLabel {
	p := normalizeEmotion(primary)
	if p == "" {
		return FusionNone
	}
	for _, sp := range spikes {
		m := normalizeEmotion(sp)
		if m == "" {
			continue
		}
		if f, ok := fusionRules[fusionKey{p, m}]; ok {
			return f
		}
	}
	for _, sec := range secondary {
		m := normalizeEmotion(sec)
		if m == "" {
			continue
		}
		if f, ok := fusionRules[fusionKey{p, m}]; ok {
			return f
		}
	}
	return FusionNone
}

// UpdateFusion recomputes the fusion label on the state and stamps the
// bookkeeping timestamp. Safe to call at any time; derives only from the
// fields it reads.
func UpdateFusion(state *EmotionalState, spikes []Emotion) {
	state.Fusion = ComputeFusion(state.Primary, state.Secondary, spikes)
	state.LastFusionUpdate = time.Now()
}
