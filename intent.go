package novacore

import (
	"fmt"
	"strings"
)

// ──────────────────────────────────────────────
// Per-turn snapshots and the Intent contract
// ──────────────────────────────────────────────

// EmotionSnapshot is the per-turn emotional view.
type EmotionSnapshot struct {
	Primary   Emotion     `json:"primary"`
	Fusion    FusionLabel `json:"fusion,omitempty"`
	Intensity float64     `json:"intensity"`
	Stability float64     `json:"stability"`
}

// MoodSnapshot is the per-turn mood view.
type MoodSnapshot struct {
	Label   Emotion `json:"label"`
	Valence float64 `json:"valence"`
	Energy  float64 `json:"energy"`
}

// MemoryKind tags where a memory snippet came from.
type MemoryKind string

const (
	MemoryRecent     MemoryKind = "recent"
	MemoryEpisodicK  MemoryKind = "episodic"
	MemoryContinuity MemoryKind = "continuity"
)

// MemorySnippet is a short piece of remembered text with a relevance
// weight, passed into the intent layer.
type MemorySnippet struct {
	Text   string     `json:"text"`
	Weight float64    `json:"weight"`
	Kind   MemoryKind `json:"kind"`
}

// QuestionType is the coarse pre-classification of the user's message.
type QuestionType string

const (
	QuestionHowAreYou  QuestionType = "how_are_you"
	QuestionWhatIf     QuestionType = "what_if"
	QuestionPreference QuestionType = "preference"
	QuestionGeneric    QuestionType = "generic"
)

// SpeakingMode is the high-level conversational mode of a reply.
type SpeakingMode string

const (
	ModeAnswer       SpeakingMode = "answer"
	ModeAnswerAndAsk SpeakingMode = "answer_and_ask"
	ModeReflective   SpeakingMode = "reflective"
	ModeLight        SpeakingMode = "light"
	ModeSoft         SpeakingMode = "soft"
	ModeQuestion     SpeakingMode = "question"
)

// ToneStyle is the high-level tone label consumed by the speech layer.
type ToneStyle string

const (
	ToneCalm     ToneStyle = "calm"
	ToneSoft     ToneStyle = "soft"
	ToneHesitant ToneStyle = "hesitant"
	ToneFlat     ToneStyle = "flat"
	TonePouty    ToneStyle = "pouty"
	ToneGentle   ToneStyle = "gentle"
	ToneLight    ToneStyle = "light"
)

// IntentContext is everything the pipeline knows at the moment before
// speaking. Assembled fresh by the orchestrator each turn; engines must
// not retain it.
type IntentContext struct {
	UserMessage string

	Emotion      EmotionSnapshot
	Mood         MoodSnapshot
	Needs        NeedsSnapshot
	Relationship RelationshipSnapshot
	Drives       DriveSnapshot

	Maturity     float64
	PersonaBrief string

	RecentMemory   []MemorySnippet
	EpisodicMemory []MemorySnippet

	AllowNSFW        bool
	IsDirectQuestion bool
	QuestionType     QuestionType

	// Affection framing from the affection engine.
	Affection     float64
	Arousal       float64
	Comfort       float64
	Fluster       float64
	NSFWReadiness float64
}

// Intent is the structured plan for the upcoming reply — what to express,
// not the words. Built once per turn, mutated only by the inner-voice and
// initiative passes, then immutable to the text-generation call.
type Intent struct {
	EmotionLabel Emotion     `json:"emotion_label"`
	FusionLabel  FusionLabel `json:"fusion_label,omitempty"`
	MoodLabel    Emotion     `json:"mood_label"`
	Maturity     float64     `json:"maturity"`

	RelationshipLabel RelationshipStage `json:"relationship_label"`
	Openness          float64           `json:"openness"`
	Vulnerability     float64           `json:"vulnerability"`
	Playfulness       float64           `json:"playfulness"`
	Hesitation        float64           `json:"hesitation"`

	SpeakingMode SpeakingMode `json:"speaking_mode"`
	ToneStyle    ToneStyle    `json:"tone_style"`
	ContentGoal  string       `json:"content_goal"`

	MemoryHint string `json:"memory_hint,omitempty"`

	MentionFeeling bool `json:"mention_feeling"`
	MentionNeeds   bool `json:"mention_needs"`
	AskBack        bool `json:"ask_back"`
	NSFWReady      bool `json:"nsfw_ready"`
}

// PromptBrief renders the intent as a compact system-prompt block for the
// generation backend.
func (in *Intent) PromptBrief() string {
	var b strings.Builder
	b.WriteString("You are replying in character. Current inner state:\n")
	fmt.Fprintf(&b, "- feeling: %s", in.EmotionLabel)
	if in.FusionLabel != FusionNone {
		fmt.Fprintf(&b, " (%s)", in.FusionLabel)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- mood: %s\n", in.MoodLabel)
	fmt.Fprintf(&b, "- relationship: %s\n", in.RelationshipLabel)
	fmt.Fprintf(&b, "- tone: %s, mode: %s\n", in.ToneStyle, in.SpeakingMode)
	fmt.Fprintf(&b, "- openness %.2f, vulnerability %.2f, playfulness %.2f, hesitation %.2f\n",
		in.Openness, in.Vulnerability, in.Playfulness, in.Hesitation)
	if in.ContentGoal != "" {
		fmt.Fprintf(&b, "- goal: %s\n", in.ContentGoal)
	}
	if in.MemoryHint != "" {
		fmt.Fprintf(&b, "- you remember: %s\n", in.MemoryHint)
	}
	if in.MentionFeeling {
		b.WriteString("- let the feeling show in the wording\n")
	}
	if in.MentionNeeds {
		b.WriteString("- a physical need is pressing; it may leak into the reply\n")
	}
	if in.AskBack {
		b.WriteString("- end with a question back\n")
	}
	return b.String()
}

// ClassifyQuestion pre-classifies the user's message for the speaking-mode
// switch.
func ClassifyQuestion(text string) QuestionType {
	low := lowerTrim(text)
	switch {
	case containsAny(low, "how are you", "how're you", "how r u"):
		return QuestionHowAreYou
	case hasPrefix(low, "what if"):
		return QuestionWhatIf
	case containsAny(low, "do you like", "do you prefer", "what's your favorite", "whats your favorite"):
		return QuestionPreference
	default:
		return QuestionGeneric
	}
}
