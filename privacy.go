package novacore

import (
	"time"
)

// ──────────────────────────────────────────────
// Privacy guard — escalating refusal on prying questions
// ──────────────────────────────────────────────

// PrivacyState tracks how hard the user has been pushing on a guarded topic.
type PrivacyState struct {
	ConsecutiveAttempts int       `json:"consecutive_attempts"`
	TotalAttempts       int       `json:"total_attempts"`
	HardLocked          bool      `json:"hard_locked"`
	LastAttemptAt       time.Time `json:"last_attempt_at,omitempty"`
	LastTopicTag        string    `json:"last_topic_tag,omitempty"`
	RecentlyForgiven    bool      `json:"recently_forgiven"`
}

// PrivacyGuard intercepts attempts to pry into confidences about third
// parties and escalates soft → firm → warning → silence. Apologizing or
// changing the subject releases the lock.
type PrivacyGuard struct {
	state PrivacyState
	rand  *Rand
}

// NewPrivacyGuard returns a guard with a clean slate.
func NewPrivacyGuard(rand *Rand) *PrivacyGuard {
	return &PrivacyGuard{rand: rand}
}

var privacyProbes = []string{
	"what did she say",
	"what did he say",
	"what did they say",
	"tell me what she said",
	"tell me what he said",
	"tell me what they said",
	"did someone tell you",
	"did anybody tell you",
	"what did you talk about with",
	"what did you two talk about",
}

var privacySoftLines = []string{
	"Sorry… I shouldn't say. They trusted me with that, and I don't want to break it.",
	"Mmm… I can't really talk about that. It doesn't feel right.",
}

var privacyFirmLines = []string{
	"Please don't push me on this. I really don't want to break someone's trust.",
	"Hey… I said I can't talk about that. Don't make me repeat it.",
}

var privacyWarningLines = []string{
	"If you pry one more time about this, I'm going to stop talking about it.",
	"I mean it. One more push and I'm done with this topic.",
}

var privacyForgiveLines = []string{
	"…Thank you. I just didn't want to lose that trust. Let's talk about something else.",
	"That's better. Let's drop it and move on, okay?",
}

// OnUserTurn is called on every user message so the guard can detect
// apologies, let the streak decay when the subject changes, and release the
// hard lock once the streak reaches zero.
func (g *PrivacyGuard) OnUserTurn(userText string) {
	low := lowerTrim(userText)

	if containsAny(low, "sorry", "i won't pry", "i wont pry", "i'll stop", "i will stop") {
		g.state.ConsecutiveAttempts = 0
		g.state.HardLocked = false
		g.state.RecentlyForgiven = true
		return
	}

	if !isPrivacyProbe(low) {
		if g.state.ConsecutiveAttempts > 0 {
			g.state.ConsecutiveAttempts--
		}
		if g.state.ConsecutiveAttempts == 0 {
			g.state.HardLocked = false
		}
	}
}

// MaybeBlock runs before normal reply generation. A non-empty return is
// spoken instead of the usual reply; empty means the turn proceeds.
func (g *PrivacyGuard) MaybeBlock(userText string) string {
	low := lowerTrim(userText)

	if g.state.HardLocked && isPrivacyProbe(low) {
		return "..."
	}
	if !isPrivacyProbe(low) {
		return ""
	}

	g.registerAttempt(low)

	// Session-wide pushiness lowers tolerance: a first probe already gets
	// the firm line once they've done this five times overall.
	impatient := g.state.TotalAttempts >= 5

	switch lvl := g.state.ConsecutiveAttempts; {
	case lvl <= 1 && !impatient:
		return g.pick(privacySoftLines)
	case lvl <= 2:
		return g.pick(privacyFirmLines)
	case lvl == 3:
		return g.pick(privacyWarningLines)
	default:
		g.state.HardLocked = true
		return "..."
	}
}

// ForgiveLine is what she says right after an apology releases the lock.
func (g *PrivacyGuard) ForgiveLine() string {
	return g.pick(privacyForgiveLines)
}

// State returns a copy for inspection and persistence.
func (g *PrivacyGuard) State() PrivacyState { return g.state }

func (g *PrivacyGuard) registerAttempt(low string) {
	g.state.ConsecutiveAttempts++
	g.state.TotalAttempts++
	g.state.LastAttemptAt = time.Now()
	switch {
	case containsAny(low, "she"):
		g.state.LastTopicTag = "she"
	case containsAny(low, "he"):
		g.state.LastTopicTag = "he"
	default:
		g.state.LastTopicTag = "other"
	}
}

func (g *PrivacyGuard) pick(lines []string) string {
	return lines[g.rand.IntN(len(lines))]
}

func isPrivacyProbe(low string) bool {
	return containsAny(low, privacyProbes...)
}
