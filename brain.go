package novacore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// ──────────────────────────────────────────────
// BrainLoop — the per-turn orchestrator
// ──────────────────────────────────────────────

// SpeakFn receives everything spoken outside a direct turn reply: idle
// pings, return reactions, wake-up narration, initiative lines. Injected by
// the caller; nil means spontaneous speech is dropped.
type SpeakFn func(text string, intent *Intent)

// BrainConfig configures a BrainLoop.
type BrainConfig struct {
	// Baseline is the resting emotional anchor; empty defaults to curious.
	Baseline Emotion

	// Stage is the starting relationship stage; empty defaults to friend.
	Stage RelationshipStage

	// PersonaBrief is the short self-description handed to the generator.
	PersonaBrief string

	// AllowNSFW unlocks the readiness gating in the intent layer.
	AllowNSFW bool

	// Seed seeds the shared RNG; 0 uses the current time.
	Seed int64

	Generator TextGenerator
	Store     StateStore
	Speak     SpeakFn
	Logger    zerolog.Logger
}

// BrainLoop wires every engine together and runs one conversation. All
// shared state lives behind a single mutex; the only thing that happens
// outside the lock is the generator call.
type BrainLoop struct {
	mu sync.Mutex

	log  zerolog.Logger
	rand *Rand

	store      StateStore
	emotional  *EmotionalState
	stimuli    *StimulusMap
	emotion    *EmotionEngine
	needs      *NeedsEngine
	drives     *DriveEngine
	maturity   *MaturityEngine
	identity   *IdentityEngine
	affection  *AffectionEngine
	library    *MemoryLibrary
	consol     *MemoryConsolidationEngine
	continuity *ContinuityEngine
	intents    *IntentBuilder
	inner      *InnerVoice
	initiate   *InitiativeEngine
	privacy    *PrivacyGuard
	daily      *DailyCycleEngine

	generator TextGenerator
	speak     SpeakFn

	state     *NovaState
	persona   *PersonaEngine
	allowNSFW bool

	lastUserAt  time.Time
	lastSpokeAt time.Time
	didPing     bool
	didRest     bool
	dream       string
	dreamTone   Emotion

	greetMu    sync.Mutex
	greetTimer *time.Timer

	turns atomic.Int64
}

// NewBrainLoop assembles the full pipeline. State is restored from the
// store where present; missing or unreadable keys degrade to defaults.
func NewBrainLoop(cfg BrainConfig) *BrainLoop {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStateStore()
	}
	if cfg.Stage == "" {
		cfg.Stage = StageFriend
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := NewRand(seed)
	log := cfg.Logger
	stimuli := LoadStimulusMap(cfg.Store, log)
	library := NewMemoryLibrary(cfg.Store, rng, log)
	library.Load()
	continuity := NewContinuityEngine(cfg.Store, log)
	continuity.Load()

	now := time.Now()
	b := &BrainLoop{
		log:         log,
		rand:        rng,
		store:       cfg.Store,
		emotional:   LoadEmotionalState(cfg.Store, cfg.Baseline, log),
		stimuli:     stimuli,
		needs:       NewNeedsEngine(rng),
		drives:      NewDriveEngine(),
		maturity:    NewMaturityEngine(),
		identity:    NewIdentityEngine(cfg.Stage),
		affection:   NewAffectionEngine(),
		library:     library,
		continuity:  continuity,
		intents:     NewIntentBuilder(),
		inner:       NewInnerVoice(),
		initiate:    NewInitiativeEngine(rng),
		privacy:     NewPrivacyGuard(rng),
		daily:       NewDailyCycleEngine(),
		generator:   cfg.Generator,
		speak:       cfg.Speak,
		state:       &NovaState{},
		persona:     NewPersonaEngine(cfg.PersonaBrief),
		allowNSFW:   cfg.AllowNSFW,
		lastUserAt:  now,
		lastSpokeAt: now,
	}
	b.emotion = NewEmotionEngine(stimuli, rng)
	b.consol = NewMemoryConsolidationEngine(library, rng)
	return b
}

// ProcessTurn runs the whole pipeline for one user message and returns the
// reply. Generation failures never surface; the fallback line is spoken
// instead. The generator call itself runs outside the state lock.
func (b *BrainLoop) ProcessTurn(ctx context.Context, userText string) string {
	b.mu.Lock()

	awaySeconds := time.Since(b.lastUserAt).Seconds()
	b.noteUserActivityLocked()

	if b.daily.Asleep() {
		b.wakeLocked()
	} else if awaySeconds > 60 && b.state.LastUserMessage != "" {
		b.emitLocked(returnReaction(awaySeconds, b.emotional.Fusion, b.state.LastUserMessage))
	}

	b.privacy.OnUserTurn(userText)
	if line := b.privacy.MaybeBlock(userText); line != "" {
		b.state.RecordTurn(userText, line, b.emotional.Primary)
		b.persistLocked()
		b.lastSpokeAt = time.Now()
		b.mu.Unlock()
		return line
	}

	needsSnap := b.needs.Update()
	b.emotion.Classify(b.emotional, userText)

	mood := b.emotional.MoodSnapshot()
	emoSnap := b.emotional.Snapshot()
	relSnap := b.identity.UpdateRelationship(userText, mood)

	maturity := b.maturity.Compute(MaturityInputs{
		IdentityBase:       b.identity.BaseMaturity(),
		RelationshipLevel:  relSnap.Level,
		MoodBalance:        mood.Valence,
		EmotionalIntensity: emoSnap.Intensity,
		EmotionalStability: emoSnap.Stability,
		NeedPressure:       needsSnap.Pressure(),
	})
	affection := b.affection.Update(relSnap, mood, emoSnap, maturity)

	if mood.Valence > 0.6 {
		b.needs.ReceiveAffection(0.2)
		needsSnap = b.needs.Snapshot()
	}

	trend := b.library.DominantTrend(30 * time.Minute)
	drives := b.drives.Compute(emoSnap.Primary, trend)

	b.recordSignificantLocked(emoSnap, relSnap, maturity)

	recent := b.recentSnippetsLocked()
	episodic := b.library.Snippets(userText, emoSnap.Primary, 3)

	b.state.Emotion = emoSnap
	b.state.Mood = mood
	b.state.Needs = needsSnap
	b.state.Drives = drives
	b.state.Relationship = relSnap
	b.state.Affection = affection
	b.state.Maturity = maturity
	b.state.PersonaBrief = b.persona.Brief(b.emotional)
	b.state.RecentMemory = recent
	b.state.EpisodicMemory = episodic
	b.state.ContinuityMemory = b.continuity.Snippets()

	if b.daily.ShouldSleep(needsSnap, emoSnap) {
		line := b.fallAsleepLocked()
		b.state.RecordTurn(userText, line, emoSnap.Primary)
		b.persistLocked()
		b.lastSpokeAt = time.Now()
		b.mu.Unlock()
		return line
	}

	qt := ClassifyQuestion(userText)
	ictx := &IntentContext{
		UserMessage:      userText,
		Emotion:          emoSnap,
		Mood:             mood,
		Needs:            needsSnap,
		Relationship:     relSnap,
		Drives:           drives,
		Maturity:         maturity,
		PersonaBrief:     b.state.PersonaBrief,
		RecentMemory:     recent,
		EpisodicMemory:   episodic,
		AllowNSFW:        b.allowNSFW,
		IsDirectQuestion: qt != QuestionGeneric,
		QuestionType:     qt,
		Affection:        affection.Affection,
		Arousal:          affection.Arousal,
		Comfort:          affection.Comfort,
		Fluster:          affection.Fluster,
		NSFWReadiness:    affection.Readiness,
	}

	intent := b.intents.Build(ictx)
	b.inner.MergeIntoIntent(intent, b.inner.Generate(ictx))

	if init := b.initiate.Evaluate(b.state, ictx); init != nil {
		applyInitiative(intent, init)
	}

	b.mu.Unlock()

	reply := b.generate(ctx, intent, userText)

	b.mu.Lock()
	b.state.RecordTurn(userText, reply, emoSnap.Primary)
	b.consol.Consolidate(b.state)
	b.persistLocked()
	b.lastSpokeAt = time.Now()
	b.mu.Unlock()

	b.turns.Inc()
	return reply
}

// applyInitiative folds an unprompted-topic decision into the turn intent.
// High priority hijacks the speaking goal outright; anything lower rides
// along as the memory hint and suppresses the ask-back.
func applyInitiative(intent *Intent, init *InitiativeIntent) {
	if init.Priority > 0.6 {
		intent.ContentGoal = init.Content
		intent.SpeakingMode = ModeQuestion
		return
	}
	intent.AskBack = false
	intent.MemoryHint = init.Content
}

// Turns reports how many full turns have been processed. Safe to read from
// any goroutine without the state lock.
func (b *BrainLoop) Turns() int64 { return b.turns.Load() }

// generate asks the backend for the reply, falling back to a canned line
// on any failure so a flaky model never stalls the conversation.
func (b *BrainLoop) generate(ctx context.Context, intent *Intent, userText string) string {
	if b.generator == nil {
		return FallbackReply
	}
	reply, err := b.generator.Generate(ctx, intent, userText)
	if err != nil {
		b.log.Warn().Err(err).Msg("generation failed, using fallback")
		return FallbackReply
	}
	return reply
}

// State returns a copy of the current aggregate for inspection.
func (b *BrainLoop) State() NovaState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.state
}

// Needs exposes the needs engine for direct actions (eat, drink, rest).
func (b *BrainLoop) Needs() *NeedsEngine { return b.needs }

// Library exposes the memory library for fact seeding and inspection.
func (b *BrainLoop) Library() *MemoryLibrary { return b.library }

// ─── Significant events ───

// recordSignificantLocked persists turns that cross the emotional or
// relational thresholds as emotional events for trend tracking.
func (b *BrainLoop) recordSignificantLocked(emo EmotionSnapshot, rel RelationshipSnapshot, maturity float64) {
	if emo.Intensity > 0.65 {
		b.library.RecordEmotionEvent(emo.Primary, emo.Intensity, "emotional_spike", "")
	}
	if rel.Attachment > 0.6 {
		b.library.RecordEmotionEvent(emo.Primary, emo.Intensity, "relationship_update", "")
	}
	if maturity < 0.45 && emo.Intensity > 0.4 {
		b.library.RecordEmotionEvent(emo.Primary, emo.Intensity, "vulnerability_event", "")
	}
}

// recentSnippetsLocked converts the tail of the short-term buffer into
// memory snippets for the intent layer.
func (b *BrainLoop) recentSnippetsLocked() []MemorySnippet {
	const tail = 6
	buf := b.state.ShortTerm
	if len(buf) > tail {
		buf = buf[len(buf)-tail:]
	}
	out := make([]MemorySnippet, 0, len(buf))
	for _, rec := range buf {
		out = append(out, MemorySnippet{Text: rec.Text, Weight: 0.3, Kind: MemoryRecent})
	}
	return out
}

// ─── Sleep and wake ───

// fallAsleepLocked runs the sleep-time consolidation and flips the cycle.
func (b *BrainLoop) fallAsleepLocked() string {
	result := b.consol.SleepCycle(b.state, nil)
	b.dream = result.Text
	b.dreamTone = result.Tone
	b.continuity.RecordSession(b.state, b.emotional.Snapshot())
	return b.daily.Sleep(b.emotional, b.identity)
}

// wakeLocked wakes her up, narrating the dream if one was synthesized.
// The dream's tone bleeds into the waking mood.
func (b *BrainLoop) wakeLocked() {
	line := b.daily.Wake(b.needs, b.emotional)
	b.library.RunDecay()
	if b.dream != "" {
		line = "*yawns softly* I… just woke up. " + b.dream
		if b.dreamTone != "" && b.dreamTone != EmotionNeutral {
			b.emotional.Push(b.dreamTone)
		}
		b.dream = ""
		b.dreamTone = ""
	}
	b.emitLocked(line)
}

// ─── Activity accounting ───

// noteUserActivityLocked resets the idle staging and cancels any pending
// startup greeting.
func (b *BrainLoop) noteUserActivityLocked() {
	b.lastUserAt = time.Now()
	b.didPing = false
	b.didRest = false
	b.CancelGreeting()
}

// emitLocked hands spontaneous speech to the speak callback and counts it
// as her speaking.
func (b *BrainLoop) emitLocked(text string) {
	b.lastSpokeAt = time.Now()
	if b.speak != nil {
		b.speak(text, nil)
	}
}

// persistLocked flushes everything durable; each flush logs and swallows
// its own faults.
func (b *BrainLoop) persistLocked() {
	b.stimuli.Flush()
	b.library.Flush()
	SaveEmotionalState(b.store, b.emotional, b.log)
}

// Close ends the session: the day is summarized, the long-horizon
// forgetting pass runs once, and everything durable is flushed. Stop the
// idle ticker before calling; Close does not own it.
func (b *BrainLoop) Close() {
	b.CancelGreeting()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.continuity.RecordSession(b.state, b.emotional.Snapshot())
	b.library.RunDecay()
	b.persistLocked()
}

// ─── Startup greeting ───

var greetLine = "hey, how are you?"

// ScheduleGreeting arms a one-shot greeting whose delay depends on the
// current mood and fusion. Any user input before it fires cancels it.
func (b *BrainLoop) ScheduleGreeting() {
	b.mu.Lock()
	delay := b.greetDelayLocked()
	b.mu.Unlock()

	b.greetMu.Lock()
	defer b.greetMu.Unlock()
	if b.greetTimer != nil {
		b.greetTimer.Stop()
	}
	b.greetTimer = time.AfterFunc(delay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.emitLocked(greetLine)
	})
}

// CancelGreeting stops a pending greeting, if any. Safe to call anytime.
func (b *BrainLoop) CancelGreeting() {
	b.greetMu.Lock()
	defer b.greetMu.Unlock()
	if b.greetTimer != nil {
		b.greetTimer.Stop()
		b.greetTimer = nil
	}
}

// greetDelayLocked picks how long she waits before speaking first. A heavy
// mood hesitates; a needy fusion reaches out fast.
func (b *BrainLoop) greetDelayLocked() time.Duration {
	seconds := b.rand.Uniform(10, 25)
	switch {
	case b.emotional.Fusion == FusionInsecure || b.emotional.Fusion == FusionClingy:
		seconds = b.rand.Uniform(5, 10)
	case b.emotional.Mood == EmotionSad || b.emotional.Mood == EmotionHurt ||
		b.emotional.Mood == EmotionMelancholy || b.emotional.Mood == EmotionSoft:
		seconds = b.rand.Uniform(30, 60)
	case b.emotional.Mood == EmotionWarm || b.emotional.Mood == EmotionHappy ||
		b.emotional.Mood == EmotionCurious:
		seconds = b.rand.Uniform(5, 20)
	}
	return time.Duration(seconds * float64(time.Second))
}
