package novacore

// ──────────────────────────────────────────────
// Relationship stages & disclosure gating
// ──────────────────────────────────────────────

// RelationshipStage is the ordered relationship label. Each stage carries a
// numeric level; the level gates which private facts may be disclosed.
type RelationshipStage string

const (
	StageEnemy        RelationshipStage = "enemy"
	StageFrenemy      RelationshipStage = "frenemy"
	StageAcquaintance RelationshipStage = "acquaintance"
	StageFriend       RelationshipStage = "friend"
	StageCrush        RelationshipStage = "crush"
	StageLover        RelationshipStage = "lover"
	StageGirlfriend   RelationshipStage = "girlfriend"
	StagePartner      RelationshipStage = "partner"
)

// RelationshipMaxLevel is the top of the 0-7 stage ladder.
const RelationshipMaxLevel = 7

// stageProfile holds the slider defaults applied when entering a stage.
type stageProfile struct {
	level        int
	identityI    float64 // how much "I" framing
	identityWe   float64 // how much "we" framing
	independence float64
	dependence   float64
}

var stageProfiles = map[RelationshipStage]stageProfile{
	StageEnemy:        {level: 0, identityI: 1.0, identityWe: 0.0, independence: 1.0, dependence: 0.0},
	StageFrenemy:      {level: 1, identityI: 1.0, identityWe: 0.1, independence: 0.9, dependence: 0.0},
	StageAcquaintance: {level: 2, identityI: 1.0, identityWe: 0.05, independence: 0.9, dependence: 0.05},
	StageFriend:       {level: 3, identityI: 0.9, identityWe: 0.3, independence: 0.85, dependence: 0.15},
	StageCrush:        {level: 4, identityI: 0.8, identityWe: 0.5, independence: 0.7, dependence: 0.3},
	StageLover:        {level: 5, identityI: 0.7, identityWe: 0.6, independence: 0.65, dependence: 0.35},
	StageGirlfriend:   {level: 6, identityI: 0.6, identityWe: 0.7, independence: 0.6, dependence: 0.4},
	StagePartner:      {level: 7, identityI: 0.5, identityWe: 0.8, independence: 0.5, dependence: 0.5},
}

// Level returns the numeric level for the stage (acquaintance if unknown).
func (s RelationshipStage) Level() int {
	if p, ok := stageProfiles[s]; ok {
		return p.level
	}
	return stageProfiles[StageAcquaintance].level
}

// RelationshipSnapshot is the per-turn relational view consumed by the
// intent layer. Scalars are in [0,1].
type RelationshipSnapshot struct {
	Label      RelationshipStage `json:"label"`
	Level      int               `json:"level"`
	Trust      float64           `json:"trust"`
	Safety     float64           `json:"safety"`
	Attachment float64           `json:"attachment"`
}

// disclosureLocks maps private-topic tags to the minimum stage level
// required before the topic may be shared.
var disclosureLocks = map[string]int{
	"trauma_level_1":     2,
	"trauma_level_2":     3,
	"trauma_level_3":     4,
	"first_kiss":         2,
	"first_time":         3,
	"first_crush":        1,
	"first_relationship": 1,
	"nostalgia_personal": 0,
	"family_history":     1,
}

// IdentityEngine tracks the long-term relationship stage, its sliders, and
// the trust/safety/attachment scalars that grow slowly across turns.
type IdentityEngine struct {
	stage      RelationshipStage
	profile    stageProfile
	trust      float64
	safety     float64
	attachment float64

	// identityBase is the stable personality anchor fed to maturity.
	identityBase float64
}

// NewIdentityEngine starts at the given stage (acquaintance by default).
func NewIdentityEngine(stage RelationshipStage) *IdentityEngine {
	e := &IdentityEngine{
		trust:        0.2,
		safety:       0.2,
		attachment:   0.0,
		identityBase: 0.5,
	}
	if stage == "" {
		stage = StageAcquaintance
	}
	e.SetStage(stage)
	return e
}

// SetStage applies a stage and its slider defaults. Unknown stages are
// ignored.
func (e *IdentityEngine) SetStage(stage RelationshipStage) {
	p, ok := stageProfiles[stage]
	if !ok {
		return
	}
	e.stage = stage
	e.profile = p
}

// Stage returns the current relationship stage.
func (e *IdentityEngine) Stage() RelationshipStage { return e.stage }

// BaseMaturity returns the identity anchor used by the maturity formula.
func (e *IdentityEngine) BaseMaturity() float64 { return e.identityBase }

// Allowed reports whether the private topic behind lockKey may be
// disclosed at the current stage. Unknown keys are unlocked.
func (e *IdentityEngine) Allowed(lockKey string) bool {
	return e.profile.level >= disclosureLocks[lockKey]
}

// UpdateRelationship advances trust/safety/attachment from one exchange
// and returns the per-turn snapshot. Warm messages build trust slowly;
// everything decays toward the stage's gravity otherwise.
func (e *IdentityEngine) UpdateRelationship(userMessage string, mood MoodSnapshot) RelationshipSnapshot {
	// Positive mood nudges the bond; negative erodes safety slightly.
	if mood.Valence > 0.6 {
		e.trust = clamp01(e.trust + 0.01)
		e.attachment = clamp01(e.attachment + 0.008)
	}
	if mood.Valence < 0.3 {
		e.safety = clamp01(e.safety - 0.005)
	}
	// Safety trails trust.
	e.safety = clamp01(e.safety + (e.trust-e.safety)*0.05)

	// Attachment gravity from the stage's dependence slider.
	e.attachment = clamp01(e.attachment + (e.profile.dependence-e.attachment)*0.02)

	return e.Snapshot()
}

// Snapshot returns the current relational view.
func (e *IdentityEngine) Snapshot() RelationshipSnapshot {
	return RelationshipSnapshot{
		Label:      e.stage,
		Level:      e.profile.level,
		Trust:      e.trust,
		Safety:     e.safety,
		Attachment: e.attachment,
	}
}

// RewardTrust applies an explicit trust boost, used by the sleep cycle's
// soft-closeness effect.
func (e *IdentityEngine) RewardTrust(amount float64) {
	e.trust = clamp01(e.trust + amount)
}
