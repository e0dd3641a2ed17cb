// Package event defines the closed, immutable event catalog the
// engine emits (spec §4.2). Every variant is a distinct struct type;
// Kind() returns a stable discriminator consumers can switch on
// without string-parsing a message or inspecting a generic context
// map. Ordering contract: ExecuteAction emits only resolution events,
// ApplyEffects emits only mutation events, and no state ever reorders
// or merges events once produced (spec §4.2). The one exception is a
// rejection at either state (Flee's placeholder ActionRejected at
// ExecuteAction, a failed ConsumeSlot at ApplyEffects): that batch
// then carries ActionRejected and, for a party decision, the
// re-decision NeedAction.
package event

import (
	"github.com/ashcrest-forge/encounter-engine/internal/choice"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// Kind is the stable discriminator tag serialized as "kind".
type Kind string

const (
	KindEncounterStarted   Kind = "encounter_started"
	KindSurpriseRolled     Kind = "surprise_rolled"
	KindRoundStarted       Kind = "round_started"
	KindInitiativeRolled   Kind = "initiative_rolled"
	KindTurnQueueBuilt     Kind = "turn_queue_built"
	KindTurnStarted        Kind = "turn_started"
	KindTurnSkipped        Kind = "turn_skipped"
	KindNeedAction         Kind = "need_action"
	KindAttackRolled       Kind = "attack_rolled"
	KindSpellCast          Kind = "spell_cast"
	KindDamageApplied      Kind = "damage_applied"
	KindSpellSlotConsumed  Kind = "spell_slot_consumed"
	KindConditionApplied   Kind = "condition_applied"
	KindEntityDied         Kind = "entity_died"
	KindMoraleCheckRolled  Kind = "morale_check_rolled"
	KindForcedIntentQueued Kind = "forced_intent_queued"
	KindForcedIntentApplied Kind = "forced_intent_applied"
	KindVictoryDetermined  Kind = "victory_determined"
	KindActionRejected     Kind = "action_rejected"
	KindEncounterFaulted   Kind = "encounter_faulted"
)

// Event is implemented by every variant below. Kind is the stable
// discriminator; consumers switch on it (or on the concrete Go type)
// rather than parsing any human-readable string.
type Event interface {
	Kind() Kind
}

// InitiativeEntry pairs a combatant ID with its rolled initiative.
type InitiativeEntry struct {
	ID   string
	Roll int
}

// --- Lifecycle / control ---

type EncounterStarted struct{ EncounterID string }

func (EncounterStarted) Kind() Kind { return KindEncounterStarted }

type SurpriseRolled struct {
	PartySurprised      bool
	OppositionSurprised bool
	PartyRoll           int
	OppositionRoll      int
}

func (SurpriseRolled) Kind() Kind { return KindSurpriseRolled }

type RoundStarted struct{ RoundNo int }

func (RoundStarted) Kind() Kind { return KindRoundStarted }

type InitiativeRolled struct{ Order []InitiativeEntry }

func (InitiativeRolled) Kind() Kind { return KindInitiativeRolled }

type TurnQueueBuilt struct{ Queue []string }

func (TurnQueueBuilt) Kind() Kind { return KindTurnQueueBuilt }

type TurnStarted struct{ ID string }

func (TurnStarted) Kind() Kind { return KindTurnStarted }

type TurnSkipped struct {
	ID     string
	Reason string
}

func (TurnSkipped) Kind() Kind { return KindTurnSkipped }

type NeedAction struct {
	ID        string
	Available []choice.ActionChoice
}

func (NeedAction) Kind() Kind { return KindNeedAction }

// --- Resolution (ExecuteAction only) ---

type AttackRolled struct {
	AttackerID string
	DefenderID string
	Roll       int
	Total      int
	Needed     int
	Hit        bool
	Critical   bool
}

func (AttackRolled) Kind() Kind { return KindAttackRolled }

type SpellCast struct {
	CasterID  string
	SpellID   string
	SpellName string
	TargetIDs []string
}

func (SpellCast) Kind() Kind { return KindSpellCast }

// --- Mutation (ApplyEffects only) ---

type DamageApplied struct {
	SourceID     string
	TargetID     string
	Amount       int
	TargetHPAfter int
}

func (DamageApplied) Kind() Kind { return KindDamageApplied }

type SpellSlotConsumed struct {
	CasterID  string
	Level     int
	Remaining int
}

func (SpellSlotConsumed) Kind() Kind { return KindSpellSlotConsumed }

type ConditionApplied struct {
	SourceID    string
	TargetID    string
	ConditionID string
	Duration    *int
}

func (ConditionApplied) Kind() Kind { return KindConditionApplied }

// --- Death / morale / victory ---

type EntityDied struct{ EntityID string }

func (EntityDied) Kind() Kind { return KindEntityDied }

type MoraleCheckRolled struct {
	ID        string
	Roll      int
	Threshold int
	Failed    bool
}

func (MoraleCheckRolled) Kind() Kind { return KindMoraleCheckRolled }

type ForcedIntentQueued struct {
	ID         string
	IntentKind string
}

func (ForcedIntentQueued) Kind() Kind { return KindForcedIntentQueued }

type ForcedIntentApplied struct {
	ID         string
	IntentKind string
}

func (ForcedIntentApplied) Kind() Kind { return KindForcedIntentApplied }

// Outcome is the terminal result of an encounter.
type Outcome string

const (
	OutcomeNone              Outcome = ""
	OutcomePartyVictory      Outcome = "party_victory"
	OutcomeOppositionVictory Outcome = "opposition_victory"
	OutcomeFaulted           Outcome = "faulted"
)

type VictoryDetermined struct{ Outcome Outcome }

func (VictoryDetermined) Kind() Kind { return KindVictoryDetermined }

// --- Errors ---

type ActionRejected struct {
	ID      string
	Reasons []rejection.Rejection
}

func (ActionRejected) Kind() Kind { return KindActionRejected }

type EncounterFaulted struct {
	State   string
	ActorID string
	ErrorKind string
	Message string
}

func (EncounterFaulted) Kind() Kind { return KindEncounterFaulted }
