// Package effect defines tagged mutation descriptors and the pipeline
// that dispatches them (spec §4.6). Actions are stateless: they
// compute Effects from the context and return them; only the pipeline
// (invoked by the engine) actually mutates combatant state.
package effect

import "github.com/ashcrest-forge/encounter-engine/internal/combatant"

// Kind discriminates which mutation an Effect describes.
type Kind string

const (
	KindDamage         Kind = "damage"
	KindConsumeSlot    Kind = "consume_slot"
	KindApplyCondition Kind = "apply_condition"
)

// Effect is a tagged mutation descriptor. Exactly one of the typed
// accessors is meaningful for a given Kind(); construct values with
// the Damage, ConsumeSlot and ApplyCondition functions below rather
// than struct literals.
type Effect struct {
	kind Kind

	sourceID string
	targetID string
	amount   int

	casterID string
	level    int

	conditionID string
	duration    *int
}

// Kind returns the variant discriminator.
func (e Effect) Kind() Kind { return e.kind }

// Damage builds a Damage effect.
func Damage(sourceID, targetID string, amount int) Effect {
	return Effect{kind: KindDamage, sourceID: sourceID, targetID: targetID, amount: amount}
}

// ConsumeSlot builds a ConsumeSlot effect.
func ConsumeSlot(casterID string, level int) Effect {
	return Effect{kind: KindConsumeSlot, casterID: casterID, level: level}
}

// ApplyCondition builds an ApplyCondition effect. duration may be nil
// for an indefinite condition.
func ApplyCondition(sourceID, targetID, conditionID string, duration *int) Effect {
	return Effect{kind: KindApplyCondition, sourceID: sourceID, targetID: targetID, conditionID: conditionID, duration: duration}
}

// SourceID returns the effect's originating combatant, for Damage and
// ApplyCondition.
func (e Effect) SourceID() string { return e.sourceID }

// TargetID returns the affected combatant, for Damage and
// ApplyCondition.
func (e Effect) TargetID() string { return e.targetID }

// Amount returns the damage amount, for Damage.
func (e Effect) Amount() int { return e.amount }

// CasterID returns the spellcaster, for ConsumeSlot.
func (e Effect) CasterID() string { return e.casterID }

// Level returns the spell slot level, for ConsumeSlot.
func (e Effect) Level() int { return e.level }

// ConditionID returns the condition identifier, for ApplyCondition.
func (e Effect) ConditionID() string { return e.conditionID }

// Duration returns the condition duration in rounds, for
// ApplyCondition. Nil means indefinite.
func (e Effect) Duration() *int { return e.duration }

// Outcome reports the per-effect result of applying one Effect.
type Outcome struct {
	Effect        Effect
	Applied       bool
	TargetHPAfter int // meaningful only for Damage
	Remaining     int // meaningful only for ConsumeSlot
	FailureReason string
}

// Lookup resolves a combatant by ID for the pipeline.
type Lookup interface {
	Get(id string) (combatant.Contract, bool)
}

// Apply dispatches effects in emission order (spec §4.6). If an effect
// fails to apply (e.g. ConsumeSlot with no remaining slot), processing
// stops immediately: the failing Outcome is the last entry returned,
// and no subsequent effect is attempted. Effects already applied
// before the failure remain applied (monotonic mutation).
func Apply(lookup Lookup, effects []Effect) []Outcome {
	outcomes := make([]Outcome, 0, len(effects))

	for _, e := range effects {
		outcome := apply(lookup, e)
		outcomes = append(outcomes, outcome)
		if !outcome.Applied {
			break
		}
	}

	return outcomes
}

func apply(lookup Lookup, e Effect) Outcome {
	switch e.Kind() {
	case KindDamage:
		target, ok := lookup.Get(e.TargetID())
		if !ok {
			return Outcome{Effect: e, Applied: false, FailureReason: "target not found"}
		}
		target.ApplyDamage(e.Amount())
		return Outcome{Effect: e, Applied: true, TargetHPAfter: target.HP()}

	case KindConsumeSlot:
		caster, ok := lookup.Get(e.CasterID())
		if !ok {
			return Outcome{Effect: e, Applied: false, FailureReason: "caster not found"}
		}
		slots := caster.SpellSlots()
		if !slots.Consume(e.Level()) {
			return Outcome{Effect: e, Applied: false, FailureReason: "no spell slot remaining"}
		}
		return Outcome{Effect: e, Applied: true, Remaining: slots.Remaining(e.Level())}

	case KindApplyCondition:
		target, ok := lookup.Get(e.TargetID())
		if !ok {
			return Outcome{Effect: e, Applied: false, FailureReason: "target not found"}
		}
		target.AddCondition(combatant.Condition{ID: e.ConditionID(), Duration: e.Duration()})
		return Outcome{Effect: e, Applied: true}

	default:
		return Outcome{Effect: e, Applied: false, FailureReason: "unknown effect kind"}
	}
}
