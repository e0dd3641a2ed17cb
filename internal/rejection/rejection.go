// Package rejection defines the structured reasons an action can be
// refused (spec §4.5). Validators collect every applicable code, not
// just the first, so consumers can present them together.
package rejection

// Code enumerates the reasons an intent can fail validation or effect
// application.
type Code string

const (
	ActorDead               Code = "actor_dead"
	ActorNotCurrent         Code = "actor_not_current"
	TargetDead              Code = "target_dead"
	TargetNotOpponent       Code = "target_not_opponent"
	NoRangedWeapon          Code = "no_ranged_weapon"
	UnknownSpell            Code = "unknown_spell"
	IneligibleCaster        Code = "ineligible_caster"
	SlotLevelMismatch       Code = "slot_level_mismatch"
	NoSpellSlot             Code = "no_spell_slot"
	MonsterActionNotSupported Code = "monster_action_not_supported"
	InvalidTarget           Code = "invalid_target"
)

// Rejection is a single structured reason an action was refused.
type Rejection struct {
	Code   Code
	Reason string
}

// New builds a Rejection with a human reason.
func New(code Code, reason string) Rejection {
	return Rejection{Code: code, Reason: reason}
}
