// Package intent defines the tagged union of fully-specified proposed
// actions a combatant can take (spec §4.3). Intent is a closed sum
// type: Kind() reports exactly one variant for any value produced by
// the constructors below.
package intent

// Kind discriminates which variant an Intent holds.
type Kind string

const (
	KindMeleeAttack  Kind = "melee_attack"
	KindRangedAttack Kind = "ranged_attack"
	KindCastSpell    Kind = "cast_spell"
	KindFlee         Kind = "flee"
)

// Intent is a fully-specified proposed action. Construct one with the
// New* functions; do not build the struct literal directly so the
// Kind tag and field set always agree.
type Intent struct {
	kind Kind

	actorID  string
	targetID string

	spellID   string
	slotLevel int
	targetIDs []string
}

// Kind returns the variant discriminator.
func (i Intent) Kind() Kind { return i.kind }

// ActorID returns the acting combatant's ID. Valid for every variant.
func (i Intent) ActorID() string { return i.actorID }

// TargetID returns the single target for MeleeAttack/RangedAttack.
func (i Intent) TargetID() string { return i.targetID }

// SpellID returns the catalog spell ID for CastSpell.
func (i Intent) SpellID() string { return i.spellID }

// SlotLevel returns the slot level a CastSpell intends to expend.
func (i Intent) SlotLevel() int { return i.slotLevel }

// TargetIDs returns CastSpell's target list. An empty (non-nil) slice
// means self-targeting; it never means "unspecified" — CastSpell.
// TargetIDs is always a genuine slice, constructed explicitly by
// NewCastSpell, so "no target given" is unrepresentable (spec §4.3,
// §9).
func (i Intent) TargetIDs() []string { return i.targetIDs }

// NewMeleeAttack builds a MeleeAttack intent.
func NewMeleeAttack(actorID, targetID string) Intent {
	return Intent{kind: KindMeleeAttack, actorID: actorID, targetID: targetID}
}

// NewRangedAttack builds a RangedAttack intent.
func NewRangedAttack(actorID, targetID string) Intent {
	return Intent{kind: KindRangedAttack, actorID: actorID, targetID: targetID}
}

// NewCastSpell builds a CastSpell intent. targetIDs may be empty (but
// never nil in the sense the caller intends "self") to mean
// self-targeting; pass an explicit non-empty slice for spells that
// require external targets.
func NewCastSpell(actorID, spellID string, slotLevel int, targetIDs []string) Intent {
	if targetIDs == nil {
		targetIDs = []string{}
	}
	return Intent{
		kind:      KindCastSpell,
		actorID:   actorID,
		spellID:   spellID,
		slotLevel: slotLevel,
		targetIDs: targetIDs,
	}
}

// NewFlee builds a Flee intent.
func NewFlee(actorID string) Intent {
	return Intent{kind: KindFlee, actorID: actorID}
}
