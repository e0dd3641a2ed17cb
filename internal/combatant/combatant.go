// Package combatant defines combatant identity, side membership, and
// the narrow read/mutate contract the engine consumes (spec §3, §6).
// The core never instantiates characters or monsters; it only reads
// and mutates through Contract.
package combatant

import (
	"fmt"
	"strings"
)

// Side identifies which team a combatant belongs to.
type Side string

const (
	// Party is the player-controlled side.
	Party Side = "party"

	// Opposition is the monster/NPC side.
	Opposition Side = "opposition"
)

// PlayerID builds the canonical ID for a player character:
// "pc:<unique name>".
func PlayerID(name string) string {
	return "pc:" + name
}

// MonsterID builds the canonical ID for a monster: "monster:<name>:<index>",
// where index is the zero-based position within its opposing group.
func MonsterID(name string, index int) string {
	return fmt.Sprintf("monster:%s:%d", name, index)
}

// IsMonster reports whether id was minted by MonsterID.
func IsMonster(id string) bool {
	return strings.HasPrefix(id, "monster:")
}

// IsPlayer reports whether id was minted by PlayerID.
func IsPlayer(id string) bool {
	return strings.HasPrefix(id, "pc:")
}

// WeaponDescriptor describes a combatant's equipped weapon for attack
// resolution purposes.
type WeaponDescriptor struct {
	// DamageDie is dice notation for the weapon's base damage, e.g. "1d8".
	DamageDie string

	// RangedDie is dice notation for a ranged option, empty if the
	// weapon has none.
	RangedDie string
}

// HasRanged reports whether the weapon has a ranged damage die.
func (w WeaponDescriptor) HasRanged() bool {
	return w.RangedDie != ""
}

// SlotTable tracks per-level spell slot availability for a caster.
// Slot counts are initialized lazily on first spell attempt and never
// go negative (spec §3 invariants).
type SlotTable interface {
	// Remaining returns the slots remaining at level, initializing it
	// from the caster's class/level table on first access.
	Remaining(level int) int

	// HasSlot reports whether level is a level the caster's class
	// defines a slot for at all (independent of remaining count).
	HasSlot(level int) bool

	// Consume decrements the slot count at level by one. It reports
	// false (and makes no change) if no slot remains.
	Consume(level int) bool
}

// Condition is an applied status condition with an optional duration
// in rounds. A nil Duration means indefinite.
type Condition struct {
	ID       string
	Duration *int
}

// Contract is the narrow interface the engine reads and mutates
// combatants through (spec §6: "Combatant collaborator contract").
// Character-creation, persistence, and catalog lookups are all
// external collaborators that produce something satisfying Contract;
// the engine never constructs one itself.
type Contract interface {
	ID() string
	Name() string
	Side() Side

	IsAlive() bool
	HP() int
	MaxHP() int
	ApplyDamage(amount int)

	ArmorClass() int
	Initiative() int
	THAC0() int

	StrengthModifier() int
	DexterityModifier() int

	MeleeWeapon() WeaponDescriptor
	RangedWeapon() (WeaponDescriptor, bool)
	AttacksPerRound() int

	// Class returns the combatant's class identifier for spellcasting
	// eligibility checks. Non-casters may return "".
	Class() string
	SpellSlots() SlotTable

	Conditions() []Condition
	AddCondition(c Condition)
}
