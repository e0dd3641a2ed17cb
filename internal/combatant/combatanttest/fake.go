// Package combatanttest provides a minimal, mutable Contract
// implementation for tests across internal/action, internal/effect,
// and internal/encounter — standing in for the real character/monster
// types the core never constructs itself (spec §6).
package combatanttest

import "github.com/ashcrest-forge/encounter-engine/internal/combatant"

// Fake is a test double satisfying combatant.Contract.
type Fake struct {
	FakeID    string
	FakeName  string
	FakeSide  combatant.Side
	FakeHP    int
	FakeMaxHP int
	AC        int
	InitMod   int
	THAC0Val  int
	StrMod    int
	DexMod    int
	Melee     combatant.WeaponDescriptor
	Ranged    *combatant.WeaponDescriptor
	Attacks   int
	ClassID   string
	Slots     *FakeSlots
	conds     []combatant.Condition
}

func (f *Fake) ID() string          { return f.FakeID }
func (f *Fake) Name() string        { return f.FakeName }
func (f *Fake) Side() combatant.Side { return f.FakeSide }

func (f *Fake) IsAlive() bool { return f.FakeHP > 0 }
func (f *Fake) HP() int       { return f.FakeHP }
func (f *Fake) MaxHP() int    { return f.FakeMaxHP }
func (f *Fake) ApplyDamage(amount int) {
	f.FakeHP -= amount
	if f.FakeHP < 0 {
		f.FakeHP = 0
	}
}

func (f *Fake) ArmorClass() int { return f.AC }
func (f *Fake) Initiative() int { return f.InitMod }
func (f *Fake) THAC0() int      { return f.THAC0Val }

func (f *Fake) StrengthModifier() int { return f.StrMod }
func (f *Fake) DexterityModifier() int { return f.DexMod }

func (f *Fake) MeleeWeapon() combatant.WeaponDescriptor { return f.Melee }
func (f *Fake) RangedWeapon() (combatant.WeaponDescriptor, bool) {
	if f.Ranged == nil {
		return combatant.WeaponDescriptor{}, false
	}
	return *f.Ranged, true
}
func (f *Fake) AttacksPerRound() int {
	if f.Attacks < 1 {
		return 1
	}
	return f.Attacks
}

func (f *Fake) Class() string { return f.ClassID }
func (f *Fake) SpellSlots() combatant.SlotTable {
	if f.Slots == nil {
		f.Slots = &FakeSlots{}
	}
	return f.Slots
}

func (f *Fake) Conditions() []combatant.Condition { return f.conds }
func (f *Fake) AddCondition(c combatant.Condition) { f.conds = append(f.conds, c) }

var _ combatant.Contract = (*Fake)(nil)

// FakeSlots is a simple SlotTable test double: Levels maps a slot
// level to remaining count. A level absent from Levels has no slot at
// all (HasSlot false), distinct from a level present with 0 remaining.
type FakeSlots struct {
	Levels map[int]int
}

func (s *FakeSlots) Remaining(level int) int {
	if s.Levels == nil {
		return 0
	}
	return s.Levels[level]
}

func (s *FakeSlots) HasSlot(level int) bool {
	if s.Levels == nil {
		return false
	}
	_, ok := s.Levels[level]
	return ok
}

func (s *FakeSlots) Consume(level int) bool {
	if s.Levels == nil {
		return false
	}
	remaining, ok := s.Levels[level]
	if !ok || remaining <= 0 {
		return false
	}
	s.Levels[level] = remaining - 1
	return true
}

var _ combatant.SlotTable = (*FakeSlots)(nil)
