package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashcrest-forge/encounter-engine/internal/action"
	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/combatant/combatanttest"
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

func newCaster(id, class string, slots map[int]int) *combatanttest.Fake {
	return &combatanttest.Fake{
		FakeID: id, FakeSide: combatant.Party, FakeHP: 10, FakeMaxHP: 10,
		ClassID: class, Slots: &combatanttest.FakeSlots{Levels: slots},
	}
}

func TestCastSpell_Validate_UnknownSpell(t *testing.T) {
	caster := newCaster("pc:mu", "magic-user", map[int]int{1: 1})
	ctx := newCtx("pc:mu", dice.NewRandomService(), caster)

	reasons := action.CastSpell{ActorID: "pc:mu", SpellID: "nonexistent", SlotLevel: 1, TargetIDs: nil}.Validate(ctx)

	require.NotEmpty(t, reasons)
	assert.Equal(t, rejection.UnknownSpell, reasons[0].Code)
}

func TestCastSpell_Validate_SlotLevelMismatch(t *testing.T) {
	caster := newCaster("pc:cleric", "cleric", map[int]int{1: 1})
	target := &combatanttest.Fake{FakeID: "monster:goblin:0", FakeSide: combatant.Opposition, FakeHP: 5, FakeMaxHP: 5}
	ctx := newCtx("pc:cleric", dice.NewRandomService(), caster, target)

	reasons := action.CastSpell{ActorID: "pc:cleric", SpellID: "hold_person", SlotLevel: 1, TargetIDs: []string{"monster:goblin:0"}}.Validate(ctx)

	found := false
	for _, r := range reasons {
		if r.Code == rejection.SlotLevelMismatch {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCastSpell_Validate_IneligibleCaster(t *testing.T) {
	caster := newCaster("pc:mu", "magic-user", map[int]int{2: 1})
	target := &combatanttest.Fake{FakeID: "monster:goblin:0", FakeSide: combatant.Opposition, FakeHP: 5, FakeMaxHP: 5}
	ctx := newCtx("pc:mu", dice.NewRandomService(), caster, target)

	reasons := action.CastSpell{ActorID: "pc:mu", SpellID: "hold_person", SlotLevel: 2, TargetIDs: []string{"monster:goblin:0"}}.Validate(ctx)

	found := false
	for _, r := range reasons {
		if r.Code == rejection.IneligibleCaster {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCastSpell_Execute_SelfTargetSpellIgnoresTargetIDs(t *testing.T) {
	caster := newCaster("pc:mu", "magic-user", map[int]int{1: 2})
	ctx := newCtx("pc:mu", dice.NewRandomService(), caster)

	res := action.CastSpell{ActorID: "pc:mu", SpellID: "shield", SlotLevel: 1, TargetIDs: nil}.Execute(ctx)

	require.Len(t, res.Events, 1)
	require.Len(t, res.Effects, 2) // ConsumeSlot + ApplyCondition
}

func TestCastSpell_Execute_AllOpponentsSpellHitsEveryLivingTarget(t *testing.T) {
	caster := newCaster("pc:mu", "magic-user", map[int]int{3: 1})
	g1 := &combatanttest.Fake{FakeID: "monster:goblin:0", FakeSide: combatant.Opposition, FakeHP: 5, FakeMaxHP: 5}
	g2 := &combatanttest.Fake{FakeID: "monster:goblin:1", FakeSide: combatant.Opposition, FakeHP: 5, FakeMaxHP: 5}

	d := dice.NewDeterministicService()
	d.SetRolls(10, 10)

	ctx := newCtx("pc:mu", d, caster, g1, g2)
	res := action.CastSpell{ActorID: "pc:mu", SpellID: "fireball", SlotLevel: 3, TargetIDs: nil}.Execute(ctx)

	require.Len(t, res.Effects, 3) // ConsumeSlot + Damage x2
}
