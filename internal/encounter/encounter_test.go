package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/combatant/combatanttest"
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/encounter"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
	"github.com/ashcrest-forge/encounter-engine/internal/tactics"
)

func newHero() *combatanttest.Fake {
	return &combatanttest.Fake{
		FakeID: "pc:Hero", FakeName: "Hero", FakeSide: combatant.Party,
		FakeHP: 10, FakeMaxHP: 10, AC: 15, THAC0Val: 19, Attacks: 1,
		Melee: combatant.WeaponDescriptor{DamageDie: "1d6"},
	}
}

func newGoblin(hp int) *combatanttest.Fake {
	return &combatanttest.Fake{
		FakeID: "monster:Goblin:0", FakeName: "Goblin", FakeSide: combatant.Opposition,
		FakeHP: hp, FakeMaxHP: hp, AC: 7, THAC0Val: 19, Attacks: 1,
		Melee: combatant.WeaponDescriptor{DamageDie: "1d4"},
	}
}

func flatten(results []encounter.StepResult) []event.Event {
	var all []event.Event
	for _, r := range results {
		all = append(all, r.Events...)
	}
	return all
}

func kinds(events []event.Event) []event.Kind {
	ks := make([]event.Kind, 0, len(events))
	for _, e := range events {
		ks = append(ks, e.Kind())
	}
	return ks
}

// Scenario 1 (spec §8): one PC vs one 1-HP goblin. A natural 20 melee
// attack kills the goblin outright and ends the encounter in the
// attacker's favor.
func TestEncounter_OnePCVsOneHPGoblin_CritKillsAndEndsEncounter(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(1)

	d := dice.NewDeterministicService()
	// party surprise, opposition surprise, party init, opposition init
	d.SetRolls(6, 6, 6, 1, 6)
	d.SetFaces(20)

	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)

	first, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	last := first[len(first)-1]
	require.True(t, last.NeedsIntent)
	require.Equal(t, "pc:Hero", last.PendingCombatantID)

	in := intent.NewMeleeAttack("pc:Hero", "monster:Goblin:0")
	second, err := e.StepUntilDecision(&in, 0)
	require.NoError(t, err)

	all := flatten(second)
	ks := kinds(all)
	assert.Contains(t, ks, event.KindAttackRolled)
	assert.Contains(t, ks, event.KindDamageApplied)
	assert.Contains(t, ks, event.KindEntityDied)
	assert.Contains(t, ks, event.KindVictoryDetermined)

	var attack event.AttackRolled
	var died event.EntityDied
	var dmg event.DamageApplied
	var victory event.VictoryDetermined
	for _, ev := range all {
		switch v := ev.(type) {
		case event.AttackRolled:
			attack = v
		case event.EntityDied:
			died = v
		case event.DamageApplied:
			dmg = v
		case event.VictoryDetermined:
			victory = v
		}
	}

	assert.True(t, attack.Hit)
	assert.True(t, attack.Critical)
	assert.Equal(t, "monster:Goblin:0", died.EntityID)
	assert.Equal(t, 0, dmg.TargetHPAfter)
	assert.Equal(t, event.OutcomePartyVictory, victory.Outcome)

	last = second[len(second)-1]
	assert.Equal(t, encounter.StateEnded, last.State)
}

// Scenario 2 (spec §8): a magic-user with a single level-1 slot casts
// Magic Missile twice at the same living goblin. The second cast
// consumes no slot, emits SpellCast followed by ActionRejected, and no
// second DamageApplied.
func TestEncounter_SpellSlotExhaustion_SecondCastRejected(t *testing.T) {
	mu := &combatanttest.Fake{
		FakeID: "pc:Mira", FakeName: "Mira", FakeSide: combatant.Party,
		FakeHP: 6, FakeMaxHP: 6, AC: 10, THAC0Val: 19, Attacks: 1,
		Melee: combatant.WeaponDescriptor{DamageDie: "1d4"},
		ClassID: "magic-user",
		Slots:   &combatanttest.FakeSlots{Levels: map[int]int{1: 1}},
	}
	goblin := newGoblin(20)

	d := dice.NewDeterministicService()
	d.SetRolls(
		6, 6, // surprise
		6, 1, // round 1 init (party first)
		3,    // cast 1 damage roll
		6, 1, // round 2 init (party first)
		3,    // cast 2 damage roll (wasted: ConsumeSlot fails first)
	)
	d.SetFaces(1) // goblin's one melee swing misses (natural 1)
	d.SetIndices(0)

	provider := tactics.NewRandomMelee(d)
	e := encounter.New([]combatant.Contract{mu}, []combatant.Contract{goblin}, d, provider, false)

	first, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	last := first[len(first)-1]
	require.True(t, last.NeedsIntent)
	require.Equal(t, "pc:Mira", last.PendingCombatantID)

	castIn := intent.NewCastSpell("pc:Mira", "magic_missile", 1, []string{"monster:Goblin:0"})
	round1, err := e.StepUntilDecision(&castIn, 0)
	require.NoError(t, err)
	round1Events := flatten(round1)
	assert.Contains(t, kinds(round1Events), event.KindSpellCast)
	assert.Contains(t, kinds(round1Events), event.KindSpellSlotConsumed)
	assert.Contains(t, kinds(round1Events), event.KindDamageApplied)
	assert.NotContains(t, kinds(round1Events), event.KindActionRejected)

	last = round1[len(round1)-1]
	require.True(t, last.NeedsIntent)
	require.Equal(t, "pc:Mira", last.PendingCombatantID)

	castIn2 := intent.NewCastSpell("pc:Mira", "magic_missile", 1, []string{"monster:Goblin:0"})
	round2, err := e.StepUntilDecision(&castIn2, 0)
	require.NoError(t, err)
	round2Events := flatten(round2)
	assert.Contains(t, kinds(round2Events), event.KindSpellCast)
	assert.NotContains(t, kinds(round2Events), event.KindSpellSlotConsumed)
	assert.NotContains(t, kinds(round2Events), event.KindDamageApplied)

	var rejected event.ActionRejected
	found := false
	for _, ev := range round2Events {
		if v, ok := ev.(event.ActionRejected); ok {
			rejected = v
			found = true
		}
	}
	require.True(t, found, "expected ActionRejected in the second cast's batch")
	require.Len(t, rejected.Reasons, 1)
	assert.Equal(t, rejection.NoSpellSlot, rejected.Reasons[0].Code)
}

// Scenario 3 (spec §8): a cleric attempting Hold Person at slot level
// 1 (its actual level is 2) is rejected for slot_level_mismatch with
// no SpellCast resolution event and no effects.
func TestEncounter_SlotLevelMismatch_Rejected(t *testing.T) {
	cleric := &combatanttest.Fake{
		FakeID: "pc:Dax", FakeName: "Dax", FakeSide: combatant.Party,
		FakeHP: 8, FakeMaxHP: 8, AC: 14, THAC0Val: 19, Attacks: 1,
		Melee: combatant.WeaponDescriptor{DamageDie: "1d6"},
		ClassID: "cleric",
		Slots:   &combatanttest.FakeSlots{Levels: map[int]int{1: 1, 2: 1}},
	}
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)

	e := encounter.New([]combatant.Contract{cleric}, []combatant.Contract{goblin}, d, nil, false)

	first, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	last := first[len(first)-1]
	require.True(t, last.NeedsIntent)

	in := intent.NewCastSpell("pc:Dax", "hold_person", 1, []string{"monster:Goblin:0"})
	res, err := e.StepUntilDecision(&in, 0)
	require.NoError(t, err)
	events := flatten(res)

	assert.NotContains(t, kinds(events), event.KindSpellCast)
	assert.NotContains(t, kinds(events), event.KindConditionApplied)

	var rejected event.ActionRejected
	found := false
	for _, ev := range events {
		if v, ok := ev.(event.ActionRejected); ok {
			rejected = v
			found = true
		}
	}
	require.True(t, found)
	var codes []rejection.Code
	for _, r := range rejected.Reasons {
		codes = append(codes, r.Code)
	}
	assert.Contains(t, codes, rejection.SlotLevelMismatch)
}

// Scenario 4 (spec §8): a magic-user attempting Hold Person (a cleric
// spell) is rejected for ineligible_caster.
func TestEncounter_IneligibleCaster_Rejected(t *testing.T) {
	mu := &combatanttest.Fake{
		FakeID: "pc:Mira", FakeName: "Mira", FakeSide: combatant.Party,
		FakeHP: 6, FakeMaxHP: 6, AC: 10, THAC0Val: 19, Attacks: 1,
		Melee: combatant.WeaponDescriptor{DamageDie: "1d4"},
		ClassID: "magic-user",
		Slots:   &combatanttest.FakeSlots{Levels: map[int]int{1: 1, 2: 1}},
	}
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)

	e := encounter.New([]combatant.Contract{mu}, []combatant.Contract{goblin}, d, nil, false)

	first, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	require.True(t, first[len(first)-1].NeedsIntent)

	in := intent.NewCastSpell("pc:Mira", "hold_person", 2, []string{"monster:Goblin:0"})
	res, err := e.StepUntilDecision(&in, 0)
	require.NoError(t, err)
	events := flatten(res)

	var rejected event.ActionRejected
	found := false
	for _, ev := range events {
		if v, ok := ev.(event.ActionRejected); ok {
			rejected = v
			found = true
		}
	}
	require.True(t, found)
	var codes []rejection.Code
	for _, r := range rejected.Reasons {
		codes = append(codes, r.Code)
	}
	assert.Contains(t, codes, rejection.IneligibleCaster)
}

// Scenario 5 (spec §8): a forced Flee queued on a PC is applied, then
// rejected by Flee's stub execution, falling back to a normal decision
// for the same PC in the same batch chain.
func TestEncounter_ForcedFlee_RejectedFallsBackToNeedAction(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)

	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)

	err := e.QueueForcedIntent("pc:Hero", intent.NewFlee("pc:Hero"), "narrative retreat")
	require.NoError(t, err)

	res, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	events := flatten(res)
	ks := kinds(events)

	assert.Contains(t, ks, event.KindForcedIntentQueued)
	assert.Contains(t, ks, event.KindForcedIntentApplied)
	assert.Contains(t, ks, event.KindActionRejected)
	assert.Contains(t, ks, event.KindNeedAction)

	appliedIdx, rejectedIdx, needIdx := -1, -1, -1
	for i, ev := range events {
		switch v := ev.(type) {
		case event.ForcedIntentApplied:
			appliedIdx = i
			assert.Equal(t, "pc:Hero", v.ID)
		case event.ActionRejected:
			rejectedIdx = i
			assert.Equal(t, "pc:Hero", v.ID)
		case event.NeedAction:
			needIdx = i
			assert.Equal(t, "pc:Hero", v.ID)
		}
	}
	assert.True(t, appliedIdx < rejectedIdx)
	assert.True(t, rejectedIdx < needIdx)

	last := res[len(res)-1]
	require.True(t, last.NeedsIntent)
	assert.Equal(t, "pc:Hero", last.PendingCombatantID)
}

// Scenario 6 (spec §8): in auto-resolve mode the tactical provider
// drives every turn on both sides; zero NeedAction events are emitted
// and the encounter terminates deterministically.
func TestEncounter_AutoResolve_NeverAsksForADecision(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(1)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1, 6) // surprise x2, init x2, hero's weapon damage
	d.SetFaces(20)            // hero's attack: natural 20
	d.SetIndices(0)           // hero's provider-chosen target: the only goblin

	provider := tactics.NewRandomMelee(d)
	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, provider, true)

	res, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)

	events := flatten(res)
	assert.NotContains(t, kinds(events), event.KindNeedAction)
	assert.Contains(t, kinds(events), event.KindVictoryDetermined)

	last := res[len(res)-1]
	assert.Equal(t, encounter.StateEnded, last.State)
	assert.False(t, last.NeedsIntent)
}

// After Ended, further Step calls are no-ops: no events, no mutation,
// and the terminal state is reported unchanged (spec §3, §8).
func TestEncounter_AfterEnded_StepIsANoOp(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(1)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1, 6)
	d.SetFaces(20)

	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)

	first, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)
	require.True(t, first[len(first)-1].NeedsIntent)

	in := intent.NewMeleeAttack("pc:Hero", "monster:Goblin:0")
	res, err := e.StepUntilDecision(&in, 0)
	require.NoError(t, err)
	require.Equal(t, encounter.StateEnded, res[len(res)-1].State)

	after, err := e.Step(nil)
	require.NoError(t, err)
	assert.Empty(t, after.Events)
	assert.Equal(t, encounter.StateEnded, after.State)

	err = e.QueueForcedIntent("pc:Hero", intent.NewFlee("pc:Hero"), "too late")
	assert.Error(t, err)
}

// Supplying an intent outside AwaitIntent, or for the wrong combatant,
// is a usage fault: it returns an error and does not mutate the
// encounter (spec §7).
func TestEncounter_UsageFault_WrongStateOrCombatant(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)
	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)

	in := intent.NewMeleeAttack("pc:Hero", "monster:Goblin:0")
	_, err := e.Step(&in)
	require.Error(t, err)

	_, err = e.StepUntilDecision(nil, 0)
	require.NoError(t, err)

	mismatched := intent.NewMeleeAttack("monster:Goblin:0", "pc:Hero")
	_, err = e.Step(&mismatched)
	require.Error(t, err)
}

// step_until_decision exhausting max_steps is an engine fault: the
// encounter faults, emits EncounterFaulted, and surfaces an error.
func TestEncounter_StepUntilDecision_MaxStepsExhaustionFaults(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)
	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)

	res, err := e.StepUntilDecision(nil, 2)
	require.Error(t, err)
	require.NotEmpty(t, res)
	last := res[len(res)-1]
	assert.Equal(t, encounter.StateEnded, last.State)
	assert.Contains(t, kinds(last.Events), event.KindEncounterFaulted)
}

// GetView produces a structural copy: mutating the returned slices and
// maps has no effect on the live encounter (spec §4.11).
func TestEncounter_GetView_IsAStructuralCopy(t *testing.T) {
	hero := newHero()
	goblin := newGoblin(5)

	d := dice.NewDeterministicService()
	d.SetRolls(6, 6, 6, 1)
	e := encounter.New([]combatant.Contract{hero}, []combatant.Contract{goblin}, d, nil, false)
	_, err := e.StepUntilDecision(nil, 0)
	require.NoError(t, err)

	v1 := e.GetView()
	v1.Combatants[0].HP = -999
	v1.AnnouncedDeaths["monster:Goblin:0"] = struct{}{}

	v2 := e.GetView()
	assert.NotEqual(t, -999, v2.Combatants[0].HP)
	assert.NotContains(t, v2.AnnouncedDeaths, "monster:Goblin:0")
}
