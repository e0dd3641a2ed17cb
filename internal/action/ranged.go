package action

import (
	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// Ranged implements the RangedAttack intent (spec §4.7). To-hit uses
// the actor's dexterity modifier; damage uses no ability modifier.
// Monster ranged intents are rejected outright (monster ranged combat
// is deferred, spec §4.7).
type Ranged struct {
	ActorID  string
	TargetID string
}

// Validate checks the usual actor/target rules plus "actor has a
// ranged weapon equipped", and rejects monster attackers entirely.
func (r Ranged) Validate(ctx Context) []rejection.Rejection {
	var reasons []rejection.Rejection
	reasons = append(reasons, validActor(ctx, r.ActorID)...)
	reasons = append(reasons, validOpponent(ctx, r.ActorID, r.TargetID)...)

	if combatant.IsMonster(r.ActorID) {
		reasons = append(reasons, rejection.New(rejection.MonsterActionNotSupported, "monster ranged attacks are not yet supported"))
		return reasons
	}

	if actor, ok := ctx.Get(r.ActorID); ok {
		if _, hasRanged := actor.RangedWeapon(); !hasRanged {
			reasons = append(reasons, rejection.New(rejection.NoRangedWeapon, "actor has no ranged weapon equipped"))
		}
	}

	return reasons
}

// Execute rolls a single attack using dexterity to hit and no ability
// modifier to damage.
func (r Ranged) Execute(ctx Context) Result {
	actor, _ := ctx.Get(r.ActorID)
	target, _ := ctx.Get(r.TargetID)
	weapon, _ := actor.RangedWeapon()

	roll := ctx.Dice().D20()
	needed := actor.THAC0() - target.ArmorClass() - actor.DexterityModifier()

	hit := roll >= needed
	critical := roll == 20
	if roll == 20 {
		hit = true
	}
	if roll == 1 {
		hit = false
		critical = false
	}

	result := Result{
		Events: []event.Event{event.AttackRolled{
			AttackerID: r.ActorID,
			DefenderID: r.TargetID,
			Roll:       roll,
			Total:      roll,
			Needed:     needed,
			Hit:        hit,
			Critical:   critical,
		}},
	}

	if !hit {
		return result
	}

	damage, err := ctx.Dice().Roll(weapon.RangedDie)
	if err != nil {
		damage = 1
	}
	if damage < 1 {
		damage = 1
	}
	if critical {
		damage = (damage * 3) / 2
		if damage < 1 {
			damage = 1
		}
	}

	result.Effects = append(result.Effects, effect.Damage(r.ActorID, r.TargetID, damage))
	return result
}
