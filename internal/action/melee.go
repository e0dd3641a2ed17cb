package action

import (
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// Melee implements the MeleeAttack intent (spec §4.7).
type Melee struct {
	ActorID  string
	TargetID string
}

// Validate checks the actor is alive and current, and the target is a
// live opponent.
func (m Melee) Validate(ctx Context) []rejection.Rejection {
	var reasons []rejection.Rejection
	reasons = append(reasons, validActor(ctx, m.ActorID)...)
	reasons = append(reasons, validOpponent(ctx, m.ActorID, m.TargetID)...)
	return reasons
}

// Execute rolls a d20 per attack the actor has (spec: monsters with
// multiple attacks emit one AttackRolled per attack and one Damage
// effect per hit), applying the THAC0-vs-AC convention: the roll
// (plus no to-hit modifier beyond the die itself, since OSR THAC0
// already folds in level progression) must reach
// THAC0 - defender AC to hit, except that a natural 20 always hits
// (and crits: damage * 1.5, rounded down, minimum 1) and a natural 1
// always misses.
func (m Melee) Execute(ctx Context) Result {
	actor, _ := ctx.Get(m.ActorID)
	target, _ := ctx.Get(m.TargetID)

	attacks := actor.AttacksPerRound()
	if attacks < 1 {
		attacks = 1
	}

	var result Result

	for i := 0; i < attacks; i++ {
		roll := ctx.Dice().D20()
		needed := actor.THAC0() - target.ArmorClass()

		hit := roll >= needed
		critical := roll == 20
		if roll == 20 {
			hit = true
		}
		if roll == 1 {
			hit = false
			critical = false
		}

		result.Events = append(result.Events, event.AttackRolled{
			AttackerID: m.ActorID,
			DefenderID: m.TargetID,
			Roll:       roll,
			Total:      roll,
			Needed:     needed,
			Hit:        hit,
			Critical:   critical,
		})

		if !hit {
			continue
		}

		damage, err := ctx.Dice().Roll(actor.MeleeWeapon().DamageDie)
		if err != nil {
			damage = 1
		}
		damage += actor.StrengthModifier()
		if damage < 1 {
			damage = 1
		}
		if critical {
			damage = (damage * 3) / 2
			if damage < 1 {
				damage = 1
			}
		}

		result.Effects = append(result.Effects, effect.Damage(m.ActorID, m.TargetID, damage))
	}

	return result
}
