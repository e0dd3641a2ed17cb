package action

import (
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
	"github.com/ashcrest-forge/encounter-engine/internal/spell"
)

// CastSpell implements the CastSpell intent (spec §4.7, §4.8). Spells
// auto-hit in this core; there are no saving throws.
type CastSpell struct {
	ActorID   string
	SpellID   string
	SlotLevel int
	TargetIDs []string
}

// Validate runs the full spellcasting rule chain from spec §4.7,
// collecting every applicable rejection rather than stopping at the
// first.
func (c CastSpell) Validate(ctx Context) []rejection.Rejection {
	var reasons []rejection.Rejection
	reasons = append(reasons, validActor(ctx, c.ActorID)...)

	def, ok := spell.Get(c.SpellID)
	if !ok {
		reasons = append(reasons, rejection.New(rejection.UnknownSpell, "spell is not in the catalog"))
		return reasons
	}

	actor, actorOK := ctx.Get(c.ActorID)
	if actorOK && !def.UsableByClass(actor.Class()) {
		reasons = append(reasons, rejection.New(rejection.IneligibleCaster, "caster's class cannot cast this spell"))
	}

	if c.SlotLevel != def.Level {
		reasons = append(reasons, rejection.New(rejection.SlotLevelMismatch, "slot level does not match spell level"))
	}

	if actorOK && !actor.SpellSlots().HasSlot(c.SlotLevel) {
		reasons = append(reasons, rejection.New(rejection.NoSpellSlot, "caster's class has no slot at this level"))
	}

	reasons = append(reasons, c.validateTargets(ctx, def)...)

	return reasons
}

func (c CastSpell) validateTargets(ctx Context, def spell.Definition) []rejection.Rejection {
	var reasons []rejection.Rejection

	switch {
	case def.SelfTarget:
		// TargetIDs is not checked; Execute always resolves to the caster.
	case def.NumTargets == spell.NumTargetsAll:
		// Resolved automatically against living opponents; TargetIDs is ignored.
	default:
		if len(c.TargetIDs) != 1 {
			reasons = append(reasons, rejection.New(rejection.InvalidTarget, "spell requires exactly one target"))
			return reasons
		}
		target, ok := ctx.Get(c.TargetIDs[0])
		if !ok || !target.IsAlive() {
			reasons = append(reasons, rejection.New(rejection.TargetDead, "target is not alive"))
		}
	}

	return reasons
}

// Execute emits SpellCast, then a ConsumeSlot effect followed by a
// Damage and/or ApplyCondition effect per resolved target. The engine
// stops applying further effects for this action if ConsumeSlot fails
// (spec §4.6), even though SpellCast has already been emitted — the
// known "cast with no resulting damage" limitation spec §9 preserves.
func (c CastSpell) Execute(ctx Context) Result {
	def, _ := spell.Get(c.SpellID)

	targets := c.resolveTargets(ctx, def)

	result := Result{
		Events: []event.Event{event.SpellCast{
			CasterID:  c.ActorID,
			SpellID:   def.ID,
			SpellName: def.Name,
			TargetIDs: targets,
		}},
		Effects: []effect.Effect{effect.ConsumeSlot(c.ActorID, c.SlotLevel)},
	}

	for _, targetID := range targets {
		if def.DamageDie != "" {
			amount, err := ctx.Dice().Roll(def.DamageDie)
			if err != nil {
				amount = 1
			}
			result.Effects = append(result.Effects, effect.Damage(c.ActorID, targetID, amount))
		}
		if def.ConditionID != "" {
			result.Effects = append(result.Effects, effect.ApplyCondition(c.ActorID, targetID, def.ConditionID, def.ConditionDuration))
		}
	}

	return result
}

func (c CastSpell) resolveTargets(ctx Context, def spell.Definition) []string {
	switch {
	case def.SelfTarget:
		return []string{c.ActorID}
	case def.NumTargets == spell.NumTargetsAll:
		return ctx.LivingOpponentsOf(c.ActorID)
	default:
		return c.TargetIDs
	}
}
