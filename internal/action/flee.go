package action

import (
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// FleeNotImplemented is the placeholder rejection code Flee's stub
// execution always reports. Full pursuit/escape semantics are
// external to this core (spec §9 Open Questions); this code is not
// one of the validation rejections enumerated in spec §4.5 — it is an
// execution-time placeholder, not a rule failure.
const FleeNotImplemented rejection.Code = "flee_not_implemented"

// Flee implements the Flee intent. Validation always passes for a
// live, current actor, per spec §4.7. Execution is where the stub
// lives: it produces no Damage/ConsumeSlot/ApplyCondition effects, and
// instead of an AttackRolled/SpellCast resolution event it emits an
// ActionRejected placeholder — this is what the engine's re-decision
// path reacts to, matching the spec §8 scenario where a forced Flee
// is applied, rejected, and falls back to normal decision.
type Flee struct {
	ActorID string
}

// Validate checks only that the actor is alive and current.
func (f Flee) Validate(ctx Context) []rejection.Rejection {
	return validActor(ctx, f.ActorID)
}

// Execute produces a placeholder ActionRejected and no effects.
func (f Flee) Execute(ctx Context) Result {
	return Result{
		Events: []event.Event{event.ActionRejected{
			ID:      f.ActorID,
			Reasons: []rejection.Rejection{rejection.New(FleeNotImplemented, "flee resolution is external to this core")},
		}},
	}
}
