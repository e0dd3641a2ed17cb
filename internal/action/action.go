// Package action implements the melee, ranged, spell, and flee actions
// (spec §4.7). Each Action is stateless: Validate and Execute compute
// from a read-only Context and return pure outputs; only the engine
// performs mutations, by dispatching the returned Effects through
// internal/effect.
package action

import (
	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// Context is the read-only view an Action validates and executes
// against. The engine implements Context; actions never see the
// engine's mutable internals directly.
type Context interface {
	// CurrentID returns the ID of the combatant whose turn it is.
	CurrentID() string

	// Get resolves a combatant by ID.
	Get(id string) (combatant.Contract, bool)

	// LivingOpponentsOf returns the IDs of living combatants on the
	// side opposite actorID's side, in stable order.
	LivingOpponentsOf(actorID string) []string

	// Dice is the shared dice service for this encounter.
	Dice() dice.Service
}

// Result is what Execute returns: the resolution events produced and
// the effects the engine should dispatch, in emission order.
type Result struct {
	Events  []event.Event
	Effects []effect.Effect
}

// Action is the interface every intent resolves to. Validate returns
// every applicable rejection (never just the first); an empty slice
// means the intent is legal.
type Action interface {
	Validate(ctx Context) []rejection.Rejection
	Execute(ctx Context) Result
}

// validOpponent is a small helper shared by the action implementations: a
// target is a legal opponent only if it is alive and on the opposite
// side of the actor.
func validOpponent(ctx Context, actorID, targetID string) []rejection.Rejection {
	var reasons []rejection.Rejection

	target, ok := ctx.Get(targetID)
	if !ok || !target.IsAlive() {
		reasons = append(reasons, rejection.New(rejection.TargetDead, "target is not alive"))
		return reasons
	}

	actor, ok := ctx.Get(actorID)
	if ok && target.Side() == actor.Side() {
		reasons = append(reasons, rejection.New(rejection.TargetNotOpponent, "target is not on the opposing side"))
	}

	return reasons
}

func validActor(ctx Context, actorID string) []rejection.Rejection {
	var reasons []rejection.Rejection

	actor, ok := ctx.Get(actorID)
	if !ok || !actor.IsAlive() {
		reasons = append(reasons, rejection.New(rejection.ActorDead, "actor is not alive"))
	}
	if ctx.CurrentID() != actorID {
		reasons = append(reasons, rejection.New(rejection.ActorNotCurrent, "actor is not the current combatant"))
	}

	return reasons
}
