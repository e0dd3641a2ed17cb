package encounter

import (
	"fmt"
	"sort"

	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/rejection"
)

// stepInit performs Init -> RoundStart: mint the encounter ID and roll
// surprise for both sides (spec §4.10).
func (e *Engine) stepInit() []event.Event {
	e.encounterID = e.idGen.New()

	partyRoll, _ := e.diceSvc.Roll("1d6")
	oppositionRoll, _ := e.diceSvc.Roll("1d6")
	e.partySurprised = partyRoll <= 2
	e.oppositionSurprised = oppositionRoll <= 2

	e.state = StateRoundStart

	return []event.Event{
		event.EncounterStarted{EncounterID: e.encounterID},
		event.SurpriseRolled{
			PartySurprised:      e.partySurprised,
			OppositionSurprised: e.oppositionSurprised,
			PartyRoll:           partyRoll,
			OppositionRoll:      oppositionRoll,
		},
	}
}

type queueEntry struct {
	id    string
	side  combatant.Side
	value int
}

// stepRoundStart performs RoundStart -> TurnStart: increments the
// round counter, rolls side-level group initiative, and builds the
// round's turn queue (spec §3 invariants, §4.10). A surprised side's
// combatants are entirely absent from round 1's queue.
func (e *Engine) stepRoundStart() []event.Event {
	e.roundNo++

	partyRoll, _ := e.diceSvc.Roll("1d6")
	oppositionRoll, _ := e.diceSvc.Roll("1d6")

	var entries []queueEntry
	for _, id := range e.allIDs {
		c := e.combatants[id]
		if !c.IsAlive() {
			continue
		}
		if e.roundNo == 1 {
			if c.Side() == combatant.Party && e.partySurprised {
				continue
			}
			if c.Side() == combatant.Opposition && e.oppositionSurprised {
				continue
			}
		}

		sideRoll := partyRoll
		if c.Side() == combatant.Opposition {
			sideRoll = oppositionRoll
		}
		entries = append(entries, queueEntry{id: id, side: c.Side(), value: sideRoll + c.Initiative()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		if entries[i].side != entries[j].side {
			return entries[i].side == combatant.Party
		}
		return entries[i].id < entries[j].id
	})

	order := make([]event.InitiativeEntry, 0, len(entries))
	queue := make([]string, 0, len(entries))
	for _, en := range entries {
		order = append(order, event.InitiativeEntry{ID: en.id, Roll: en.value})
		queue = append(queue, en.id)
	}

	e.queue = queue
	e.cursor = 0
	e.state = StateTurnStart

	return []event.Event{
		event.RoundStarted{RoundNo: e.roundNo},
		event.InitiativeRolled{Order: order},
		event.TurnQueueBuilt{Queue: append([]string{}, queue...)},
	}
}

// stepTurnStart performs TurnStart's selection loop (spec §4.10): skip
// dead/ineligible queue entries, then either consume a forced intent,
// defer to the tactical provider (opposition or auto-resolve), or
// surface NeedAction for a party decision.
func (e *Engine) stepTurnStart() []event.Event {
	var events []event.Event

	for {
		if e.cursor >= len(e.queue) {
			e.state = StateRoundStart
			return events
		}

		id := e.queue[e.cursor]
		e.cursor++

		c, ok := e.Get(id)
		if !ok || !c.IsAlive() {
			events = append(events, event.TurnSkipped{ID: id, Reason: "not alive"})
			continue
		}

		e.currentID = id
		events = append(events, event.TurnStarted{ID: id})

		if forced, has := e.forcedIntents[id]; has {
			delete(e.forcedIntents, id)
			events = append(events, event.ForcedIntentApplied{ID: id, IntentKind: string(forced.intent.Kind())})
			in := forced.intent
			e.pendingExec = &in
			e.state = StateValidateIntent
			return events
		}

		if e.autoResolve || c.Side() == combatant.Opposition {
			in := e.provider.ChooseIntent(e.GetView(), id)
			e.pendingExec = &in
			e.state = StateValidateIntent
			return events
		}

		events = append(events, event.NeedAction{ID: id, Available: e.buildChoices(id, c)})
		e.pendingID = id
		e.state = StateAwaitIntent
		return events
	}
}

// stepAwaitIntent performs AwaitIntent -> ValidateIntent once an
// intent has actually been supplied (Step already validated that it
// matches the pending combatant).
func (e *Engine) stepAwaitIntent(providedIntent *intent.Intent) []event.Event {
	e.pendingExec = providedIntent
	e.state = StateValidateIntent
	return nil
}

// stepValidateIntent performs ValidateIntent -> ExecuteAction, or
// rejects the intent and returns to a re-decision point (spec §4.10).
func (e *Engine) stepValidateIntent() []event.Event {
	in := *e.pendingExec
	act := actionFor(in)

	reasons := act.Validate(e)
	if len(reasons) > 0 {
		events := []event.Event{event.ActionRejected{ID: in.ActorID(), Reasons: reasons}}
		e.redecide(in.ActorID(), &events)
		return events
	}

	e.pendingAct = act
	e.state = StateExecuteAction
	return nil
}

// stepExecuteAction performs ExecuteAction -> ApplyEffects: the action
// computes its resolution events and effects; only resolution events
// are emitted in this batch (spec §4.2).
//
// Flee is the one action whose Execute reports failure this way
// instead of through Validate (spec §4.7, §9): it always validates,
// then emits a placeholder ActionRejected with no effects. When that
// happens there is nothing for ApplyEffects to do, so this skips
// straight to the re-decision point rather than advancing to
// ApplyEffects, matching the §8 scenario where a forced Flee yields
// ForcedIntentApplied, ActionRejected, then NeedAction for the same
// combatant.
func (e *Engine) stepExecuteAction() []event.Event {
	res := e.pendingAct.Execute(e)

	for _, ev := range res.Events {
		if rej, ok := ev.(event.ActionRejected); ok {
			events := append([]event.Event{}, res.Events...)
			e.redecide(rej.ID, &events)
			return events
		}
	}

	e.pendingEffects = res.Effects
	e.state = StateApplyEffects
	return res.Events
}

// stepApplyEffects performs ApplyEffects -> CheckDeaths, dispatching
// effects in emission order. On failure-stop it instead returns to the
// re-decision point with an ActionRejected appended (spec §4.6,
// §4.10).
func (e *Engine) stepApplyEffects() []event.Event {
	outcomes := effect.Apply(e, e.pendingEffects)
	e.pendingEffects = nil

	var events []event.Event
	for _, o := range outcomes {
		if !o.Applied {
			if o.Effect.Kind() != effect.KindConsumeSlot {
				panic(fmt.Sprintf("encounter: effect %s failed unexpectedly: %s", o.Effect.Kind(), o.FailureReason))
			}
			events = append(events, event.ActionRejected{
				ID:      e.currentID,
				Reasons: []rejection.Rejection{rejection.New(rejection.NoSpellSlot, o.FailureReason)},
			})
			e.redecide(e.currentID, &events)
			return events
		}

		switch o.Effect.Kind() {
		case effect.KindDamage:
			events = append(events, event.DamageApplied{
				SourceID:      o.Effect.SourceID(),
				TargetID:      o.Effect.TargetID(),
				Amount:        o.Effect.Amount(),
				TargetHPAfter: o.TargetHPAfter,
			})
		case effect.KindConsumeSlot:
			events = append(events, event.SpellSlotConsumed{
				CasterID:  o.Effect.CasterID(),
				Level:     o.Effect.Level(),
				Remaining: o.Remaining,
			})
		case effect.KindApplyCondition:
			events = append(events, event.ConditionApplied{
				SourceID:    o.Effect.SourceID(),
				TargetID:    o.Effect.TargetID(),
				ConditionID: o.Effect.ConditionID(),
				Duration:    o.Effect.Duration(),
			})
		}
	}

	e.state = StateCheckDeaths
	return events
}

// stepCheckDeaths performs CheckDeaths -> CheckMorale: any combatant
// newly at HP <= 0 is announced exactly once (spec §4.10).
func (e *Engine) stepCheckDeaths() []event.Event {
	var events []event.Event
	for _, id := range e.allIDs {
		c := e.combatants[id]
		if c.IsAlive() {
			continue
		}
		if _, announced := e.announcedDeaths[id]; announced {
			continue
		}
		e.announcedDeaths[id] = struct{}{}
		events = append(events, event.EntityDied{EntityID: id})
	}
	e.state = StateCheckMorale
	return events
}

// stepCheckMorale performs CheckMorale -> CheckVictory. Morale rules
// are out of scope for this core; this is a pass-through hook (spec
// §4.10, §9 Open Questions).
func (e *Engine) stepCheckMorale() []event.Event {
	e.state = StateCheckVictory
	return nil
}

// stepCheckVictory performs CheckVictory -> {Ended, TurnStart,
// RoundStart} (spec §4.10).
func (e *Engine) stepCheckVictory() []event.Event {
	partyAlive, oppositionAlive := false, false
	for _, id := range e.allIDs {
		c := e.combatants[id]
		if !c.IsAlive() {
			continue
		}
		if c.Side() == combatant.Party {
			partyAlive = true
		} else {
			oppositionAlive = true
		}
	}

	switch {
	case !partyAlive:
		e.outcome = event.OutcomeOppositionVictory
	case !oppositionAlive:
		e.outcome = event.OutcomePartyVictory
	}

	if e.outcome != event.OutcomeNone {
		e.state = StateEnded
		return []event.Event{event.VictoryDetermined{Outcome: e.outcome}}
	}

	if e.cursor < len(e.queue) {
		e.state = StateTurnStart
	} else {
		e.state = StateRoundStart
	}
	return nil
}

