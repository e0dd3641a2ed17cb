package encounter

import (
	"fmt"
	"log"

	"github.com/ashcrest-forge/encounter-engine/internal/action"
	"github.com/ashcrest-forge/encounter-engine/internal/apperr"
	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/effect"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/tactics"
	"github.com/ashcrest-forge/encounter-engine/internal/uuid"
	"github.com/ashcrest-forge/encounter-engine/internal/view"
)

// forcedEntry is one queued forced intent, consumed at the matching
// combatant's next TurnStart (spec §3 invariants).
type forcedEntry struct {
	intent intent.Intent
	reason string
}

// StepResult is what one Step (or one element of StepUntilDecision)
// returns (spec §6).
type StepResult struct {
	State              State
	NeedsIntent        bool
	PendingCombatantID string
	Events             []event.Event
}

// Engine is the encounter state machine (spec §4.10, §6). It owns all
// mutable encounter state; external consumers interact with it only
// through Step, StepUntilDecision, GetView, and QueueForcedIntent, and
// read state only through the returned Views and event batches.
type Engine struct {
	combatants map[string]combatant.Contract
	allIDs     []string

	diceSvc     dice.Service
	provider    tactics.Provider
	autoResolve bool
	idGen       uuid.Generator

	encounterID string

	state  State
	roundNo int

	queue  []string
	cursor int

	currentID     string
	pendingID     string // set while AwaitIntent: the combatant the caller must supply an intent for
	pendingExec   *intent.Intent
	pendingAct    action.Action
	pendingEffects []effect.Effect

	partySurprised      bool
	oppositionSurprised bool

	forcedIntents   map[string]forcedEntry
	pendingForced   []event.Event // ForcedIntentQueued events awaiting emission in the next batch
	announcedDeaths map[string]struct{}

	outcome event.Outcome
}

// New constructs an Engine over fixed party and opposition rosters
// (spec §6: "new(party, opposition, dice_service, tactical_provider?,
// auto_resolve)"). provider may be nil only if autoResolve is false
// and every opposition combatant is never actually reached (tests
// exercising party-only scenarios); a real encounter with an
// opposition side needs a provider.
func New(party, opposition []combatant.Contract, diceSvc dice.Service, provider tactics.Provider, autoResolve bool) *Engine {
	return NewWithIDGenerator(party, opposition, diceSvc, provider, autoResolve, uuid.NewGoogleUUIDGenerator())
}

// NewWithIDGenerator is New with an injectable ID generator, for tests
// that need a deterministic encounter_id.
func NewWithIDGenerator(party, opposition []combatant.Contract, diceSvc dice.Service, provider tactics.Provider, autoResolve bool, idGen uuid.Generator) *Engine {
	e := &Engine{
		combatants:      make(map[string]combatant.Contract, len(party)+len(opposition)),
		diceSvc:         diceSvc,
		provider:        provider,
		autoResolve:     autoResolve,
		idGen:           idGen,
		state:           StateInit,
		forcedIntents:   make(map[string]forcedEntry),
		announcedDeaths: make(map[string]struct{}),
	}
	for _, c := range party {
		e.combatants[c.ID()] = c
		e.allIDs = append(e.allIDs, c.ID())
	}
	for _, c := range opposition {
		e.combatants[c.ID()] = c
		e.allIDs = append(e.allIDs, c.ID())
	}
	return e
}

// --- action.Context / effect.Lookup ---

// CurrentID returns the combatant whose turn is in progress.
func (e *Engine) CurrentID() string { return e.currentID }

// Get resolves a combatant by ID.
func (e *Engine) Get(id string) (combatant.Contract, bool) {
	c, ok := e.combatants[id]
	return c, ok
}

// LivingOpponentsOf returns the living combatants on the side opposite
// actorID's side, in the engine's stable roster order.
func (e *Engine) LivingOpponentsOf(actorID string) []string {
	actor, ok := e.Get(actorID)
	if !ok {
		return nil
	}
	var ids []string
	for _, id := range e.allIDs {
		c := e.combatants[id]
		if c.IsAlive() && c.Side() != actor.Side() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Dice returns the shared dice service.
func (e *Engine) Dice() dice.Service { return e.diceSvc }

// --- public facade ---

// Step advances the encounter by exactly one transition (spec §4.10:
// "single-step granularity"). providedIntent must be nil unless the
// engine is in AwaitIntent and names the pending combatant; supplying
// one at the wrong time or for the wrong combatant is a usage fault
// and returns an error without mutating the encounter (spec §7).
func (e *Engine) Step(providedIntent *intent.Intent) (StepResult, error) {
	if e.state == StateEnded {
		return e.result(nil), nil
	}

	if e.state == StateAwaitIntent {
		if providedIntent == nil {
			return e.result(nil), nil
		}
		if providedIntent.ActorID() != e.pendingID {
			return StepResult{}, apperr.UsageFaultf(
				"intent actor %q does not match pending combatant %q", providedIntent.ActorID(), e.pendingID)
		}
	} else if providedIntent != nil {
		return StepResult{}, apperr.UsageFaultf(
			"intent supplied while encounter is in state %q, not %q", e.state, StateAwaitIntent)
	}

	events := e.runTransition(providedIntent)
	return e.result(events), nil
}

// StepUntilDecision invokes Step repeatedly, accumulating each call's
// batch, until a decision point (NeedsIntent) or the terminal state is
// reached, or maxSteps is exhausted (spec §4.10). maxSteps <= 0 uses
// the spec's default of 64. providedIntent, if non-nil, is supplied
// only to the first Step call.
func (e *Engine) StepUntilDecision(providedIntent *intent.Intent, maxSteps int) ([]StepResult, error) {
	if maxSteps <= 0 {
		maxSteps = 64
	}

	var results []StepResult
	in := providedIntent
	for i := 0; i < maxSteps; i++ {
		res, err := e.Step(in)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		in = nil

		if res.NeedsIntent || res.State == StateEnded {
			return results, nil
		}
	}

	log.Printf("encounter: step_until_decision exceeded max_steps (%d) in state %s", maxSteps, e.state)
	faulted := event.EncounterFaulted{
		State:     string(e.state),
		ActorID:   e.currentID,
		ErrorKind: "max_steps_exhausted",
		Message:   fmt.Sprintf("step_until_decision exceeded max_steps (%d)", maxSteps),
	}
	e.outcome = event.OutcomeFaulted
	e.state = StateEnded
	results = append(results, e.result([]event.Event{faulted}))
	return results, apperr.EngineFaultf("step_until_decision exceeded max_steps (%d)", maxSteps)
}

// GetView produces a frozen structural-copy snapshot of the encounter
// (spec §4.11). It is the only supported external read path.
func (e *Engine) GetView() view.CombatView {
	combatants := make([]view.CombatantView, 0, len(e.allIDs))
	for _, id := range e.allIDs {
		c := e.combatants[id]
		combatants = append(combatants, view.CombatantView{
			ID:         c.ID(),
			Name:       c.Name(),
			Side:       c.Side(),
			Alive:      c.IsAlive(),
			HP:         c.HP(),
			MaxHP:      c.MaxHP(),
			Initiative: c.Initiative(),
		})
	}

	deaths := make(map[string]struct{}, len(e.announcedDeaths))
	for id := range e.announcedDeaths {
		deaths[id] = struct{}{}
	}

	return view.CombatView{
		RoundNo:         e.roundNo,
		CurrentID:       e.currentID,
		Combatants:      combatants,
		AnnouncedDeaths: deaths,
	}
}

// QueueForcedIntent overrides the next decision for id, bypassing
// normal decision-making for one turn (spec §6). It errors if the
// encounter has already ended. A ForcedIntentQueued event is emitted
// in the batch of the next Step call that runs a transition; the
// queued intent itself is consumed at id's next TurnStart.
func (e *Engine) QueueForcedIntent(id string, in intent.Intent, reason string) error {
	if e.state == StateEnded {
		return apperr.UsageFaultf("cannot queue a forced intent after the encounter has ended")
	}
	e.forcedIntents[id] = forcedEntry{intent: in, reason: reason}
	e.pendingForced = append(e.pendingForced, event.ForcedIntentQueued{ID: id, IntentKind: string(in.Kind())})
	return nil
}

func (e *Engine) result(events []event.Event) StepResult {
	pending := ""
	if e.state == StateAwaitIntent {
		pending = e.pendingID
	}
	return StepResult{
		State:              e.state,
		NeedsIntent:        e.state == StateAwaitIntent,
		PendingCombatantID: pending,
		Events:             events,
	}
}

// runTransition executes exactly one state handler, recovering from
// any panic into an EncounterFaulted batch per the fault model (spec
// §7: "any unexpected error inside a transition").
func (e *Engine) runTransition(providedIntent *intent.Intent) (events []event.Event) {
	defer func() {
		if r := recover(); r != nil {
			events = append(events, e.fault(r))
		}
	}()

	if len(e.pendingForced) > 0 {
		events = append(events, e.pendingForced...)
		e.pendingForced = nil
	}

	var produced []event.Event
	switch e.state {
	case StateInit:
		produced = e.stepInit()
	case StateRoundStart:
		produced = e.stepRoundStart()
	case StateTurnStart:
		produced = e.stepTurnStart()
	case StateAwaitIntent:
		produced = e.stepAwaitIntent(providedIntent)
	case StateValidateIntent:
		produced = e.stepValidateIntent()
	case StateExecuteAction:
		produced = e.stepExecuteAction()
	case StateApplyEffects:
		produced = e.stepApplyEffects()
	case StateCheckDeaths:
		produced = e.stepCheckDeaths()
	case StateCheckMorale:
		produced = e.stepCheckMorale()
	case StateCheckVictory:
		produced = e.stepCheckVictory()
	default:
		panic(fmt.Sprintf("encounter: no handler for state %q", e.state))
	}

	events = append(events, produced...)
	return events
}

func (e *Engine) fault(r any) event.Event {
	log.Printf("encounter: panic recovered in state %s: %v", e.state, r)
	f := event.EncounterFaulted{
		State:     string(e.state),
		ActorID:   e.currentID,
		ErrorKind: "panic",
		Message:   fmt.Sprint(r),
	}
	e.outcome = event.OutcomeFaulted
	e.state = StateEnded
	return f
}

// redecide returns actorID to a fresh decision point: choice
// generation for a party combatant (unless auto-resolving), or the
// tactical provider for an opposition combatant. Used both when a
// validated intent is rejected and when effect application fails
// (spec §4.10: "return to a re-decision point").
func (e *Engine) redecide(actorID string, events *[]event.Event) {
	c, ok := e.Get(actorID)
	if ok && !e.autoResolve && c.Side() == combatant.Party {
		*events = append(*events, event.NeedAction{ID: actorID, Available: e.buildChoices(actorID, c)})
		e.pendingID = actorID
		e.state = StateAwaitIntent
		return
	}

	in := e.provider.ChooseIntent(e.GetView(), actorID)
	e.pendingExec = &in
	e.state = StateValidateIntent
}

func actionFor(in intent.Intent) action.Action {
	switch in.Kind() {
	case intent.KindMeleeAttack:
		return action.Melee{ActorID: in.ActorID(), TargetID: in.TargetID()}
	case intent.KindRangedAttack:
		return action.Ranged{ActorID: in.ActorID(), TargetID: in.TargetID()}
	case intent.KindCastSpell:
		return action.CastSpell{ActorID: in.ActorID(), SpellID: in.SpellID(), SlotLevel: in.SlotLevel(), TargetIDs: in.TargetIDs()}
	case intent.KindFlee:
		return action.Flee{ActorID: in.ActorID()}
	default:
		panic(fmt.Sprintf("encounter: unrecognized intent kind %q", in.Kind()))
	}
}

