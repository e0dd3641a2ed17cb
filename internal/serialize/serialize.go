// Package serialize converts engine events to stable, consumer-facing
// representations (spec §4.12): a mapping with a "kind" discriminator
// plus every field for machine consumers, and a single human-readable
// line per event for logging. Grounded on the teacher's pervasive use
// of encoding/json struct tags (internal/domain, internal/entities) —
// here expressed as hand-built maps since events are a closed set of
// small variants rather than one persisted aggregate.
package serialize

import (
	"fmt"

	"github.com/ashcrest-forge/encounter-engine/internal/choice"
	"github.com/ashcrest-forge/encounter-engine/internal/event"
)

// Event maps an Event to a stable map with "kind" plus its declared
// fields. Enum-like values are rendered as their symbolic (string)
// name; nested events (none currently) would recurse through Event
// again. The schema is additive: new fields may be appended to a
// variant's mapping in the future, but existing keys are never renamed
// or retyped.
func Event(e event.Event) map[string]any {
	out := map[string]any{"kind": string(e.Kind())}

	switch v := e.(type) {
	case event.EncounterStarted:
		out["encounter_id"] = v.EncounterID

	case event.SurpriseRolled:
		out["party_surprised"] = v.PartySurprised
		out["opposition_surprised"] = v.OppositionSurprised
		out["party_roll"] = v.PartyRoll
		out["opposition_roll"] = v.OppositionRoll

	case event.RoundStarted:
		out["round_no"] = v.RoundNo

	case event.InitiativeRolled:
		order := make([]map[string]any, 0, len(v.Order))
		for _, e := range v.Order {
			order = append(order, map[string]any{"id": e.ID, "roll": e.Roll})
		}
		out["order"] = order

	case event.TurnQueueBuilt:
		out["queue"] = append([]string{}, v.Queue...)

	case event.TurnStarted:
		out["id"] = v.ID

	case event.TurnSkipped:
		out["id"] = v.ID
		out["reason"] = v.Reason

	case event.NeedAction:
		out["id"] = v.ID
		out["available"] = serializeChoices(v.Available)

	case event.AttackRolled:
		out["attacker_id"] = v.AttackerID
		out["defender_id"] = v.DefenderID
		out["roll"] = v.Roll
		out["total"] = v.Total
		out["needed"] = v.Needed
		out["hit"] = v.Hit
		out["critical"] = v.Critical

	case event.SpellCast:
		out["caster_id"] = v.CasterID
		out["spell_id"] = v.SpellID
		out["spell_name"] = v.SpellName
		out["target_ids"] = append([]string{}, v.TargetIDs...)

	case event.DamageApplied:
		out["source_id"] = v.SourceID
		out["target_id"] = v.TargetID
		out["amount"] = v.Amount
		out["target_hp_after"] = v.TargetHPAfter

	case event.SpellSlotConsumed:
		out["caster_id"] = v.CasterID
		out["level"] = v.Level
		out["remaining"] = v.Remaining

	case event.ConditionApplied:
		out["source_id"] = v.SourceID
		out["target_id"] = v.TargetID
		out["condition_id"] = v.ConditionID
		if v.Duration != nil {
			out["duration"] = *v.Duration
		} else {
			out["duration"] = nil
		}

	case event.EntityDied:
		out["entity_id"] = v.EntityID

	case event.MoraleCheckRolled:
		out["id"] = v.ID
		out["roll"] = v.Roll
		out["threshold"] = v.Threshold
		out["failed"] = v.Failed

	case event.ForcedIntentQueued:
		out["id"] = v.ID
		out["intent_kind"] = v.IntentKind

	case event.ForcedIntentApplied:
		out["id"] = v.ID
		out["intent_kind"] = v.IntentKind

	case event.VictoryDetermined:
		out["outcome"] = string(v.Outcome)

	case event.ActionRejected:
		reasons := make([]map[string]any, 0, len(v.Reasons))
		for _, r := range v.Reasons {
			reasons = append(reasons, map[string]any{"code": string(r.Code), "reason": r.Reason})
		}
		out["id"] = v.ID
		out["reasons"] = reasons

	case event.EncounterFaulted:
		out["state"] = v.State
		out["actor_id"] = v.ActorID
		out["error_kind"] = v.ErrorKind
		out["message"] = v.Message

	default:
		out["error"] = fmt.Sprintf("serialize: unrecognized event type %T", e)
	}

	return out
}

func serializeChoices(choices []choice.ActionChoice) []map[string]any {
	out := make([]map[string]any, 0, len(choices))
	for _, c := range choices {
		args := make(map[string]string, len(c.UIArgs))
		for k, v := range c.UIArgs {
			args[k] = v
		}
		out = append(out, map[string]any{
			"ui_key":  c.UIKey,
			"ui_args": args,
			"label":   c.Label(),
		})
	}
	return out
}
