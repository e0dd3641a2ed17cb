package serialize

import (
	"fmt"
	"strings"

	"github.com/ashcrest-forge/encounter-engine/internal/event"
)

// Lines renders every event in batch to one human-readable line each,
// in order. NeedAction is annotated rather than emitted as a bare
// "needs a decision" line when the same batch contains a
// ForcedIntentApplied for that combatant: the decision was already
// made for them, so the line says so instead of reading as a prompt
// still waiting on input (spec §4.12).
func Lines(batch []event.Event) []string {
	forced := make(map[string]string, len(batch))
	for _, e := range batch {
		if fa, ok := e.(event.ForcedIntentApplied); ok {
			forced[fa.ID] = fa.IntentKind
		}
	}

	lines := make([]string, 0, len(batch))
	for _, e := range batch {
		lines = append(lines, line(e, forced))
	}
	return lines
}

// Line renders a single event to one human-readable line, with no
// batch context for NeedAction annotation. Use Lines when formatting a
// full transition's output.
func Line(e event.Event) string {
	return line(e, nil)
}

func line(e event.Event, forced map[string]string) string {
	switch v := e.(type) {
	case event.EncounterStarted:
		return fmt.Sprintf("encounter %s started", v.EncounterID)

	case event.SurpriseRolled:
		return fmt.Sprintf("surprise rolled: party=%d (surprised=%t) opposition=%d (surprised=%t)",
			v.PartyRoll, v.PartySurprised, v.OppositionRoll, v.OppositionSurprised)

	case event.RoundStarted:
		return fmt.Sprintf("round %d started", v.RoundNo)

	case event.InitiativeRolled:
		parts := make([]string, 0, len(v.Order))
		for _, e := range v.Order {
			parts = append(parts, fmt.Sprintf("%s=%d", e.ID, e.Roll))
		}
		return "initiative: " + strings.Join(parts, ", ")

	case event.TurnQueueBuilt:
		return "turn queue: " + strings.Join(v.Queue, " -> ")

	case event.TurnStarted:
		return fmt.Sprintf("%s's turn begins", v.ID)

	case event.TurnSkipped:
		return fmt.Sprintf("%s skipped (%s)", v.ID, v.Reason)

	case event.NeedAction:
		if kind, ok := forced[v.ID]; ok {
			return fmt.Sprintf("%s's decision was forced (%s); no prompt shown", v.ID, kind)
		}
		return fmt.Sprintf("%s needs a decision (%d option(s))", v.ID, len(v.Available))

	case event.AttackRolled:
		if v.Hit {
			crit := ""
			if v.Critical {
				crit = ", critical"
			}
			return fmt.Sprintf("%s attacks %s: rolled %d vs needed %d, hit%s", v.AttackerID, v.DefenderID, v.Roll, v.Needed, crit)
		}
		return fmt.Sprintf("%s attacks %s: rolled %d vs needed %d, miss", v.AttackerID, v.DefenderID, v.Roll, v.Needed)

	case event.SpellCast:
		if len(v.TargetIDs) == 0 {
			return fmt.Sprintf("%s casts %s on themself", v.CasterID, v.SpellName)
		}
		return fmt.Sprintf("%s casts %s on %s", v.CasterID, v.SpellName, strings.Join(v.TargetIDs, ", "))

	case event.DamageApplied:
		return fmt.Sprintf("%s takes %d damage from %s (%d hp remaining)", v.TargetID, v.Amount, v.SourceID, v.TargetHPAfter)

	case event.SpellSlotConsumed:
		return fmt.Sprintf("%s consumes a level %d slot (%d remaining)", v.CasterID, v.Level, v.Remaining)

	case event.ConditionApplied:
		return fmt.Sprintf("%s applies %s to %s", v.SourceID, v.ConditionID, v.TargetID)

	case event.EntityDied:
		return fmt.Sprintf("%s dies", v.EntityID)

	case event.MoraleCheckRolled:
		if v.Failed {
			return fmt.Sprintf("%s fails morale (rolled %d vs %d)", v.ID, v.Roll, v.Threshold)
		}
		return fmt.Sprintf("%s holds morale (rolled %d vs %d)", v.ID, v.Roll, v.Threshold)

	case event.ForcedIntentQueued:
		return fmt.Sprintf("forced intent queued for %s: %s", v.ID, v.IntentKind)

	case event.ForcedIntentApplied:
		return fmt.Sprintf("forced intent applied for %s: %s", v.ID, v.IntentKind)

	case event.VictoryDetermined:
		return fmt.Sprintf("outcome determined: %s", v.Outcome)

	case event.ActionRejected:
		reasons := make([]string, 0, len(v.Reasons))
		for _, r := range v.Reasons {
			reasons = append(reasons, string(r.Code))
		}
		return fmt.Sprintf("%s's action rejected: %s", v.ID, strings.Join(reasons, ", "))

	case event.EncounterFaulted:
		return fmt.Sprintf("encounter faulted in state %s: %s", v.State, v.Message)

	default:
		return fmt.Sprintf("unrecognized event %T", e)
	}
}
