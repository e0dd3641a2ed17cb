// Package encounter implements the encounter state machine (spec
// §4.10): the orchestration layer that drives turn order, dispatches
// actions through internal/action and internal/effect, and reports
// progress as event batches. Grounded on the teacher's
// internal/domain/game/combat/encounter.go Start/NextTurn loop and its
// internal/services/encounter/service.go PerformAttack validate-then-
// resolve flow, redesigned around a closed State enum and an explicit
// single-step facade instead of the teacher's direct mutate-and-return
// methods.
package encounter

// State is one of the encounter's finite set of totally-ordered
// states (spec §4.10).
type State string

const (
	StateInit            State = "init"
	StateRoundStart      State = "round_start"
	StateTurnStart       State = "turn_start"
	StateAwaitIntent     State = "await_intent"
	StateValidateIntent  State = "validate_intent"
	StateExecuteAction   State = "execute_action"
	StateApplyEffects    State = "apply_effects"
	StateCheckDeaths     State = "check_deaths"
	StateCheckMorale     State = "check_morale"
	StateCheckVictory    State = "check_victory"
	StateEnded           State = "ended"
)
