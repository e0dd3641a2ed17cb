package tactics

import (
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/view"
)

// RandomMelee is the default Provider: it picks uniformly among the
// actor's melee choices against living opponents, using the injected
// dice service rather than direct randomness (spec §4.9).
type RandomMelee struct {
	Dice dice.Service
}

// NewRandomMelee constructs a RandomMelee provider.
func NewRandomMelee(svc dice.Service) *RandomMelee {
	return &RandomMelee{Dice: svc}
}

// ChooseIntent picks a random living opponent of actorID and returns a
// MeleeAttack intent against it. If actorID has no living opponents it
// returns a Flee intent as a last resort (there is nothing else to do).
func (r *RandomMelee) ChooseIntent(v view.CombatView, actorID string) intent.Intent {
	opponents := v.LivingOpponentsOf(actorID)
	if len(opponents) == 0 {
		return intent.NewFlee(actorID)
	}

	target := dice.Choice(r.Dice, opponents)
	return intent.NewMeleeAttack(actorID, target)
}
