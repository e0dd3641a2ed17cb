package tactics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/dice"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/tactics"
	"github.com/ashcrest-forge/encounter-engine/internal/view"
)

func sampleView() view.CombatView {
	return view.CombatView{
		Combatants: []view.CombatantView{
			{ID: "monster:goblin:0", Side: combatant.Opposition, Alive: true},
			{ID: "pc:hero", Side: combatant.Party, Alive: true},
			{ID: "pc:mira", Side: combatant.Party, Alive: false},
		},
	}
}

func TestRandomMelee_ChoosesAmongLivingOpponents(t *testing.T) {
	d := dice.NewDeterministicService()
	d.SetIndices(0)

	provider := tactics.NewRandomMelee(d)
	in := provider.ChooseIntent(sampleView(), "monster:goblin:0")

	require.Equal(t, intent.KindMeleeAttack, in.Kind())
	assert.Equal(t, "monster:goblin:0", in.ActorID())
	assert.Equal(t, "pc:hero", in.TargetID())
}

func TestRandomMelee_NoLivingOpponents_ReturnsFlee(t *testing.T) {
	d := dice.NewDeterministicService()
	v := view.CombatView{
		Combatants: []view.CombatantView{
			{ID: "monster:goblin:0", Side: combatant.Opposition, Alive: true},
			{ID: "pc:hero", Side: combatant.Party, Alive: false},
		},
	}

	provider := tactics.NewRandomMelee(d)
	in := provider.ChooseIntent(v, "monster:goblin:0")

	assert.Equal(t, intent.KindFlee, in.Kind())
	assert.Equal(t, "monster:goblin:0", in.ActorID())
}
