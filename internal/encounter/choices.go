package encounter

import (
	"sort"

	"github.com/ashcrest-forge/encounter-engine/internal/choice"
	"github.com/ashcrest-forge/encounter-engine/internal/combatant"
	"github.com/ashcrest-forge/encounter-engine/internal/intent"
	"github.com/ashcrest-forge/encounter-engine/internal/spell"
)

// catalogSpellIDs is computed once: the stable, sorted list of spell
// IDs in the catalog, so choice generation is deterministic.
var catalogSpellIDs = sortedSpellIDs()

func sortedSpellIDs() []string {
	ids := []string{"magic_missile", "hold_person", "cure_light_wounds", "fireball", "shield"}
	sort.Strings(ids)
	return ids
}

// buildChoices computes the available ActionChoices for a party
// combatant's decision (spec §4.4, §4.9): melee attacks and (if
// equipped) ranged attacks against every living opponent, any catalog
// spell the combatant's class and slot table support, and Flee.
func (e *Engine) buildChoices(actorID string, c combatant.Contract) []choice.ActionChoice {
	var choices []choice.ActionChoice

	opponents := e.LivingOpponentsOf(actorID)
	for _, targetID := range opponents {
		choices = append(choices, choice.New("melee_attack", map[string]string{"target": targetID},
			intent.NewMeleeAttack(actorID, targetID)))
	}

	if _, hasRanged := c.RangedWeapon(); hasRanged {
		for _, targetID := range opponents {
			choices = append(choices, choice.New("ranged_attack", map[string]string{"target": targetID},
				intent.NewRangedAttack(actorID, targetID)))
		}
	}

	for _, spellID := range catalogSpellIDs {
		def, ok := spell.Get(spellID)
		if !ok || !def.UsableByClass(c.Class()) || !c.SpellSlots().HasSlot(def.Level) {
			continue
		}

		switch {
		case def.SelfTarget:
			choices = append(choices, choice.New("cast_spell", map[string]string{"spell": spellID},
				intent.NewCastSpell(actorID, spellID, def.Level, nil)))
		case def.NumTargets == spell.NumTargetsAll:
			choices = append(choices, choice.New("cast_spell", map[string]string{"spell": spellID},
				intent.NewCastSpell(actorID, spellID, def.Level, opponents)))
		default:
			for _, targetID := range opponents {
				choices = append(choices, choice.New("cast_spell", map[string]string{"spell": spellID, "target": targetID},
					intent.NewCastSpell(actorID, spellID, def.Level, []string{targetID})))
			}
		}
	}

	choices = append(choices, choice.New("flee", nil, intent.NewFlee(actorID)))

	return choices
}
