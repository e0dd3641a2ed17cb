// Package view defines immutable, read-only snapshots of encounter
// state for external consumers (spec §4.11). Views are produced by a
// single structural-copy call and carry no reference back to the
// engine's mutable context, so nothing a consumer does to a View can
// affect the encounter.
package view

import "github.com/ashcrest-forge/encounter-engine/internal/combatant"

// CombatantView is a frozen snapshot of one combatant.
type CombatantView struct {
	ID         string
	Name       string
	Side       combatant.Side
	Alive      bool
	HP         int
	MaxHP      int
	Initiative int
}

// CombatView is a frozen snapshot of the whole encounter at the moment
// it was produced.
type CombatView struct {
	RoundNo          int
	CurrentID        string // empty if no turn is in progress
	Combatants       []CombatantView
	AnnouncedDeaths  map[string]struct{}
}

// LivingOpponentsOf returns the IDs of living combatants on the side
// opposite actorID's side, in the snapshot's stable combatant order.
func (v CombatView) LivingOpponentsOf(actorID string) []string {
	var actorSide combatant.Side
	found := false
	for _, c := range v.Combatants {
		if c.ID == actorID {
			actorSide = c.Side
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	var ids []string
	for _, c := range v.Combatants {
		if c.Alive && c.Side != actorSide {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Get returns the snapshot of id, if present.
func (v CombatView) Get(id string) (CombatantView, bool) {
	for _, c := range v.Combatants {
		if c.ID == id {
			return c, true
		}
	}
	return CombatantView{}, false
}
