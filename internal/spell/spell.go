// Package spell defines the static, data-driven spell catalog (spec
// §4.8). Grounded on the teacher's magic missile handler
// (internal/domain/rulebook/dnd5e/spells/magic_missile.go) but trimmed
// to the spec's simpler per-target damage-die model.
package spell

// NumTargetsAll denotes "every living opponent" for a spell that
// affects the whole opposing side rather than chosen targets.
const NumTargetsAll = -1

// Definition describes one catalog spell.
type Definition struct {
	ID         string
	Name       string
	Level      int
	UsableBy   map[string]struct{}
	DamageDie  string // e.g. "1d4+1"; empty if the spell deals no damage
	NumTargets int    // -1 = all living opponents, 1 = single target
	AutoHit    bool

	// SelfTarget marks a spell that always resolves against its own
	// caster. For these, an empty TargetIDs list is the normal form
	// (spec §4.3: empty means self-targeting, never "missing"); a
	// non-empty list is not rejected and is ignored.
	SelfTarget bool

	ConditionID       string // empty if the spell applies no condition
	ConditionDuration *int
}

// UsableByClass reports whether class may cast this spell.
func (d Definition) UsableByClass(class string) bool {
	_, ok := d.UsableBy[class]
	return ok
}

// classes is a small constructor helper for UsableBy sets.
func classes(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// catalog is the static mapping from spell ID to definition. It is
// read-only after package initialization.
var catalog = map[string]Definition{
	"magic_missile": {
		ID:         "magic_missile",
		Name:       "Magic Missile",
		Level:      1,
		UsableBy:   classes("magic-user"),
		DamageDie:  "1d4+1",
		NumTargets: 1,
		AutoHit:    true,
	},
	"hold_person": {
		ID:                "hold_person",
		Name:              "Hold Person",
		Level:             2,
		UsableBy:          classes("cleric"),
		NumTargets:        1,
		AutoHit:           true,
		ConditionID:       "held",
		ConditionDuration: durationPtr(4),
	},
	"cure_light_wounds": {
		ID:         "cure_light_wounds",
		Name:       "Cure Light Wounds",
		Level:      1,
		UsableBy:   classes("cleric"),
		NumTargets: 1,
		AutoHit:    true,
	},
	"fireball": {
		ID:         "fireball",
		Name:       "Fireball",
		Level:      3,
		UsableBy:   classes("magic-user"),
		DamageDie:  "6d6",
		NumTargets: NumTargetsAll,
		AutoHit:    true,
	},
	"shield": {
		ID:                "shield",
		Name:              "Shield",
		Level:             1,
		UsableBy:          classes("magic-user"),
		NumTargets:        1,
		AutoHit:           true,
		SelfTarget:        true,
		ConditionID:       "shielded",
		ConditionDuration: durationPtr(8),
	},
}

func durationPtr(rounds int) *int {
	return &rounds
}

// Get returns the definition for id, or (zero value, false) if no
// such spell is catalogued.
func Get(id string) (Definition, bool) {
	d, ok := catalog[id]
	return d, ok
}
