// Package dice implements the abstract randomness service (spec §4.1).
//
// Grammar: an optional count N (default 1), a required 'd', a positive
// side count S, and an optional "+M"/"-M" modifier. No keep/drop/
// explode mechanics — this is deliberately smaller than the teacher's
// dice package, which also supports advantage/disadvantage rolls that
// this engine's ruleset has no use for.
package dice

//go:generate mockgen -destination=dicemock/mock_service.go -package=dicemock -source=dice.go

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
)

// Service is the dice service every action and tactical provider is
// threaded with. The engine never calls math/rand directly; all
// randomness flows through an injected Service so encounters can be
// replayed bit-for-bit with a deterministic implementation.
type Service interface {
	// Roll evaluates a notation string such as "2d6+3" and returns the
	// total.
	Roll(notation string) (int, error)

	// D20 rolls a single d20 and returns the face value (1-20).
	D20() int

	// Index returns a pseudo-random index in [0, n). Used by Choice.
	Index(n int) int
}

// Choice picks a uniformly random element of items using svc's
// randomness. It panics if items is empty; callers are expected to
// guard against empty candidate sets before calling Choice.
func Choice[T any](svc Service, items []T) T {
	if len(items) == 0 {
		panic("dice: Choice called with no items")
	}
	return items[svc.Index(len(items))]
}

var notationPattern = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)

// parseNotation parses "NdS[+/-M]" into its component parts.
func parseNotation(notation string) (count, sides, modifier int, err error) {
	m := notationPattern.FindStringSubmatch(notation)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("dice: invalid notation %q", notation)
	}

	count = 1
	if m[1] != "" {
		count, err = strconv.Atoi(m[1])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("dice: invalid count in %q: %w", notation, err)
		}
	}
	sides, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("dice: invalid sides in %q: %w", notation, err)
	}
	if sides < 1 {
		return 0, 0, 0, fmt.Errorf("dice: sides must be positive in %q", notation)
	}
	if count < 1 {
		return 0, 0, 0, fmt.Errorf("dice: count must be positive in %q", notation)
	}
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[3])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("dice: invalid modifier in %q: %w", notation, err)
		}
	}
	return count, sides, modifier, nil
}

// randomService is the production Service backed by math/rand.
type randomService struct{}

// NewRandomService creates a Service backed by true (process-seeded)
// randomness.
func NewRandomService() Service {
	return &randomService{}
}

func (r *randomService) Roll(notation string) (int, error) {
	count, sides, modifier, err := parseNotation(notation)
	if err != nil {
		return 0, err
	}
	total := modifier
	for i := 0; i < count; i++ {
		total += rand.Intn(sides) + 1
	}
	return total, nil
}

func (r *randomService) D20() int {
	return rand.Intn(20) + 1
}

func (r *randomService) Index(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.Intn(n)
}
