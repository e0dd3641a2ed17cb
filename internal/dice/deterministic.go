package dice

import (
	"fmt"
	"sync"
)

// DeterministicService is a Service that consumes a fixed sequence of
// pre-rolled d20/index values and a fixed sequence of notation totals,
// in call order. It is grounded on the teacher's MockRoller
// (internal/dice/mock_roller.go): calls beyond the provided sequence
// raise rather than silently returning zero.
//
// Rolls and D20/Index draws are tracked on independent cursors since a
// deterministic scenario typically seeds "the totals I want Roll to
// return" separately from "the specific d20 faces and indices I want".
type DeterministicService struct {
	mu sync.Mutex

	rolls      []int
	rollCursor int

	faces      []int
	faceCursor int

	indices      []int
	indexCursor int
}

// NewDeterministicService creates a Service with no queued values.
// Use SetRolls/SetFaces/SetIndices to seed it before use.
func NewDeterministicService() *DeterministicService {
	return &DeterministicService{}
}

// SetRolls queues the totals successive Roll calls will return.
func (d *DeterministicService) SetRolls(totals ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rolls = totals
	d.rollCursor = 0
}

// SetFaces queues the values successive D20 calls will return.
func (d *DeterministicService) SetFaces(faces ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faces = faces
	d.faceCursor = 0
}

// SetIndices queues the values successive Index calls will return.
func (d *DeterministicService) SetIndices(indices ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.indices = indices
	d.indexCursor = 0
}

// Roll returns the next queued total, ignoring the notation's actual
// dice shape (the caller chose the value deliberately).
func (d *DeterministicService) Roll(notation string) (int, error) {
	if _, _, _, err := parseNotation(notation); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.rollCursor >= len(d.rolls) {
		return 0, fmt.Errorf("dice: no more queued rolls (used %d of %d) for %q", d.rollCursor, len(d.rolls), notation)
	}
	v := d.rolls[d.rollCursor]
	d.rollCursor++
	return v, nil
}

// D20 returns the next queued face value.
func (d *DeterministicService) D20() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.faceCursor >= len(d.faces) {
		panic(fmt.Sprintf("dice: no more queued d20 faces (used %d of %d)", d.faceCursor, len(d.faces)))
	}
	v := d.faces[d.faceCursor]
	d.faceCursor++
	return v
}

// Index returns the next queued index. It panics if no index is
// queued or if the queued value lies outside [0, n).
func (d *DeterministicService) Index(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.indexCursor >= len(d.indices) {
		panic(fmt.Sprintf("dice: no more queued indices (used %d of %d)", d.indexCursor, len(d.indices)))
	}
	v := d.indices[d.indexCursor]
	d.indexCursor++
	if v < 0 || (n > 0 && v >= n) {
		panic(fmt.Sprintf("dice: queued index %d out of range [0,%d)", v, n))
	}
	return v
}
