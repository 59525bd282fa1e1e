// Package river models positions of the missionaries and cannibals
// river-crossing puzzle. A State is a plain comparable value: counts
// for both banks plus the boat side. States are copied, never aliased,
// so a successor can be built from its parent without any sharing.
package river

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"
)

// Side identifies one of the two river banks.
type Side uint8

const (
	Left Side = iota
	Right
)

func (d Side) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Other returns the opposite bank.
func (d Side) Other() Side {
	if d == Left {
		return Right
	}
	return Left
}

// State is a snapshot of the puzzle: how many missionaries and
// cannibals stand on each bank, and which bank the boat is moored at.
// The zero value is an empty river with the boat on the left, which is
// also what an explicit construction with zero counts produces.
//
// Two states are identical iff all four counts and the boat side
// match; plain == implements exactly that, since State is comparable
// and has no indirect fields.
type State struct {
	LeftMissionaries  int
	LeftCannibals     int
	RightMissionaries int
	RightCannibals    int
	Boat              Side
}

// NewState places the given party on the left bank along with the
// boat. This is the canonical starting position of the puzzle.
func NewState(missionaries, cannibals int) State {
	return State{
		LeftMissionaries: missionaries,
		LeftCannibals:    cannibals,
	}
}

// Missionaries returns the missionary total across both banks. It is
// invariant across every legal crossing.
func (s State) Missionaries() int {
	return s.LeftMissionaries + s.RightMissionaries
}

// Cannibals returns the cannibal total across both banks.
func (s State) Cannibals() int {
	return s.LeftCannibals + s.RightCannibals
}

// BankMissionaries returns the missionary count on the given bank.
func (s State) BankMissionaries(side Side) int {
	if side == Left {
		return s.LeftMissionaries
	}
	return s.RightMissionaries
}

// BankCannibals returns the cannibal count on the given bank.
func (s State) BankCannibals(side Side) int {
	if side == Left {
		return s.LeftCannibals
	}
	return s.RightCannibals
}

// Safe reports whether nobody gets eaten: on each bank independently,
// either no missionaries are present, or the missionaries there are
// not outnumbered by the cannibals there. It is a total function over
// any non-negative counts.
func (s State) Safe() bool {
	return !(s.LeftMissionaries != 0 && s.LeftMissionaries < s.LeftCannibals) &&
		!(s.RightMissionaries != 0 && s.RightMissionaries < s.RightCannibals)
}

// AllAcross reports whether the puzzle is won: the left bank is empty
// and the boat has finished its last trip on the right.
//
// Note that the empty puzzle (nobody anywhere, boat on the left) does
// not satisfy this, and since the boat may never cross empty, it never
// will. That matches the original rules: a crossing needs at least one
// occupant to row.
func (s State) AllAcross() bool {
	return s.LeftMissionaries == 0 && s.LeftCannibals == 0 && s.Boat != Left
}

// Fingerprint returns a 64-bit digest of all five fields. Identical
// states always produce identical fingerprints, and the value is
// stable across processes, so it can key records that outlive a run
// (such as solve logs). Counts are folded into 32 bits each.
func (s State) Fingerprint() uint64 {
	var b [17]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(s.LeftMissionaries))
	binary.LittleEndian.PutUint32(b[4:8], uint32(s.LeftCannibals))
	binary.LittleEndian.PutUint32(b[8:12], uint32(s.RightMissionaries))
	binary.LittleEndian.PutUint32(b[12:16], uint32(s.RightCannibals))
	if s.Boat == Right {
		b[16] = 1
	}
	return xxhash.Sum64(b[:])
}

func (s State) String() string {
	return fmt.Sprintf("<L %dM%dC | R %dM%dC | boat %v>",
		s.LeftMissionaries, s.LeftCannibals,
		s.RightMissionaries, s.RightCannibals, s.Boat)
}
