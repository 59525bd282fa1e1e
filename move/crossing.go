// Package move describes single boat trips. A Crossing is to this
// puzzle what a play is to a board game: the atomic transition from a
// state to one of its successors.
package move

import (
	"strconv"

	"github.com/domino14/ferryman/river"
)

// BoatCapacity is the largest party a single trip can carry. The boat
// never crosses empty, so every legal trip carries one or two people.
const BoatCapacity = 2

// Crossing is one boat trip: some missionaries and cannibals board on
// the bank the boat is moored at and row to the other side.
type Crossing struct {
	Missionaries int
	Cannibals    int
	To           river.Side // arrival bank
}

// Occupants returns how many people ride the boat on this trip.
func (c Crossing) Occupants() int {
	return c.Missionaries + c.Cannibals
}

// Legal reports whether the trip obeys the boat rules for the given
// departure state: it leaves from the moored bank, carries between one
// and BoatCapacity occupants, and takes no more people than the
// departure bank holds. Legality says nothing about the safety of the
// resulting state; that is the generator's filter.
func (c Crossing) Legal(s river.State) bool {
	from := c.To.Other()
	if s.Boat != from {
		return false
	}
	if c.Missionaries < 0 || c.Cannibals < 0 {
		return false
	}
	if n := c.Occupants(); n < 1 || n > BoatCapacity {
		return false
	}
	return c.Missionaries <= s.BankMissionaries(from) &&
		c.Cannibals <= s.BankCannibals(from)
}

// Apply returns the state after the trip: the party leaves the
// departure bank, lands on the arrival bank, and the boat moors there.
// The parent state is a value and stays untouched.
func (c Crossing) Apply(s river.State) river.State {
	if c.To == river.Right {
		s.LeftMissionaries -= c.Missionaries
		s.LeftCannibals -= c.Cannibals
		s.RightMissionaries += c.Missionaries
		s.RightCannibals += c.Cannibals
	} else {
		s.RightMissionaries -= c.Missionaries
		s.RightCannibals -= c.Cannibals
		s.LeftMissionaries += c.Missionaries
		s.LeftCannibals += c.Cannibals
	}
	s.Boat = c.To
	return s
}

// ShortDescription renders the trip the way the shell lists it, for
// example "1M1C->right" or "2C->left".
func (c Crossing) ShortDescription() string {
	var out string
	if c.Missionaries > 0 {
		out += strconv.Itoa(c.Missionaries) + "M"
	}
	if c.Cannibals > 0 {
		out += strconv.Itoa(c.Cannibals) + "C"
	}
	if out == "" {
		out = "empty"
	}
	return out + "->" + c.To.String()
}

func (c Crossing) String() string {
	return c.ShortDescription()
}
