// Package movegen contains the crossing-generating functions. It
// enumerates every way to load the boat at its current bank and keeps
// only the trips that leave both banks safe.
package movegen

import (
	"github.com/domino14/ferryman/move"
	"github.com/domino14/ferryman/river"
)

// MoveGenerator is anything that can generate the successor positions
// of a river position.
type MoveGenerator interface {
	GenAll(s river.State) []river.State
}

// Generator generates legal crossings from a position. It enumerates
// boat loads with the missionary count ascending and the cannibal
// count ascending within it, so successor order is deterministic for a
// given position.
type Generator struct {
	plays     []river.State
	crossings []move.Crossing
}

// NewGenerator creates a crossing generator.
func NewGenerator() *Generator {
	return &Generator{
		plays:     make([]river.State, 0, 5),
		crossings: make([]move.Crossing, 0, 5),
	}
}

// GenAll generates every legal, safe crossing from the given position
// and returns the successor positions in enumeration order. The
// returned slice is reused by the next call; callers that need to keep
// it must copy it.
func (g *Generator) GenAll(s river.State) []river.State {
	g.plays = g.plays[:0]
	g.crossings = g.crossings[:0]

	to := s.Boat.Other()
	for m := 0; m <= move.BoatCapacity; m++ {
		for c := 0; c <= move.BoatCapacity; c++ {
			if m+c < 1 || m+c > move.BoatCapacity {
				continue
			}
			cr := move.Crossing{Missionaries: m, Cannibals: c, To: to}
			if !cr.Legal(s) {
				continue
			}
			next := cr.Apply(s)
			if !next.Safe() {
				continue
			}
			g.plays = append(g.plays, next)
			g.crossings = append(g.crossings, cr)
		}
	}
	return g.plays
}

// Plays returns the successor positions from the last GenAll call.
func (g *Generator) Plays() []river.State {
	return g.plays
}

// Crossings returns the boat loads behind the last GenAll call, index
// aligned with Plays.
func (g *Generator) Crossings() []move.Crossing {
	return g.crossings
}
