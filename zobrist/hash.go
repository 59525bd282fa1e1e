package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/ferryman/river"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a river crossing position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// Every (bank, kind, count) combination gets its own random key, plus
// one key for the boat being on the right bank. A position hashes to
// the XOR of the five keys its fields select. Keys are drawn fresh per
// process, so these hashes are only comparable within a single run;
// use river.State.Fingerprint for anything that outlives it.
type Zobrist struct {
	boatRight uint64

	leftMissionaryTable  []uint64
	leftCannibalTable    []uint64
	rightMissionaryTable []uint64
	rightCannibalTable   []uint64

	maxMissionaries int
	maxCannibals    int
}

// Initialize sizes the key tables for positions holding up to the given
// totals. Crossings conserve people, so sizing from the initial position
// covers every reachable state.
func (z *Zobrist) Initialize(maxMissionaries, maxCannibals int) {
	z.maxMissionaries = maxMissionaries
	z.maxCannibals = maxCannibals

	z.leftMissionaryTable = randomTable(maxMissionaries + 1)
	z.rightMissionaryTable = randomTable(maxMissionaries + 1)
	z.leftCannibalTable = randomTable(maxCannibals + 1)
	z.rightCannibalTable = randomTable(maxCannibals + 1)

	z.boatRight = frand.Uint64n(bignum) + 1
}

func randomTable(n int) []uint64 {
	t := make([]uint64, n)
	for i := range t {
		t[i] = frand.Uint64n(bignum) + 1
	}
	return t
}

// MaxMissionaries returns the missionary total the key tables were sized for.
func (z *Zobrist) MaxMissionaries() int {
	return z.maxMissionaries
}

// MaxCannibals returns the cannibal total the key tables were sized for.
func (z *Zobrist) MaxCannibals() int {
	return z.maxCannibals
}

// Hash returns the zobrist key for a position. The position's counts
// must not exceed the totals passed to Initialize.
func (z *Zobrist) Hash(s river.State) uint64 {
	key := z.leftMissionaryTable[s.LeftMissionaries]
	key ^= z.leftCannibalTable[s.LeftCannibals]
	key ^= z.rightMissionaryTable[s.RightMissionaries]
	key ^= z.rightCannibalTable[s.RightCannibals]
	if s.Boat == river.Right {
		key ^= z.boatRight
	}
	return key
}
