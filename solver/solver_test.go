package solver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/ferryman/movegen"
	"github.com/domino14/ferryman/river"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func setUpSolver() *Solver {
	s := &Solver{}
	err := s.Init(movegen.NewGenerator())
	if err != nil {
		panic(err)
	}
	s.SetTraceStream(io.Discard)
	return s
}

func TestSolveClassic(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()

	solved := s.Solve(river.NewState(3, 3))
	is.True(solved)

	st := s.Stats()
	// The shortest solution takes 11 crossings, so the search expands
	// at least one position per level 0 through 11 and never more than
	// the 2(M+1)(C+1) bound.
	is.Equal(len(st.LevelCounts), 12)
	is.True(st.Expanded >= 12)
	is.True(st.Expanded <= 32)
	sum := uint64(0)
	for _, n := range st.LevelCounts {
		is.True(n > 0)
		sum += uint64(n)
	}
	is.Equal(sum, st.Expanded)
	is.True(st.MaxFrontier >= 1)
	is.True(st.Elapsed > 0)
}

type scenarioTestStruct struct {
	missionaries int
	cannibals    int
	solvable     bool
}

func TestSolveScenarios(t *testing.T) {
	var cases = []scenarioTestStruct{
		{3, 3, true},
		{2, 2, true},
		{1, 1, true},
		{1, 0, true},
		{0, 3, true},
		{3, 0, true},
		{0, 0, false},
		// With a two-seat boat the symmetric puzzle stops being
		// solvable at four of each.
		{4, 4, false},
		{5, 5, false},
		// The goal position itself is unsafe here (one missionary
		// against two cannibals on the right bank).
		{1, 2, false},
	}
	for idx, tc := range cases {
		s := setUpSolver()
		solved := s.Solve(river.NewState(tc.missionaries, tc.cannibals))
		if solved != tc.solvable {
			t.Errorf("%v Solve(%v, %v) = %v, expected %v", idx,
				tc.missionaries, tc.cannibals, solved, tc.solvable)
		}
	}
}

func TestSolveTraceExact(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()
	var buf bytes.Buffer
	s.SetTraceStream(&buf)

	solved := s.Solve(river.NewState(1, 0))
	is.True(solved)
	is.Equal(s.Stats().Expanded, uint64(2))

	expected := fmt.Sprintf(traceTemplate, 1, 0, 0, 0, true) +
		fmt.Sprintf(traceTemplate, 0, 0, 1, 0, false)
	is.Equal(buf.String(), expected)
}

func TestSolveEmptyPuzzle(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()
	var buf bytes.Buffer
	s.SetTraceStream(&buf)

	// Nobody to ferry, but the boat is still on the left bank, so the
	// lone reachable position is not the goal.
	solved := s.Solve(river.NewState(0, 0))
	is.True(!solved)

	st := s.Stats()
	is.Equal(st.Expanded, uint64(1))
	is.Equal(st.LevelCounts, []int{1})
	is.Equal(buf.String(), fmt.Sprintf(traceTemplate, 0, 0, 0, 0, true))
}

func TestSolveSmallPuzzleOrder(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()
	var buf bytes.Buffer
	s.SetTraceStream(&buf)

	solved := s.Solve(river.NewState(1, 1))
	is.True(solved)

	st := s.Stats()
	is.Equal(st.Expanded, uint64(4))
	is.Equal(st.LevelCounts, []int{1, 3})

	// Expansion order is fixed: the start position, then its three
	// successors in generation order, the last of which is the goal.
	expected := fmt.Sprintf(traceTemplate, 1, 1, 0, 0, true) +
		fmt.Sprintf(traceTemplate, 1, 0, 0, 1, false) +
		fmt.Sprintf(traceTemplate, 0, 1, 1, 0, false) +
		fmt.Sprintf(traceTemplate, 0, 0, 1, 1, false)
	is.Equal(buf.String(), expected)
}

func TestSolveUnsafeStart(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()

	// One missionary, two cannibals. The start position is already
	// unsafe; it still gets expanded, but no crossing may recreate it
	// and the goal position is unsafe too, so the search drains the
	// whole reachable space.
	solved := s.Solve(river.NewState(1, 2))
	is.True(!solved)

	st := s.Stats()
	is.Equal(st.Expanded, uint64(7))
	is.Equal(st.Enqueued, uint64(8))
	is.Equal(st.Deduped, uint64(1))
	is.Equal(st.MaxFrontier, 4)
	is.Equal(st.LevelCounts, []int{1, 4, 2})
}

func TestSolveAlreadyAcross(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()

	start := river.State{RightMissionaries: 2, RightCannibals: 2, Boat: river.Right}
	solved := s.Solve(start)
	is.True(solved)
	is.Equal(s.Stats().Expanded, uint64(1))
	is.Equal(s.Stats().LevelCounts, []int{1})
}

func TestSolveRepeatable(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()

	is.True(s.Solve(river.NewState(3, 3)))
	first := s.Stats()
	is.True(s.Solve(river.NewState(3, 3)))
	second := s.Stats()

	is.Equal(first.Expanded, second.Expanded)
	is.Equal(first.Enqueued, second.Enqueued)
	is.Equal(first.Deduped, second.Deduped)
	is.Equal(first.MaxFrontier, second.MaxFrontier)
	is.Equal(first.LevelCounts, second.LevelCounts)

	// No visited-set state may leak between calls.
	is.True(!s.Solve(river.NewState(0, 0)))
	is.Equal(s.Stats().Expanded, uint64(1))
}

func TestSolveLogStream(t *testing.T) {
	is := is.New(t)
	s := setUpSolver()
	var buf bytes.Buffer
	s.SetLogStream(&buf)

	is.True(s.Solve(river.NewState(1, 1)))

	// Each expansion appends a one-element YAML list, so the whole
	// stream parses back as a single list.
	var entries []LogEntry
	err := yaml.Unmarshal(buf.Bytes(), &entries)
	is.NoErr(err)
	is.Equal(len(entries), 4)

	fingerprints := make(map[uint64]bool)
	for i, e := range entries {
		is.Equal(e.Expansion, uint64(i+1))
		// People are conserved at every expanded position.
		is.Equal(e.LeftMissionaries+e.RightMissionaries, 1)
		is.Equal(e.LeftCannibals+e.RightCannibals, 1)
		fingerprints[e.Fingerprint] = true
	}
	// Expanded positions are all distinct.
	is.Equal(len(fingerprints), 4)

	is.Equal(entries[0].Depth, 0)
	is.True(entries[0].BoatOnLeft)
	is.Equal(entries[0].Successors, 3)
	is.True(entries[3].Goal)
	is.True(!entries[3].BoatOnLeft)
	is.Equal(entries[3].Successors, 0)
}
