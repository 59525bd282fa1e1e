package solver

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/ferryman/movegen"
	"github.com/domino14/ferryman/river"
	"github.com/domino14/ferryman/zobrist"
)

// thanks Wikipedia:
/*
procedure BFS(G, root) is
    let Q be a queue
    label root as explored
    Q.enqueue(root)
    while Q is not empty do
        v := Q.dequeue()
        if v is the goal then
            return v
        for all edges from v to w in G.adjacentEdges(v) do
            if w is not labeled as explored then
                label w as explored
                Q.enqueue(w)
**/
// We label positions as explored at dequeue time rather than enqueue
// time, so a position can sit in the frontier more than once; the
// dequeue check discards the extras. The skip at enqueue is only a
// frontier-size optimization and the goal test runs on the dequeued
// position, after it is recorded and printed.

const traceTemplate = "Current State: \n" +
	"\tMissionaries on the left: %d\n" +
	"\tCannibals on the left: %d\n" +
	"\tMissionaries on the right: %d\n" +
	"\tCannibals on the right: %d\n" +
	"\tBoat on the left: %v\n"

// frontierEntry pairs a queued position with its crossing depth. Depth
// only feeds the per-level counters; the search keeps no parent links.
type frontierEntry struct {
	state river.State
	depth int
}

// LogEntry is a struct meant for serializing to a log-file, for debug
// and other purposes.
type LogEntry struct {
	Expansion         uint64 `json:"expansion" yaml:"expansion"`
	Depth             int    `json:"depth" yaml:"depth"`
	Fingerprint       uint64 `json:"fingerprint" yaml:"fingerprint"`
	LeftMissionaries  int    `json:"left_missionaries" yaml:"left_missionaries"`
	LeftCannibals     int    `json:"left_cannibals" yaml:"left_cannibals"`
	RightMissionaries int    `json:"right_missionaries" yaml:"right_missionaries"`
	RightCannibals    int    `json:"right_cannibals" yaml:"right_cannibals"`
	BoatOnLeft        bool   `json:"boat_on_left" yaml:"boat_on_left"`
	Successors        int    `json:"successors" yaml:"successors"`
	Frontier          int    `json:"frontier" yaml:"frontier"`
	Goal              bool   `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// SearchStats summarizes one Solve call.
type SearchStats struct {
	Expanded    uint64
	Enqueued    uint64
	Deduped     uint64
	MaxFrontier int
	LevelCounts []int
	Elapsed     time.Duration
}

// Solver runs an exhaustive breadth-first search over the crossing
// state space. It reports whether the goal position is reachable; it
// does not reconstruct the crossing sequence.
type Solver struct {
	zobrist *zobrist.Zobrist
	gen     movegen.MoveGenerator

	frontier []frontierEntry
	explored map[uint64][]river.State

	stats SearchStats

	traceStream io.Writer
	logStream   io.Writer
}

// Init initializes the solver. The expansion trace defaults to
// standard output.
func (s *Solver) Init(gen movegen.MoveGenerator) error {
	s.zobrist = &zobrist.Zobrist{}
	s.gen = gen
	s.traceStream = os.Stdout
	return nil
}

// SetTraceStream redirects the per-expansion console trace. Pass nil
// to silence it.
func (s *Solver) SetTraceStream(w io.Writer) {
	s.traceStream = w
}

// SetLogStream sets the writer YAML log entries are written to, one
// document per expansion. Pass nil to turn logging off.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// Stats returns the counters from the most recent Solve call.
func (s *Solver) Stats() SearchStats {
	return s.stats
}

// Solve searches breadth-first from the initial position and reports
// whether everyone can reach the right bank. Every reachable position
// is expanded at most once, so the search always terminates; the state
// space holds at most 2(M+1)(C+1) positions.
func (s *Solver) Solve(initial river.State) bool {
	tstart := time.Now()
	log.Debug().
		Int("missionaries", initial.Missionaries()).
		Int("cannibals", initial.Cannibals()).
		Msg("bfs-solve-config")

	s.zobrist.Initialize(initial.Missionaries(), initial.Cannibals())
	s.explored = make(map[uint64][]river.State)
	s.frontier = s.frontier[:0]
	s.stats = SearchStats{}

	s.frontier = append(s.frontier, frontierEntry{state: initial})
	s.stats.Enqueued++
	s.stats.MaxFrontier = 1

	solved := false

	for len(s.frontier) > 0 {
		entry := s.frontier[0]
		s.frontier = s.frontier[1:]
		cur := entry.state

		key := s.zobrist.Hash(cur)
		if s.alreadyExplored(key, cur) {
			s.stats.Deduped++
			continue
		}
		s.explored[key] = append(s.explored[key], cur)

		s.printTrace(cur)
		s.stats.Expanded++
		s.countLevel(entry.depth)

		if cur.AllAcross() {
			s.logExpansion(cur, entry.depth, 0, true)
			solved = true
			break
		}

		plays := s.gen.GenAll(cur)
		for _, play := range plays {
			if s.alreadyExplored(s.zobrist.Hash(play), play) {
				continue
			}
			s.frontier = append(s.frontier, frontierEntry{state: play, depth: entry.depth + 1})
			s.stats.Enqueued++
			if len(s.frontier) > s.stats.MaxFrontier {
				s.stats.MaxFrontier = len(s.frontier)
			}
		}
		s.logExpansion(cur, entry.depth, len(plays), false)
	}

	s.stats.Elapsed = time.Since(tstart)
	log.Info().
		Bool("solved", solved).
		Uint64("expanded", s.stats.Expanded).
		Uint64("enqueued", s.stats.Enqueued).
		Uint64("deduped", s.stats.Deduped).
		Int("max-frontier", s.stats.MaxFrontier).
		Float64("time-elapsed-sec", s.stats.Elapsed.Seconds()).
		Msg("solve-returning")
	return solved
}

// alreadyExplored reports whether the position was expanded before.
// The zobrist key picks the bucket and structural equality confirms
// the hit, so a key collision can never merge two distinct positions.
func (s *Solver) alreadyExplored(key uint64, st river.State) bool {
	for _, prev := range s.explored[key] {
		if prev == st {
			return true
		}
	}
	return false
}

func (s *Solver) countLevel(depth int) {
	for len(s.stats.LevelCounts) <= depth {
		s.stats.LevelCounts = append(s.stats.LevelCounts, 0)
	}
	s.stats.LevelCounts[depth]++
}

func (s *Solver) printTrace(cur river.State) {
	if s.traceStream == nil {
		return
	}
	fmt.Fprintf(s.traceStream, traceTemplate,
		cur.LeftMissionaries, cur.LeftCannibals,
		cur.RightMissionaries, cur.RightCannibals,
		cur.Boat == river.Left)
}

func (s *Solver) logExpansion(cur river.State, depth, successors int, goal bool) {
	if s.logStream == nil {
		return
	}
	entry := LogEntry{
		Expansion:         s.stats.Expanded,
		Depth:             depth,
		Fingerprint:       cur.Fingerprint(),
		LeftMissionaries:  cur.LeftMissionaries,
		LeftCannibals:     cur.LeftCannibals,
		RightMissionaries: cur.RightMissionaries,
		RightCannibals:    cur.RightCannibals,
		BoatOnLeft:        cur.Boat == river.Left,
		Successors:        successors,
		Frontier:          len(s.frontier),
		Goal:              goal,
	}
	out, err := yaml.Marshal([]LogEntry{entry})
	if err != nil {
		log.Error().Err(err).Msg("marshalling log")
		return
	}
	s.logStream.Write(out)
}
