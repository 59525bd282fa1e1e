package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/ferryman/config"
	"github.com/domino14/ferryman/move"
	"github.com/domino14/ferryman/movegen"
	"github.com/domino14/ferryman/river"
	"github.com/domino14/ferryman/solver"
)

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	gen    *movegen.Generator
	solver *solver.Solver

	curState  river.State
	lastStats solver.SearchStats
	haveStats bool

	solveLogFile *os.File
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mferryman>\033[0m ",
		HistoryFile:     "/tmp/ferryman-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("solve"),
			readline.PcItem("set"),
			readline.PcItem("show"),
			readline.PcItem("moves"),
			readline.PcItem("safe"),
			readline.PcItem("levels"),
			readline.PcItem("log",
				readline.PcItem("off")),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})

	if err != nil {
		panic(err)
	}

	gen := movegen.NewGenerator()
	s := &solver.Solver{}
	if err = s.Init(gen); err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, cfg: cfg, gen: gen, solver: s}
	sc.solver.SetTraceStream(l.Stderr())
	sc.curState = river.NewState(cfg.GetInt("default-missionaries"),
		cfg.GetInt("default-cannibals"))
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

func parseCount(tok, kind string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%v is not a number: %v", kind, tok)
	}
	if n < 0 {
		return 0, fmt.Errorf("%v count cannot be negative", kind)
	}
	return n, nil
}

func parseSide(tok string) (river.Side, error) {
	switch strings.ToLower(tok) {
	case "l", "left":
		return river.Left, nil
	case "r", "right":
		return river.Right, nil
	}
	return river.Left, fmt.Errorf("side must be l or r, got %v", tok)
}

// parseStateArgs builds an arbitrary position from five tokens:
// left missionaries, left cannibals, right missionaries, right
// cannibals, boat side.
func parseStateArgs(fields []string) (river.State, error) {
	var s river.State
	if len(fields) != 5 {
		return s, errors.New("expected five arguments: LM LC RM RC l|r")
	}
	var err error
	if s.LeftMissionaries, err = parseCount(fields[0], "left missionary"); err != nil {
		return s, err
	}
	if s.LeftCannibals, err = parseCount(fields[1], "left cannibal"); err != nil {
		return s, err
	}
	if s.RightMissionaries, err = parseCount(fields[2], "right missionary"); err != nil {
		return s, err
	}
	if s.RightCannibals, err = parseCount(fields[3], "right cannibal"); err != nil {
		return s, err
	}
	if s.Boat, err = parseSide(fields[4]); err != nil {
		return s, err
	}
	return s, nil
}

func (sc *ShellController) solveCmd(fields []string) error {
	start := sc.curState
	if len(fields) == 2 {
		m, err := parseCount(fields[0], "missionary")
		if err != nil {
			return err
		}
		c, err := parseCount(fields[1], "cannibal")
		if err != nil {
			return err
		}
		start = river.NewState(m, c)
		sc.curState = start
	} else if len(fields) != 0 {
		return errors.New("wrong format for `solve` command; try solve [M C]")
	}

	solved := sc.solver.Solve(start)
	sc.lastStats = sc.solver.Stats()
	sc.haveStats = true

	if solved {
		sc.showMessage("Solution found!")
	} else {
		sc.showMessage("No solution exists.")
	}
	st := sc.lastStats
	sc.showMessage(fmt.Sprintf(
		"expanded %d positions (%d enqueued, %d deduped), max frontier %d, %d levels, %v",
		st.Expanded, st.Enqueued, st.Deduped, st.MaxFrontier,
		len(st.LevelCounts), st.Elapsed))
	return nil
}

func (sc *ShellController) setCmd(fields []string) error {
	if len(fields) != 2 {
		return errors.New("wrong format for `set` command; try set <M> <C>")
	}
	m, err := parseCount(fields[0], "missionary")
	if err != nil {
		return err
	}
	c, err := parseCount(fields[1], "cannibal")
	if err != nil {
		return err
	}
	sc.curState = river.NewState(m, c)
	sc.showMessage(sc.curState.String())
	return nil
}

func (sc *ShellController) movesCmd(fields []string) error {
	pos := sc.curState
	if len(fields) > 0 {
		var err error
		if pos, err = parseStateArgs(fields); err != nil {
			return err
		}
	}
	plays := sc.gen.GenAll(pos)
	if len(plays) == 0 {
		sc.showMessage("no legal crossings from " + pos.String())
		return nil
	}
	rows := lo.Map(sc.gen.Crossings(), func(c move.Crossing, i int) string {
		return fmt.Sprintf("%-10s %v", c.ShortDescription(), plays[i])
	})
	sc.showMessage(strings.Join(rows, "\n"))
	return nil
}

func (sc *ShellController) safeCmd(fields []string) error {
	s, err := parseStateArgs(fields)
	if err != nil {
		return err
	}
	if s.Safe() {
		sc.showMessage(s.String() + " is safe")
	} else {
		sc.showMessage(s.String() + " is unsafe; missionaries are outnumbered")
	}
	return nil
}

func (sc *ShellController) levelsCmd() error {
	if !sc.haveStats {
		return errors.New("no search stats yet; run `solve` first")
	}
	samples := []float64{}
	for depth, n := range sc.lastStats.LevelCounts {
		for i := 0; i < n; i++ {
			samples = append(samples, float64(depth))
		}
	}
	bins := len(sc.lastStats.LevelCounts)
	if bins > 15 {
		bins = 15
	}
	hist := histogram.Hist(bins, samples)
	return histogram.Fprint(sc.l.Stderr(), hist, histogram.Linear(40))
}

func (sc *ShellController) logCmd(fields []string) error {
	if len(fields) != 1 {
		return errors.New("wrong format for `log` command; try log <path> or log off")
	}
	if fields[0] == "off" {
		sc.solver.SetLogStream(nil)
		if sc.solveLogFile != nil {
			if err := sc.solveLogFile.Close(); err != nil {
				return err
			}
			sc.solveLogFile = nil
		}
		sc.showMessage("solve log closed")
		return nil
	}
	f, err := os.Create(fields[0])
	if err != nil {
		return err
	}
	sc.solveLogFile = f
	sc.solver.SetLogStream(f)
	sc.showMessage("solves will log to " + fields[0])
	return nil
}

func (sc *ShellController) executeLine(line string, sig chan os.Signal) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "solve":
		if err := sc.solveCmd(fields[1:]); err != nil {
			sc.showError(err)
		}
	case "set":
		if err := sc.setCmd(fields[1:]); err != nil {
			sc.showError(err)
		}
	case "show":
		sc.showMessage(sc.curState.String())
	case "moves":
		if err := sc.movesCmd(fields[1:]); err != nil {
			sc.showError(err)
		}
	case "safe":
		if err := sc.safeCmd(fields[1:]); err != nil {
			sc.showError(err)
		}
	case "levels":
		if err := sc.levelsCmd(); err != nil {
			sc.showError(err)
		}
	case "log":
		if err := sc.logCmd(fields[1:]); err != nil {
			sc.showError(err)
		}
	case "help":
		usage(sc.l.Stderr())
	case "exit", "bye", "quit":
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {

	defer sc.l.Close()

	for {

		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		err = sc.executeLine(line, sig)
		if err != nil {
			log.Error().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
