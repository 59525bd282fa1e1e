package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/ferryman/config"
	"github.com/domino14/ferryman/movegen"
	"github.com/domino14/ferryman/river"
	"github.com/domino14/ferryman/shell"
	"github.com/domino14/ferryman/solver"
)

// resolveCounts applies the positional argument rules: with two
// arguments the cannibal count is parsed and validated first, with one
// argument the cannibal count stays zero, and any other argument count
// falls back to the configured defaults. A negative count yields a
// refusal message instead of counts; a malformed count yields an error.
func resolveCounts(args []string, defM, defC int) (m, c int, refusal string, err error) {
	switch len(args) {
	case 2:
		if c, err = strconv.Atoi(args[1]); err != nil {
			return 0, 0, "", fmt.Errorf("cannibal count: %w", err)
		}
		if c < 0 {
			return 0, 0, "Cannibal count cannot be negative.", nil
		}
		fallthrough
	case 1:
		if m, err = strconv.Atoi(args[0]); err != nil {
			return 0, 0, "", fmt.Errorf("missionary count: %w", err)
		}
		if m < 0 {
			return 0, 0, "Missionary count cannot be negative.", nil
		}
	default:
		m, c = defM, defC
		if c < 0 {
			return 0, 0, "Cannibal count cannot be negative.", nil
		}
		if m < 0 {
			return 0, 0, "Missionary count cannot be negative.", nil
		}
	}
	return m, c, "", nil
}

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	if err := cfg.Load(args); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	logger.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	if cfg.GetBool("shell") {
		done := make(chan struct{})
		sig := make(chan os.Signal, 1)
		go func() {
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
			// We received an interrupt signal, shut down.
			log.Info().Msg("got quit signal...")
			close(done)
		}()

		sc := shell.NewShellController(cfg)
		go sc.Loop(sig)
		<-done
		return
	}

	m, c, refusal, err := resolveCounts(cfg.PositionalArgs(),
		cfg.GetInt("default-missionaries"), cfg.GetInt("default-cannibals"))
	if err != nil {
		log.Fatal().Err(err).Msg("bad count argument")
	}
	if refusal != "" {
		fmt.Println(refusal)
		os.Exit(1)
	}

	gen := movegen.NewGenerator()
	s := &solver.Solver{}
	if err := s.Init(gen); err != nil {
		log.Fatal().Err(err).Msg("initializing solver")
	}
	if path := cfg.GetString("solve-log"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("creating solve log")
		}
		defer f.Close()
		s.SetLogStream(f)
	}

	if s.Solve(river.NewState(m, c)) {
		fmt.Println("Solution found!")
	} else {
		fmt.Println("No solution exists.")
	}
}
