// Command pyrat-match runs a single PyRat match between two AI
// subprocesses (spec §4.6, §6). Configuration follows the teacher's
// main.go idiom: flag.init() registers the CLI surface, an optional
// config.yaml supplies defaults underneath it, and a single runApp()
// carries the actual error instead of main() itself branching on failure.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pyrat-engine/pyrat/internal/config"
	"github.com/pyrat-engine/pyrat/internal/dashboard"
	"github.com/pyrat-engine/pyrat/internal/engine"
	"github.com/pyrat-engine/pyrat/internal/match"
	"github.com/pyrat-engine/pyrat/internal/matchlog"
	"github.com/pyrat-engine/pyrat/internal/maze"
	"github.com/pyrat-engine/pyrat/internal/replay"
)

var (
	cfg        config.MatchConfig
	configPath *string
	replayPath *string
)

// TODO: per 12-factor rules this should come from env too; flags are
// enough for a match runner invoked straight from a shell or a CI job.
func init() {
	configPath = flag.String("config", "", "optional YAML file of match defaults")
	replayPath = flag.String("replay-out", "", "optional path to write a text replay of the match")

	var err error
	cfg, err = config.FromYaml(firstArg(os.Args[1:], "-config"))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	config.BindFlags(flag.CommandLine, &cfg)
	flag.Parse()
}

// firstArg is a best-effort scan for -config VALUE or -config=VALUE ahead
// of flag.Parse, since the config file itself must be known before
// BindFlags registers flags against cfg's defaults.
func firstArg(args []string, name string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(a, name+"=") {
			return strings.TrimPrefix(a, name+"=")
		}
	}
	return ""
}

func runApp() error {
	ratPath, pythonPath := flag.Arg(0), flag.Arg(1)
	if ratPath == "" || pythonPath == "" {
		return errors.New("usage: pyrat-match [flags] <rat-executable> <python-executable>")
	}

	logs, err := matchlog.Open(cfg.LogDir)
	if err != nil {
		return err
	}
	defer logs.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gameCfg, err := maze.Generate(maze.Config{
		Width:       cfg.Width,
		Height:      cfg.Height,
		CheeseCount: cfg.CheeseCount,
		WallDensity: cfg.WallDensity,
		MudDensity:  cfg.MudDensity,
		Symmetric:   cfg.Symmetric,
		Seed:        seed,
	})
	if err != nil {
		return err
	}
	gameCfg.MaxTurns = cfg.MaxTurns

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	appCtx, stop := signal.NotifyContext(appCtx, os.Interrupt)
	defer stop()

	var publisher match.SnapshotPublisher
	if cfg.Dashboard {
		dash, err := dashboard.NewDashboard(appCtx, cfg.DashboardAddr)
		if err != nil {
			return err
		}
		go func() {
			if err := dash.Serve(appCtx); err != nil {
				logs.Event.Printf("dashboard server: %v", err)
			}
		}()
		publisher = dash
	}

	runner := match.NewRunner(match.Config{
		RatPath:               ratPath,
		PythonPath:            pythonPath,
		GameConfig:            gameCfg,
		MoveTimeout:           durationSeconds(cfg.MoveTimeoutSec),
		PreprocessingTimeout:  durationSeconds(cfg.PreprocessingTimeoutSec),
		PostprocessingTimeout: durationSeconds(cfg.PostprocessingTimeoutSec),
		StopGrace:             time.Second,
		InterTurnDelay:        durationSeconds(cfg.DelaySec),
		EventLog:              logs.Event,
		RatLog:                logs.RatProtocol,
		PythonLog:             logs.PyProtocol,
		RatStderrLog:          logs.RatStderr,
		PythonStderrLog:       logs.PythonStderr,
		Dashboard:             publisher,
	})

	result, err := runner.Run(appCtx)
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Printf("match aborted: %s\n", result.FailureCause)
		os.Exit(1)
	}
	fmt.Printf("%s wins %.1f-%.1f over %d turns\n", result.Winner, result.RatScore, result.PythonScore, result.Turns)

	if *replayPath != "" {
		if err := writeReplay(gameCfg, result.History, *replayPath); err != nil {
			logs.Event.Printf("replay: %v", err)
		}
	}
	return nil
}

func writeReplay(gameCfg *engine.GameConfig, history []engine.MovePair, path string) error {
	rep, err := replay.Build(gameCfg, history)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(rep.Text()), 0o644)
}

func durationSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
