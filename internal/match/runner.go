// Package match implements the match runner (C7, spec §4.6): it spawns two
// AI subprocesses, drives them through the protocol state machine in
// lockstep with its own authoritative engine.GameState, and reports the
// final outcome. Concurrency follows fastview/client.go's
// errgroup.WithContext join for the handshake; the per-turn parallel move
// queries run as two goroutines, each reporting on its own result channel
// (see turn.go); channerics.Merge fans both processes' exit signals into one
// watchdog stream (see watchdog.go) — the read fit for Merge that
// internal/session's own entry points away from, since an exit signal
// carries no per-player attribution for Merge's arrival-order interleaving
// to scramble.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/dashboard/boardview"
	"github.com/pyrat-engine/pyrat/internal/engine"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// EventLogger receives a line per notable match event (turn resolution,
// timeouts, crashes). It is satisfied by *log.Logger; matchlog wires a
// *log.Logger writing to events.log here.
type EventLogger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// SnapshotPublisher receives one board snapshot per resolved turn. It is
// satisfied by *dashboard.Dashboard; passing nil disables the spectator
// feed entirely with no other effect on match correctness.
type SnapshotPublisher interface {
	Publish(boardview.Snapshot)
}

// Config configures a single match run.
type Config struct {
	RatPath, PythonPath string
	RatArgs, PythonArgs []string

	GameConfig *engine.GameConfig

	MoveTimeout           time.Duration
	PreprocessingTimeout  time.Duration
	PostprocessingTimeout time.Duration
	StopGrace             time.Duration

	// InterTurnDelay pauses the runner after each resolved turn, matching
	// the CLI's --delay (a display pacing knob only, never load-bearing).
	InterTurnDelay time.Duration

	EventLog        EventLogger
	RatLog          EventLogger // per-AI protocol transcript, optional
	PythonLog       EventLogger
	RatStderrLog    EventLogger // per-AI stderr passthrough, optional
	PythonStderrLog EventLogger
	Dashboard       SnapshotPublisher // optional spectator sink
}

// Result is the outcome of one match (spec §4.6's "(success, winner,
// rat_score, python_score)" contract).
type Result struct {
	Success      bool
	Winner       string // "rat", "python", "draw" (meaningless if !Success)
	RatScore     float64
	PythonScore  float64
	Turns        int
	Stats        Snapshot
	History      []engine.MovePair
	FailureCause string // populated when !Success
}

// Runner drives one match to completion.
type Runner struct {
	cfg Config

	rat, python *aiProcess
	ratLink     *aiLink
	pythonLink  *aiLink

	state *engine.GameState
	stats ThinkStats
}

// NewRunner constructs a Runner from cfg. It does not spawn processes; call
// Run to execute the match.
func NewRunner(cfg Config) *Runner {
	if cfg.EventLog == nil {
		cfg.EventLog = noopLogger{}
	}
	if cfg.RatLog == nil {
		cfg.RatLog = noopLogger{}
	}
	if cfg.PythonLog == nil {
		cfg.PythonLog = noopLogger{}
	}
	if cfg.RatStderrLog == nil {
		cfg.RatStderrLog = noopLogger{}
	}
	if cfg.PythonStderrLog == nil {
		cfg.PythonStderrLog = noopLogger{}
	}
	return &Runner{cfg: cfg}
}

// Run executes spec §4.6's full sequence: spawn, handshake, game init,
// preprocessing, game loop, finalize. It always attempts to stop both
// child processes before returning, even on early failure.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	state, err := engine.Create(r.cfg.GameConfig)
	if err != nil {
		return Result{}, fmt.Errorf("match: invalid game config: %w", err)
	}
	r.state = state

	if err := r.spawn(ctx); err != nil {
		return Result{Success: false, FailureCause: err.Error()}, nil
	}
	defer r.stopBoth()
	r.watchForCrash(ctx)

	if _, _, err := r.handshake(ctx); err != nil {
		r.cfg.EventLog.Printf("handshake failed: %v", err)
		return Result{Success: false, FailureCause: err.Error()}, nil
	}

	if err := r.broadcastGameInit(); err != nil {
		r.cfg.EventLog.Printf("game init failed: %v", err)
		return Result{Success: false, FailureCause: err.Error()}, nil
	}

	r.preprocess(ctx)
	r.publishSnapshot()

	prevRat, prevPython := coord.Stay, coord.Stay
	for {
		ratMove, pyMove, alive := r.queryTurn(ctx, prevRat, prevPython)
		if !alive {
			return Result{Success: false, FailureCause: "an AI process crashed during play"}, nil
		}

		over, _ := r.state.Step(ratMove, pyMove)
		r.stats.IncTurn()
		r.cfg.EventLog.Printf("turn %d: rat=%s python=%s score=%.1f-%.1f",
			r.state.Turn(), ratMove, pyMove, r.state.P1Score(), r.state.P2Score())
		r.publishSnapshot()

		prevRat, prevPython = ratMove, pyMove
		if over {
			break
		}
		if r.cfg.InterTurnDelay > 0 {
			time.Sleep(r.cfg.InterTurnDelay)
		}
	}

	return r.finalize(ctx), nil
}

func (r *Runner) spawn(ctx context.Context) error {
	rat, err := spawnAIProcess(ctx, "rat", r.cfg.RatPath, r.cfg.RatArgs...)
	if err != nil {
		return err
	}
	python, err := spawnAIProcess(ctx, "python", r.cfg.PythonPath, r.cfg.PythonArgs...)
	if err != nil {
		rat.stop(r.cfg.StopGrace)
		return err
	}
	r.rat, r.python = rat, python
	r.ratLink = newAILink(rat, "rat", r.cfg.RatLog)
	r.pythonLink = newAILink(python, "python", r.cfg.PythonLog)
	go rat.pumpStderr(r.cfg.RatStderrLog)
	go python.pumpStderr(r.cfg.PythonStderrLog)
	return nil
}

func (r *Runner) stopBoth() {
	var ratDone, pyDone chan struct{}
	stop := func(link *aiLink) chan struct{} {
		done := make(chan struct{})
		go func() {
			defer close(done)
			if link.proc.alive() {
				_ = link.send(protocol.Command{Kind: protocol.CmdStop})
			}
			link.proc.stop(r.cfg.StopGrace)
		}()
		return done
	}
	ratDone = stop(r.ratLink)
	pyDone = stop(r.pythonLink)
	<-ratDone
	<-pyDone
}

func (r *Runner) publishSnapshot() {
	if r.cfg.Dashboard == nil {
		return
	}
	r.cfg.Dashboard.Publish(boardview.Convert(r.state))
}
