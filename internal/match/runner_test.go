package match

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

// writeFakeAI writes script as an executable shell AI and returns its path.
// Driving the runner against real subprocesses (rather than mocking aiLink)
// exercises the same stdio plumbing a real pyrat-playing AI would hit.
func writeFakeAI(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("writing fake AI %s: %v", name, err)
	}
	return path
}

// alwaysStayScript answers the handshake and every "go" with STAY, and
// acknowledges preprocessing/postprocessing immediately.
const alwaysStayScript = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    pyrat)
      echo "id name staybot"
      echo "id author test harness"
      echo "pyratready"
      ;;
    isready) echo "readyok" ;;
    "ready?") echo "ready" ;;
    startpreprocessing) echo "preprocessingdone" ;;
    startpostprocessing) echo "postprocessingdone" ;;
    go) echo "move STAY" ;;
    stop) exit 0 ;;
    *) ;;
  esac
done
`

// silentScript never answers pyrat, simulating a dead or hung AI at
// handshake time.
const silentScript = `#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    stop) exit 0 ;;
    *) ;;
  esac
done
`

func minimalGameConfig(t *testing.T, maxTurns int) *engine.GameConfig {
	t.Helper()
	cfg, err := engine.NewBuilder().
		WithMaze(2, 2, nil, nil).
		WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 1, Y: 0}).
		WithCheese([]coord.Coordinate{{X: 0, Y: 1}}).
		WithMaxTurns(maxTurns).
		Build()
	if err != nil {
		t.Fatalf("building minimal game config: %v", err)
	}
	return cfg
}

func TestRunCompletesAMinimalMatch(t *testing.T) {
	Convey("Given two AIs that always answer STAY", t, func() {
		dir := t.TempDir()
		rat := writeFakeAI(t, dir, "rat.sh", alwaysStayScript)
		python := writeFakeAI(t, dir, "python.sh", alwaysStayScript)

		runner := NewRunner(Config{
			RatPath:               rat,
			PythonPath:            python,
			GameConfig:            minimalGameConfig(t, 2),
			MoveTimeout:           time.Second,
			PreprocessingTimeout:  time.Second,
			PostprocessingTimeout: time.Second,
			StopGrace:             time.Second,
		})

		Convey("Run drives the match to completion with a draw", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			result, err := runner.Run(ctx)

			So(err, ShouldBeNil)
			So(result.Success, ShouldBeTrue)
			So(result.Turns, ShouldEqual, 2)
			So(result.Winner, ShouldEqual, "draw")
			So(result.History, ShouldHaveLength, 2)
		})
	})
}

func TestRunReportsFailureWhenAnAIIsSilentAtHandshake(t *testing.T) {
	Convey("Given one AI that never answers pyrat", t, func() {
		dir := t.TempDir()
		rat := writeFakeAI(t, dir, "rat.sh", silentScript)
		python := writeFakeAI(t, dir, "python.sh", alwaysStayScript)

		runner := NewRunner(Config{
			RatPath:               rat,
			PythonPath:            python,
			GameConfig:            minimalGameConfig(t, 2),
			MoveTimeout:           50 * time.Millisecond,
			PreprocessingTimeout:  time.Second,
			PostprocessingTimeout: time.Second,
			StopGrace:             time.Second,
		})

		Convey("Run reports failure instead of hanging", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			result, err := runner.Run(ctx)

			So(err, ShouldBeNil)
			So(result.Success, ShouldBeFalse)
			So(result.FailureCause, ShouldNotBeEmpty)
		})
	})
}
