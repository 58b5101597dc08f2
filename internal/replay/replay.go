// Package replay renders a finished match's move history as a compact,
// human-readable text log (moves, running scores and remaining cheese per
// turn; no tag block and no board layout lines), following
// the teacher's Show_* family in grid_world.go: direct fmt.Printf-driven
// formatting over a slice of states, no intermediate markup format.
package replay

import (
	"fmt"
	"strings"

	"github.com/pyrat-engine/pyrat/internal/engine"
)

// Turn is one resolved turn's record, re-derived by replaying history
// against a fresh GameState rather than carried inside engine.GameState
// itself (spec §5 keeps GameState minimal: position/score/mud/turn plus
// the bare MovePair history, not a redundant per-turn snapshot).
type Turn struct {
	Number          int
	P1Move, P2Move  string
	P1Score         float64
	P2Score         float64
	CheeseRemaining int
}

// Replay is a fully reconstructed match: one Turn per resolved move pair,
// in order.
type Replay struct {
	Width, Height int
	Turns         []Turn
	FinalP1Score  float64
	FinalP2Score  float64
	Winner        string
}

// Build replays cfg's initial configuration forward through history,
// recomputing engine state turn by turn, and returns the resulting
// Replay. cfg must be the same configuration the match was started
// with; Build calls engine.Create and steps it itself, producing a
// replay that does not depend on the live match's GameState outliving
// the run.
func Build(cfg *engine.GameConfig, history []engine.MovePair) (*Replay, error) {
	state, err := engine.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: rebuilding initial state: %w", err)
	}

	r := &Replay{Width: state.Width(), Height: state.Height()}
	for i, mv := range history {
		state.Step(mv.P1, mv.P2)
		r.Turns = append(r.Turns, Turn{
			Number:          i + 1,
			P1Move:          mv.P1.String(),
			P2Move:          mv.P2.String(),
			P1Score:         state.P1Score(),
			P2Score:         state.P2Score(),
			CheeseRemaining: len(state.CheeseRemaining()),
		})
	}

	r.FinalP1Score = state.P1Score()
	r.FinalP2Score = state.P2Score()
	switch {
	case r.FinalP1Score > r.FinalP2Score:
		r.Winner = "rat"
	case r.FinalP2Score > r.FinalP1Score:
		r.Winner = "python"
	default:
		r.Winner = "draw"
	}
	return r, nil
}

// Text renders r in the teacher's plain fmt.Sprintf style: one line per
// turn, a summary line at the end.
func (r *Replay) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pyrat replay  board=%dx%d  turns=%d\n", r.Width, r.Height, len(r.Turns))
	for _, t := range r.Turns {
		fmt.Fprintf(&b, "%4d. rat=%-5s python=%-5s  score=%.1f-%.1f  cheese=%d\n",
			t.Number, t.P1Move, t.P2Move, t.P1Score, t.P2Score, t.CheeseRemaining)
	}
	fmt.Fprintf(&b, "result: %s wins %.1f-%.1f\n", r.Winner, r.FinalP1Score, r.FinalP2Score)
	return b.String()
}
