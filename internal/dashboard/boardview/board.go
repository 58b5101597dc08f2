// Package boardview projects an engine.GameState into the view-model the
// spectator dashboard renders: the board's static layout (walls, mud) plus
// the turn-by-turn dynamic facts (cheese remaining, player positions,
// scores). The split mirrors the teacher's cell_views.Convert, which turned
// a grid_world.State array into a flat, template-ready CellViewModel array.
package boardview

import (
	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// Snapshot is a point-in-time, render-ready copy of a match's board. It
// holds no reference into the live GameState, so it is safe to hand off
// across a channel to the dashboard's own goroutines.
type Snapshot struct {
	Width, Height  int
	Walls          []coord.Edge
	Mud            map[coord.Edge]int
	Cheese         []coord.Coordinate
	P1Pos, P2Pos   coord.Coordinate
	P1Score        float64
	P2Score        float64
	Turn, MaxTurns int
}

// Convert copies the parts of gs the dashboard needs to render one frame.
func Convert(gs *engine.GameState) Snapshot {
	walls := gs.Walls()
	mud := gs.Mud()
	out := Snapshot{
		Width:    gs.Width(),
		Height:   gs.Height(),
		Walls:    make([]coord.Edge, 0, len(walls)),
		Mud:      make(map[coord.Edge]int, len(mud)),
		Cheese:   gs.CheeseRemaining(),
		P1Pos:    gs.P1Position(),
		P2Pos:    gs.P2Position(),
		P1Score:  gs.P1Score(),
		P2Score:  gs.P2Score(),
		Turn:     gs.Turn(),
		MaxTurns: gs.MaxTurns(),
	}
	for e := range walls {
		out.Walls = append(out.Walls, e)
	}
	for e, cost := range mud {
		out.Mud[e] = cost
	}
	return out
}
