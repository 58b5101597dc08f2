// Package observation projects an engine.GameState into the ego-centric
// snapshot an AI session sees (spec §4.3, C4). The projection is pure: it
// allocates fresh matrices from state and never mutates its input, the same
// shape as the teacher's cell_views.Convert transforming a grid_world.State
// array into a CellViewModel array.
package observation

import (
	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// Observation is the snapshot handed to one player's AI session.
type Observation struct {
	PlayerPosition, OpponentPosition coord.Coordinate
	PlayerScore, OpponentScore       float64
	PlayerMudTurns, OpponentMudTurns int
	Turn, MaxTurns                   int

	// CheeseMatrix[x][y] is 1 where cheese is present, else 0.
	CheeseMatrix [][]int

	// MovementMatrix[x][y][d] holds, for direction d in
	// {Up,Right,Down,Left} order, -1 if the move from (x,y) crosses a wall
	// or leaves the board, 0 for a normal single-turn transition, or N>=2
	// for a mud edge of cost N.
	MovementMatrix [][][4]int
}

// directions is the fixed non-STAY ordering movement_matrix's last axis
// iterates: Up, Right, Down, Left (spec §4.3).
var directions = [4]coord.Direction{coord.Up, coord.Right, coord.Down, coord.Left}

// Convert builds the Observation for player 1 if forP1 is true, else player 2.
func Convert(gs *engine.GameState, forP1 bool) Observation {
	width, height := gs.Width(), gs.Height()

	obs := Observation{
		Turn:     gs.Turn(),
		MaxTurns: gs.MaxTurns(),
	}

	if forP1 {
		obs.PlayerPosition, obs.OpponentPosition = gs.P1Position(), gs.P2Position()
		obs.PlayerScore, obs.OpponentScore = gs.P1Score(), gs.P2Score()
		obs.PlayerMudTurns, obs.OpponentMudTurns = gs.P1MudRemaining(), gs.P2MudRemaining()
	} else {
		obs.PlayerPosition, obs.OpponentPosition = gs.P2Position(), gs.P1Position()
		obs.PlayerScore, obs.OpponentScore = gs.P2Score(), gs.P1Score()
		obs.PlayerMudTurns, obs.OpponentMudTurns = gs.P2MudRemaining(), gs.P1MudRemaining()
	}

	obs.CheeseMatrix = cheeseMatrix(gs, width, height)
	obs.MovementMatrix = movementMatrix(gs, width, height)
	return obs
}

func cheeseMatrix(gs *engine.GameState, width, height int) [][]int {
	matrix := make([][]int, width)
	for x := range matrix {
		matrix[x] = make([]int, height)
	}
	for _, c := range gs.CheeseRemaining() {
		matrix[c.X][c.Y] = 1
	}
	return matrix
}

func movementMatrix(gs *engine.GameState, width, height int) [][][4]int {
	walls := gs.Walls()
	mud := gs.Mud()

	matrix := make([][][4]int, width)
	for x := 0; x < width; x++ {
		matrix[x] = make([][4]int, height)
		for y := 0; y < height; y++ {
			here := coord.Coordinate{X: x, Y: y}
			for i, d := range directions {
				next := here.Neighbor(d)
				if !next.InBounds(width, height) {
					matrix[x][y][i] = -1
					continue
				}
				edge := coord.NewEdge(here, next)
				if _, blocked := walls[edge]; blocked {
					matrix[x][y][i] = -1
					continue
				}
				if cost, muddy := mud[edge]; muddy {
					matrix[x][y][i] = cost
					continue
				}
				matrix[x][y][i] = 0
			}
		}
	}
	return matrix
}
