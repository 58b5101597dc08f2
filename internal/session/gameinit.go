package session

import (
	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// gameInitAccumulator collects the piecemeal game_init commands (spec
// §4.4: maze/walls/mud/cheese/player1/player2/youare/timecontrol arrive as
// separate lines in no fixed order beyond preceding startpreprocessing)
// until enough is known to build the replica GameState.
type gameInitAccumulator struct {
	haveMaze       bool
	width, height  int
	walls          []coord.Edge
	haveWalls      bool
	mud            map[coord.Edge]int
	haveMud        bool
	cheese         []coord.Coordinate
	haveCheese     bool
	p1Pos, p2Pos   coord.Coordinate
	haveP1, haveP2 bool
}

func (g *gameInitAccumulator) reset() {
	*g = gameInitAccumulator{}
}

func (g *gameInitAccumulator) ready() bool {
	return g.haveMaze && g.haveWalls && g.haveMud && g.haveCheese && g.haveP1 && g.haveP2
}

func (g *gameInitAccumulator) build() (*engine.GameConfig, error) {
	return engine.NewBuilder().
		WithMaze(g.width, g.height, g.walls, g.mud).
		WithPlayers(g.p1Pos, g.p2Pos).
		WithCheese(g.cheese).
		Build()
}
