package observation

import (
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func buildState(t *testing.T) *engine.GameState {
	t.Helper()
	wall := coord.NewEdge(coord.Coordinate{X: 1, Y: 0}, coord.Coordinate{X: 2, Y: 0})
	mudEdge := coord.NewEdge(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 0, Y: 1})
	cfg, err := engine.NewBuilder().
		WithMaze(3, 2, []coord.Edge{wall}, map[coord.Edge]int{mudEdge: 4}).
		WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 2, Y: 1}).
		WithCheese([]coord.Coordinate{{X: 1, Y: 1}}).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	gs, err := engine.Create(cfg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return gs
}

func TestConvertIsEgoCentric(t *testing.T) {
	Convey("Given a game state", t, func() {
		gs := buildState(t)

		Convey("Player 1's observation names itself as player", func() {
			obs := Convert(gs, true)
			So(obs.PlayerPosition, ShouldResemble, gs.P1Position())
			So(obs.OpponentPosition, ShouldResemble, gs.P2Position())
		})

		Convey("Player 2's observation names itself as player", func() {
			obs := Convert(gs, false)
			So(obs.PlayerPosition, ShouldResemble, gs.P2Position())
			So(obs.OpponentPosition, ShouldResemble, gs.P1Position())
		})
	})
}

func TestConvertCheeseMatrix(t *testing.T) {
	Convey("Given one cheese at (1,1)", t, func() {
		gs := buildState(t)
		obs := Convert(gs, true)

		Convey("The matrix marks only that cell", func() {
			for x := 0; x < 3; x++ {
				for y := 0; y < 2; y++ {
					want := 0
					if x == 1 && y == 1 {
						want = 1
					}
					So(obs.CheeseMatrix[x][y], ShouldEqual, want)
				}
			}
		})
	})
}

func TestConvertMovementMatrixWallAndMud(t *testing.T) {
	Convey("Given a wall between (1,0) and (2,0), and mud of cost 4 between (0,0) and (0,1)", t, func() {
		gs := buildState(t)
		obs := Convert(gs, true)

		Convey("Moving Right from (1,0) is blocked", func() {
			So(obs.MovementMatrix[1][0][1], ShouldEqual, -1) // Right is index 1
		})

		Convey("Moving Up from (0,0) enters mud of cost 4", func() {
			So(obs.MovementMatrix[0][0][0], ShouldEqual, 4) // Up is index 0, (0,0)->(0,1)
		})

		Convey("Moving off the west edge is blocked", func() {
			So(obs.MovementMatrix[0][0][3], ShouldEqual, -1) // Left is index 3
		})

		Convey("An ordinary open transition reads 0", func() {
			So(obs.MovementMatrix[1][1][2], ShouldEqual, 0) // Down from (1,1) to (1,0)
		})
	})
}

func TestConvertDoesNotMutateState(t *testing.T) {
	Convey("Calling Convert twice yields independent matrices", t, func() {
		gs := buildState(t)
		a := Convert(gs, true)
		b := Convert(gs, true)
		a.CheeseMatrix[0][0] = 99
		So(b.CheeseMatrix[0][0], ShouldNotEqual, 99)
	})
}
