package engine

import (
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	. "github.com/smartystreets/goconvey/convey"
)

func mustBuild(t *testing.T, b *Builder) *GameState {
	t.Helper()
	cfg, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	gs, err := Create(cfg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return gs
}

// raceLine5x2 builds the S1 scenario: 5x2 board, no walls/mud, three
// cheese in a row along y=0, rat and python on opposite ends of that row.
func raceLine5x2(t *testing.T) *GameState {
	t.Helper()
	cheese := []coord.Coordinate{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}
	b := NewBuilder().
		WithMaze(5, 2, nil, nil).
		WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 4, Y: 0}).
		WithCheese(cheese)
	return mustBuild(t, b)
}

func TestScenarioS1SymmetricRaceEqualSplit(t *testing.T) {
	Convey("Given the 5x2 symmetric race board", t, func() {
		gs := raceLine5x2(t)

		Convey("Turn 1: both move toward the middle", func() {
			over, collected := gs.Step(coord.Right, coord.Left)
			So(over, ShouldBeFalse)
			So(collected, ShouldResemble, []coord.Coordinate{{X: 1, Y: 0}, {X: 3, Y: 0}})
			So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 1, Y: 0})
			So(gs.P2Position(), ShouldResemble, coord.Coordinate{X: 3, Y: 0})

			Convey("Turn 2: both arrive at the center cheese simultaneously", func() {
				over, collected := gs.Step(coord.Right, coord.Left)
				So(over, ShouldBeTrue)
				So(collected, ShouldResemble, []coord.Coordinate{{X: 2, Y: 0}})
				So(gs.P1Score(), ShouldEqual, 1.5)
				So(gs.P2Score(), ShouldEqual, 1.5)
				So(gs.CheeseRemaining(), ShouldBeEmpty)
				So(gs.Turn(), ShouldEqual, 2)
			})
		})
	})
}

func TestIllegalMoveDegradesToStay(t *testing.T) {
	Convey("Given a player at the west wall of a walled board", t, func() {
		b := NewBuilder().
			WithMaze(3, 3, []coord.Edge{coord.NewEdge(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 1, Y: 0})}, nil).
			WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 2, Y: 2}).
			WithCheese([]coord.Coordinate{{X: 2, Y: 0}})
		gs := mustBuild(t, b)

		Convey("Stepping into the wall leaves the player in place", func() {
			gs.Step(coord.Right, coord.Stay)
			So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 0, Y: 0})
		})

		Convey("Stepping off the board leaves the player in place", func() {
			gs.Step(coord.Down, coord.Stay)
			So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 0, Y: 0})
		})
	})
}

func TestMudImmobilization(t *testing.T) {
	Convey("Given a mud edge of cost 3 directly east of player 1", t, func() {
		edge := coord.NewEdge(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 1, Y: 0})
		b := NewBuilder().
			WithMaze(4, 2, nil, map[coord.Edge]int{edge: 3}).
			WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 3, Y: 0}).
			WithCheese([]coord.Coordinate{{X: 1, Y: 0}})
		gs := mustBuild(t, b)

		Convey("Entering the mud consumes a move without advancing", func() {
			gs.Step(coord.Right, coord.Stay)
			So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 0, Y: 0})
			So(gs.P1MudRemaining(), ShouldEqual, 2)
		})

		Convey("The player remains trapped regardless of further submissions", func() {
			gs.Step(coord.Right, coord.Stay)
			gs.Step(coord.Left, coord.Stay) // direction is ignored while mudded
			So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 0, Y: 0})
			So(gs.P1MudRemaining(), ShouldEqual, 1)

			Convey("And arrives at the target exactly on the Nth turn after entry", func() {
				gs.Step(coord.Up, coord.Stay)
				So(gs.P1Position(), ShouldResemble, coord.Coordinate{X: 1, Y: 0})
				So(gs.P1MudRemaining(), ShouldEqual, 0)
				So(gs.P1Score(), ShouldEqual, 1.0)
			})
		})

		Convey("Cheese at a mud-trapped player's destination is not collected while in transit", func() {
			gs.Step(coord.Right, coord.Stay)
			So(gs.CheeseRemaining(), ShouldHaveLength, 1)
		})
	})
}

func TestUndoExactness(t *testing.T) {
	Convey("Given an arbitrary sequence of legal move pairs", t, func() {
		gs := raceLine5x2(t)
		before := snapshot(gs)

		undo := gs.MakeMove(coord.Right, coord.Left)
		So(snapshot(gs), ShouldNotResemble, before)

		Convey("UnmakeMove restores the state field-by-field", func() {
			err := gs.UnmakeMove(undo)
			So(err, ShouldBeNil)
			So(snapshot(gs), ShouldResemble, before)
		})

		Convey("Unmaking twice is rejected as misuse", func() {
			gs.UnmakeMove(undo)
			err := gs.UnmakeMove(undo)
			So(err, ShouldNotBeNil)
		})
	})
}

// snapshot captures every piece of dynamic state for equality comparison in
// undo-exactness tests (spec §8 property 5).
type stateSnapshot struct {
	p1, p2           coord.Coordinate
	s1, s2           float64
	mud1, mud2       mudState
	turn             int
	cheeseRemaining  []coord.Coordinate
	historyLen       int
}

func snapshot(gs *GameState) stateSnapshot {
	return stateSnapshot{
		p1:              gs.P1Position(),
		p2:              gs.P2Position(),
		s1:              gs.P1Score(),
		s2:              gs.P2Score(),
		mud1:            gs.p1Mud,
		mud2:            gs.p2Mud,
		turn:            gs.Turn(),
		cheeseRemaining: gs.CheeseRemaining(),
		historyLen:      len(gs.History()),
	}
}

func TestCheeseConservation(t *testing.T) {
	Convey("At every point, scores plus remaining cheese equal the initial count", t, func() {
		gs := raceLine5x2(t)
		check := func() {
			total := gs.P1Score() + gs.P2Score() + float64(len(gs.CheeseRemaining()))
			So(total, ShouldEqual, float64(gs.InitialCheeseCount()))
		}
		check()
		gs.Step(coord.Right, coord.Left)
		check()
		gs.Step(coord.Right, coord.Left)
		check()
	})
}

func TestResetEquivalentToRecreate(t *testing.T) {
	Convey("Given a game advanced past turn 0", t, func() {
		gs := raceLine5x2(t)
		gs.Step(coord.Right, coord.Left)

		Convey("Reset produces the same dynamic state as a fresh Create", func() {
			fresh := raceLine5x2(t)
			gs.Reset()
			So(snapshot(gs), ShouldResemble, snapshot(fresh))
		})
	})
}

func TestMajorityTerminationIsStrict(t *testing.T) {
	Convey("Given four cheese where player 1 reaches exactly half", t, func() {
		b := NewBuilder().
			WithMaze(5, 2, nil, nil).
			WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 4, Y: 0}).
			WithCheese([]coord.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}})
		gs := mustBuild(t, b)

		gs.Step(coord.Stay, coord.Stay) // each collects their own start cheese: 1.0 apiece
		So(gs.P1Score(), ShouldEqual, 1.0)
		So(gs.P2Score(), ShouldEqual, 1.0)
		So(gs.GameOver(), ShouldBeFalse)

		gs.Step(coord.Right, coord.Stay) // player 1 reaches exactly half (2.0 of 4)
		So(gs.P1Score(), ShouldEqual, 2.0)
		So(gs.CheeseRemaining(), ShouldHaveLength, 1)

		Convey("Exactly reaching half does not trigger early termination", func() {
			So(gs.GameOver(), ShouldBeFalse)
		})
	})
}
