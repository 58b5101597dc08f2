package boardview

import (
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConvert(t *testing.T) {
	Convey("Given a fresh game state with one mud edge and two cheese", t, func() {
		mudEdge := coord.NewEdge(coord.Coordinate{X: 1, Y: 0}, coord.Coordinate{X: 1, Y: 1})

		cfg, err := engine.NewBuilder().
			WithMaze(2, 2, nil, map[coord.Edge]int{mudEdge: 3}).
			WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 1, Y: 1}).
			WithCheese([]coord.Coordinate{{X: 0, Y: 1}, {X: 1, Y: 0}}).
			Build()
		So(err, ShouldBeNil)

		gs, err := engine.Create(cfg)
		So(err, ShouldBeNil)

		Convey("Convert copies every field the dashboard renders", func() {
			snap := Convert(gs)

			So(snap.Width, ShouldEqual, 2)
			So(snap.Height, ShouldEqual, 2)
			So(snap.P1Pos, ShouldResemble, coord.Coordinate{X: 0, Y: 0})
			So(snap.P2Pos, ShouldResemble, coord.Coordinate{X: 1, Y: 1})
			So(snap.P1Score, ShouldEqual, 0)
			So(snap.P2Score, ShouldEqual, 0)
			So(snap.Turn, ShouldEqual, 0)
			So(len(snap.Cheese), ShouldEqual, 2)
			So(snap.Mud[mudEdge], ShouldEqual, 3)
		})

		Convey("Convert reflects state after a step, not a stale copy", func() {
			gs.Step(coord.Right, coord.Stay)
			snap := Convert(gs)

			So(snap.Turn, ShouldEqual, 1)
			So(snap.P1Pos, ShouldResemble, coord.Coordinate{X: 1, Y: 0})
		})
	})
}
