package replay

import (
	"strings"
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func minimalConfig(t *testing.T) *engine.GameConfig {
	t.Helper()
	cfg, err := engine.NewBuilder().
		WithMaze(3, 2, nil, nil).
		WithPlayers(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 2, Y: 0}).
		WithCheese([]coord.Coordinate{{X: 1, Y: 0}}).
		WithMaxTurns(10).
		Build()
	if err != nil {
		t.Fatalf("building config: %v", err)
	}
	return cfg
}

func TestBuildReplaysHistoryFaithfully(t *testing.T) {
	Convey("Given a two-turn history ending with rat collecting the only cheese", t, func() {
		cfg := minimalConfig(t)
		history := []engine.MovePair{
			{P1: coord.Right, P2: coord.Stay},
			{P1: coord.Stay, P2: coord.Stay},
		}

		rep, err := Build(cfg, history)

		Convey("Build recomputes scores and cheese counts turn by turn", func() {
			So(err, ShouldBeNil)
			So(rep.Turns, ShouldHaveLength, 2)
			So(rep.Turns[0].P1Score, ShouldEqual, 1.0)
			So(rep.Turns[0].CheeseRemaining, ShouldEqual, 0)
			So(rep.FinalP1Score, ShouldEqual, 1.0)
			So(rep.FinalP2Score, ShouldEqual, 0.0)
			So(rep.Winner, ShouldEqual, "rat")
		})

		Convey("Text renders one line per turn plus a result line", func() {
			text := rep.Text()
			lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
			So(len(lines), ShouldEqual, 4) // header + 2 turns + result
			So(lines[len(lines)-1], ShouldContainSubstring, "rat wins")
		})
	})
}
