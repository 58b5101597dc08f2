package protocol

import (
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCommandBasics(t *testing.T) {
	Convey("Given simple no-argument commands", t, func() {
		for line, kind := range map[string]CommandKind{
			"pyrat":               CmdPyrat,
			"isready":             CmdIsReady,
			"newgame":             CmdNewGame,
			"startpreprocessing":  CmdStartPreprocessing,
			"go":                  CmdGo,
			"stop":                CmdStop,
			"ready?":              CmdReadyQuery,
			"startpostprocessing": CmdStartPostprocessing,
			"recover":             CmdRecover,
		} {
			cmd, err := ParseCommand(line)
			So(err, ShouldBeNil)
			So(cmd.Kind, ShouldEqual, kind)
		}
	})

	Convey("Unknown commands parse to CmdUnknown without error", t, func() {
		cmd, err := ParseCommand("wizzle bang")
		So(err, ShouldBeNil)
		So(cmd.Kind, ShouldEqual, CmdUnknown)
	})

	Convey("An empty line parses to CmdUnknown", t, func() {
		cmd, err := ParseCommand("")
		So(err, ShouldBeNil)
		So(cmd.Kind, ShouldEqual, CmdUnknown)
	})
}

func TestSetOptionSpacesInNameAndValue(t *testing.T) {
	Convey("Given a setoption command with multi-word name and value", t, func() {
		cmd, err := ParseCommand("setoption name search depth value 12 plies")
		So(err, ShouldBeNil)
		So(cmd.Kind, ShouldEqual, CmdSetOption)
		So(cmd.OptionName, ShouldEqual, "search depth")
		So(cmd.OptionValue, ShouldEqual, "12 plies")
	})
}

func TestMazeRoundTrip(t *testing.T) {
	Convey("Given a maze command", t, func() {
		cmd := Command{Kind: CmdMaze, Width: 11, Height: 9}
		line, err := FormatCommand(cmd)
		So(err, ShouldBeNil)

		parsed, err := ParseCommand(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, cmd)
	})
}

func TestWallsMudCheeseRoundTrip(t *testing.T) {
	Convey("Given walls, mud, and cheese commands", t, func() {
		walls := Command{Kind: CmdWalls, Walls: []coord.Edge{
			coord.NewEdge(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 1, Y: 0}),
			coord.NewEdge(coord.Coordinate{X: 2, Y: 1}, coord.Coordinate{X: 2, Y: 2}),
		}}
		mud := Command{Kind: CmdMud, Mud: map[coord.Edge]int{
			coord.NewEdge(coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: 0, Y: 1}): 4,
		}}
		cheese := Command{Kind: CmdCheese, Cheese: []coord.Coordinate{{X: 1, Y: 1}, {X: 3, Y: 3}}}

		for _, cmd := range []Command{walls, mud, cheese} {
			line, err := FormatCommand(cmd)
			So(err, ShouldBeNil)
			parsed, err := ParseCommand(line)
			So(err, ShouldBeNil)
			So(parsed, ShouldResemble, cmd)
		}
	})
}

func TestMovesRoundTrip(t *testing.T) {
	Convey("Given a moves command", t, func() {
		cmd := Command{Kind: CmdMoves, RatMove: coord.Up, PythonMove: coord.Stay}
		line, err := FormatCommand(cmd)
		So(err, ShouldBeNil)
		So(line, ShouldEqual, "moves rat:UP python:STAY")

		parsed, err := ParseCommand(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, cmd)
	})
}

func TestTimeoutMoveAndPhaseForms(t *testing.T) {
	Convey("Given the move-timeout form", t, func() {
		cmd, err := ParseCommand("timeout move:STAY")
		So(err, ShouldBeNil)
		So(cmd.Kind, ShouldEqual, CmdTimeout)
		So(cmd.TimeoutPhase, ShouldEqual, "move")
	})

	Convey("Given the preprocessing-timeout form", t, func() {
		cmd, err := ParseCommand("timeout preprocessing")
		So(err, ShouldBeNil)
		So(cmd.Kind, ShouldEqual, CmdTimeout)
		So(cmd.TimeoutPhase, ShouldEqual, "preprocessing")
	})
}

func TestGameOverRoundTrip(t *testing.T) {
	Convey("Given a gameover command with a fractional score", t, func() {
		cmd := Command{Kind: CmdGameOver, Winner: "draw", RatScore: 1.5, PythonScore: 1.5}
		line, err := FormatCommand(cmd)
		So(err, ShouldBeNil)
		So(line, ShouldEqual, "gameover winner:draw score:1.5-1.5")

		parsed, err := ParseCommand(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, cmd)
	})
}

func TestMovesHistoryRoundTrip(t *testing.T) {
	Convey("Given a recovery moves_history command", t, func() {
		cmd := Command{Kind: CmdMovesHistory, RecoverHistory: []engine.MovePair{
			{P1: coord.Up, P2: coord.Down},
			{P1: coord.Stay, P2: coord.Right},
		}}
		line, err := FormatCommand(cmd)
		So(err, ShouldBeNil)
		So(line, ShouldEqual, "moves_history 0:UP/DOWN 1:STAY/RIGHT")

		parsed, err := ParseCommand(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, cmd)
	})
}

func TestParseResponseBasics(t *testing.T) {
	Convey("Given simple AI responses", t, func() {
		resp, err := ParseResponse("pyratready")
		So(err, ShouldBeNil)
		So(resp.Kind, ShouldEqual, RespPyratReady)

		resp, err = ParseResponse("id name GreedyBot v2.0")
		So(err, ShouldBeNil)
		So(resp.Kind, ShouldEqual, RespIDName)
		So(resp.Name, ShouldEqual, "GreedyBot v2.0")
	})
}

func TestMoveResponseAcceptsTokenOrInteger(t *testing.T) {
	Convey("Given a move response as a direction token", t, func() {
		resp, err := ParseResponse("move UP")
		So(err, ShouldBeNil)
		So(resp.Move, ShouldEqual, coord.Up)
	})

	Convey("Given a move response as an integer tag", t, func() {
		resp, err := ParseResponse("move 2")
		So(err, ShouldBeNil)
		So(resp.Move, ShouldEqual, coord.Down)

		Convey("Formatting always emits the token form", func() {
			line, err := FormatResponse(resp)
			So(err, ShouldBeNil)
			So(line, ShouldEqual, "move DOWN")
		})
	})
}

func TestInfoKeyOrderPreservedStringLast(t *testing.T) {
	Convey("Given an info response with fields and a string payload", t, func() {
		resp := Response{Kind: RespInfo, InfoFields: []InfoField{
			{Key: "depth", Value: "4"},
			{Key: "nodes", Value: "1200"},
		}, InfoString: "considering center rush", HasString: true}

		line, err := FormatResponse(resp)
		So(err, ShouldBeNil)
		So(line, ShouldEqual, "info depth 4 nodes 1200 string considering center rush")

		parsed, err := ParseResponse(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, resp)
	})
}

func TestOptionRoundTrip(t *testing.T) {
	Convey("Given a fully-specified option response", t, func() {
		resp := Response{Kind: RespOption, Option: OptionSpec{
			Name: "Depth", Type: "spin", Default: "4", Min: "1", Max: "10",
		}}
		line, err := FormatResponse(resp)
		So(err, ShouldBeNil)

		parsed, err := ParseResponse(line)
		So(err, ShouldBeNil)
		So(parsed, ShouldResemble, resp)
	})
}
