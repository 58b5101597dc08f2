// Package protocol implements the line-based, UTF-8, engine-to-AI wire
// protocol (spec §4.4, C5). The codec is purely functional: ParseCommand and
// ParseResponse turn a text line into a tagged value with a data payload;
// FormatCommand and FormatResponse turn a tagged value back into a line.
//
// Dispatch follows the first-token convention used throughout the pack's
// UCI/XBOARD-style engines: split the line into whitespace-separated
// fields, treat the first as the command keyword, and switch on it.
package protocol

import (
	"strconv"
	"strings"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// CommandKind identifies which engine->AI command a Command carries.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdPyrat
	CmdIsReady
	CmdSetOption
	CmdDebug
	CmdNewGame
	CmdMaze
	CmdWalls
	CmdMud
	CmdCheese
	CmdPlayer1
	CmdPlayer2
	CmdYouAre
	CmdTimeControl
	CmdStartPreprocessing
	CmdMoves
	CmdGo
	CmdStop
	CmdTimeout
	CmdReadyQuery
	CmdGameOver
	CmdStartPostprocessing
	CmdRecover
	CmdMovesHistory
	CmdCurrentPosition
	CmdScore
)

// Command is a parsed engine->AI line. Only the fields relevant to Kind are
// populated; the rest hold their zero value.
type Command struct {
	Kind CommandKind

	// setoption
	OptionName, OptionValue string

	// debug
	DebugOn bool

	// maze
	Width, Height int

	// walls / mud
	Walls []coord.Edge
	Mud   map[coord.Edge]int

	// cheese
	Cheese []coord.Coordinate

	// player1 / player2
	PlayerName string
	PlayerPos  coord.Coordinate

	// youare
	YouAre string // "rat" or "python"

	// timecontrol
	MoveMs, PreprocessingMs, PostprocessingMs int
	HasMoveMs, HasPreprocessingMs, HasPostprocessingMs bool

	// moves
	RatMove, PythonMove coord.Direction

	// timeout
	TimeoutPhase string // "move", "preprocessing", "postprocessing"

	// gameover
	Winner               string // "rat", "python", "draw"
	RatScore, PythonScore float64

	// recover / moves_history / current_position / score
	RecoverHistory []engine.MovePair
	RecoverPos     coord.Coordinate
	RecoverScore   float64
}

// ParseCommand parses a single engine->AI line. Unknown commands and lines
// that fail to parse a required field return CmdUnknown with a nil error —
// per spec, a bad parse is never fatal, only a null parse.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdUnknown}, nil
	}
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "pyrat":
		return Command{Kind: CmdPyrat}, nil
	case "isready":
		return Command{Kind: CmdIsReady}, nil
	case "setoption":
		return parseSetOption(args)
	case "debug":
		return parseDebug(args)
	case "newgame":
		return Command{Kind: CmdNewGame}, nil
	case "maze":
		return parseMaze(args)
	case "walls":
		return parseWalls(line)
	case "mud":
		return parseMud(line)
	case "cheese":
		return parseCheese(line)
	case "player1":
		return parsePlayer(CmdPlayer1, args)
	case "player2":
		return parsePlayer(CmdPlayer2, args)
	case "youare":
		return parseYouAre(args)
	case "timecontrol":
		return parseTimeControl(args)
	case "startpreprocessing":
		return Command{Kind: CmdStartPreprocessing}, nil
	case "moves":
		return parseMoves(args)
	case "go":
		return Command{Kind: CmdGo}, nil
	case "stop":
		return Command{Kind: CmdStop}, nil
	case "timeout":
		return parseTimeout(args)
	case "ready?":
		return Command{Kind: CmdReadyQuery}, nil
	case "gameover":
		return parseGameOver(args)
	case "startpostprocessing":
		return Command{Kind: CmdStartPostprocessing}, nil
	case "recover":
		return Command{Kind: CmdRecover}, nil
	case "moves_history":
		return parseMovesHistory(args)
	case "current_position":
		return parseCurrentPosition(args)
	case "score":
		return parseScore(args)
	default:
		return Command{Kind: CmdUnknown}, nil
	}
}

func parseSetOption(args []string) (Command, error) {
	// setoption name <k...> value <v...> — name/value may contain spaces;
	// "value" is the literal separator keyword.
	valueIdx := -1
	for i, a := range args {
		if strings.EqualFold(a, "value") {
			valueIdx = i
			break
		}
	}
	if len(args) < 2 || !strings.EqualFold(args[0], "name") || valueIdx < 0 {
		return Command{Kind: CmdUnknown}, nil
	}
	name := strings.Join(args[1:valueIdx], " ")
	value := strings.Join(args[valueIdx+1:], " ")
	return Command{Kind: CmdSetOption, OptionName: name, OptionValue: value}, nil
}

func parseDebug(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{Kind: CmdUnknown}, nil
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Kind: CmdDebug, DebugOn: true}, nil
	case "off":
		return Command{Kind: CmdDebug, DebugOn: false}, nil
	default:
		return Command{Kind: CmdUnknown}, nil
	}
}

func parseMaze(args []string) (Command, error) {
	var width, height int
	var haveW, haveH bool
	for _, a := range args {
		k, v, ok := splitColon(a)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Command{Kind: CmdUnknown}, nil
		}
		switch k {
		case "width":
			width, haveW = n, true
		case "height":
			height, haveH = n, true
		}
	}
	if !haveW || !haveH {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdMaze, Width: width, Height: height}, nil
}

func parseWalls(line string) (Command, error) {
	edges, err := parseEdgeList(stripKeyword(line))
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdWalls, Walls: edges}, nil
}

func parseMud(line string) (Command, error) {
	mud, err := parseMudList(stripKeyword(line))
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdMud, Mud: mud}, nil
}

func parseCheese(line string) (Command, error) {
	coords, err := parseCoordList(stripKeyword(line))
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdCheese, Cheese: coords}, nil
}

func parsePlayer(kind CommandKind, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{Kind: CmdUnknown}, nil
	}
	pos, err := parseCoordToken(args[1])
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: kind, PlayerName: args[0], PlayerPos: pos}, nil
}

func parseYouAre(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{Kind: CmdUnknown}, nil
	}
	side := strings.ToLower(args[0])
	if side != "rat" && side != "python" {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdYouAre, YouAre: side}, nil
}

func parseTimeControl(args []string) (Command, error) {
	cmd := Command{Kind: CmdTimeControl}
	for _, a := range args {
		k, v, ok := splitColon(a)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Command{Kind: CmdUnknown}, nil
		}
		switch k {
		case "move":
			cmd.MoveMs, cmd.HasMoveMs = n, true
		case "preprocessing":
			cmd.PreprocessingMs, cmd.HasPreprocessingMs = n, true
		case "postprocessing":
			cmd.PostprocessingMs, cmd.HasPostprocessingMs = n, true
		}
	}
	return cmd, nil
}

func parseMoves(args []string) (Command, error) {
	var rat, python coord.Direction
	var haveRat, havePython bool
	for _, a := range args {
		k, v, ok := splitColon(a)
		if !ok {
			continue
		}
		d, ok := coord.ParseDirection(strings.ToUpper(v))
		if !ok {
			return Command{Kind: CmdUnknown}, nil
		}
		switch k {
		case "rat":
			rat, haveRat = d, true
		case "python":
			python, havePython = d, true
		}
	}
	if !haveRat || !havePython {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdMoves, RatMove: rat, PythonMove: python}, nil
}

func parseTimeout(args []string) (Command, error) {
	for _, a := range args {
		k, v, ok := splitColon(a)
		if !ok || k != "move" {
			continue
		}
		if strings.ToUpper(v) != "STAY" {
			return Command{Kind: CmdUnknown}, nil
		}
		return Command{Kind: CmdTimeout, TimeoutPhase: "move"}, nil
	}
	if len(args) == 1 {
		phase := strings.ToLower(args[0])
		if phase == "preprocessing" || phase == "postprocessing" {
			return Command{Kind: CmdTimeout, TimeoutPhase: phase}, nil
		}
	}
	return Command{Kind: CmdUnknown}, nil
}

func parseGameOver(args []string) (Command, error) {
	cmd := Command{Kind: CmdGameOver}
	var haveWinner, haveScore bool
	for _, a := range args {
		k, v, ok := splitColon(a)
		if !ok {
			continue
		}
		switch k {
		case "winner":
			cmd.Winner, haveWinner = v, true
		case "score":
			r, p, ok := parseScorePair(v)
			if !ok {
				return Command{Kind: CmdUnknown}, nil
			}
			cmd.RatScore, cmd.PythonScore, haveScore = r, p, true
		}
	}
	if !haveWinner || !haveScore {
		return Command{Kind: CmdUnknown}, nil
	}
	return cmd, nil
}

func parseMovesHistory(args []string) (Command, error) {
	history := make([]engine.MovePair, 0, len(args))
	for _, a := range args {
		parts := strings.SplitN(a, ":", 2)
		if len(parts) != 2 {
			continue
		}
		dirs := strings.SplitN(parts[1], "/", 2)
		if len(dirs) != 2 {
			return Command{Kind: CmdUnknown}, nil
		}
		d1, ok1 := coord.ParseDirection(strings.ToUpper(dirs[0]))
		d2, ok2 := coord.ParseDirection(strings.ToUpper(dirs[1]))
		if !ok1 || !ok2 {
			return Command{Kind: CmdUnknown}, nil
		}
		history = append(history, engine.MovePair{P1: d1, P2: d2})
	}
	return Command{Kind: CmdMovesHistory, RecoverHistory: history}, nil
}

func parseCurrentPosition(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{Kind: CmdUnknown}, nil
	}
	pos, err := parseCoordToken(args[0])
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdCurrentPosition, RecoverPos: pos}, nil
}

func parseScore(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{Kind: CmdUnknown}, nil
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return Command{Kind: CmdUnknown}, nil
	}
	return Command{Kind: CmdScore, RecoverScore: v}, nil
}

func parseScorePair(tok string) (rat, python float64, ok bool) {
	parts := strings.SplitN(tok, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	r, err1 := strconv.ParseFloat(parts[0], 64)
	p, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return r, p, true
}

// splitColon splits a "key:value" token. ok is false if there is no colon.
func splitColon(tok string) (key, value string, ok bool) {
	i := strings.IndexByte(tok, ':')
	if i < 0 {
		return "", "", false
	}
	return strings.ToLower(tok[:i]), tok[i+1:], true
}

// stripKeyword drops the leading whitespace-separated first token of line,
// returning the remainder (used for list-valued commands whose argument
// tokens may themselves contain further whitespace inside parentheses).
func stripKeyword(line string) string {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i:])
}
