package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCommand renders a Command back to its wire line. Only CmdUnknown is
// rejected; every other Kind has a defined rendering.
func FormatCommand(c Command) (string, error) {
	switch c.Kind {
	case CmdPyrat:
		return "pyrat", nil
	case CmdIsReady:
		return "isready", nil
	case CmdSetOption:
		return fmt.Sprintf("setoption name %s value %s", c.OptionName, c.OptionValue), nil
	case CmdDebug:
		if c.DebugOn {
			return "debug on", nil
		}
		return "debug off", nil
	case CmdNewGame:
		return "newgame", nil
	case CmdMaze:
		return fmt.Sprintf("maze height:%d width:%d", c.Height, c.Width), nil
	case CmdWalls:
		parts := make([]string, len(c.Walls))
		for i, e := range c.Walls {
			parts[i] = formatEdgeToken(e)
		}
		return strings.TrimSpace("walls " + strings.Join(parts, " ")), nil
	case CmdMud:
		parts := make([]string, 0, len(c.Mud))
		for e, cost := range c.Mud {
			parts = append(parts, fmt.Sprintf("%s:%d", formatEdgeToken(e), cost))
		}
		return strings.TrimSpace("mud " + strings.Join(parts, " ")), nil
	case CmdCheese:
		parts := make([]string, len(c.Cheese))
		for i, pos := range c.Cheese {
			parts[i] = formatCoordToken(pos)
		}
		return strings.TrimSpace("cheese " + strings.Join(parts, " ")), nil
	case CmdPlayer1:
		return fmt.Sprintf("player1 %s %s", c.PlayerName, formatCoordToken(c.PlayerPos)), nil
	case CmdPlayer2:
		return fmt.Sprintf("player2 %s %s", c.PlayerName, formatCoordToken(c.PlayerPos)), nil
	case CmdYouAre:
		return "youare " + c.YouAre, nil
	case CmdTimeControl:
		var parts []string
		if c.HasMoveMs {
			parts = append(parts, fmt.Sprintf("move:%d", c.MoveMs))
		}
		if c.HasPreprocessingMs {
			parts = append(parts, fmt.Sprintf("preprocessing:%d", c.PreprocessingMs))
		}
		if c.HasPostprocessingMs {
			parts = append(parts, fmt.Sprintf("postprocessing:%d", c.PostprocessingMs))
		}
		return strings.TrimSpace("timecontrol " + strings.Join(parts, " ")), nil
	case CmdStartPreprocessing:
		return "startpreprocessing", nil
	case CmdMoves:
		return fmt.Sprintf("moves rat:%s python:%s", c.RatMove, c.PythonMove), nil
	case CmdGo:
		return "go", nil
	case CmdStop:
		return "stop", nil
	case CmdTimeout:
		if c.TimeoutPhase == "move" {
			return "timeout move:STAY", nil
		}
		return "timeout " + c.TimeoutPhase, nil
	case CmdReadyQuery:
		return "ready?", nil
	case CmdGameOver:
		return fmt.Sprintf("gameover winner:%s score:%s-%s", c.Winner, trimFloat(c.RatScore), trimFloat(c.PythonScore)), nil
	case CmdStartPostprocessing:
		return "startpostprocessing", nil
	case CmdRecover:
		return "recover", nil
	case CmdMovesHistory:
		parts := make([]string, len(c.RecoverHistory))
		for i, mv := range c.RecoverHistory {
			parts[i] = fmt.Sprintf("%d:%s/%s", i, mv.P1, mv.P2)
		}
		return strings.TrimSpace("moves_history " + strings.Join(parts, " ")), nil
	case CmdCurrentPosition:
		return "current_position " + formatCoordToken(c.RecoverPos), nil
	case CmdScore:
		return "score " + trimFloat(c.RecoverScore), nil
	default:
		return "", fmt.Errorf("protocol: cannot format unknown command")
	}
}

// trimFloat renders scores with the minimal exact decimal representation,
// so 1.0 and 2.5 round-trip bit-exactly.
func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
