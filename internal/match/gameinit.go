package match

import (
	"context"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// broadcastGameInit sends spec §4.6 step 2's newgame/maze/walls/mud/cheese/
// player1/player2/youare/timecontrol sequence to both AIs, each told which
// side it plays via youare.
func (r *Runner) broadcastGameInit() error {
	cfg := r.cfg.GameConfig

	walls := make([]coord.Edge, 0, len(cfg.Walls))
	for e := range cfg.Walls {
		walls = append(walls, e)
	}
	cheese := make([]coord.Coordinate, 0, len(cfg.Cheese))
	for c := range cfg.Cheese {
		cheese = append(cheese, c)
	}

	timeControl := protocol.Command{
		Kind:                protocol.CmdTimeControl,
		HasMoveMs:           true,
		MoveMs:              int(r.cfg.MoveTimeout.Milliseconds()),
		HasPreprocessingMs:  true,
		PreprocessingMs:     int(r.cfg.PreprocessingTimeout.Milliseconds()),
		HasPostprocessingMs: true,
		PostprocessingMs:    int(r.cfg.PostprocessingTimeout.Milliseconds()),
	}

	sequence := func(l *aiLink, youAre string) error {
		cmds := []protocol.Command{
			{Kind: protocol.CmdNewGame},
			{Kind: protocol.CmdMaze, Width: cfg.Width, Height: cfg.Height},
			{Kind: protocol.CmdWalls, Walls: walls},
			{Kind: protocol.CmdMud, Mud: cfg.Mud},
			{Kind: protocol.CmdCheese, Cheese: cheese},
			{Kind: protocol.CmdPlayer1, PlayerName: "rat", PlayerPos: cfg.P1Start},
			{Kind: protocol.CmdPlayer2, PlayerName: "python", PlayerPos: cfg.P2Start},
			{Kind: protocol.CmdYouAre, YouAre: youAre},
			timeControl,
		}
		for _, c := range cmds {
			if err := l.send(c); err != nil {
				return err
			}
		}
		return nil
	}

	if err := sequence(r.ratLink, "rat"); err != nil {
		return err
	}
	return sequence(r.pythonLink, "python")
}

// preprocess implements spec §4.6 step 3: send startpreprocessing to both,
// wait (in parallel) for preprocessingdone or the preprocessing timeout.
// Regardless of outcome both sessions are considered PLAYING afterward —
// a slow preprocessor simply forfeits the rest of its budget, it does not
// abort the match.
func (r *Runner) preprocess(ctx context.Context) {
	done := make(chan struct{}, 2)
	wait := func(l *aiLink) {
		defer func() { done <- struct{}{} }()
		if err := l.send(protocol.Command{Kind: protocol.CmdStartPreprocessing}); err != nil {
			return
		}
		_, result := l.await(ctx, protocol.RespPreprocessingDone, r.cfg.PreprocessingTimeout, nil)
		if result == awaitTimeout {
			r.cfg.EventLog.Printf("%s: preprocessing timed out", l.label)
		}
	}
	go wait(r.ratLink)
	go wait(r.pythonLink)
	<-done
	<-done
}
