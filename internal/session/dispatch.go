package session

import (
	"github.com/pyrat-engine/pyrat/internal/engine"
	"github.com/pyrat-engine/pyrat/internal/observation"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// dispatch reacts to one parsed command. isready always gets an immediate
// readyok regardless of phase or worker activity; every other command is
// handled per the current phase.
func (s *Session) dispatch(cmd protocol.Command) {
	if cmd.Kind == protocol.CmdIsReady {
		s.writeResponse(protocol.Response{Kind: protocol.RespReadyOK})
		return
	}
	if cmd.Kind == protocol.CmdReadyQuery {
		s.writeResponse(protocol.Response{Kind: protocol.RespReady})
		return
	}

	if s.worker != nil {
		s.handleBusyCommand(s.worker, cmd)
		if s.worker != nil {
			s.runWhileWorkerBusy()
		}
		return
	}

	switch cmd.Kind {
	case protocol.CmdPyrat:
		s.phase = PhaseHandshake
		s.writeResponse(protocol.Response{Kind: protocol.RespIDName, Name: s.strategy.Name()})
		s.writeResponse(protocol.Response{Kind: protocol.RespIDAuthor, Name: s.strategy.Author()})
		for _, opt := range s.strategy.Options() {
			s.writeResponse(protocol.Response{Kind: protocol.RespOption, Option: opt})
		}
		s.writeResponse(protocol.Response{Kind: protocol.RespPyratReady})
		s.phase = PhaseReady

	case protocol.CmdSetOption, protocol.CmdDebug:
		if cmd.Kind == protocol.CmdDebug {
			s.debug = cmd.DebugOn
		}

	case protocol.CmdNewGame:
		s.phase = PhaseGameInit
		s.init.reset()
		s.replica = nil
		s.sawFirstMoves = false

	case protocol.CmdMaze:
		s.init.haveMaze = true
		s.init.width, s.init.height = cmd.Width, cmd.Height

	case protocol.CmdWalls:
		s.init.haveWalls = true
		s.init.walls = cmd.Walls

	case protocol.CmdMud:
		s.init.haveMud = true
		s.init.mud = cmd.Mud

	case protocol.CmdCheese:
		s.init.haveCheese = true
		s.init.cheese = cmd.Cheese

	case protocol.CmdPlayer1:
		s.init.haveP1 = true
		s.init.p1Pos = cmd.PlayerPos

	case protocol.CmdPlayer2:
		s.init.haveP2 = true
		s.init.p2Pos = cmd.PlayerPos

	case protocol.CmdYouAre:
		s.youAreP1 = cmd.YouAre == "rat"

	case protocol.CmdTimeControl:
		// Budgets inform only the session's own wait timeouts; the runner
		// is the authoritative enforcer (spec §4.5).

	case protocol.CmdStartPreprocessing:
		if s.init.ready() && s.replica == nil {
			if cfg, err := s.init.build(); err == nil {
				if gs, err := engine.Create(cfg); err == nil {
					s.replica = gs
				}
			}
		}
		s.phase = PhasePreprocessing
		s.startPreprocessWorker()
		s.runWhileWorkerBusy()

	case protocol.CmdMoves:
		if s.replica != nil {
			if !s.sawFirstMoves {
				// The very first moves broadcast is the (STAY, STAY)
				// sentinel preceding turn 1, not a resolved move.
				s.sawFirstMoves = true
			} else {
				s.replica.Step(cmd.RatMove, cmd.PythonMove)
			}
		}

	case protocol.CmdGo:
		if s.phase == PhasePlaying && s.replica != nil {
			obs := observation.Convert(s.replica, s.youAreP1)
			s.startMoveWorker(obs)
			s.runWhileWorkerBusy()
		}

	case protocol.CmdStop:
		// No worker active: nothing to interrupt.

	case protocol.CmdTimeout:
		// Informational; the runner follows up with ready? which gets an
		// unconditional RespReady above.

	case protocol.CmdGameOver:
		s.phase = PhaseReady

	case protocol.CmdStartPostprocessing:
		s.phase = PhasePostprocessing
		s.startPostprocessWorker()
		s.runWhileWorkerBusy()

	case protocol.CmdRecover, protocol.CmdMovesHistory, protocol.CmdCurrentPosition, protocol.CmdScore:
		s.handleRecovery(cmd)
	}
}

// handleRecovery folds the pieces of a recovery sequence (spec §9: the
// AI-crash resync path) into the replica once all three follow-up commands
// have arrived, replaying the reported history from the accumulated
// game_init config.
func (s *Session) handleRecovery(cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.CmdMovesHistory:
		s.recoverHistory = cmd.RecoverHistory
		s.haveRecoverHistory = true
	case protocol.CmdCurrentPosition:
		s.recoverPos = cmd.RecoverPos
		s.haveRecoverPos = true
	case protocol.CmdScore:
		s.recoverScore = cmd.RecoverScore
		s.haveRecoverScore = true
	}
	if s.haveRecoverHistory && s.haveRecoverPos && s.haveRecoverScore && s.init.ready() && s.replica == nil {
		if cfg, err := s.init.build(); err == nil {
			if gs, err := engine.Create(cfg); err == nil {
				for _, mv := range s.recoverHistory {
					gs.Step(mv.P1, mv.P2)
				}
				s.replica = gs
			}
		}
	}
}
