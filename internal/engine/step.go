package engine

import "github.com/pyrat-engine/pyrat/internal/coord"

// MoveUndo is the snapshot taken before a resolved step, returned by
// MakeMove and consumed by UnmakeMove (spec §3, §9: "a linear/affine use
// makes misuse harder but is optional" — this implementation keeps it a
// plain value and detects misuse defensively in UnmakeMove instead).
type MoveUndo struct {
	p1Pos, p2Pos     coord.Coordinate
	p1Score, p2Score float64
	p1Mud, p2Mud     mudState
	turn             int
	collected        []coord.Coordinate

	// appliedAtHistoryLen records the history length immediately after this
	// undo's move was appended, so UnmakeMove can detect out-of-order use.
	appliedAtHistoryLen int
}

// Step resolves one turn given both players' submitted directions, mutating
// GameState in place. It returns whether the game is now over and the list
// of cheese coordinates collected this turn (spec §4.2).
func (gs *GameState) Step(d1, d2 coord.Direction) (gameOver bool, collected []coord.Coordinate) {
	undo := gs.makeMoveInternal(d1, d2)
	return gs.isOver(), undo.collected
}

// MakeMove applies the same effects as Step but also returns a MoveUndo
// that UnmakeMove can later use to restore the exact prior state (spec
// §4.2, §8 property 5).
func (gs *GameState) MakeMove(d1, d2 coord.Direction) *MoveUndo {
	return gs.makeMoveInternal(d1, d2)
}

func (gs *GameState) makeMoveInternal(d1, d2 coord.Direction) *MoveUndo {
	undo := &MoveUndo{
		p1Pos:   gs.p1Pos,
		p2Pos:   gs.p2Pos,
		p1Score: gs.p1Score,
		p2Score: gs.p2Score,
		p1Mud:   gs.p1Mud,
		p2Mud:   gs.p2Mud,
		turn:    gs.turn,
	}

	newP1, p1Mudded := gs.resolvePlayer(gs.p1Pos, &gs.p1Mud, d1)
	newP2, p2Mudded := gs.resolvePlayer(gs.p2Pos, &gs.p2Mud, d2)
	gs.p1Pos = newP1
	gs.p2Pos = newP2

	collected := gs.collectCheese(newP1, !p1Mudded, newP2, !p2Mudded)

	gs.turn++
	gs.history = append(gs.history, MovePair{P1: d1, P2: d2})

	undo.collected = collected
	undo.appliedAtHistoryLen = len(gs.history)
	return undo
}

// resolvePlayer implements the per-player state machine of spec §4.2 steps
// 1-3: mud-trapped players ignore their submitted direction and tick their
// countdown; free players have their candidate cell legality-filtered
// (out-of-bounds or wall => rewritten to STAY) and then either move freely
// or enter mud. It returns the player's new position this turn and whether
// they are mud-trapped (newly or still) after this step — such players are
// excluded from cheese collection this turn.
func (gs *GameState) resolvePlayer(pos coord.Coordinate, mud *mudState, d coord.Direction) (coord.Coordinate, bool) {
	if mud.remaining > 0 {
		mud.remaining--
		if mud.remaining == 0 {
			return mud.target, false
		}
		return pos, true
	}

	if d == coord.Stay {
		return pos, false
	}

	candidate := pos.Neighbor(d)
	if !candidate.InBounds(gs.cfg.Width, gs.cfg.Height) {
		return pos, false
	}

	edge := coord.NewEdge(pos, candidate)
	if _, isWall := gs.cfg.Walls[edge]; isWall {
		return pos, false
	}

	if cost, isMud := gs.cfg.Mud[edge]; isMud {
		mud.remaining = cost - 1
		mud.target = candidate
		return pos, true
	}

	return candidate, false
}

// collectCheese implements spec §4.2 step 5: cheese is collected by any
// free (non-mud-trapped) player standing on it, split 0.5/0.5 on a shared
// cell.
func (gs *GameState) collectCheese(p1 coord.Coordinate, p1Free bool, p2 coord.Coordinate, p2Free bool) []coord.Coordinate {
	var collected []coord.Coordinate

	p1OnCheese := p1Free && gs.hasCheese(p1)
	p2OnCheese := p2Free && gs.hasCheese(p2)

	switch {
	case p1OnCheese && p2OnCheese && p1 == p2:
		gs.p1Score += 0.5
		gs.p2Score += 0.5
		delete(gs.cheeseRemaining, p1)
		collected = append(collected, p1)
	case p1OnCheese && p2OnCheese:
		gs.p1Score += 1.0
		delete(gs.cheeseRemaining, p1)
		collected = append(collected, p1)
		gs.p2Score += 1.0
		delete(gs.cheeseRemaining, p2)
		collected = append(collected, p2)
	case p1OnCheese:
		gs.p1Score += 1.0
		delete(gs.cheeseRemaining, p1)
		collected = append(collected, p1)
	case p2OnCheese:
		gs.p2Score += 1.0
		delete(gs.cheeseRemaining, p2)
		collected = append(collected, p2)
	}

	return collected
}

func (gs *GameState) hasCheese(pos coord.Coordinate) bool {
	_, ok := gs.cheeseRemaining[pos]
	return ok
}

// isOver implements spec §4.2 step 7's three termination conditions.
func (gs *GameState) isOver() bool {
	if len(gs.cheeseRemaining) == 0 {
		return true
	}
	half := float64(gs.initialCheeseCount) / 2.0
	if gs.p1Score > half || gs.p2Score > half {
		return true
	}
	return gs.turn >= gs.cfg.MaxTurns
}

// GameOver reports whether the game has ended under any of spec §4.2's
// three termination conditions.
func (gs *GameState) GameOver() bool { return gs.isOver() }

// UnmakeMove restores the exact state that existed before the MakeMove call
// that produced u (spec §8 property 5). Calling it with anything other than
// the MoveUndo from the most recent MakeMove is a misuse error.
func (gs *GameState) UnmakeMove(u *MoveUndo) error {
	if u == nil || u.appliedAtHistoryLen != len(gs.history) {
		return newError(UnmakeMisuse, "unmake_move called out of order")
	}

	gs.p1Pos = u.p1Pos
	gs.p2Pos = u.p2Pos
	gs.p1Score = u.p1Score
	gs.p2Score = u.p2Score
	gs.p1Mud = u.p1Mud
	gs.p2Mud = u.p2Mud
	gs.turn = u.turn
	for _, c := range u.collected {
		gs.cheeseRemaining[c] = struct{}{}
	}
	gs.history = gs.history[:len(gs.history)-1]
	return nil
}
