package match

import (
	"context"
	"time"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// queryTurn implements spec §4.6 step 4a-c: broadcast the previous turn's
// resolved pair, then query both AIs for their next move in parallel — wall
// time per turn is bounded by MoveTimeout regardless of AI count, never the
// sum (spec §5, "must not serialize the two AI queries"). alive is false
// only when a process died (as opposed to merely timing out), matching the
// runner's success/failure contract.
func (r *Runner) queryTurn(ctx context.Context, prevRat, prevPython coord.Direction) (rat, python coord.Direction, alive bool) {
	movesCmd := protocol.Command{Kind: protocol.CmdMoves, RatMove: prevRat, PythonMove: prevPython}
	if err := r.ratLink.send(movesCmd); err != nil {
		return coord.Stay, coord.Stay, false
	}
	if err := r.pythonLink.send(movesCmd); err != nil {
		return coord.Stay, coord.Stay, false
	}

	type slot struct {
		move  coord.Direction
		alive bool
	}
	ratCh := make(chan slot, 1)
	pyCh := make(chan slot, 1)

	query := func(l *aiLink, out chan<- slot) {
		start := time.Now()
		defer func() { r.stats.Observe(l.label == "rat", time.Since(start)) }()

		if err := l.send(protocol.Command{Kind: protocol.CmdGo}); err != nil {
			out <- slot{coord.Stay, false}
			return
		}
		resp, result := l.await(ctx, protocol.RespMove, r.cfg.MoveTimeout, nil)
		switch result {
		case awaitOK:
			out <- slot{resp.Move, true}
		case awaitTimeout:
			r.onMoveTimeout(ctx, l)
			out <- slot{coord.Stay, true}
		default:
			out <- slot{coord.Stay, false}
		}
	}

	go query(r.ratLink, ratCh)
	go query(r.pythonLink, pyCh)

	ratResult := <-ratCh
	pyResult := <-pyCh
	return ratResult.move, pyResult.move, ratResult.alive && pyResult.alive
}

// onMoveTimeout implements spec §5's cancellation semantics: tell the AI
// its move timed out, then probe liveness with ready?. The probe's result
// is only used for logging here; a dead process is caught by queryTurn's
// own alive check on the next send.
func (r *Runner) onMoveTimeout(ctx context.Context, l *aiLink) {
	r.cfg.EventLog.Printf("%s: move timed out", l.label)
	_ = l.send(protocol.Command{Kind: protocol.CmdTimeout, TimeoutPhase: "move"})
	_ = l.send(protocol.Command{Kind: protocol.CmdReadyQuery})
	_, result := l.await(ctx, protocol.RespReady, r.cfg.StopGrace, nil)
	if result != awaitOK {
		r.cfg.EventLog.Printf("%s: no ready reply after timeout", l.label)
	}
}

// finalize implements spec §4.6 step 5.
func (r *Runner) finalize(ctx context.Context) Result {
	p1, p2 := r.state.P1Score(), r.state.P2Score()
	winner := "draw"
	switch {
	case p1 > p2:
		winner = "rat"
	case p2 > p1:
		winner = "python"
	}

	gameOver := protocol.Command{Kind: protocol.CmdGameOver, Winner: winner, RatScore: p1, PythonScore: p2}
	_ = r.ratLink.send(gameOver)
	_ = r.pythonLink.send(gameOver)

	r.postprocess(ctx)

	return Result{
		Success:     true,
		Winner:      winner,
		RatScore:    p1,
		PythonScore: p2,
		Turns:       r.state.Turn(),
		Stats:       r.stats.Snapshot(),
		History:     r.state.History(),
	}
}

func (r *Runner) postprocess(ctx context.Context) {
	done := make(chan struct{}, 2)
	wait := func(l *aiLink) {
		defer func() { done <- struct{}{} }()
		if err := l.send(protocol.Command{Kind: protocol.CmdStartPostprocessing}); err != nil {
			return
		}
		l.await(ctx, protocol.RespPostprocessingDone, r.cfg.PostprocessingTimeout, nil)
	}
	go wait(r.ratLink)
	go wait(r.pythonLink)
	<-done
	<-done
}
