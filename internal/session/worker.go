package session

import (
	"time"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/observation"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// stopGrace bounds how long the main loop waits for a worker to honor a
// stop signal before discarding its result (spec §4.5: "~100ms").
const stopGrace = 100 * time.Millisecond

type workerKind int

const (
	workerMove workerKind = iota
	workerPreprocess
	workerPostprocess
)

type workerHandle struct {
	kind         workerKind
	stopCh       chan struct{}
	done         chan coord.Direction
	stopSignaled bool
}

// signalStop closes stopCh at most once; stop can arrive twice (a duplicate
// stop while the grace period from the first is still running) and closing
// an already-closed channel panics.
func (w *workerHandle) signalStop() {
	if w.stopSignaled {
		return
	}
	w.stopSignaled = true
	close(w.stopCh)
}

func (s *Session) startMoveWorker(obs observation.Observation) {
	stopCh := make(chan struct{})
	done := make(chan coord.Direction, 1)
	s.worker = &workerHandle{kind: workerMove, stopCh: stopCh, done: done}
	go func() {
		done <- s.strategy.GetMove(obs, stopCh)
	}()
}

func (s *Session) startPreprocessWorker() {
	stopCh := make(chan struct{})
	done := make(chan coord.Direction, 1)
	s.worker = &workerHandle{kind: workerPreprocess, stopCh: stopCh, done: done}
	go func() {
		s.strategy.Preprocess(stopCh)
		done <- coord.Stay
	}()
}

func (s *Session) startPostprocessWorker() {
	stopCh := make(chan struct{})
	done := make(chan coord.Direction, 1)
	s.worker = &workerHandle{kind: workerPostprocess, stopCh: stopCh, done: done}
	go func() {
		s.strategy.Postprocess(stopCh)
		done <- coord.Stay
	}()
}

// handleBusyCommand reacts to one command that arrived while a worker is
// active: isready is answered immediately, stop signals the worker via the
// idempotent signalStop (a duplicate stop must not panic on a closed
// channel), and anything else is queued for re-delivery once the worker
// completes rather than dropped — silently dropping a non-urgent command
// here, especially `moves`, desynchronizes the replica from the
// authoritative state.
func (s *Session) handleBusyCommand(w *workerHandle, cmd protocol.Command) {
	switch cmd.Kind {
	case protocol.CmdIsReady:
		s.writeResponse(protocol.Response{Kind: protocol.RespReadyOK})
	case protocol.CmdStop:
		w.signalStop()
	default:
		s.pending = append(s.pending, cmd)
	}
}

// runWhileWorkerBusy services isready/stop while a worker is active, queuing
// anything else for later, and blocks the main loop until the worker
// finishes (or a stop's grace period elapses).
func (s *Session) runWhileWorkerBusy() {
	w := s.worker
	if w == nil {
		return
	}
	for {
		var timeout <-chan time.Time
		if w.stopSignaled {
			timeout = time.After(stopGrace)
		}
		select {
		case move := <-w.done:
			s.finishWorker(w, move)
			return
		case cmd := <-s.commands:
			s.handleBusyCommand(w, cmd)
			if s.worker == nil {
				return
			}
		case <-timeout:
			s.finishWorker(w, coord.Stay)
			return
		}
	}
}

func (s *Session) finishWorker(w *workerHandle, move coord.Direction) {
	s.worker = nil
	switch w.kind {
	case workerMove:
		s.writeResponse(protocol.Response{Kind: protocol.RespMove, Move: move})
	case workerPreprocess:
		s.writeResponse(protocol.Response{Kind: protocol.RespPreprocessingDone})
		s.phase = PhasePlaying
	case workerPostprocess:
		s.writeResponse(protocol.Response{Kind: protocol.RespPostprocessingDone})
		s.phase = PhaseReady
	}
}

// stopWorkerAndWait is used on session shutdown to release a busy worker
// without emitting a response nobody will read.
func (s *Session) stopWorkerAndWait() {
	if s.worker == nil {
		return
	}
	s.worker.signalStop()
	select {
	case <-s.worker.done:
	case <-time.After(stopGrace):
	}
	s.worker = nil
}
