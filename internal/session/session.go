// Package session implements the AI-side state machine (spec §4.5, C6): it
// wraps a strategy implementation, maintains a local replica of the
// authoritative game state, and runs the reader/worker/main-loop
// concurrency model used by conforming AI binaries.
//
// The concurrency shape follows the teacher's alpha-MC worker pool in
// reinforcement/learning.go: a done-channel the worker polls cooperatively,
// and channel-based handoff between producer and consumer goroutines,
// rather than shared-memory locking.
package session

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
	"github.com/pyrat-engine/pyrat/internal/observation"
	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// Phase is one state of the AI session state machine.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseHandshake
	PhaseReady
	PhaseGameInit
	PhasePreprocessing
	PhasePlaying
	PhasePostprocessing
	PhaseTerminal
)

// Strategy is the callback surface a conforming AI implements. GetMove,
// Preprocess and Postprocess run on the session's computation worker and
// must poll stop cooperatively; Options may return nil.
type Strategy interface {
	Name() string
	Author() string
	Options() []protocol.OptionSpec
	Preprocess(stop <-chan struct{})
	Postprocess(stop <-chan struct{})
	GetMove(obs observation.Observation, stop <-chan struct{}) coord.Direction
}

// Session drives one AI process's side of the protocol against a Strategy.
type Session struct {
	strategy Strategy
	reader   *bufio.Scanner
	writer   io.Writer
	writeMu  sync.Mutex

	phase    Phase
	youAreP1 bool
	debug    bool

	commands chan protocol.Command
	pending  []protocol.Command // re-queued commands, processed before commands

	init          gameInitAccumulator
	replica       *engine.GameState
	sawFirstMoves bool

	recoverHistory     []engine.MovePair
	haveRecoverHistory bool
	recoverPos         coord.Coordinate
	haveRecoverPos     bool
	recoverScore       float64
	haveRecoverScore   bool

	worker *workerHandle
}

// New constructs a Session reading commands from r and writing responses to w.
func New(strategy Strategy, r io.Reader, w io.Writer) *Session {
	return &Session{
		strategy: strategy,
		reader:   bufio.NewScanner(r),
		writer:   w,
		phase:    PhaseInitial,
	}
}

// Run drives the session's reader and main loop until ctx is cancelled or
// the input stream ends. It blocks until termination.
func (s *Session) Run(ctx context.Context) error {
	s.commands = make(chan protocol.Command)
	readerDone := make(chan error, 1)
	go s.runReader(readerDone)

	for {
		select {
		case <-ctx.Done():
			s.stopWorkerAndWait()
			return ctx.Err()
		default:
		}

		cmd, ok := s.nextCommand(ctx, readerDone)
		if !ok {
			s.stopWorkerAndWait()
			return nil
		}
		s.dispatch(cmd)
	}
}

// runReader continuously scans lines from the input, parses them, and
// enqueues recognized commands. It never blocks on computation: it only
// blocks on I/O and on sending to the unbuffered commands channel, which
// backpressures it at the main loop's pace.
func (s *Session) runReader(done chan<- error) {
	defer close(done)
	for s.reader.Scan() {
		cmd, err := protocol.ParseCommand(s.reader.Text())
		if err != nil || cmd.Kind == protocol.CmdUnknown {
			continue
		}
		s.commands <- cmd
	}
	done <- s.reader.Err()
}

// nextCommand pops the next command to dispatch: a previously re-queued
// command takes priority over a freshly read one, preserving FIFO order.
func (s *Session) nextCommand(ctx context.Context, readerDone <-chan error) (protocol.Command, bool) {
	if len(s.pending) > 0 {
		c := s.pending[0]
		s.pending = s.pending[1:]
		return c, true
	}
	select {
	case <-ctx.Done():
		return protocol.Command{}, false
	case c, ok := <-s.commands:
		return c, ok
	case <-readerDone:
		// Drain anything already queued before reporting EOF.
		select {
		case c, ok := <-s.commands:
			return c, ok
		default:
			return protocol.Command{}, false
		}
	}
}

func (s *Session) write(line string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	io.WriteString(s.writer, line+"\n")
}

func (s *Session) writeResponse(r protocol.Response) {
	line, err := protocol.FormatResponse(r)
	if err != nil {
		return
	}
	s.write(line)
}
