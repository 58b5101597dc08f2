package match

import (
	"context"
	"fmt"
	"time"

	"github.com/pyrat-engine/pyrat/internal/protocol"
)

// aiLink is the runner's speaking side of one AI's connection: it sends
// Commands and waits for a Response of a particular Kind, tolerating and
// discarding any other recognized response (e.g. "info" lines) that arrives
// first — the same tolerance the illustrative session in the protocol
// section shows ("info" lines may precede "move").
type aiLink struct {
	proc     *aiProcess
	label    string // "rat" or "python"
	protoLog EventLogger
}

func newAILink(proc *aiProcess, label string, protoLog EventLogger) *aiLink {
	if protoLog == nil {
		protoLog = noopLogger{}
	}
	return &aiLink{proc: proc, label: label, protoLog: protoLog}
}

func (l *aiLink) send(c protocol.Command) error {
	line, err := protocol.FormatCommand(c)
	if err != nil {
		return fmt.Errorf("match: %s: %w", l.label, err)
	}
	l.protoLog.Printf("-> %s", line)
	if err := l.proc.send(line); err != nil {
		return fmt.Errorf("match: %s: write failed: %w", l.label, err)
	}
	return nil
}

// outcome of awaiting a response.
type awaitResult int

const (
	awaitOK awaitResult = iota
	awaitTimeout
	awaitCrashed
)

// await blocks until a response of kind want arrives, the process's stdout
// closes (crash), or timeout elapses. Any other well-formed response is
// discarded and passed to onOther if non-nil, so callers can observe
// incidental "info" lines without special-casing them.
func (l *aiLink) await(
	ctx context.Context,
	want protocol.ResponseKind,
	timeout time.Duration,
	onOther func(protocol.Response),
) (protocol.Response, awaitResult) {
	deadline := time.After(timeout)
	for {
		select {
		case <-ctx.Done():
			return protocol.Response{}, awaitCrashed
		case line, ok := <-l.proc.lines:
			if !ok {
				return protocol.Response{}, awaitCrashed
			}
			l.protoLog.Printf("<- %s", line)
			resp, err := protocol.ParseResponse(line)
			if err != nil || resp.Kind == protocol.RespUnknown {
				continue
			}
			if resp.Kind == want {
				return resp, awaitOK
			}
			if onOther != nil {
				onOther(resp)
			}
		case <-deadline:
			return protocol.Response{}, awaitTimeout
		}
	}
}
