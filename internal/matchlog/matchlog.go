// Package matchlog sets up the run's append-only log files, following the
// teacher's plain log.Logger usage throughout server/ (server.go logs
// websocket upgrade failures straight to the standard logger; nothing in
// the pack reaches for a structured logging library). A run gets two
// independent logs per AI (protocol transcript and stderr) plus one shared
// event log, five files total when a log directory is configured.
package matchlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Logs bundles every log destination a match.Runner accepts, each one a
// *log.Logger and therefore already satisfying match.EventLogger's single
// Printf method.
type Logs struct {
	Event        *log.Logger
	RatProtocol  *log.Logger
	PyProtocol   *log.Logger
	RatStderr    *log.Logger
	PythonStderr *log.Logger

	files []io.Closer
}

// Close closes every file this Logs opened. Safe to call on a Logs built
// with Discard, where it is a no-op.
func (l *Logs) Close() error {
	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Discard returns a Logs whose loggers write nowhere, for runs with no
// --log-dir configured.
func Discard() *Logs {
	nowhere := log.New(io.Discard, "", 0)
	return &Logs{
		Event:        nowhere,
		RatProtocol:  nowhere,
		PyProtocol:   nowhere,
		RatStderr:    nowhere,
		PythonStderr: nowhere,
	}
}

// Open creates dir if necessary and opens the run's five log files inside
// it: events.log, rat.protocol.log, python.protocol.log, rat.stderr.log,
// python.stderr.log. Each file is truncated if it already exists; a match
// runner owns one run, never appends across runs.
func Open(dir string) (*Logs, error) {
	if dir == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("matchlog: creating %s: %w", dir, err)
	}

	open := func(name string) (*log.Logger, io.Closer, error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, fmt.Errorf("matchlog: opening %s: %w", name, err)
		}
		return log.New(f, "", log.LstdFlags|log.Lmicroseconds), f, nil
	}

	logs := &Logs{}
	specs := []struct {
		name string
		dst  **log.Logger
	}{
		{"events.log", &logs.Event},
		{"rat.protocol.log", &logs.RatProtocol},
		{"python.protocol.log", &logs.PyProtocol},
		{"rat.stderr.log", &logs.RatStderr},
		{"python.stderr.log", &logs.PythonStderr},
	}
	for _, s := range specs {
		logger, closer, err := open(s.name)
		if err != nil {
			logs.Close()
			return nil, err
		}
		*s.dst = logger
		logs.files = append(logs.files, closer)
	}
	return logs, nil
}
