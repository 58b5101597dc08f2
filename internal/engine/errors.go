package engine

import "fmt"

// ErrorKind enumerates the synchronous construction-error kinds from spec §7.
type ErrorKind int

const (
	InvalidDimension ErrorKind = iota
	InvalidPosition
	InvalidEdge
	InvalidMudCost
	DuplicateWall
	DuplicateMud
	DuplicateCheese
	EmptyCheese
	BuilderIncomplete
	WallMudOverlap
	UnmakeMisuse
)

var kindNames = map[ErrorKind]string{
	InvalidDimension:  "InvalidDimension",
	InvalidPosition:   "InvalidPosition",
	InvalidEdge:       "InvalidEdge",
	InvalidMudCost:    "InvalidMudCost",
	DuplicateWall:     "DuplicateWall",
	DuplicateMud:      "DuplicateMud",
	DuplicateCheese:   "DuplicateCheese",
	EmptyCheese:       "EmptyCheese",
	BuilderIncomplete: "BuilderIncomplete",
	WallMudOverlap:    "WallMudOverlap",
	UnmakeMisuse:      "UnmakeMisuse",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is the engine's sole synchronous error type; it is returned, never
// panicked, from construction paths (spec §7, §9 "replacing exceptions").
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
