// Package engine implements the authoritative PyRat game state machine:
// move resolution, make/unmake for tree search, and termination detection
// (spec.md §3, §4.2).
package engine

import (
	"sort"

	"github.com/pyrat-engine/pyrat/internal/coord"
)

// mudState tracks one player's mud countdown.
type mudState struct {
	remaining int
	target    coord.Coordinate
}

// GameState is the mutable, authoritative state owned by a single engine
// instance. It is not safe for concurrent use; spec §5 requires the engine
// be single-threaded and unshared.
type GameState struct {
	cfg *GameConfig

	p1Pos, p2Pos     coord.Coordinate
	p1Score, p2Score float64
	cheeseRemaining  map[coord.Coordinate]struct{}
	p1Mud, p2Mud     mudState
	turn             int
	history          []MovePair

	initialCheeseCount int
}

// MovePair is one resolved turn's pair of directions, retained in History
// for replay and protocol recovery.
type MovePair struct {
	P1, P2 coord.Direction
}

// Create builds a fresh GameState from cfg. It takes no seed override: the
// state keeps cfg's Seed as given, and Create does not regenerate the maze
// (that is maze.Generate's job). Create only validates and initializes
// dynamic state.
func Create(cfg *GameConfig) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfgCopy := *cfg
	cfgCopy.Walls = cloneEdgeSet(cfg.Walls)
	cfgCopy.Mud = cloneMudSet(cfg.Mud)
	cfgCopy.Cheese = cloneCoordSet(cfg.Cheese)

	gs := &GameState{
		cfg:                &cfgCopy,
		p1Pos:              cfg.P1Start,
		p2Pos:              cfg.P2Start,
		cheeseRemaining:    cloneCoordSet(cfg.Cheese),
		initialCheeseCount: len(cfg.Cheese),
	}
	return gs, nil
}

func cloneEdgeSet(in map[coord.Edge]struct{}) map[coord.Edge]struct{} {
	out := make(map[coord.Edge]struct{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneMudSet(in map[coord.Edge]int) map[coord.Edge]int {
	out := make(map[coord.Edge]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneCoordSet(in map[coord.Coordinate]struct{}) map[coord.Coordinate]struct{} {
	out := make(map[coord.Coordinate]struct{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Reset rolls the state back to turn 0 in place, re-deriving dynamic state
// from the stored config. Per spec §9, reset must be equivalent to
// re-creating from the same config: it never mutates the static
// walls/mud/cheese template.
func (gs *GameState) Reset() {
	gs.p1Pos = gs.cfg.P1Start
	gs.p2Pos = gs.cfg.P2Start
	gs.p1Score = 0
	gs.p2Score = 0
	gs.cheeseRemaining = cloneCoordSet(gs.cfg.Cheese)
	gs.p1Mud = mudState{}
	gs.p2Mud = mudState{}
	gs.turn = 0
	gs.history = nil
}

// Accessors (spec §4.2 "accessors" row).

func (gs *GameState) Width() int                       { return gs.cfg.Width }
func (gs *GameState) Height() int                      { return gs.cfg.Height }
func (gs *GameState) MaxTurns() int                     { return gs.cfg.MaxTurns }
func (gs *GameState) Turn() int                        { return gs.turn }
func (gs *GameState) P1Position() coord.Coordinate      { return gs.p1Pos }
func (gs *GameState) P2Position() coord.Coordinate      { return gs.p2Pos }
func (gs *GameState) P1Score() float64                  { return gs.p1Score }
func (gs *GameState) P2Score() float64                  { return gs.p2Score }
func (gs *GameState) P1MudRemaining() int               { return gs.p1Mud.remaining }
func (gs *GameState) P2MudRemaining() int               { return gs.p2Mud.remaining }
func (gs *GameState) InitialCheeseCount() int           { return gs.initialCheeseCount }

// Walls returns the set of wall edges. The returned map must not be mutated.
func (gs *GameState) Walls() map[coord.Edge]struct{} { return gs.cfg.Walls }

// Mud returns the edge->cost map. The returned map must not be mutated.
func (gs *GameState) Mud() map[coord.Edge]int { return gs.cfg.Mud }

// CheeseRemaining returns the set of not-yet-collected cheese coordinates,
// sorted for deterministic iteration order (needed for bit-identical replay
// per spec §8 property 1).
func (gs *GameState) CheeseRemaining() []coord.Coordinate {
	out := make([]coord.Coordinate, 0, len(gs.cheeseRemaining))
	for c := range gs.cheeseRemaining {
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

// History returns the append-only list of resolved direction pairs.
func (gs *GameState) History() []MovePair {
	out := make([]MovePair, len(gs.history))
	copy(out, gs.history)
	return out
}

func sortCoords(cs []coord.Coordinate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].X != cs[j].X {
			return cs[i].X < cs[j].X
		}
		return cs[i].Y < cs[j].Y
	})
}
