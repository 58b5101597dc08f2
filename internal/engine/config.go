package engine

import "github.com/pyrat-engine/pyrat/internal/coord"

// MaxMudCost is the single engine-wide ceiling on a mud edge's cost. The
// historical source expressed this cap inconsistently across construction
// paths and the random generator (spec.md §9, Open Questions); this
// implementation unifies it at one constant used by every validation path.
const MaxMudCost = 255

// MaxCoordinate bounds a single coordinate component, matching the
// wire-protocol position cap.
const MaxCoordinate = 255

// GameConfig is a construction-only, reusable template (spec §3). It is
// produced once — by the maze generator or by Builder — and may be used to
// create many independent GameState instances via Create.
type GameConfig struct {
	Width, Height int
	Walls         map[coord.Edge]struct{}
	Mud           map[coord.Edge]int
	Cheese        map[coord.Coordinate]struct{}
	P1Start       coord.Coordinate
	P2Start       coord.Coordinate
	MaxTurns      int
	Seed          int64
	HasSeed       bool
}

// Validate checks every invariant from spec §3/§9 that the engine itself
// relies on but does not re-derive: dimension bounds, position bounds, edge
// adjacency, mud-cost bounds, wall/mud disjointness, and non-empty cheese.
// It does NOT check full-board connectivity; that is the generator's
// responsibility (spec §4.1), not something the engine re-verifies on every
// construction.
func (c *GameConfig) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return newError(InvalidDimension, "width=%d height=%d (minimum 2x2)", c.Width, c.Height)
	}
	if c.MaxTurns < 1 {
		return newError(InvalidDimension, "max_turns=%d (minimum 1)", c.MaxTurns)
	}
	if !c.inBounds(c.P1Start) {
		return newError(InvalidPosition, "player1 start %s out of bounds", c.P1Start)
	}
	if !c.inBounds(c.P2Start) {
		return newError(InvalidPosition, "player2 start %s out of bounds", c.P2Start)
	}

	for e := range c.Walls {
		if err := c.validateEdge(e); err != nil {
			return err
		}
	}
	for e, cost := range c.Mud {
		if err := c.validateEdge(e); err != nil {
			return err
		}
		if cost < 2 || cost > MaxMudCost {
			return newError(InvalidMudCost, "edge %s cost=%d (must be 2..%d)", e, cost, MaxMudCost)
		}
		if _, isWall := c.Walls[e]; isWall {
			return newError(WallMudOverlap, "edge %s is both a wall and mud", e)
		}
	}
	for cell := range c.Cheese {
		if !c.inBounds(cell) {
			return newError(InvalidPosition, "cheese %s out of bounds", cell)
		}
	}
	if len(c.Cheese) == 0 {
		return newError(EmptyCheese, "at least one cheese is required")
	}
	return nil
}

func (c *GameConfig) inBounds(pos coord.Coordinate) bool {
	if pos.X < 0 || pos.X > MaxCoordinate || pos.Y < 0 || pos.Y > MaxCoordinate {
		return false
	}
	return pos.InBounds(c.Width, c.Height)
}

func (c *GameConfig) validateEdge(e coord.Edge) error {
	if !c.inBounds(e.A) || !c.inBounds(e.B) {
		return newError(InvalidPosition, "edge %s endpoint out of bounds", e)
	}
	if !e.Valid() {
		return newError(InvalidEdge, "edge %s endpoints are not adjacent", e)
	}
	return nil
}

// Builder assembles a GameConfig field by field, matching the historical
// source's builder pattern (spec §9 "maze/player/cheese 'strategies' in the
// builder become tagged variants"). Unlike the dynamic original, each
// With* method here just sets typed fields; Build() validates completeness.
type Builder struct {
	cfg          GameConfig
	haveMaze     bool
	havePlayers  bool
	haveCheese   bool
}

// NewBuilder returns an empty Builder with default MaxTurns (300, per spec
// §3) and empty wall/mud sets.
func NewBuilder() *Builder {
	return &Builder{
		cfg: GameConfig{
			Walls:    map[coord.Edge]struct{}{},
			Mud:      map[coord.Edge]int{},
			Cheese:   map[coord.Coordinate]struct{}{},
			MaxTurns: 300,
		},
	}
}

// WithMaze sets the board dimensions, walls, and mud edges.
func (b *Builder) WithMaze(width, height int, walls []coord.Edge, mud map[coord.Edge]int) *Builder {
	b.cfg.Width = width
	b.cfg.Height = height
	b.cfg.Walls = make(map[coord.Edge]struct{}, len(walls))
	for _, e := range walls {
		b.cfg.Walls[e] = struct{}{}
	}
	b.cfg.Mud = make(map[coord.Edge]int, len(mud))
	for e, cost := range mud {
		b.cfg.Mud[e] = cost
	}
	b.haveMaze = true
	return b
}

// WithPlayers sets both players' starting coordinates. The two starts may be
// equal (spec §3 permits this).
func (b *Builder) WithPlayers(p1Start, p2Start coord.Coordinate) *Builder {
	b.cfg.P1Start = p1Start
	b.cfg.P2Start = p2Start
	b.havePlayers = true
	return b
}

// WithCheese sets the initial cheese placement.
func (b *Builder) WithCheese(cheese []coord.Coordinate) *Builder {
	b.cfg.Cheese = make(map[coord.Coordinate]struct{}, len(cheese))
	for _, c := range cheese {
		b.cfg.Cheese[c] = struct{}{}
	}
	b.haveCheese = true
	return b
}

// WithMaxTurns overrides the default max-turns cutoff.
func (b *Builder) WithMaxTurns(maxTurns int) *Builder {
	b.cfg.MaxTurns = maxTurns
	return b
}

// WithSeed records the deterministic-RNG seed that produced this config.
// Reset does not read it: a reset restores the stored walls, mud and cheese
// directly, so the board after a reset is the same board.
func (b *Builder) WithSeed(seed int64) *Builder {
	b.cfg.Seed = seed
	b.cfg.HasSeed = true
	return b
}

// Build validates completeness (BuilderIncomplete) and the invariants
// checked by GameConfig.Validate, returning the assembled config.
func (b *Builder) Build() (*GameConfig, error) {
	if !b.haveMaze {
		return nil, newError(BuilderIncomplete, "WithMaze was never called")
	}
	if !b.havePlayers {
		return nil, newError(BuilderIncomplete, "WithPlayers was never called")
	}
	if !b.haveCheese {
		return nil, newError(BuilderIncomplete, "WithCheese was never called")
	}
	cfg := b.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
