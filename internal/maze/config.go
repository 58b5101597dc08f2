// Package maze implements the seeded maze generator (spec.md §4.1, C2):
// wall carving with connectivity preservation, mud sampling strictly from
// surviving non-wall edges (the historical wall/mud-overlap bug spec.md §9
// requires fixed), cheese placement, and optional 180° rotational symmetry.
package maze

import (
	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// Config is the generator's input (spec §4.1 "Contract").
type Config struct {
	Width, Height int
	CheeseCount   int
	WallDensity   float64 // dw in [0,1]
	MudDensity    float64 // dm in [0,1]
	Symmetric     bool
	Seed          int64

	// MaxMudCost bounds the generator's own sampling range [2, MaxMudCost].
	// Defaults to 3 if zero. Must not exceed engine.MaxMudCost.
	MaxMudCost int
}

func (c *Config) maxMudCostOrDefault() int {
	if c.MaxMudCost == 0 {
		return 3
	}
	return c.MaxMudCost
}

func (c *Config) validate() error {
	if c.Width < 2 || c.Height < 2 {
		return &engine.Error{Kind: engine.InvalidDimension, Detail: "width/height must each be >= 2"}
	}
	if c.CheeseCount <= 0 {
		return &engine.Error{Kind: engine.EmptyCheese, Detail: "cheese count K must be >= 1"}
	}
	if c.WallDensity < 0 || c.WallDensity > 1 || c.MudDensity < 0 || c.MudDensity > 1 {
		return &engine.Error{Kind: engine.InvalidDimension, Detail: "density knobs must lie in [0,1]"}
	}
	if c.maxMudCostOrDefault() > engine.MaxMudCost {
		return &engine.Error{Kind: engine.InvalidMudCost, Detail: "generator MaxMudCost exceeds engine-wide cap"}
	}
	return nil
}

// defaultStarts returns the standard opposite-corner starting positions
// (spec §1: "start on opposite corners").
func defaultStarts(width, height int) (coord.Coordinate, coord.Coordinate) {
	return coord.Coordinate{X: 0, Y: 0}, coord.Coordinate{X: width - 1, Y: height - 1}
}
