package maze

import (
	"math/rand"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// placeCheese implements spec §4.1 steps 4-5: sample K cheese coordinates
// uniformly without replacement, excluding player starts; when symmetric,
// cheese is placed in mirrored pairs, and the single board-center cell (if
// one exists) holds a cheese exactly when K is odd. No random draw decides
// whether the center is used.
func placeCheese(cfg Config, rng *rand.Rand, p1Start, p2Start coord.Coordinate) ([]coord.Coordinate, error) {
	if !cfg.Symmetric {
		return placeCheeseAsymmetric(cfg, rng, p1Start, p2Start)
	}
	return placeCheeseSymmetric(cfg, rng, p1Start, p2Start)
}

func placeCheeseAsymmetric(cfg Config, rng *rand.Rand, p1Start, p2Start coord.Coordinate) ([]coord.Coordinate, error) {
	excluded := map[coord.Coordinate]struct{}{p1Start: {}, p2Start: {}}
	pool := allCellsExcept(cfg.Width, cfg.Height, excluded)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	if cfg.CheeseCount > len(pool) {
		return nil, &engine.Error{Kind: engine.EmptyCheese, Detail: "requested cheese count exceeds available cells"}
	}
	return pool[:cfg.CheeseCount], nil
}

func placeCheeseSymmetric(cfg Config, rng *rand.Rand, p1Start, p2Start coord.Coordinate) ([]coord.Coordinate, error) {
	width, height := cfg.Width, cfg.Height
	centerExists := width%2 == 1 && height%2 == 1
	center := coord.Coordinate{X: width / 2, Y: height / 2}

	remaining := cfg.CheeseCount
	cheese := map[coord.Coordinate]struct{}{}

	if remaining%2 == 1 {
		if !centerExists {
			return nil, &engine.Error{Kind: engine.EmptyCheese, Detail: "odd cheese count requires a board with a single center cell"}
		}
		// An odd K leaves one cheese unpaired; it goes on the center, the
		// only cell that mirrors onto itself. Every other placement comes
		// in mirrored pairs, so an even K never puts cheese on the center.
		cheese[center] = struct{}{}
		remaining--
	}

	excluded := map[coord.Coordinate]struct{}{p1Start: {}, p2Start: {}, center: {}}
	pairs := mirroredCellPairs(width, height, excluded)
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	need := remaining / 2
	if need > len(pairs) {
		return nil, &engine.Error{Kind: engine.EmptyCheese, Detail: "requested cheese count exceeds available symmetric cell pairs"}
	}
	for i := 0; i < need; i++ {
		a := pairs[i]
		b := mirrorCoord(a, width, height)
		cheese[a] = struct{}{}
		cheese[b] = struct{}{}
	}

	out := make([]coord.Coordinate, 0, len(cheese))
	for c := range cheese {
		out = append(out, c)
	}
	return out, nil
}

func allCellsExcept(width, height int, excluded map[coord.Coordinate]struct{}) []coord.Coordinate {
	out := make([]coord.Coordinate, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			c := coord.Coordinate{X: x, Y: y}
			if _, skip := excluded[c]; skip {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// mirroredCellPairs returns one representative per {cell, mirror(cell)}
// pair, excluding any cell in excluded or whose mirror is in excluded, and
// excluding self-mirrored cells (the center, already handled separately).
func mirroredCellPairs(width, height int, excluded map[coord.Coordinate]struct{}) []coord.Coordinate {
	seen := map[coord.Coordinate]struct{}{}
	var reps []coord.Coordinate
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			c := coord.Coordinate{X: x, Y: y}
			if _, done := seen[c]; done {
				continue
			}
			m := mirrorCoord(c, width, height)
			seen[c] = struct{}{}
			seen[m] = struct{}{}
			if m == c {
				continue
			}
			if _, skip := excluded[c]; skip {
				continue
			}
			if _, skip := excluded[m]; skip {
				continue
			}
			reps = append(reps, c)
		}
	}
	return reps
}
