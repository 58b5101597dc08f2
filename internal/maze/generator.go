package maze

import (
	"math/rand"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/engine"
)

// Generate produces a GameConfig satisfying the contract of spec §4.1: full
// connectivity, wall/mud disjointness, and — if cfg.Symmetric — 180°
// rotational invariance of walls, mud, and cheese. Equal seeds always
// produce bitwise identical output.
func Generate(cfg Config) (*engine.GameConfig, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	p1Start, p2Start := defaultStarts(cfg.Width, cfg.Height)

	allEdges := allInternalEdges(cfg.Width, cfg.Height)
	groups := edgeGroups(allEdges, cfg)

	walls := carveWalls(cfg, rng, groups)
	mud := sampleMud(cfg, rng, groups, walls)

	cheese, err := placeCheese(cfg, rng, p1Start, p2Start)
	if err != nil {
		return nil, err
	}

	wallList := make([]coord.Edge, 0, len(walls))
	for e := range walls {
		wallList = append(wallList, e)
	}

	gcfg, err := engine.NewBuilder().
		WithMaze(cfg.Width, cfg.Height, wallList, mud).
		WithPlayers(p1Start, p2Start).
		WithCheese(cheese).
		WithSeed(cfg.Seed).
		Build()
	if err != nil {
		return nil, err
	}
	return gcfg, nil
}

// allInternalEdges enumerates every edge between orthogonally adjacent
// in-bounds cells.
func allInternalEdges(width, height int) []coord.Edge {
	edges := make([]coord.Edge, 0, 2*width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			here := coord.Coordinate{X: x, Y: y}
			if x+1 < width {
				edges = append(edges, coord.NewEdge(here, coord.Coordinate{X: x + 1, Y: y}))
			}
			if y+1 < height {
				edges = append(edges, coord.NewEdge(here, coord.Coordinate{X: x, Y: y + 1}))
			}
		}
	}
	return edges
}

func mirrorCoord(c coord.Coordinate, width, height int) coord.Coordinate {
	return coord.Coordinate{X: width - 1 - c.X, Y: height - 1 - c.Y}
}

func mirrorEdge(e coord.Edge, width, height int) coord.Edge {
	return coord.NewEdge(mirrorCoord(e.A, width, height), mirrorCoord(e.B, width, height))
}

// edgeGroups partitions edges into the units the generator must toggle
// atomically: a singleton for asymmetric generation, or a {edge, mirror}
// pair (deduplicated, self-mirrored edges collapse to a singleton) when
// cfg.Symmetric is set, so every accepted/rejected wall or mud decision
// preserves 180° invariance.
func edgeGroups(edges []coord.Edge, cfg Config) [][]coord.Edge {
	if !cfg.Symmetric {
		groups := make([][]coord.Edge, len(edges))
		for i, e := range edges {
			groups[i] = []coord.Edge{e}
		}
		return groups
	}

	seen := make(map[coord.Edge]struct{}, len(edges))
	var groups [][]coord.Edge
	for _, e := range edges {
		if _, done := seen[e]; done {
			continue
		}
		m := mirrorEdge(e, cfg.Width, cfg.Height)
		seen[e] = struct{}{}
		if m == e {
			groups = append(groups, []coord.Edge{e})
			continue
		}
		seen[m] = struct{}{}
		groups = append(groups, []coord.Edge{e, m})
	}
	return groups
}

// carveWalls implements spec §4.1 step 2: propose edge groups to wallify in
// random order, accepting a proposal only if the remaining non-wall graph
// stays fully connected, until wall density reaches cfg.WallDensity or no
// more groups remain.
func carveWalls(cfg Config, rng *rand.Rand, groups [][]coord.Edge) map[coord.Edge]struct{} {
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	totalEdges := 0
	for _, g := range groups {
		totalEdges += len(g)
	}
	target := int(cfg.WallDensity * float64(totalEdges))

	walls := map[coord.Edge]struct{}{}
	wallCount := 0
	for _, idx := range order {
		if wallCount >= target {
			break
		}
		group := groups[idx]
		trial := make(map[coord.Edge]struct{}, len(walls)+len(group))
		for e := range walls {
			trial[e] = struct{}{}
		}
		for _, e := range group {
			trial[e] = struct{}{}
		}
		if isConnected(cfg.Width, cfg.Height, trial) {
			walls = trial
			wallCount += len(group)
		}
	}
	return walls
}

// isConnected reports whether every cell of a width x height board is
// reachable from every other cell via edges not in walls (spec §4.1, §8
// property 4), via breadth-first search from the origin cell.
func isConnected(width, height int, walls map[coord.Edge]struct{}) bool {
	total := width * height
	visited := make(map[coord.Coordinate]bool, total)
	queue := []coord.Coordinate{{X: 0, Y: 0}}
	visited[queue[0]] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range []coord.Direction{coord.Up, coord.Right, coord.Down, coord.Left} {
			next := cur.Neighbor(d)
			if !next.InBounds(width, height) || visited[next] {
				continue
			}
			if _, blocked := walls[coord.NewEdge(cur, next)]; blocked {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return len(visited) == total
}

// sampleMud implements spec §4.1 step 3: sample a disjoint subset of the
// surviving (non-wall) edges up to density cfg.MudDensity and assign each a
// cost drawn uniformly from [2, MaxMudCost]. Sampling strictly excludes
// wall edges, which is the fix for the historical wall/mud overlap bug
// (spec §9).
func sampleMud(cfg Config, rng *rand.Rand, groups [][]coord.Edge, walls map[coord.Edge]struct{}) map[coord.Edge]int {
	var candidates [][]coord.Edge
	for _, g := range groups {
		anyWalled := false
		for _, e := range g {
			if _, isWall := walls[e]; isWall {
				anyWalled = true
				break
			}
		}
		if !anyWalled {
			candidates = append(candidates, g)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	nonWallTotal := 0
	for _, g := range candidates {
		nonWallTotal += len(g)
	}
	target := int(cfg.MudDensity * float64(nonWallTotal))

	maxCost := cfg.maxMudCostOrDefault()
	mud := map[coord.Edge]int{}
	count := 0
	for _, g := range candidates {
		if count >= target {
			break
		}
		cost := 2
		if maxCost > 2 {
			cost = 2 + rng.Intn(maxCost-1)
		}
		for _, e := range g {
			mud[e] = cost
		}
		count += len(g)
	}
	return mud
}
