package maze

import (
	"testing"

	"github.com/pyrat-engine/pyrat/internal/coord"
	. "github.com/smartystreets/goconvey/convey"
)

func baseConfig(seed int64) Config {
	return Config{
		Width:       11,
		Height:      9,
		CheeseCount: 13,
		WallDensity: 0.4,
		MudDensity:  0.2,
		Seed:        seed,
	}
}

func TestGenerateDeterminism(t *testing.T) {
	Convey("Given the same config and seed", t, func() {
		a, err := Generate(baseConfig(42))
		So(err, ShouldBeNil)
		b, err := Generate(baseConfig(42))
		So(err, ShouldBeNil)

		Convey("Two independent generations are bitwise identical", func() {
			So(a.Walls, ShouldResemble, b.Walls)
			So(a.Mud, ShouldResemble, b.Mud)
			So(a.Cheese, ShouldResemble, b.Cheese)
			So(a.P1Start, ShouldResemble, b.P1Start)
			So(a.P2Start, ShouldResemble, b.P2Start)
		})
	})
}

func TestGenerateConnectivity(t *testing.T) {
	Convey("Given several seeds", t, func() {
		for _, seed := range []int64{0, 1, 5, 8, 9, 11, 13, 16, 17, 18} {
			cfg, err := Generate(baseConfig(seed))
			So(err, ShouldBeNil)

			Convey("Every cell is reachable from every other cell", func() {
				So(isConnected(cfg.Width, cfg.Height, cfg.Walls), ShouldBeTrue)
			})
		}
	})
}

func TestGenerateWallMudDisjoint(t *testing.T) {
	Convey("Given the historically-broken seeds from spec.md S4", t, func() {
		for _, seed := range []int64{0, 5, 8, 9, 11, 13, 16, 17, 18} {
			cfg, err := Generate(Config{
				Width:       5,
				Height:      5,
				CheeseCount: 5,
				WallDensity: 0.5,
				MudDensity:  0.3,
				Seed:        seed,
			})
			So(err, ShouldBeNil)

			for e := range cfg.Mud {
				_, isWall := cfg.Walls[e]
				So(isWall, ShouldBeFalse)
			}
		}
	})
}

func TestGenerateSymmetric(t *testing.T) {
	Convey("Given a symmetric config", t, func() {
		cfg := baseConfig(7)
		cfg.Symmetric = true
		gcfg, err := Generate(cfg)
		So(err, ShouldBeNil)

		Convey("Walls are invariant under 180 degree rotation", func() {
			for e := range gcfg.Walls {
				m := mirrorEdge(e, gcfg.Width, gcfg.Height)
				_, ok := gcfg.Walls[m]
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Mud edges and costs are invariant under 180 degree rotation", func() {
			for e, cost := range gcfg.Mud {
				m := mirrorEdge(e, gcfg.Width, gcfg.Height)
				mCost, ok := gcfg.Mud[m]
				So(ok, ShouldBeTrue)
				So(mCost, ShouldEqual, cost)
			}
		})

		Convey("Cheese is invariant under 180 degree rotation", func() {
			for c := range gcfg.Cheese {
				m := mirrorCoord(c, gcfg.Width, gcfg.Height)
				_, ok := gcfg.Cheese[m]
				So(ok, ShouldBeTrue)
			}
		})
	})
}

func TestGenerateRejectsInvalidDimensions(t *testing.T) {
	Convey("Given a too-small board", t, func() {
		_, err := Generate(Config{Width: 1, Height: 5, CheeseCount: 1})
		So(err, ShouldNotBeNil)
	})
}

func TestGenerateRejectsZeroCheese(t *testing.T) {
	Convey("Given a zero cheese count", t, func() {
		_, err := Generate(Config{Width: 5, Height: 5, CheeseCount: 0})
		So(err, ShouldNotBeNil)
	})
}

func TestMirrorEdgeInvolution(t *testing.T) {
	Convey("Mirroring an edge twice returns the original edge", t, func() {
		e := coord.NewEdge(coord.Coordinate{X: 1, Y: 1}, coord.Coordinate{X: 2, Y: 1})
		So(mirrorEdge(mirrorEdge(e, 9, 9), 9, 9), ShouldResemble, e)
	})
}
