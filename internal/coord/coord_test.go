package coord

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDirectionRoundTrip(t *testing.T) {
	Convey("Given every defined direction", t, func() {
		Convey("Its wire token round-trips through ParseDirection", func() {
			for d := Up; d <= Stay; d++ {
				token := d.String()
				parsed, ok := ParseDirection(token)
				So(ok, ShouldBeTrue)
				So(parsed, ShouldEqual, d)
			}
		})

		Convey("An unknown token fails to parse", func() {
			_, ok := ParseDirection("NORTHEAST")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestDirectionTags(t *testing.T) {
	Convey("The wire-visible integer tags are stable", t, func() {
		So(Up, ShouldEqual, 0)
		So(Right, ShouldEqual, 1)
		So(Down, ShouldEqual, 2)
		So(Left, ShouldEqual, 3)
		So(Stay, ShouldEqual, 4)
	})
}

func TestNeighborAndAdjacency(t *testing.T) {
	Convey("Given a coordinate", t, func() {
		c := Coordinate{X: 2, Y: 2}

		Convey("Neighbor applies the direction's offset", func() {
			So(c.Neighbor(Up), ShouldResemble, Coordinate{X: 2, Y: 3})
			So(c.Neighbor(Right), ShouldResemble, Coordinate{X: 3, Y: 2})
			So(c.Neighbor(Down), ShouldResemble, Coordinate{X: 2, Y: 1})
			So(c.Neighbor(Left), ShouldResemble, Coordinate{X: 1, Y: 2})
			So(c.Neighbor(Stay), ShouldResemble, c)
		})

		Convey("Adjacent neighbors report true", func() {
			So(c.Adjacent(c.Neighbor(Up)), ShouldBeTrue)
		})

		Convey("A diagonal cell is not adjacent", func() {
			So(c.Adjacent(Coordinate{X: 3, Y: 3}), ShouldBeFalse)
		})
	})
}

func TestEdgeCanonicalization(t *testing.T) {
	Convey("Given two adjacent coordinates in either order", t, func() {
		a := Coordinate{X: 1, Y: 1}
		b := Coordinate{X: 1, Y: 2}

		Convey("NewEdge produces the same key regardless of argument order", func() {
			So(NewEdge(a, b), ShouldResemble, NewEdge(b, a))
		})

		Convey("The edge is valid when endpoints are adjacent", func() {
			So(NewEdge(a, b).Valid(), ShouldBeTrue)
		})

		Convey("The edge is invalid when endpoints are not adjacent", func() {
			So(NewEdge(a, Coordinate{X: 5, Y: 5}).Valid(), ShouldBeFalse)
		})
	})
}

func TestInBounds(t *testing.T) {
	Convey("InBounds respects width and height", t, func() {
		So(Coordinate{X: 0, Y: 0}.InBounds(5, 5), ShouldBeTrue)
		So(Coordinate{X: 4, Y: 4}.InBounds(5, 5), ShouldBeTrue)
		So(Coordinate{X: 5, Y: 0}.InBounds(5, 5), ShouldBeFalse)
		So(Coordinate{X: -1, Y: 0}.InBounds(5, 5), ShouldBeFalse)
	})
}
