package boardview

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/pyrat-engine/pyrat/internal/coord"
	"github.com/pyrat-engine/pyrat/internal/dashboard/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

const cellDim = 60

// BoardGrid renders the maze (walls, mud) once as static svg, then pushes
// per-turn ele-updates for the parts that actually change: which cheese
// cells are still uncollected, where the two players sit, and the running
// scores/turn counter.
type BoardGrid struct {
	id      string
	updates <-chan []fastview.EleUpdate

	initOnce      sync.Once
	initialCheese []coord.Coordinate
}

// NewBoardGrid builds a board view driven by snapshots.
func NewBoardGrid(id string, done <-chan struct{}, snapshots <-chan Snapshot) *BoardGrid {
	if strings.Contains(id, "-") {
		fmt.Println("WARNING: ids with hyphens interfere with html/template's `template` directive")
	}
	bg := &BoardGrid{id: template.HTMLEscapeString(id)}
	bg.updates = channerics.Convert(done, snapshots, bg.onUpdate)
	return bg
}

func (bg *BoardGrid) Updates() <-chan []fastview.EleUpdate {
	return bg.updates
}

func (bg *BoardGrid) onUpdate(snap Snapshot) (ops []fastview.EleUpdate) {
	bg.initOnce.Do(func() {
		bg.initialCheese = append([]coord.Coordinate(nil), snap.Cheese...)
	})

	remaining := make(map[coord.Coordinate]struct{}, len(snap.Cheese))
	for _, c := range snap.Cheese {
		remaining[c] = struct{}{}
	}
	for _, c := range bg.initialCheese {
		opacity := "0"
		if _, ok := remaining[c]; ok {
			opacity = "1"
		}
		ops = append(ops, fastview.EleUpdate{
			EleId: cheeseID(c),
			Ops:   []fastview.Op{{Key: "opacity", Value: opacity}},
		})
	}

	ops = append(ops,
		playerMoveOps("player1", snap.P1Pos, snap.Height)...,
	)
	ops = append(ops,
		playerMoveOps("player2", snap.P2Pos, snap.Height)...,
	)

	ops = append(ops, fastview.EleUpdate{
		EleId: bg.id + "-score",
		Ops: []fastview.Op{
			{Key: "textContent", Value: fmt.Sprintf("rat %.1f — python %.1f (turn %d/%d)",
				snap.P1Score, snap.P2Score, snap.Turn, snap.MaxTurns)},
		},
	})
	return
}

func playerMoveOps(eleID string, pos coord.Coordinate, height int) []fastview.EleUpdate {
	cx, cy := cellCenter(pos, height)
	return []fastview.EleUpdate{{
		EleId: eleID,
		Ops: []fastview.Op{
			{Key: "cx", Value: fmt.Sprintf("%d", cx)},
			{Key: "cy", Value: fmt.Sprintf("%d", cy)},
		},
	}}
}

func cheeseID(c coord.Coordinate) string {
	return fmt.Sprintf("cheese-%d-%d", c.X, c.Y)
}

// cellCenter converts a board coordinate (origin bottom-left, y up) to the
// svg pixel center of its cell (origin top-left, y down).
func cellCenter(c coord.Coordinate, height int) (x, y int) {
	return c.X*cellDim + cellDim/2, (height-1-c.Y)*cellDim + cellDim/2
}

// Parse renders the static board: one rect per cell, a line per wall edge,
// a thick dashed line per mud edge, a circle per initial cheese
// cell, and one token per player. Everything here is laid out from the
// first snapshot the caller renders the page with; subsequent frames only
// move/toggle these same elements via Updates.
func (bg *BoardGrid) Parse(parent *template.Template) (name string, err error) {
	name = bg.id
	funcs := template.FuncMap{
		"mult":  func(a, b int) int { return a * b },
		"add":   func(a, b int) int { return a + b },
		"half":  func(a int) int { return a / 2 },
		"flipY": func(y, height int) int { return height - 1 - y },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
		"cellCenter": func(c coord.Coordinate, height int) []int {
			x, y := cellCenter(c, height)
			return []int{x, y}
		},
		"cheeseIDFn": cheeseID,
	}
	_, err = parent.Funcs(funcs).Parse(`
{{ define "` + name + `" }}
<div id="` + name + `-container">
	<svg id="` + name + `" xmlns="http://www.w3.org/2000/svg"
		width="{{ mult .Width ` + fmt.Sprintf("%d", cellDim) + ` }}px"
		height="{{ mult .Height ` + fmt.Sprintf("%d", cellDim) + ` }}px"
		style="shape-rendering: crispEdges; background: #f7f3e8;">
		{{ $height := .Height }}
		{{ range $x := seq .Width }}
			{{ range $y := seq $height }}
				<rect x="{{ mult $x ` + fmt.Sprintf("%d", cellDim) + ` }}" y="{{ mult (flipY $y $height) ` + fmt.Sprintf("%d", cellDim) + ` }}"
					width="` + fmt.Sprintf("%d", cellDim) + `" height="` + fmt.Sprintf("%d", cellDim) + `"
					fill="none" stroke="#ccc" stroke-width="1"/>
			{{ end }}
		{{ end }}
		{{ range .Walls }}
			<line x1="{{ index (cellCenter .A $height) 0 }}" y1="{{ index (cellCenter .A $height) 1 }}"
				x2="{{ index (cellCenter .B $height) 0 }}" y2="{{ index (cellCenter .B $height) 1 }}"
				stroke="black" stroke-width="6"/>
		{{ end }}
		{{ range $edge, $cost := .Mud }}
			<line x1="{{ index (cellCenter $edge.A $height) 0 }}" y1="{{ index (cellCenter $edge.A $height) 1 }}"
				x2="{{ index (cellCenter $edge.B $height) 0 }}" y2="{{ index (cellCenter $edge.B $height) 1 }}"
				stroke="#8b5a2b" stroke-width="10" stroke-opacity="0.4" stroke-dasharray="4,3"/>
		{{ end }}
		{{ range .Cheese }}
			<circle id="{{ cheeseIDFn . }}" cx="{{ index (cellCenter . $height) 0 }}" cy="{{ index (cellCenter . $height) 1 }}"
				r="8" fill="gold" stroke="#996515" opacity="1"/>
		{{ end }}
		{{ $p1 := cellCenter .P1Pos $height }}
		{{ $p2 := cellCenter .P2Pos $height }}
		<circle id="player1" cx="{{ index $p1 0 }}" cy="{{ index $p1 1 }}" r="14" fill="#c0392b"/>
		<circle id="player2" cx="{{ index $p2 0 }}" cy="{{ index $p2 1 }}" r="14" fill="#2c3e50"/>
	</svg>
	<div id="` + name + `-score">rat {{ printf "%.1f" .P1Score }} — python {{ printf "%.1f" .P2Score }} (turn {{ .Turn }}/{{ .MaxTurns }})</div>
</div>
{{ end }}`)
	return
}
