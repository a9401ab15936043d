// Command routeviz is a terminal visualizer: it loads a scene, builds the
// graph, routes every net, and draws boxes and wires on a tcell screen
// until the user quits.
package main

import (
	"flag"
	"log"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"

	"wireroute/pkg/api"
	"wireroute/pkg/routing"
	"wireroute/pkg/scene"
)

var (
	boxStyle  = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	wireStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	fallStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	anchorSty = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func main() {
	scenePath := flag.String("scene", "scene.json", "Path to a scene JSON document")
	flag.Parse()

	f, err := os.Open(*scenePath)
	if err != nil {
		log.Fatalf("routeviz: open scene: %v", err)
	}
	sc, err := scene.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("routeviz: parse scene: %v", err)
	}

	handle := api.NewGraphHandle()
	handle.Build(sc.Anchors, sc.Boxes, sc.Minimal)

	resp, err := api.ConnectNets(handle, api.ConnectNetsRequest{Nets: sc.Nets})
	if err != nil {
		log.Fatalf("routeviz: connect nets: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("routeviz: new screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("routeviz: init screen: %v", err)
	}
	defer screen.Fini()

	draw(screen, sc, resp.Results)

	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
			draw(screen, sc, resp.Results)
		}
	}
}

func draw(screen tcell.Screen, sc scene.Scene, results []routing.NetResult) {
	screen.Clear()

	for _, b := range sc.Boxes {
		for x := b.MinX(); x <= b.MaxX(); x++ {
			for y := b.MinY(); y <= b.MaxY(); y++ {
				screen.SetContent(int(x), int(y), ' ', nil, boxStyle)
			}
		}
	}

	for _, res := range results {
		for _, w := range res.Wires {
			style := wireStyle
			if w.Fallback {
				style = fallStyle
			}
			drawPolyline(screen, w.Points, style)
		}
	}

	for _, a := range sc.Anchors {
		screen.SetContent(int(a.Position.X), int(a.Position.Y), '+', nil, anchorSty)
	}

	screen.Show()
}

// drawPolyline paints every lattice cell along each orthogonal segment of
// points, not just its vertices. Vertex coordinates are rounded to the
// nearest screen cell; alley centering can leave a half-integer
// coordinate that a terminal grid has no cell for.
func drawPolyline(screen tcell.Screen, points []routing.Vertex, style tcell.Style) {
	for i := 0; i < len(points)-1; i++ {
		a, b := cellOf(points[i]), cellOf(points[i+1])
		if a.y == b.y {
			lo, hi := a.x, b.x
			if lo > hi {
				lo, hi = hi, lo
			}
			for x := lo; x <= hi; x++ {
				screen.SetContent(x, a.y, '─', nil, style)
			}
		} else {
			lo, hi := a.y, b.y
			if lo > hi {
				lo, hi = hi, lo
			}
			for y := lo; y <= hi; y++ {
				screen.SetContent(a.x, y, '│', nil, style)
			}
		}
	}
}

type cell struct{ x, y int }

func cellOf(v routing.Vertex) cell {
	return cell{x: int(math.Round(float64(v.X))), y: int(math.Round(float64(v.Y)))}
}
