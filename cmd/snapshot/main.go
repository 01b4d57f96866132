// Command snapshot renders a persisted timeline file to a PNG, drawing the
// path its movement deltas trace from the arena center, with markers for
// ability casts and deaths, so a designer can eyeball a recorded route
// without running the game.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"

	"arenic/internal/ability"
	"arenic/internal/arenatime"
	"arenic/internal/persist"
	"arenic/internal/timeline"
)

const (
	width    = 800
	height   = 800
	gridSize = 24.0
	marginPx = 40.0
)

func main() {
	var inPath, outPath string
	flag.StringVar(&inPath, "in", "", "path to a persisted timeline file")
	flag.StringVar(&outPath, "out", "", "path to write the rendered PNG")
	flag.Parse()

	if inPath == "" || outPath == "" {
		fmt.Fprintln(os.Stderr, "--in and --out are required")
		os.Exit(1)
	}

	if err := run(inPath, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read timeline: %w", err)
	}

	published, err := persist.DecodeTimeline(raw)
	if err != nil {
		return fmt.Errorf("decode timeline: %w", err)
	}

	events, err := published.EventsFromThrough(arenatime.Zero, arenatime.Max)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	dc := gg.NewContext(width, height)
	drawBackground(dc)
	drawPath(dc, events)

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("write PNG: %w", err)
	}
	return nil
}

func drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{18, 18, 24, 255})
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	dc.SetColor(color.RGBA{40, 40, 52, 255})
	dc.SetLineWidth(1)
	for x := marginPx; x < width; x += gridSize {
		dc.DrawLine(x, 0, x, height)
		dc.Stroke()
	}
	for y := marginPx; y < height; y += gridSize {
		dc.DrawLine(0, y, width, y)
		dc.Stroke()
	}
}

// drawPath walks the committed route from the arena center, connecting
// consecutive movement deltas with a line and marking ability/death events
// with colored dots at the position they occurred.
func drawPath(dc *gg.Context, events []timeline.Event) {
	x, y := width/2.0, height/2.0

	dc.SetLineWidth(2)
	dc.SetColor(color.RGBA{120, 200, 255, 255})
	dc.MoveTo(x, y)

	for _, event := range events {
		switch event.Kind {
		case timeline.Movement:
			x += float64(event.Delta.X) * gridSize
			y += float64(event.Delta.Y) * gridSize
			dc.LineTo(x, y)
		case timeline.Ability:
			dc.Stroke()
			drawMarker(dc, x, y, abilityColor(event.AbilityID))
			dc.MoveTo(x, y)
		case timeline.Death:
			dc.Stroke()
			drawMarker(dc, x, y, color.RGBA{220, 40, 40, 255})
			dc.MoveTo(x, y)
		}
	}
	dc.Stroke()
}

func drawMarker(dc *gg.Context, x, y float64, c color.Color) {
	dc.SetColor(c)
	dc.DrawCircle(x, y, gridSize/3)
	dc.Fill()
}

func abilityColor(id ability.ID) color.Color {
	switch id {
	case ability.AutoShot:
		return color.RGBA{255, 200, 60, 255}
	case ability.HolyNova:
		return color.RGBA{255, 255, 255, 255}
	case ability.PoisonShot:
		return color.RGBA{100, 220, 100, 255}
	case ability.Heal:
		return color.RGBA{255, 120, 200, 255}
	default:
		return color.RGBA{180, 180, 180, 255}
	}
}
