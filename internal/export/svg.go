package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/ratgrav/internal/sim"
)

var palette = []string{"#00ccff", "#ff00ff", "#00ff88", "#ffaa00", "#ff4444", "#aaaaff"}

type point struct{ X, Y float64 }

// FramesToSVG draws every body's x/y position in every frame as a scatter
// plot with one colour per body and a legend. Positions are converted to
// float64 for drawing only.
func FramesToSVG(frames []sim.Frame, width, height int) string {
	names := make([]string, 0)
	series := make(map[string][]point)
	for _, f := range frames {
		for _, b := range f.Bodies {
			if _, ok := series[b.Name]; !ok {
				names = append(names, b.Name)
			}
			p := b.Position.Floats()
			series[b.Name] = append(series[b.Name], point{p[0], p[1]})
		}
	}
	if len(names) == 0 {
		return ""
	}

	// Find bounds
	first := series[names[0]][0]
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, pts := range series {
		for _, p := range pts {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, name := range names {
		color := palette[i%len(palette)]
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", color))
		for _, p := range series[name] {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\"/>\n", x, y))
		}
		sb.WriteString(fmt.Sprintf("<text x=\"%d\" y=\"%d\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
			width-120, 20+16*i, html.EscapeString(name)))
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes FramesToSVG to w.
func WriteSVG(w io.Writer, frames []sim.Frame, width, height int) error {
	svg := FramesToSVG(frames, width, height)
	if svg == "" {
		return fmt.Errorf("export: no frames to draw")
	}
	_, err := io.WriteString(w, svg)
	return err
}
