package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/ratgrav/internal/sim"
)

// RenderFrame formats one frame as a table: name, approximate position and
// whole-number distance from the origin for every body.
func RenderFrame(f sim.Frame) string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", f.Tick)) + "\n")
	for _, b := range f.Bodies {
		p := b.Position.Floats()
		s.WriteString(nameStyle.Render(b.Name))
		s.WriteString(valueStyle.Render(fmt.Sprintf("(%.6g, %.6g, %.6g)  |r| = %s", p[0], p[1], p[2], b.Distance)))
		s.WriteString("\n")
	}
	return s.String()
}

// RenderExact formats one frame with exact rational coordinates.
func RenderExact(f sim.Frame) string {
	var s strings.Builder
	for _, b := range f.Bodies {
		fmt.Fprintf(&s, "%s: %s\n", b.Name, b.Position)
	}
	return s.String()
}

func RenderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}

func RenderPanel(title, body string) string {
	return panelStyle.Render(headerStyle.Render(strings.ToUpper(title)) + "\n" + body)
}
