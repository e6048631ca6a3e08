// Package export renders recorded trajectories to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/gmifflen/planetsim/internal/sim"
)

// palette cycles through orbit stroke colors when a run carries more
// bodies than colors.
var palette = []string{
	"#ffff00", "#6495ed", "#bc2732", "#504e51", "#ffffff",
	"#88ddff", "#ffdd88", "#99ff99",
}

// ResultSVG draws every body's trajectory as a polyline plus a dot and
// label at its final position, auto-scaled to the run's bounding box.
func ResultSVG(result *sim.Result, width, height int) (string, error) {
	if len(result.Frames) < 2 {
		return "", fmt.Errorf("export: need at least two frames, got %d", len(result.Frames))
	}

	minX, maxX := result.Frames[0][0].Pos.X, result.Frames[0][0].Pos.X
	minY, maxY := result.Frames[0][0].Pos.Y, result.Frames[0][0].Pos.Y
	for _, frame := range result.Frames {
		for _, bs := range frame {
			minX = min(minX, bs.Pos.X)
			maxX = max(maxX, bs.Pos.X)
			minY = min(minY, bs.Pos.Y)
			maxY = max(maxY, bs.Pos.Y)
		}
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	// 5% margin on every side.
	pad := 0.05
	minX -= spanX * pad
	minY -= spanY * pad
	spanX *= 1 + 2*pad
	spanY *= 1 + 2*pad

	toPx := func(x, y float64) (float64, float64) {
		return float64(width) * (x - minX) / spanX,
			float64(height) * (y - minY) / spanY
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for b, name := range result.Names {
		stroke := palette[b%len(palette)]

		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1" points="`, stroke))
		for i, frame := range result.Frames {
			px, py := toPx(frame[b].Pos.X, frame[b].Pos.Y)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px, py))
		}
		sb.WriteString("\"/>\n")

		last := result.Frames[len(result.Frames)-1][b]
		px, py := toPx(last.Pos.X, last.Pos.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
<text x="%.1f" y="%.1f" fill="%s" font-size="11" font-family="monospace">%s</text>
`, px, py, stroke, px+6, py+4, stroke, name))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}
