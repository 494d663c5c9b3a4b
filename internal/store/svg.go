package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/pulleylab/internal/sim"
)

// TrajectorySVG renders a run's payload position over time as an SVG path,
// with a dashed guide at the controller set point.
func TrajectorySVG(meta *RunMetadata, result *sim.Result, width, height int) string {
	if len(result.Times) < 2 {
		return ""
	}

	minT, maxT := result.Times[0], result.Times[len(result.Times)-1]
	minP, maxP := result.Positions[0], result.Positions[0]
	for _, p := range result.Positions {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	if meta.SetPoint < minP {
		minP = meta.SetPoint
	}
	if meta.SetPoint > maxP {
		maxP = meta.SetPoint
	}

	rangeT := maxT - minT
	rangeP := maxP - minP
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeP == 0 {
		rangeP = 1
	}
	minP -= rangeP * 0.1
	maxP += rangeP * 0.1
	rangeP = maxP - minP

	toX := func(t float64) float64 { return (t - minT) / rangeT * float64(width) }
	toY := func(p float64) float64 { return float64(height) - (p-minP)/rangeP*float64(height) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	spY := toY(meta.SetPoint)
	sb.WriteString(fmt.Sprintf(
		`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#666688" stroke-width="1" stroke-dasharray="6 4"/>
`, spY, width, spY))

	sb.WriteString(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`)
	for i, t := range result.Times {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(t), toY(result.Positions[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(t), toY(result.Positions[i])))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ExportSVGFile writes the trajectory SVG to a file.
func ExportSVGFile(path string, meta *RunMetadata, result *sim.Result, width, height int) error {
	svg := TrajectorySVG(meta, result, width, height)
	if svg == "" {
		return fmt.Errorf("store: not enough samples for an svg plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
