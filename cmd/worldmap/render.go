package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"

	"wildbound/internal/domain/world"
)

var (
	poiStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Bold(true)
	spawnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// renderTerminal draws one character per sampled cell. Worlds wider than
// maxCols are sampled at a fixed stride in both axes.
func renderTerminal(w *world.World, maxCols int) string {
	step := 1
	if maxCols > 0 && w.Width() > maxCols {
		step = (w.Width() + maxCols - 1) / maxCols
	}
	spawn := w.Spawn()

	var b strings.Builder
	for y := 0; y < w.Height(); y += step {
		for x := 0; x < w.Width(); x += step {
			t, ok := w.TileAt(x, y)
			if !ok {
				continue
			}
			bg := lipgloss.NewStyle().Background(lipgloss.Color(t.Color))
			switch {
			case spawn.X >= x && spawn.X < x+step && spawn.Y >= y && spawn.Y < y+step:
				b.WriteString(spawnStyle.Inherit(bg).Render("@"))
			case t.POI != "":
				b.WriteString(poiStyle.Inherit(bg).Render("*"))
			default:
				b.WriteString(bg.Render(" "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderLegend(w *world.World) string {
	counts := w.BiomeCounts()
	types := make([]world.BiomeType, 0, len(counts))
	for bt := range counts {
		types = append(types, bt)
	}
	sort.Slice(types, func(i, j int) bool { return counts[types[i]] > counts[types[j]] })

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("seed %.4f  %dx%d  %s", w.Seed(), w.Width(), w.Height(), w.Noise())))
	b.WriteString("\n")
	for _, bt := range types {
		biome, ok := world.BiomeByType(bt)
		if !ok {
			continue
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(biome.Color)).Render("  ")
		fmt.Fprintf(&b, "%s %-16s %d\n", swatch, biome.Name, counts[bt])
	}
	fmt.Fprintf(&b, "%d points of interest\n", len(w.POIs()))
	return b.String()
}

func renderPNG(w *world.World, scale int, path string) error {
	if scale <= 0 {
		scale = 1
	}
	s := float64(scale)
	dc := gg.NewContext(w.Width()*scale, w.Height()*scale)
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			t, ok := w.TileAt(x, y)
			if !ok {
				continue
			}
			dc.SetHexColor(t.Color)
			dc.DrawRectangle(float64(x)*s, float64(y)*s, s, s)
			dc.Fill()
		}
	}
	for _, p := range w.POIs() {
		dc.SetRGBA(0, 0, 0, 0.85)
		dc.DrawCircle((float64(p.X)+0.5)*s, (float64(p.Y)+0.5)*s, s*0.4)
		dc.Fill()
	}
	spawn := w.Spawn()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(s * 0.2)
	dc.DrawCircle((float64(spawn.X)+0.5)*s, (float64(spawn.Y)+0.5)*s, s*0.6)
	dc.Stroke()
	return dc.SavePNG(path)
}
