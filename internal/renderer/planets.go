package renderer

import (
	"bytes"
	"fmt"
	"math"
	"sort"
)

const (
	// DefaultMinSeparation is the smallest angular gap between two glyphs on a ring
	DefaultMinSeparation = 6.0

	// DefaultMaxPasses bounds the nudging loop
	DefaultMaxPasses = 100

	separationEpsilon = 1e-9
)

// GlyphAngle is a glyph to place at a display angle on a ring
type GlyphAngle struct {
	Name  string
	Angle float64
}

// PlacedGlyph is a glyph after collision avoidance. TrueAngle is the input angle, DisplayAngle
// the nudged one.
type PlacedGlyph struct {
	Name         string
	TrueAngle    float64
	DisplayAngle float64
}

// PlaceGlyphs spreads glyphs around a ring so that neighbours are at least minSeparation
// degrees apart. The cyclic order of the glyphs is preserved. When the ring cannot hold every
// glyph at minSeparation the separation shrinks to 360/n. Results are in input order.
func PlaceGlyphs(items []GlyphAngle, minSeparation float64, maxPasses int) []PlacedGlyph {
	n := len(items)
	if n == 0 {
		return nil
	}
	if minSeparation <= 0 {
		minSeparation = DefaultMinSeparation
	}
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	if float64(n)*minSeparation > 360 {
		minSeparation = 360 / float64(n)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return NormalizeDegree(items[order[a]].Angle) < NormalizeDegree(items[order[b]].Angle)
	})

	// pos is indexed by ring order
	pos := make([]float64, n)
	for k, idx := range order {
		pos[k] = NormalizeDegree(items[idx].Angle)
	}

	for pass := 0; pass < maxPasses && n > 1; pass++ {
		if !nudge(pos, minSeparation) {
			break
		}
	}

	placed := make([]PlacedGlyph, n)
	for k, idx := range order {
		placed[idx] = PlacedGlyph{
			Name:         items[idx].Name,
			TrueAngle:    NormalizeDegree(items[idx].Angle),
			DisplayAngle: pos[k],
		}
	}
	return placed
}

// nudge runs one pass over the ring and reports whether any glyph moved
func nudge(pos []float64, sep float64) bool {
	n := len(pos)

	// Start the walk right after the widest gap
	start, widest := 0, -1.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if gap := forwardGap(pos[i], pos[j]); gap > widest {
			widest = gap
			start = j
		}
	}

	// Unwrap so that positions increase along the walk
	unwrapped := make([]float64, n)
	unwrapped[0] = pos[start]
	for k := 1; k < n; k++ {
		unwrapped[k] = pos[start] + forwardGap(pos[start], pos[(start+k)%n])
		if unwrapped[k] < unwrapped[k-1] {
			unwrapped[k] = unwrapped[k-1]
		}
	}

	moved := false
	for k := 1; k < n; k++ {
		if unwrapped[k]-unwrapped[k-1] < sep-separationEpsilon {
			unwrapped[k] = unwrapped[k-1] + sep
			moved = true
		}
	}

	// A short wrap-around gap pulls the chain back from its end
	if wrap := unwrapped[0] + 360 - unwrapped[n-1]; wrap < sep-separationEpsilon {
		unwrapped[n-1] = unwrapped[0] + 360 - sep
		for k := n - 2; k > 0; k-- {
			if unwrapped[k] > unwrapped[k+1]-sep {
				unwrapped[k] = unwrapped[k+1] - sep
			}
		}
		moved = true
	}

	for k := 0; k < n; k++ {
		pos[(start+k)%n] = NormalizeDegree(unwrapped[k])
	}
	return moved
}

// forwardGap is the counter-clockwise distance from a to b
func forwardGap(a, b float64) float64 {
	return NormalizeDegree(b - a)
}

// MinGap returns the smallest angular distance between neighbouring display angles
func MinGap(placed []PlacedGlyph) float64 {
	if len(placed) < 2 {
		return 360
	}
	angles := make([]float64, len(placed))
	for i, p := range placed {
		angles[i] = p.DisplayAngle
	}
	sort.Float64s(angles)
	smallest := math.Inf(1)
	for i := range angles {
		gap := forwardGap(angles[i], angles[(i+1)%len(angles)])
		if gap < smallest {
			smallest = gap
		}
	}
	return smallest
}

// RingLayout places glyphs and their stems. Insets are measured from the main radius.
type RingLayout struct {
	GlyphInset     float64
	ReferenceInset float64
	StemInset      float64
}

var (
	natalRing         = RingLayout{GlyphInset: 94, ReferenceInset: 36, StemInset: 80}
	externalNatalRing = RingLayout{GlyphInset: 28, ReferenceInset: 56, StemInset: 40}
	dualRadixRing     = RingLayout{GlyphInset: 110, ReferenceInset: 72, StemInset: 96}
	transitRing       = RingLayout{GlyphInset: 18, ReferenceInset: 36, StemInset: 30}
)

// glyphAngles converts points to display angles relative to the seventh house cusp
func glyphAngles(points []ActivePoint, seventh float64) []GlyphAngle {
	angles := make([]GlyphAngle, len(points))
	for i, ap := range points {
		angles[i] = GlyphAngle{Name: ap.Setting.Name, Angle: NormalizeDegree(ap.Point.AbsPos - seventh)}
	}
	return angles
}

// DrawPoints places the points on a ring and draws a stem from each true position to its glyph
func DrawPoints(points []ActivePoint, seventh float64, layout RingLayout, minSeparation float64) (string, []PlacedGlyph) {
	placed := PlaceGlyphs(glyphAngles(points, seventh), minSeparation, DefaultMaxPasses)

	var buf bytes.Buffer
	for i, p := range placed {
		setting := points[i].Setting
		from := PolarPoint(p.TrueAngle, MainRadius-layout.ReferenceInset)
		to := PolarPoint(p.DisplayAngle, MainRadius-layout.StemInset)
		glyph := PolarPoint(p.DisplayAngle, MainRadius-layout.GlyphInset)

		fmt.Fprintf(&buf, `<g ac:node="ChartPoint" ac:name="%s" ac:degree="%s">`, setting.Name, num(points[i].Point.AbsPos))
		fmt.Fprintf(&buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: %s; stroke-width: 1px; stroke-opacity:.6;"/>`,
			num(from.X), num(from.Y), num(to.X), num(to.Y), setting.Color)
		fmt.Fprintf(&buf, `<g transform="translate(-12,-12)"><use x="%s" y="%s" xlink:href="#%s"/></g>`,
			num(glyph.X), num(glyph.Y), setting.Name)
		buf.WriteString(`</g>`)
	}
	return buf.String(), placed
}
