package renderer

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/ankek/terraform-provider-astrochart/internal/graph"
	"github.com/ankek/terraform-provider-astrochart/internal/model"
)

const gridBoxSize = 14.0

// ColoredAspect is an aspect whose kind resolved to a display colour
type ColoredAspect struct {
	model.Aspect
	Color string
}

// DrawAspectLine draws the chord between the two points of an aspect on a circle of radius
// ar concentric with a wheel of radius r
func DrawAspectLine(r, ar float64, aspect ColoredAspect, seventh float64) string {
	inset := r - ar

	firstOffset := float64(int(aspect.P1AbsPos) - int(seventh))
	x1 := SliceToX(0, ar, firstOffset) + inset
	y1 := SliceToY(0, ar, firstOffset) + inset

	secondOffset := float64(int(aspect.P2AbsPos) - int(seventh))
	x2 := SliceToX(0, ar, secondOffset) + inset
	y2 := SliceToY(0, ar, secondOffset) + inset

	return fmt.Sprintf(`<g ac:node="Aspect" ac:aspectname="%s" ac:to="%s" ac:tooriginaldegrees="%s" ac:from="%s" ac:fromoriginaldegrees="%s">`+
		`<line class="aspect" x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: %s; stroke-width: 1; stroke-opacity: .9;"/></g>`,
		aspect.Kind, aspect.P1Name, num(aspect.P1AbsPos), aspect.P2Name, num(aspect.P2AbsPos),
		num(x1), num(y1), num(x2), num(y2), aspect.Color)
}

// DrawAspectLines draws every aspect chord
func DrawAspectLines(r, ar float64, aspects []ColoredAspect, seventh float64) string {
	var buf bytes.Buffer
	for _, a := range aspects {
		buf.WriteString(DrawAspectLine(r, ar, a, seventh))
	}
	return buf.String()
}

func gridRect(buf *bytes.Buffer, x, y float64, style string) {
	fmt.Fprintf(buf, `<rect ac:node="AspectsGridRect" x="%s" y="%s" width="%s" height="%s" style="%s"/>`,
		num(x), num(y), num(gridBoxSize), num(gridBoxSize), style)
}

func gridGlyph(buf *bytes.Buffer, x, y float64, name string) {
	fmt.Fprintf(buf, `<use transform="scale(0.4)" x="%s" y="%s" xlink:href="#%s"/>`, num((x+2)*2.5), num((y+1)*2.5), name)
}

func gridOrb(buf *bytes.Buffer, x, y float64, degrees int) {
	fmt.Fprintf(buf, `<use x="%s" y="%s" xlink:href="#orb%d"/>`, num(x), num(y), degrees)
}

func gridStyle(stroke string) string {
	return fmt.Sprintf("stroke:%s; stroke-width: 1px; stroke-width: 0.5px; fill:none", stroke)
}

// DrawAspectGrid draws the triangular aspect table of a single subject chart. Points are
// listed in reverse order; a cell shows the orb symbol when the two points aspect each other
// in either direction.
func DrawAspectGrid(stroke string, names []string, aspects *graph.Graph, xStart, yStart float64) string {
	style := gridStyle(stroke)
	reversed := reverseNames(names)

	var buf bytes.Buffer
	for index, a := range reversed {
		gridRect(&buf, xStart, yStart, style)
		gridGlyph(&buf, xStart, yStart, a)

		xStart += gridBoxSize
		yStart -= gridBoxSize

		xAspect := xStart
		yAspect := yStart + gridBoxSize

		for _, b := range reversed[index+1:] {
			gridRect(&buf, xAspect, yAspect, style)
			xAspect += gridBoxSize

			if aspect, ok := aspects.Between(a, b); ok {
				gridOrb(&buf, xAspect-gridBoxSize+1, yAspect+1, aspect.AspectDegrees)
			}
		}
	}
	return buf.String()
}

// DrawTransitAspectGrid draws the square aspect table of a dual chart. Rows are the first
// subject's points, columns the second subject's; only aspects from a row point to a column
// point are shown.
func DrawTransitAspectGrid(stroke string, names []string, aspects *graph.Graph, xIndent, yIndent float64) string {
	style := gridStyle(stroke)
	reversed := reverseNames(names)

	var buf bytes.Buffer
	x := xIndent
	for _, name := range reversed {
		gridRect(&buf, x, yIndent, style)
		gridGlyph(&buf, x, yIndent, name)
		x += gridBoxSize
	}

	y := yIndent - gridBoxSize
	for _, name := range reversed {
		gridRect(&buf, xIndent-gridBoxSize, y, style)
		gridGlyph(&buf, xIndent-gridBoxSize, y, name)
		y -= gridBoxSize
	}

	y = yIndent - gridBoxSize
	for _, a := range reversed {
		gridRect(&buf, xIndent, y, style)
		y -= gridBoxSize

		xAspect := xIndent
		yAspect := y + gridBoxSize
		for _, b := range reversed {
			gridRect(&buf, xAspect, yAspect, style)
			xAspect += gridBoxSize

			if aspect, ok := aspects.Directed(a, b); ok {
				gridOrb(&buf, xAspect-gridBoxSize+1, yAspect+1, aspect.AspectDegrees)
			}
		}
	}
	return buf.String()
}

// aspectListColumns is the number of rows per column of the aspect list
const aspectListColumns = 14

// DrawAspectList draws the aspects of a dual chart as a list, fourteen rows per column. The
// sixth column scrolls up when there are more than 84 aspects. degreeOf resolves the orb
// symbol of an aspect kind.
func DrawAspectList(origin Point, title string, aspects []ColoredAspect, paper0 string, degreeOf func(kind string) int) string {
	var inner bytes.Buffer
	line, column := 0, 0
	for i, a := range aspects {
		if i > 0 && i%aspectListColumns == 0 && i <= 5*aspectListColumns {
			column = i / aspectListColumns * 100
			line = 0
			if i == 5*aspectListColumns && len(aspects) > 6*aspectListColumns {
				line = -(len(aspects) - 6*aspectListColumns) * 14
			}
		}

		fmt.Fprintf(&inner, `<g transform="translate(%d,%d)">`, column, line)
		fmt.Fprintf(&inner, `<use transform="scale(0.4)" x="0" y="3" xlink:href="#%s"/>`, a.P1Name)
		fmt.Fprintf(&inner, `<use x="15" y="0" xlink:href="#orb%d"/>`, degreeOf(a.Kind))
		inner.WriteString(`<g transform="translate(30,0)">`)
		fmt.Fprintf(&inner, `<use transform="scale(0.4)" x="0" y="3" xlink:href="#%s"/>`, a.P2Name)
		inner.WriteString(`</g>`)
		fmt.Fprintf(&inner, `<text y="8" x="45" style="fill: %s; font-size: 10px;">%s</text>`,
			paper0, DegreeString(math.Abs(a.Orbit), DegreeFormatSeconds))
		inner.WriteString(`</g>`)
		line += 14
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<g transform="translate(%s,%s)">`, num(origin.X), num(origin.Y))
	fmt.Fprintf(&buf, `<text y="-15" x="0" style="fill: %s; font-size: 14px;">%s:</text>`, paper0, html.EscapeString(title))
	buf.Write(inner.Bytes())
	buf.WriteString(`</g>`)
	return buf.String()
}

func reverseNames(names []string) []string {
	reversed := make([]string, len(names))
	for i, n := range names {
		reversed[len(names)-1-i] = n
	}
	return reversed
}
