package renderer

import (
	"bytes"
	"fmt"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

// zodiacSlice draws one sign's pie slice and its symbol
func zodiacSlice(idx int, r, seventh, fillDropin, symbolDropin float64, style string) string {
	offset := 360 - seventh
	inner := r - fillDropin
	slice := fmt.Sprintf(`<path d="M%s,%s L%s,%s A%s,%s 0 0,0 %s,%s z" style="%s"/>`,
		num(r), num(r),
		num(fillDropin+SliceToX(float64(idx), inner, offset)), num(fillDropin+SliceToY(float64(idx), inner, offset)),
		num(inner), num(inner),
		num(fillDropin+SliceToX(float64(idx+1), inner, offset)), num(fillDropin+SliceToY(float64(idx+1), inner, offset)),
		style)

	offset += 15
	symbolRadius := r - symbolDropin
	symbol := fmt.Sprintf(`<g transform="translate(-16,-16)"><use x="%s" y="%s" xlink:href="#%s"/></g>`,
		num(symbolDropin+SliceToX(float64(idx), symbolRadius, offset)),
		num(symbolDropin+SliceToY(float64(idx), symbolRadius, offset)),
		model.Signs[idx].Abbr)

	return slice + symbol
}

// DrawZodiacSlices draws the twelve sign slices, Aries first, rotated to the seventh house cusp
func DrawZodiacSlices(g RingGeometry, dual bool, seventh float64, colors settings.ChartColors) string {
	fillDropin := g.First
	symbolDropin := 18 + g.First
	if dual {
		fillDropin = 0
		symbolDropin = 54
	}

	var buf bytes.Buffer
	for i := 0; i < 12; i++ {
		style := fmt.Sprintf("fill:%s; fill-opacity: 0.5;", colorAt(colors.ZodiacBackground, i))
		buf.WriteString(zodiacSlice(i, g.Main, seventh, fillDropin, symbolDropin, style))
	}
	return buf.String()
}

// DrawDegreeRing draws 72 ticks every 5 degrees on the first circle
func DrawDegreeRing(r, c1, seventh float64, stroke string) string {
	var buf bytes.Buffer
	buf.WriteString(`<g id="degreeRing">`)
	for i := 0; i < 72; i++ {
		offset := tickOffset(i, seventh)
		x1 := SliceToX(0, r-c1, offset) + c1
		y1 := SliceToY(0, r-c1, offset) + c1
		x2 := SliceToX(0, r+2-c1, offset) - 2 + c1
		y2 := SliceToY(0, r+2-c1, offset) - 2 + c1
		fmt.Fprintf(&buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: %s; stroke-width: 1px; stroke-opacity:.9;"/>`,
			num(x1), num(y1), num(x2), num(y2), stroke)
	}
	buf.WriteString(`</g>`)
	return buf.String()
}

// DrawTransitRingDegreeSteps draws the degree ticks on the outer border of a dual chart
func DrawTransitRingDegreeSteps(r, seventh float64) string {
	var buf bytes.Buffer
	buf.WriteString(`<g id="transitRingDegreeSteps">`)
	for i := 0; i < 72; i++ {
		offset := tickOffset(i, seventh)
		x1 := SliceToX(0, r, offset)
		y1 := SliceToY(0, r, offset)
		x2 := SliceToX(0, r+2, offset) - 2
		y2 := SliceToY(0, r+2, offset) - 2
		fmt.Fprintf(&buf, `<line x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: #F00; stroke-width: 1px; stroke-opacity:.9;"/>`,
			num(x1), num(y1), num(x2), num(y2))
	}
	buf.WriteString(`</g>`)
	return buf.String()
}

func tickOffset(i int, seventh float64) float64 {
	offset := float64(i*5) - seventh
	if offset < 0 {
		offset += 360
	} else if offset > 360 {
		offset -= 360
	}
	return offset
}

// DrawTransitRing draws the translucent band holding the second subject's points
func DrawTransitRing(r float64, paper1, ringColor string) string {
	const radiusOffset = 18
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: none; stroke: %s; stroke-width: 36px; stroke-opacity: .4;"/>`,
		num(r), num(r), num(r-radiusOffset), paper1) +
		fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: none; stroke: %s; stroke-width: 1px; stroke-opacity: .6;"/>`,
			num(r), num(r), num(r), ringColor)
}

// DrawFirstCircle draws the inner border of the zodiac ring
func DrawFirstCircle(g RingGeometry, dual bool, stroke string) string {
	r := g.Main
	if dual {
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: none; stroke: %s; stroke-width: 1px; stroke-opacity:.4;"/>`,
			num(r), num(r), num(r-36), stroke)
	}
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: none; stroke: %s; stroke-width: 1px;"/>`,
		num(r), num(r), num(r-g.First), stroke)
}

// DrawSecondCircle draws the border of the point band
func DrawSecondCircle(g RingGeometry, dual bool, stroke, fill string) string {
	r := g.Main
	if dual {
		return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: %s; fill-opacity:.4; stroke: %s; stroke-opacity:.4; stroke-width: 1px"/>`,
			num(r), num(r), num(r-72), fill, stroke)
	}
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: %s; fill-opacity:.2; stroke: %s; stroke-opacity:.4; stroke-width: 1px"/>`,
		num(r), num(r), num(r-g.Second), fill, stroke)
}

// DrawThirdCircle draws the aspect disc
func DrawThirdCircle(g RingGeometry, dual bool, stroke, fill string) string {
	r := g.Main
	inset := g.Third
	if dual {
		inset = 160
	}
	return fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" style="fill: %s; fill-opacity:.8; stroke: %s; stroke-width: 1px"/>`,
		num(r), num(r), num(r-inset), fill, stroke)
}

// colorAt returns the i-th colour of a list, or an empty string
func colorAt(colors []string, i int) string {
	if i < 0 || i >= len(colors) {
		return ""
	}
	return colors[i]
}
