package renderer

import (
	"bytes"
	"fmt"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
)

// CuspColors are the line colours of the house cusps. The four angular cusps
// take the colour of their axis point.
type CuspColors struct {
	Standard    string
	Transit     string
	Ascendant   string
	MediumCoeli string
	Descendant  string
	ImumCoeli   string
}

func (c CuspColors) forHouse(i int) (string, bool) {
	switch i {
	case 0:
		return c.Ascendant, true
	case 3:
		return c.ImumCoeli, true
	case 6:
		return c.Descendant, true
	case 9:
		return c.MediumCoeli, true
	}
	return c.Standard, false
}

const houseNumberStyle = "fill: var(--astrochart-color-house-number); font-size: 14px"

// DrawHouseCusps draws the twelve cusp lines and house numbers. Dual charts pass
// the second subject's houses, drawn in the transit ring.
func DrawHouseCusps(t ChartType, g RingGeometry, houses, secondHouses []model.Point, colors CuspColors) (string, error) {
	if len(houses) != 12 {
		return "", fmt.Errorf("expected 12 houses, got %d", len(houses))
	}
	dual := t.Dual()
	if dual && len(secondHouses) != 12 {
		return "", fmt.Errorf("%w: expected 12 second subject houses, got %d", ErrSecondSubjectRequired, len(secondHouses))
	}

	r := g.Main
	dropin, roff, tRoff := g.Third, g.First, 0.0
	if dual {
		dropin, roff, tRoff = 160, 72, 36
	}

	textDropin := 48.0
	switch {
	case dual:
		textDropin = 84
	case t == ChartExternalNatal:
		textDropin = 100
	}

	seventh := houses[6].AbsPos
	var buf bytes.Buffer
	for i := 0; i < 12; i++ {
		next := (i + 1) % 12
		offset := float64(int(houses[i].AbsPos) - int(seventh))

		x1 := SliceToX(0, r-dropin, offset) + dropin
		y1 := SliceToY(0, r-dropin, offset) + dropin
		x2 := SliceToX(0, r-roff, offset) + roff
		y2 := SliceToY(0, r-roff, offset) + roff

		textOffset := offset + float64(int(DegreeDiff(houses[next].AbsPos, houses[i].AbsPos)/2))
		lineColor, angular := colors.forHouse(i)

		if dual {
			tOffset := NormalizeDegree(360 - seventh + secondHouses[i].AbsPos)
			tx1 := SliceToX(0, r-tRoff, tOffset) + tRoff
			ty1 := SliceToY(0, r-tRoff, tOffset) + tRoff
			tx2 := SliceToX(0, r, tOffset)
			ty2 := SliceToY(0, r, tOffset)

			tTextOffset := tOffset + float64(int(DegreeDiff(secondHouses[next].AbsPos, secondHouses[i].AbsPos)/2))
			tLineColor := colors.Transit
			if angular {
				tLineColor = lineColor
			}
			xText := SliceToX(0, r-8, tTextOffset) + 8
			yText := SliceToY(0, r-8, tTextOffset) + 8

			fillOpacity, strokeOpacity := ".4", ".3"
			if t == ChartTransit {
				fillOpacity, strokeOpacity = "0", "0"
			}
			fmt.Fprintf(&buf, `<g ac:node="HouseNumber"><text style="%s; fill-opacity: %s"><tspan x="%s" y="%s">%d</tspan></text></g>`,
				houseNumberStyle, fillOpacity, num(xText-3), num(yText+3), i+1)
			fmt.Fprintf(&buf, `<g ac:node="Cusp"><line x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: %s; stroke-width: 1px; stroke-opacity:%s;"/></g>`,
				num(tx1), num(ty1), num(tx2), num(ty2), tLineColor, strokeOpacity)
		}

		xText := SliceToX(0, r-textDropin, textOffset) + textDropin
		yText := SliceToY(0, r-textDropin, textOffset) + textDropin

		fmt.Fprintf(&buf, `<g ac:node="Cusp"><line x1="%s" y1="%s" x2="%s" y2="%s" style="stroke: %s; stroke-width: 1px; stroke-dasharray:3,2; stroke-opacity:.4;"/></g>`,
			num(x1), num(y1), num(x2), num(y2), lineColor)
		fmt.Fprintf(&buf, `<g ac:node="HouseNumber"><text style="%s; fill-opacity: .6"><tspan x="%s" y="%s">%d</tspan></text></g>`,
			houseNumberStyle, num(xText-3), num(yText+3), i+1)
	}

	return buf.String(), nil
}
