package renderer

import (
	"bytes"
	"fmt"
	"html"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

const gridLineHeight = 14

// DrawHouseGrid draws the table of house cusps, one "Cusp n:" row per house
func DrawHouseGrid(origin Point, houses []model.Point, cuspLabel, textColor string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<g transform="translate(%s,%s)">`, num(origin.X), num(origin.Y))

	line := 10
	for i, house := range houses {
		number := fmt.Sprintf("&#160;&#160;%d", i+1)
		if i >= 9 {
			number = fmt.Sprintf("%d", i+1)
		}
		fmt.Fprintf(&buf, `<g transform="translate(0,%d)">`, line)
		fmt.Fprintf(&buf, `<text text-anchor="end" x="40" style="fill:%s; font-size: 10px;">%s %s:</text>`,
			textColor, html.EscapeString(cuspLabel), number)
		fmt.Fprintf(&buf, `<g transform="translate(40,-8)"><use transform="scale(0.3)" xlink:href="#%s"/></g>`, house.Sign)
		fmt.Fprintf(&buf, `<text x="53" style="fill:%s; font-size: 10px;"> %s</text>`,
			textColor, DegreeString(house.Position, DegreeFormatSeconds))
		buf.WriteString(`</g>`)
		line += gridLineHeight
	}

	buf.WriteString(`</g>`)
	return buf.String()
}

// PlanetGridColumn is one subject's column of the points table
type PlanetGridColumn struct {
	Title  string
	Offset float64
	Points []ActivePoint
}

// planetGridWrap is the row at which the points table continues in a second column
const planetGridWrap = 27

// DrawPlanetGrid draws the points table: label, glyph, degree, sign and retrograde mark per row
func DrawPlanetGrid(origin Point, columns []PlanetGridColumn, lang settings.Language, textColor string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<g transform="translate(%s,%s)">`, num(origin.X), num(origin.Y))

	for _, col := range columns {
		fmt.Fprintf(&buf, `<g transform="translate(%s,-15)"><text text-anchor="end" style="fill:%s; font-size: 14px;">%s:</text></g>`,
			num(col.Offset+175), textColor, html.EscapeString(col.Title))

		line, offset := 10, col.Offset
		for i, ap := range col.Points {
			if i == planetGridWrap {
				line = 10
				offset = col.Offset - 120
			}
			fmt.Fprintf(&buf, `<g transform="translate(%s,%d)">`, num(offset), line)
			fmt.Fprintf(&buf, `<text text-anchor="end" style="fill:%s; font-size: 10px;">%s</text>`,
				textColor, html.EscapeString(lang.PointName(ap.Setting.Name)))
			fmt.Fprintf(&buf, `<g transform="translate(5,-8)"><use transform="scale(0.4)" xlink:href="#%s"/></g>`, ap.Setting.Name)
			fmt.Fprintf(&buf, `<text text-anchor="start" x="19" style="fill:%s; font-size: 10px;">%s</text>`,
				textColor, DegreeString(ap.Point.Position, DegreeFormatSeconds))
			fmt.Fprintf(&buf, `<g transform="translate(60,-8)"><use transform="scale(0.3)" xlink:href="#%s"/></g>`, ap.Point.Sign)
			if ap.Point.Retrograde {
				buf.WriteString(`<g transform="translate(74,-6)"><use transform="scale(.5)" xlink:href="#retrograde"/></g>`)
			}
			buf.WriteString(`</g>`)
			line += gridLineHeight
		}
	}

	buf.WriteString(`</g>`)
	return buf.String()
}
