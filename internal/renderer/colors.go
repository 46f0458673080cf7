package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// palette resolves chart colours, which may be CSS variables, against a theme
type palette struct {
	vars map[string]string
}

func newPalette(stylesheet string) (*palette, error) {
	vars, err := ThemeVariables(stylesheet)
	if err != nil {
		return nil, err
	}
	return &palette{vars: vars}, nil
}

// color returns the RGBA value of a colour, or fallback when it cannot be parsed
func (p *palette) color(value string, fallback color.RGBA) color.RGBA {
	c, err := parseHexColor(resolveVariables(value, p.vars))
	if err != nil {
		return fallback
	}
	return c
}

// parseHexColor parses #rgb, #rrggbb and #rrggbbaa colours
func parseHexColor(hexColor string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", hexColor)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", hexColor, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// blendColor mixes fg over bg with the given opacity
func blendColor(fg, bg color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*opacity + float64(b)*(1-opacity) + 0.5)
	}
	return color.RGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 255}
}
