package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultPNGSize is the edge length in pixels of the wheel preview
	DefaultPNGSize = 800
	// MaxPNGSize bounds the preview so the supersampled canvas stays in memory
	MaxPNGSize = 2048

	pngMargin = 10.0
)

var (
	pngWhite = color.RGBA{255, 255, 255, 255}
	pngBlack = color.RGBA{0, 0, 0, 255}
)

// pngCanvas draws in wheel coordinates onto a supersampled image
type pngCanvas struct {
	img   *image.RGBA
	scale float64
	face  font.Face
}

// supersample returns the oversampling factor for a preview edge length. The canvas
// never exceeds 4096 pixels a side.
func supersample(size int) int {
	if size > 1024 {
		return 2
	}
	return 4
}

func newPNGCanvas(size int) (*pngCanvas, error) {
	px := size * supersample(size)
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	scale := float64(px) / (2*MainRadius + 2*pngMargin)
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    9 * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return &pngCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, px, px)),
		scale: scale,
		face:  face,
	}, nil
}

// toPixel converts a wheel coordinate to a pixel coordinate
func (pc *pngCanvas) toPixel(v float64) int {
	return int(math.Round((v + pngMargin) * pc.scale))
}

// RenderPNG rasterises the chart wheel
func (c *Chart) RenderPNG(ctx context.Context, w io.Writer, size int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if size <= 0 {
		size = DefaultPNGSize
	}
	if size > MaxPNGSize {
		return fmt.Errorf("png size %d exceeds the maximum of %d pixels", size, MaxPNGSize)
	}

	pal, err := newPalette(c.themeCSS)
	if err != nil {
		return err
	}
	pc, err := newPNGCanvas(size)
	if err != nil {
		return err
	}

	colors := c.settings.Colors
	paper0 := pal.color(colors.Paper0, pngBlack)
	paper1 := pal.color(colors.Paper1, pngWhite)
	g := c.config.geometry
	dual := c.chartType.Dual()
	seventh := c.subject.SeventhHouse().AbsPos

	outer, inner := g.Main-g.First, g.Main-g.Second
	aspectRadius := g.Main - g.Third
	if dual {
		outer, inner = g.Main-36, g.Main-72
		aspectRadius = g.Main - 160
	}

	signColors := make([]color.RGBA, 12)
	for i := range signColors {
		signColors[i] = blendColor(pal.color(colorAt(colors.ZodiacBackground, i), paper1), paper1, 0.5)
	}
	pc.fillWheel(paper1, seventh, outer, inner, signColors)

	ring := colors.ZodiacRadixRing
	if dual {
		ring = colors.ZodiacTransitRing
		pc.circle(g.Main, pal.color(colorAt(ring, 3), paper0), 1)
	}
	pc.circle(outer, pal.color(colorAt(ring, 2), paper0), 1)
	pc.circle(inner, pal.color(colorAt(ring, 1), paper0), 1)
	pc.circle(aspectRadius, pal.color(colorAt(ring, 0), paper0), 1)

	offset := 360 - seventh
	for i, sign := range model.Signs {
		mid := PolarPoint(offset+float64(i)*30+15, (outer+inner)/2)
		pc.text(sign.Abbr, mid, pal.color(colorAt(colors.ZodiacIcon, i), paper0))
	}

	cusps := c.cuspColors()
	for i, house := range c.subject.Houses {
		angle := NormalizeDegree(house.AbsPos - seventh)
		lineColor, _ := cusps.forHouse(i)
		pc.line(PolarPoint(angle, aspectRadius), PolarPoint(angle, inner), pal.color(lineColor, paper0), 1)
	}

	for _, a := range c.aspects {
		from := PolarPoint(NormalizeDegree(a.P1AbsPos-seventh), aspectRadius)
		to := PolarPoint(NormalizeDegree(a.P2AbsPos-seventh), aspectRadius)
		pc.line(from, to, pal.color(a.Color, paper0), 1)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pc.points(c.active, seventh, c.config.points, c.minSeparation, pal, paper0)
	if dual {
		pc.points(c.secondActive, seventh, transitRing, c.minSeparation, pal, paper0)
	}

	final := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(final, final.Bounds(), pc.img, pc.img.Bounds(), draw.Over, nil)

	if err := png.Encode(w, final); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// MakeWheelPNG writes the wheel preview next to the SVG output and returns its path
func (c *Chart) MakeWheelPNG(ctx context.Context, size int) (string, error) {
	var buf bytes.Buffer
	if err := c.RenderPNG(ctx, &buf, size); err != nil {
		return "", err
	}

	name := strings.TrimSuffix(c.FileName(VariantWheelOnly), ".svg") + ".png"
	path := filepath.Join(c.outputDir, name)
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	c.logger.Info("chart preview written", "path", path, "size", size)
	return path, nil
}

// fillWheel paints the background and the zodiac band
func (pc *pngCanvas) fillWheel(bg color.RGBA, seventh, outer, inner float64, signs []color.RGBA) {
	draw.Draw(pc.img, pc.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	offset := 360 - seventh
	b := pc.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := float64(y)/pc.scale - pngMargin - MainRadius
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x)/pc.scale - pngMargin - MainRadius
			d := math.Hypot(dx, dy)
			if d > outer || d < inner {
				continue
			}
			angle := math.Atan2(-dy, dx) * 180 / math.Pi
			idx := int(NormalizeDegree(angle-offset)/30) % 12
			pc.img.SetRGBA(x, y, signs[idx])
		}
	}
}

func (pc *pngCanvas) points(points []ActivePoint, seventh float64, layout RingLayout, minSep float64, pal *palette, fallback color.RGBA) {
	placed := PlaceGlyphs(glyphAngles(points, seventh), minSep, DefaultMaxPasses)
	for i, p := range placed {
		setting := points[i].Setting
		col := pal.color(setting.Color, fallback)
		pc.line(PolarPoint(p.TrueAngle, MainRadius-layout.ReferenceInset), PolarPoint(p.DisplayAngle, MainRadius-layout.StemInset), col, 1)
		pc.text(pointLabel(setting.Name), PolarPoint(p.DisplayAngle, MainRadius-layout.GlyphInset), col)
	}
}

// pointLabel abbreviates a point name to fit the glyph slot
func pointLabel(name string) string {
	parts := strings.Split(name, "_")
	if len(parts) > 1 {
		var label string
		for _, part := range parts {
			if part != "" {
				label += part[:1]
			}
		}
		return label
	}
	if len(name) > 2 {
		return name[:2]
	}
	return name
}

func (pc *pngCanvas) circle(r float64, col color.RGBA, thickness float64) {
	const steps = 360
	prev := PolarPoint(0, r)
	for i := 1; i <= steps; i++ {
		next := PolarPoint(float64(i)*360/steps, r)
		pc.line(prev, next, col, thickness)
		prev = next
	}
}

func (pc *pngCanvas) line(from, to Point, col color.RGBA, thickness float64) {
	drawLine(pc.img, pc.toPixel(from.X), pc.toPixel(from.Y), pc.toPixel(to.X), pc.toPixel(to.Y), col,
		int(math.Max(1, thickness*pc.scale)))
}

// text draws text centered on p
func (pc *pngCanvas) text(s string, p Point, col color.RGBA) {
	d := &font.Drawer{
		Dst:  pc.img,
		Src:  image.NewUniform(col),
		Face: pc.face,
	}
	width := d.MeasureString(s)
	height := pc.face.Metrics().Ascent
	d.Dot = fixed.Point26_6{
		X: fixed.I(pc.toPixel(p.X)) - width/2,
		Y: fixed.I(pc.toPixel(p.Y)) + height/2,
	}
	d.DrawString(s)
}

// drawLine draws a line between two points using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := -1
	if x1 < x2 {
		sx = 1
	}
	sy := -1
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		for dt := -thickness / 2; dt <= thickness/2; dt++ {
			setPixel(img, x1+dt, y1, col)
			setPixel(img, x1, y1+dt, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// setPixel sets a pixel with bounds checking
func setPixel(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
