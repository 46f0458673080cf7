package renderer

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"#FF7200", color.RGBA{255, 114, 0, 255}, false},
		{"#0f0", color.RGBA{0, 255, 0, 255}, false},
		{"#00000080", color.RGBA{0, 0, 0, 128}, false},
		{" #123456 ", color.RGBA{0x12, 0x34, 0x56, 255}, false},
		{"red", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPaletteResolvesThemeVariables(t *testing.T) {
	pal, err := newPalette(":root { --ink: #ff0000; --accent: var(--ink); }")
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, pal.color("var(--accent)", pngBlack))
	assert.Equal(t, pngWhite, pal.color("var(--missing)", pngWhite))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, pal.color("#0000ff", pngWhite))
}

func TestBlendColor(t *testing.T) {
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, blendColor(pngWhite, pngBlack, 0.5))
	assert.Equal(t, pngWhite, blendColor(pngWhite, pngBlack, 2))
	assert.Equal(t, pngBlack, blendColor(pngWhite, pngBlack, -1))
}

func TestPointLabel(t *testing.T) {
	assert.Equal(t, "Su", pointLabel("Sun"))
	assert.Equal(t, "MC", pointLabel("Medium_Coeli"))
	assert.Equal(t, "MSN", pointLabel("Mean_South_Node"))
	assert.Equal(t, "X", pointLabel("X"))
}

func TestRenderPNG(t *testing.T) {
	for _, chartType := range []ChartType{ChartNatal, ChartSynastry} {
		t.Run(string(chartType), func(t *testing.T) {
			c := newTestChart(t, chartType, Options{})

			var buf bytes.Buffer
			require.NoError(t, c.RenderPNG(context.Background(), &buf, 120))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 120, img.Bounds().Dx())
			assert.Equal(t, 120, img.Bounds().Dy())

			// The corner is outside the wheel and keeps the paper colour
			r, g, b, _ := img.At(0, 0).RGBA()
			assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
		})
	}
}

func TestMakeWheelPNG(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})

	path, err := c.MakeWheelPNG(context.Background(), 64)
	require.NoError(t, err)
	assert.Contains(t, path, "John - Natal Chart - Wheel Only.png")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestRenderPNGCancelled(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.RenderPNG(ctx, &bytes.Buffer{}, 64), context.Canceled)
}

func TestRenderPNGRejectsOversize(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})

	var buf bytes.Buffer
	err := c.RenderPNG(context.Background(), &buf, MaxPNGSize+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the maximum")
	assert.Zero(t, buf.Len())
}

func TestSupersampleBoundsCanvas(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{64, 4},
		{DefaultPNGSize, 4},
		{1024, 4},
		{1025, 2},
		{MaxPNGSize, 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, supersample(tt.size), "size %d", tt.size)
		assert.LessOrEqual(t, tt.size*supersample(tt.size), 4096, "size %d", tt.size)
	}
}
