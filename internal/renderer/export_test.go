package renderer

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellFormed decodes every token of an SVG document
func wellFormed(t *testing.T, svg string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestMakeTemplate(t *testing.T) {
	for _, chartType := range []ChartType{ChartNatal, ChartExternalNatal, ChartTransit, ChartSynastry, ChartComposite} {
		for _, gridType := range AspectGridTypes() {
			t.Run(string(chartType)+"/"+gridType, func(t *testing.T) {
				c := newTestChart(t, chartType, Options{AspectGridType: gridType})

				svg, err := c.MakeTemplate(false, false)
				require.NoError(t, err)
				wellFormed(t, svg)

				assert.True(t, strings.HasPrefix(svg, "<?xml"))
				assert.NotContains(t, svg, `"`)
				assert.Contains(t, svg, "viewBox='"+c.Viewbox()+"'")
				assert.Contains(t, svg, "<style>")
				assert.Contains(t, svg, "var(--astrochart-color-paper-0)")
				assert.Contains(t, svg, "ac:node='Wheel'")
				assert.Contains(t, svg, "<symbol id='Sun'>")
				assert.Contains(t, svg, "<symbol id='orb120'>")
				assert.Contains(t, svg, "<symbol id='Ari'>")
				assert.Contains(t, svg, "<title>"+strings.ReplaceAll(c.Title(), "&", "&amp;")+"</title>")
				assert.Equal(t, 12*(1+boolInt(chartType.Dual())), strings.Count(svg, "ac:node='HouseNumber'"))
			})
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestMakeTemplateIsDeterministic(t *testing.T) {
	c := newTestChart(t, ChartSynastry, Options{})

	first, err := c.MakeTemplate(true, true)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := c.MakeTemplate(true, true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMakeTemplateInlineCSS(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})

	svg, err := c.MakeTemplate(true, true)
	require.NoError(t, err)
	wellFormed(t, svg)

	assert.NotContains(t, svg, "<style")
	assert.NotContains(t, svg, "var(--")
	assert.NotContains(t, svg, "\n")
	assert.Contains(t, svg, "#ffffff")
}

func TestMakeTemplateThemeNone(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{Theme: "none"})

	svg, err := c.MakeTemplate(false, true)
	require.NoError(t, err)
	assert.NotContains(t, svg, "<style")
	assert.Contains(t, svg, "var(--astrochart-color-paper-0)")
}

func TestMakeWheelOnlyTemplate(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})

	svg, err := c.MakeWheelOnlyTemplate(false, false)
	require.NoError(t, err)
	wellFormed(t, svg)

	assert.Contains(t, svg, "ac:node='Wheel'")
	assert.NotContains(t, svg, "ac:node='PlanetGrid'")
	assert.NotContains(t, svg, "ac:node='LunarPhase'")
	assert.Contains(t, svg, "viewBox='90 40 500 500'")
}

func TestMakeAspectGridOnlyTemplate(t *testing.T) {
	for _, chartType := range []ChartType{ChartNatal, ChartTransit} {
		t.Run(string(chartType), func(t *testing.T) {
			c := newTestChart(t, chartType, Options{})

			svg, err := c.MakeAspectGridOnlyTemplate(false, false)
			require.NoError(t, err)
			wellFormed(t, svg)

			assert.Contains(t, svg, "ac:node='AspectGrid'")
			assert.Contains(t, svg, "AspectsGridRect")
			assert.NotContains(t, svg, "ac:node='Wheel'")
		})
	}
}

func TestMakeVariantTemplateUnknown(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})
	_, err := c.MakeVariantTemplate("poster", false, false)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	natal := newTestChart(t, ChartNatal, Options{})
	assert.Equal(t, "John - Natal Chart.svg", natal.FileName(VariantFull))
	assert.Equal(t, "John - Natal Chart - Wheel Only.svg", natal.FileName(VariantWheelOnly))
	assert.Equal(t, "John - Natal Chart - Aspect Grid Only.svg", natal.FileName(VariantAspectGridOnly))

	composite := newTestChart(t, ChartComposite, Options{})
	assert.Equal(t, "John & Yoko - Composite Chart.svg", composite.FileName(VariantFull))
}

func TestMakeSVG(t *testing.T) {
	var stdout bytes.Buffer
	dir := filepath.Join(t.TempDir(), "charts")
	c := newTestChart(t, ChartTransit, Options{OutputDirectory: dir, Stdout: &stdout})
	ctx := context.Background()

	makers := map[string]func(context.Context, bool, bool) (string, error){
		"John - Transit Chart.svg":                    c.MakeSVG,
		"John - Transit Chart - Wheel Only.svg":       c.MakeWheelOnlySVG,
		"John - Transit Chart - Aspect Grid Only.svg": c.MakeAspectGridOnlySVG,
	}
	for name, mk := range makers {
		path, err := mk(ctx, false, false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, name), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("<?xml")))
		assert.Contains(t, stdout.String(), "SVG Generated Correctly in: "+path)
	}
}

func TestMakeSVGCancelled(t *testing.T) {
	c := newTestChart(t, ChartNatal, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.MakeSVG(ctx, false, false)
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(c.OutputDirectory())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
