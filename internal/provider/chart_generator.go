// Package provider implements the Terraform provider for astrological chart rendering.
// It provides both resource and data source implementations that turn precomputed
// subject files into SVG charts.
package provider

import (
	"context"
	"fmt"
	"io"

	"github.com/ankek/terraform-provider-astrochart/internal/interfaces"
	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/ankek/terraform-provider-astrochart/internal/validation"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Output formats. FormatPNG writes a PNG preview of the wheel next to the SVG files.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ChartConfig contains all configuration needed to generate a chart
type ChartConfig = interfaces.ChartConfig

// GenerateResult contains the results of chart generation
type GenerateResult = interfaces.GenerateResult

var _ interfaces.ChartGenerator = &ChartGenerator{}

// ChartGenerator handles the core logic of generating charts.
// It is shared between the resource and data source implementations.
type ChartGenerator struct {
	Loader    interfaces.SubjectLoader
	Validator interfaces.PathValidator
	Settings  *settings.Settings
	Logger    hclog.Logger

	// Defaults applied when a chart leaves them empty
	Language string
	Theme    string
}

// NewChartGenerator creates a generator reading files from disk. A nil data uses the
// built-in settings.
func NewChartGenerator(data *ProviderData) *ChartGenerator {
	g := &ChartGenerator{
		Loader:    model.FileLoader{},
		Validator: validation.Validator{},
		Logger:    hclog.NewNullLogger(),
	}
	if data != nil {
		g.Settings = data.Settings
		g.Language = data.Language
		g.Theme = data.Theme
		if data.Logger != nil {
			g.Logger = data.Logger
		}
	}
	return g
}

// Generate creates a chart from subject files.
//
// It performs the following steps:
//  1. Validates input and output paths
//  2. Loads the subjects and the aspect list
//  3. Resolves the chart against the settings
//  4. Writes the requested variants and the optional PNG preview
//
// Returns GenerateResult with the written files and chart facts, or an error if any step fails.
func (g *ChartGenerator) Generate(ctx context.Context, cfg ChartConfig) (*GenerateResult, error) {
	outputDir, err := ResolveOutputDirectory(cfg.OutputDirectory)
	if err != nil {
		return nil, err
	}
	if err := g.Validator.ValidateOutputDirectory(outputDir); err != nil {
		return nil, fmt.Errorf("invalid output directory: %w", err)
	}

	switch cfg.Format {
	case "", FormatSVG, FormatPNG:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	inputs, err := LoadInputs(ctx, g.Loader, g.Validator, cfg)
	if err != nil {
		return nil, err
	}

	// Subject names end up in the output file names
	names := []string{inputs.First.Base().Name}
	if composite, ok := inputs.First.(*model.CompositeSubject); ok {
		names = []string{composite.FirstSubject.Name, composite.SecondSubject.Name}
	}
	for _, name := range names {
		if err := g.Validator.ValidateFileName(name); err != nil {
			return nil, fmt.Errorf("invalid subject name: %w", err)
		}
	}

	opts := renderer.Options{
		ChartType:       renderer.ChartType(cfg.ChartType),
		Second:          inputs.Second,
		Aspects:         inputs.Aspects,
		Settings:        g.Settings,
		Theme:           firstNonEmpty(cfg.Theme, g.Theme),
		Language:        firstNonEmpty(cfg.Language, g.Language),
		ActivePoints:    cfg.ActivePoints,
		ActiveAspects:   cfg.ActiveAspects,
		AspectGridType:  cfg.AspectGridType,
		MinSeparation:   cfg.MinSeparation,
		OutputDirectory: outputDir,
		Logger:          g.Logger,
		// Plugin stdout belongs to the Terraform handshake
		Stdout: io.Discard,
	}

	chart, err := renderer.New(inputs.First, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}

	tflog.Debug(ctx, "Rendering chart", map[string]interface{}{
		"chart_type":    string(chart.Type()),
		"subject":       chart.Subject().Name,
		"active_points": len(chart.ActivePoints()),
		"aspects":       len(chart.Aspects()),
	})

	rendered, err := renderer.RenderChart(ctx, chart, renderer.RenderOptions{
		Variants:  cfg.Variants,
		Minify:    cfg.Minify,
		InlineCSS: cfg.InlineCSS,
		PNG:       cfg.Format == FormatPNG,
		PNGSize:   cfg.PNGSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	svg, err := chart.MakeTemplate(cfg.Minify, cfg.InlineCSS)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart content: %w", err)
	}

	pct := chart.Elements().Percentages()
	result := &GenerateResult{
		Title:       chart.Title(),
		Files:       rendered.Files,
		PNGPath:     rendered.PNGPath,
		SVG:         svg,
		PointCount:  int64(len(chart.ActivePoints())),
		AspectCount: int64(len(chart.Aspects())),
		Elements: map[string]int64{
			"fire":  int64(pct.Fire),
			"earth": int64(pct.Earth),
			"air":   int64(pct.Air),
			"water": int64(pct.Water),
		},
	}

	tflog.Info(ctx, "Chart generated", map[string]interface{}{
		"title": result.Title,
		"files": len(result.Files),
		"png":   result.PNGPath,
	})

	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
