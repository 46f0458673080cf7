// Package renderer draws astrological charts as SVG documents. It supports natal, external
// natal, transit, synastry and composite layouts, theming through CSS variables, and a PNG
// preview of the wheel.
package renderer

import (
	"context"
	"fmt"
)

// RenderOptions select what RenderChart writes
type RenderOptions struct {
	Variants  []string // "full", "wheel_only", "aspect_grid_only"
	Minify    bool
	InlineCSS bool
	PNG       bool
	PNGSize   int
}

// RenderResult lists the files written by RenderChart, keyed by variant
type RenderResult struct {
	Files   map[string]string
	PNGPath string
}

// RenderChart writes the requested variants of a chart to its output directory.
// It respects the provided context for cancellation.
func RenderChart(ctx context.Context, c *Chart, opts RenderOptions) (*RenderResult, error) {
	variants := opts.Variants
	if len(variants) == 0 {
		variants = []string{VariantFull}
	}

	result := &RenderResult{Files: make(map[string]string, len(variants))}
	for _, variant := range variants {
		path, err := c.writeVariant(ctx, variant, opts.Minify, opts.InlineCSS)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s variant: %w", variant, err)
		}
		result.Files[variant] = path
	}

	if opts.PNG {
		path, err := c.MakeWheelPNG(ctx, opts.PNGSize)
		if err != nil {
			return nil, fmt.Errorf("failed to render PNG preview: %w", err)
		}
		result.PNGPath = path
	}
	return result, nil
}
