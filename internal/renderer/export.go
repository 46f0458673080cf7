package renderer

import (
	"context"
	"fmt"
	"path/filepath"
)

// Output variants of a chart
const (
	VariantFull           = "full"
	VariantWheelOnly      = "wheel_only"
	VariantAspectGridOnly = "aspect_grid_only"
)

// Variants lists the supported output variants
func Variants() []string {
	return []string{VariantFull, VariantWheelOnly, VariantAspectGridOnly}
}

// MakeTemplate renders the full chart document
func (c *Chart) MakeTemplate(minify, inlineCSS bool) (string, error) {
	return c.render(chartTemplate, minify, inlineCSS, nil)
}

// MakeWheelOnlyTemplate renders the wheel without tables or text blocks
func (c *Chart) MakeWheelOnlyTemplate(minify, inlineCSS bool) (string, error) {
	return c.render(wheelOnlyTemplate, minify, inlineCSS, nil)
}

// MakeAspectGridOnlyTemplate renders the aspect grid on its own
func (c *Chart) MakeAspectGridOnlyTemplate(minify, inlineCSS bool) (string, error) {
	return c.render(aspectGridOnlyTemplate, minify, inlineCSS, func(s *Slots) {
		s.AspectGrid = c.aspectOnlyGrid()
	})
}

// MakeVariantTemplate renders one of the output variants
func (c *Chart) MakeVariantTemplate(variant string, minify, inlineCSS bool) (string, error) {
	switch variant {
	case VariantFull, "":
		return c.MakeTemplate(minify, inlineCSS)
	case VariantWheelOnly:
		return c.MakeWheelOnlyTemplate(minify, inlineCSS)
	case VariantAspectGridOnly:
		return c.MakeAspectGridOnlyTemplate(minify, inlineCSS)
	default:
		return "", fmt.Errorf("unknown output variant %q", variant)
	}
}

func (c *Chart) render(name string, minify, inlineCSS bool, adjust func(*Slots)) (string, error) {
	slots, err := c.buildSlots()
	if err != nil {
		return "", err
	}
	if adjust != nil {
		adjust(slots)
	}

	svg, err := execute(name, slots)
	if err != nil {
		return "", err
	}
	return postProcess(svg, c.themeCSS, minify, inlineCSS)
}

// FileName is the name of the file a variant is written to
func (c *Chart) FileName(variant string) string {
	name := c.subject.Name
	if c.chartType == ChartComposite {
		name = compositeSubjectName(c)
	}
	base := fmt.Sprintf("%s - %s Chart", name, c.chartType)
	switch variant {
	case VariantWheelOnly:
		base += " - Wheel Only"
	case VariantAspectGridOnly:
		base += " - Aspect Grid Only"
	}
	return base + ".svg"
}

// MakeSVG writes the full chart to the output directory and returns its path
func (c *Chart) MakeSVG(ctx context.Context, minify, inlineCSS bool) (string, error) {
	return c.writeVariant(ctx, VariantFull, minify, inlineCSS)
}

// MakeWheelOnlySVG writes the wheel only chart to the output directory and returns its path
func (c *Chart) MakeWheelOnlySVG(ctx context.Context, minify, inlineCSS bool) (string, error) {
	return c.writeVariant(ctx, VariantWheelOnly, minify, inlineCSS)
}

// MakeAspectGridOnlySVG writes the aspect grid to the output directory and returns its path
func (c *Chart) MakeAspectGridOnlySVG(ctx context.Context, minify, inlineCSS bool) (string, error) {
	return c.writeVariant(ctx, VariantAspectGridOnly, minify, inlineCSS)
}

func (c *Chart) writeVariant(ctx context.Context, variant string, minify, inlineCSS bool) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	svg, err := c.MakeVariantTemplate(variant, minify, inlineCSS)
	if err != nil {
		return "", fmt.Errorf("failed to generate SVG: %w", err)
	}

	path := filepath.Join(c.outputDir, c.FileName(variant))
	if err := writeFile(path, []byte(svg)); err != nil {
		return "", err
	}

	c.logger.Info("chart written", "path", path, "variant", variant, "bytes", len(svg))
	fmt.Fprintf(c.stdout, "SVG Generated Correctly in: %s\n", path)
	return path, nil
}
