package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/hashicorp/go-hclog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "❌ FAIL: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	chartType    string
	subject      string
	second       string
	aspects      string
	outputDir    string
	theme        string
	language     string
	variants     string
	grid         string
	settingsPath string
	settingsURL  string
	minify       bool
	inlineCSS    bool
	png          bool
	pngSize      int
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("render_chart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.chartType, "type", string(renderer.ChartNatal), "chart type: "+strings.Join(renderer.ChartTypes(), ", "))
	fs.StringVar(&o.subject, "subject", "", "subject file (YAML or JSON)")
	fs.StringVar(&o.second, "second", "", "transit or partner subject file")
	fs.StringVar(&o.aspects, "aspects", "", "precomputed aspect list")
	fs.StringVar(&o.outputDir, "out", "", "output directory (default: home directory)")
	fs.StringVar(&o.theme, "theme", settings.DefaultTheme, "theme: "+strings.Join(settings.ThemeNames(), ", "))
	fs.StringVar(&o.language, "lang", settings.DefaultLanguage, "chart language")
	fs.StringVar(&o.variants, "variants", renderer.VariantFull, "comma separated variants: "+strings.Join(renderer.Variants(), ", "))
	fs.StringVar(&o.grid, "grid", renderer.AspectGridList, "aspect grid of dual charts: "+strings.Join(renderer.AspectGridTypes(), ", "))
	fs.StringVar(&o.settingsPath, "settings", "", "settings file merged over the built-in settings")
	fs.StringVar(&o.settingsURL, "settings-url", "", "settings URL merged over the built-in settings")
	fs.BoolVar(&o.minify, "minify", false, "minify the SVG output")
	fs.BoolVar(&o.inlineCSS, "inline-css", false, "inline theme CSS variables")
	fs.BoolVar(&o.png, "png", false, "also write a PNG preview of the wheel")
	fs.IntVar(&o.pngSize, "png-size", renderer.DefaultPNGSize, "PNG preview size in pixels")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.subject == "" {
		return nil, fmt.Errorf("-subject is required")
	}
	if o.pngSize < 1 || o.pngSize > renderer.MaxPNGSize {
		return nil, fmt.Errorf("-png-size must be between 1 and %d", renderer.MaxPNGSize)
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "render_chart",
		Level:  hclog.LevelFromString(os.Getenv("ASTROCHART_LOG")),
		Output: stderr,
	})

	loaded, err := settings.NewLoader(logger).Load(ctx, settings.Source{Path: o.settingsPath, URL: o.settingsURL})
	if err != nil {
		return err
	}

	first, err := model.LoadSubjectFile(ctx, o.subject)
	if err != nil {
		return err
	}

	var second *model.Subject
	if o.second != "" {
		s, err := model.LoadSubjectFile(ctx, o.second)
		if err != nil {
			return err
		}
		second = s.Base()
	}

	var aspects []model.Aspect
	if o.aspects != "" {
		if aspects, err = model.LoadAspectsFile(ctx, o.aspects); err != nil {
			return err
		}
	}

	chart, err := renderer.New(first, renderer.Options{
		ChartType:       renderer.ChartType(o.chartType),
		Second:          second,
		Aspects:         aspects,
		Settings:        loaded,
		Theme:           o.theme,
		Language:        o.language,
		AspectGridType:  o.grid,
		OutputDirectory: o.outputDir,
		Logger:          logger,
		Stdout:          stdout,
	})
	if err != nil {
		return err
	}

	result, err := renderer.RenderChart(ctx, chart, renderer.RenderOptions{
		Variants:  strings.Split(o.variants, ","),
		Minify:    o.minify,
		InlineCSS: o.inlineCSS,
		PNG:       o.png,
		PNGSize:   o.pngSize,
	})
	if err != nil {
		return err
	}

	pct := chart.Elements().Percentages()
	fmt.Fprintf(stdout, "✅ %s: %d points, %d aspects (fire %d%%, earth %d%%, air %d%%, water %d%%)\n",
		chart.Title(), len(chart.ActivePoints()), len(chart.Aspects()), pct.Fire, pct.Earth, pct.Air, pct.Water)
	if result.PNGPath != "" {
		fmt.Fprintf(stdout, "PNG preview: %s\n", result.PNGPath)
	}
	return nil
}
