// Package interfaces defines interfaces for dependency injection and testing
package interfaces

import (
	"context"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

// SubjectLoader reads precomputed subjects and aspect lists
type SubjectLoader interface {
	// LoadSubject reads a subject file; composite files yield a *model.CompositeSubject
	LoadSubject(ctx context.Context, path string) (model.ChartSubject, error)

	// LoadAspects reads an aspect list file
	LoadAspects(ctx context.Context, path string) ([]model.Aspect, error)
}

// SettingsLoader resolves the rendering settings
type SettingsLoader interface {
	// Load merges the settings from src over the built-in settings
	Load(ctx context.Context, src settings.Source) (*settings.Settings, error)
}

// PathValidator defines the interface for validating file paths
type PathValidator interface {
	// ValidateOutputDirectory checks that charts can be written to dir
	ValidateOutputDirectory(dir string) error

	// ValidateInputPath validates a subject, aspects or settings file
	ValidateInputPath(path string, mustBeDir bool) error

	// ValidateFileName checks a subject name used in output file names
	ValidateFileName(name string) error
}

// ChartGenerator defines the interface for generating charts
type ChartGenerator interface {
	// Generate renders a chart from subject files
	Generate(ctx context.Context, cfg ChartConfig) (*GenerateResult, error)
}

// ChartConfig contains all configuration needed to generate a chart
type ChartConfig struct {
	ChartType         string
	SubjectPath       string
	SecondSubjectPath string
	AspectsPath       string
	OutputDirectory   string

	Variants       []string
	Format         string
	PNGSize        int
	Minify         bool
	InlineCSS      bool
	Theme          string
	Language       string
	ActivePoints   []string
	ActiveAspects  []settings.ActiveAspect
	AspectGridType string
	MinSeparation  float64
}

// GenerateResult contains the results of chart generation
type GenerateResult struct {
	Title       string
	Files       map[string]string
	PNGPath     string
	SVG         string
	PointCount  int64
	AspectCount int64
	Elements    map[string]int64
}
