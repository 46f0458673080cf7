package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

var (
	johnPath      = filepath.Join("testdata", "john.yaml")
	yokoPath      = filepath.Join("testdata", "yoko.yaml")
	compositePath = filepath.Join("testdata", "composite.yaml")
	aspectsPath   = filepath.Join("testdata", "aspects.yaml")
)

func TestChartGenerator_Generate(t *testing.T) {
	// Create temporary directory for test outputs
	tmpDir := t.TempDir()

	// A regular file cannot hold an output directory
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	generator := NewChartGenerator(nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		config    ChartConfig
		wantFiles []string
		wantPNG   bool
		wantErr   error
		errText   string
	}{
		{
			name: "natal chart",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     johnPath,
				AspectsPath:     aspectsPath,
				OutputDirectory: filepath.Join(tmpDir, "natal"),
			},
			wantFiles: []string{"John - Natal Chart.svg"},
		},
		{
			name: "synastry chart with every variant",
			config: ChartConfig{
				ChartType:         "Synastry",
				SubjectPath:       johnPath,
				SecondSubjectPath: yokoPath,
				AspectsPath:       aspectsPath,
				OutputDirectory:   filepath.Join(tmpDir, "synastry"),
				Variants:          renderer.Variants(),
			},
			wantFiles: []string{
				"John - Synastry Chart.svg",
				"John - Synastry Chart - Wheel Only.svg",
				"John - Synastry Chart - Aspect Grid Only.svg",
			},
		},
		{
			name: "transit chart with png preview",
			config: ChartConfig{
				ChartType:         "Transit",
				SubjectPath:       johnPath,
				SecondSubjectPath: yokoPath,
				OutputDirectory:   filepath.Join(tmpDir, "transit"),
				Format:            FormatPNG,
				PNGSize:           200,
				AspectGridType:    renderer.AspectGridTable,
			},
			wantFiles: []string{"John - Transit Chart.svg"},
			wantPNG:   true,
		},
		{
			name: "composite chart",
			config: ChartConfig{
				ChartType:       "Composite",
				SubjectPath:     compositePath,
				OutputDirectory: filepath.Join(tmpDir, "composite"),
				Minify:          true,
				InlineCSS:       true,
			},
			wantFiles: []string{"John & Yoko - Composite Chart.svg"},
		},
		{
			name: "transit without second subject",
			config: ChartConfig{
				ChartType:       "Transit",
				SubjectPath:     johnPath,
				OutputDirectory: tmpDir,
			},
			wantErr: renderer.ErrSecondSubjectRequired,
		},
		{
			name: "composite from single subject",
			config: ChartConfig{
				ChartType:       "Composite",
				SubjectPath:     johnPath,
				OutputDirectory: tmpDir,
			},
			wantErr: renderer.ErrCompositeSubjectRequired,
		},
		{
			name: "missing subject",
			config: ChartConfig{
				ChartType:       "Natal",
				OutputDirectory: tmpDir,
			},
			errText: "subject_path must be provided",
		},
		{
			name: "non-existent subject file",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     filepath.Join(tmpDir, "nobody.yaml"),
				OutputDirectory: tmpDir,
			},
			errText: "invalid subject path",
		},
		{
			name: "invalid output directory",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     johnPath,
				OutputDirectory: filepath.Join(blocker, "charts"),
			},
			errText: "invalid output directory",
		},
		{
			name: "unknown format",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     johnPath,
				OutputDirectory: tmpDir,
				Format:          "pdf",
			},
			errText: "unknown output format",
		},
		{
			name: "png size above the maximum",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     johnPath,
				OutputDirectory: tmpDir,
				Format:          FormatPNG,
				PNGSize:         renderer.MaxPNGSize * 2,
			},
			errText: "exceeds the maximum",
		},
		{
			name: "unknown theme",
			config: ChartConfig{
				ChartType:       "Natal",
				SubjectPath:     johnPath,
				OutputDirectory: tmpDir,
				Theme:           "sepia",
			},
			wantErr: settings.ErrUnknownTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := generator.Generate(ctx, tt.config)

			if tt.wantErr != nil || tt.errText != "" {
				if err == nil {
					t.Fatal("Generate() expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if tt.errText != "" && !strings.Contains(err.Error(), tt.errText) {
					t.Errorf("Generate() error = %v, want it to contain %q", err, tt.errText)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate() unexpected error = %v", err)
			}

			if len(result.Files) != len(tt.wantFiles) {
				t.Errorf("Generate() wrote %d files, want %d", len(result.Files), len(tt.wantFiles))
			}
			for _, name := range tt.wantFiles {
				path := filepath.Join(tt.config.OutputDirectory, name)
				if _, err := os.Stat(path); err != nil {
					t.Errorf("Expected chart file %s: %v", path, err)
				}
			}

			if tt.wantPNG {
				if result.PNGPath == "" {
					t.Fatal("Expected a PNG preview path")
				}
				if _, err := os.Stat(result.PNGPath); err != nil {
					t.Errorf("Expected PNG preview %s: %v", result.PNGPath, err)
				}
			} else if result.PNGPath != "" {
				t.Errorf("Unexpected PNG preview %s", result.PNGPath)
			}

			if !strings.HasPrefix(result.SVG, "<svg") && !strings.HasPrefix(result.SVG, "<?xml") {
				t.Errorf("SVG content does not start with a document tag: %.40s", result.SVG)
			}
			if result.PointCount == 0 {
				t.Error("Expected active points")
			}
			for _, element := range []string{"fire", "earth", "air", "water"} {
				if _, ok := result.Elements[element]; !ok {
					t.Errorf("Missing element %s", element)
				}
			}
		})
	}
}

func TestChartGenerator_NatalFacts(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := NewChartGenerator(nil).Generate(context.Background(), ChartConfig{
		ChartType:       "Natal",
		SubjectPath:     johnPath,
		AspectsPath:     aspectsPath,
		OutputDirectory: tmpDir,
	})
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}

	if result.Title != "John" {
		t.Errorf("Title = %q, want %q", result.Title, "John")
	}
	if result.PointCount != 16 {
		t.Errorf("PointCount = %d, want 16", result.PointCount)
	}
	if result.AspectCount != 4 {
		t.Errorf("AspectCount = %d, want 4", result.AspectCount)
	}

	written, err := os.ReadFile(result.Files[renderer.VariantFull])
	if err != nil {
		t.Fatalf("Failed to read chart: %v", err)
	}
	if string(written) != result.SVG {
		t.Error("SVG content differs from the written full chart")
	}
}

func TestChartGenerator_ActiveSelection(t *testing.T) {
	tmpDir := t.TempDir()

	result, err := NewChartGenerator(nil).Generate(context.Background(), ChartConfig{
		ChartType:       "Natal",
		SubjectPath:     johnPath,
		AspectsPath:     aspectsPath,
		OutputDirectory: tmpDir,
		ActivePoints:    []string{"Sun", "Moon", "Uranus"},
		ActiveAspects:   []settings.ActiveAspect{{Name: "trine", Orb: 8}},
	})
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}

	if result.PointCount != 3 {
		t.Errorf("PointCount = %d, want 3", result.PointCount)
	}
	// Only Sun trine Moon has an active kind and two active points
	if result.AspectCount != 1 {
		t.Errorf("AspectCount = %d, want 1", result.AspectCount)
	}
}

func TestChartGenerator_ProviderDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	defaults, err := settings.Default()
	if err != nil {
		t.Fatalf("settings.Default() error = %v", err)
	}

	generator := NewChartGenerator(&ProviderData{
		Settings: defaults,
		Language: "IT",
		Theme:    settings.ThemeNone,
	})

	result, err := generator.Generate(context.Background(), ChartConfig{
		ChartType:         "Synastry",
		SubjectPath:       johnPath,
		SecondSubjectPath: yokoPath,
		OutputDirectory:   tmpDir,
	})
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}

	if result.Title != "John e Yoko" {
		t.Errorf("Title = %q, want %q", result.Title, "John e Yoko")
	}
	if strings.Contains(result.SVG, "<style") {
		t.Error("Expected no style block for the none theme")
	}

	// A chart setting overrides the provider default
	result, err = generator.Generate(context.Background(), ChartConfig{
		ChartType:         "Synastry",
		SubjectPath:       johnPath,
		SecondSubjectPath: yokoPath,
		OutputDirectory:   tmpDir,
		Language:          "EN",
	})
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	if result.Title != "John & Yoko" {
		t.Errorf("Title = %q, want %q", result.Title, "John & Yoko")
	}
}

func TestChartGenerator_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChartGenerator(nil).Generate(ctx, ChartConfig{
		ChartType:       "Natal",
		SubjectPath:     johnPath,
		OutputDirectory: t.TempDir(),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}
