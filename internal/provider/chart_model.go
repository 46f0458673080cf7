package provider

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// ChartModel describes the chart resource and data source data model.
type ChartModel struct {
	ID                types.String  `tfsdk:"id"`
	ChartType         types.String  `tfsdk:"chart_type"`
	SubjectPath       types.String  `tfsdk:"subject_path"`
	SecondSubjectPath types.String  `tfsdk:"second_subject_path"`
	AspectsPath       types.String  `tfsdk:"aspects_path"`
	OutputDirectory   types.String  `tfsdk:"output_directory"`
	Variants          types.List    `tfsdk:"variants"`
	Format            types.String  `tfsdk:"format"`
	PNGSize           types.Int64   `tfsdk:"png_size"`
	Minify            types.Bool    `tfsdk:"minify"`
	InlineCSS         types.Bool    `tfsdk:"inline_css"`
	Theme             types.String  `tfsdk:"theme"`
	Language          types.String  `tfsdk:"language"`
	ActivePoints      types.List    `tfsdk:"active_points"`
	ActiveAspects     types.Map     `tfsdk:"active_aspects"`
	AspectGridType    types.String  `tfsdk:"aspect_grid_type"`
	MinSeparation     types.Float64 `tfsdk:"min_separation"`

	Title       types.String `tfsdk:"title"`
	OutputFiles types.Map    `tfsdk:"output_files"`
	PNGPath     types.String `tfsdk:"png_path"`
	SVG         types.String `tfsdk:"svg"`
	Elements    types.Map    `tfsdk:"elements"`
	PointCount  types.Int64  `tfsdk:"point_count"`
	AspectCount types.Int64  `tfsdk:"aspect_count"`
}

// chartConfig converts the model into a generator configuration
func (m *ChartModel) chartConfig(ctx context.Context) (ChartConfig, diag.Diagnostics) {
	var diags diag.Diagnostics

	cfg := ChartConfig{
		ChartType:         m.ChartType.ValueString(),
		SubjectPath:       m.SubjectPath.ValueString(),
		SecondSubjectPath: m.SecondSubjectPath.ValueString(),
		AspectsPath:       m.AspectsPath.ValueString(),
		OutputDirectory:   m.OutputDirectory.ValueString(),
		Format:            FormatSVG,
		PNGSize:           int(m.PNGSize.ValueInt64()),
		Minify:            m.Minify.ValueBool(),
		InlineCSS:         m.InlineCSS.ValueBool(),
		Theme:             m.Theme.ValueString(),
		Language:          m.Language.ValueString(),
		AspectGridType:    m.AspectGridType.ValueString(),
		MinSeparation:     m.MinSeparation.ValueFloat64(),
	}
	if !m.Format.IsNull() && m.Format.ValueString() != "" {
		cfg.Format = m.Format.ValueString()
	}

	if !m.Variants.IsNull() && !m.Variants.IsUnknown() {
		diags.Append(m.Variants.ElementsAs(ctx, &cfg.Variants, false)...)
	}
	if !m.ActivePoints.IsNull() && !m.ActivePoints.IsUnknown() {
		diags.Append(m.ActivePoints.ElementsAs(ctx, &cfg.ActivePoints, false)...)
	}
	if !m.ActiveAspects.IsNull() && !m.ActiveAspects.IsUnknown() {
		orbs := make(map[string]float64)
		diags.Append(m.ActiveAspects.ElementsAs(ctx, &orbs, false)...)
		cfg.ActiveAspects = activeAspects(orbs)
	}

	return cfg, diags
}

// applyResult stores the computed attributes of a generated chart
func (m *ChartModel) applyResult(ctx context.Context, cfg ChartConfig, result *GenerateResult) diag.Diagnostics {
	var diags diag.Diagnostics

	// A known id is carried over from state on update
	if m.ID.IsNull() || m.ID.IsUnknown() {
		m.ID = types.StringValue(chartID(cfg))
	}
	m.Title = types.StringValue(result.Title)
	m.SVG = types.StringValue(result.SVG)
	m.PointCount = types.Int64Value(result.PointCount)
	m.AspectCount = types.Int64Value(result.AspectCount)

	if result.PNGPath != "" {
		m.PNGPath = types.StringValue(result.PNGPath)
	} else {
		m.PNGPath = types.StringNull()
	}

	files, d := types.MapValueFrom(ctx, types.StringType, result.Files)
	diags.Append(d...)
	m.OutputFiles = files

	elements, d := types.MapValueFrom(ctx, types.Int64Type, result.Elements)
	diags.Append(d...)
	m.Elements = elements

	return diags
}

// generatedFiles lists every file recorded in state
func (m *ChartModel) generatedFiles(ctx context.Context) ([]string, diag.Diagnostics) {
	var diags diag.Diagnostics
	var paths []string

	if !m.OutputFiles.IsNull() && !m.OutputFiles.IsUnknown() {
		files := make(map[string]string)
		diags.Append(m.OutputFiles.ElementsAs(ctx, &files, false)...)
		for _, p := range files {
			paths = append(paths, p)
		}
	}
	if p := m.PNGPath.ValueString(); p != "" {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, diags
}

// activeAspects turns an aspect-to-orb map into a list in name order
func activeAspects(orbs map[string]float64) []settings.ActiveAspect {
	names := make([]string, 0, len(orbs))
	for name := range orbs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]settings.ActiveAspect, 0, len(names))
	for _, name := range names {
		out = append(out, settings.ActiveAspect{Name: name, Orb: orbs[name]})
	}
	return out
}

// chartID hashes the inputs that identify a chart
func chartID(cfg ChartConfig) string {
	key := strings.Join([]string{
		cfg.ChartType,
		cfg.SubjectPath,
		cfg.SecondSubjectPath,
		cfg.AspectsPath,
		cfg.OutputDirectory,
		strings.Join(cfg.Variants, ","),
		cfg.Format,
	}, "_")
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}
