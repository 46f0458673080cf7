package provider

import (
	"context"
	"fmt"

	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ datasource.DataSource = &ChartDataSource{}
var _ datasource.DataSourceWithConfigure = &ChartDataSource{}

// ChartDataSource defines the data source implementation.
type ChartDataSource struct {
	generator *ChartGenerator
}

func NewChartDataSource() datasource.DataSource {
	return &ChartDataSource{
		generator: NewChartGenerator(nil),
	}
}

func (d *ChartDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_chart"
}

func (d *ChartDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Reads precomputed subject files and renders an astrological chart.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Data source identifier",
			},
			"chart_type": schema.StringAttribute{
				MarkdownDescription: "Chart type: 'Natal', 'ExternalNatal', 'Transit', 'Synastry' or 'Composite'.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(renderer.ChartTypes()...),
				},
			},
			"subject_path": schema.StringAttribute{
				MarkdownDescription: "Path to the subject file (YAML or JSON).",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"second_subject_path": schema.StringAttribute{
				MarkdownDescription: "Path to the transit or partner subject file.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"aspects_path": schema.StringAttribute{
				MarkdownDescription: "Path to the precomputed aspect list.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"output_directory": schema.StringAttribute{
				MarkdownDescription: "Directory the chart files are written to. Default is the home directory.",
				Optional:            true,
			},
			"variants": schema.ListAttribute{
				MarkdownDescription: "Documents to write: 'full', 'wheel_only', 'aspect_grid_only'. Default is ['full'].",
				ElementType:         types.StringType,
				Optional:            true,
				Validators: []validator.List{
					listvalidator.UniqueValues(),
					listvalidator.ValueStringsAre(stringvalidator.OneOf(renderer.Variants()...)),
				},
			},
			"format": schema.StringAttribute{
				MarkdownDescription: "Output format: 'svg' or 'png'. Default is 'svg'.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(FormatSVG, FormatPNG),
				},
			},
			"png_size": schema.Int64Attribute{
				MarkdownDescription: "Edge length in pixels of the PNG preview, between 64 and 2048. Default is 800.",
				Optional:            true,
				Validators: []validator.Int64{
					int64validator.Between(64, renderer.MaxPNGSize),
					int64validator.AlsoRequires(path.MatchRoot("format")),
				},
			},
			"minify": schema.BoolAttribute{
				MarkdownDescription: "Strip comments and whitespace from the SVG. Default is false.",
				Optional:            true,
			},
			"inline_css": schema.BoolAttribute{
				MarkdownDescription: "Replace theme CSS variables with their values. Default is false.",
				Optional:            true,
			},
			"theme": schema.StringAttribute{
				MarkdownDescription: "Chart theme.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(settings.ThemeNames()...),
				},
			},
			"language": schema.StringAttribute{
				MarkdownDescription: "Chart language.",
				Optional:            true,
			},
			"active_points": schema.ListAttribute{
				MarkdownDescription: "Points drawn on the wheel, by settings name.",
				ElementType:         types.StringType,
				Optional:            true,
			},
			"active_aspects": schema.MapAttribute{
				MarkdownDescription: "Aspects drawn, mapped to their maximum orb.",
				ElementType:         types.Float64Type,
				Optional:            true,
			},
			"aspect_grid_type": schema.StringAttribute{
				MarkdownDescription: "Aspect grid layout of dual charts: 'list' or 'table'.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(renderer.AspectGridTypes()...),
				},
			},
			"min_separation": schema.Float64Attribute{
				MarkdownDescription: "Smallest gap in degrees between two point glyphs.",
				Optional:            true,
				Validators: []validator.Float64{
					float64validator.Between(0, 30),
				},
			},
			"title": schema.StringAttribute{
				MarkdownDescription: "Chart title.",
				Computed:            true,
			},
			"output_files": schema.MapAttribute{
				MarkdownDescription: "Written SVG files keyed by variant.",
				ElementType:         types.StringType,
				Computed:            true,
			},
			"png_path": schema.StringAttribute{
				MarkdownDescription: "Path of the PNG preview.",
				Computed:            true,
			},
			"svg": schema.StringAttribute{
				MarkdownDescription: "Content of the full chart document.",
				Computed:            true,
			},
			"elements": schema.MapAttribute{
				MarkdownDescription: "Element balance in percent.",
				ElementType:         types.Int64Type,
				Computed:            true,
			},
			"point_count": schema.Int64Attribute{
				MarkdownDescription: "Number of points drawn for the first subject.",
				Computed:            true,
			},
			"aspect_count": schema.Int64Attribute{
				MarkdownDescription: "Number of aspects drawn.",
				Computed:            true,
			},
		},
	}
}

func (d *ChartDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	data, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *provider.ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.generator = NewChartGenerator(data)
}

func (d *ChartDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	cfg, diags := data.chartConfig(ctx)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Use the generator to create the chart
	result, err := d.generator.Generate(ctx, cfg)
	if err != nil {
		resp.Diagnostics.AddError("Failed to generate chart", err.Error())
		return
	}

	resp.Diagnostics.Append(data.applyResult(ctx, cfg, result)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}
