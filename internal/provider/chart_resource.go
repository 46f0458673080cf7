package provider

import (
	"context"
	"fmt"
	"os"

	"github.com/ankek/terraform-provider-astrochart/internal/renderer"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/hashicorp/terraform-plugin-framework-validators/float64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure provider defined types fully satisfy framework interfaces.
var _ resource.Resource = &ChartResource{}
var _ resource.ResourceWithConfigure = &ChartResource{}
var _ resource.ResourceWithImportState = &ChartResource{}

func NewChartResource() resource.Resource {
	return &ChartResource{
		generator: NewChartGenerator(nil),
	}
}

// ChartResource defines the resource implementation.
type ChartResource struct {
	generator *ChartGenerator
}

func (r *ChartResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_chart"
}

func (r *ChartResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		MarkdownDescription: "Renders an astrological chart from precomputed subject files and writes it as SVG.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Computed:            true,
				MarkdownDescription: "Resource identifier",
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"chart_type": schema.StringAttribute{
				MarkdownDescription: "Chart type: 'Natal', 'ExternalNatal', 'Transit', 'Synastry' or 'Composite'.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(renderer.ChartTypes()...),
				},
			},
			"subject_path": schema.StringAttribute{
				MarkdownDescription: "Path to the subject file (YAML or JSON). Composite charts take a file with first_subject and second_subject.",
				Required:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"second_subject_path": schema.StringAttribute{
				MarkdownDescription: "Path to the transit or partner subject file. Required for 'Transit' and 'Synastry'.",
				Optional:            true,
			},
			"aspects_path": schema.StringAttribute{
				MarkdownDescription: "Path to the precomputed aspect list. The chart has no aspects when omitted.",
				Optional:            true,
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
				MarkdownDescription: "Output format: 'svg' or 'png'. 'png' also writes a PNG preview of the wheel. Default is 'svg'.",
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
				},
			},
			"minify": schema.BoolAttribute{
				MarkdownDescription: "Strip comments and whitespace from the SVG. Default is false.",
				Optional:            true,
			},
			"inline_css": schema.BoolAttribute{
				MarkdownDescription: "Replace theme CSS variables with their values and drop the style block. Default is false.",
				Optional:            true,
			},
			"theme": schema.StringAttribute{
				MarkdownDescription: "Chart theme. Defaults to the provider theme, then 'classic'.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(settings.ThemeNames()...),
				},
			},
			"language": schema.StringAttribute{
				MarkdownDescription: "Chart language. Defaults to the provider language, then 'EN'.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(2),
				},
			},
			"active_points": schema.ListAttribute{
				MarkdownDescription: "Points drawn on the wheel, by settings name. Default is the ten planets, the lunar nodes, Chiron, Lilith, the Ascendant and the Medium Coeli.",
				ElementType:         types.StringType,
				Optional:            true,
				Validators: []validator.List{
					listvalidator.SizeAtLeast(1),
				},
			},
			"active_aspects": schema.MapAttribute{
				MarkdownDescription: "Aspects drawn, mapped to their maximum orb. An orb of 0 keeps every aspect of that kind.",
				ElementType:         types.Float64Type,
				Optional:            true,
			},
			"aspect_grid_type": schema.StringAttribute{
				MarkdownDescription: "Aspect grid layout of dual charts: 'list' or 'table'. Default is 'list'.",
				Optional:            true,
				Validators: []validator.String{
					stringvalidator.OneOf(renderer.AspectGridTypes()...),
				},
			},
			"min_separation": schema.Float64Attribute{
				MarkdownDescription: "Smallest gap in degrees between two point glyphs. Default is 6.",
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
				MarkdownDescription: "Path of the PNG preview when format is 'png'.",
				Computed:            true,
			},
			"svg": schema.StringAttribute{
				MarkdownDescription: "Content of the full chart document.",
				Computed:            true,
			},
			"elements": schema.MapAttribute{
				MarkdownDescription: "Element balance in percent: fire, earth, air, water.",
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

func (r *ChartResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured.
	if req.ProviderData == nil {
		return
	}

	data, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *provider.ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	r.generator = NewChartGenerator(data)
}

func (r *ChartResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	r.generate(ctx, &data, &resp.Diagnostics)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	files, diags := data.generatedFiles(ctx)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Check if every generated file still exists
	for _, file := range files {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			tflog.Info(ctx, "Chart file removed outside Terraform", map[string]interface{}{"path": file})
			resp.State.RemoveResource(ctx)
			return
		}
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.Plan.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Re-render the chart with updated configuration
	r.generate(ctx, &data, &resp.Diagnostics)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &data)...)
}

func (r *ChartResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var data ChartModel

	resp.Diagnostics.Append(req.State.Get(ctx, &data)...)
	if resp.Diagnostics.HasError() {
		return
	}

	files, diags := data.generatedFiles(ctx)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	for _, file := range files {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			resp.Diagnostics.AddWarning("Failed to remove chart file", err.Error())
			continue
		}
		tflog.Debug(ctx, "Removed chart file", map[string]interface{}{"path": file})
	}
}

func (r *ChartResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)
}

func (r *ChartResource) generate(ctx context.Context, data *ChartModel, diags *diag.Diagnostics) {
	cfg, d := data.chartConfig(ctx)
	diags.Append(d...)
	if diags.HasError() {
		return
	}

	result, err := r.generator.Generate(ctx, cfg)
	if err != nil {
		diags.AddError("Failed to generate chart", err.Error())
		return
	}

	diags.Append(data.applyResult(ctx, cfg, result)...)
}
