package provider

import (
	"context"
	"os"

	"github.com/ankek/terraform-provider-astrochart/internal/settings"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// Ensure AstrochartProvider satisfies various provider interfaces.
var _ provider.Provider = &AstrochartProvider{}

// AstrochartProvider defines the provider implementation.
type AstrochartProvider struct {
	// version is set to the provider version on release, "dev" when the
	// provider is built and ran locally, and "test" when running acceptance
	// testing.
	version string
}

// AstrochartProviderModel describes the provider data model.
type AstrochartProviderModel struct {
	SettingsPath types.String `tfsdk:"settings_path"`
	SettingsURL  types.String `tfsdk:"settings_url"`
	Language     types.String `tfsdk:"language"`
	Theme        types.String `tfsdk:"theme"`
}

// ProviderData is handed to resources and data sources after Configure
type ProviderData struct {
	Settings *settings.Settings
	Language string
	Theme    string
	Logger   hclog.Logger
}

func (p *AstrochartProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "astrochart"
	resp.Version = p.version
}

func (p *AstrochartProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "The Astrochart provider renders astrological charts as SVG documents from precomputed subject positions.",
		Attributes: map[string]schema.Attribute{
			"settings_path": schema.StringAttribute{
				Description: "Path to a settings file (.hcl, .json, .yaml) merged over the built-in settings.",
				Optional:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
					stringvalidator.ConflictsWith(path.MatchRoot("settings_url")),
				},
			},
			"settings_url": schema.StringAttribute{
				Description: "URL of a settings file merged over the built-in settings. Fetched with retries.",
				Optional:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"language": schema.StringAttribute{
				Description: "Default chart language (EN, IT, ES or any language defined in the settings). Default is EN.",
				Optional:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(2),
				},
			},
			"theme": schema.StringAttribute{
				Description: "Default chart theme. Default is classic.",
				Optional:    true,
				Validators: []validator.String{
					stringvalidator.OneOf(settings.ThemeNames()...),
				},
			},
		},
	}
}

func (p *AstrochartProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var data AstrochartProviderModel

	resp.Diagnostics.Append(req.Config.Get(ctx, &data)...)

	if resp.Diagnostics.HasError() {
		return
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "astrochart",
		Level:      hclog.LevelFromString(os.Getenv("TF_LOG_PROVIDER")),
		Output:     os.Stderr,
		JSONFormat: true,
	})

	src := settings.Source{
		Path: data.SettingsPath.ValueString(),
		URL:  data.SettingsURL.ValueString(),
	}
	tflog.Debug(ctx, "Loading astrochart settings", map[string]interface{}{
		"settings_path": src.Path,
		"settings_url":  src.URL,
	})

	loaded, err := settings.NewLoader(logger).Load(ctx, src)
	if err != nil {
		resp.Diagnostics.AddError("Failed to load settings", err.Error())
		return
	}

	if lang := data.Language.ValueString(); lang != "" {
		if _, err := loaded.Language(lang); err != nil {
			resp.Diagnostics.AddAttributeError(path.Root("language"), "Unknown language", err.Error())
			return
		}
	}

	providerData := &ProviderData{
		Settings: loaded,
		Language: data.Language.ValueString(),
		Theme:    data.Theme.ValueString(),
		Logger:   logger,
	}

	// Make settings available to resources and data sources
	resp.DataSourceData = providerData
	resp.ResourceData = providerData
}

func (p *AstrochartProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewChartResource,
	}
}

func (p *AstrochartProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewChartDataSource,
	}
}

func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &AstrochartProvider{
			version: version,
		}
	}
}
