package settings

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-retryablehttp"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.hcl
var defaultsHCL []byte

var (
	defaultsOnce sync.Once
	defaults     *Settings
	defaultsErr  error
)

// Default returns a fresh copy of the built-in settings
func Default() (*Settings, error) {
	defaultsOnce.Do(func() {
		defaults, defaultsErr = ParseHCL(defaultsHCL, "defaults.hcl")
		if defaultsErr == nil {
			defaultsErr = defaults.Validate()
		}
	})
	if defaultsErr != nil {
		return nil, fmt.Errorf("failed to load built-in settings: %w", defaultsErr)
	}
	return Merge(defaults, nil), nil
}

// Source selects where user settings come from. Both fields empty means built-in settings only.
type Source struct {
	Path string
	URL  string
}

// Loader reads settings files and merges them over the built-in settings
type Loader struct {
	Logger     hclog.Logger
	HTTPClient *retryablehttp.Client
}

// NewLoader creates a loader whose HTTP client retries three times and logs through logger
func NewLoader(logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = logger

	return &Loader{
		Logger:     logger,
		HTTPClient: client,
	}
}

// Load returns the built-in settings with src merged on top, validated.
// It respects the provided context for cancellation.
func (l *Loader) Load(ctx context.Context, src Source) (*Settings, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if src.Path != "" && src.URL != "" {
		return nil, fmt.Errorf("settings path and settings URL are mutually exclusive")
	}

	base, err := Default()
	if err != nil {
		return nil, err
	}

	var override *Settings
	switch {
	case src.Path != "":
		l.logger().Debug("loading settings file", "path", src.Path)
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		override, err = Decode(data, formatFromName(src.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", src.Path, err)
		}
	case src.URL != "":
		l.logger().Debug("fetching remote settings", "url", src.URL)
		data, err := l.fetch(ctx, src.URL)
		if err != nil {
			return nil, err
		}
		override, err = Decode(data, formatFromName(src.URL))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", src.URL, err)
		}
	}

	merged := Merge(base, override)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return merged, nil
}

func (l *Loader) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.HTTPClient
	if client == nil {
		client = retryablehttp.NewClient()
		client.RetryMax = 3
		client.Logger = l.logger()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to fetch settings (status %d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// Format of a settings document
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatFromName(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl":
		return FormatHCL
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Decode parses a settings document. JSON is decoded by the YAML parser.
func Decode(data []byte, format Format) (*Settings, error) {
	switch format {
	case FormatHCL:
		return ParseHCL(data, "settings.hcl")
	case FormatYAML, FormatJSON:
		var s Settings
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse settings: %w", err)
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}
}
