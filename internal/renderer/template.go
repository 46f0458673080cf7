package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	chartTemplate          = "chart.svg.tmpl"
	wheelOnlyTemplate      = "wheel_only.svg.tmpl"
	aspectGridOnlyTemplate = "aspect_grid_only.svg.tmpl"
)

var templates = template.Must(template.New("").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"))

// execute renders the named template with the given slots
func execute(name string, slots *Slots) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, slots); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
