package settings

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed themes/*.css
var themeFS embed.FS

// ThemeNone renders without a style block; colours then resolve only when inlined
const ThemeNone = "none"

// DefaultTheme is used when no theme is configured
const DefaultTheme = "classic"

// ErrUnknownTheme is returned for theme names with no embedded stylesheet
var ErrUnknownTheme = errors.New("unknown theme")

// Theme returns the CSS of a built-in theme. ThemeNone returns an empty stylesheet.
func Theme(name string) (string, error) {
	if name == "" {
		name = DefaultTheme
	}
	if name == ThemeNone {
		return "", nil
	}
	data, err := themeFS.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
	return string(data), nil
}

// ThemeNames lists the built-in themes, including ThemeNone
func ThemeNames() []string {
	entries, err := themeFS.ReadDir("themes")
	if err != nil {
		return []string{ThemeNone}
	}
	names := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".css"))
	}
	names = append(names, ThemeNone)
	sort.Strings(names)
	return names
}
