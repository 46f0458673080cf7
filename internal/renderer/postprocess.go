package renderer

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

var (
	cssVarPattern   = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)\s*(?:,\s*([^()]*))?\)`)
	styleTagPattern = regexp.MustCompile(`(?s)\s*<style[^>]*>.*?</style>`)
	whitespace      = regexp.MustCompile(`\s+`)
)

// maxVarDepth bounds the resolution of variables defined in terms of other variables
const maxVarDepth = 10

// ThemeVariables returns the custom properties declared in a stylesheet
func ThemeVariables(stylesheet string) (map[string]string, error) {
	sheet, err := parser.Parse(stylesheet)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme stylesheet: %w", err)
	}
	vars := make(map[string]string)
	for _, rule := range sheet.Rules {
		collectVariables(rule, vars)
	}
	return vars, nil
}

func collectVariables(rule *css.Rule, vars map[string]string) {
	for _, nested := range rule.Rules {
		collectVariables(nested, vars)
	}
	for _, decl := range rule.Declarations {
		if strings.HasPrefix(decl.Property, "--") {
			vars[decl.Property] = strings.TrimSpace(decl.Value)
		}
	}
}

// resolveVariables replaces every var() reference in value. References without a
// definition fall back to their default, or stay as they are.
func resolveVariables(value string, vars map[string]string) string {
	for depth := 0; depth < maxVarDepth && strings.Contains(value, "var("); depth++ {
		next := cssVarPattern.ReplaceAllStringFunc(value, func(ref string) string {
			m := cssVarPattern.FindStringSubmatch(ref)
			if v, ok := vars[m[1]]; ok {
				return v
			}
			if m[2] != "" {
				return strings.TrimSpace(m[2])
			}
			return ref
		})
		if next == value {
			break
		}
		value = next
	}
	return value
}

// InlineCSSVariables substitutes the theme's custom properties into the document and drops
// its <style> blocks
func InlineCSSVariables(svg, stylesheet string) (string, error) {
	vars, err := ThemeVariables(stylesheet)
	if err != nil {
		return "", err
	}
	svg = styleTagPattern.ReplaceAllString(svg, "")
	return resolveVariables(svg, vars), nil
}

// Minify strips comments and insignificant whitespace from an SVG document
func Minify(svg string) (string, error) {
	var out bytes.Buffer
	l := xml.NewLexer(parse.NewInputString(svg))
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return "", fmt.Errorf("failed to minify SVG: %w", l.Err())
			}
			return out.String(), nil
		case xml.CommentToken:
		case xml.TextToken:
			text := whitespace.ReplaceAllString(string(data), " ")
			if strings.TrimSpace(text) != "" {
				out.WriteString(text)
			}
		case xml.AttributeToken:
			out.WriteByte(' ')
			out.Write(l.Text())
			if val := l.AttrVal(); val != nil {
				out.WriteByte('=')
				out.Write(val)
			}
		default:
			out.Write(data)
		}
	}
}

// postProcess applies the optional variable inlining and minification. Double quotes always
// become single quotes.
func postProcess(svg, stylesheet string, minify, inlineCSS bool) (string, error) {
	var err error
	if inlineCSS && stylesheet != "" {
		if svg, err = InlineCSSVariables(svg, stylesheet); err != nil {
			return "", err
		}
	}
	if !minify {
		return strings.ReplaceAll(svg, `"`, "'"), nil
	}

	if svg, err = Minify(svg); err != nil {
		return "", err
	}
	return strings.NewReplacer(`"`, "'", "\n", "", "\t", "", "    ", "", "  ", "").Replace(svg), nil
}
