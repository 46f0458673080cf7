package settings

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
)

var settingsSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{
			Type:       "celestial_point",
			LabelNames: []string{"name"},
		},
		{
			Type:       "aspect",
			LabelNames: []string{"name"},
		},
		{
			Type: "chart_colors",
		},
		{
			Type:       "language",
			LabelNames: []string{"code"},
		},
	},
}

// evalContext exposes sign.<Abbr> as the zodiac sign index
func evalContext() *hcl.EvalContext {
	signs := make(map[string]cty.Value, len(model.Signs))
	for i, s := range model.Signs {
		signs[s.Abbr] = cty.NumberIntVal(int64(i))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"sign": cty.ObjectVal(signs),
		},
	}
}

// ParseHCL decodes a settings document written in HCL
func ParseHCL(data []byte, filename string) (*Settings, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}

	content, diags := file.Body.Content(settingsSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse body: %s", diags.Error())
	}

	ctx := evalContext()
	s := &Settings{Languages: make(map[string]Language)}
	var result *multierror.Error

	for _, block := range content.Blocks {
		attrs, err := blockAttributes(block.Body, ctx)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s block: %w", block.Type, err))
			continue
		}

		switch block.Type {
		case "celestial_point":
			r := &attrReader{block: "celestial_point " + block.Labels[0], attrs: attrs}
			s.Points = append(s.Points, PointSetting{
				ID:                 int(r.num("id")),
				Name:               block.Labels[0],
				Color:              r.str("color"),
				ElementPoints:      r.num("element_points"),
				RelatedZodiacSigns: r.ints("related_zodiac_signs"),
				Label:              r.str("label"),
				Glyph:              r.str("glyph"),
			})
			result = multierror.Append(result, r.errs...)
		case "aspect":
			r := &attrReader{block: "aspect " + block.Labels[0], attrs: attrs}
			s.Aspects = append(s.Aspects, AspectSetting{
				Name:    block.Labels[0],
				Degree:  int(r.num("degree")),
				Color:   r.str("color"),
				IsMajor: r.boolean("is_major"),
				Glyph:   r.str("glyph"),
			})
			result = multierror.Append(result, r.errs...)
		case "chart_colors":
			r := &attrReader{block: "chart_colors", attrs: attrs}
			s.Colors = ChartColors{
				Paper0:            r.str("paper_0"),
				Paper1:            r.str("paper_1"),
				ZodiacBackground:  r.strs("zodiac_bg"),
				ZodiacIcon:        r.strs("zodiac_icon"),
				ZodiacRadixRing:   r.strs("zodiac_radix_ring"),
				ZodiacTransitRing: r.strs("zodiac_transit_ring"),
				HousesRadixLine:   r.str("houses_radix_line"),
				HousesTransitLine: r.str("houses_transit_line"),
				LunarPhase0:       r.str("lunar_phase_0"),
				LunarPhase1:       r.str("lunar_phase_1"),
			}
			result = multierror.Append(result, r.errs...)
		case "language":
			r := &attrReader{block: "language " + block.Labels[0], attrs: attrs}
			s.Languages[block.Labels[0]] = Language{
				Strings:         r.strMap("strings"),
				CelestialPoints: r.strMap("celestial_points"),
			}
			result = multierror.Append(result, r.errs...)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// blockAttributes evaluates every attribute of a block body
func blockAttributes(body hcl.Body, ctx *hcl.EvalContext) (map[string]interface{}, error) {
	attrs := make(map[string]interface{})

	hclAttrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse attributes: %s", diags.Error())
	}

	for name, attr := range hclAttrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %s: %s", name, diags.Error())
		}
		attrs[name] = ctyToInterface(val)
	}

	return attrs, nil
}

// ctyToInterface converts a cty.Value to a native Go interface
func ctyToInterface(val cty.Value) interface{} {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f
	case cty.Bool:
		return val.True()
	}

	if val.Type().IsListType() || val.Type().IsTupleType() || val.Type().IsSetType() {
		list := make([]interface{}, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, v := it.Element()
			list = append(list, ctyToInterface(v))
		}
		return list
	}

	if val.Type().IsMapType() || val.Type().IsObjectType() {
		m := make(map[string]interface{})
		it := val.ElementIterator()
		for it.Next() {
			k, v := it.Element()
			m[k.AsString()] = ctyToInterface(v)
		}
		return m
	}

	return nil
}

// attrReader pulls typed values out of evaluated attributes, collecting type errors.
// Missing attributes decode to the zero value so partial override files stay valid.
type attrReader struct {
	block string
	attrs map[string]interface{}
	errs  []error
}

func (r *attrReader) fail(name, want string, got interface{}) {
	r.errs = append(r.errs, fmt.Errorf("%s: %s must be %s, got %T", r.block, name, want, got))
}

func (r *attrReader) str(name string) string {
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, "a string", v)
	}
	return s
}

func (r *attrReader) num(name string) float64 {
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		r.fail(name, "a number", v)
	}
	return f
}

func (r *attrReader) boolean(name string) bool {
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, "a bool", v)
	}
	return b
}

func (r *attrReader) list(name string) ([]interface{}, bool) {
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return nil, false
	}
	l, ok := v.([]interface{})
	if !ok {
		r.fail(name, "a list", v)
		return nil, false
	}
	return l, true
}

func (r *attrReader) ints(name string) []int {
	l, ok := r.list(name)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(l))
	for _, item := range l {
		f, ok := item.(float64)
		if !ok {
			r.fail(name, "a list of numbers", item)
			continue
		}
		out = append(out, int(f))
	}
	return out
}

func (r *attrReader) strs(name string) []string {
	l, ok := r.list(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		s, ok := item.(string)
		if !ok {
			r.fail(name, "a list of strings", item)
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *attrReader) strMap(name string) map[string]string {
	out := make(map[string]string)
	v, ok := r.attrs[name]
	if !ok || v == nil {
		return out
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		r.fail(name, "an object", v)
		return out
	}
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			r.fail(name+"."+k, "a string", item)
			continue
		}
		out[k] = s
	}
	return out
}
