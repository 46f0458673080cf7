// Package settings holds the chart rendering configuration: celestial point and aspect
// definitions, chart colours, language strings and themes.
package settings

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// DefaultLanguage is used when no language is configured and as the fallback for missing keys
const DefaultLanguage = "EN"

// PointSetting describes how a celestial point is drawn and weighted
type PointSetting struct {
	ID                 int     `yaml:"id" json:"id"`
	Name               string  `yaml:"name" json:"name"`
	Color              string  `yaml:"color" json:"color"`
	ElementPoints      float64 `yaml:"element_points" json:"element_points"`
	RelatedZodiacSigns []int   `yaml:"related_zodiac_signs" json:"related_zodiac_signs"`
	Label              string  `yaml:"label" json:"label"`
	Glyph              string  `yaml:"glyph" json:"glyph"`
}

// AspectSetting describes an aspect kind
type AspectSetting struct {
	Name    string `yaml:"name" json:"name"`
	Degree  int    `yaml:"degree" json:"degree"`
	Color   string `yaml:"color" json:"color"`
	IsMajor bool   `yaml:"is_major" json:"is_major"`
	Glyph   string `yaml:"glyph" json:"glyph"`
}

// ActiveAspect is an aspect kind selected for a chart together with its orb
type ActiveAspect struct {
	Name string  `yaml:"name" json:"name"`
	Orb  float64 `yaml:"orb" json:"orb"`
}

// ChartColors are the structural colours of the wheel
type ChartColors struct {
	Paper0            string   `yaml:"paper_0" json:"paper_0"`
	Paper1            string   `yaml:"paper_1" json:"paper_1"`
	ZodiacBackground  []string `yaml:"zodiac_bg" json:"zodiac_bg"`
	ZodiacIcon        []string `yaml:"zodiac_icon" json:"zodiac_icon"`
	ZodiacRadixRing   []string `yaml:"zodiac_radix_ring" json:"zodiac_radix_ring"`
	ZodiacTransitRing []string `yaml:"zodiac_transit_ring" json:"zodiac_transit_ring"`
	HousesRadixLine   string   `yaml:"houses_radix_line" json:"houses_radix_line"`
	HousesTransitLine string   `yaml:"houses_transit_line" json:"houses_transit_line"`
	LunarPhase0       string   `yaml:"lunar_phase_0" json:"lunar_phase_0"`
	LunarPhase1       string   `yaml:"lunar_phase_1" json:"lunar_phase_1"`
}

// Language is a table of translated strings
type Language struct {
	Strings         map[string]string `yaml:"strings" json:"strings"`
	CelestialPoints map[string]string `yaml:"celestial_points" json:"celestial_points"`
}

// Get returns the translated string for key, or fallback when it is missing
func (l Language) Get(key, fallback string) string {
	if v, ok := l.Strings[key]; ok && v != "" {
		return v
	}
	return fallback
}

// PointName returns the display name of a celestial point
func (l Language) PointName(name string) string {
	if v, ok := l.CelestialPoints[name]; ok && v != "" {
		return v
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Settings is the complete, validated rendering configuration
type Settings struct {
	Points    []PointSetting      `yaml:"celestial_points" json:"celestial_points"`
	Aspects   []AspectSetting     `yaml:"aspects" json:"aspects"`
	Colors    ChartColors         `yaml:"chart_colors" json:"chart_colors"`
	Languages map[string]Language `yaml:"language_settings" json:"language_settings"`
}

// DefaultActivePoints is the point selection used when none is configured
var DefaultActivePoints = []string{
	"Sun",
	"Moon",
	"Mercury",
	"Venus",
	"Mars",
	"Jupiter",
	"Saturn",
	"Uranus",
	"Neptune",
	"Pluto",
	"Mean_Node",
	"Chiron",
	"Ascendant",
	"Medium_Coeli",
	"Mean_Lilith",
	"Mean_South_Node",
}

// DefaultActiveAspects is the aspect selection used when none is configured
var DefaultActiveAspects = []ActiveAspect{
	{Name: "conjunction", Orb: 10},
	{Name: "opposition", Orb: 10},
	{Name: "trine", Orb: 8},
	{Name: "sextile", Orb: 6},
	{Name: "square", Orb: 5},
	{Name: "quintile", Orb: 1},
}

// Language returns the strings for code merged over English. An empty code selects English.
func (s *Settings) Language(code string) (Language, error) {
	if code == "" {
		code = DefaultLanguage
	}
	lang, ok := s.Languages[code]
	if !ok {
		return Language{}, fmt.Errorf("unknown language %q", code)
	}
	if code == DefaultLanguage {
		return lang, nil
	}

	base := s.Languages[DefaultLanguage]
	merged := Language{
		Strings:         make(map[string]string, len(base.Strings)),
		CelestialPoints: make(map[string]string, len(base.CelestialPoints)),
	}
	for k, v := range base.Strings {
		merged.Strings[k] = v
	}
	for k, v := range base.CelestialPoints {
		merged.CelestialPoints[k] = v
	}
	for k, v := range lang.Strings {
		merged.Strings[k] = v
	}
	for k, v := range lang.CelestialPoints {
		merged.CelestialPoints[k] = v
	}
	return merged, nil
}

// LanguageCodes lists the configured language codes
func (s *Settings) LanguageCodes() []string {
	codes := make([]string, 0, len(s.Languages))
	for code := range s.Languages {
		codes = append(codes, code)
	}
	return codes
}

// PointByName finds a point setting by name
func (s *Settings) PointByName(name string) (PointSetting, bool) {
	for _, p := range s.Points {
		if p.Name == name {
			return p, true
		}
	}
	return PointSetting{}, false
}

// PointByID finds a point setting by id
func (s *Settings) PointByID(id int) (PointSetting, bool) {
	for _, p := range s.Points {
		if p.ID == id {
			return p, true
		}
	}
	return PointSetting{}, false
}

// Aspect finds an aspect setting by kind name
func (s *Settings) Aspect(name string) (AspectSetting, bool) {
	for _, a := range s.Aspects {
		if a.Name == name {
			return a, true
		}
	}
	return AspectSetting{}, false
}

// AspectColor returns the configured colour of an aspect kind
func (s *Settings) AspectColor(name string) (string, bool) {
	a, ok := s.Aspect(name)
	if !ok || a.Color == "" {
		return "", false
	}
	return a.Color, true
}

// Validate reports every structural problem of the settings
func (s *Settings) Validate() error {
	var result *multierror.Error

	if len(s.Points) == 0 {
		result = multierror.Append(result, fmt.Errorf("no celestial points configured"))
	}
	seenIDs := make(map[int]string)
	for _, p := range s.Points {
		if p.Name == "" {
			result = multierror.Append(result, fmt.Errorf("celestial point %d has no name", p.ID))
		}
		if other, ok := seenIDs[p.ID]; ok {
			result = multierror.Append(result, fmt.Errorf("celestial points %s and %s share id %d", other, p.Name, p.ID))
		}
		seenIDs[p.ID] = p.Name
		for _, sign := range p.RelatedZodiacSigns {
			if sign < 0 || sign > 11 {
				result = multierror.Append(result, fmt.Errorf("celestial point %s: related sign %d out of range", p.Name, sign))
			}
		}
	}

	for _, a := range s.Aspects {
		if a.Degree < 0 || a.Degree > 180 {
			result = multierror.Append(result, fmt.Errorf("aspect %s: degree %d out of range [0,180]", a.Name, a.Degree))
		}
	}

	colorLists := []struct {
		name string
		got  []string
		want int
	}{
		{"zodiac_bg", s.Colors.ZodiacBackground, 12},
		{"zodiac_icon", s.Colors.ZodiacIcon, 12},
		{"zodiac_radix_ring", s.Colors.ZodiacRadixRing, 3},
		{"zodiac_transit_ring", s.Colors.ZodiacTransitRing, 4},
	}
	for _, cl := range colorLists {
		if len(cl.got) != cl.want {
			result = multierror.Append(result, fmt.Errorf("chart_colors.%s has %d entries, expected %d", cl.name, len(cl.got), cl.want))
		}
	}

	if _, ok := s.Languages[DefaultLanguage]; !ok {
		result = multierror.Append(result, fmt.Errorf("language %s must be configured", DefaultLanguage))
	}

	return result.ErrorOrNil()
}

// Merge overlays override onto base. Points and aspects are matched by name,
// colours field by field and languages key by key.
func Merge(base, override *Settings) *Settings {
	out := &Settings{
		Points:    append([]PointSetting{}, base.Points...),
		Aspects:   append([]AspectSetting{}, base.Aspects...),
		Colors:    base.Colors,
		Languages: make(map[string]Language, len(base.Languages)),
	}
	if override == nil {
		for k, v := range base.Languages {
			out.Languages[k] = copyLanguage(v)
		}
		return out
	}

	for _, p := range override.Points {
		replaced := false
		for i := range out.Points {
			if out.Points[i].Name == p.Name {
				out.Points[i] = mergePoint(out.Points[i], p)
				replaced = true
				break
			}
		}
		if !replaced {
			out.Points = append(out.Points, p)
		}
	}

	for _, a := range override.Aspects {
		replaced := false
		for i := range out.Aspects {
			if out.Aspects[i].Name == a.Name {
				out.Aspects[i] = mergeAspect(out.Aspects[i], a)
				replaced = true
				break
			}
		}
		if !replaced {
			out.Aspects = append(out.Aspects, a)
		}
	}

	out.Colors = mergeColors(base.Colors, override.Colors)

	for code, lang := range base.Languages {
		out.Languages[code] = copyLanguage(lang)
	}
	for code, lang := range override.Languages {
		existing, ok := out.Languages[code]
		if !ok {
			out.Languages[code] = copyLanguage(lang)
			continue
		}
		for k, v := range lang.Strings {
			existing.Strings[k] = v
		}
		for k, v := range lang.CelestialPoints {
			existing.CelestialPoints[k] = v
		}
		out.Languages[code] = existing
	}

	return out
}

func mergePoint(base, o PointSetting) PointSetting {
	if o.Color != "" {
		base.Color = o.Color
	}
	if o.ElementPoints != 0 {
		base.ElementPoints = o.ElementPoints
	}
	if o.RelatedZodiacSigns != nil {
		base.RelatedZodiacSigns = o.RelatedZodiacSigns
	}
	if o.Label != "" {
		base.Label = o.Label
	}
	if o.Glyph != "" {
		base.Glyph = o.Glyph
	}
	return base
}

func mergeAspect(base, o AspectSetting) AspectSetting {
	if o.Degree != 0 {
		base.Degree = o.Degree
	}
	if o.Color != "" {
		base.Color = o.Color
	}
	if o.Glyph != "" {
		base.Glyph = o.Glyph
	}
	base.IsMajor = base.IsMajor || o.IsMajor
	return base
}

func mergeColors(base, o ChartColors) ChartColors {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	pickList := func(a, b []string) []string {
		if len(b) > 0 {
			return b
		}
		return a
	}
	return ChartColors{
		Paper0:            pick(base.Paper0, o.Paper0),
		Paper1:            pick(base.Paper1, o.Paper1),
		ZodiacBackground:  pickList(base.ZodiacBackground, o.ZodiacBackground),
		ZodiacIcon:        pickList(base.ZodiacIcon, o.ZodiacIcon),
		ZodiacRadixRing:   pickList(base.ZodiacRadixRing, o.ZodiacRadixRing),
		ZodiacTransitRing: pickList(base.ZodiacTransitRing, o.ZodiacTransitRing),
		HousesRadixLine:   pick(base.HousesRadixLine, o.HousesRadixLine),
		HousesTransitLine: pick(base.HousesTransitLine, o.HousesTransitLine),
		LunarPhase0:       pick(base.LunarPhase0, o.LunarPhase0),
		LunarPhase1:       pick(base.LunarPhase1, o.LunarPhase1),
	}
}

func copyLanguage(l Language) Language {
	out := Language{
		Strings:         make(map[string]string, len(l.Strings)),
		CelestialPoints: make(map[string]string, len(l.CelestialPoints)),
	}
	for k, v := range l.Strings {
		out.Strings[k] = v
	}
	for k, v := range l.CelestialPoints {
		out.CelestialPoints[k] = v
	}
	return out
}
