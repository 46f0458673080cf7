// Package renderer lays out astrological charts on concentric rings and renders them as SVG.
// A Chart is built once from a subject and its options; every render is deterministic.
package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-homedir"

	"github.com/ankek/terraform-provider-astrochart/internal/graph"
	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

// ChartType selects the chart layout
type ChartType string

const (
	ChartNatal         ChartType = "Natal"
	ChartExternalNatal ChartType = "ExternalNatal"
	ChartTransit       ChartType = "Transit"
	ChartSynastry      ChartType = "Synastry"
	ChartComposite     ChartType = "Composite"
)

// Dual reports whether the chart draws a second subject in an outer ring
func (t ChartType) Dual() bool {
	return t == ChartTransit || t == ChartSynastry
}

// ChartTypes lists every supported chart type
func ChartTypes() []string {
	return []string{
		string(ChartNatal),
		string(ChartExternalNatal),
		string(ChartTransit),
		string(ChartSynastry),
		string(ChartComposite),
	}
}

// Aspect layouts of dual charts
const (
	AspectGridList  = "list"
	AspectGridTable = "table"
)

// AspectGridTypes lists the aspect layouts of dual charts
func AspectGridTypes() []string {
	return []string{AspectGridList, AspectGridTable}
}

var (
	ErrUnknownTheme             = settings.ErrUnknownTheme
	ErrSecondSubjectRequired    = errors.New("second subject required for transit and synastry charts")
	ErrCompositeSubjectRequired = errors.New("composite chart requires a composite subject")
	ErrNoActivePoints           = errors.New("no active points")
	ErrUnknownChartType         = errors.New("unknown chart type")
	ErrInvalidGeometry          = errors.New("invalid ring geometry")
)

// Chart dimensions and viewboxes
const (
	ChartHeight         = 550
	NatalChartWidth     = 820
	FullChartWidth      = 1200
	BasicChartViewbox   = "0 0 820 550.0"
	WideChartViewbox    = "0 0 1200 546.0"
	TransitTableViewbox = "0 0 960 546.0"
)

var (
	defaultGeometry       = RingGeometry{Main: MainRadius, First: 0, Second: 36, Third: 120}
	externalNatalGeometry = RingGeometry{Main: MainRadius, First: 56, Second: 92, Third: 112}
)

// typeConfig holds everything that varies by chart type
type typeConfig struct {
	geometry   RingGeometry
	points     RingLayout
	title      func(c *Chart) string
	bottomLeft func(c *Chart) [5]string
	topLeft    func(c *Chart) [6]string
}

var typeConfigs = map[ChartType]typeConfig{
	ChartNatal: {
		geometry:   defaultGeometry,
		points:     natalRing,
		title:      func(c *Chart) string { return c.subject.Name },
		bottomLeft: natalBottomLeft,
		topLeft:    natalTopLeft,
	},
	ChartExternalNatal: {
		geometry:   externalNatalGeometry,
		points:     externalNatalRing,
		title:      func(c *Chart) string { return c.subject.Name },
		bottomLeft: natalBottomLeft,
		topLeft:    natalTopLeft,
	},
	ChartTransit: {
		geometry: defaultGeometry,
		points:   dualRadixRing,
		title: func(c *Chart) string {
			return fmt.Sprintf("%s %d/%d/%d", c.lang.Get("transits", "Transits for"), c.second.Day, c.second.Month, c.second.Year)
		},
		bottomLeft: transitBottomLeft,
		topLeft:    natalTopLeft,
	},
	ChartSynastry: {
		geometry: defaultGeometry,
		points:   dualRadixRing,
		title: func(c *Chart) string {
			return fmt.Sprintf("%s %s %s", c.subject.Name, c.lang.Get("and_word", "&"), c.second.Name)
		},
		bottomLeft: natalBottomLeft,
		topLeft:    synastryTopLeft,
	},
	ChartComposite: {
		geometry:   defaultGeometry,
		points:     natalRing,
		title:      compositeSubjectName,
		bottomLeft: compositeBottomLeft,
		topLeft:    compositeTopLeft,
	},
}

// Options configure a chart
type Options struct {
	ChartType ChartType

	// Second is the transit or partner subject of a dual chart
	Second *model.Subject

	// Aspects are the precomputed aspects between active points
	Aspects []model.Aspect

	Settings       *settings.Settings
	Theme          string
	Language       string
	ActivePoints   []string
	ActiveAspects  []settings.ActiveAspect
	AspectGridType string

	// MinSeparation is the smallest gap in degrees between two point glyphs
	MinSeparation float64

	OutputDirectory string
	Logger          hclog.Logger
	Stdout          io.Writer
}

// Chart is a fully resolved chart, ready to render
type Chart struct {
	chartType ChartType
	config    typeConfig
	gridType  string

	subject   *model.Subject
	composite *model.CompositeSubject
	second    *model.Subject

	settings *settings.Settings
	lang     settings.Language
	theme    string
	themeCSS string

	active       []ActivePoint
	secondActive []ActivePoint
	aspects      []ColoredAspect
	graph        *graph.Graph
	elements     ElementTotals

	location string
	geoLat   float64
	geoLng   float64

	minSeparation float64
	outputDir     string
	logger        hclog.Logger
	stdout        io.Writer
}

// New resolves a chart for the given subject. Composite charts need a *model.CompositeSubject,
// dual charts need opts.Second.
func New(first model.ChartSubject, opts Options) (*Chart, error) {
	if first == nil || first.Base() == nil {
		return nil, fmt.Errorf("first subject cannot be nil")
	}

	chartType := opts.ChartType
	if chartType == "" {
		chartType = ChartNatal
	}
	cfg, ok := typeConfigs[chartType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChartType, chartType)
	}
	if err := cfg.geometry.Validate(); err != nil {
		return nil, err
	}

	c := &Chart{
		chartType:     chartType,
		config:        cfg,
		gridType:      opts.AspectGridType,
		subject:       first.Base(),
		second:        opts.Second,
		minSeparation: opts.MinSeparation,
		logger:        opts.Logger,
		stdout:        opts.Stdout,
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.minSeparation <= 0 {
		c.minSeparation = DefaultMinSeparation
	}
	switch c.gridType {
	case "":
		c.gridType = AspectGridList
	case AspectGridList, AspectGridTable:
	default:
		return nil, fmt.Errorf("unknown aspect grid type %q", c.gridType)
	}

	if chartType == ChartComposite {
		composite, ok := first.(*model.CompositeSubject)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrCompositeSubjectRequired, first)
		}
		c.composite = composite
	}
	if chartType.Dual() && c.second == nil {
		return nil, fmt.Errorf("%s chart: %w", chartType, ErrSecondSubjectRequired)
	}
	if len(c.subject.Houses) != 12 {
		return nil, fmt.Errorf("subject %q has %d houses, expected 12", c.subject.Name, len(c.subject.Houses))
	}
	if chartType.Dual() && len(c.second.Houses) != 12 {
		return nil, fmt.Errorf("subject %q has %d houses, expected 12", c.second.Name, len(c.second.Houses))
	}

	c.settings = opts.Settings
	if c.settings == nil {
		defaults, err := settings.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default settings: %w", err)
		}
		c.settings = defaults
	}

	lang, err := c.settings.Language(opts.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to select language: %w", err)
	}
	c.lang = lang

	c.theme = opts.Theme
	if c.theme == "" {
		c.theme = settings.DefaultTheme
	}
	css, err := settings.Theme(c.theme)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	c.themeCSS = css

	names := opts.ActivePoints
	if len(names) == 0 {
		names = settings.DefaultActivePoints
	}
	c.active = c.resolveActivePoints(c.subject, names)
	if len(c.active) == 0 {
		return nil, fmt.Errorf("subject %q: %w", c.subject.Name, ErrNoActivePoints)
	}
	if chartType.Dual() {
		c.secondActive = c.resolveActivePoints(c.second, names)
		if len(c.secondActive) == 0 {
			return nil, fmt.Errorf("subject %q: %w", c.second.Name, ErrNoActivePoints)
		}
	}

	activeAspects := opts.ActiveAspects
	if len(activeAspects) == 0 {
		activeAspects = settings.DefaultActiveAspects
	}
	c.aspects = c.filterAspects(opts.Aspects, activeAspects)
	plain := make([]model.Aspect, len(c.aspects))
	for i, a := range c.aspects {
		plain[i] = a.Aspect
	}
	c.graph = graph.BuildGraph(plain)

	c.elements = CalculateElements(c.active)

	switch chartType {
	case ChartTransit:
		c.location, c.geoLat, c.geoLng = c.second.City, c.second.Lat, c.second.Lng
	case ChartComposite:
		c.location = ""
		c.geoLat = (c.composite.FirstSubject.Lat + c.composite.SecondSubject.Lat) / 2
		c.geoLng = (c.composite.FirstSubject.Lng + c.composite.SecondSubject.Lng) / 2
	default:
		c.location, c.geoLat, c.geoLng = c.subject.City, c.subject.Lat, c.subject.Lng
	}

	c.outputDir = opts.OutputDirectory
	if c.outputDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		c.outputDir = home
	}

	c.logger.Debug("chart resolved",
		"type", chartType,
		"subject", c.subject.Name,
		"active_points", len(c.active),
		"aspects", len(c.aspects),
		"theme", c.theme)

	return c, nil
}

// resolveActivePoints returns the selected points of a subject in settings order
func (c *Chart) resolveActivePoints(subject *model.Subject, names []string) []ActivePoint {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
		if _, ok := c.settings.PointByName(n); !ok {
			c.logger.Warn("unknown active point", "name", n)
		}
	}

	var active []ActivePoint
	for _, setting := range c.settings.Points {
		if !selected[setting.Name] {
			continue
		}
		point, ok := subject.Point(setting.Name)
		if !ok {
			c.logger.Debug("subject has no position for active point, skipping", "subject", subject.Name, "point", setting.Name)
			continue
		}
		active = append(active, ActivePoint{Setting: setting, Point: point})
	}
	return active
}

// filterAspects keeps an aspect only when:
//  1. its kind is active
//  2. |orbit| is within the kind's orb, where an orb of 0 keeps every orbit
//  3. both of its points are active
//  4. its kind resolves to a colour in the settings
func (c *Chart) filterAspects(aspects []model.Aspect, activeAspects []settings.ActiveAspect) []ColoredAspect {
	orbs := make(map[string]float64, len(activeAspects))
	for _, a := range activeAspects {
		orbs[a.Name] = a.Orb
	}
	first := pointNames(c.active)
	second := first
	if c.chartType.Dual() {
		second = pointNames(c.secondActive)
	}

	var kept []ColoredAspect
	for _, a := range aspects {
		orb, ok := orbs[a.Kind]
		if !ok {
			c.logger.Debug("dropping inactive aspect", "kind", a.Kind, "p1", a.P1Name, "p2", a.P2Name)
			continue
		}
		if orb > 0 && math.Abs(a.Orbit) > orb {
			c.logger.Debug("dropping aspect outside orb", "kind", a.Kind, "orbit", a.Orbit, "orb", orb)
			continue
		}
		if !(first[a.P1Name] || second[a.P1Name]) || !(first[a.P2Name] || second[a.P2Name]) {
			c.logger.Debug("dropping aspect of inactive point", "p1", a.P1Name, "p2", a.P2Name)
			continue
		}
		color, ok := c.settings.AspectColor(a.Kind)
		if !ok {
			c.logger.Debug("dropping aspect without colour", "kind", a.Kind)
			continue
		}
		kept = append(kept, ColoredAspect{Aspect: a, Color: color})
	}
	return kept
}

func pointNames(points []ActivePoint) map[string]bool {
	names := make(map[string]bool, len(points))
	for _, p := range points {
		names[p.Setting.Name] = true
	}
	return names
}

// Type returns the chart type
func (c *Chart) Type() ChartType {
	return c.chartType
}

// Subject returns the primary subject
func (c *Chart) Subject() *model.Subject {
	return c.subject
}

// Elements returns the element totals of the primary subject's active points
func (c *Chart) Elements() ElementTotals {
	return c.elements
}

// ActivePoints returns the primary subject's active points in settings order
func (c *Chart) ActivePoints() []ActivePoint {
	return append([]ActivePoint(nil), c.active...)
}

// Aspects returns the aspects that will be drawn
func (c *Chart) Aspects() []ColoredAspect {
	return append([]ColoredAspect(nil), c.aspects...)
}

// OutputDirectory returns the directory chart files are written to
func (c *Chart) OutputDirectory() string {
	return c.outputDir
}

// Width returns the canvas width
func (c *Chart) Width() int {
	if c.chartType.Dual() {
		return FullChartWidth
	}
	return NatalChartWidth
}

// Viewbox returns the SVG viewbox of the full chart
func (c *Chart) Viewbox() string {
	switch {
	case !c.chartType.Dual():
		return BasicChartViewbox
	case c.chartType == ChartTransit && c.gridType == AspectGridTable:
		return TransitTableViewbox
	default:
		return WideChartViewbox
	}
}

// Title returns the chart title
func (c *Chart) Title() string {
	return c.config.title(c)
}

func compositeSubjectName(c *Chart) string {
	return fmt.Sprintf("%s %s %s", c.composite.FirstSubject.Name, c.lang.Get("and_word", "&"), c.composite.SecondSubject.Name)
}

// languageKey turns a display value into a language key, e.g. "Full Moon" becomes full_moon
func languageKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

func housesLine(c *Chart) string {
	system := c.lang.Get("houses_system_"+c.subject.HousesSystemIdentifier, c.subject.HousesSystemName)
	return fmt.Sprintf("%s %s", system, c.lang.Get("houses", "Houses"))
}

func zodiacLine(c *Chart) string {
	if c.subject.ZodiacType == model.ZodiacTropic {
		return fmt.Sprintf("%s: %s", c.lang.Get("zodiac", "Zodiac"), c.lang.Get("tropical", "Tropical"))
	}
	return fmt.Sprintf("%s: %s", c.lang.Get("ayanamsa", "Ayanamsa"), model.AyanamsaName(c.subject.SiderealMode))
}

func natalBottomLeft(c *Chart) [5]string {
	lunarPhase := c.lang.Get("lunar_phase", "Lunar Phase")
	phase := c.subject.LunarPhase
	return [5]string{
		housesLine(c),
		zodiacLine(c),
		fmt.Sprintf("%s %s: %d", lunarPhase, strings.ToLower(c.lang.Get("day", "Day")), phase.MoonPhase),
		fmt.Sprintf("%s: %s", lunarPhase, c.lang.Get(languageKey(phase.MoonPhaseName), phase.MoonPhaseName)),
		c.lang.Get(languageKey(c.subject.PerspectiveType), c.subject.PerspectiveType),
	}
}

func transitBottomLeft(c *Chart) [5]string {
	lunarPhase := c.lang.Get("lunar_phase", "Lunar Phase")
	phase := c.second.LunarPhase
	return [5]string{
		housesLine(c),
		zodiacLine(c),
		fmt.Sprintf("%s: %s %d", lunarPhase, c.lang.Get("day", "Day"), phase.MoonPhase),
		fmt.Sprintf("%s: %s", lunarPhase, phase.MoonPhaseName),
		c.lang.Get(languageKey(c.second.PerspectiveType), c.second.PerspectiveType),
	}
}

func compositeBottomLeft(c *Chart) [5]string {
	return [5]string{
		housesLine(c),
		zodiacLine(c),
		c.composite.FirstSubject.PerspectiveType,
		fmt.Sprintf("%s - %s", c.lang.Get("composite_chart", "Composite Chart"), c.lang.Get("midpoints", "Midpoints")),
		"",
	}
}

// truncateLocation shortens long locations to "first, last", capped at 35 characters.
// Each part is trimmed, so "A, B, C" becomes "A, C" with a single space and the cap
// is measured on the trimmed text.
func truncateLocation(location string) string {
	const limit = 35
	if len([]rune(location)) <= limit {
		return location
	}
	parts := strings.Split(location, ",")
	if len(parts) > 1 {
		short := strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[len(parts)-1])
		if runes := []rune(short); len(runes) > limit {
			return string(runes[:limit]) + "..."
		}
		return short
	}
	return string([]rune(location)[:limit]) + "..."
}

// dateLine formats the subject's local time as 2006-01-02 15:04 [+01:00]
func dateLine(s *model.Subject) string {
	t, err := s.LocalTime()
	if err != nil {
		return fmt.Sprintf("%d-%02d-%02d %02d:%02d", s.Year, s.Month, s.Day, s.Hour, s.Minute)
	}
	return t.Format("2006-01-02 15:04 [-07:00]")
}

// shortDateLine formats the subject's local time as 2006-01-02 15:04
func shortDateLine(s *model.Subject) string {
	t, err := s.LocalTime()
	if err != nil {
		return fmt.Sprintf("%d-%02d-%02d %02d:%02d", s.Year, s.Month, s.Day, s.Hour, s.Minute)
	}
	return t.Format("2006-01-02 15:04")
}

func natalTopLeft(c *Chart) [6]string {
	first := fmt.Sprintf("%s:", c.lang.Get("info", "Info"))
	if c.chartType.Dual() {
		first = fmt.Sprintf("%s:", c.subject.Name)
	}
	return [6]string{
		first,
		truncateLocation(c.location),
		dateLine(c.subject),
		fmt.Sprintf("%s: %s", c.lang.Get("latitude", "Latitude"),
			LatitudeString(c.geoLat, c.lang.Get("north", "North"), c.lang.Get("south", "South"))),
		fmt.Sprintf("%s: %s", c.lang.Get("longitude", "Longitude"),
			LongitudeString(c.geoLng, c.lang.Get("east", "East"), c.lang.Get("west", "West"))),
		fmt.Sprintf("%s: %s", c.lang.Get("type", "Type"), c.lang.Get(string(c.chartType), string(c.chartType))),
	}
}

func synastryTopLeft(c *Chart) [6]string {
	s := c.second
	return [6]string{
		fmt.Sprintf("%s:", c.subject.Name),
		truncateLocation(c.location),
		dateLine(c.subject),
		fmt.Sprintf("%s: ", s.Name),
		s.City,
		fmt.Sprintf("%d-%d-%d %02d:%02d", s.Year, s.Month, s.Day, s.Hour, s.Minute),
	}
}

func compositeTopLeft(c *Chart) [6]string {
	first, second := &c.composite.FirstSubject, &c.composite.SecondSubject
	north, south := c.lang.Get("north_letter", "N"), c.lang.Get("south_letter", "S")
	east, west := c.lang.Get("east_letter", "E"), c.lang.Get("west_letter", "W")
	return [6]string{
		first.Name,
		shortDateLine(first),
		fmt.Sprintf("%s %s", LatitudeString(first.Lat, north, south), LongitudeString(first.Lng, east, west)),
		second.Name,
		shortDateLine(second),
		fmt.Sprintf("%s / %s", LatitudeString(second.Lat, north, south), LongitudeString(second.Lng, east, west)),
	}
}

// aspectDegree returns the orb symbol id of an aspect kind
func (c *Chart) aspectDegree(kind string) int {
	if a, ok := c.settings.Aspect(kind); ok {
		return a.Degree
	}
	return 0
}

// activeNames lists the active point names in settings order
func activeNames(points []ActivePoint) []string {
	names := make([]string, len(points))
	for i, p := range points {
		names[i] = p.Setting.Name
	}
	return names
}
