package renderer

import (
	"fmt"
	"html"
	"sort"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

// Canvas positions of the chart blocks
var (
	wheelOrigin = Point{X: 100, Y: 50}

	natalPlanetGridOrigin  = Point{X: 650, Y: 50}
	natalHouseGridOrigin   = Point{X: 730, Y: 50}
	natalAspectGridOrigin  = Point{X: 560, Y: 530}
	dualPlanetGridOrigin   = Point{X: 670, Y: 50}
	dualHouseGridOrigin    = Point{X: 950, Y: 50}
	dualSecondHouseOrigin  = Point{X: 1080, Y: 50}
	dualTableHouseOrigin   = Point{X: 860, Y: 300}
	dualTableSecondOrigin  = Point{X: 980, Y: 300}
	dualAspectListOrigin   = Point{X: 620, Y: 330}
	dualAspectTableOrigin  = Point{X: 614, Y: 524}
	aspectGridOnlyOrigin   = Point{X: 50, Y: 250}
	dualSecondColumnOffset = 170.0
)

// SignSymbol is the <symbol> of a zodiac sign
type SignSymbol struct {
	ID    string
	Glyph string
	Color string
}

// PointSymbol is the <symbol> of a celestial point
type PointSymbol struct {
	ID    string
	Glyph string
	Color string
}

// OrbSymbol is the <symbol> of an aspect kind, keyed by its degree
type OrbSymbol struct {
	Degree int
	Glyph  string
	Color  string
}

// Slots are the values substituted into the chart templates. Every text field is already
// escaped; every fragment field is SVG markup.
type Slots struct {
	ColorStyle  string
	ChartHeight int
	ChartWidth  int
	Viewbox     string

	WheelX       string
	WheelY       string
	WheelViewbox string

	TransitRing  string
	DegreeRing   string
	FirstCircle  string
	SecondCircle string
	ThirdCircle  string
	Zodiac       string
	Houses       string
	Planets      string
	Aspects      string
	AspectGrid   string
	HousesGrid   string
	PlanetGrid   string

	Title      string
	TopLeft    [6]string
	BottomLeft [5]string

	LunarPhaseRotate        string
	LunarPhaseCircleCenterX string
	LunarPhaseCircleRadius  string
	LunarPhaseColor0        string
	LunarPhaseColor1        string

	PaperColor0 string
	PaperColor1 string

	FireString  string
	EarthString string
	AirString   string
	WaterString string

	// AspectGridViewbox frames the standalone aspect grid
	AspectGridViewbox string

	Signs  []SignSymbol
	Points []PointSymbol
	Orbs   []OrbSymbol
}

// buildSlots lays out every fragment of the chart
func (c *Chart) buildSlots() (*Slots, error) {
	colors := c.settings.Colors
	g := c.config.geometry
	dual := c.chartType.Dual()
	seventh := c.subject.SeventhHouse().AbsPos

	s := &Slots{
		ColorStyle:  c.themeCSS,
		ChartHeight: ChartHeight,
		ChartWidth:  c.Width(),
		Viewbox:     c.Viewbox(),
		WheelX:      num(wheelOrigin.X),
		WheelY:      num(wheelOrigin.Y),
		PaperColor0: colors.Paper0,
		PaperColor1: colors.Paper1,
		Title:       html.EscapeString(c.Title()),
	}
	s.WheelViewbox = fmt.Sprintf("%s %s %s %s",
		num(wheelOrigin.X-10), num(wheelOrigin.Y-10), num(2*MainRadius+20), num(2*MainRadius+20))

	s.Zodiac = DrawZodiacSlices(g, dual, seventh, colors)
	if dual {
		s.TransitRing = DrawTransitRing(g.Main, colors.Paper1, colorAt(colors.ZodiacTransitRing, 3))
		s.DegreeRing = DrawTransitRingDegreeSteps(g.Main, seventh)
		s.FirstCircle = DrawFirstCircle(g, true, colorAt(colors.ZodiacTransitRing, 2))
		s.SecondCircle = DrawSecondCircle(g, true, colorAt(colors.ZodiacTransitRing, 1), colors.Paper1)
		s.ThirdCircle = DrawThirdCircle(g, true, colorAt(colors.ZodiacTransitRing, 0), colors.Paper1)
		s.Aspects = DrawAspectLines(g.Main, g.Main-160, c.aspects, seventh)
	} else {
		s.DegreeRing = DrawDegreeRing(g.Main, g.First, seventh, colors.Paper0)
		s.FirstCircle = DrawFirstCircle(g, false, colorAt(colors.ZodiacRadixRing, 2))
		s.SecondCircle = DrawSecondCircle(g, false, colorAt(colors.ZodiacRadixRing, 1), colors.Paper1)
		s.ThirdCircle = DrawThirdCircle(g, false, colorAt(colors.ZodiacRadixRing, 0), colors.Paper1)
		s.Aspects = DrawAspectLines(g.Main, g.Main-g.Third, c.aspects, seventh)
	}

	var secondHouses []model.Point
	if dual {
		secondHouses = c.second.Houses
	}
	houses, err := DrawHouseCusps(c.chartType, g, c.subject.Houses, secondHouses, c.cuspColors())
	if err != nil {
		return nil, fmt.Errorf("failed to draw house cusps: %w", err)
	}
	s.Houses = houses

	planets, placed := DrawPoints(c.active, seventh, c.config.points, c.minSeparation)
	c.logger.Trace("placed points", "subject", c.subject.Name, "count", len(placed), "min_gap", MinGap(placed))
	if dual {
		secondPlanets, secondPlaced := DrawPoints(c.secondActive, seventh, transitRing, c.minSeparation)
		c.logger.Trace("placed points", "subject", c.second.Name, "count", len(secondPlaced), "min_gap", MinGap(secondPlaced))
		planets += secondPlanets
	}
	s.Planets = planets

	names := activeNames(c.active)
	switch {
	case !dual:
		s.AspectGrid = DrawAspectGrid(colors.Paper0, names, c.graph, natalAspectGridOrigin.X, natalAspectGridOrigin.Y)
	case c.gridType == AspectGridTable:
		s.AspectGrid = DrawTransitAspectGrid(colors.Paper0, names, c.graph, dualAspectTableOrigin.X, dualAspectTableOrigin.Y)
	default:
		title := c.lang.Get("transit_aspects", "Transit Aspects")
		if c.chartType == ChartSynastry {
			title = c.lang.Get("couple_aspects", "Couple Aspects")
		}
		s.AspectGrid = DrawAspectList(dualAspectListOrigin, title, c.aspects, colors.Paper0, c.aspectDegree)
	}

	s.HousesGrid, s.PlanetGrid = c.drawGrids()

	for i, line := range c.config.topLeft(c) {
		s.TopLeft[i] = html.EscapeString(line)
	}
	for i, line := range c.config.bottomLeft(c) {
		s.BottomLeft[i] = html.EscapeString(line)
	}

	moon, err := CalculateMoonPhaseParams(c.subject.LunarPhase.DegreesBetweenSunMoon, c.geoLat)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate lunar phase: %w", err)
	}
	s.LunarPhaseRotate = num(moon.Rotate)
	s.LunarPhaseCircleCenterX = num(moon.CircleCenterX)
	s.LunarPhaseCircleRadius = num(moon.CircleRadius)
	s.LunarPhaseColor0 = colors.LunarPhase0
	s.LunarPhaseColor1 = colors.LunarPhase1

	pct := c.elements.Percentages()
	s.FireString = html.EscapeString(fmt.Sprintf("%s %d%%", c.lang.Get("fire", "Fire"), pct.Fire))
	s.EarthString = html.EscapeString(fmt.Sprintf("%s %d%%", c.lang.Get("earth", "Earth"), pct.Earth))
	s.AirString = html.EscapeString(fmt.Sprintf("%s %d%%", c.lang.Get("air", "Air"), pct.Air))
	s.WaterString = html.EscapeString(fmt.Sprintf("%s %d%%", c.lang.Get("water", "Water"), pct.Water))

	s.AspectGridViewbox = aspectGridViewbox(len(names))
	c.addSymbols(s)

	c.logger.Debug("slots assembled", "type", c.chartType, "viewbox", s.Viewbox, "aspects", len(c.aspects))
	return s, nil
}

// aspectOnlyGrid draws the aspect grid of the standalone aspect grid template
func (c *Chart) aspectOnlyGrid() string {
	names := activeNames(c.active)
	if c.chartType.Dual() {
		return DrawTransitAspectGrid(c.settings.Colors.Paper0, names, c.graph, aspectGridOnlyOrigin.X, aspectGridOnlyOrigin.Y)
	}
	return DrawAspectGrid(c.settings.Colors.Paper0, names, c.graph, aspectGridOnlyOrigin.X, aspectGridOnlyOrigin.Y)
}

// aspectGridViewbox frames a grid of n points drawn at the standalone origin
func aspectGridViewbox(n int) string {
	top := aspectGridOnlyOrigin.Y - float64(n+1)*gridBoxSize - 10
	if top > 0 {
		top = 0
	}
	width := aspectGridOnlyOrigin.X + float64(n+2)*gridBoxSize
	if width < 400 {
		width = 400
	}
	height := aspectGridOnlyOrigin.Y + 2*gridBoxSize - top
	return fmt.Sprintf("0 %s %s %s", num(top), num(width), num(height))
}

func (c *Chart) cuspColors() CuspColors {
	colorOf := func(name string) string {
		if p, ok := c.settings.PointByName(name); ok {
			return p.Color
		}
		return c.settings.Colors.HousesRadixLine
	}
	return CuspColors{
		Standard:    c.settings.Colors.HousesRadixLine,
		Transit:     c.settings.Colors.HousesTransitLine,
		Ascendant:   colorOf("Ascendant"),
		MediumCoeli: colorOf("Medium_Coeli"),
		Descendant:  colorOf("Descendant"),
		ImumCoeli:   colorOf("Imum_Coeli"),
	}
}

func (c *Chart) drawGrids() (string, string) {
	paper0 := c.settings.Colors.Paper0
	cusp := c.lang.Get("cusp", "Cusp")
	pointsFor := c.lang.Get("planets_and_house", "Points for")

	if !c.chartType.Dual() {
		name := c.subject.Name
		if c.chartType == ChartComposite {
			name = compositeSubjectName(c)
		}
		houses := DrawHouseGrid(natalHouseGridOrigin, c.subject.Houses, cusp, paper0)
		planets := DrawPlanetGrid(natalPlanetGridOrigin, []PlanetGridColumn{
			{Title: pointsFor + " " + name, Points: c.active},
		}, c.lang, paper0)
		return houses, planets
	}

	secondTitle := c.lang.Get("transit_name", "At the time of")
	if c.chartType == ChartSynastry {
		secondTitle = pointsFor + " " + c.second.Name
	}
	planets := DrawPlanetGrid(dualPlanetGridOrigin, []PlanetGridColumn{
		{Title: pointsFor + " " + c.subject.Name, Points: c.active},
		{Title: secondTitle, Offset: dualSecondColumnOffset, Points: c.secondActive},
	}, c.lang, paper0)

	first, second := dualHouseGridOrigin, dualSecondHouseOrigin
	if c.gridType == AspectGridTable {
		first, second = dualTableHouseOrigin, dualTableSecondOrigin
	}
	houses := DrawHouseGrid(first, c.subject.Houses, cusp, paper0)
	if c.chartType == ChartSynastry {
		houses += DrawHouseGrid(second, c.second.Houses, cusp, paper0)
	}
	return houses, planets
}

// addSymbols collects the <symbol> definitions shared by every template
func (c *Chart) addSymbols(s *Slots) {
	for i, sign := range model.Signs {
		s.Signs = append(s.Signs, SignSymbol{ID: sign.Abbr, Glyph: sign.Glyph, Color: colorAt(c.settings.Colors.ZodiacIcon, i)})
	}
	for _, p := range c.settings.Points {
		s.Points = append(s.Points, PointSymbol{ID: p.Name, Glyph: p.Glyph, Color: p.Color})
	}

	aspects := append([]settings.AspectSetting(nil), c.settings.Aspects...)
	sort.SliceStable(aspects, func(i, j int) bool { return aspects[i].Degree < aspects[j].Degree })
	seen := make(map[int]bool)
	for _, a := range aspects {
		if seen[a.Degree] {
			continue
		}
		seen[a.Degree] = true
		s.Orbs = append(s.Orbs, OrbSymbol{Degree: a.Degree, Glyph: a.Glyph, Color: a.Color})
	}
}
