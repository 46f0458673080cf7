package renderer

import (
	"bytes"
	"math"
	"testing"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/stretchr/testify/require"
)

var testPointPositions = map[string]float64{
	"Sun":             196.5,
	"Moon":            312.2,
	"Mercury":         183.1,
	"Venus":           166.4,
	"Mars":            171.9,
	"Jupiter":         13.4,
	"Saturn":          19.7,
	"Uranus":          47.8,
	"Neptune":         175.2,
	"Pluto":           122.9,
	"Mean_Node":       175.0,
	"Chiron":          295.6,
	"Ascendant":       21.3,
	"Medium_Coeli":    288.6,
	"Mean_Lilith":     61.8,
	"Mean_South_Node": 355.0,
}

func testPoint(name string, abs float64) model.Point {
	abs = NormalizeDegree(abs)
	signNum := int(abs / 30)
	return model.Point{
		Name:     name,
		AbsPos:   abs,
		Position: math.Mod(abs, 30),
		Sign:     model.Signs[signNum].Abbr,
		SignNum:  signNum,
	}
}

// testSubject builds a subject whose points are shifted by shift degrees
func testSubject(name string, shift float64) *model.Subject {
	s := &model.Subject{
		Name:                   name,
		Year:                   1940,
		Month:                  10,
		Day:                    9,
		Hour:                   18,
		Minute:                 30,
		City:                   "Liverpool",
		Nation:                 "GB",
		Lat:                    53.4084,
		Lng:                    -2.9916,
		Timezone:               "Europe/London",
		ISOLocalDatetime:       "1940-10-09T18:30:00+01:00",
		ZodiacType:             model.ZodiacTropic,
		HousesSystemIdentifier: "P",
		HousesSystemName:       "Placidus",
		PerspectiveType:        "Apparent Geocentric",
		LunarPhase:             model.LunarPhase{DegreesBetweenSunMoon: 115.7, MoonPhase: 9},
	}
	for _, pn := range []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus",
		"Neptune", "Pluto", "Mean_Node", "Chiron", "Ascendant", "Medium_Coeli", "Mean_Lilith", "Mean_South_Node"} {
		s.Points = append(s.Points, testPoint(pn, testPointPositions[pn]+shift))
	}
	for i := 0; i < 12; i++ {
		h := testPoint("House", 21.3+shift+float64(i)*30)
		s.Houses = append(s.Houses, h)
	}
	return s
}

func testComposite() *model.CompositeSubject {
	return &model.CompositeSubject{
		Subject:       *testSubject("John and Yoko", 12),
		FirstSubject:  *testSubject("John", 0),
		SecondSubject: *testSubject("Yoko", 40),
	}
}

func testAspects() []model.Aspect {
	return []model.Aspect{
		{P1Name: "Sun", P1AbsPos: 196.5, P2Name: "Moon", P2AbsPos: 312.2, Kind: "trine", Orbit: -4.3, AspectDegrees: 120, P1: 0, P2: 1},
		{P1Name: "Sun", P1AbsPos: 196.5, P2Name: "Mercury", P2AbsPos: 183.1, Kind: "conjunction", Orbit: 13.4, AspectDegrees: 0, P1: 0, P2: 2},
		{P1Name: "Venus", P1AbsPos: 166.4, P2Name: "Mars", P2AbsPos: 171.9, Kind: "conjunction", Orbit: 5.5, AspectDegrees: 0, P1: 3, P2: 4},
		{P1Name: "Jupiter", P1AbsPos: 13.4, P2Name: "Pluto", P2AbsPos: 122.9, Kind: "square", Orbit: 19.5, AspectDegrees: 90, P1: 5, P2: 9},
		{P1Name: "Moon", P1AbsPos: 312.2, P2Name: "Uranus", P2AbsPos: 47.8, Kind: "square", Orbit: 4.4, AspectDegrees: 90, P1: 1, P2: 7},
		{P1Name: "Mars", P1AbsPos: 171.9, P2Name: "Saturn", P2AbsPos: 19.7, Kind: "quincunx", Orbit: 2.2, AspectDegrees: 150, P1: 4, P2: 6},
		{P1Name: "Sun", P1AbsPos: 196.5, P2Name: "Vertex", P2AbsPos: 90.0, Kind: "trine", Orbit: 1.0, AspectDegrees: 120, P1: 0, P2: 20},
	}
}

// newTestChart builds a chart of the given type writing into a temporary directory
func newTestChart(t *testing.T, chartType ChartType, opts Options) *Chart {
	t.Helper()

	var first model.ChartSubject = testSubject("John", 0)
	if chartType == ChartComposite {
		first = testComposite()
	}
	opts.ChartType = chartType
	if chartType.Dual() && opts.Second == nil {
		opts.Second = testSubject("Yoko", 40)
	}
	if opts.Aspects == nil {
		opts.Aspects = testAspects()
	}
	if opts.OutputDirectory == "" {
		opts.OutputDirectory = t.TempDir()
	}
	if opts.Stdout == nil {
		opts.Stdout = &bytes.Buffer{}
	}

	c, err := New(first, opts)
	require.NoError(t, err)
	return c
}
