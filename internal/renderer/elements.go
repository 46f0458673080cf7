package renderer

import (
	"math"

	"github.com/ankek/terraform-provider-astrochart/internal/model"
	"github.com/ankek/terraform-provider-astrochart/internal/settings"
)

// PlanetInZodiacExtraPoints is added to a point's weight when it sits in one of its related signs
const PlanetInZodiacExtraPoints = 10

// ActivePoint pairs a subject's computed point with its render settings
type ActivePoint struct {
	Setting settings.PointSetting
	Point   model.Point
}

// ElementTotals are the raw element scores of a chart
type ElementTotals struct {
	Fire  float64
	Earth float64
	Air   float64
	Water float64
}

// ElementPercentages are the rounded shares of each element
type ElementPercentages struct {
	Fire  int
	Earth int
	Air   int
	Water int
}

// CalculateElements scores the active points by the element of the sign each one occupies
func CalculateElements(points []ActivePoint) ElementTotals {
	var totals ElementTotals
	for _, ap := range points {
		weight := ap.Setting.ElementPoints
		for _, sign := range ap.Setting.RelatedZodiacSigns {
			if sign == ap.Point.SignNum {
				weight += PlanetInZodiacExtraPoints
				break
			}
		}

		switch model.SignElement(ap.Point.SignNum) {
		case model.ElementFire:
			totals.Fire += weight
		case model.ElementEarth:
			totals.Earth += weight
		case model.ElementAir:
			totals.Air += weight
		case model.ElementWater:
			totals.Water += weight
		}
	}
	return totals
}

// Total returns the sum of the four scores
func (e ElementTotals) Total() float64 {
	return e.Fire + e.Earth + e.Air + e.Water
}

// Percentages rounds each share half to even. The four values need not sum to 100.
// A zero total yields zero for every element.
func (e ElementTotals) Percentages() ElementPercentages {
	total := e.Total()
	if total <= 0 {
		return ElementPercentages{}
	}
	pct := func(v float64) int {
		return int(math.RoundToEven(100 * v / total))
	}
	return ElementPercentages{
		Fire:  pct(e.Fire),
		Earth: pct(e.Earth),
		Air:   pct(e.Air),
		Water: pct(e.Water),
	}
}
