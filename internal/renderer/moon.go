package renderer

import "fmt"

// MoonPhaseParams position the shadow circle of the lunar phase icon
type MoonPhaseParams struct {
	CircleCenterX float64
	CircleRadius  float64
	Rotate        float64
}

// CalculateMoonPhaseParams derives the icon from the sun/moon angle. The icon is rotated by
// the observer's latitude.
func CalculateMoonPhaseParams(degreesBetweenSunMoon, latitude float64) (MoonPhaseParams, error) {
	deg := degreesBetweenSunMoon
	var cx, radius float64

	switch {
	case deg < 0:
		return MoonPhaseParams{}, fmt.Errorf("invalid degrees between sun and moon: %v", deg)
	case deg < 90:
		maxRadius := deg
		if deg > 80 {
			maxRadius *= maxRadius
		}
		cx = 20 + deg/90*(maxRadius+10)
		radius = 10 + deg/90*maxRadius
	case deg < 180:
		maxRadius := 180 - deg
		if deg < 100 {
			maxRadius *= maxRadius
		}
		cx = 20 + (deg-90)/90*(maxRadius+10) - (maxRadius + 10)
		radius = 10 + maxRadius - (deg-90)/90*maxRadius
	case deg < 270:
		maxRadius := deg - 180
		if deg > 260 {
			maxRadius *= maxRadius
		}
		cx = 20 + (deg-180)/90*(maxRadius+10)
		radius = 10 + (deg-180)/90*maxRadius
	case deg < 361:
		maxRadius := 360 - deg
		if deg < 280 {
			maxRadius *= maxRadius
		}
		cx = 20 + (deg-270)/90*(maxRadius+10) - (maxRadius + 10)
		radius = 10 + maxRadius - (deg-270)/90*maxRadius
	default:
		return MoonPhaseParams{}, fmt.Errorf("invalid degrees between sun and moon: %v", deg)
	}

	return MoonPhaseParams{
		CircleCenterX: cx,
		CircleRadius:  radius,
		Rotate:        -90 - latitude,
	}, nil
}
