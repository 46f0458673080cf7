package renderer

import (
	"fmt"
	"math"
	"strconv"
)

// MainRadius is the outer radius of every chart wheel
const MainRadius = 240.0

// Point is a canvas coordinate
type Point struct {
	X float64
	Y float64
}

// SliceToX returns the x coordinate of a slice boundary on a circle of radius r.
// Slices are 30 degrees wide, offset rotates counter-clockwise in degrees.
func SliceToX(slice, r, offset float64) float64 {
	plus := math.Pi * offset / 180
	radial := math.Pi/6*slice + plus
	return r * (math.Cos(radial) + 1)
}

// SliceToY returns the y coordinate of a slice boundary on a circle of radius r
func SliceToY(slice, r, offset float64) float64 {
	plus := math.Pi * offset / 180
	radial := math.Pi/6*slice + plus
	return r * (-math.Sin(radial) + 1)
}

// PolarPoint returns the point at angle on a circle of radius r concentric with the wheel
func PolarPoint(angle, r float64) Point {
	inset := MainRadius - r
	return Point{
		X: SliceToX(0, r, angle) + inset,
		Y: SliceToY(0, r, angle) + inset,
	}
}

// DegreeDiff returns the smallest angle between a and b, in [0,180]
func DegreeDiff(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	return math.Min(diff, 360-diff)
}

// DegreeSum returns a+b normalized to [0,360)
func DegreeSum(a, b float64) float64 {
	return NormalizeDegree(a + b)
}

// NormalizeDegree maps an angle to [0,360)
func NormalizeDegree(angle float64) float64 {
	n := math.Mod(angle, 360)
	if n < 0 {
		n += 360
	}
	if n == 360 {
		return 0
	}
	return n
}

// num formats a coordinate with at most two decimals
func num(v float64) string {
	if v == 0 || math.Abs(v) < 0.005 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// Degree string formats
const (
	DegreeFormatDegrees = 1 // a°
	DegreeFormatMinutes = 2 // a°bb'
	DegreeFormatSeconds = 3 // a°bb'cc"
)

// DegreeString renders a decimal degree as degrees, minutes and seconds
func DegreeString(dec float64, format int) string {
	degrees := int(dec)
	minutes := int((dec - float64(degrees)) * 60)
	seconds := int(math.RoundToEven((dec - float64(degrees) - float64(minutes)/60) * 3600))

	switch format {
	case DegreeFormatDegrees:
		return fmt.Sprintf("%d°", degrees)
	case DegreeFormatMinutes:
		return fmt.Sprintf("%d°%02d'", degrees, minutes)
	default:
		return fmt.Sprintf("%d°%02d'%02d\"", degrees, minutes, seconds)
	}
}

// coordinateString renders a coordinate as d°m's" followed by the hemisphere label
func coordinateString(coord float64, positive, negative string) string {
	label := positive
	if coord < 0 {
		label = negative
		coord = math.Abs(coord)
	}
	deg := int(coord)
	mins := int((coord - float64(deg)) * 60)
	sec := int(math.RoundToEven(((coord-float64(deg))*60 - float64(mins)) * 60))
	return fmt.Sprintf("%d°%d'%d\" %s", deg, mins, sec, label)
}

// LatitudeString renders a latitude, e.g. 52°7'25" N
func LatitudeString(lat float64, north, south string) string {
	return coordinateString(lat, north, south)
}

// LongitudeString renders a longitude, e.g. 2°59'30" W
func LongitudeString(lng float64, east, west string) string {
	return coordinateString(lng, east, west)
}

// RingGeometry holds the wheel radii. First, Second and Third are insets from Main.
type RingGeometry struct {
	Main   float64
	First  float64
	Second float64
	Third  float64
}

// Validate checks 0 <= first < second < third < main
func (g RingGeometry) Validate() error {
	if g.First < 0 || g.First >= g.Second || g.Second >= g.Third || g.Third >= g.Main {
		return fmt.Errorf("%w: radii must satisfy 0 <= %v < %v < %v < %v", ErrInvalidGeometry, g.First, g.Second, g.Third, g.Main)
	}
	return nil
}

// SliceSpan is the display arc of one zodiac sign
type SliceSpan struct {
	Sign  int
	Start float64
	Sweep float64
}

// ZodiacSliceSpans returns the twelve sign arcs of a wheel rotated to the seventh house cusp.
// Arcs are contiguous and cover the full circle, starting with Aries.
func ZodiacSliceSpans(seventh float64) [12]SliceSpan {
	var spans [12]SliceSpan
	offset := 360 - seventh
	for i := range spans {
		spans[i] = SliceSpan{
			Sign:  i,
			Start: NormalizeDegree(offset + float64(i)*30),
			Sweep: 30,
		}
	}
	return spans
}
