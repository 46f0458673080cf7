package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDegree(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-30, 330},
		{-360, 0},
		{359.9, 359.9},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeDegree(tt.in), 1e-9, "NormalizeDegree(%v)", tt.in)
	}
}

func TestDegreeDiff(t *testing.T) {
	assert.InDelta(t, 20.0, DegreeDiff(350, 10), 1e-9)
	assert.InDelta(t, 20.0, DegreeDiff(10, 350), 1e-9)
	assert.InDelta(t, 180.0, DegreeDiff(0, 180), 1e-9)
	assert.InDelta(t, 0.0, DegreeDiff(45, 405), 1e-9)
}

func TestSliceCoordinates(t *testing.T) {
	// Slice 0 with no offset sits on the positive x axis
	assert.InDelta(t, 200.0, SliceToX(0, 100, 0), 1e-9)
	assert.InDelta(t, 100.0, SliceToY(0, 100, 0), 1e-9)

	// Three slices is a quarter turn counter-clockwise
	assert.InDelta(t, 100.0, SliceToX(3, 100, 0), 1e-9)
	assert.InDelta(t, 0.0, SliceToY(3, 100, 0), 1e-9)

	// The offset is applied in degrees
	assert.InDelta(t, SliceToX(1, 100, 0), SliceToX(0, 100, 30), 1e-9)
	assert.InDelta(t, SliceToY(1, 100, 0), SliceToY(0, 100, 30), 1e-9)
}

func TestPolarPointIsConcentric(t *testing.T) {
	for _, r := range []float64{MainRadius, 200, 120, 10} {
		for _, angle := range []float64{0, 45, 90, 180, 270, 333.3} {
			p := PolarPoint(angle, r)
			assert.InDelta(t, r, math.Hypot(p.X-MainRadius, p.Y-MainRadius), 1e-9)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		0.001:    "0",
		-0.001:   "0",
		1:        "1",
		1.5:      "1.5",
		1.256:    "1.26",
		240:      "240",
		-12.3456: "-12.35",
	}
	for in, want := range tests {
		assert.Equal(t, want, num(in), "num(%v)", in)
	}
}

func TestDegreeString(t *testing.T) {
	tests := []struct {
		name   string
		dec    float64
		format int
		want   string
	}{
		{"degrees only", 16.5, DegreeFormatDegrees, "16°"},
		{"with minutes", 16.5, DegreeFormatMinutes, "16°30'"},
		{"with seconds", 16.5, DegreeFormatSeconds, "16°30'00\""},
		{"zero", 0, DegreeFormatSeconds, "0°00'00\""},
		{"small minutes", 3.25, DegreeFormatMinutes, "3°15'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DegreeString(tt.dec, tt.format))
		})
	}
}

func TestCoordinateStrings(t *testing.T) {
	assert.Equal(t, "53°24'30\" N", LatitudeString(53.4084, "N", "S"))
	assert.Equal(t, "33°51'0\" S", LatitudeString(-33.85, "N", "S"))
	assert.Equal(t, "2°59'30\" W", LongitudeString(-2.9916, "E", "W"))
	assert.Equal(t, "0°0'0\" E", LongitudeString(0, "E", "W"))
}

func TestRingGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       RingGeometry
		wantErr bool
	}{
		{"natal", defaultGeometry, false},
		{"external natal", externalNatalGeometry, false},
		{"negative first", RingGeometry{Main: 240, First: -1, Second: 36, Third: 120}, true},
		{"second before first", RingGeometry{Main: 240, First: 40, Second: 36, Third: 120}, true},
		{"third beyond main", RingGeometry{Main: 240, First: 0, Second: 36, Third: 240}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestZodiacSliceSpans(t *testing.T) {
	for _, seventh := range []float64{0, 21.3, 180, 359.9} {
		spans := ZodiacSliceSpans(seventh)

		total := 0.0
		for i, span := range spans {
			assert.Equal(t, i, span.Sign)
			total += span.Sweep

			next := spans[(i+1)%12]
			assert.InDelta(t, 0, DegreeDiff(span.Start+span.Sweep, next.Start), 1e-9, "slices must be contiguous")
		}
		assert.InDelta(t, 360.0, total, 1e-9)
		assert.InDelta(t, NormalizeDegree(360-seventh), spans[0].Start, 1e-9)
	}
}
