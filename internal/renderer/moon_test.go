package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMoonPhaseParams(t *testing.T) {
	tests := []struct {
		name       string
		deg        float64
		lat        float64
		wantCX     float64
		wantRadius float64
		wantRotate float64
	}{
		{"new moon", 0, 0, 20, 10, -90},
		{"waxing crescent", 45, 51.5, 20 + 0.5*55, 10 + 0.5*45, -141.5},
		{"first quarter side", 135, 0, 20 + 0.5*55 - 55, 10 + 45 - 0.5*45, -90},
		{"full moon", 180, -33.9, 20, 10, -56.1},
		{"waning gibbous", 225, 0, 20 + 0.5*55, 10 + 0.5*45, -90},
		{"last degree", 360, 0, 20, 10, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateMoonPhaseParams(tt.deg, tt.lat)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCX, got.CircleCenterX, 1e-9)
			assert.InDelta(t, tt.wantRadius, got.CircleRadius, 1e-9)
			assert.InDelta(t, tt.wantRotate, got.Rotate, 1e-9)
		})
	}
}

func TestCalculateMoonPhaseParamsOutOfRange(t *testing.T) {
	for _, deg := range []float64{-1, 361, 400} {
		_, err := CalculateMoonPhaseParams(deg, 0)
		assert.Error(t, err, "deg %v", deg)
	}
}
