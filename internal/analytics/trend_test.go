package analytics

import (
	"math"
	"testing"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   models.TrendDirection
	}{
		{"increasing", []float64{1, 2, 3, 4, 5}, models.TrendIncreasing},
		{"constant is stable", []float64{5, 5, 5, 5, 5}, models.TrendStable},
		{"decreasing", []float64{10, 8, 6, 4}, models.TrendDecreasing},
		{"tiny slope is stable", []float64{5, 5.001, 5.002, 5.003}, models.TrendStable},
		{"two points", []float64{1, 2}, models.TrendInsufficientData},
		{"empty", nil, models.TrendInsufficientData},
		{"nan", []float64{1, math.NaN(), 3}, models.TrendNonNumeric},
		{"inf", []float64{1, 2, math.Inf(1)}, models.TrendNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := EstimateTrend(tt.values)
			assert.Equal(t, tt.want, trend.Direction)
			assert.Equal(t, len(tt.values), trend.Points)
		})
	}
}

func TestEstimateTrend_Slope(t *testing.T) {
	trend := EstimateTrend([]float64{1, 2, 3, 4, 5})
	require.NotNil(t, trend.Slope)
	assert.InDelta(t, 1.0, *trend.Slope, 1e-9)

	short := EstimateTrend([]float64{1, 2})
	assert.Nil(t, short.Slope)
}
