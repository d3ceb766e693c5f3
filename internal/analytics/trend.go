package analytics

import (
	"math"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	// MinTrendPoints is the shortest series a trend is fitted to
	MinTrendPoints = 3

	// StableSlopeThreshold is the absolute slope under which a series is stable
	StableSlopeThreshold = 0.01
)

// EstimateTrend fits value against 0-based index by least squares and
// classifies the slope. Short series and series containing NaN or Inf are
// marked rather than fitted.
func EstimateTrend(values []float64) models.Trend {
	trend := models.Trend{Points: len(values)}

	if len(values) < MinTrendPoints {
		trend.Direction = models.TrendInsufficientData
		return trend
	}

	xs := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			trend.Direction = models.TrendNonNumeric
			return trend
		}
		xs[i] = float64(i)
	}

	_, slope := stat.LinearRegression(xs, values, nil, false)
	trend.Slope = &slope
	trend.Direction = ClassifySlope(slope)
	return trend
}

// ClassifySlope maps a slope onto stable/increasing/decreasing
func ClassifySlope(slope float64) models.TrendDirection {
	if math.Abs(slope) < StableSlopeThreshold {
		return models.TrendStable
	} else if slope > 0 {
		return models.TrendIncreasing
	}
	return models.TrendDecreasing
}
