package insights

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/analytics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	velocityEndpoint     = "endpoint"
	velocityTrailingMean = "trailing_mean"

	// trailingVelocityPairs is how many of the latest pairwise velocities are averaged
	trailingVelocityPairs = 3

	ageFromBirthDate        = "birth_date"
	ageFromFirstMeasurement = "first_measurement"
)

type pairVelocity struct {
	height float64
	weight float64
}

// GrowthInsights annotates measurements with age, estimates per-month
// velocity, classifies each metric's trend and projects one month ahead.
func (e *Engine) GrowthInsights(snap models.Snapshot) *models.GrowthInsights {
	measurements := models.SortedGrowth(snap.Growth)
	result := &models.GrowthInsights{
		SampleSize: len(measurements),
		Anomalies:  []models.Anomaly{},
	}

	if len(measurements) < e.thresholds.MinGrowthPoints {
		result.InsufficientData = true
		result.Message = insufficientMessage("growth", len(measurements), e.thresholds.MinGrowthPoints)
		return result
	}

	origin, source := measurements[0].Date, ageFromFirstMeasurement
	if snap.Subject.BirthDate != nil {
		origin, source = *snap.Subject.BirthDate, ageFromBirthDate
	}

	points := make([]models.GrowthPoint, len(measurements))
	heights := make([]float64, len(measurements))
	weights := make([]float64, len(measurements))
	for i, m := range measurements {
		points[i] = models.GrowthPoint{
			Date:      m.Date,
			AgeMonths: monthsBetween(origin, m.Date),
			Height:    m.Height,
			Weight:    m.Weight,
		}
		heights[i] = m.Height
		weights[i] = m.Weight
	}

	latest := points[len(points)-1]
	result.Basic = &models.GrowthBasicInsights{
		Measurements:    points,
		LatestHeight:    latest.Height,
		LatestWeight:    latest.Weight,
		LatestAgeMonths: latest.AgeMonths,
		AgeSource:       source,
	}

	pairs := pairwiseVelocities(measurements)
	result.Velocity = e.growthVelocity(measurements, pairs)
	result.Trends = &models.GrowthTrends{
		Height: analytics.EstimateTrend(heights),
		Weight: analytics.EstimateTrend(weights),
	}

	if len(pairs) > 0 && pairs[len(pairs)-1].weight < 0 {
		last := pairs[len(pairs)-1]
		result.Anomalies = append(result.Anomalies, models.Anomaly{
			Type:        models.AnomalyTypeWeightLoss,
			Description: fmt.Sprintf("Weight decreased between the last two measurements (%.2f kg/month)", last.weight),
			Details: map[string]interface{}{
				"weight_kg_per_month": last.weight,
				"from":                measurements[len(measurements)-2].Date,
				"to":                  latest.Date,
			},
		})
	}

	result.Predictions = &models.GrowthPredictions{
		ProjectedDate:   latest.Date.Add(time.Duration(DaysPerMonth * float64(24*time.Hour))),
		NextMonthHeight: latest.Height + result.Velocity.HeightCmPerMonth,
		NextMonthWeight: latest.Weight + result.Velocity.WeightKgPerMonth,
	}
	return result
}

// pairwiseVelocities returns per-month change between consecutive
// measurements. Pairs taken on the same day are skipped.
func pairwiseVelocities(measurements []models.GrowthMeasurement) []pairVelocity {
	var pairs []pairVelocity
	for i := 1; i < len(measurements); i++ {
		months := measurements[i].Date.Sub(measurements[i-1].Date).Hours() / 24 / DaysPerMonth
		if months <= 0 {
			continue
		}
		pairs = append(pairs, pairVelocity{
			height: (measurements[i].Height - measurements[i-1].Height) / months,
			weight: (measurements[i].Weight - measurements[i-1].Weight) / months,
		})
	}
	return pairs
}

// growthVelocity differences the endpoints for short series and averages the
// latest pairwise velocities once the trailing window is available. A zero
// elapsed time yields zero velocity.
func (e *Engine) growthVelocity(measurements []models.GrowthMeasurement, pairs []pairVelocity) *models.GrowthVelocity {
	if len(measurements) >= e.thresholds.MinTrailingGrowth && len(pairs) > 0 {
		window := pairs
		if len(window) > trailingVelocityPairs {
			window = window[len(window)-trailingVelocityPairs:]
		}
		velocity := &models.GrowthVelocity{Method: velocityTrailingMean, PairsUsed: len(window)}
		for _, p := range window {
			velocity.HeightCmPerMonth += p.height
			velocity.WeightKgPerMonth += p.weight
		}
		velocity.HeightCmPerMonth /= float64(len(window))
		velocity.WeightKgPerMonth /= float64(len(window))
		return velocity
	}

	first, last := measurements[0], measurements[len(measurements)-1]
	velocity := &models.GrowthVelocity{Method: velocityEndpoint}
	months := last.Date.Sub(first.Date).Hours() / 24 / DaysPerMonth
	if months <= 0 {
		return velocity
	}
	velocity.PairsUsed = 1
	velocity.HeightCmPerMonth = (last.Height - first.Height) / months
	velocity.WeightKgPerMonth = (last.Weight - first.Weight) / months
	return velocity
}
