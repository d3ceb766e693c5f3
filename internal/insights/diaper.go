package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/analytics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	// MinHealthDays is how many distinct days the hydration and constipation checks need
	MinHealthDays = 3

	hydrationMaxAgeMonths    = 12
	minWetPerDay             = 4.0
	constipationMaxAgeMonths = 6
	minSoiledPerDay          = 1.0

	peakHourCount = 3
)

// DiaperInsights analyzes diaper changes: daily counts, type distribution,
// hydration and constipation indicators, peak hours and the next change.
func (e *Engine) DiaperInsights(snap models.Snapshot) *models.DiaperInsights {
	changes := models.SortedDiapers(snap.Diapers)
	result := &models.DiaperInsights{
		SampleSize: len(changes),
		Anomalies:  []models.Anomaly{},
	}

	if len(changes) < e.thresholds.MinDiaperChanges {
		result.InsufficientData = true
		result.Message = insufficientMessage("diaper", len(changes), e.thresholds.MinDiaperChanges)
		return result
	}

	timestamps := make([]time.Time, len(changes))
	types := make(map[models.DiaperType]int)
	for i, c := range changes {
		timestamps[i] = c.Time
		if c.DiaperType != "" {
			types[c.DiaperType]++
		}
	}

	buckets := analytics.DailyCounts(timestamps)
	days := len(buckets)
	daily := make([]models.DailyTotal, len(buckets))
	for i, b := range buckets {
		daily[i] = models.DailyTotal{Date: b.Date, Count: b.Count}
	}

	wet := types[models.DiaperTypeWet] + types[models.DiaperTypeMixed]
	soiled := types[models.DiaperTypeSoiled] + types[models.DiaperTypeMixed]
	basic := &models.DiaperBasicInsights{
		TotalChanges:     len(changes),
		DaysTracked:      days,
		TypeDistribution: types,
		DailyCounts:      daily,
	}
	if days > 0 {
		basic.AverageChangesPerDay = float64(len(changes)) / float64(days)
		basic.WetPerDay = float64(wet) / float64(days)
		basic.SoiledPerDay = float64(soiled) / float64(days)
	}
	result.Basic = basic

	hourly := analytics.HourCounts(timestamps)
	result.Patterns = &models.DiaperPatterns{
		HourlyDistribution: hourly,
		PeakHours:          peakHours(hourly, peakHourCount),
	}

	age, _ := e.ageMonths(snap)
	result.Health = diaperHealth(basic, age)

	if a := analytics.DetectIntervalAnomaly("diaper changes", timestamps); a != nil {
		result.Anomalies = append(result.Anomalies, *a)
	}
	result.Predictions = &models.DiaperPredictions{
		NextChange: analytics.PredictNextEvent(timestamps),
	}
	return result
}

// diaperHealth applies the hydration and constipation heuristics once enough
// distinct days are tracked
func diaperHealth(basic *models.DiaperBasicInsights, ageMonths float64) *models.DiaperHealthIndicators {
	health := &models.DiaperHealthIndicators{}
	if basic.DaysTracked < MinHealthDays {
		health.Notes = []string{
			fmt.Sprintf("Need at least %d days of diaper data for health indicators", MinHealthDays),
		}
		return health
	}

	health.Evaluated = true
	if ageMonths <= hydrationMaxAgeMonths && basic.WetPerDay < minWetPerDay {
		health.HydrationConcern = true
		health.Notes = append(health.Notes,
			fmt.Sprintf("Averaging %.1f wet diapers per day, below the expected %.0f", basic.WetPerDay, minWetPerDay))
	}
	if ageMonths <= constipationMaxAgeMonths && basic.SoiledPerDay < minSoiledPerDay {
		health.ConstipationConcern = true
		health.Notes = append(health.Notes,
			fmt.Sprintf("Averaging %.1f soiled diapers per day, below the expected %.0f", basic.SoiledPerDay, minSoiledPerDay))
	}
	return health
}

// peakHours returns up to n hours with the highest non-zero counts, busiest
// first, earlier hour winning ties
func peakHours(counts []int, n int) []int {
	hours := make([]int, 0, len(counts))
	for hour, c := range counts {
		if c > 0 {
			hours = append(hours, hour)
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return counts[hours[i]] > counts[hours[j]]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}
