package insights

import (
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/analytics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

// FeedingInsights analyzes the snapshot's feedings: descriptive statistics,
// weekday/weekend patterns, anomalies and the next-feeding estimate.
func (e *Engine) FeedingInsights(snap models.Snapshot) *models.FeedingInsights {
	feedings := models.SortedFeedings(snap.Feedings)
	result := &models.FeedingInsights{
		SampleSize: len(feedings),
		Anomalies:  []models.Anomaly{},
	}

	if len(feedings) < e.thresholds.MinFeedings {
		result.InsufficientData = true
		result.Message = insufficientMessage("feeding", len(feedings), e.thresholds.MinFeedings)
		return result
	}

	timestamps := make([]time.Time, len(feedings))
	var quantities []float64
	var quantityTimes []time.Time
	for i, f := range feedings {
		timestamps[i] = f.Time
		if f.Quantity != nil {
			quantities = append(quantities, *f.Quantity)
			quantityTimes = append(quantityTimes, f.Time)
		}
	}

	summary, err := analytics.Summarize(timestamps, quantities)
	if err != nil {
		result.InsufficientData = true
		result.Message = insufficientMessage("feeding", 0, e.thresholds.MinFeedings)
		return result
	}

	result.Basic = feedingBasics(feedings, summary, quantityTimes, quantities)
	result.Patterns = feedingPatterns(timestamps, quantities)
	result.Anomalies = e.feedingAnomalies(timestamps, quantities)
	result.Predictions = &models.FeedingPredictions{
		NextFeeding: analytics.PredictNextEvent(timestamps),
	}
	return result
}

func feedingBasics(feedings []models.FeedingEvent, summary *analytics.Summary, quantityTimes []time.Time, quantities []float64) *models.FeedingBasicInsights {
	basic := &models.FeedingBasicInsights{
		TotalFeedings:           summary.Count,
		RecommendedFeedingHours: summary.ModalHours,
		AverageFeedingInterval:  summary.MeanIntervalHours,
		TypeDistribution:        make(map[models.FeedingType]int),
	}
	if summary.MeanIntervalHours > 0 {
		basic.FeedingsPerDay = 24 / summary.MeanIntervalHours
	}
	if summary.HasValues {
		mean, std := summary.Mean, summary.StdDev
		basic.AverageQuantity = &mean
		basic.QuantityStdDev = &std
	}

	for _, f := range feedings {
		if f.FeedingType != "" {
			basic.TypeDistribution[f.FeedingType]++
		}
		if f.Side != nil {
			if basic.SideDistribution == nil {
				basic.SideDistribution = make(map[models.FeedingSide]int)
			}
			basic.SideDistribution[*f.Side]++
		}
	}

	timestamps := make([]time.Time, len(feedings))
	for i, f := range feedings {
		timestamps[i] = f.Time
	}
	sums := make(map[string]float64)
	for _, day := range analytics.DailyTotals(quantityTimes, quantities) {
		sums[day.Date] = day.Sum
	}
	for _, day := range analytics.DailyCounts(timestamps) {
		total := models.DailyTotal{Date: day.Date, Count: day.Count}
		if sum, ok := sums[day.Date]; ok {
			total.Quantity = &sum
		}
		basic.DailyTotals = append(basic.DailyTotals, total)
	}

	return basic
}

func feedingPatterns(timestamps []time.Time, quantities []float64) *models.FeedingPatterns {
	var weekday, weekend []time.Time
	dayCounts := make([]int, 7)
	for _, ts := range timestamps {
		dayCounts[ts.Weekday()]++
		if isWeekend(ts) {
			weekend = append(weekend, ts)
		} else {
			weekday = append(weekday, ts)
		}
	}

	patterns := &models.FeedingPatterns{
		Weekday:               periodPattern(weekday),
		Weekend:               periodPattern(weekend),
		HourlyDistribution:    analytics.Percentages(analytics.HourCounts(timestamps)),
		DayOfWeekDistribution: analytics.Percentages(dayCounts),
		HourConsistency:       analytics.HourConsistency(timestamps),
	}
	if len(quantities) > 0 {
		trend := analytics.EstimateTrend(quantities)
		patterns.QuantityTrend = &trend
	}
	return patterns
}

// isWeekend reports Saturday and Sunday
func isWeekend(ts time.Time) bool {
	day := ts.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func periodPattern(timestamps []time.Time) models.PeriodPattern {
	pattern := models.PeriodPattern{Count: len(timestamps)}
	if len(timestamps) == 0 {
		return pattern
	}
	pattern.ModalHours = analytics.ModalHours(timestamps)
	if len(timestamps) >= 2 {
		interval := analytics.MeanIntervalHours(timestamps)
		pattern.AverageIntervalHours = &interval
	}
	return pattern
}

func (e *Engine) feedingAnomalies(timestamps []time.Time, quantities []float64) []models.Anomaly {
	anomalies := []models.Anomaly{}
	if a := analytics.DetectIntervalAnomaly("feedings", timestamps); a != nil {
		anomalies = append(anomalies, *a)
	}
	if a := analytics.DetectMagnitudeAnomaly("feeding quantity", quantities); a != nil {
		anomalies = append(anomalies, *a)
	}
	if len(timestamps) >= e.thresholds.MinShiftRecords {
		if a := analytics.DetectDistributionShift("feedings", timestamps); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	return anomalies
}
