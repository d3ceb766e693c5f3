package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	// IntervalStdDevs is how many standard deviations above the mean gap a gap must be to be flagged
	IntervalStdDevs = 2.0

	// ZScoreThreshold is the absolute z-score beyond which a magnitude is an outlier
	ZScoreThreshold = 2.5

	// MinShiftRecords is the shortest series the distribution-shift check runs on
	MinShiftRecords = 10

	// ShiftThreshold is the mean absolute histogram difference that counts as a shift
	ShiftThreshold = 0.3
)

// DetectIntervalAnomaly flags gaps between consecutive events that exceed
// mean + 2·stddev of all gaps. Returns nil when nothing is flagged.
func DetectIntervalAnomaly(label string, timestamps []time.Time) *models.Anomaly {
	sorted := SortTimes(timestamps)
	gaps := IntervalsSeconds(sorted)
	if len(gaps) < 2 {
		return nil
	}

	mean, std := MeanStdDev(gaps)
	threshold := mean + IntervalStdDevs*std

	count := 0
	var first *models.TimeRange
	for i, gap := range gaps {
		if gap <= threshold {
			continue
		}
		count++
		if first == nil {
			first = &models.TimeRange{Start: sorted[i], End: sorted[i+1]}
		}
	}

	if count == 0 {
		return nil
	}

	return &models.Anomaly{
		Type:        models.AnomalyTypeInterval,
		Description: fmt.Sprintf("Found %d unusually long gap(s) between %s", count, label),
		Details: map[string]interface{}{
			"count":                count,
			"threshold_hours":      threshold / 3600,
			"average_gap_hours":    mean / 3600,
			"first_gap_start":      first.Start,
			"first_gap_end":        first.End,
			"first_gap_hours":      first.End.Sub(first.Start).Hours(),
			"total_intervals_seen": len(gaps),
		},
	}
}

// MagnitudeOutliers returns the indices whose population z-score exceeds
// ZScoreThreshold. A constant series has no outliers.
func MagnitudeOutliers(values []float64) []int {
	if len(values) < 2 {
		return nil
	}

	mean, std := stat.PopMeanStdDev(values, nil)
	if std < nearZero || math.IsNaN(std) {
		return nil
	}

	var outliers []int
	for i, v := range values {
		if math.Abs((v-mean)/std) > ZScoreThreshold {
			outliers = append(outliers, i)
		}
	}
	return outliers
}

// DetectMagnitudeAnomaly reports z-score outliers in a magnitude series such
// as feeding quantity or sleep duration. Returns nil when nothing is flagged.
func DetectMagnitudeAnomaly(metric string, values []float64) *models.Anomaly {
	outliers := MagnitudeOutliers(values)
	if len(outliers) == 0 {
		return nil
	}

	flagged := make([]float64, len(outliers))
	for i, idx := range outliers {
		flagged[i] = values[idx]
	}
	mean, std := stat.PopMeanStdDev(values, nil)

	return &models.Anomaly{
		Type:        models.AnomalyTypeMagnitude,
		Description: fmt.Sprintf("Found %d unusual %s value(s)", len(outliers), metric),
		Details: map[string]interface{}{
			"metric":          metric,
			"count":           len(outliers),
			"indices":         outliers,
			"values":          flagged,
			"mean":            mean,
			"std_dev":         std,
			"z_score_cut_off": ZScoreThreshold,
		},
	}
}

// DetectDistributionShift compares the normalized hour-of-day histogram of
// the first half of a time-ordered series against the second half. Only hours
// present in both halves are compared.
func DetectDistributionShift(label string, timestamps []time.Time) *models.Anomaly {
	if len(timestamps) < MinShiftRecords {
		return nil
	}

	sorted := SortTimes(timestamps)
	mid := len(sorted) / 2
	first := normalizedHours(sorted[:mid])
	second := normalizedHours(sorted[mid:])

	var diffSum float64
	common := 0
	for hour := 0; hour < 24; hour++ {
		if first[hour] == 0 || second[hour] == 0 {
			continue
		}
		diffSum += math.Abs(first[hour] - second[hour])
		common++
	}

	if common == 0 {
		return nil
	}

	meanDiff := diffSum / float64(common)
	if meanDiff <= ShiftThreshold {
		return nil
	}

	return &models.Anomaly{
		Type:        models.AnomalyTypePatternShift,
		Description: fmt.Sprintf("The timing of %s has shifted recently", label),
		Details: map[string]interface{}{
			"mean_difference": meanDiff,
			"common_hours":    common,
			"split_at":        sorted[mid],
		},
	}
}

func normalizedHours(timestamps []time.Time) []float64 {
	counts := HourCounts(timestamps)
	out := make([]float64, len(counts))
	if len(timestamps) == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(len(timestamps))
	}
	return out
}
