// Package analytics implements the leaf statistical algorithms used by the
// insights engine: descriptive summaries, trend fitting, anomaly detection,
// sleep clustering, next-event prediction and sleep quality scoring.
//
// Every function is pure. Callers are expected to have applied the minimum
// sample gates before calling in; functions that cannot produce a value for
// their input return a zero result or ErrEmptySeries instead of panicking.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptySeries is returned when a summary is requested for no timestamps
var ErrEmptySeries = errors.New("empty series")

// nearZero is the variance floor below which a series is treated as constant
const nearZero = 1e-9

// Summary holds descriptive statistics for a time-ordered series
type Summary struct {
	Count             int
	ModalHours        []int
	MeanIntervalHours float64
	HasValues         bool
	Mean              float64
	StdDev            float64
}

// Summarize computes the modal hour, mean interval and, when values is
// non-empty, the mean and sample standard deviation of the parallel series.
func Summarize(timestamps []time.Time, values []float64) (*Summary, error) {
	if len(timestamps) == 0 {
		return nil, ErrEmptySeries
	}

	sorted := SortTimes(timestamps)
	summary := &Summary{
		Count:             len(sorted),
		ModalHours:        ModalHours(sorted),
		MeanIntervalHours: MeanIntervalHours(sorted),
	}

	if len(values) > 0 {
		summary.HasValues = true
		summary.Mean, summary.StdDev = MeanStdDev(values)
	}

	return summary, nil
}

// SortTimes returns a sorted copy of timestamps
func SortTimes(timestamps []time.Time) []time.Time {
	out := make([]time.Time, len(timestamps))
	copy(out, timestamps)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// ModalHours returns every hour-of-day sharing the highest count, ascending
func ModalHours(timestamps []time.Time) []int {
	if len(timestamps) == 0 {
		return nil
	}

	counts := HourCounts(timestamps)
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	hours := make([]int, 0, 1)
	for hour, c := range counts {
		if c == maxCount {
			hours = append(hours, hour)
		}
	}
	return hours
}

// HourCounts buckets timestamps by hour of day
func HourCounts(timestamps []time.Time) []int {
	counts := make([]int, 24)
	for _, ts := range timestamps {
		counts[ts.Hour()]++
	}
	return counts
}

// IntervalsSeconds returns consecutive gaps of a sorted series, in seconds
func IntervalsSeconds(sorted []time.Time) []float64 {
	if len(sorted) < 2 {
		return nil
	}
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]).Seconds())
	}
	return gaps
}

// MeanIntervalHours returns the mean gap between consecutive sorted timestamps
func MeanIntervalHours(sorted []time.Time) float64 {
	gaps := IntervalsSeconds(sorted)
	if len(gaps) == 0 {
		return 0
	}
	return stat.Mean(gaps, nil) / 3600
}

// MeanStdDev returns the mean and sample standard deviation. A single value
// has a standard deviation of zero.
func MeanStdDev(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// DailyCounts groups timestamps by calendar day (in each timestamp's own
// location) and returns the totals ordered by date.
func DailyCounts(timestamps []time.Time) []DayBucket {
	return DailyTotals(timestamps, nil)
}

// DayBucket is a single calendar day's count and value sum
type DayBucket struct {
	Date  string
	Count int
	Sum   float64
}

// DailyTotals groups timestamps by calendar day, summing the parallel values
// when provided.
func DailyTotals(timestamps []time.Time, values []float64) []DayBucket {
	index := make(map[string]int)
	buckets := make([]DayBucket, 0)

	for i, ts := range timestamps {
		key := ts.Format("2006-01-02")
		pos, ok := index[key]
		if !ok {
			pos = len(buckets)
			index[key] = pos
			buckets = append(buckets, DayBucket{Date: key})
		}
		buckets[pos].Count++
		if i < len(values) {
			buckets[pos].Sum += values[i]
		}
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets
}

// HourConsistency computes normalized entropy of the hour-of-day distribution
// (1 = every event in one hour, 0 = uniform).
func HourConsistency(timestamps []time.Time) float64 {
	counts := HourCounts(timestamps)
	dist := make([]float64, len(counts))
	var total float64
	for i, c := range counts {
		dist[i] = float64(c)
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	for i := range dist {
		dist[i] /= total
	}

	// stat.Entropy uses the natural log and skips zero probabilities
	entropy := stat.Entropy(dist)
	maxEntropy := math.Log(float64(len(dist)))
	return 1 - entropy/maxEntropy
}

// Percentages converts counts into percentages of their sum
func Percentages(counts []int) []float64 {
	out := make([]float64, len(counts))
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c) / float64(total) * 100
	}
	return out
}
