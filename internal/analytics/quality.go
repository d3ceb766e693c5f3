package analytics

import (
	"fmt"
	"math"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	neutralQualityScore = 5
	minQualityScore     = 1
	maxQualityScore     = 10

	// bedtimeWindowStart is the earliest hour counted as a bedtime
	bedtimeWindowStart = 20.0
)

// SleepQualityInput carries the signals the quality score is built from.
// Zero-valued optional signals are skipped.
type SleepQualityInput struct {
	AgeMonths              float64
	DaysTracked            int
	AverageDailySleepHours float64
	AverageSessionsPerDay  float64
	Bedtimes               []float64 // hours, after wrap-around adjustment
}

// RecommendedSleepHours returns the recommended total daily sleep for an age
func RecommendedSleepHours(ageMonths float64) float64 {
	switch {
	case ageMonths < 3:
		return 14
	case ageMonths < 6:
		return 13
	case ageMonths < 12:
		return 12
	default:
		return 11
	}
}

// DailySleepStats groups completed sessions by the calendar day they started
// on and returns the number of days, mean total hours per day and mean
// sessions per day.
func DailySleepStats(sessions []models.SleepSession) (days int, avgHours, avgSessions float64) {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, s := range sessions {
		if !s.Completed() {
			continue
		}
		key := s.Start.Format("2006-01-02")
		totals[key] += s.DurationHours()
		counts[key]++
	}

	days = len(totals)
	if days == 0 {
		return 0, 0, 0
	}

	var hours float64
	var n int
	for key, total := range totals {
		hours += total
		n += counts[key]
	}
	return days, hours / float64(days), float64(n) / float64(days)
}

// BedtimeHours returns the start hour of each session that begins in the
// 20:00-01:00 window. Starts after midnight are shifted by 24 so the window
// is continuous.
func BedtimeHours(sessions []models.SleepSession) []float64 {
	var hours []float64
	for _, s := range sessions {
		h := fractionalHour(s.Start)
		switch {
		case h >= bedtimeWindowStart:
			hours = append(hours, h)
		case h < 1:
			hours = append(hours, h+24)
		}
	}
	return hours
}

// BedtimeStdDev returns the sample standard deviation of bedtimes, and false
// when fewer than two bedtimes are known.
func BedtimeStdDev(bedtimes []float64) (float64, bool) {
	if len(bedtimes) < 2 {
		return 0, false
	}
	_, std := MeanStdDev(bedtimes)
	return std, true
}

// ScoreSleepQuality starts at 5 and adjusts for duration fit against the age
// norm, fragmentation and bedtime consistency, clamped to [1, 10].
func ScoreSleepQuality(in SleepQualityInput) models.SleepQuality {
	recommended := RecommendedSleepHours(in.AgeMonths)
	quality := models.SleepQuality{
		RecommendedHours: recommended,
		Factors:          []string{},
	}
	score := neutralQualityScore

	if in.DaysTracked > 0 && in.AverageDailySleepHours > 0 {
		diff := math.Abs(in.AverageDailySleepHours - recommended)
		switch {
		case diff <= 1:
			score += 2
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Total daily sleep (%.1fh) is within 1 hour of the recommended %.0fh", in.AverageDailySleepHours, recommended))
		case diff <= 2:
			score++
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Total daily sleep (%.1fh) is within 2 hours of the recommended %.0fh", in.AverageDailySleepHours, recommended))
		case diff > 3:
			score--
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Total daily sleep (%.1fh) differs from the recommended %.0fh by more than 3 hours", in.AverageDailySleepHours, recommended))
		}
	}

	if in.DaysTracked > 0 && in.AverageSessionsPerDay > 0 {
		if in.AverageSessionsPerDay <= 3 {
			score++
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Sleep is consolidated (%.1f sessions per day)", in.AverageSessionsPerDay))
		} else if in.AverageSessionsPerDay >= 5 {
			score--
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Sleep is fragmented (%.1f sessions per day)", in.AverageSessionsPerDay))
		}
	}

	if std, ok := BedtimeStdDev(in.Bedtimes); ok {
		quality.BedtimeStdDev = &std
		switch {
		case std < 0.5:
			score += 2
			quality.Factors = append(quality.Factors, "Very consistent bedtime")
		case std < 1:
			score++
			quality.Factors = append(quality.Factors, "Fairly consistent bedtime")
		case std > 2:
			score--
			quality.Factors = append(quality.Factors,
				fmt.Sprintf("Inconsistent bedtime (varies by %.1f hours)", std))
		}
	}

	quality.Score = clampScore(score)
	return quality
}

func clampScore(score int) int {
	if score < minQualityScore {
		return minQualityScore
	}
	if score > maxQualityScore {
		return maxQualityScore
	}
	return score
}
