package insights

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/analytics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	// BedtimeInconsistencyHours is the bedtime standard deviation above which an anomaly is raised
	BedtimeInconsistencyHours = 1.0

	// FragmentedSessionsPerDay is the daily session count above which sleep is flagged as fragmented
	FragmentedSessionsPerDay = 5.0
)

// SleepInsights analyzes the snapshot's sleep sessions. Ongoing sessions are
// counted but excluded from every duration-based computation.
func (e *Engine) SleepInsights(snap models.Snapshot) *models.SleepInsights {
	sessions := models.SortedSleeps(snap.Sleeps)
	result := &models.SleepInsights{
		SampleSize: len(sessions),
		Anomalies:  []models.Anomaly{},
	}

	completed := make([]models.SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed() {
			completed = append(completed, s)
		}
	}

	if len(completed) < e.thresholds.MinSleepSessions {
		result.InsufficientData = true
		result.Message = insufficientMessage("sleep", len(completed), e.thresholds.MinSleepSessions)
		return result
	}

	starts := make([]time.Time, len(sessions))
	for i, s := range sessions {
		starts[i] = s.Start
	}
	durations := make([]float64, len(completed))
	for i, s := range completed {
		durations[i] = s.DurationHours()
	}

	meanDuration, stdDuration := analytics.MeanStdDev(durations)
	days, dailyHours, perDay := analytics.DailySleepStats(completed)
	result.Basic = &models.SleepBasicInsights{
		TotalSessions:          len(sessions),
		CompletedSessions:      len(completed),
		OngoingSessions:        len(sessions) - len(completed),
		AverageSleepDuration:   meanDuration,
		SleepDurationStdDev:    stdDuration,
		RecommendedNapTimes:    analytics.ModalHours(starts),
		DaysTracked:            days,
		AverageDailySleepHours: dailyHours,
		AverageSessionsPerDay:  perDay,
	}

	age, _ := e.ageMonths(snap)
	bedtimes := analytics.BedtimeHours(sessions)
	trend := analytics.EstimateTrend(durations)
	result.Patterns = &models.SleepPatterns{
		Clusters: analytics.ClusterSleep(completed, e.thresholds.MinClusterSessions),
		Quality: analytics.ScoreSleepQuality(analytics.SleepQualityInput{
			AgeMonths:              age,
			DaysTracked:            days,
			AverageDailySleepHours: dailyHours,
			AverageSessionsPerDay:  perDay,
			Bedtimes:               bedtimes,
		}),
		DurationTrend: &trend,
	}

	result.Anomalies = e.sleepAnomalies(starts, durations, bedtimes, perDay)
	result.Predictions = &models.SleepPredictions{
		NextSleep: analytics.PredictNextSleep(sessions),
	}
	return result
}

func (e *Engine) sleepAnomalies(starts []time.Time, durations, bedtimes []float64, perDay float64) []models.Anomaly {
	anomalies := []models.Anomaly{}
	if a := analytics.DetectIntervalAnomaly("sleep sessions", starts); a != nil {
		anomalies = append(anomalies, *a)
	}
	if a := analytics.DetectMagnitudeAnomaly("sleep duration", durations); a != nil {
		anomalies = append(anomalies, *a)
	}
	if std, ok := analytics.BedtimeStdDev(bedtimes); ok && std > BedtimeInconsistencyHours {
		anomalies = append(anomalies, models.Anomaly{
			Type:        models.AnomalyTypeBedtimeInconsistency,
			Description: fmt.Sprintf("Bedtime varies by %.1f hours", std),
			Details: map[string]interface{}{
				"bedtime_std_dev": std,
				"bedtimes":        len(bedtimes),
				"threshold_hours": BedtimeInconsistencyHours,
			},
		})
	}
	if perDay > FragmentedSessionsPerDay {
		anomalies = append(anomalies, models.Anomaly{
			Type:        models.AnomalyTypeFragmentedSleep,
			Description: fmt.Sprintf("Sleep is fragmented into %.1f sessions per day", perDay),
			Details: map[string]interface{}{
				"average_sessions_per_day": perDay,
				"threshold":                FragmentedSessionsPerDay,
			},
		})
	}
	if len(starts) >= e.thresholds.MinShiftRecords {
		if a := analytics.DetectDistributionShift("sleep onsets", starts); a != nil {
			anomalies = append(anomalies, *a)
		}
	}
	return anomalies
}
