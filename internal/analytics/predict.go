package analytics

import (
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	// MinDayOfWeekRecords is how many records a weekday needs before its modal hour is reported
	MinDayOfWeekRecords = 3

	// MediumConfidenceRecords is the sample size above which a prediction is medium confidence
	MediumConfidenceRecords = 10
)

// PredictNextEvent adds the mean inter-arrival interval to the latest
// timestamp. When the predicted weekday has enough history its modal hours
// are reported too. Returns nil for fewer than two timestamps.
func PredictNextEvent(timestamps []time.Time) *models.EventPrediction {
	sorted := SortTimes(timestamps)
	gaps := IntervalsSeconds(sorted)
	if len(gaps) == 0 {
		return nil
	}

	meanGap := stat.Mean(gaps, nil)
	last := sorted[len(sorted)-1]
	next := last.Add(time.Duration(meanGap * float64(time.Second)))

	prediction := &models.EventPrediction{
		PredictedTime: next,
		IntervalHours: meanGap / 3600,
		Confidence:    predictionConfidence(len(sorted)),
		SampleSize:    len(sorted),
		DayOfWeek:     next.Weekday().String(),
	}

	sameDay := make([]time.Time, 0)
	for _, ts := range sorted {
		if ts.Weekday() == next.Weekday() {
			sameDay = append(sameDay, ts)
		}
	}
	if len(sameDay) >= MinDayOfWeekRecords {
		prediction.DayOfWeekModalHours = ModalHours(sameDay)
	}

	return prediction
}

// PredictNextSleep adds the mean awake interval (end of one session to the
// start of the next) to the latest wake time. Ongoing sessions contribute no
// awake interval. Returns nil when no awake interval can be measured.
func PredictNextSleep(sessions []models.SleepSession) *models.SleepPrediction {
	sorted := models.SortedSleeps(sessions)

	var awake []float64
	for i := 0; i+1 < len(sorted); i++ {
		cur := sorted[i]
		if !cur.Completed() {
			continue
		}
		gap := sorted[i+1].Start.Sub(*cur.End)
		if gap < 0 {
			// overlapping sessions carry no awake time
			continue
		}
		awake = append(awake, gap.Seconds())
	}

	var lastWake time.Time
	for _, s := range sorted {
		if s.Completed() && s.End.After(lastWake) {
			lastWake = *s.End
		}
	}

	if len(awake) == 0 || lastWake.IsZero() {
		return nil
	}

	meanAwake := stat.Mean(awake, nil)
	return &models.SleepPrediction{
		PredictedTime:     lastWake.Add(time.Duration(meanAwake * float64(time.Second))),
		LastWakeTime:      lastWake,
		AverageAwakeHours: meanAwake / 3600,
		Confidence:        predictionConfidence(len(sorted)),
		SampleSize:        len(awake),
	}
}

func predictionConfidence(sampleSize int) models.Confidence {
	if sampleSize > MediumConfidenceRecords {
		return models.ConfidenceMedium
	}
	return models.ConfidenceLow
}
