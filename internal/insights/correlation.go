package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	// FeedingBeforeSleepWindow is how long before sleep onset a feeding counts as "fed before"
	FeedingBeforeSleepWindow = time.Hour

	// DisruptionThreshold is the fraction of sessions with a diaper change above which sleep is disrupted
	DisruptionThreshold = 0.3

	msgNeedTwoDomains   = "Need data from at least two activities for correlation analysis"
	msgNoCorrelations   = "No significant correlations found"
	minCorrelateDomains = 2
)

// Correlations looks for cross-activity associations among the domains
// flagged as having sufficient data. The report always carries a message
// when no correlation is returned.
func (e *Engine) Correlations(snap models.Snapshot, completeness models.DataCompleteness) models.CorrelationReport {
	report := models.CorrelationReport{Correlations: []models.Correlation{}}
	if completeness.Count() < minCorrelateDomains {
		report.Message = msgNeedTwoDomains
		return report
	}

	sessions := completedSessions(snap.Sleeps)
	if completeness.Feeding && completeness.Sleep {
		if c := feedingBeforeSleep(snap.Feedings, sessions); c != nil {
			report.Correlations = append(report.Correlations, *c)
		}
	}
	if completeness.Diaper && completeness.Sleep {
		if c := diaperSleepDisruption(snap.Diapers, sessions); c != nil {
			report.Correlations = append(report.Correlations, *c)
		}
	}

	if len(report.Correlations) == 0 {
		report.Message = msgNoCorrelations
	}
	return report
}

func completedSessions(sessions []models.SleepSession) []models.SleepSession {
	out := make([]models.SleepSession, 0, len(sessions))
	for _, s := range models.SortedSleeps(sessions) {
		if s.Completed() {
			out = append(out, s)
		}
	}
	return out
}

// anyWithin reports whether a sorted series has a timestamp in [from, to)
// (or [from, to] when inclusive is set)
func anyWithin(sorted []time.Time, from, to time.Time, inclusive bool) bool {
	i := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Before(from) })
	if i == len(sorted) {
		return false
	}
	if inclusive {
		return !sorted[i].After(to)
	}
	return sorted[i].Before(to)
}

// feedingBeforeSleep compares mean sleep duration for sessions preceded by a
// feeding within the window against those that were not. Reported only when
// the fed-before mean is strictly larger.
func feedingBeforeSleep(feedings []models.FeedingEvent, sessions []models.SleepSession) *models.Correlation {
	times := make([]time.Time, 0, len(feedings))
	for _, f := range models.SortedFeedings(feedings) {
		times = append(times, f.Time)
	}

	var fedSum, notFedSum float64
	var fed, notFed int
	for _, s := range sessions {
		if anyWithin(times, s.Start.Add(-FeedingBeforeSleepWindow), s.Start, false) {
			fedSum += s.DurationHours()
			fed++
		} else {
			notFedSum += s.DurationHours()
			notFed++
		}
	}
	if fed == 0 || notFed == 0 {
		return nil
	}

	fedMean := fedSum / float64(fed)
	notFedMean := notFedSum / float64(notFed)
	if fedMean <= notFedMean {
		return nil
	}

	return &models.Correlation{
		Type:    models.CorrelationFeedingBeforeSleep,
		Domains: []string{"feeding", "sleep"},
		Description: fmt.Sprintf("Sleep after a feeding lasts %.1f hours on average, versus %.1f hours otherwise",
			fedMean, notFedMean),
		Strength: (fedMean - notFedMean) / fedMean,
		Details: map[string]interface{}{
			"fed_before_avg_hours":     fedMean,
			"not_fed_before_avg_hours": notFedMean,
			"fed_before_sessions":      fed,
			"not_fed_before_sessions":  notFed,
			"window_minutes":           FeedingBeforeSleepWindow.Minutes(),
		},
	}
}

// diaperSleepDisruption measures the share of sessions with a diaper change
// between onset and wake, inclusive
func diaperSleepDisruption(diapers []models.DiaperEvent, sessions []models.SleepSession) *models.Correlation {
	if len(sessions) == 0 {
		return nil
	}

	times := make([]time.Time, 0, len(diapers))
	for _, d := range models.SortedDiapers(diapers) {
		times = append(times, d.Time)
	}

	disrupted := 0
	for _, s := range sessions {
		if anyWithin(times, s.Start, *s.End, true) {
			disrupted++
		}
	}

	rate := float64(disrupted) / float64(len(sessions))
	if rate <= DisruptionThreshold {
		return nil
	}

	return &models.Correlation{
		Type:        models.CorrelationDiaperSleepDisrupt,
		Domains:     []string{"diaper", "sleep"},
		Description: fmt.Sprintf("%.0f%% of sleep sessions include a diaper change", rate*100),
		Strength:    rate,
		Details: map[string]interface{}{
			"disrupted_sessions": disrupted,
			"total_sessions":     len(sessions),
			"disruption_rate":    rate,
		},
	}
}
