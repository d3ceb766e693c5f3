package insights

import "github.com/JonnyWalker81/babytracker/backend/internal/models"

// ComprehensiveInsights runs every domain analyzer, then correlates the
// domains with sufficient data and evaluates the recommendation rules over
// whatever results are available.
func (e *Engine) ComprehensiveInsights(snap models.Snapshot) *models.ComprehensiveInsights {
	feeding := e.FeedingInsights(snap)
	sleep := e.SleepInsights(snap)
	growth := e.GrowthInsights(snap)
	diaper := e.DiaperInsights(snap)

	completeness := models.DataCompleteness{
		Feeding: !feeding.InsufficientData,
		Sleep:   !sleep.InsufficientData,
		Growth:  !growth.InsufficientData,
		Diaper:  !diaper.InsufficientData,
	}
	age, known := e.ageMonths(snap)
	correlations := e.Correlations(snap, completeness)

	recommendations := e.Recommendations(RecommendationInput{
		AgeMonths:    age,
		AgeKnown:     known,
		Completeness: completeness,
		Feeding:      feeding,
		Sleep:        sleep,
		Growth:       growth,
		Diaper:       diaper,
		Correlations: correlations.Correlations,
	})

	return &models.ComprehensiveInsights{
		Summary: models.InsightsSummary{
			SubjectID:        snap.Subject.ID,
			AgeMonths:        age,
			AgeKnown:         known,
			GeneratedAt:      e.referenceTime(snap),
			DataCompleteness: completeness,
			RecordCounts: map[string]int{
				"feedings":            len(snap.Feedings),
				"sleep_sessions":      len(snap.Sleeps),
				"diaper_changes":      len(snap.Diapers),
				"growth_measurements": len(snap.Growth),
			},
		},
		Correlations:    correlations.Correlations,
		CorrelationNote: correlations.Message,
		Recommendations: recommendations,
		Feeding:         feeding,
		Sleep:           sleep,
		Growth:          growth,
		Diaper:          diaper,
	}
}
