package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

const (
	newbornAgeMonths      = 3
	minNewbornFeedsPerDay = 8.0
	lowSleepQualityScore  = 4
)

// RecommendationInput is everything the rule table may consult. Domain
// results may be nil or insufficient; rules skip what they cannot read.
type RecommendationInput struct {
	AgeMonths    float64
	AgeKnown     bool
	Completeness models.DataCompleteness
	Feeding      *models.FeedingInsights
	Sleep        *models.SleepInsights
	Growth       *models.GrowthInsights
	Diaper       *models.DiaperInsights
	Correlations []models.Correlation
}

type recommendationRule struct {
	name    string
	applies func(in RecommendationInput) bool
	build   func(in RecommendationInput) models.Recommendation
}

// recommendationRules are independent and additive; every rule whose
// predicate holds contributes one recommendation.
var recommendationRules = []recommendationRule{
	{
		name: "newborn_feeding_frequency",
		applies: func(in RecommendationInput) bool {
			return in.AgeMonths < newbornAgeMonths && feedingReady(in) &&
				in.Feeding.Basic.FeedingsPerDay < minNewbornFeedsPerDay
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category: models.CategoryFeeding,
				Title:    "Increase feeding frequency",
				Description: fmt.Sprintf("Newborns usually feed at least %.0f times a day; recent records average %.1f.",
					minNewbornFeedsPerDay, in.Feeding.Basic.FeedingsPerDay),
				Priority: models.PriorityHigh,
			}
		},
	},
	{
		name: "low_sleep_quality",
		applies: func(in RecommendationInput) bool {
			return sleepReady(in) && in.Sleep.Patterns.Quality.Score < lowSleepQualityScore
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category: models.CategorySleep,
				Title:    "Improve sleep quality",
				Description: fmt.Sprintf("Sleep quality scored %d out of 10. Aim for about %.0f hours of sleep a day with a calm, regular routine.",
					in.Sleep.Patterns.Quality.Score, in.Sleep.Patterns.Quality.RecommendedHours),
				Priority: models.PriorityHigh,
			}
		},
	},
	{
		name: "fragmented_sleep",
		applies: func(in RecommendationInput) bool {
			return in.Sleep != nil && hasAnomaly(in.Sleep.Anomalies, models.AnomalyTypeFragmentedSleep)
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategorySleep,
				Title:       "Consolidate sleep",
				Description: "Sleep is split into many short sessions. Longer awake windows and a consistent nap schedule can help consolidate it.",
				Priority:    models.PriorityMedium,
			}
		},
	},
	{
		name: "inconsistent_bedtime",
		applies: func(in RecommendationInput) bool {
			return in.Sleep != nil && hasAnomaly(in.Sleep.Anomalies, models.AnomalyTypeBedtimeInconsistency)
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategorySleep,
				Title:       "Keep a consistent bedtime",
				Description: "Bedtime varies by more than an hour. Starting the bedtime routine at the same time each evening helps settle sleep.",
				Priority:    models.PriorityMedium,
			}
		},
	},
	{
		name: "hydration",
		applies: func(in RecommendationInput) bool {
			return in.Diaper != nil && in.Diaper.Health != nil && in.Diaper.Health.HydrationConcern
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryHealth,
				Title:       "Monitor hydration",
				Description: fmt.Sprintf("Wet diapers average %.1f per day. Watch fluid intake and consult a pediatrician if this continues.", in.Diaper.Basic.WetPerDay),
				Priority:    models.PriorityHigh,
			}
		},
	},
	{
		name: "constipation",
		applies: func(in RecommendationInput) bool {
			return in.Diaper != nil && in.Diaper.Health != nil && in.Diaper.Health.ConstipationConcern
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryHealth,
				Title:       "Watch for constipation",
				Description: fmt.Sprintf("Soiled diapers average %.1f per day. Mention this at the next checkup if it persists.", in.Diaper.Basic.SoiledPerDay),
				Priority:    models.PriorityMedium,
			}
		},
	},
	{
		name: "weight_loss",
		applies: func(in RecommendationInput) bool {
			if in.Growth == nil || in.Growth.InsufficientData {
				return false
			}
			if hasAnomaly(in.Growth.Anomalies, models.AnomalyTypeWeightLoss) {
				return true
			}
			return in.Growth.Trends != nil && in.Growth.Trends.Weight.Direction == models.TrendDecreasing
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryGrowth,
				Title:       "Check weight gain",
				Description: "Recent measurements show weight going down. Confirm the measurements and talk to a pediatrician.",
				Priority:    models.PriorityHigh,
			}
		},
	},
	{
		name: "feeding_before_sleep",
		applies: func(in RecommendationInput) bool {
			return hasCorrelation(in.Correlations, models.CorrelationFeedingBeforeSleep)
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryRoutine,
				Title:       "Feed before sleep",
				Description: "Sleep tends to last longer after a feeding in the hour before. Consider keeping a feed in the pre-sleep routine.",
				Priority:    models.PriorityLow,
			}
		},
	},
	{
		name: "diaper_sleep_disruption",
		applies: func(in RecommendationInput) bool {
			return hasCorrelation(in.Correlations, models.CorrelationDiaperSleepDisrupt)
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryRoutine,
				Title:       "Change diapers before sleep",
				Description: "Diaper changes often interrupt sleep. A fresh diaper right before sleep may reduce wake-ups.",
				Priority:    models.PriorityLow,
			}
		},
	},
	{
		name:    "development",
		applies: func(RecommendationInput) bool { return true },
		build: func(in RecommendationInput) models.Recommendation {
			rec := models.Recommendation{
				Category: models.CategoryDevelopment,
				Priority: models.PriorityLow,
			}
			switch {
			case in.AgeMonths < 3:
				rec.Title = "Tummy time"
				rec.Description = "Short daily tummy time sessions build neck and shoulder strength."
			case in.AgeMonths < 6:
				rec.Title = "Reaching and rolling"
				rec.Description = "Offer toys just out of reach to encourage reaching, grasping and rolling."
			case in.AgeMonths < 12:
				rec.Title = "Solids and crawling"
				rec.Description = "Introduce a variety of solid foods and give plenty of floor time for sitting and crawling."
			default:
				rec.Title = "Walking and words"
				rec.Description = "Encourage walking with support and name everyday objects to grow vocabulary."
			}
			return rec
		},
	},
	{
		name: "tracking",
		applies: func(in RecommendationInput) bool {
			return in.Completeness.Count() < 4
		},
		build: func(in RecommendationInput) models.Recommendation {
			return models.Recommendation{
				Category:    models.CategoryTracking,
				Title:       "Track more activities",
				Description: fmt.Sprintf("Log more %s records to unlock fuller insights.", strings.Join(missingDomains(in.Completeness), ", ")),
				Priority:    models.PriorityLow,
			}
		},
	},
}

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// Recommendations evaluates every rule and returns the matches ordered by
// priority, keeping rule order within a priority
func (e *Engine) Recommendations(in RecommendationInput) []models.Recommendation {
	recs := []models.Recommendation{}
	for _, rule := range recommendationRules {
		if rule.applies(in) {
			recs = append(recs, rule.build(in))
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return priorityRank[recs[i].Priority] < priorityRank[recs[j].Priority]
	})
	return recs
}

func feedingReady(in RecommendationInput) bool {
	return in.Feeding != nil && !in.Feeding.InsufficientData && in.Feeding.Basic != nil
}

func sleepReady(in RecommendationInput) bool {
	return in.Sleep != nil && !in.Sleep.InsufficientData && in.Sleep.Patterns != nil
}

func hasAnomaly(anomalies []models.Anomaly, kind models.AnomalyType) bool {
	for _, a := range anomalies {
		if a.Type == kind {
			return true
		}
	}
	return false
}

func hasCorrelation(correlations []models.Correlation, kind models.CorrelationType) bool {
	for _, c := range correlations {
		if c.Type == kind {
			return true
		}
	}
	return false
}

func missingDomains(c models.DataCompleteness) []string {
	var missing []string
	if !c.Feeding {
		missing = append(missing, "feeding")
	}
	if !c.Sleep {
		missing = append(missing, "sleep")
	}
	if !c.Growth {
		missing = append(missing, "growth")
	}
	if !c.Diaper {
		missing = append(missing, "diaper")
	}
	return missing
}
