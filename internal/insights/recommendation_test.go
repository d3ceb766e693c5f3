package insights

import (
	"testing"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(recs []models.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

func findRecommendation(recs []models.Recommendation, title string) *models.Recommendation {
	for i := range recs {
		if recs[i].Title == title {
			return &recs[i]
		}
	}
	return nil
}

func TestRecommendations_NewbornFeedingFrequency(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	in := RecommendationInput{
		AgeMonths:    1,
		Completeness: models.DataCompleteness{Feeding: true},
		Feeding:      &models.FeedingInsights{Basic: &models.FeedingBasicInsights{FeedingsPerDay: 6}},
	}

	recs := engine.Recommendations(in)
	require.NotEmpty(t, recs)
	assert.Equal(t, "Increase feeding frequency", recs[0].Title)
	assert.Equal(t, models.PriorityHigh, recs[0].Priority)
	assert.Equal(t, models.CategoryFeeding, recs[0].Category)

	in.Feeding.Basic.FeedingsPerDay = 9
	assert.Nil(t, findRecommendation(engine.Recommendations(in), "Increase feeding frequency"))

	in.Feeding.Basic.FeedingsPerDay = 6
	in.AgeMonths = 4
	assert.Nil(t, findRecommendation(engine.Recommendations(in), "Increase feeding frequency"))
}

func TestRecommendations_SleepRules(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	in := RecommendationInput{
		AgeMonths:    5,
		Completeness: models.DataCompleteness{Sleep: true},
		Sleep: &models.SleepInsights{
			Patterns: &models.SleepPatterns{Quality: models.SleepQuality{Score: 3, RecommendedHours: 13}},
			Anomalies: []models.Anomaly{
				{Type: models.AnomalyTypeFragmentedSleep},
				{Type: models.AnomalyTypeBedtimeInconsistency},
			},
		},
	}

	recs := engine.Recommendations(in)

	quality := findRecommendation(recs, "Improve sleep quality")
	require.NotNil(t, quality)
	assert.Equal(t, models.PriorityHigh, quality.Priority)

	fragmented := findRecommendation(recs, "Consolidate sleep")
	require.NotNil(t, fragmented)
	assert.Equal(t, models.PriorityMedium, fragmented.Priority)

	bedtime := findRecommendation(recs, "Keep a consistent bedtime")
	require.NotNil(t, bedtime)
	assert.Equal(t, models.PriorityMedium, bedtime.Priority)
}

func TestRecommendations_HealthAndGrowth(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	in := RecommendationInput{
		AgeMonths:    2,
		Completeness: models.DataCompleteness{Diaper: true, Growth: true},
		Diaper: &models.DiaperInsights{
			Basic:  &models.DiaperBasicInsights{WetPerDay: 2, SoiledPerDay: 0.5},
			Health: &models.DiaperHealthIndicators{Evaluated: true, HydrationConcern: true, ConstipationConcern: true},
		},
		Growth: &models.GrowthInsights{
			Trends: &models.GrowthTrends{Weight: models.Trend{Direction: models.TrendDecreasing}},
		},
	}

	recs := engine.Recommendations(in)

	for _, title := range []string{"Monitor hydration", "Watch for constipation", "Check weight gain"} {
		assert.NotNil(t, findRecommendation(recs, title), title)
	}
	assert.Equal(t, models.CategoryHealth, findRecommendation(recs, "Monitor hydration").Category)
	assert.Equal(t, models.PriorityMedium, findRecommendation(recs, "Watch for constipation").Priority)
	assert.Equal(t, models.CategoryGrowth, findRecommendation(recs, "Check weight gain").Category)
}

func TestRecommendations_CorrelationRules(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	in := RecommendationInput{
		AgeMonths:    8,
		Completeness: models.DataCompleteness{Feeding: true, Sleep: true, Diaper: true, Growth: true},
		Correlations: []models.Correlation{
			{Type: models.CorrelationFeedingBeforeSleep},
			{Type: models.CorrelationDiaperSleepDisrupt},
		},
	}

	recs := engine.Recommendations(in)
	assert.Equal(t, []string{"Feed before sleep", "Change diapers before sleep", "Solids and crawling"}, titles(recs))
}

func TestRecommendations_DevelopmentBands(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	full := models.DataCompleteness{Feeding: true, Sleep: true, Diaper: true, Growth: true}

	tests := []struct {
		age  float64
		want string
	}{
		{0.5, "Tummy time"},
		{3, "Reaching and rolling"},
		{6, "Solids and crawling"},
		{11.9, "Solids and crawling"},
		{12, "Walking and words"},
	}
	for _, tt := range tests {
		recs := engine.Recommendations(RecommendationInput{AgeMonths: tt.age, Completeness: full})
		require.Len(t, recs, 1)
		assert.Equal(t, tt.want, recs[0].Title)
		assert.Equal(t, models.CategoryDevelopment, recs[0].Category)
	}
}

func TestRecommendations_TrackingNudgeNamesMissingDomains(t *testing.T) {
	engine := NewEngine(DefaultThresholds())

	recs := engine.Recommendations(RecommendationInput{
		AgeMonths:    6,
		Completeness: models.DataCompleteness{Feeding: true, Sleep: true},
	})

	nudge := findRecommendation(recs, "Track more activities")
	require.NotNil(t, nudge)
	assert.Equal(t, models.CategoryTracking, nudge.Category)
	assert.Contains(t, nudge.Description, "growth, diaper")
}

func TestRecommendations_OrderedByPriority(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	in := RecommendationInput{
		AgeMonths:    1,
		Completeness: models.DataCompleteness{Feeding: true, Sleep: true},
		Feeding:      &models.FeedingInsights{Basic: &models.FeedingBasicInsights{FeedingsPerDay: 5}},
		Sleep: &models.SleepInsights{
			Patterns:  &models.SleepPatterns{Quality: models.SleepQuality{Score: 2}},
			Anomalies: []models.Anomaly{{Type: models.AnomalyTypeFragmentedSleep}},
		},
		Correlations: []models.Correlation{{Type: models.CorrelationFeedingBeforeSleep}},
	}

	recs := engine.Recommendations(in)
	require.Len(t, recs, 6)

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, priorityRank[recs[i-1].Priority], priorityRank[recs[i].Priority])
	}
	assert.Equal(t, []string{
		"Increase feeding frequency",
		"Improve sleep quality",
		"Consolidate sleep",
		"Feed before sleep",
		"Tummy time",
		"Track more activities",
	}, titles(recs))
}
