package insights

import (
	"testing"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diaperDays(days int, hours []int, kind models.DiaperType) []models.DiaperEvent {
	var changes []models.DiaperEvent
	for day := 0; day < days; day++ {
		for _, hour := range hours {
			changes = append(changes, diaper(at(day, hour, 0), kind))
		}
	}
	return changes
}

func TestDiaperInsights_YoungInfantConcerns(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	birth := baseTime.AddDate(0, 0, -60)
	snap := models.Snapshot{
		Subject: models.Subject{BirthDate: &birth},
		Diapers: diaperDays(4, []int{8, 12, 16}, models.DiaperTypeWet),
		AsOf:    baseTime.AddDate(0, 0, 5),
	}

	result := engine.DiaperInsights(snap)
	require.False(t, result.InsufficientData)

	assert.Equal(t, 12, result.Basic.TotalChanges)
	assert.Equal(t, 4, result.Basic.DaysTracked)
	assert.InDelta(t, 3.0, result.Basic.AverageChangesPerDay, 1e-9)
	assert.InDelta(t, 3.0, result.Basic.WetPerDay, 1e-9)

	require.NotNil(t, result.Health)
	assert.True(t, result.Health.Evaluated)
	assert.True(t, result.Health.HydrationConcern)
	assert.True(t, result.Health.ConstipationConcern)
	assert.Len(t, result.Health.Notes, 2)

	assert.Equal(t, []int{8, 12, 16}, result.Patterns.PeakHours)
	assert.Equal(t, 4, result.Patterns.HourlyDistribution[8])
}

func TestDiaperInsights_MixedCountsTowardBoth(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	var changes []models.DiaperEvent
	for day := 0; day < 3; day++ {
		changes = append(changes,
			diaper(at(day, 7, 0), models.DiaperTypeWet),
			diaper(at(day, 9, 0), models.DiaperTypeWet),
			diaper(at(day, 11, 0), models.DiaperTypeMixed),
			diaper(at(day, 13, 0), models.DiaperTypeMixed),
			diaper(at(day, 15, 0), models.DiaperTypeSoiled),
		)
	}

	result := engine.DiaperInsights(models.Snapshot{Diapers: changes})
	require.False(t, result.InsufficientData)

	assert.Equal(t, map[models.DiaperType]int{
		models.DiaperTypeWet:    6,
		models.DiaperTypeMixed:  6,
		models.DiaperTypeSoiled: 3,
	}, result.Basic.TypeDistribution)
	assert.InDelta(t, 4.0, result.Basic.WetPerDay, 1e-9)
	assert.InDelta(t, 3.0, result.Basic.SoiledPerDay, 1e-9)
	assert.True(t, result.Health.Evaluated)
	assert.False(t, result.Health.HydrationConcern)
	assert.False(t, result.Health.ConstipationConcern)
}

func TestDiaperInsights_HealthNeedsThreeDays(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	snap := models.Snapshot{Diapers: diaperDays(2, []int{8, 14, 20}, models.DiaperTypeWet)}

	result := engine.DiaperInsights(snap)
	require.False(t, result.InsufficientData)

	assert.False(t, result.Health.Evaluated)
	assert.False(t, result.Health.HydrationConcern)
	assert.False(t, result.Health.ConstipationConcern)
	assert.NotEmpty(t, result.Health.Notes)
}

func TestDiaperInsights_OlderSubjectHasNoConcerns(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	birth := baseTime.AddDate(-2, 0, 0)
	snap := models.Snapshot{
		Subject: models.Subject{BirthDate: &birth},
		Diapers: diaperDays(4, []int{8, 12, 16}, models.DiaperTypeWet),
		AsOf:    baseTime.AddDate(0, 0, 5),
	}

	result := engine.DiaperInsights(snap)
	assert.True(t, result.Health.Evaluated)
	assert.False(t, result.Health.HydrationConcern)
	assert.False(t, result.Health.ConstipationConcern)
}

func TestDiaperInsights_PredictsNextChange(t *testing.T) {
	engine := NewEngine(DefaultThresholds())
	snap := models.Snapshot{Diapers: diaperDays(1, []int{6, 9, 12, 15, 18}, models.DiaperTypeWet)}

	result := engine.DiaperInsights(snap)
	require.NotNil(t, result.Predictions.NextChange)
	assert.Equal(t, at(0, 21, 0), result.Predictions.NextChange.PredictedTime)
}

func TestPeakHours(t *testing.T) {
	counts := make([]int, 24)
	counts[2] = 3
	counts[5] = 3
	counts[10] = 5
	counts[20] = 1

	assert.Equal(t, []int{10, 2, 5}, peakHours(counts, 3))
	assert.Equal(t, []int{10}, peakHours(counts, 1))
	assert.Empty(t, peakHours(make([]int, 24), 3))
}
