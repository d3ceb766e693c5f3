package analytics

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(start time.Time, hours float64) models.SleepSession {
	end := start.Add(time.Duration(hours * float64(time.Hour)))
	return models.SleepSession{Start: start, End: &end}
}

func napsAndNights(days int) []models.SleepSession {
	var sessions []models.SleepSession
	for day := 0; day < days; day++ {
		d := baseTime.AddDate(0, 0, day)
		sessions = append(sessions,
			session(d.Add(13*time.Hour), 1.5),
			session(d.Add(20*time.Hour), 10),
		)
	}
	return sessions
}

func TestClusterSleep_SeparatesNapsFromNights(t *testing.T) {
	clusters := ClusterSleep(napsAndNights(6), MinClusterSessions)
	require.NotNil(t, clusters)

	assert.True(t, clusters.Differentiated)
	assert.Equal(t, "night_sleep", clusters.NightSleep.Label)
	assert.Equal(t, "nap", clusters.Nap.Label)
	assert.Equal(t, 6, clusters.NightSleep.Count)
	assert.Equal(t, 6, clusters.Nap.Count)
	assert.InDelta(t, 10.0, clusters.NightSleep.AverageDurationHours, 1e-9)
	assert.InDelta(t, 1.5, clusters.Nap.AverageDurationHours, 1e-9)
	assert.Equal(t, []int{20}, clusters.NightSleep.TypicalStartHours)
	assert.Equal(t, []int{13}, clusters.Nap.TypicalStartHours)
	assert.Greater(t, clusters.Separation, 0.0)
}

func TestClusterSleep_NightMeanNeverBelowNap(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for run := 0; run < 25; run++ {
		var sessions []models.SleepSession
		n := 10 + rng.IntN(20)
		for i := 0; i < n; i++ {
			start := baseTime.Add(time.Duration(rng.IntN(24*14)) * time.Hour)
			sessions = append(sessions, session(start, 0.25+rng.Float64()*11))
		}

		clusters := ClusterSleep(sessions, MinClusterSessions)
		assert.Equal(t, "night_sleep", clusters.NightSleep.Label)
		assert.Equal(t, "nap", clusters.Nap.Label)
		assert.GreaterOrEqual(t, clusters.NightSleep.AverageDurationHours, clusters.Nap.AverageDurationHours)
		if clusters.Differentiated {
			assert.Equal(t, n, clusters.NightSleep.Count+clusters.Nap.Count)
		}
	}
}

func TestClusterSleep_Deterministic(t *testing.T) {
	sessions := napsAndNights(8)

	first := ClusterSleep(sessions, MinClusterSessions)
	second := ClusterSleep(sessions, MinClusterSessions)
	assert.Equal(t, first, second)
}

func TestClusterSleep_InsufficientSessions(t *testing.T) {
	clusters := ClusterSleep(napsAndNights(4), MinClusterSessions)

	assert.False(t, clusters.Differentiated)
	assert.Contains(t, clusters.Message, "at least 10")
	assert.Equal(t, "nap", clusters.Nap.Label)
	assert.Equal(t, "night_sleep", clusters.NightSleep.Label)
}

func TestClusterSleep_IgnoresOngoingSessions(t *testing.T) {
	sessions := napsAndNights(4)
	for i := 0; i < 4; i++ {
		sessions = append(sessions, models.SleepSession{Start: baseTime.AddDate(0, 1, i)})
	}

	clusters := ClusterSleep(sessions, MinClusterSessions)
	assert.False(t, clusters.Differentiated)
	assert.NotEmpty(t, clusters.Message)
}

func TestClusterSleep_IdenticalSessionsDoNotDifferentiate(t *testing.T) {
	var sessions []models.SleepSession
	for day := 0; day < 12; day++ {
		sessions = append(sessions, session(baseTime.AddDate(0, 0, day).Add(14*time.Hour), 2))
	}

	clusters := ClusterSleep(sessions, MinClusterSessions)
	assert.False(t, clusters.Differentiated)
	assert.Equal(t, "insufficient differentiation", clusters.Nap.Message)
	assert.Equal(t, "insufficient differentiation", clusters.NightSleep.Message)
}
