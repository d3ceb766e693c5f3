package analytics

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"gonum.org/v1/gonum/stat"
)

const (
	// MinClusterSessions is the fewest completed sessions the clusterer partitions
	MinClusterSessions = 10

	// clusterSeed makes centroid initialization reproducible across calls
	clusterSeed = 42

	maxKMeansIterations = 100

	labelNap        = "nap"
	labelNightSleep = "night_sleep"

	msgInsufficientDifferentiation = "insufficient differentiation"
)

// ClusterSleep partitions completed sleep sessions into naps and night sleep
// with 2-means over (sin hour, cos hour, duration). The cluster with the
// longer mean duration is labeled night sleep. minSessions values below
// MinClusterSessions are raised to it.
func ClusterSleep(sessions []models.SleepSession, minSessions int) *models.SleepClusters {
	if minSessions < MinClusterSessions {
		minSessions = MinClusterSessions
	}

	completed := make([]models.SleepSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Completed() {
			completed = append(completed, s)
		}
	}

	if len(completed) < minSessions {
		msg := fmt.Sprintf("Need at least %d completed sleep sessions for nap/night analysis", minSessions)
		return &models.SleepClusters{
			Message:    msg,
			Nap:        models.SleepCluster{Label: labelNap, Message: msg},
			NightSleep: models.SleepCluster{Label: labelNightSleep, Message: msg},
		}
	}

	points := standardize(sleepFeatures(completed))
	assignments, centroids := kMeans(points, 2, clusterSeed)

	groups := [2][]models.SleepSession{}
	for i, c := range assignments {
		groups[c] = append(groups[c], completed[i])
	}

	if len(groups[0]) == 0 || len(groups[1]) == 0 {
		return &models.SleepClusters{
			Message:    "Sleep sessions do not separate into naps and night sleep",
			Nap:        models.SleepCluster{Label: labelNap, Message: msgInsufficientDifferentiation},
			NightSleep: models.SleepCluster{Label: labelNightSleep, Message: msgInsufficientDifferentiation},
		}
	}

	a := describeCluster(groups[0])
	b := describeCluster(groups[1])
	night, nap := a, b
	if b.AverageDurationHours > a.AverageDurationHours {
		night, nap = b, a
	}
	night.Label = labelNightSleep
	nap.Label = labelNap

	return &models.SleepClusters{
		Differentiated: true,
		Separation:     distance(centroids[0], centroids[1]),
		Nap:            nap,
		NightSleep:     night,
	}
}

// fractionalHour returns the hour of day including minutes
func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func sleepFeatures(sessions []models.SleepSession) [][]float64 {
	features := make([][]float64, len(sessions))
	for i, s := range sessions {
		angle := 2 * math.Pi * fractionalHour(s.Start) / 24
		features[i] = []float64{math.Sin(angle), math.Cos(angle), s.DurationHours()}
	}
	return features
}

// standardize scales each column to zero mean and unit variance. Constant
// columns collapse to zero.
func standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return points
	}
	dims := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, dims)
	}

	column := make([]float64, len(points))
	for d := 0; d < dims; d++ {
		for i, p := range points {
			column[i] = p[d]
		}
		mean, std := stat.PopMeanStdDev(column, nil)
		for i := range points {
			if std < nearZero || math.IsNaN(std) {
				out[i][d] = 0
				continue
			}
			out[i][d] = (points[i][d] - mean) / std
		}
	}
	return out
}

// kMeans runs Lloyd's algorithm with k-means++ seeding from a fixed seed.
// Ties in assignment go to the lower cluster index.
func kMeans(points [][]float64, k int, seed uint64) ([]int, [][]float64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	centroids := seedCentroids(points, k, rng)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for c, centroid := range centroids {
				if d := distance(p, centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, len(points[0]))
		}
		for i, p := range points {
			c := assignments[i]
			counts[c]++
			for d, v := range p {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			// an empty cluster keeps its previous centroid
			if counts[c] == 0 {
				continue
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return assignments, centroids
}

func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clonePoint(points[rng.IntN(len(points))]))

	weights := make([]float64, len(points))
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			nearest := math.Inf(1)
			for _, c := range centroids {
				if d := distance(p, c); d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest * nearest
			total += weights[i]
		}

		if total == 0 {
			centroids = append(centroids, clonePoint(points[0]))
			continue
		}

		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, w := range weights {
			target -= w
			if target < 0 {
				chosen = i
				break
			}
		}
		centroids = append(centroids, clonePoint(points[chosen]))
	}
	return centroids
}

func describeCluster(sessions []models.SleepSession) models.SleepCluster {
	durations := make([]float64, len(sessions))
	starts := make([]time.Time, len(sessions))
	for i, s := range sessions {
		durations[i] = s.DurationHours()
		starts[i] = s.Start
	}
	return models.SleepCluster{
		Count:                len(sessions),
		AverageDurationHours: stat.Mean(durations, nil),
		TypicalStartHours:    ModalHours(starts),
	}
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func clonePoint(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
