package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
	"github.com/JonnyWalker81/babytracker/backend/internal/logger"
	"github.com/JonnyWalker81/babytracker/backend/internal/metrics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/JonnyWalker81/babytracker/backend/internal/repository"
)

// recordKinds is a bitset of the record collections a scope needs
type recordKinds uint8

const (
	kindFeedings recordKinds = 1 << iota
	kindSleeps
	kindDiapers
	kindGrowth

	kindAll = kindFeedings | kindSleeps | kindDiapers | kindGrowth
)

// scopeFetches lists the collections each scope reads. Scopes that
// produce correlations or recommendations need everything.
var scopeFetches = map[models.InsightScope]recordKinds{
	models.ScopeFeeding:       kindFeedings,
	models.ScopeSleep:         kindSleeps,
	models.ScopeGrowth:        kindGrowth,
	models.ScopeDiaper:        kindDiapers,
	models.ScopeComprehensive: kindAll,
	models.ScopeAll:           kindAll,
}

type insightsService struct {
	repo    repository.RecordRepository
	engine  *insights.Engine
	metrics *metrics.Recorder
	clock   func() time.Time
}

// Option configures an InsightsService
type Option func(*insightsService)

// WithMetrics records analysis metrics on rec
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *insightsService) { s.metrics = rec }
}

// WithClock sets the reference time source used for age computations
func WithClock(clock func() time.Time) Option {
	return func(s *insightsService) { s.clock = clock }
}

// NewInsightsService creates a new insights service
func NewInsightsService(repo repository.RecordRepository, engine *insights.Engine, opts ...Option) InsightsService {
	s := &insightsService{
		repo:   repo,
		engine: engine,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = insights.NewEngine(insights.DefaultThresholds())
	}
	return s
}

// GetFeedingInsights returns feeding insights for a subject
func (s *insightsService) GetFeedingInsights(ctx context.Context, subjectID string) (*models.FeedingInsights, error) {
	report, err := s.GetInsights(ctx, subjectID, models.ScopeFeeding)
	if err != nil {
		return nil, err
	}
	return report.Feeding, nil
}

// GetSleepInsights returns sleep insights for a subject
func (s *insightsService) GetSleepInsights(ctx context.Context, subjectID string) (*models.SleepInsights, error) {
	report, err := s.GetInsights(ctx, subjectID, models.ScopeSleep)
	if err != nil {
		return nil, err
	}
	return report.Sleep, nil
}

// GetGrowthInsights returns growth insights for a subject
func (s *insightsService) GetGrowthInsights(ctx context.Context, subjectID string) (*models.GrowthInsights, error) {
	report, err := s.GetInsights(ctx, subjectID, models.ScopeGrowth)
	if err != nil {
		return nil, err
	}
	return report.Growth, nil
}

// GetDiaperInsights returns diaper insights for a subject
func (s *insightsService) GetDiaperInsights(ctx context.Context, subjectID string) (*models.DiaperInsights, error) {
	report, err := s.GetInsights(ctx, subjectID, models.ScopeDiaper)
	if err != nil {
		return nil, err
	}
	return report.Diaper, nil
}

// GetComprehensiveInsights returns every domain plus correlations and recommendations
func (s *insightsService) GetComprehensiveInsights(ctx context.Context, subjectID string) (*models.ComprehensiveInsights, error) {
	report, err := s.GetInsights(ctx, subjectID, models.ScopeComprehensive)
	if err != nil {
		return nil, err
	}
	return report.Comprehensive, nil
}

// GetInsights fetches the records the scope needs and runs the engine over them
func (s *insightsService) GetInsights(ctx context.Context, subjectID string, scope models.InsightScope) (*models.InsightsReport, error) {
	start := time.Now()
	ctx = logger.WithSubjectID(ctx, subjectID)
	log := logger.Ctx(ctx).With(logger.String("scope", string(scope)))

	kinds, ok := scopeFetches[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %q", insights.ErrUnknownScope, scope)
	}

	if err := ValidateSubjectID(subjectID); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, subjectID, kinds)
	if err != nil {
		status := metrics.StatusError
		if errors.Is(err, repository.ErrSubjectNotFound) {
			status = metrics.StatusNotFound
			log.Warn("subject not found")
		} else {
			log.Error("failed to load records", logger.Err(err))
		}
		s.metrics.ObserveAnalysis(string(scope), status, time.Since(start))
		return nil, err
	}

	report, err := s.engine.Analyze(scope, snap)
	if err != nil {
		s.metrics.ObserveAnalysis(string(scope), metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("failed to analyze records: %w", err)
	}

	gated := s.recordInsufficient(report)
	elapsed := time.Since(start)
	s.metrics.ObserveAnalysis(string(scope), metrics.StatusSuccess, elapsed)

	log.Info("computed insights",
		logger.Int("feedings", len(snap.Feedings)),
		logger.Int("sleep_sessions", len(snap.Sleeps)),
		logger.Int("diaper_changes", len(snap.Diapers)),
		logger.Int("growth_measurements", len(snap.Growth)),
		logger.Strings("insufficient_domains", gated),
		logger.Duration("duration", elapsed),
	)

	return report, nil
}

// loadSnapshot reads the subject and then the requested collections concurrently
func (s *insightsService) loadSnapshot(ctx context.Context, subjectID string, kinds recordKinds) (models.Snapshot, error) {
	subject, err := s.repo.GetSubject(ctx, subjectID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to fetch subject: %w", err)
	}

	snap := models.Snapshot{
		Subject: *subject,
		AsOf:    s.clock(),
	}

	// Each goroutine writes a distinct field of snap.
	g, gctx := errgroup.WithContext(ctx)

	if kinds&kindFeedings != 0 {
		g.Go(func() error {
			feedings, err := s.repo.GetFeedings(gctx, subjectID)
			if err != nil {
				return fmt.Errorf("failed to fetch feedings: %w", err)
			}
			snap.Feedings = feedings
			return nil
		})
	}
	if kinds&kindSleeps != 0 {
		g.Go(func() error {
			sleeps, err := s.repo.GetSleepSessions(gctx, subjectID)
			if err != nil {
				return fmt.Errorf("failed to fetch sleep sessions: %w", err)
			}
			snap.Sleeps = sleeps
			return nil
		})
	}
	if kinds&kindDiapers != 0 {
		g.Go(func() error {
			diapers, err := s.repo.GetDiaperChanges(gctx, subjectID)
			if err != nil {
				return fmt.Errorf("failed to fetch diaper changes: %w", err)
			}
			snap.Diapers = diapers
			return nil
		})
	}
	if kinds&kindGrowth != 0 {
		g.Go(func() error {
			growth, err := s.repo.GetGrowthMeasurements(gctx, subjectID)
			if err != nil {
				return fmt.Errorf("failed to fetch growth measurements: %w", err)
			}
			snap.Growth = growth
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// recordInsufficient counts gated domains and returns their names
func (s *insightsService) recordInsufficient(report *models.InsightsReport) []string {
	feeding, sleep, growth, diaper := report.Feeding, report.Sleep, report.Growth, report.Diaper
	if c := report.Comprehensive; c != nil {
		feeding, sleep, growth, diaper = c.Feeding, c.Sleep, c.Growth, c.Diaper
	}

	var gated []string
	if feeding != nil && feeding.InsufficientData {
		gated = append(gated, "feeding")
	}
	if sleep != nil && sleep.InsufficientData {
		gated = append(gated, "sleep")
	}
	if growth != nil && growth.InsufficientData {
		gated = append(gated, "growth")
	}
	if diaper != nil && diaper.InsufficientData {
		gated = append(gated, "diaper")
	}

	for _, domain := range gated {
		s.metrics.InsufficientData(domain)
	}
	return gated
}
