// Package insights composes the analytics primitives into per-domain
// analyzers, the cross-domain correlation engine and the recommendation rule
// table.
//
// Every Engine method is a pure function of the snapshot it receives: no I/O,
// no logging, no shared mutable state. Identical snapshots produce identical
// results, so the domain analyzers may be run concurrently by the caller.
package insights

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/analytics"
	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

// DaysPerMonth converts elapsed days into months for age and velocity
const DaysPerMonth = 30.44

// ErrUnknownScope is returned for an insight type the engine cannot dispatch
var ErrUnknownScope = errors.New("unknown insight scope")

// Thresholds holds the minimum sample gates applied by every analyzer
type Thresholds struct {
	MinFeedings        int     `mapstructure:"min_feedings"`
	MinSleepSessions   int     `mapstructure:"min_sleep_sessions"`
	MinDiaperChanges   int     `mapstructure:"min_diaper_changes"`
	MinGrowthPoints    int     `mapstructure:"min_growth_points"`
	MinTrailingGrowth  int     `mapstructure:"min_trailing_growth"`
	MinClusterSessions int     `mapstructure:"min_cluster_sessions"`
	MinShiftRecords    int     `mapstructure:"min_shift_records"`
	DefaultAgeMonths   float64 `mapstructure:"default_age_months"`
}

// DefaultThresholds returns the standard gates
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinFeedings:        5,
		MinSleepSessions:   5,
		MinDiaperChanges:   5,
		MinGrowthPoints:    2,
		MinTrailingGrowth:  3,
		MinClusterSessions: analytics.MinClusterSessions,
		MinShiftRecords:    analytics.MinShiftRecords,
		DefaultAgeMonths:   6,
	}
}

// withDefaults replaces unset gates with their defaults
func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.MinFeedings <= 0 {
		t.MinFeedings = d.MinFeedings
	}
	if t.MinSleepSessions <= 0 {
		t.MinSleepSessions = d.MinSleepSessions
	}
	if t.MinDiaperChanges <= 0 {
		t.MinDiaperChanges = d.MinDiaperChanges
	}
	if t.MinGrowthPoints < 2 {
		t.MinGrowthPoints = d.MinGrowthPoints
	}
	if t.MinTrailingGrowth < 3 {
		t.MinTrailingGrowth = d.MinTrailingGrowth
	}
	if t.MinClusterSessions <= 0 {
		t.MinClusterSessions = d.MinClusterSessions
	}
	if t.MinShiftRecords <= 0 {
		t.MinShiftRecords = d.MinShiftRecords
	}
	if t.DefaultAgeMonths <= 0 {
		t.DefaultAgeMonths = d.DefaultAgeMonths
	}
	return t
}

// Engine runs the insight analyzers over a record snapshot
type Engine struct {
	thresholds Thresholds
	now        func() time.Time
}

// NewEngine creates an engine with the given gates. Zero-valued gates fall
// back to DefaultThresholds.
func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{
		thresholds: thresholds.withDefaults(),
		now:        time.Now,
	}
}

// Thresholds returns the effective gates
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// referenceTime is the snapshot's AsOf, or the current time when unset
func (e *Engine) referenceTime(snap models.Snapshot) time.Time {
	if !snap.AsOf.IsZero() {
		return snap.AsOf
	}
	return e.now()
}

// ageMonths returns the subject's age at the reference time. When the birth
// date is unknown the default age is returned with known=false.
func (e *Engine) ageMonths(snap models.Snapshot) (months float64, known bool) {
	if snap.Subject.BirthDate == nil {
		return e.thresholds.DefaultAgeMonths, false
	}
	return monthsBetween(*snap.Subject.BirthDate, e.referenceTime(snap)), true
}

func monthsBetween(from, to time.Time) float64 {
	months := to.Sub(from).Hours() / 24 / DaysPerMonth
	if months < 0 {
		return 0
	}
	return months
}

func insufficientMessage(domain string, have, need int) string {
	return fmt.Sprintf("Not enough %s data yet: need at least %d records, have %d", domain, need, have)
}

// =============================================================================
// Scope dispatch
// =============================================================================

type scopeHandler func(e *Engine, snap models.Snapshot, report *models.InsightsReport)

var scopeHandlers = map[models.InsightScope]scopeHandler{
	models.ScopeFeeding: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		r.Feeding = e.FeedingInsights(snap)
	},
	models.ScopeSleep: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		r.Sleep = e.SleepInsights(snap)
	},
	models.ScopeGrowth: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		r.Growth = e.GrowthInsights(snap)
	},
	models.ScopeDiaper: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		r.Diaper = e.DiaperInsights(snap)
	},
	models.ScopeComprehensive: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		r.Comprehensive = e.ComprehensiveInsights(snap)
	},
	models.ScopeAll: func(e *Engine, snap models.Snapshot, r *models.InsightsReport) {
		c := e.ComprehensiveInsights(snap)
		r.Feeding, r.Sleep, r.Growth, r.Diaper = c.Feeding, c.Sleep, c.Growth, c.Diaper
		r.Comprehensive = c
	},
}

// ParseScope normalizes an insight type. An empty value selects the
// comprehensive scope.
func ParseScope(raw string) (models.InsightScope, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return models.ScopeComprehensive, nil
	}
	scope := models.InsightScope(value)
	if _, ok := scopeHandlers[scope]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, raw)
	}
	return scope, nil
}

// Scopes lists every scope Analyze accepts
func Scopes() []models.InsightScope {
	return []models.InsightScope{
		models.ScopeFeeding,
		models.ScopeSleep,
		models.ScopeGrowth,
		models.ScopeDiaper,
		models.ScopeComprehensive,
		models.ScopeAll,
	}
}

// Analyze runs the analyzers selected by scope over the snapshot
func (e *Engine) Analyze(scope models.InsightScope, snap models.Snapshot) (*models.InsightsReport, error) {
	handler, ok := scopeHandlers[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}

	report := &models.InsightsReport{
		SubjectID: snap.Subject.ID,
		Scope:     scope,
	}
	handler(e, snap, report)
	return report, nil
}
