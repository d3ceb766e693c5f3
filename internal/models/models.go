package models

import (
	"sort"
	"time"
)

// FeedingType represents how a feeding was given
type FeedingType string

const (
	FeedingTypeBreast FeedingType = "breastfeeding"
	FeedingTypeBottle FeedingType = "bottle"
	FeedingTypeSolid  FeedingType = "solid"
)

// FeedingSide represents the side offered during breastfeeding
type FeedingSide string

const (
	FeedingSideLeft  FeedingSide = "left_feeding"
	FeedingSideRight FeedingSide = "right_feeding"
	FeedingSideBoth  FeedingSide = "both_feeding"
)

// DiaperType represents the contents of a changed diaper
type DiaperType string

const (
	DiaperTypeWet    DiaperType = "wet"
	DiaperTypeSoiled DiaperType = "dirty"
	DiaperTypeMixed  DiaperType = "mixed"
)

// Subject represents the infant whose records are analyzed
type Subject struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
}

// FeedingEvent represents a single feeding
type FeedingEvent struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	SubjectID   string       `json:"subject_id,omitempty" yaml:"subject_id,omitempty"`
	Time        time.Time    `json:"time" yaml:"time"`
	FeedingType FeedingType  `json:"feeding_type" yaml:"feeding_type"`
	Quantity    *float64     `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Side        *FeedingSide `json:"last_side,omitempty" yaml:"last_side,omitempty"`
}

// SleepSession represents a sleep period. A nil End means the session is ongoing.
type SleepSession struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	SubjectID string     `json:"subject_id,omitempty" yaml:"subject_id,omitempty"`
	Start     time.Time  `json:"start_time" yaml:"start_time"`
	End       *time.Time `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

// Completed reports whether the session has ended
func (s SleepSession) Completed() bool {
	return s.End != nil
}

// Duration returns the session length, clamped at zero. Ongoing sessions return zero.
func (s SleepSession) Duration() time.Duration {
	if s.End == nil {
		return 0
	}
	d := s.End.Sub(s.Start)
	if d < 0 {
		return 0
	}
	return d
}

// DurationHours returns the session length in hours
func (s SleepSession) DurationHours() float64 {
	return s.Duration().Hours()
}

// DiaperEvent represents a diaper change
type DiaperEvent struct {
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	SubjectID  string     `json:"subject_id,omitempty" yaml:"subject_id,omitempty"`
	Time       time.Time  `json:"time" yaml:"time"`
	DiaperType DiaperType `json:"diaper_type" yaml:"diaper_type"`
}

// GrowthMeasurement represents a height/weight measurement on a given date
type GrowthMeasurement struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	SubjectID string    `json:"subject_id,omitempty" yaml:"subject_id,omitempty"`
	Date      time.Time `json:"date" yaml:"date"`
	Height    float64   `json:"height" yaml:"height"` // cm
	Weight    float64   `json:"weight" yaml:"weight"` // kg
}

// Snapshot is an immutable set of records for one subject, fetched once per analysis call.
// AsOf is the reference time used for age computations.
type Snapshot struct {
	Subject  Subject             `json:"subject" yaml:"subject"`
	Feedings []FeedingEvent      `json:"feedings" yaml:"feedings"`
	Sleeps   []SleepSession      `json:"sleep_sessions" yaml:"sleep_sessions"`
	Diapers  []DiaperEvent       `json:"diaper_changes" yaml:"diaper_changes"`
	Growth   []GrowthMeasurement `json:"growth_measurements" yaml:"growth_measurements"`
	AsOf     time.Time           `json:"as_of" yaml:"as_of"`
}

// SortedFeedings returns a copy of feedings ordered by time
func SortedFeedings(in []FeedingEvent) []FeedingEvent {
	out := make([]FeedingEvent, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// SortedSleeps returns a copy of sessions ordered by start time
func SortedSleeps(in []SleepSession) []SleepSession {
	out := make([]SleepSession, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// SortedDiapers returns a copy of diaper changes ordered by time
func SortedDiapers(in []DiaperEvent) []DiaperEvent {
	out := make([]DiaperEvent, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// SortedGrowth returns a copy of measurements ordered by date
func SortedGrowth(in []GrowthMeasurement) []GrowthMeasurement {
	out := make([]GrowthMeasurement, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
