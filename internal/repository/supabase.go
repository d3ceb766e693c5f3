package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/JonnyWalker81/babytracker/backend/pkg/supabase"
)

const (
	tableSubjects           = "subjects"
	tableFeedings           = "feedings"
	tableSleepSessions      = "sleep_sessions"
	tableDiaperChanges      = "diaper_changes"
	tableGrowthMeasurements = "growth_measurements"
)

type supabaseRecordRepository struct {
	client *supabase.Client
}

// NewSupabaseRecordRepository creates a record repository backed by Supabase tables
func NewSupabaseRecordRepository(client *supabase.Client) RecordRepository {
	return &supabaseRecordRepository{client: client}
}

// subjectRow mirrors the subjects table; birth_date is a DATE column
type subjectRow struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birth_date"`
}

// growthRow mirrors the growth_measurements table; date is a DATE column
type growthRow struct {
	ID        string  `json:"id"`
	SubjectID string  `json:"subject_id"`
	Date      string  `json:"date"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
}

func (r *supabaseRecordRepository) GetSubject(ctx context.Context, subjectID string) (*models.Subject, error) {
	query := map[string]interface{}{
		"id": fmt.Sprintf("eq.%s", subjectID),
	}

	body, err := r.client.QueryWithToken(ctx, tableSubjects, query, UserTokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	var rows []subjectRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrSubjectNotFound
	}

	subject := &models.Subject{ID: rows[0].ID, Name: rows[0].Name}
	if rows[0].BirthDate != nil && *rows[0].BirthDate != "" {
		birth, err := parseDate(*rows[0].BirthDate)
		if err != nil {
			return nil, fmt.Errorf("invalid birth_date for subject %s: %w", subjectID, err)
		}
		subject.BirthDate = &birth
	}

	return subject, nil
}

func (r *supabaseRecordRepository) GetFeedings(ctx context.Context, subjectID string) ([]models.FeedingEvent, error) {
	var feedings []models.FeedingEvent
	if err := r.list(ctx, tableFeedings, subjectID, "time.asc", &feedings); err != nil {
		return nil, fmt.Errorf("failed to get feedings: %w", err)
	}
	return feedings, nil
}

func (r *supabaseRecordRepository) GetSleepSessions(ctx context.Context, subjectID string) ([]models.SleepSession, error) {
	var sessions []models.SleepSession
	if err := r.list(ctx, tableSleepSessions, subjectID, "start_time.asc", &sessions); err != nil {
		return nil, fmt.Errorf("failed to get sleep sessions: %w", err)
	}
	return sessions, nil
}

func (r *supabaseRecordRepository) GetDiaperChanges(ctx context.Context, subjectID string) ([]models.DiaperEvent, error) {
	var changes []models.DiaperEvent
	if err := r.list(ctx, tableDiaperChanges, subjectID, "time.asc", &changes); err != nil {
		return nil, fmt.Errorf("failed to get diaper changes: %w", err)
	}
	return changes, nil
}

func (r *supabaseRecordRepository) GetGrowthMeasurements(ctx context.Context, subjectID string) ([]models.GrowthMeasurement, error) {
	var rows []growthRow
	if err := r.list(ctx, tableGrowthMeasurements, subjectID, "date.asc", &rows); err != nil {
		return nil, fmt.Errorf("failed to get growth measurements: %w", err)
	}

	measurements := make([]models.GrowthMeasurement, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date for growth measurement %s: %w", row.ID, err)
		}
		measurements = append(measurements, models.GrowthMeasurement{
			ID:        row.ID,
			SubjectID: row.SubjectID,
			Date:      date,
			Height:    row.Height,
			Weight:    row.Weight,
		})
	}
	return measurements, nil
}

// list fetches every row of a table belonging to the subject
func (r *supabaseRecordRepository) list(ctx context.Context, table, subjectID, order string, out interface{}) error {
	query := map[string]interface{}{
		"subject_id": fmt.Sprintf("eq.%s", subjectID),
		"order":      order,
	}

	body, err := r.client.QueryWithToken(ctx, table, query, UserTokenFromContext(ctx))
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

type userTokenKey struct{}

// WithUserToken stores a caller JWT so queries run under row level security
func WithUserToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, userTokenKey{}, token)
}

// UserTokenFromContext returns the caller JWT stored by WithUserToken, or empty
func UserTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(userTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// parseDate accepts a DATE column value or a full timestamp
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
