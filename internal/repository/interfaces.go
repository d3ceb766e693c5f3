package repository

import (
	"context"
	"errors"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
)

// ErrSubjectNotFound is returned when no subject matches the requested id
var ErrSubjectNotFound = errors.New("subject not found")

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . RecordRepository

// RecordRepository supplies the caregiving records of a single subject.
// Every method is scoped to the given subject id.
type RecordRepository interface {
	GetSubject(ctx context.Context, subjectID string) (*models.Subject, error)
	GetFeedings(ctx context.Context, subjectID string) ([]models.FeedingEvent, error)
	GetSleepSessions(ctx context.Context, subjectID string) ([]models.SleepSession, error)
	GetDiaperChanges(ctx context.Context, subjectID string) ([]models.DiaperEvent, error)
	GetGrowthMeasurements(ctx context.Context, subjectID string) ([]models.GrowthMeasurement, error)
}
