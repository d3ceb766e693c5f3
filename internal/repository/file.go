package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"gopkg.in/yaml.v3"
)

var _ RecordRepository = (*FileRecordRepository)(nil)

// FileRecordRepository serves records from snapshot files, one subject per
// file. JSON and YAML are supported, selected by file extension.
type FileRecordRepository struct {
	snapshots map[string]models.Snapshot
}

// NewFileRecordRepository loads every snapshot file up front
func NewFileRecordRepository(paths ...string) (*FileRecordRepository, error) {
	repo := &FileRecordRepository{snapshots: make(map[string]models.Snapshot)}
	for _, path := range paths {
		snap, err := LoadSnapshotFile(path)
		if err != nil {
			return nil, err
		}
		if _, exists := repo.snapshots[snap.Subject.ID]; exists {
			return nil, fmt.Errorf("duplicate subject %s in %s", snap.Subject.ID, path)
		}
		repo.snapshots[snap.Subject.ID] = snap
	}
	return repo, nil
}

// LoadSnapshotFile decodes a single snapshot file
func LoadSnapshotFile(path string) (models.Snapshot, error) {
	var snap models.Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snap)
	case ".json":
		err = json.Unmarshal(data, &snap)
	default:
		return snap, fmt.Errorf("unsupported snapshot format %q", ext)
	}
	if err != nil {
		return snap, fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	if snap.Subject.ID == "" {
		return snap, fmt.Errorf("snapshot %s has no subject id", path)
	}
	return snap, nil
}

// AsOf returns the reference time recorded in the subject's snapshot, or the
// zero time when the file does not set one
func (r *FileRecordRepository) AsOf(subjectID string) time.Time {
	return r.snapshots[subjectID].AsOf
}

// SubjectIDs returns the loaded subject ids in sorted order
func (r *FileRecordRepository) SubjectIDs() []string {
	ids := make([]string, 0, len(r.snapshots))
	for id := range r.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *FileRecordRepository) lookup(ctx context.Context, subjectID string) (models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return models.Snapshot{}, err
	}
	snap, ok := r.snapshots[subjectID]
	if !ok {
		return models.Snapshot{}, ErrSubjectNotFound
	}
	return snap, nil
}

func (r *FileRecordRepository) GetSubject(ctx context.Context, subjectID string) (*models.Subject, error) {
	snap, err := r.lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	subject := snap.Subject
	return &subject, nil
}

func (r *FileRecordRepository) GetFeedings(ctx context.Context, subjectID string) ([]models.FeedingEvent, error) {
	snap, err := r.lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return append([]models.FeedingEvent(nil), snap.Feedings...), nil
}

func (r *FileRecordRepository) GetSleepSessions(ctx context.Context, subjectID string) ([]models.SleepSession, error) {
	snap, err := r.lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return append([]models.SleepSession(nil), snap.Sleeps...), nil
}

func (r *FileRecordRepository) GetDiaperChanges(ctx context.Context, subjectID string) ([]models.DiaperEvent, error) {
	snap, err := r.lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return append([]models.DiaperEvent(nil), snap.Diapers...), nil
}

func (r *FileRecordRepository) GetGrowthMeasurements(ctx context.Context, subjectID string) ([]models.GrowthMeasurement, error) {
	snap, err := r.lookup(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return append([]models.GrowthMeasurement(nil), snap.Growth...), nil
}
