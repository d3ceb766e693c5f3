package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSnapshot = `
subject:
  id: 3f2b8c1e-1d4a-4c7e-9b6f-2a5d8e0c4b71
  name: Ada
  birth_date: 2023-10-01
as_of: 2024-01-08T00:00:00Z
feedings:
  - time: 2024-01-01T08:00:00Z
    feeding_type: breastfeeding
    last_side: left_feeding
  - time: 2024-01-01T11:00:00Z
    feeding_type: bottle
    quantity: 90
sleep_sessions:
  - start_time: 2024-01-01T13:00:00Z
    end_time: 2024-01-01T14:30:00Z
  - start_time: 2024-01-01T20:00:00Z
diaper_changes:
  - time: 2024-01-01T09:00:00Z
    diaper_type: wet
growth_measurements:
  - date: 2023-12-01
    height: 60.5
    weight: 5.9
`

const jsonSnapshot = `{
  "subject": {"id": "7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058"},
  "feedings": [{"time": "2024-01-01T08:00:00Z", "feeding_type": "solid"}],
  "sleep_sessions": [],
  "diaper_changes": [],
  "growth_measurements": [{"date": "2024-01-01T00:00:00Z", "height": 70, "weight": 8.1}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileRecordRepository_YAML(t *testing.T) {
	repo, err := NewFileRecordRepository(writeFile(t, "ada.yaml", yamlSnapshot))
	require.NoError(t, err)

	ctx := context.Background()
	id := "3f2b8c1e-1d4a-4c7e-9b6f-2a5d8e0c4b71"

	subject, err := repo.GetSubject(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", subject.Name)
	require.NotNil(t, subject.BirthDate)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), *subject.BirthDate)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), repo.AsOf(id))

	feedings, err := repo.GetFeedings(ctx, id)
	require.NoError(t, err)
	require.Len(t, feedings, 2)
	assert.Nil(t, feedings[0].Quantity)
	require.NotNil(t, feedings[0].Side)
	assert.Equal(t, models.FeedingSideLeft, *feedings[0].Side)
	assert.Equal(t, 90.0, *feedings[1].Quantity)

	sleeps, err := repo.GetSleepSessions(ctx, id)
	require.NoError(t, err)
	require.Len(t, sleeps, 2)
	assert.True(t, sleeps[0].Completed())
	assert.False(t, sleeps[1].Completed())

	diapers, err := repo.GetDiaperChanges(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.DiaperTypeWet, diapers[0].DiaperType)

	growth, err := repo.GetGrowthMeasurements(ctx, id)
	require.NoError(t, err)
	require.Len(t, growth, 1)
	assert.Equal(t, 60.5, growth[0].Height)
}

func TestFileRecordRepository_JSONAndMultipleSubjects(t *testing.T) {
	repo, err := NewFileRecordRepository(
		writeFile(t, "ada.yml", yamlSnapshot),
		writeFile(t, "max.json", jsonSnapshot),
	)
	require.NoError(t, err)

	feedings, err := repo.GetFeedings(context.Background(), "7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058")
	require.NoError(t, err)
	require.Len(t, feedings, 1)
	assert.Equal(t, models.FeedingTypeSolid, feedings[0].FeedingType)

	subject, err := repo.GetSubject(context.Background(), "7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058")
	require.NoError(t, err)
	assert.Nil(t, subject.BirthDate)

	assert.Equal(t, []string{
		"3f2b8c1e-1d4a-4c7e-9b6f-2a5d8e0c4b71",
		"7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058",
	}, repo.SubjectIDs())
	assert.True(t, repo.AsOf("7c0e3a9d-52b1-4f8e-a6d3-91b4c2e7f058").IsZero())
}

func TestFileRecordRepository_UnknownSubject(t *testing.T) {
	repo, err := NewFileRecordRepository(writeFile(t, "ada.yaml", yamlSnapshot))
	require.NoError(t, err)

	_, err = repo.GetSubject(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSubjectNotFound))
	_, err = repo.GetFeedings(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSubjectNotFound))
}

func TestFileRecordRepository_ReturnsCopies(t *testing.T) {
	repo, err := NewFileRecordRepository(writeFile(t, "ada.yaml", yamlSnapshot))
	require.NoError(t, err)
	id := "3f2b8c1e-1d4a-4c7e-9b6f-2a5d8e0c4b71"

	feedings, err := repo.GetFeedings(context.Background(), id)
	require.NoError(t, err)
	feedings[0].FeedingType = models.FeedingTypeSolid

	again, err := repo.GetFeedings(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.FeedingTypeBreast, again[0].FeedingType)
}

func TestLoadSnapshotFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unsupported extension", "data.csv", "id,time"},
		{"malformed yaml", "bad.yaml", "subject: [unclosed"},
		{"missing subject id", "empty.json", `{"feedings": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSnapshotFile(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewFileRecordRepository_DuplicateSubject(t *testing.T) {
	_, err := NewFileRecordRepository(
		writeFile(t, "a.yaml", yamlSnapshot),
		writeFile(t, "b.yaml", yamlSnapshot),
	)
	assert.Error(t, err)
}
