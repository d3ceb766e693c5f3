package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonnyWalker81/babytracker/backend/pkg/supabase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgREST(t *testing.T, tables map[string]string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r)
		body, ok := tables[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"relation does not exist"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestSupabaseRecordRepository_GetSubject(t *testing.T) {
	server, seen := newPostgREST(t, map[string]string{
		"/rest/v1/subjects": `[{"id":"s1","name":"Ada","birth_date":"2023-10-01"}]`,
	})
	repo := NewSupabaseRecordRepository(supabase.NewClient(server.URL, "key"))

	subject, err := repo.GetSubject(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "Ada", subject.Name)
	require.NotNil(t, subject.BirthDate)
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), *subject.BirthDate)
	require.Len(t, *seen, 1)
	assert.Equal(t, "eq.s1", (*seen)[0].URL.Query().Get("id"))
}

func TestSupabaseRecordRepository_SubjectNotFound(t *testing.T) {
	server, _ := newPostgREST(t, map[string]string{"/rest/v1/subjects": `[]`})
	repo := NewSupabaseRecordRepository(supabase.NewClient(server.URL, "key"))

	_, err := repo.GetSubject(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrSubjectNotFound))
}

func TestSupabaseRecordRepository_Records(t *testing.T) {
	server, seen := newPostgREST(t, map[string]string{
		"/rest/v1/feedings":            `[{"id":"f1","subject_id":"s1","time":"2024-01-01T08:00:00+00:00","feeding_type":"bottle","quantity":120}]`,
		"/rest/v1/sleep_sessions":      `[{"id":"z1","subject_id":"s1","start_time":"2024-01-01T13:00:00+00:00","end_time":null}]`,
		"/rest/v1/diaper_changes":      `[{"id":"d1","subject_id":"s1","time":"2024-01-01T09:00:00+00:00","diaper_type":"mixed"}]`,
		"/rest/v1/growth_measurements": `[{"id":"g1","subject_id":"s1","date":"2023-12-01","height":60.5,"weight":5.9}]`,
	})
	repo := NewSupabaseRecordRepository(supabase.NewClient(server.URL, "key"))
	ctx := context.Background()

	feedings, err := repo.GetFeedings(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, feedings, 1)
	assert.Equal(t, 120.0, *feedings[0].Quantity)

	sleeps, err := repo.GetSleepSessions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sleeps, 1)
	assert.False(t, sleeps[0].Completed())

	diapers, err := repo.GetDiaperChanges(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "mixed", string(diapers[0].DiaperType))

	growth, err := repo.GetGrowthMeasurements(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, growth, 1)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), growth[0].Date)

	for _, r := range *seen {
		assert.Equal(t, "eq.s1", r.URL.Query().Get("subject_id"))
		assert.NotEmpty(t, r.URL.Query().Get("order"))
	}
}

func TestSupabaseRecordRepository_ForwardsUserToken(t *testing.T) {
	server, seen := newPostgREST(t, map[string]string{"/rest/v1/feedings": `[]`})
	repo := NewSupabaseRecordRepository(supabase.NewClient(server.URL, "key"))

	_, err := repo.GetFeedings(WithUserToken(context.Background(), "jwt"), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer jwt", (*seen)[0].Header.Get("Authorization"))
}

func TestSupabaseRecordRepository_UpstreamErrorIsWrapped(t *testing.T) {
	server, _ := newPostgREST(t, map[string]string{})
	repo := NewSupabaseRecordRepository(supabase.NewClient(server.URL, "key"))

	_, err := repo.GetFeedings(context.Background(), "s1")
	require.Error(t, err)

	var apiErr *supabase.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
