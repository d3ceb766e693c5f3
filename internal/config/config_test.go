package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SnapshotConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "insights.yaml", `
server:
  port: "9090"
  allowed_origins:
    - https://app.example.com
snapshot:
  paths:
    - fixtures/ada.yaml
log:
  level: debug
  format: text
insights:
  min_feedings: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceSnapshot, cfg.Source())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, []string{"fixtures/ada.yaml"}, cfg.Snapshot.Paths)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Insights.MinFeedings)
	assert.Equal(t, insights.DefaultThresholds().MinSleepSessions, cfg.Insights.MinSleepSessions)
	assert.Equal(t, insights.DefaultThresholds().DefaultAgeMonths, cfg.Insights.DefaultAgeMonths)
}

func TestLoad_SupabaseFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("BABYINSIGHTS_INSIGHTS_MIN_SLEEP_SESSIONS", "9")
	t.Setenv("BABYINSIGHTS_SERVER_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceSupabase, cfg.Source())
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, "service-key", cfg.Supabase.ServiceKey)
	assert.Equal(t, 9, cfg.Insights.MinSleepSessions)
	assert.True(t, cfg.Production())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "SUPABASE_URL=https://dotenv.supabase.co\nSUPABASE_SERVICE_KEY=dotenv-key\n")
	t.Cleanup(func() {
		os.Unsetenv("SUPABASE_URL")
		os.Unsetenv("SUPABASE_SERVICE_KEY")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.supabase.co", cfg.Supabase.URL)
}

func TestLoad_RequiresRecordSource(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL is required")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := &Config{
		Snapshot: SnapshotConfig{Paths: []string{"a.json"}},
		Log:      LogConfig{Format: "xml"},
	}
	assert.ErrorContains(t, cfg.Validate(), "log.format")

	cfg.Log.Format = "text"
	assert.NoError(t, cfg.Validate())
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, SourceSupabase, cfg.Source())

	cfg.Snapshot.Paths = []string{"ada.yaml"}
	assert.NoError(t, cfg.Validate())
}
