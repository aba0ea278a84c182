package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Len(t, cfg.WorkingDays, 5)
	assert.Equal(t, []string{"09:00-10:30", "10:45-12:15", "14:00-15:30", "15:40-17:10"}, cfg.Slots.Lecture)
	assert.Equal(t, 90, cfg.Durations.Lecture)
	assert.Equal(t, 60, cfg.Durations.Tutorial)
	assert.Equal(t, 120, cfg.Durations.Lab)
	assert.Equal(t, 5, cfg.ToleranceMinutes)
	assert.Equal(t, 3001, cfg.Port)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "" +
		"env: production\n" +
		"random_seed: 42\n" +
		"slots:\n" +
		"  minor:\n" +
		"    - 07:00-08:30\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.Equal(t, []string{"07:00-08:30"}, cfg.Slots.Minor)
	// untouched sections keep their defaults
	assert.Equal(t, 120, cfg.Durations.Lab)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TIMETABLE_ENV", "production")
	t.Setenv("TIMETABLE_PORT", "8080")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: staging\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
