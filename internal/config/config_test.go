package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezBadminton/racquet/core"
)

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, core.DefaultPointsConfig(), config.Points)
	assert.Equal(t, 5000, config.Search.AmericanoAttempts)
	assert.Equal(t, 50, config.Search.LeagueAttempts)
	assert.NoError(t, config.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := heredoc.Doc(`
		points:
		  win2_0: 3
		  loss2_0: 0
		  win2_1: 2
		  loss2_1: 1
		  draw: 1
		scheduler:
		  courts: 4
		  slotDurationMinutes: 60
		  timeWindows:
		    - start: "09:00"
		      end: "13:00"
		search:
		  seed: 7
	`)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, config.Points.Win2_0)
	assert.Equal(t, 4, config.Scheduler.Courts)
	assert.Equal(t, 60, config.Scheduler.SlotDurationMinutes)
	// Settings missing from the file keep their defaults
	assert.Equal(t, 30, config.Scheduler.RestMinutes)
	assert.Equal(t, 5000, config.Search.AmericanoAttempts)
	assert.Equal(t, int64(7), config.Search.Seed)
	require.Len(t, config.Scheduler.TimeWindows, 1)
	assert.Equal(t, "13:00", config.Scheduler.TimeWindows[0].End)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(path, []byte("RACQUET_TEST_ENV_FILE=5\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("RACQUET_TEST_ENV_FILE") })
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "5", os.Getenv("RACQUET_TEST_ENV_FILE"))

	malformed := filepath.Join(dir, "malformed.env")
	require.NoError(t, os.WriteFile(malformed, []byte("RACQUET-COURTS=3\n"), 0644))
	err := loadEnvFile(malformed)
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), malformed)
}

func TestReadEnv(t *testing.T) {
	env := map[string]string{
		"RACQUET_COURTS":          "6",
		"RACQUET_POINTS_DRAW":     "1",
		"RACQUET_SEED":            "99",
		"RACQUET_ALLOWED_ORIGINS": "http://a.test,http://b.test",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}

	config := Default()
	require.NoError(t, config.readEnv(lookup))
	assert.Equal(t, 6, config.Scheduler.Courts)
	assert.Equal(t, 1, config.Points.Draw)
	assert.Equal(t, int64(99), config.Search.Seed)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.Server.AllowedOrigins)
	assert.Equal(t, ":8080", config.Server.Addr)

	env["RACQUET_REST_MINUTES"] = "soon"
	assert.Error(t, config.readEnv(lookup))
}

func TestValidate(t *testing.T) {
	config := Default()
	config.Scheduler.SlotDurationMinutes = 0
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)

	config = Default()
	config.Scheduler.TimeWindows = []core.TimeWindow{{Start: "18:00", End: "10:00"}}
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
}
