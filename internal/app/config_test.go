package app

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./download/", cfg.DownloadDir)
	assert.Equal(t, "./export/", cfg.ExportDir)
	assert.Equal(t, "https://datafeed.dukascopy.com/datafeed/", cfg.BaseURL)
	assert.Equal(t, "csv", cfg.SaveFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, min(32, runtime.NumCPU()+4), cfg.Workers())
	assert.Equal(t, filepath.Join("download", ".progress.json"), cfg.ProgressPath())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DUKA_DOWNLOAD_DIR", "/data/ticks")
	t.Setenv("DUKA_SAVE_FORMAT", "Parquet")
	t.Setenv("DUKA_LOG_LEVEL", "DEBUG")
	t.Setenv("DUKA_CONCURRENCY", "7")
	t.Setenv("DUKA_REQUESTS_PER_SECOND", "2.5")
	t.Setenv("DUKA_REQUEST_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/data/ticks", cfg.DownloadDir)
	assert.Equal(t, "parquet", cfg.SaveFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.Workers())
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"DUKA_SAVE_FORMAT":     "xlsx",
		"DUKA_CONCURRENCY":     "-1",
		"DUKA_BASE_URL":        "not a url",
		"DUKA_REQUEST_TIMEOUT": "0s",
		"DUKA_RETRIES":         "many",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, val)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DUKA_EXPORT_DIR=/tmp/bars\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("DUKA_EXPORT_DIR") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bars", cfg.ExportDir)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
