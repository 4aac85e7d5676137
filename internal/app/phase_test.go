package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duka-data/internal/bi5"
	"duka-data/internal/model"
	"duka-data/internal/saver"
	"duka-data/internal/store"
	"duka-data/internal/timeframe"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	return &Config{
		DownloadDir:    filepath.Join(root, "download"),
		ExportDir:      filepath.Join(root, "export"),
		SaveFormat:     "csv",
		LogLevel:       "info",
		Concurrency:    2,
		RequestTimeout: time.Second,
	}
}

func storeHour(t *testing.T, s *store.Store, asset string, hour time.Time, bids ...int32) {
	t.Helper()
	ticks := make([]model.Tick, len(bids))
	for i, b := range bids {
		ticks[i] = model.Tick{Time: hour.Add(time.Duration(i) * time.Second), Ask: b + 15, Bid: b, BidVolume: 1}
	}
	raw, err := bi5.Compress(bi5.Encode(ticks, hour))
	require.NoError(t, err)
	require.NoError(t, s.Write(asset, hour, raw))
}

func TestRunDownload_FromStore(t *testing.T) {
	cfg := testConfig(t)
	remote := store.New(t.TempDir())
	hour := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	storeHour(t, remote, "EURUSD", hour, 110000)

	dst := store.New(cfg.DownloadDir)
	sum, err := RunDownload(context.Background(), cfg, remote, dst, []string{"EURUSD"}, []time.Time{hour, hour.Add(time.Hour)}, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Success)
	assert.Equal(t, 1, sum.Failed)
	assert.True(t, dst.Exists("EURUSD", hour))
	assert.FileExists(t, cfg.ProgressPath())
}

func TestRunExport_WritesFilePerAsset(t *testing.T) {
	cfg := testConfig(t)
	src := store.New(cfg.DownloadDir)
	day := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	storeHour(t, src, "EURUSD", day, 110000, 110020, 109980)

	hours, err := ResolveHours("2024-01-08", "2024-01-08", time.Now())
	require.NoError(t, err)
	results, err := RunExport(context.Background(), cfg, src, saver.CSVSaver{}, []string{"EURUSD"}, hours, timeframe.MustParse("1D"))
	require.NoError(t, err)
	require.Len(t, results, 1)

	data, err := os.ReadFile(filepath.Join(cfg.ExportDir, "EURUSD", "EURUSD_2024-01-08_to_2024-01-08_1D.csv"))
	require.NoError(t, err)
	assert.Equal(t, "date,open,high,low,close,vol\n2024-01-08T00:00:00.000,1.10000,1.10020,1.09980,1.09980,3.0\n", string(data))
}

func TestRunList(t *testing.T) {
	cfg := testConfig(t)
	storeHour(t, store.New(cfg.DownloadDir), "EURUSD", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), 110000)

	var buf bytes.Buffer
	require.NoError(t, RunList(&buf, cfg, "json"))
	assert.Contains(t, buf.String(), `"asset": "EURUSD"`)
	assert.Contains(t, buf.String(), `"start": "2024-03-01"`)
}
