package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"
)

func runLogWriter(lines <-chan string) {
	for s := range lines {
		fmt.Fprintln(os.Stderr, s)
	}
}

type errorEntry struct {
	Asset string
	Err   error
}

func runErrorHandler(errors <-chan errorEntry, logger *slog.Logger) {
	for e := range errors {
		logger.Error("download error", "asset", e.Asset, "error", e.Err)
	}
}

// tally is the run state written by the result collector and read by the heartbeat.
type tally struct {
	mu          sync.Mutex
	success     int
	failed      int
	bytes       map[string]int // per asset
	successList []string
	failedList  []FailedEntry
}

func newTally() *tally {
	return &tally{bytes: make(map[string]int)}
}

func (t *tally) record(r JobResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r.Ok {
		t.success++
		t.successList = appendSuccess(t.successList, r.Asset)
		t.bytes[r.Asset] += r.Bytes
		return
	}
	t.failed++
	t.failedList = append(t.failedList, FailedEntry{Asset: r.Asset, Hour: r.Hour.UTC().Format(hourLayout), Reason: r.Reason})
}

func (t *tally) collect(results <-chan JobResult) {
	for r := range results {
		t.record(r)
	}
}

func (t *tally) counts() (success, failed, totalBytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.bytes {
		totalBytes += n
	}
	return t.success, t.failed, totalBytes
}

func (t *tally) heartbeat(ctx context.Context, interval time.Duration, totalJobs int, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s, f, b := t.counts()
			logger.Info("heartbeat", "done", s+f, "total", totalJobs, "success", s, "failed", f, "bytes", b)
		}
	}
}

// summary logs the per-asset byte counts and failures, then returns the run outcome.
// Call it once the collector has drained.
func (t *tally) summary(runID string, logger *slog.Logger) Summary {
	s, f, total := t.counts()
	logger.Info("summary", "total_bytes", total, "success", s, "failed", f)

	t.mu.Lock()
	defer t.mu.Unlock()
	assets := make([]string, 0, len(t.bytes))
	for a := range t.bytes {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	for _, a := range assets {
		logger.Info("summary asset", "asset", a, "bytes", t.bytes[a])
	}
	if len(t.failedList) > 0 {
		logger.Info("summary failed", "count", len(t.failedList), "reasons", joinFailedReasons(t.failedList))
	}
	return Summary{
		RunID:       runID,
		Success:     t.success,
		Failed:      t.failed,
		SuccessList: t.successList,
		FailedList:  t.failedList,
	}
}
