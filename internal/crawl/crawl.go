package crawl

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"duka-data/internal/provider"
	"duka-data/internal/slogx"
)

// Job represents one download unit (asset + hour)
type Job struct {
	Asset string
	Hour  time.Time
}

// JobResult is sent by workers for fan-in
type JobResult struct {
	Ok     bool
	Asset  string
	Hour   time.Time
	Reason string
	Bytes  int
}

// Options tunes a download run.
type Options struct {
	Workers   int
	Force     bool          // re-download hours already on disk
	ReportDir string        // where progress and run reports go; empty disables them
	Heartbeat time.Duration // 0 → 30s
	LogLevel  slog.Level
}

// Summary is the outcome of one run.
type Summary struct {
	RunID       string
	Success     int
	Failed      int
	Skipped     int
	SuccessList []string
	FailedList  []FailedEntry
}

// BuildJobs returns one job per asset-hour, assets in the given order and hours ascending.
// Hours already stored are skipped unless force is set.
func BuildJobs(assets []string, hours []time.Time, dst provider.HourWriter, force bool) (jobs []Job, skipped int) {
	jobs = make([]Job, 0, len(assets)*len(hours))
	for _, a := range assets {
		for _, h := range hours {
			if !force && dst.Exists(a, h) {
				skipped++
				continue
			}
			jobs = append(jobs, Job{Asset: a, Hour: h})
		}
	}
	return jobs, skipped
}

// RunOneCrawl downloads every missing hour of every asset, then writes the run report.
func RunOneCrawl(
	ctx context.Context,
	src provider.HourSource,
	dst provider.HourWriter,
	assets []string,
	hours []time.Time,
	opts Options,
) Summary {
	jobs, skipped := BuildJobs(assets, hours, dst, opts.Force)
	if len(jobs) == 0 {
		slog.Info("no hours to download, skip", "assets", len(assets), "skipped", skipped)
		return Summary{Skipped: skipped}
	}
	if skipped > 0 {
		slog.Info("hours already on disk, jobs to download", "skipped", skipped, "jobs", len(jobs), "assets", len(assets))
	} else {
		slog.Info("jobs to download", "jobs", len(jobs), "assets", len(assets))
	}

	var progressUpdates chan ProgressUpdate
	var progressDone chan struct{}
	if opts.ReportDir != "" {
		if err := os.MkdirAll(opts.ReportDir, 0755); err != nil {
			slog.Warn("could not create report dir", "dir", opts.ReportDir, "error", err)
		}
		progressUpdates = make(chan ProgressUpdate, 256)
		progressDone = make(chan struct{})
		go func() {
			defer close(progressDone)
			RunProgressWriter(ProgressPath(opts.ReportDir), progressUpdates)
		}()
	}

	sum := RunParallel(ctx, src, dst, jobs, opts, progressUpdates)
	sum.Skipped = skipped

	if progressUpdates != nil {
		close(progressUpdates)
		<-progressDone
	}
	if opts.ReportDir != "" && (len(sum.SuccessList) > 0 || len(sum.FailedList) > 0) {
		if err := writeRunReport(opts.ReportDir, sum.RunID, sum.SuccessList, sum.FailedList); err != nil {
			slog.Warn("could not write run report", "error", err)
		} else {
			slog.Info("run report saved", "run_id", sum.RunID, "success", len(sum.SuccessList), "failed", len(sum.FailedList))
		}
	}
	slog.Info("download done", "success", sum.Success, "failed", sum.Failed, "skipped", sum.Skipped)
	return sum
}

// RunParallel runs jobs with opts.Workers workers sharing one source and one writer.
// A canceled context stops workers after their current job.
func RunParallel(
	ctx context.Context,
	src provider.HourSource,
	dst provider.HourWriter,
	jobs []Job,
	opts Options,
	progressUpdates chan<- ProgressUpdate,
) Summary {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	heartbeat := opts.Heartbeat
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	runID := uuid.NewString()

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs, opts.LogLevel).With("run_id", runID)
	errs := make(chan errorEntry, 64)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(logs)
	}()
	var errWg sync.WaitGroup
	errWg.Add(1)
	go func() {
		defer errWg.Done()
		runErrorHandler(errs, logger)
	}()

	hbCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// errs drains before logs closes: the error handler writes to logs
	defer func() {
		close(errs)
		errWg.Wait()
		close(logs)
		logWg.Wait()
	}()

	pending := make(chan Job, len(jobs))
	for _, j := range jobs {
		pending <- j
	}
	close(pending)

	results := make(chan JobResult, len(jobs)+64)
	t := newTally()
	var resWg sync.WaitGroup
	resWg.Add(1)
	go func() {
		defer resWg.Done()
		t.collect(results)
	}()

	var hbWg sync.WaitGroup
	hbWg.Add(1)
	go func() {
		defer hbWg.Done()
		t.heartbeat(hbCtx, heartbeat, len(jobs), logger)
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-pending:
					if !ok {
						return
					}
					results <- runJob(ctx, src, dst, job, logger, errs, progressUpdates)
				}
			}
		}()
	}
	wg.Wait()
	close(results)
	resWg.Wait()
	cancel()
	hbWg.Wait()

	return t.summary(runID, logger)
}

func runJob(
	ctx context.Context,
	src provider.HourSource,
	dst provider.HourWriter,
	job Job,
	logger *slog.Logger,
	errs chan<- errorEntry,
	progressUpdates chan<- ProgressUpdate,
) JobResult {
	hourStr := job.Hour.UTC().Format(hourLayout)
	fail := func(reason string, err error) JobResult {
		logger.Error("download fail", "asset", job.Asset, "hour", hourStr, "reason", reason)
		if err != nil {
			select {
			case errs <- errorEntry{Asset: job.Asset, Err: err}:
			default:
			}
		}
		return JobResult{Ok: false, Asset: job.Asset, Hour: job.Hour, Reason: reason}
	}

	raw, ok, err := src.Fetch(ctx, job.Asset, job.Hour)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fail("canceled", nil)
		}
		return fail(err.Error(), err)
	}
	if !ok {
		return fail(reasonUnavailable, nil)
	}
	if err := dst.Write(job.Asset, job.Hour, raw); err != nil {
		return fail(err.Error(), err)
	}
	logger.Debug("download ok", "asset", job.Asset, "hour", hourStr, "bytes", len(raw))
	if progressUpdates != nil {
		select {
		case progressUpdates <- ProgressUpdate{Asset: job.Asset, Hour: job.Hour}:
		default:
			logger.Warn("progress channel full, skip update", "asset", job.Asset)
		}
	}
	return JobResult{Ok: true, Asset: job.Asset, Hour: job.Hour, Bytes: len(raw)}
}

const (
	hourLayout        = "2006-01-02T15"
	reasonUnavailable = "unavailable"
)
