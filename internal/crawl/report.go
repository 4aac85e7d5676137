package crawl

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FailedEntry is one hour that could not be downloaded.
type FailedEntry struct {
	Asset  string `json:"asset"`
	Hour   string `json:"hour"`
	Reason string `json:"reason"`
}

type successReport struct {
	RunID  string   `json:"run_id"`
	Assets []string `json:"assets"`
}

type failedReport struct {
	RunID   string        `json:"run_id"`
	Entries []FailedEntry `json:"entries"`
}

func writeRunReport(dir, runID string, successList []string, failedList []FailedEntry) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if len(successList) > 0 {
		p := filepath.Join(dir, ".lastrun.success.json")
		data, err := json.MarshalIndent(successReport{RunID: runID, Assets: successList}, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "assets", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(dir, ".lastrun.failed.json")
		data, err := json.MarshalIndent(failedReport{RunID: runID, Entries: failedList}, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func appendSuccess(list []string, asset string) []string {
	for _, a := range list {
		if a == asset {
			return list
		}
	}
	return append(list, asset)
}

func joinFailedReasons(failedList []FailedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Asset)
		b.WriteString(" ")
		b.WriteString(f.Hour)
		b.WriteString(": ")
		b.WriteString(f.Reason)
		if i >= 4 && len(failedList) > 6 {
			b.WriteString(fmt.Sprintf(" (+%d more)", len(failedList)-5))
			break
		}
	}
	return b.String()
}
