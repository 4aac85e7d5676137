// Package catalog reports which date ranges are downloaded for each asset.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Coverage is the downloaded range of one asset.
type Coverage struct {
	Asset       string `json:"asset" yaml:"asset"`
	Start       string `json:"start" yaml:"start"`
	End         string `json:"end" yaml:"end"`
	Days        int    `json:"days" yaml:"days"`
	Files       int    `json:"files" yaml:"files"`
	LastFetched string `json:"last_fetched,omitempty" yaml:"last_fetched,omitempty"`
}

// Scan walks {root}/{ASSET}/{YYYY}/{MM}/{DD} directories. Months on disk are zero-based
// and reported one-based. lastFetched maps asset to its latest downloaded hour and may be nil.
// Directories that do not parse as dates are ignored.
func Scan(root string, lastFetched map[string]string) ([]Coverage, error) {
	dirs, err := filepath.Glob(filepath.Join(root, "*", "*", "*", "*"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	byAsset := make(map[string]*Coverage)
	minDay := make(map[string]time.Time)
	maxDay := make(map[string]time.Time)
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			continue
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		day, ok := parseDay(parts[1], parts[2], parts[3])
		if !ok {
			continue
		}
		asset := parts[0]
		c, seen := byAsset[asset]
		if !seen {
			c = &Coverage{Asset: asset}
			byAsset[asset] = c
			minDay[asset], maxDay[asset] = day, day
		}
		if day.Before(minDay[asset]) {
			minDay[asset] = day
		}
		if day.After(maxDay[asset]) {
			maxDay[asset] = day
		}
		c.Days++
		c.Files += countHourFiles(dir)
	}

	out := make([]Coverage, 0, len(byAsset))
	for asset, c := range byAsset {
		c.Start = minDay[asset].Format(dateLayout)
		c.End = maxDay[asset].Format(dateLayout)
		c.LastFetched = lastFetched[asset]
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out, nil
}

func parseDay(year, month, day string) (time.Time, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil || m < 0 || m > 11 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m+1), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func countHourFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	var n int
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "h_ticks.bi5") {
			n++
		}
	}
	return n
}

// Render writes coverage as "table", "json" or "yaml".
func Render(w io.Writer, cov []Coverage, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Downloaded Data")
		fmt.Fprintln(tw, "ASSET\tSTART (YYYY-MM-DD)\tEND (YYYY-MM-DD)\tDAYS\tFILES\tLAST FETCHED")
		for _, c := range cov {
			last := c.LastFetched
			if last == "" {
				last = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n", c.Asset, c.Start, c.End, c.Days, c.Files, last)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cov)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cov); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported list format %q (use: table, json, yaml)", format)
	}
}
