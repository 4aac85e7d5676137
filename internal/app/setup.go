package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"duka-data/internal/provider/dukascopy"
	"duka-data/internal/slogx"
)

// DateLayout is the command-line date format.
const DateLayout = "2006-01-02"

// SetupLogger installs the default slog logger from config.
func SetupLogger(cfg *Config) {
	slog.SetDefault(slogx.New(cfg.LogLevel, cfg.LogFile))
}

// ResolveHours turns START and optional END dates (YYYY-MM-DD, UTC) into the hours to process.
// The range runs from START 00:00 to END 00:00 inclusive; without END it runs to now minus one hour.
func ResolveHours(start, end string, now time.Time) ([]time.Time, error) {
	from, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q (use YYYY-MM-DD): %w", start, err)
	}
	to := now.UTC().Add(-time.Hour)
	if end != "" {
		to, err = time.Parse(DateLayout, strings.TrimSpace(end))
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q (use YYYY-MM-DD): %w", end, err)
		}
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end %s is before start %s", to.Format(DateLayout), from.Format(DateLayout))
	}
	return dukascopy.HourRange(from, to), nil
}
