package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadAssetsFile reads a list of assets from a file.
// Supported formats:
//   - .txt         : one asset per line, '#' lines are treated as comments
//   - .json        : JSON array of strings
//   - .yaml / .yml : YAML sequence of strings
func LoadAssetsFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assets file %s: %w", path, err)
	}

	var assets []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(content, &assets); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &assets); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".txt":
		assets = parseAssetsFromText(string(content))
	default:
		return nil, fmt.Errorf("unsupported assets file extension %q (use .txt, .json or .yaml)", filepath.Ext(path))
	}

	assets = NormalizeAssets(assets)
	slog.Info("loaded assets from file", "count", len(assets), "path", path)
	return assets, nil
}

var assetPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// ValidateAssets rejects names that cannot be datafeed symbols, such as dates or
// flags given after the positional arguments.
func ValidateAssets(assets []string) error {
	for _, a := range assets {
		if strings.HasPrefix(a, "-") {
			return fmt.Errorf("unexpected flag %q among assets (flags go before ASSET... START)", a)
		}
	}
	for _, a := range assets {
		if !assetPattern.MatchString(a) {
			return fmt.Errorf("invalid asset %q (use letters and digits, eg. EURUSD)", a)
		}
	}
	return nil
}

func parseAssetsFromText(s string) []string {
	var assets []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			assets = append(assets, line)
		}
	}
	return assets
}

// NormalizeAssets upper-cases asset names and drops blanks and duplicates, keeping order.
func NormalizeAssets(args []string) []string {
	seen := make(map[string]bool, len(args))
	out := make([]string, 0, len(args))
	for _, a := range args {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
