// Package results handles what comes out of a campaign: the flat
// failure-time output file, summary statistics, and the SQLite history of
// past runs.
package results

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FormatTimes renders failure times as a single line: one float per trial,
// space-separated, no trailing separator.
func FormatTimes(times []float64) string {
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// ParseTimes is the inverse of FormatTimes.
func ParseTimes(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Fields(s)
	times := make([]float64, len(fields))
	for i, f := range fields {
		t, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing sample %d: %w", i, err)
		}
		times[i] = t
	}
	return times, nil
}

// WriteTimes writes the campaign's failure times to path in FormatTimes
// form, replacing any existing file.
func WriteTimes(path string, times []float64) error {
	if err := os.WriteFile(path, []byte(FormatTimes(times)), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
