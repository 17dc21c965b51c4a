package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBytes formats a byte count into a human-readable string with 1 decimal place.
// Thresholds: <1KB → B, <1MB → KB, <1GB → MB, <1TB → GB, else TB.
func FormatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%db", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1fkb", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.1fmb", float64(bytes)/mb)
	case bytes < tb:
		return fmt.Sprintf("%.1fgb", float64(bytes)/gb)
	default:
		return fmt.Sprintf("%.1ftb", float64(bytes)/tb)
	}
}

// FormatMillis formats a cumulative duration in milliseconds the way the
// cluster's human-readable output does: 850ms, 1.2s, 4.5m, 2.1h, 3.2d.
func FormatMillis(ms int64) string {
	const (
		second = 1000
		minute = 60 * second
		hour   = 60 * minute
		day    = 24 * hour
	)
	switch {
	case ms < second:
		return fmt.Sprintf("%dms", ms)
	case ms < minute:
		return fmt.Sprintf("%.1fs", float64(ms)/second)
	case ms < hour:
		return fmt.Sprintf("%.1fm", float64(ms)/minute)
	case ms < day:
		return fmt.Sprintf("%.1fh", float64(ms)/hour)
	default:
		return fmt.Sprintf("%.1fd", float64(ms)/day)
	}
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
// Uses strconv.FormatInt directly to avoid abs64 overflow for math.MinInt64.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// FormatPercent formats an integer percentage. Example: 34 → "34%".
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatLoad joins load averages with "/". Example: [1.5 1 0.5] → "1.50/1.00/0.50".
func FormatLoad(load []float64) string {
	if len(load) == 0 {
		return "-"
	}
	parts := make([]string, len(load))
	for i, v := range load {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strings.Join(parts, "/")
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
