package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/elasticstat/internal/model"
)

// severity represents the alert level for a node row.
type severity int

const (
	severityNormal   severity = iota
	severityWarning           // yellow
	severityCritical          // red
)

// heapSeverity returns Warning when JVM heap > 75%, Critical when > 85%.
func heapSeverity(pct int) severity {
	switch {
	case pct > 85:
		return severityCritical
	case pct > 75:
		return severityWarning
	default:
		return severityNormal
	}
}

// memSeverity returns Warning when OS memory > 90%, Critical when > 97%.
func memSeverity(pct int) severity {
	switch {
	case pct > 97:
		return severityCritical
	case pct > 90:
		return severityWarning
	default:
		return severityNormal
	}
}

// rejectedSeverity returns Warning when any thread pool rejected work.
func rejectedSeverity(pools []model.ThreadPoolStats) severity {
	for _, tp := range pools {
		if !tp.Missing && tp.Rejected > 0 {
			return severityWarning
		}
	}
	return severityNormal
}

// rowSeverity is the worst severity across a node's watched figures.
// Stale rows are always normal.
func rowSeverity(rec model.NodeRecord) severity {
	if rec.Stale {
		return severityNormal
	}
	return max(heapSeverity(rec.HeapUsedPercent), memSeverity(rec.MemUsedPercent), rejectedSeverity(rec.ThreadPools))
}

// severityToStyle maps a severity level to the appropriate lipgloss style.
func severityToStyle(s severity) lipgloss.Style {
	switch s {
	case severityWarning:
		return StyleYellow
	case severityCritical:
		return StyleRed
	default:
		return lipgloss.NewStyle()
	}
}
