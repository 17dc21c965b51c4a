package tui

import (
	"github.com/dm/elasticstat/internal/format"
	"github.com/dm/elasticstat/internal/model"
)

func renderCluster(row model.ClusterRow) []string {
	return []string{
		StyleTableHeader.Render(format.ClusterHeader()),
		format.ClusterLine(row),
	}
}

// renderNodes renders one styled line per record. Stale rows are dimmed,
// the active master is highlighted and rows past a threshold are coloured.
func renderNodes(nodes []model.NodeRecord) []string {
	lines := make([]string, len(nodes))
	for i, rec := range nodes {
		line := format.NodeLine(rec)
		switch {
		case rec.Stale:
			lines[i] = StyleStale.Render(line)
		case rowSeverity(rec) != severityNormal:
			lines[i] = severityToStyle(rowSeverity(rec)).Render(line)
		case rec.ActiveMaster:
			lines[i] = StyleActiveMaster.Render(line)
		default:
			lines[i] = line
		}
	}
	return lines
}

// summarize counts present and missing nodes and sums documents on
// data-holding nodes.
func summarize(nodes []model.NodeRecord) (present, missing int, docs int64) {
	for _, rec := range nodes {
		if rec.Stale {
			missing++
			continue
		}
		present++
		if rec.Data != nil {
			docs += rec.Data.DocsCount
		}
	}
	return present, missing, docs
}
