package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dm/elasticstat/internal/model"
)

// Placeholder text. Unavailable marks a counter with no baseline yet;
// NotApplicable marks a figure that does not apply to the node's role or
// was not observed. Both are "-" to match the original report layout; keep
// them identical. Results stay distinguishable through model.ResultKind.
const (
	Unavailable   = "-"
	NotApplicable = "-"
	StaleMessage  = "(No data received, node may have left cluster)"
)

// cluster_name status shards pri relo init unassign pending_tasks timestamp
const clusterTemplate = "%-33s %-6s %6s %4s %4s %4s %8s %13s  %-8s"

// name role load mem heap | old sz old gc young gc | pools | fielddata | conns | merges throttle docs
const nodeTemplate = "%-24s %-6s %18s   %4s %4s  %-8s %-8s %-8s   %-8s %-8s %-8s %-8s %-8s %s   %6s %6s   %8s %8s  %s"

const staleTemplate = "%-24s %-6s %s"

const fielddataWidth = 7

// ClusterHeader returns the heading row for the cluster summary.
func ClusterHeader() string {
	return fmt.Sprintf(clusterTemplate,
		"cluster", "status", "shards", "pri", "relo", "init", "unassign", "pending tasks", "time")
}

// ClusterLine renders the cluster summary row.
func ClusterLine(row model.ClusterRow) string {
	return fmt.Sprintf(clusterTemplate,
		row.ClusterName,
		row.Status,
		strconv.Itoa(row.ActiveShards),
		strconv.Itoa(row.ActivePrimaryShards),
		strconv.Itoa(row.RelocatingShards),
		strconv.Itoa(row.InitializingShards),
		strconv.Itoa(row.UnassignedShards),
		strconv.Itoa(row.PendingTasks),
		row.CapturedAt.Format("15:04:05"),
	)
}

// NodeHeader returns the heading row for the node table.
func NodeHeader() string {
	return fmt.Sprintf(nodeTemplate,
		"nodes", "role", "load", "mem", "heap",
		"old sz", "old gc", "young gc",
		"index", "search", "bulk", "get", "merge",
		center("fde|fdt", fielddataWidth),
		"hconn", "tconn",
		"merges", "idx st", "docs",
	)
}

// NodeLine renders one node row. Stale records replace the metrics with
// StaleMessage.
func NodeLine(rec model.NodeRecord) string {
	if rec.Stale {
		return fmt.Sprintf(staleTemplate, rec.Name, RoleLabel(rec), StaleMessage)
	}

	pools := make([]any, len(model.ThreadPoolNames))
	for i := range pools {
		if i < len(rec.ThreadPools) {
			pools[i] = ThreadPoolCell(rec.ThreadPools[i])
		} else {
			pools[i] = ThreadPoolCell(model.ThreadPoolStats{Missing: true})
		}
	}

	merges, throttle, docs := DataCells(rec.Data)

	args := []any{
		rec.Name,
		RoleLabel(rec),
		FormatLoad(rec.LoadAverage),
		FormatPercent(rec.MemUsedPercent),
		FormatPercent(rec.HeapUsedPercent),
		FormatBytes(rec.OldPoolUsedBytes),
		GCCell(rec.OldGC),
		GCCell(rec.YoungGC),
	}
	args = append(args, pools...)
	args = append(args,
		center(FielddataCell(rec.FielddataEvictions, rec.FielddataTrips), fielddataWidth),
		HTTPCell(rec.HTTPCurrentOpen, rec.HTTPOpened),
		strconv.FormatInt(rec.TransportOpen, 10),
		merges,
		throttle,
		docs,
	)
	return fmt.Sprintf(nodeTemplate, args...)
}

// Lines renders a whole cycle: the cluster heading and row, a blank line,
// the node heading and one row per node.
func Lines(cluster model.ClusterRow, nodes []model.NodeRecord) []string {
	out := make([]string, 0, len(nodes)+4)
	out = append(out, ClusterHeader(), ClusterLine(cluster), "", NodeHeader())
	for _, rec := range nodes {
		out = append(out, NodeLine(rec))
	}
	return out
}

// RoleLabel returns the role code, suffixed with "*" for the active master,
// or parenthesized when the node is absent.
func RoleLabel(rec model.NodeRecord) string {
	if rec.Stale {
		return "(" + rec.Role.String() + ")"
	}
	if rec.ActiveMaster {
		return rec.Role.String() + "*"
	}
	return rec.Role.String()
}

// DeltaText renders a single delta result.
func DeltaText(d model.DeltaResult) string {
	switch d.Kind {
	case model.ResultDelta:
		return strconv.FormatInt(d.Value, 10)
	case model.ResultNotApplicable:
		return NotApplicable
	default:
		return Unavailable
	}
}

// GCCell renders "<collections delta>|<cumulative collection time>ms", or
// "-|-" before a baseline exists.
func GCCell(r model.GCReading) string {
	if !r.Count.IsDelta() {
		return DeltaText(r.Count) + "|" + Unavailable
	}
	return fmt.Sprintf("%d|%dms", r.Count.Value, r.TimeMillis)
}

// FielddataCell renders "<evictions delta>|<trips delta>".
func FielddataCell(evictions, trips model.DeltaResult) string {
	return DeltaText(evictions) + "|" + DeltaText(trips)
}

// HTTPCell renders "<currently open>|<opened delta>".
func HTTPCell(currentOpen int64, opened model.DeltaResult) string {
	return strconv.FormatInt(currentOpen, 10) + "|" + DeltaText(opened)
}

// ThreadPoolCell renders "active|queued|rejected".
func ThreadPoolCell(tp model.ThreadPoolStats) string {
	if tp.Missing {
		return NotApplicable + "|" + NotApplicable + "|" + NotApplicable
	}
	return fmt.Sprintf("%d|%d|%d", tp.Active, tp.Queue, tp.Rejected)
}

// DataCells renders merge time, store throttle time and "docs|deleted" for
// data-holding nodes, or placeholders when data is nil.
func DataCells(data *model.DataStats) (merges, throttle, docs string) {
	if data == nil {
		na := DeltaText(model.NotApplicable())
		return na, na, na + "|" + na
	}
	return FormatMillis(data.MergeTimeMillis),
		FormatMillis(data.StoreThrottleMillis),
		fmt.Sprintf("%d|%d", data.DocsCount, data.DocsDeleted)
}

// center pads s with spaces on both sides to width, extra space on the right.
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
