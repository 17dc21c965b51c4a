package engine

import (
	"time"

	"github.com/dm/elasticstat/internal/client"
	"github.com/dm/elasticstat/internal/model"
)

// Normalize converts raw API responses into a Snapshot. Sections a node did
// not report are left at their zero values.
func Normalize(health *client.ClusterHealth, stats *client.NodeStatsResponse, master *client.MasterInfo, fetchedAt time.Time) *model.Snapshot {
	snap := &model.Snapshot{
		Health: model.ClusterHealth{
			ClusterName:         health.ClusterName,
			Status:              health.Status,
			ActiveShards:        health.ActiveShards,
			ActivePrimaryShards: health.ActivePrimaryShards,
			RelocatingShards:    health.RelocatingShards,
			InitializingShards:  health.InitializingShards,
			UnassignedShards:    health.UnassignedShards,
			PendingTasks:        health.NumberOfPendingTasks,
		},
		Nodes:     make(map[string]model.RawNode, len(stats.Nodes)),
		FetchedAt: fetchedAt,
	}
	if master != nil {
		snap.MasterID = master.ID
		snap.MasterName = master.Node
	}
	for id, ns := range stats.Nodes {
		snap.Nodes[id] = normalizeNode(ns)
	}
	return snap
}

func normalizeNode(ns client.NodeStats) model.RawNode {
	node := model.RawNode{
		Name:        ns.Name,
		Attributes:  eligibility(ns),
		ThreadPools: make(map[string]model.ThreadPoolStats, len(model.ThreadPoolNames)),
	}

	if ns.OS != nil {
		node.LoadAverage = loadAverage(ns.OS)
		node.MemUsedPercent = ns.OS.Mem.UsedPercent
	}

	if ns.JVM != nil {
		node.HeapUsedPercent = ns.JVM.Mem.HeapUsedPercent
		node.OldPoolUsedBytes = ns.JVM.Mem.Pools["old"].UsedInBytes
		old := ns.JVM.GC.Collectors["old"]
		young := ns.JVM.GC.Collectors["young"]
		node.OldGC = model.GCStats{CollectionCount: old.CollectionCount, CollectionTimeMillis: old.CollectionTimeInMillis}
		node.YoungGC = model.GCStats{CollectionCount: young.CollectionCount, CollectionTimeMillis: young.CollectionTimeInMillis}
	}

	for _, name := range model.ThreadPoolNames {
		tp, ok := ns.ThreadPool[name]
		if !ok && name == "bulk" {
			// 6.3 renamed the bulk pool to write.
			tp, ok = ns.ThreadPool["write"]
		}
		if !ok {
			continue
		}
		node.ThreadPools[name] = model.ThreadPoolStats{
			Name:     name,
			Active:   tp.Active,
			Queue:    tp.Queue,
			Rejected: tp.Rejected,
		}
	}

	if ns.Indices != nil {
		node.FielddataEvictions = ns.Indices.Fielddata.Evictions
		node.MergeTimeMillis = ns.Indices.Merges.TotalTimeInMillis
		node.StoreThrottleMillis = ns.Indices.Store.ThrottleTimeInMillis
		node.DocsCount = ns.Indices.Docs.Count
		node.DocsDeleted = ns.Indices.Docs.Deleted
	}
	node.FielddataTrips = ns.Breakers["fielddata"].Tripped

	if ns.HTTP != nil {
		node.HTTPCurrentOpen = ns.HTTP.CurrentOpen
		node.HTTPTotalOpened = ns.HTTP.TotalOpened
	}
	if ns.Transport != nil {
		node.TransportOpen = ns.Transport.ServerOpen
	}
	return node
}

// eligibility returns the node's master/data flags. A roles list, when
// reported, is authoritative: on those clusters attributes hold user-defined
// node.attr values such as data: hot. Legacy clusters without roles carry
// the flags in attributes.
func eligibility(ns client.NodeStats) map[string]string {
	if ns.Roles != nil {
		return RoleAttributes(ns.Roles)
	}
	attrs := make(map[string]string, 2)
	for _, k := range []string{attrMaster, attrData} {
		if v, ok := ns.Attributes[k]; ok {
			attrs[k] = v
		}
	}
	return attrs
}

// loadAverage prefers the legacy os.load_average value and falls back to the
// 1m/5m/15m figures under os.cpu.
func loadAverage(os *client.NodeOSStats) []float64 {
	if len(os.LoadAverage) > 0 {
		return []float64(os.LoadAverage)
	}
	var out []float64
	for _, k := range []string{"1m", "5m", "15m"} {
		if v, ok := os.CPU.LoadAverage[k]; ok {
			out = append(out, v)
		}
	}
	return out
}
