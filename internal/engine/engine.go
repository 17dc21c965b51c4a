package engine

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dm/elasticstat/internal/model"
)

// Options configures an Engine.
type Options struct {
	// Regression selects what a decreasing counter produces.
	Regression RegressionPolicy
	// EvictAfter forgets a node after it has been missing for more than this
	// many consecutive cycles. Zero keeps departed nodes forever.
	EvictAfter int
	Logger     *zap.Logger
}

// RoleChange records a node whose role differs from the previous cycle.
type RoleChange struct {
	NodeID string
	From   model.Role
	To     model.Role
}

// CycleResult is everything one cycle produces for rendering.
type CycleResult struct {
	Cluster model.ClusterRow
	Nodes   []model.NodeRecord // RoleOrder, then name within a role

	Joined      []string // first seen this cycle
	Rejoined    []string // back after being missing
	Left        []string // missing for the first time this cycle
	Evicted     []string // forgotten after EvictAfter missing cycles
	RoleChanges []RoleChange
	Regressions []Regression

	FetchDuration time.Duration
	CycleDuration time.Duration
}

// Engine owns the cross-cycle state: the topology of known nodes and the
// counter history used to compute deltas. It is not safe for concurrent use;
// one goroutine drives Cycle.
type Engine struct {
	topo     *Topology
	counters *CounterStore
	opts     Options
	log      *zap.Logger
	cycles   int
}

// New returns an Engine with no history.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		topo:     NewTopology(),
		counters: NewCounterStore(opts.Regression, log),
		opts:     opts,
		log:      log,
	}
}

// Topology exposes the engine's topology for inspection.
func (e *Engine) Topology() *Topology { return e.topo }

// Counters exposes the engine's counter store for inspection.
func (e *Engine) Counters() *CounterStore { return e.counters }

// Cycles returns the number of completed cycles.
func (e *Engine) Cycles() int { return e.cycles }

// Cycle reconciles snap against the known topology, diffs every present
// node's counters and returns the records to render. Role changes are applied
// to the topology before any record is built, so each node is emitted exactly
// once and under its current role.
func (e *Engine) Cycle(snap *model.Snapshot) CycleResult {
	start := time.Now()
	var res CycleResult

	present := make([]string, 0, len(snap.Nodes))
	for id := range snap.Nodes {
		present = append(present, id)
	}
	sort.Strings(present)

	roles := make(map[string]model.Role, len(present))
	for _, id := range present {
		roles[id] = ClassifyRole(snap.Nodes[id].Attributes)
	}

	// Reconcile: joins, returns and role changes.
	for _, id := range present {
		node := snap.Nodes[id]
		role := roles[id]

		if !e.topo.Known(id) {
			e.counters.Track(id)
			e.topo.Register(id, node.Name, role)
			res.Joined = append(res.Joined, id)
			e.log.Info("node joined", zap.String("node_id", id), zap.String("name", node.Name), zap.Stringer("role", role))
			continue
		}

		e.topo.SetName(id, node.Name)
		if e.topo.MarkPresent(id) {
			res.Rejoined = append(res.Rejoined, id)
			e.log.Info("node rejoined", zap.String("node_id", id), zap.String("name", node.Name))
		}
		if from, moved := e.topo.Move(id, role); moved {
			res.RoleChanges = append(res.RoleChanges, RoleChange{NodeID: id, From: from, To: role})
			e.log.Info("node role changed", zap.String("node_id", id), zap.String("name", node.Name),
				zap.Stringer("from", from), zap.Stringer("to", role))
		}
	}

	// Departures.
	for _, id := range e.topo.IDs() {
		if _, ok := snap.Nodes[id]; ok {
			continue
		}
		n := e.topo.MarkAbsent(id)
		if n == 1 {
			res.Left = append(res.Left, id)
			e.log.Info("node left", zap.String("node_id", id), zap.String("name", e.topo.Name(id)))
		}
		if e.opts.EvictAfter > 0 && n > e.opts.EvictAfter {
			e.log.Info("node evicted", zap.String("node_id", id), zap.String("name", e.topo.Name(id)), zap.Int("missing_cycles", n))
			e.topo.Forget(id)
			e.counters.Forget(id)
			res.Evicted = append(res.Evicted, id)
		}
	}

	// Render pass over stable copies of each bucket.
	for _, role := range model.RoleOrder {
		for _, id := range e.topo.Members(role) {
			node, ok := snap.Nodes[id]
			if !ok {
				res.Nodes = append(res.Nodes, staleRecord(id, e.topo.Name(id), role))
				continue
			}
			res.Nodes = append(res.Nodes, e.buildRecord(id, role, node, snap))
		}
	}

	res.Cluster = model.ClusterRow{ClusterHealth: snap.Health, CapturedAt: snap.FetchedAt}
	res.Regressions = e.counters.takeRegressions()
	res.FetchDuration = snap.FetchDuration
	res.CycleDuration = time.Since(start)
	e.cycles++
	return res
}

// buildRecord diffs a present node's counters and assembles its row.
func (e *Engine) buildRecord(id string, role model.Role, node model.RawNode, snap *model.Snapshot) model.NodeRecord {
	rec := model.NodeRecord{
		ID:               id,
		Name:             node.Name,
		Role:             role,
		ActiveMaster:     isActiveMaster(id, node.Name, snap),
		LoadAverage:      node.LoadAverage,
		MemUsedPercent:   node.MemUsedPercent,
		HeapUsedPercent:  node.HeapUsedPercent,
		OldPoolUsedBytes: node.OldPoolUsedBytes,
		OldGC: model.GCReading{
			Count:      e.counters.Observe(id, model.CounterGCOld, node.OldGC.CollectionCount),
			TimeMillis: node.OldGC.CollectionTimeMillis,
		},
		YoungGC: model.GCReading{
			Count:      e.counters.Observe(id, model.CounterGCYoung, node.YoungGC.CollectionCount),
			TimeMillis: node.YoungGC.CollectionTimeMillis,
		},
		FielddataEvictions: e.counters.Observe(id, model.CounterFielddataEvictions, node.FielddataEvictions),
		FielddataTrips:     e.counters.Observe(id, model.CounterFielddataTrips, node.FielddataTrips),
		HTTPCurrentOpen:    node.HTTPCurrentOpen,
		HTTPOpened:         e.counters.Observe(id, model.CounterHTTPOpened, node.HTTPTotalOpened),
		TransportOpen:      node.TransportOpen,
	}

	rec.ThreadPools = make([]model.ThreadPoolStats, len(model.ThreadPoolNames))
	for i, name := range model.ThreadPoolNames {
		tp, ok := node.ThreadPools[name]
		if !ok {
			tp = model.ThreadPoolStats{Missing: true}
		}
		tp.Name = name
		rec.ThreadPools[i] = tp
	}

	if role.HoldsData() {
		rec.Data = &model.DataStats{
			MergeTimeMillis:     node.MergeTimeMillis,
			StoreThrottleMillis: node.StoreThrottleMillis,
			DocsCount:           node.DocsCount,
			DocsDeleted:         node.DocsDeleted,
		}
	}
	return rec
}

// staleRecord is the degraded row for a known node missing from the
// snapshot. Its counters were not observed this cycle, so they are not
// applicable rather than awaiting a baseline.
func staleRecord(id, name string, role model.Role) model.NodeRecord {
	na := model.NotApplicable()
	return model.NodeRecord{
		ID:                 id,
		Name:               name,
		Role:               role,
		Stale:              true,
		OldGC:              model.GCReading{Count: na},
		YoungGC:            model.GCReading{Count: na},
		FielddataEvictions: na,
		FielddataTrips:     na,
		HTTPOpened:         na,
	}
}

// isActiveMaster matches by identity when the master's id is known and by
// display name otherwise.
func isActiveMaster(id, name string, snap *model.Snapshot) bool {
	if snap.MasterID != "" {
		return id == snap.MasterID
	}
	return snap.MasterName != "" && name == snap.MasterName
}
