package model

import "time"

// ThreadPoolNames is the fixed set of thread pools reported per node, in column order.
var ThreadPoolNames = []string{"index", "search", "bulk", "get", "merge"}

// ClusterHealth is the cluster-level part of a snapshot.
type ClusterHealth struct {
	ClusterName         string
	Status              string
	ActiveShards        int
	ActivePrimaryShards int
	RelocatingShards    int
	InitializingShards  int
	UnassignedShards    int
	PendingTasks        int
}

// GCStats holds cumulative figures for one collector generation.
type GCStats struct {
	CollectionCount      int64
	CollectionTimeMillis int64
}

// ThreadPoolStats holds instantaneous figures for one thread pool.
// Missing is set when the node did not report the pool.
type ThreadPoolStats struct {
	Name     string
	Active   int64
	Queue    int64
	Rejected int64
	Missing  bool
}

// RawNode is one node's metrics as captured in a single cycle.
type RawNode struct {
	Name string
	// Attributes carries the "master" and "data" eligibility flags. A flag is
	// only present when explicitly disabled; absence means "true".
	Attributes map[string]string

	LoadAverage      []float64
	MemUsedPercent   int
	HeapUsedPercent  int
	OldPoolUsedBytes int64
	OldGC            GCStats
	YoungGC          GCStats
	ThreadPools      map[string]ThreadPoolStats

	FielddataEvictions int64
	FielddataTrips     int64
	HTTPCurrentOpen    int64
	HTTPTotalOpened    int64
	TransportOpen      int64

	MergeTimeMillis     int64
	StoreThrottleMillis int64
	DocsCount           int64
	DocsDeleted         int64
}

// Snapshot is everything fetched for one polling cycle.
type Snapshot struct {
	Health     ClusterHealth
	Nodes      map[string]RawNode // keyed by node identity
	MasterID   string
	MasterName string
	FetchedAt  time.Time
	// FetchDuration is how long acquiring the snapshot took.
	FetchDuration time.Duration
}
