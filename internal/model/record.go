package model

import "time"

// ClusterRow is the cluster summary rendered once per cycle.
type ClusterRow struct {
	ClusterHealth
	CapturedAt time.Time
}

// GCReading pairs the collection-count delta with the absolute cumulative
// collection time of the same generation.
type GCReading struct {
	Count      DeltaResult
	TimeMillis int64
}

// DataStats holds figures that only apply to data-holding roles.
type DataStats struct {
	MergeTimeMillis     int64
	StoreThrottleMillis int64
	DocsCount           int64
	DocsDeleted         int64
}

// NodeRecord holds display-ready data for a single node row.
type NodeRecord struct {
	ID           string
	Name         string
	Role         Role
	ActiveMaster bool
	// Stale is set when the node was absent from this cycle's snapshot; only
	// ID, Name and Role are meaningful then.
	Stale bool

	LoadAverage      []float64
	MemUsedPercent   int
	HeapUsedPercent  int
	OldPoolUsedBytes int64
	OldGC            GCReading
	YoungGC          GCReading
	ThreadPools      []ThreadPoolStats // ThreadPoolNames order

	FielddataEvictions DeltaResult
	FielddataTrips     DeltaResult
	HTTPCurrentOpen    int64
	HTTPOpened         DeltaResult
	TransportOpen      int64

	Data *DataStats // nil for roles that hold no data
}
