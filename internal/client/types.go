package client

import (
	"encoding/json"
	"fmt"
)

// ClusterHealth represents the response from /_cluster/health.
type ClusterHealth struct {
	ClusterName          string `json:"cluster_name"`
	Status               string `json:"status"`
	NumberOfNodes        int    `json:"number_of_nodes"`
	ActiveShards         int    `json:"active_shards"`
	ActivePrimaryShards  int    `json:"active_primary_shards"`
	RelocatingShards     int    `json:"relocating_shards"`
	InitializingShards   int    `json:"initializing_shards"`
	UnassignedShards     int    `json:"unassigned_shards"`
	NumberOfPendingTasks int    `json:"number_of_pending_tasks"`
}

// MasterInfo represents the single entry returned by /_cat/master.
type MasterInfo struct {
	ID   string `json:"id"`
	Node string `json:"node"`
}

// NodeStatsResponse represents the response from /_nodes/stats.
type NodeStatsResponse struct {
	Nodes map[string]NodeStats `json:"nodes"`
}

// NodeStats holds the per-node sections elasticstat reads.
type NodeStats struct {
	Name string `json:"name"`
	// Roles is reported by 5.x and later clusters.
	Roles []string `json:"roles"`
	// Attributes carries "master"/"data" flags on 1.x and 2.x clusters.
	Attributes map[string]string `json:"attributes"`

	OS         *NodeOSStats               `json:"os,omitempty"`
	JVM        *NodeJVMStats              `json:"jvm,omitempty"`
	ThreadPool map[string]ThreadPoolStats `json:"thread_pool,omitempty"`
	Indices    *NodeIndicesStats          `json:"indices,omitempty"`
	Breakers   map[string]BreakerStats    `json:"breakers,omitempty"`
	HTTP       *NodeHTTPStats             `json:"http,omitempty"`
	Transport  *NodeTransportStats        `json:"transport,omitempty"`
}

// NodeOSStats holds OS-level metrics.
type NodeOSStats struct {
	// LoadAverage is an array on 1.x and a single number on 2.x.
	LoadAverage LoadAverage `json:"load_average"`
	CPU         struct {
		// LoadAverage is keyed by "1m", "5m" and "15m" on 5.x and later.
		LoadAverage map[string]float64 `json:"load_average"`
	} `json:"cpu"`
	Mem struct {
		UsedPercent int `json:"used_percent"`
	} `json:"mem"`
}

// LoadAverage decodes either a JSON number or an array of numbers.
type LoadAverage []float64

// UnmarshalJSON implements json.Unmarshaler.
func (l *LoadAverage) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var many []float64
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one float64
	if err := json.Unmarshal(b, &one); err != nil {
		return fmt.Errorf("load_average: %w", err)
	}
	*l = LoadAverage{one}
	return nil
}

// NodeJVMStats holds JVM heap and garbage collector metrics.
type NodeJVMStats struct {
	Mem struct {
		HeapUsedPercent int `json:"heap_used_percent"`
		Pools           map[string]struct {
			UsedInBytes int64 `json:"used_in_bytes"`
		} `json:"pools"`
	} `json:"mem"`
	GC struct {
		Collectors map[string]GCCollectorStats `json:"collectors"`
	} `json:"gc"`
}

// GCCollectorStats holds cumulative counters for one collector generation.
type GCCollectorStats struct {
	CollectionCount        int64 `json:"collection_count"`
	CollectionTimeInMillis int64 `json:"collection_time_in_millis"`
}

// ThreadPoolStats holds a thread pool's instantaneous counters.
type ThreadPoolStats struct {
	Threads  int64 `json:"threads"`
	Queue    int64 `json:"queue"`
	Active   int64 `json:"active"`
	Rejected int64 `json:"rejected"`
}

// NodeIndicesStats holds the index-level sections read per node.
type NodeIndicesStats struct {
	Docs struct {
		Count   int64 `json:"count"`
		Deleted int64 `json:"deleted"`
	} `json:"docs"`
	Store struct {
		ThrottleTimeInMillis int64 `json:"throttle_time_in_millis"`
	} `json:"store"`
	Merges struct {
		TotalTimeInMillis int64 `json:"total_time_in_millis"`
	} `json:"merges"`
	Fielddata struct {
		Evictions int64 `json:"evictions"`
	} `json:"fielddata"`
}

// BreakerStats holds a circuit breaker's counters.
type BreakerStats struct {
	Tripped int64 `json:"tripped"`
}

// NodeHTTPStats holds HTTP connection counters.
type NodeHTTPStats struct {
	CurrentOpen int64 `json:"current_open"`
	TotalOpened int64 `json:"total_opened"`
}

// NodeTransportStats holds transport connection counters.
type NodeTransportStats struct {
	ServerOpen int64 `json:"server_open"`
}
