package client

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	endpointClusterHealth = "/_cluster/health"
	endpointMaster        = "/_cat/master?format=json&h=id,node"
	endpointNodeStats     = "/_nodes/stats/os,jvm,thread_pool,indices,breaker,http,transport?filter_path=" +
		"nodes.*.name,nodes.*.roles,nodes.*.attributes," +
		"nodes.*.os.load_average,nodes.*.os.cpu.load_average,nodes.*.os.mem.used_percent," +
		"nodes.*.jvm.mem.heap_used_percent,nodes.*.jvm.mem.pools.old.used_in_bytes,nodes.*.jvm.gc.collectors," +
		"nodes.*.thread_pool,nodes.*.breakers.fielddata.tripped," +
		"nodes.*.indices.docs,nodes.*.indices.store.throttle_time_in_millis," +
		"nodes.*.indices.merges.total_time_in_millis,nodes.*.indices.fielddata.evictions," +
		"nodes.*.http.current_open,nodes.*.http.total_opened,nodes.*.transport.server_open"
)

// GetClusterHealth fetches cluster health from /_cluster/health.
func (c *DefaultClient) GetClusterHealth(ctx context.Context) (*ClusterHealth, error) {
	body, err := c.doGet(ctx, endpointClusterHealth)
	if err != nil {
		return nil, fmt.Errorf("GetClusterHealth: %w", err)
	}

	var result ClusterHealth
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetClusterHealth decode: %w", err)
	}
	return &result, nil
}

// GetNodeStats fetches per-node statistics from /_nodes/stats.
func (c *DefaultClient) GetNodeStats(ctx context.Context) (*NodeStatsResponse, error) {
	body, err := c.doGet(ctx, endpointNodeStats)
	if err != nil {
		return nil, fmt.Errorf("GetNodeStats: %w", err)
	}

	var result NodeStatsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetNodeStats decode: %w", err)
	}
	return &result, nil
}

// GetMaster fetches the currently elected master from /_cat/master.
func (c *DefaultClient) GetMaster(ctx context.Context) (*MasterInfo, error) {
	body, err := c.doGet(ctx, endpointMaster)
	if err != nil {
		return nil, fmt.Errorf("GetMaster: %w", err)
	}

	var result []MasterInfo
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("GetMaster decode: %w", err)
	}
	if len(result) == 0 {
		// No elected master (e.g. during an election); nothing gets flagged.
		return &MasterInfo{}, nil
	}
	return &result[0], nil
}
