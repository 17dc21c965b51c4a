package engine

import (
	"context"
	"errors"

	"github.com/dm/elasticstat/internal/client"
)

// MockESClient implements client.ESClient for testing.
type MockESClient struct {
	HealthFn    func(ctx context.Context) (*client.ClusterHealth, error)
	NodeStatsFn func(ctx context.Context) (*client.NodeStatsResponse, error)
	MasterFn    func(ctx context.Context) (*client.MasterInfo, error)
}

func (m *MockESClient) GetClusterHealth(ctx context.Context) (*client.ClusterHealth, error) {
	if m.HealthFn != nil {
		return m.HealthFn(ctx)
	}
	return &client.ClusterHealth{ClusterName: "test", Status: "green"}, nil
}

func (m *MockESClient) GetNodeStats(ctx context.Context) (*client.NodeStatsResponse, error) {
	if m.NodeStatsFn != nil {
		return m.NodeStatsFn(ctx)
	}
	return &client.NodeStatsResponse{Nodes: map[string]client.NodeStats{}}, nil
}

func (m *MockESClient) GetMaster(ctx context.Context) (*client.MasterInfo, error) {
	if m.MasterFn != nil {
		return m.MasterFn(ctx)
	}
	return &client.MasterInfo{ID: "n1", Node: "node-1"}, nil
}

func (m *MockESClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockESClient) BaseURL() string {
	return "http://mock:9200"
}

var errMockFailure = errors.New("mock failure")
