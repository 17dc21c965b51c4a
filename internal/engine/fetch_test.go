package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/elasticstat/internal/client"
)

func TestFetchAll_AllSuccess(t *testing.T) {
	health := &client.ClusterHealth{ClusterName: "my-cluster", Status: "green", ActiveShards: 10, NumberOfPendingTasks: 2}
	nodeStats := &client.NodeStatsResponse{Nodes: map[string]client.NodeStats{
		"abc": {Name: "node-1", Roles: []string{"master", "data"}},
	}}

	mc := &MockESClient{
		HealthFn:    func(_ context.Context) (*client.ClusterHealth, error) { return health, nil },
		NodeStatsFn: func(_ context.Context) (*client.NodeStatsResponse, error) { return nodeStats, nil },
		MasterFn: func(_ context.Context) (*client.MasterInfo, error) {
			return &client.MasterInfo{ID: "abc", Node: "node-1"}, nil
		},
	}

	snap, err := FetchAll(context.Background(), mc)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "my-cluster", snap.Health.ClusterName)
	assert.Equal(t, "green", snap.Health.Status)
	assert.Equal(t, 10, snap.Health.ActiveShards)
	assert.Equal(t, 2, snap.Health.PendingTasks)
	assert.Equal(t, "abc", snap.MasterID)
	assert.Equal(t, "node-1", snap.MasterName)
	require.Contains(t, snap.Nodes, "abc")
	assert.Equal(t, "node-1", snap.Nodes["abc"].Name)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFetchAll_PartialFailure(t *testing.T) {
	mc := &MockESClient{
		NodeStatsFn: func(_ context.Context) (*client.NodeStatsResponse, error) {
			return nil, errMockFailure
		},
	}

	snap, err := FetchAll(context.Background(), mc)
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, ErrFetch))
	assert.True(t, errors.Is(err, errMockFailure))
}

func TestFetchAll_MasterFailureIsFatal(t *testing.T) {
	mc := &MockESClient{
		MasterFn: func(_ context.Context) (*client.MasterInfo, error) {
			return nil, errMockFailure
		},
	}

	snap, err := FetchAll(context.Background(), mc)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Nil(t, snap)
}

func TestFetchAll_NilResponse(t *testing.T) {
	mc := &MockESClient{
		HealthFn: func(_ context.Context) (*client.ClusterHealth, error) { return nil, nil },
	}

	snap, err := FetchAll(context.Background(), mc)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Nil(t, snap)
}

func TestFetchAll_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mc := &MockESClient{
		HealthFn: func(ctx context.Context) (*client.ClusterHealth, error) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return &client.ClusterHealth{Status: "green"}, nil
		},
	}

	snap, err := FetchAll(ctx, mc)
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, snap)
}
