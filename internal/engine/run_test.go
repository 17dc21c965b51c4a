package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/elasticstat/internal/client"
)

func TestRun_RendersCyclesUntilCancelled(t *testing.T) {
	var calls atomic.Int64
	mc := &MockESClient{
		NodeStatsFn: func(_ context.Context) (*client.NodeStatsResponse, error) {
			n := calls.Add(1)
			return &client.NodeStatsResponse{Nodes: map[string]client.NodeStats{
				"n1": {Name: "node-1", JVM: gcJVM(n)},
			}}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var results []CycleResult
	e := New(Options{})
	err := Run(ctx, mc, e, 20*time.Millisecond, func(res CycleResult) error {
		results = append(results, res)
		if len(results) == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"n1"}, results[0].Joined)
	assert.False(t, results[0].Nodes[0].OldGC.Count.IsDelta())
	assert.True(t, results[1].Nodes[0].OldGC.Count.IsDelta())
	assert.Equal(t, int64(1), results[2].Nodes[0].OldGC.Count.Value)
	assert.Equal(t, 3, e.Cycles())
}

func TestRun_FetchFailureIsFatal(t *testing.T) {
	var calls atomic.Int64
	mc := &MockESClient{
		HealthFn: func(_ context.Context) (*client.ClusterHealth, error) {
			if calls.Add(1) == 2 {
				return nil, errMockFailure
			}
			return &client.ClusterHealth{ClusterName: "c"}, nil
		},
	}

	rendered := 0
	e := New(Options{})
	err := Run(context.Background(), mc, e, time.Millisecond, func(CycleResult) error {
		rendered++
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, 1, rendered, "no partial rendering after a failed fetch")
	assert.Equal(t, 1, e.Cycles())
}

func TestRun_RenderErrorStops(t *testing.T) {
	errRender := errors.New("broken pipe")
	err := Run(context.Background(), &MockESClient{}, New(Options{}), time.Millisecond, func(CycleResult) error {
		return errRender
	})
	assert.ErrorIs(t, err, errRender)
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mc := &MockESClient{
		HealthFn: func(ctx context.Context) (*client.ClusterHealth, error) {
			return nil, ctx.Err()
		},
	}
	e := New(Options{})
	err := Run(ctx, mc, e, time.Hour, func(CycleResult) error {
		t.Fatal("render must not be called")
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, e.Cycles())
}

func gcJVM(count int64) *client.NodeJVMStats {
	jvm := &client.NodeJVMStats{}
	jvm.GC.Collectors = map[string]client.GCCollectorStats{
		"old": {CollectionCount: count},
	}
	return jvm
}
