//go:build integration

package engine_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/elasticstat/internal/client"
	"github.com/dm/elasticstat/internal/engine"
	"github.com/dm/elasticstat/internal/model"
)

// esClient creates a DefaultClient from $ES_URI or skips the test if unset.
func esClient(t *testing.T) client.ESClient {
	t.Helper()
	uri := os.Getenv("ES_URI")
	if uri == "" {
		t.Skip("ES_URI not set; skipping integration test")
	}
	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:            uri,
		InsecureSkipVerify: true,
		RequestTimeout:     10 * time.Second,
	})
	require.NoError(t, err)
	return c
}

// TestLiveCluster_FetchAll verifies a live snapshot is non-empty.
func TestLiveCluster_FetchAll(t *testing.T) {
	c := esClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := engine.FetchAll(ctx, c)
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Health.ClusterName)
	assert.NotEmpty(t, snap.Health.Status)
	assert.NotEmpty(t, snap.Nodes)
	assert.NotEmpty(t, snap.MasterName)
}

// TestLiveCluster_TwoCycles runs two cycles and checks that every node goes
// from sentinel to numeric deltas and exactly one node is the active master.
func TestLiveCluster_TwoCycles(t *testing.T) {
	c := esClient(t)
	ctx := context.Background()
	e := engine.New(engine.Options{})

	snap1, err := engine.FetchAll(ctx, c)
	require.NoError(t, err)
	first := e.Cycle(snap1)
	for _, rec := range first.Nodes {
		assert.Equal(t, model.Unavailable(), rec.OldGC.Count)
	}

	time.Sleep(2 * time.Second)

	snap2, err := engine.FetchAll(ctx, c)
	require.NoError(t, err)
	second := e.Cycle(snap2)

	masters := 0
	for _, rec := range second.Nodes {
		if rec.Stale {
			continue
		}
		assert.True(t, rec.OldGC.Count.IsDelta(), "node %s", rec.Name)
		assert.GreaterOrEqual(t, rec.HTTPOpened.Value, int64(0))
		if rec.ActiveMaster {
			masters++
		}
	}
	assert.Equal(t, 1, masters)
}
