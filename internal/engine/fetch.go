package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/elasticstat/internal/client"
	"github.com/dm/elasticstat/internal/model"
)

// ErrFetch marks a failure to acquire a complete snapshot. A cycle never
// renders partial data, so callers treat it as fatal.
var ErrFetch = errors.New("fetch snapshot")

// FetchAll calls the cluster health, node stats and master endpoints
// concurrently and normalizes the results. If any call fails FetchAll returns
// the first error, wrapped with ErrFetch.
func FetchAll(ctx context.Context, c client.ESClient) (*model.Snapshot, error) {
	var (
		health    *client.ClusterHealth
		nodeStats *client.NodeStatsResponse
		master    *client.MasterInfo
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		health, err = c.GetClusterHealth(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		nodeStats, err = c.GetNodeStats(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		master, err = c.GetMaster(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if health == nil || nodeStats == nil {
		return nil, fmt.Errorf("%w: incomplete response (unexpected nil)", ErrFetch)
	}

	snap := Normalize(health, nodeStats, master, time.Now())
	snap.FetchDuration = time.Since(start)
	return snap, nil
}
