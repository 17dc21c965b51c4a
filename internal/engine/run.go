package engine

import (
	"context"
	"time"

	"github.com/dm/elasticstat/internal/client"
)

// Run drives the fetch → reconcile → render → sleep loop until ctx is
// cancelled or a cycle fails. render is called once per completed cycle; an
// error from it stops the loop. Cancellation only takes effect between
// cycles: a cycle whose fetch is interrupted has not touched engine state.
// Run returns nil on cancellation and an ErrFetch-wrapped error when a
// snapshot cannot be acquired.
func Run(ctx context.Context, c client.ESClient, e *Engine, interval time.Duration, render func(CycleResult) error) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		snap, err := FetchAll(ctx, c)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := render(e.Cycle(snap)); err != nil {
			return err
		}
		timer.Reset(interval)
	}
}
