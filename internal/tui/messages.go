package tui

import (
	"time"

	"github.com/dm/elasticstat/internal/model"
)

// SnapshotMsg delivers a freshly fetched snapshot. The engine diffs it inside
// Update so all cross-cycle state changes on the Bubble Tea goroutine.
type SnapshotMsg struct {
	Snapshot *model.Snapshot
}

// FetchErrorMsg signals that a snapshot could not be acquired.
type FetchErrorMsg struct{ Err error }

// TickMsg triggers the next scheduled poll. Gen identifies the schedule that
// produced it; ticks from a superseded schedule are dropped.
type TickMsg struct {
	Time time.Time
	Gen  int
}
