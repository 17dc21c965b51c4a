package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dm/elasticstat/internal/model"
)

// RegressionPolicy decides what a decreasing cumulative counter produces.
// A decrease usually means the node's process restarted.
type RegressionPolicy int

const (
	// RegressionPassThrough reports the negative delta as computed.
	RegressionPassThrough RegressionPolicy = iota
	// RegressionClamp reports a zero delta.
	RegressionClamp
	// RegressionRebaseline discards the old baseline and reports Unavailable.
	RegressionRebaseline
)

// String returns the policy name as accepted by ParseRegressionPolicy.
func (p RegressionPolicy) String() string {
	switch p {
	case RegressionClamp:
		return "clamp"
	case RegressionRebaseline:
		return "rebaseline"
	default:
		return "passthrough"
	}
}

// ParseRegressionPolicy parses "passthrough", "clamp" or "rebaseline".
func ParseRegressionPolicy(s string) (RegressionPolicy, error) {
	switch s {
	case "", "passthrough":
		return RegressionPassThrough, nil
	case "clamp":
		return RegressionClamp, nil
	case "rebaseline":
		return RegressionRebaseline, nil
	default:
		return 0, fmt.Errorf("unknown regression policy %q (want passthrough, clamp or rebaseline)", s)
	}
}

// Regression records a counter that went backwards between two cycles.
type Regression struct {
	NodeID   string
	Kind     model.CounterKind
	Previous int64
	Current  int64
}

// CounterStore keeps the last-seen cumulative value per node and counter
// kind and turns each new observation into a per-interval delta.
type CounterStore struct {
	values      map[string]map[model.CounterKind]int64
	policy      RegressionPolicy
	regressions []Regression
	log         *zap.Logger
}

// NewCounterStore returns an empty store. A nil logger disables logging.
func NewCounterStore(policy RegressionPolicy, log *zap.Logger) *CounterStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &CounterStore{
		values: make(map[string]map[model.CounterKind]int64),
		policy: policy,
		log:    log,
	}
}

// Track creates the (empty) counter state for a node if it has none yet.
func (s *CounterStore) Track(nodeID string) {
	if _, ok := s.values[nodeID]; !ok {
		s.values[nodeID] = make(map[model.CounterKind]int64, len(model.CounterKinds))
	}
}

// Has reports whether the node has counter state.
func (s *CounterStore) Has(nodeID string) bool {
	_, ok := s.values[nodeID]
	return ok
}

// Len returns the number of nodes with counter state.
func (s *CounterStore) Len() int {
	return len(s.values)
}

// Forget drops all counter state for a node.
func (s *CounterStore) Forget(nodeID string) {
	delete(s.values, nodeID)
}

// Observe records current as the newest cumulative value of the counter and
// returns the change since the previous observation. The first observation
// of a (node, kind) pair stores a baseline and returns Unavailable.
func (s *CounterStore) Observe(nodeID string, kind model.CounterKind, current int64) model.DeltaResult {
	s.Track(nodeID)
	counters := s.values[nodeID]

	prev, ok := counters[kind]
	counters[kind] = current
	if !ok {
		return model.Unavailable()
	}

	delta := current - prev
	if delta >= 0 {
		return model.Delta(delta)
	}

	s.regressions = append(s.regressions, Regression{NodeID: nodeID, Kind: kind, Previous: prev, Current: current})
	s.log.Warn("counter regression",
		zap.String("node_id", nodeID),
		zap.Stringer("counter", kind),
		zap.Int64("previous", prev),
		zap.Int64("current", current),
		zap.Stringer("policy", s.policy),
	)

	switch s.policy {
	case RegressionClamp:
		return model.Delta(0)
	case RegressionRebaseline:
		return model.Unavailable()
	default:
		return model.Delta(delta)
	}
}

// takeRegressions returns and clears the regressions seen since the last call.
func (s *CounterStore) takeRegressions() []Regression {
	out := s.regressions
	s.regressions = nil
	return out
}
