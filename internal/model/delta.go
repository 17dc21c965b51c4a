package model

// ResultKind tags a DeltaResult.
type ResultKind int

const (
	// ResultUnavailable means no baseline existed yet for the counter.
	ResultUnavailable ResultKind = iota
	// ResultDelta means Value holds current minus previous.
	ResultDelta
	// ResultNotApplicable means the counter does not apply to the node.
	ResultNotApplicable
)

// DeltaResult is the outcome of diffing one cumulative counter.
// A zero delta and a missing baseline are different results.
type DeltaResult struct {
	Kind  ResultKind
	Value int64
}

// Unavailable returns the "no baseline yet" result.
func Unavailable() DeltaResult { return DeltaResult{Kind: ResultUnavailable} }

// Delta returns a result carrying v.
func Delta(v int64) DeltaResult { return DeltaResult{Kind: ResultDelta, Value: v} }

// NotApplicable returns the "does not apply" result.
func NotApplicable() DeltaResult { return DeltaResult{Kind: ResultNotApplicable} }

// IsDelta reports whether the result carries a numeric delta.
func (d DeltaResult) IsDelta() bool { return d.Kind == ResultDelta }

// CounterKind identifies one of the cumulative counters diffed per node.
type CounterKind int

const (
	CounterGCOld CounterKind = iota
	CounterGCYoung
	CounterFielddataEvictions
	CounterFielddataTrips
	CounterHTTPOpened
)

// CounterKinds lists every diffed counter.
var CounterKinds = []CounterKind{
	CounterGCOld,
	CounterGCYoung,
	CounterFielddataEvictions,
	CounterFielddataTrips,
	CounterHTTPOpened,
}

// String returns a stable snake_case name, used in logs and metric labels.
func (k CounterKind) String() string {
	switch k {
	case CounterGCOld:
		return "gc_old"
	case CounterGCYoung:
		return "gc_young"
	case CounterFielddataEvictions:
		return "fielddata_evictions"
	case CounterFielddataTrips:
		return "fielddata_trips"
	case CounterHTTPOpened:
		return "http_opened"
	default:
		return "unknown"
	}
}
