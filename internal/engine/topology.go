package engine

import (
	"sort"

	"github.com/dm/elasticstat/internal/model"
)

// Topology is the set of node identities seen so far, grouped by the role
// each one was last observed with. Nodes are never removed when they leave
// the cluster, only when explicitly forgotten.
type Topology struct {
	buckets map[model.Role]map[string]struct{}
	roles   map[string]model.Role
	names   map[string]string
	absent  map[string]int // consecutive cycles a node has been missing
}

// NewTopology returns an empty Topology.
func NewTopology() *Topology {
	return &Topology{
		buckets: make(map[model.Role]map[string]struct{}),
		roles:   make(map[string]model.Role),
		names:   make(map[string]string),
		absent:  make(map[string]int),
	}
}

// Len returns the number of known nodes.
func (t *Topology) Len() int {
	return len(t.roles)
}

// Known reports whether id has been registered.
func (t *Topology) Known(id string) bool {
	_, ok := t.roles[id]
	return ok
}

// Register adds a new node to the bucket for role. Registering a known node
// is a no-op apart from refreshing its name.
func (t *Topology) Register(id, name string, role model.Role) {
	t.names[id] = name
	if t.Known(id) {
		return
	}
	t.roles[id] = role
	t.bucket(role)[id] = struct{}{}
}

// Role returns the role bucket holding id.
func (t *Topology) Role(id string) (model.Role, bool) {
	r, ok := t.roles[id]
	return r, ok
}

// Name returns the last display name observed for id.
func (t *Topology) Name(id string) string {
	return t.names[id]
}

// SetName records the display name observed for id this cycle.
func (t *Topology) SetName(id, name string) {
	if t.Known(id) {
		t.names[id] = name
	}
}

// Move reassigns id to the bucket for role. It returns the previous role and
// whether anything changed.
func (t *Topology) Move(id string, role model.Role) (model.Role, bool) {
	from, ok := t.roles[id]
	if !ok || from == role {
		return from, false
	}
	delete(t.buckets[from], id)
	t.bucket(role)[id] = struct{}{}
	t.roles[id] = role
	return from, true
}

// Members returns a copy of the ids in role's bucket ordered by name, then
// id. Callers may mutate the topology while ranging over the result.
func (t *Topology) Members(role model.Role) []string {
	b := t.buckets[role]
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ni, nj := t.names[ids[i]], t.names[ids[j]]
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Count returns the number of nodes in role's bucket.
func (t *Topology) Count(role model.Role) int {
	return len(t.buckets[role])
}

// IDs returns every known id in ascending order.
func (t *Topology) IDs() []string {
	ids := make([]string, 0, len(t.roles))
	for id := range t.roles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarkAbsent increments and returns the number of consecutive cycles id has
// been missing.
func (t *Topology) MarkAbsent(id string) int {
	t.absent[id]++
	return t.absent[id]
}

// MarkPresent clears id's absence count and reports whether it had been missing.
func (t *Topology) MarkPresent(id string) bool {
	n := t.absent[id]
	delete(t.absent, id)
	return n > 0
}

// Absent returns the number of consecutive cycles id has been missing.
func (t *Topology) Absent(id string) int {
	return t.absent[id]
}

// Forget removes every trace of id.
func (t *Topology) Forget(id string) {
	if r, ok := t.roles[id]; ok {
		delete(t.buckets[r], id)
	}
	delete(t.roles, id)
	delete(t.names, id)
	delete(t.absent, id)
}

func (t *Topology) bucket(role model.Role) map[string]struct{} {
	b, ok := t.buckets[role]
	if !ok {
		b = make(map[string]struct{})
		t.buckets[role] = b
	}
	return b
}
