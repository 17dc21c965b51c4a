package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dm/elasticstat/internal/model"
)

func TestTopology_RegisterAndMembersOrder(t *testing.T) {
	topo := NewTopology()
	topo.Register("c", "node-b", model.RoleData)
	topo.Register("a", "node-c", model.RoleData)
	topo.Register("b", "node-a", model.RoleData)
	topo.Register("d", "node-a", model.RoleData)

	assert.Equal(t, []string{"b", "d", "c", "a"}, topo.Members(model.RoleData), "ordered by name, then id")
	assert.Equal(t, 4, topo.Len())
	assert.Equal(t, 4, topo.Count(model.RoleData))
	assert.Empty(t, topo.Members(model.RoleAll))
}

func TestTopology_RegisterKnownKeepsRole(t *testing.T) {
	topo := NewTopology()
	topo.Register("a", "old-name", model.RoleData)
	topo.Register("a", "new-name", model.RoleAll)

	role, ok := topo.Role("a")
	assert.True(t, ok)
	assert.Equal(t, model.RoleData, role)
	assert.Equal(t, "new-name", topo.Name("a"))
}

func TestTopology_Move(t *testing.T) {
	topo := NewTopology()
	topo.Register("a", "node-a", model.RoleData)

	from, moved := topo.Move("a", model.RoleAll)
	assert.True(t, moved)
	assert.Equal(t, model.RoleData, from)
	assert.Empty(t, topo.Members(model.RoleData))
	assert.Equal(t, []string{"a"}, topo.Members(model.RoleAll))

	_, moved = topo.Move("a", model.RoleAll)
	assert.False(t, moved)

	_, moved = topo.Move("unknown", model.RoleAll)
	assert.False(t, moved)
}

func TestTopology_MembersIsASnapshot(t *testing.T) {
	topo := NewTopology()
	topo.Register("a", "node-a", model.RoleData)
	topo.Register("b", "node-b", model.RoleData)

	members := topo.Members(model.RoleData)
	topo.Move("a", model.RoleAll)
	assert.Equal(t, []string{"a", "b"}, members)
}

func TestTopology_Absence(t *testing.T) {
	topo := NewTopology()
	topo.Register("a", "node-a", model.RoleData)

	assert.False(t, topo.MarkPresent("a"))
	assert.Equal(t, 1, topo.MarkAbsent("a"))
	assert.Equal(t, 2, topo.MarkAbsent("a"))
	assert.Equal(t, 2, topo.Absent("a"))
	assert.True(t, topo.MarkPresent("a"))
	assert.Equal(t, 0, topo.Absent("a"))
}

func TestTopology_Forget(t *testing.T) {
	topo := NewTopology()
	topo.Register("a", "node-a", model.RoleMaster)
	topo.MarkAbsent("a")
	topo.Forget("a")

	assert.False(t, topo.Known("a"))
	assert.Empty(t, topo.Members(model.RoleMaster))
	assert.Equal(t, "", topo.Name("a"))
	assert.Equal(t, 0, topo.Absent("a"))
	assert.Empty(t, topo.IDs())
}

func TestTopology_SetNameIgnoresUnknown(t *testing.T) {
	topo := NewTopology()
	topo.SetName("ghost", "boo")
	assert.Equal(t, "", topo.Name("ghost"))
}
