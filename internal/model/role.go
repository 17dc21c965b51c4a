package model

// Role is a node's functional role derived from its master/data eligibility.
type Role int

const (
	RoleUnknown Role = iota
	RoleAll
	RoleMaster
	RoleData
	RoleRouter
)

// RoleOrder is the order role groups are rendered in.
var RoleOrder = []Role{RoleAll, RoleMaster, RoleData, RoleRouter, RoleUnknown}

// String returns the short role code shown in the role column.
func (r Role) String() string {
	switch r {
	case RoleAll:
		return "ALL"
	case RoleMaster:
		return "MST"
	case RoleData:
		return "DATA"
	case RoleRouter:
		return "RTR"
	default:
		return "UNK"
	}
}

// HoldsData reports whether nodes of this role store shards, i.e. whether
// merge, store throttle and document figures apply to them.
func (r Role) HoldsData() bool {
	return r == RoleAll || r == RoleData
}
