package engine

import (
	"strings"

	"github.com/dm/elasticstat/internal/model"
)

// Attribute keys holding a node's eligibility flags.
const (
	attrMaster = "master"
	attrData   = "data"
)

// ClassifyRole derives a node's role from its "master" and "data" attribute
// flags. A missing flag means "true": clusters only emit the flag when the
// eligibility is explicitly disabled. Any value other than "true"/"false"
// yields RoleUnknown.
func ClassifyRole(attrs map[string]string) model.Role {
	isMaster, okMaster := flag(attrs, attrMaster)
	isData, okData := flag(attrs, attrData)
	if !okMaster || !okData {
		return model.RoleUnknown
	}

	switch {
	case isMaster && isData:
		return model.RoleAll
	case isMaster:
		return model.RoleMaster
	case isData:
		return model.RoleData
	default:
		return model.RoleRouter
	}
}

// flag reads a boolean-ish attribute. ok is false for malformed values.
func flag(attrs map[string]string, key string) (val, ok bool) {
	v, present := attrs[key]
	if !present {
		return true, true
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// RoleAttributes translates a node "roles" list (5.x and later) into the
// attribute form ClassifyRole understands. Flags are only emitted when the
// eligibility is absent, mirroring how older clusters report attributes.
// Any "data_*" tier role counts as data-eligible.
func RoleAttributes(roles []string) map[string]string {
	var master, data bool
	for _, r := range roles {
		switch {
		case r == "master":
			master = true
		case r == "data" || strings.HasPrefix(r, "data_"):
			data = true
		}
	}

	attrs := make(map[string]string, 2)
	if !master {
		attrs[attrMaster] = "false"
	}
	if !data {
		attrs[attrData] = "false"
	}
	return attrs
}
