package models

import (
	"encoding/json"
	"fmt"
)

// Group is a named role a user can be a member of.
type Group int

const (
	GroupOFAAdmin Group = iota + 1
	GroupDataPrepper
)

// Groups lists every known group.
var Groups = []Group{GroupOFAAdmin, GroupDataPrepper}

func (g Group) String() string {
	switch g {
	case GroupOFAAdmin:
		return "OFA Admin"
	case GroupDataPrepper:
		return "Data Prepper"
	default:
		return fmt.Sprintf("Group(%d)", int(g))
	}
}

// ParseGroup maps a stored group name to a Group. Unknown names report false.
func ParseGroup(name string) (Group, bool) {
	for _, g := range Groups {
		if g.String() == name {
			return g, true
		}
	}
	return 0, false
}

func (g Group) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := ParseGroup(name)
	if !ok {
		return fmt.Errorf("unknown group %q", name)
	}
	*g = parsed
	return nil
}

// Role is a group row as exposed by the roles listing.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
