// Package privdrop resolves user and group names to numeric identities
// and transitions the process (or a child about to be spawned) to them.
package privdrop

import (
	"fmt"
	"os/user"
	"strconv"
)

// Spec names the target identity. All fields optional; an empty spec
// requests no identity change.
type Spec struct {
	User   string   `yaml:"user" json:"user,omitempty"`
	Group  string   `yaml:"group" json:"group,omitempty"`
	Groups []string `yaml:"groups" json:"groups,omitempty"`
}

// Empty reports whether the spec requests no identity change.
func (s Spec) Empty() bool {
	return s.User == "" && s.Group == "" && len(s.Groups) == 0
}

// Identity is a fully resolved Spec. Resolution always happens fresh in
// the process that will assume the identity; identities are never cached
// across processes.
type Identity struct {
	UID    uint32
	GID    uint32
	Groups []uint32
	Home   string

	hasUID bool
	hasGID bool
}

// Resolve looks up every named group and then the user. Any name that
// fails to resolve aborts resolution before the caller can mutate
// anything; a partial transition is never acceptable.
func (s Spec) Resolve() (*Identity, error) {
	id := &Identity{}

	if s.Group != "" {
		gid, err := lookupGroup(s.Group)
		if err != nil {
			return nil, err
		}
		id.GID = gid
		id.hasGID = true
	}
	for _, name := range s.Groups {
		gid, err := lookupGroup(name)
		if err != nil {
			return nil, err
		}
		id.Groups = append(id.Groups, gid)
	}
	if s.User != "" {
		u, err := user.Lookup(s.User)
		if err != nil {
			return nil, fmt.Errorf("resolve user %q: %w", s.User, err)
		}
		uid, err := strconv.ParseUint(u.Uid, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("user %q has non-numeric uid %q", s.User, u.Uid)
		}
		id.UID = uint32(uid)
		id.hasUID = true
		id.Home = u.HomeDir
	}

	return id, nil
}

func lookupGroup(name string) (uint32, error) {
	g, err := user.LookupGroup(name)
	if err != nil {
		return 0, fmt.Errorf("resolve group %q: %w", name, err)
	}
	gid, err := strconv.ParseUint(g.Gid, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("group %q has non-numeric gid %q", name, g.Gid)
	}
	return uint32(gid), nil
}

// groupList is the full group set in transition order: primary gid first,
// then every supplementary group.
func (id *Identity) groupList() []uint32 {
	var groups []uint32
	if id.hasGID {
		groups = append(groups, id.GID)
	}
	return append(groups, id.Groups...)
}
