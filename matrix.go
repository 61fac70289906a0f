package authz

import "fmt"

// Matrix is the immutable (role, resource) -> permission entry table.
// A missing pair is the deny-all entry; that default is the contract, not a
// gap, so Lookup never fails.
type Matrix struct {
	grants map[RoleID]map[Resource]PermissionEntry
}

// NewMatrix builds a matrix from grants. Grants referencing resources outside
// the enumerated set, empty roles, or duplicating a pair are construction
// errors.
func NewMatrix(grants []Grant) (*Matrix, error) {
	m := &Matrix{grants: make(map[RoleID]map[Resource]PermissionEntry)}
	for _, g := range grants {
		if g.Role == "" {
			return nil, fmt.Errorf("%w: grant with empty role", ErrInvalidInput)
		}
		if !KnownResource(g.Resource) {
			return nil, fmt.Errorf("%w: %q in grant for role %q", ErrUnknownResource, g.Resource, g.Role)
		}
		byResource, ok := m.grants[g.Role]
		if !ok {
			byResource = make(map[Resource]PermissionEntry)
			m.grants[g.Role] = byResource
		}
		if _, dup := byResource[g.Resource]; dup {
			return nil, fmt.Errorf("%w: duplicate grant (%s, %s)", ErrInvalidInput, g.Role, g.Resource)
		}
		byResource[g.Resource] = g.Entry
	}
	return m, nil
}

// Lookup returns the entry for (role, resource). Misses return the zero
// deny-all entry.
func (m *Matrix) Lookup(role RoleID, res Resource) PermissionEntry {
	return m.grants[role][res]
}

// Covers reports whether an explicit entry exists for (role, resource),
// distinguishing a registered deny-all entry from an absent one.
func (m *Matrix) Covers(role RoleID, res Resource) bool {
	_, ok := m.grants[role][res]
	return ok
}

// coveredBySomeRole reports whether any role holds an explicit entry for res.
func (m *Matrix) coveredBySomeRole(res Resource) bool {
	for _, byResource := range m.grants {
		if _, ok := byResource[res]; ok {
			return true
		}
	}
	return false
}

// roleIDs returns every role id that appears in the matrix.
func (m *Matrix) roleIDs() []RoleID {
	ids := make([]RoleID, 0, len(m.grants))
	for id := range m.grants {
		ids = append(ids, id)
	}
	return ids
}
