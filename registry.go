package authz

import "fmt"

// Registry is the immutable role table. Built once, read concurrently.
type Registry struct {
	roles map[RoleID]Role
	order []RoleID
}

// NewRegistry builds a registry from an ordered role list. Duplicate or
// unnamed roles are construction errors; lookups after construction never
// mutate anything.
func NewRegistry(roles []Role) (*Registry, error) {
	r := &Registry{
		roles: make(map[RoleID]Role, len(roles)),
		order: make([]RoleID, 0, len(roles)),
	}
	for _, role := range roles {
		if role.ID == "" {
			return nil, fmt.Errorf("%w: role with empty id", ErrInvalidInput)
		}
		if _, dup := r.roles[role.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate role %q", ErrInvalidInput, role.ID)
		}
		if role.DataScope < ScopeGlobal || role.DataScope > ScopePersonal {
			return nil, fmt.Errorf("%w: role %q has invalid data scope", ErrInvalidInput, role.ID)
		}
		r.roles[role.ID] = role
		r.order = append(r.order, role.ID)
	}
	return r, nil
}

// Get returns the role for id, or ErrUnknownRole. Callers gating decisions
// must treat the error as "deny everything", never as a failure.
func (r *Registry) Get(id RoleID) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, fmt.Errorf("%w: %q", ErrUnknownRole, id)
	}
	return role, nil
}

// List returns the roles in registration order.
func (r *Registry) List() []Role {
	out := make([]Role, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.roles[id])
	}
	return out
}
