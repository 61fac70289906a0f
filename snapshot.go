package authz

import "fmt"

// Snapshot bundles the immutable tables one evaluation generation works
// against. A reload builds a whole new Snapshot and swaps it in atomically;
// entries are never mutated in place, so concurrent readers need no locks.
type Snapshot struct {
	Registry *Registry
	Matrix   *Matrix
	Menu     []MenuEntry
}

// NewSnapshot validates the tables against each other and freezes them.
func NewSnapshot(registry *Registry, matrix *Matrix, menu []MenuEntry) (*Snapshot, error) {
	if registry == nil || matrix == nil {
		return nil, fmt.Errorf("%w: snapshot requires registry and matrix", ErrInvalidInput)
	}
	s := &Snapshot{Registry: registry, Matrix: matrix, Menu: menu}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// validate enforces the construction-time invariants:
//
//   - every matrix grant references a registered role
//   - every menu entry references a known resource
//   - every routed resource has at least one explicit matrix entry, so a
//     route cannot silently fall through to the deny-all default for every
//     role at once
func (s *Snapshot) validate() error {
	for _, id := range s.Matrix.roleIDs() {
		if _, err := s.Registry.Get(id); err != nil {
			return fmt.Errorf("matrix references unregistered role %q: %w", id, err)
		}
	}
	for _, entry := range s.Menu {
		if !KnownResource(entry.Resource) {
			return fmt.Errorf("%w: menu entry %q routes %q", ErrUnknownResource, entry.Route, entry.Resource)
		}
		if entry.Route == "" {
			return fmt.Errorf("%w: menu entry for %q has no route", ErrInvalidInput, entry.Resource)
		}
		if !s.Matrix.coveredBySomeRole(entry.Resource) {
			return fmt.Errorf("%w: routed resource %q has no matrix entry for any role", ErrInvalidInput, entry.Resource)
		}
	}
	return nil
}
