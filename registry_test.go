package authz

import (
	"errors"
	"testing"
)

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
	}{
		{"empty id", []Role{{ID: "", DataScope: ScopeGlobal}}},
		{"duplicate id", []Role{
			{ID: RoleDriver, DataScope: ScopeVehicle},
			{ID: RoleDriver, DataScope: ScopeVehicle},
		}},
		{"invalid scope", []Role{{ID: RoleDriver, DataScope: ScopeLevel(99)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.roles); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("NewRegistry error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry, err := NewRegistry(DefaultRoles())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if _, err := registry.Get("ghost"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Get(ghost) error = %v, want ErrUnknownRole", err)
	}
}

func TestRegistryListOrder(t *testing.T) {
	roles := DefaultRoles()
	registry, err := NewRegistry(roles)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	listed := registry.List()
	if len(listed) != len(roles) {
		t.Fatalf("List returned %d roles, want %d", len(listed), len(roles))
	}
	for i := range roles {
		if listed[i].ID != roles[i].ID {
			t.Errorf("position %d: got %s, want %s", i, listed[i].ID, roles[i].ID)
		}
	}
}

func TestMatrixLookupMissIsDenyAll(t *testing.T) {
	matrix, err := NewMatrix(DefaultGrants())
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	if got := matrix.Lookup("ghost", ResourceOrders); got != (PermissionEntry{}) {
		t.Errorf("unknown role lookup = %+v, want deny-all", got)
	}
	if got := matrix.Lookup(RoleDriver, ResourceUsers); got != (PermissionEntry{}) {
		t.Errorf("missing pair lookup = %+v, want deny-all", got)
	}
	if matrix.Covers(RoleDriver, ResourceUsers) {
		t.Error("Covers must distinguish a missing pair from an explicit entry")
	}
	if !matrix.Covers(RoleDriver, ResourceShipmentTracking) {
		t.Error("Covers should report the explicit driver tracking entry")
	}
}

func TestNewMatrixValidation(t *testing.T) {
	if _, err := NewMatrix([]Grant{{Role: "", Resource: ResourceOrders}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty role error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewMatrix([]Grant{{Role: RoleDriver, Resource: "telemetry"}}); !errors.Is(err, ErrUnknownResource) {
		t.Errorf("unknown resource error = %v, want ErrUnknownResource", err)
	}
	dup := []Grant{
		{Role: RoleDriver, Resource: ResourceOrders},
		{Role: RoleDriver, Resource: ResourceOrders},
	}
	if _, err := NewMatrix(dup); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("duplicate grant error = %v, want ErrInvalidInput", err)
	}
}

func TestPermissionEntryAllows(t *testing.T) {
	entry := PermissionEntry{View: true, Create: true}
	if !entry.Allows(ActionView) || !entry.Allows(ActionCreate) {
		t.Error("entry should allow view and create")
	}
	if entry.Allows(ActionEdit) || entry.Allows(ActionDelete) {
		t.Error("entry should deny edit and delete")
	}
	if entry.Allows(Action("export")) {
		t.Error("unknown action must deny")
	}
}
