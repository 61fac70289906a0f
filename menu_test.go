package authz

import (
	"reflect"
	"testing"
)

func TestProjectMenuDriver(t *testing.T) {
	e := defaultEngine(t)
	driver := &Actor{RoleID: RoleDriver, VehicleID: 42}

	items := e.ProjectMenu(driver)
	want := []Resource{ResourceDashboard, ResourceShipments, ResourceVehicles}

	got := make([]Resource, 0, len(items))
	for _, item := range items {
		got = append(got, item.Resource)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("driver menu = %v, want %v", got, want)
	}
}

func TestProjectMenuDeterministic(t *testing.T) {
	e := defaultEngine(t)
	manager := &Actor{RoleID: RoleOrganizationManager, OrganizationID: 1, IsDistributor: true}

	first := e.ProjectMenu(manager)
	for i := 0; i < 20; i++ {
		if got := e.ProjectMenu(manager); !reflect.DeepEqual(got, first) {
			t.Fatalf("projection %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestProjectMenuFollowsCandidateOrder(t *testing.T) {
	e := defaultEngine(t)
	admin := &Actor{RoleID: RoleAdmin, IsDistributor: true}

	items := e.ProjectMenu(admin)
	candidates := DefaultMenu()
	if len(items) != len(candidates) {
		t.Fatalf("admin menu has %d items, want all %d candidates", len(items), len(candidates))
	}
	for i, item := range items {
		if item.Resource != candidates[i].Resource {
			t.Errorf("position %d: got %s, want %s", i, item.Resource, candidates[i].Resource)
		}
		if item.Route != candidates[i].Route {
			t.Errorf("position %d: route %q, want %q", i, item.Route, candidates[i].Route)
		}
	}
}

func TestDistributionAttributeRuleNarrowsOnly(t *testing.T) {
	e := defaultEngine(t)

	hasDistribution := func(items []MenuItem) bool {
		for _, item := range items {
			if item.Resource == ResourceDistribution {
				return true
			}
		}
		return false
	}

	// Permission without the attribute: hidden.
	manager := &Actor{RoleID: RoleOrganizationManager, OrganizationID: 1}
	if hasDistribution(e.ProjectMenu(manager)) {
		t.Error("distribution entry shown without the distributor flag")
	}

	// Attribute plus permission: shown.
	manager.IsDistributor = true
	if !hasDistribution(e.ProjectMenu(manager)) {
		t.Error("distribution entry hidden from a distributor with view permission")
	}

	// Attribute without permission: the flag can never widen the matrix.
	driver := &Actor{RoleID: RoleDriver, VehicleID: 42, IsDistributor: true}
	if hasDistribution(e.ProjectMenu(driver)) {
		t.Error("distributor flag widened access past the permission matrix")
	}
}

func TestProjectMenuUnknownRoleEmpty(t *testing.T) {
	e := defaultEngine(t)
	ghost := &Actor{RoleID: "ghost"}

	if items := e.ProjectMenu(ghost); len(items) != 0 {
		t.Errorf("unknown role projected %d items, want none", len(items))
	}
	if items := e.ProjectMenu(nil); len(items) != 0 {
		t.Errorf("nil actor projected %d items, want none", len(items))
	}
}
