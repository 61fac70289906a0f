package authz

// Shipped policy tables for the food-waste logistics dashboard. They seed the
// database on first boot and back the embeddable, storage-free usage of the
// library.

// DefaultRoles returns the shipped role registry entries, in display order.
func DefaultRoles() []Role {
	return []Role{
		{
			ID:           RoleAdmin,
			DisplayNames: map[string]string{"en": "Administrator", "ar": "مدير النظام"},
			DataScope:    ScopeGlobal,
			Layout:       LayoutDesktop,
		},
		{
			ID:           RoleOrganizationManager,
			DisplayNames: map[string]string{"en": "Organization Manager", "ar": "مدير المؤسسة"},
			DataScope:    ScopeOrganization,
			Layout:       LayoutDesktop,
		},
		{
			ID:           RoleFacilityManager,
			DisplayNames: map[string]string{"en": "Facility Manager", "ar": "مدير المنشأة"},
			DataScope:    ScopeFacility,
			Layout:       LayoutDesktop,
		},
		{
			ID:           RoleBranchManager,
			DisplayNames: map[string]string{"en": "Branch Manager", "ar": "مدير الفرع"},
			DataScope:    ScopeBranch,
			Layout:       LayoutDesktop,
		},
		{
			ID:           RoleDriver,
			DisplayNames: map[string]string{"en": "Driver", "ar": "السائق"},
			DataScope:    ScopeVehicle,
			Layout:       LayoutMobile,
		},
		{
			ID:           RoleSupermarket,
			DisplayNames: map[string]string{"en": "Supermarket", "ar": "سوبر ماركت"},
			DataScope:    ScopeMerchant,
			ReadOnly:     true,
			Layout:       LayoutMobile,
		},
		{
			ID:           RoleVolunteer,
			DisplayNames: map[string]string{"en": "Volunteer", "ar": "متطوع"},
			DataScope:    ScopePersonal,
			Layout:       LayoutMobile,
		},
	}
}

// DefaultGrants returns the shipped permission matrix.
func DefaultGrants() []Grant {
	all := PermissionEntry{View: true, Create: true, Edit: true, Delete: true}
	manage := PermissionEntry{View: true, Create: true, Edit: true}
	view := PermissionEntry{View: true}
	adjust := PermissionEntry{View: true, Edit: true}

	grants := make([]Grant, 0, 64)
	grant := func(role RoleID, res Resource, entry PermissionEntry) {
		grants = append(grants, Grant{Role: role, Resource: res, Entry: entry})
	}

	for res := range knownResources {
		grant(RoleAdmin, res, all)
	}

	grant(RoleOrganizationManager, ResourceDashboard, view)
	grant(RoleOrganizationManager, ResourceOrders, all)
	grant(RoleOrganizationManager, ResourceBatches, all)
	grant(RoleOrganizationManager, ResourceShipments, manage)
	grant(RoleOrganizationManager, ResourceShipmentTracking, view)
	grant(RoleOrganizationManager, ResourceDistribution, manage)
	grant(RoleOrganizationManager, ResourceRefrigeration, adjust)
	grant(RoleOrganizationManager, ResourceVehicles, manage)
	grant(RoleOrganizationManager, ResourceMerchants, manage)
	grant(RoleOrganizationManager, ResourceBranches, all)
	grant(RoleOrganizationManager, ResourceFacilities, manage)
	grant(RoleOrganizationManager, ResourceUsers, manage)
	grant(RoleOrganizationManager, ResourceReports, view)

	grant(RoleFacilityManager, ResourceDashboard, view)
	grant(RoleFacilityManager, ResourceOrders, manage)
	grant(RoleFacilityManager, ResourceBatches, manage)
	grant(RoleFacilityManager, ResourceShipments, manage)
	grant(RoleFacilityManager, ResourceShipmentTracking, view)
	grant(RoleFacilityManager, ResourceDistribution, PermissionEntry{View: true, Create: true})
	grant(RoleFacilityManager, ResourceRefrigeration, adjust)
	grant(RoleFacilityManager, ResourceVehicles, adjust)
	grant(RoleFacilityManager, ResourceBranches, view)
	grant(RoleFacilityManager, ResourceReports, view)

	grant(RoleBranchManager, ResourceDashboard, view)
	grant(RoleBranchManager, ResourceOrders, manage)
	grant(RoleBranchManager, ResourceBatches, manage)
	grant(RoleBranchManager, ResourceShipments, view)
	grant(RoleBranchManager, ResourceShipmentTracking, view)
	grant(RoleBranchManager, ResourceReports, view)

	grant(RoleDriver, ResourceDashboard, view)
	grant(RoleDriver, ResourceShipments, view)
	grant(RoleDriver, ResourceShipmentTracking, view)
	grant(RoleDriver, ResourceVehicles, view)

	grant(RoleSupermarket, ResourceDashboard, view)
	grant(RoleSupermarket, ResourceOrders, view)
	grant(RoleSupermarket, ResourceBatches, view)
	grant(RoleSupermarket, ResourceReports, view)

	grant(RoleVolunteer, ResourceDashboard, view)
	grant(RoleVolunteer, ResourceOrders, view)

	return grants
}

// DefaultMenu returns the static, ordered route-to-resource candidate list.
// The distribution entry carries the only attribute rule: it stays hidden
// unless the actor is flagged as a distributor, on top of (never instead of)
// the view permission.
func DefaultMenu() []MenuEntry {
	return []MenuEntry{
		{Resource: ResourceDashboard, Route: "/", LabelKey: "menu.dashboard", Icon: "home"},
		{Resource: ResourceOrders, Route: "/orders", LabelKey: "menu.orders", Icon: "shopping-cart"},
		{Resource: ResourceBatches, Route: "/batches", LabelKey: "menu.batches", Icon: "layers"},
		{Resource: ResourceShipments, Route: "/shipments", LabelKey: "menu.shipments", Icon: "truck"},
		{
			Resource: ResourceDistribution,
			Route:    "/distribution",
			LabelKey: "menu.distribution",
			Icon:     "share-2",
			When:     func(a *Actor) bool { return a != nil && a.IsDistributor },
		},
		{Resource: ResourceRefrigeration, Route: "/refrigeration", LabelKey: "menu.refrigeration", Icon: "thermometer"},
		{Resource: ResourceVehicles, Route: "/vehicles", LabelKey: "menu.vehicles", Icon: "navigation"},
		{Resource: ResourceMerchants, Route: "/merchants", LabelKey: "menu.merchants", Icon: "store"},
		{Resource: ResourceBranches, Route: "/branches", LabelKey: "menu.branches", Icon: "git-branch"},
		{Resource: ResourceFacilities, Route: "/facilities", LabelKey: "menu.facilities", Icon: "warehouse"},
		{Resource: ResourceUsers, Route: "/users", LabelKey: "menu.users", Icon: "users"},
		{Resource: ResourceReports, Route: "/reports", LabelKey: "menu.reports", Icon: "bar-chart-2"},
	}
}

// DefaultSnapshot assembles the shipped tables into a validated snapshot.
func DefaultSnapshot() (*Snapshot, error) {
	registry, err := NewRegistry(DefaultRoles())
	if err != nil {
		return nil, err
	}
	matrix, err := NewMatrix(DefaultGrants())
	if err != nil {
		return nil, err
	}
	return NewSnapshot(registry, matrix, DefaultMenu())
}
