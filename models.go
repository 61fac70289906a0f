package authz

// RoleID identifies a role. Roles are a closed set loaded at startup;
// evaluation never trusts an id that is not in the registry.
type RoleID string

const (
	RoleAdmin               RoleID = "admin"
	RoleOrganizationManager RoleID = "organization_manager"
	RoleFacilityManager     RoleID = "facility_manager"
	RoleBranchManager       RoleID = "branch_manager"
	RoleDriver              RoleID = "driver"
	RoleSupermarket         RoleID = "supermarket"
	RoleVolunteer           RoleID = "volunteer"
)

// Action is one of the four checks a permission entry answers.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Resource names a protected capability. The set is closed: grants and menu
// entries referencing a resource outside this set are rejected at
// construction time.
type Resource string

const (
	ResourceDashboard        Resource = "dashboard"
	ResourceOrders           Resource = "orders"
	ResourceBatches          Resource = "batches"
	ResourceShipments        Resource = "shipments"
	ResourceShipmentTracking Resource = "shipments/track"
	ResourceDistribution     Resource = "distribution"
	ResourceRefrigeration    Resource = "refrigeration"
	ResourceVehicles         Resource = "vehicles"
	ResourceMerchants        Resource = "merchants"
	ResourceBranches         Resource = "branches"
	ResourceFacilities       Resource = "facilities"
	ResourceUsers            Resource = "users"
	ResourceReports          Resource = "reports"
)

var knownResources = map[Resource]struct{}{
	ResourceDashboard:        {},
	ResourceOrders:           {},
	ResourceBatches:          {},
	ResourceShipments:        {},
	ResourceShipmentTracking: {},
	ResourceDistribution:     {},
	ResourceRefrigeration:    {},
	ResourceVehicles:         {},
	ResourceMerchants:        {},
	ResourceBranches:         {},
	ResourceFacilities:       {},
	ResourceUsers:            {},
	ResourceReports:          {},
}

// KnownResource reports whether res belongs to the enumerated resource set.
func KnownResource(res Resource) bool {
	_, ok := knownResources[res]
	return ok
}

// Layout is the default layout hint a role carries for its clients.
type Layout string

const (
	LayoutDesktop Layout = "desktop"
	LayoutMobile  Layout = "mobile"
)

// Role is an immutable registry entry. Roles are loaded once at startup and
// never mutated afterwards.
type Role struct {
	ID           RoleID
	DisplayNames map[string]string // locale -> display name
	DataScope    ScopeLevel
	ReadOnly     bool
	Layout       Layout
}

// DisplayName returns the localized display name, falling back to English
// and then to the raw id.
func (r Role) DisplayName(locale string) string {
	if name, ok := r.DisplayNames[locale]; ok {
		return name
	}
	if name, ok := r.DisplayNames["en"]; ok {
		return name
	}
	return string(r.ID)
}

// PermissionEntry holds the four action flags for one (role, resource) pair.
// The zero value is the deny-all entry.
type PermissionEntry struct {
	View   bool
	Create bool
	Edit   bool
	Delete bool
}

// Allows answers the entry for a single action. Unknown actions deny.
func (e PermissionEntry) Allows(action Action) bool {
	switch action {
	case ActionView:
		return e.View
	case ActionCreate:
		return e.Create
	case ActionEdit:
		return e.Edit
	case ActionDelete:
		return e.Delete
	default:
		return false
	}
}

// Grant binds a permission entry to a (role, resource) pair. Grants are the
// construction input for a Matrix.
type Grant struct {
	Role     RoleID
	Resource Resource
	Entry    PermissionEntry
}

// Actor is the authenticated caller a decision is evaluated for. It is built
// per request/session by the identity layer and owns no long-lived state.
// A zero scope id means the actor holds no value at that level.
type Actor struct {
	RoleID RoleID

	SubjectID      uint64
	OrganizationID uint64
	FacilityID     uint64
	BranchID       uint64
	VehicleID      uint64
	MerchantID     uint64

	// Free-form attributes. They can narrow menu visibility but never widen
	// what the permission matrix allows.
	Department    string
	JobTitle      string
	IsDistributor bool
}

// Valid reports whether the actor carries enough identity to evaluate.
func (a *Actor) Valid() bool {
	return a != nil && a.RoleID != ""
}

// TargetScope identifies the entity a request acts on. It is a request
// parameter, never stored. Zero fields are unspecified.
type TargetScope struct {
	OrganizationID uint64
	FacilityID     uint64
	BranchID       uint64
	VehicleID      uint64
	MerchantID     uint64
	SubjectID      uint64
}

// IsZero reports whether no scope field is specified at all.
func (t TargetScope) IsZero() bool {
	return t == TargetScope{}
}
