package authz

import "fmt"

// ScopeLevel ranks how broadly a role's access extends. Lower numeric values
// are more permissive. Containment is directional: a broader level satisfies
// requests aimed at narrower levels of the same branch, never the reverse.
type ScopeLevel int

const (
	ScopeGlobal ScopeLevel = iota
	ScopeOrganization
	ScopeFacility
	ScopeBranch
	ScopeVehicle
	ScopeMerchant
	ScopePersonal
)

var scopeLevelNames = map[ScopeLevel]string{
	ScopeGlobal:       "global",
	ScopeOrganization: "organization",
	ScopeFacility:     "facility",
	ScopeBranch:       "branch",
	ScopeVehicle:      "vehicle",
	ScopeMerchant:     "merchant",
	ScopePersonal:     "personal",
}

func (l ScopeLevel) String() string {
	if name, ok := scopeLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("scope(%d)", int(l))
}

// ParseScopeLevel converts a stored level name back to a ScopeLevel.
func ParseScopeLevel(s string) (ScopeLevel, error) {
	for level, name := range scopeLevelNames {
		if name == s {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: scope level %q", ErrInvalidInput, s)
}

// ScopeValues is the canonical projection of an actor's concrete scope ids.
// Zero means the actor holds no value at that level.
type ScopeValues struct {
	OrganizationID uint64
	FacilityID     uint64
	BranchID       uint64
	VehicleID      uint64
	MerchantID     uint64
	SubjectID      uint64
}

// ResolveScope projects the actor's stored attributes into ScopeValues.
// Pure field projection, no I/O.
func ResolveScope(a *Actor) ScopeValues {
	if a == nil {
		return ScopeValues{}
	}
	return ScopeValues{
		OrganizationID: a.OrganizationID,
		FacilityID:     a.FacilityID,
		BranchID:       a.BranchID,
		VehicleID:      a.VehicleID,
		MerchantID:     a.MerchantID,
		SubjectID:      a.SubjectID,
	}
}

// field is the explicit per-level field selector. Each level compares exactly
// one id field; there is deliberately no transitive walk across hierarchy
// branches (a facility does not imply a specific merchant).
func (v ScopeValues) field(level ScopeLevel) uint64 {
	switch level {
	case ScopeOrganization:
		return v.OrganizationID
	case ScopeFacility:
		return v.FacilityID
	case ScopeBranch:
		return v.BranchID
	case ScopeVehicle:
		return v.VehicleID
	case ScopeMerchant:
		return v.MerchantID
	case ScopePersonal:
		return v.SubjectID
	default:
		return 0
	}
}

func (t TargetScope) field(level ScopeLevel) uint64 {
	switch level {
	case ScopeOrganization:
		return t.OrganizationID
	case ScopeFacility:
		return t.FacilityID
	case ScopeBranch:
		return t.BranchID
	case ScopeVehicle:
		return t.VehicleID
	case ScopeMerchant:
		return t.MerchantID
	case ScopePersonal:
		return t.SubjectID
	default:
		return 0
	}
}

// scopeSatisfies decides whether an actor whose role is scoped at level may
// act on target. Rules:
//
//   - global always satisfies
//   - an empty target is a role-level question and always satisfies
//   - any field present on both sides must be equal
//   - the target must pin the field of the actor's own level, and the actor
//     must hold a value there; a target that names only narrower or only
//     broader levels is ambiguous and denies
func scopeSatisfies(level ScopeLevel, actor ScopeValues, target TargetScope) (bool, error) {
	if level == ScopeGlobal {
		return true, nil
	}
	if target.IsZero() {
		return true, nil
	}

	for l := ScopeOrganization; l <= ScopePersonal; l++ {
		tv := target.field(l)
		av := actor.field(l)
		if tv != 0 && av != 0 && tv != av {
			return false, nil
		}
	}

	tv := target.field(level)
	if tv == 0 {
		return false, ErrAmbiguousScope
	}
	if actor.field(level) != tv {
		return false, nil
	}
	return true, nil
}
