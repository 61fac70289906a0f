package authz

import (
	"errors"
	"testing"
)

func TestParseScopeLevel(t *testing.T) {
	for level, name := range scopeLevelNames {
		parsed, err := ParseScopeLevel(name)
		if err != nil {
			t.Fatalf("ParseScopeLevel(%q) returned error: %v", name, err)
		}
		if parsed != level {
			t.Errorf("ParseScopeLevel(%q) = %v, want %v", name, parsed, level)
		}
	}

	if _, err := ParseScopeLevel("galaxy"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseScopeLevel(galaxy) error = %v, want ErrInvalidInput", err)
	}
}

func TestResolveScope(t *testing.T) {
	actor := &Actor{
		RoleID:         RoleFacilityManager,
		SubjectID:      10,
		OrganizationID: 1,
		FacilityID:     7,
		BranchID:       3,
		VehicleID:      42,
		MerchantID:     12,
	}
	got := ResolveScope(actor)
	want := ScopeValues{
		SubjectID:      10,
		OrganizationID: 1,
		FacilityID:     7,
		BranchID:       3,
		VehicleID:      42,
		MerchantID:     12,
	}
	if got != want {
		t.Errorf("ResolveScope = %+v, want %+v", got, want)
	}

	if got := ResolveScope(nil); got != (ScopeValues{}) {
		t.Errorf("ResolveScope(nil) = %+v, want zero", got)
	}
}

func TestScopeSatisfies(t *testing.T) {
	facilityActor := ScopeValues{OrganizationID: 1, FacilityID: 7}

	tests := []struct {
		name      string
		level     ScopeLevel
		actor     ScopeValues
		target    TargetScope
		want      bool
		ambiguous bool
	}{
		{
			name:   "global always satisfies",
			level:  ScopeGlobal,
			actor:  ScopeValues{},
			target: TargetScope{OrganizationID: 999, FacilityID: 5},
			want:   true,
		},
		{
			name:   "empty target is role-level question",
			level:  ScopeFacility,
			actor:  facilityActor,
			target: TargetScope{},
			want:   true,
		},
		{
			name:   "own facility matches",
			level:  ScopeFacility,
			actor:  facilityActor,
			target: TargetScope{FacilityID: 7},
			want:   true,
		},
		{
			name:   "other facility denied",
			level:  ScopeFacility,
			actor:  facilityActor,
			target: TargetScope{FacilityID: 9},
			want:   false,
		},
		{
			name:      "narrower-only target is ambiguous",
			level:     ScopeFacility,
			actor:     facilityActor,
			target:    TargetScope{BranchID: 3},
			want:      false,
			ambiguous: true,
		},
		{
			name:      "broader-only target is denied",
			level:     ScopeFacility,
			actor:     facilityActor,
			target:    TargetScope{OrganizationID: 1},
			want:      false,
			ambiguous: true,
		},
		{
			name:   "pinned facility tolerates one-sided narrower field",
			level:  ScopeFacility,
			actor:  facilityActor,
			target: TargetScope{FacilityID: 7, VehicleID: 42},
			want:   true,
		},
		{
			name:   "both-sides mismatch on any field denies",
			level:  ScopeFacility,
			actor:  facilityActor,
			target: TargetScope{OrganizationID: 2, FacilityID: 7},
			want:   false,
		},
		{
			name:   "branch actor on own branch",
			level:  ScopeBranch,
			actor:  ScopeValues{OrganizationID: 1, BranchID: 3},
			target: TargetScope{BranchID: 3},
			want:   true,
		},
		{
			name:   "merchant actor on own merchant",
			level:  ScopeMerchant,
			actor:  ScopeValues{MerchantID: 12},
			target: TargetScope{MerchantID: 12},
			want:   true,
		},
		{
			name:      "sibling branch never satisfies",
			level:     ScopeMerchant,
			actor:     ScopeValues{MerchantID: 12},
			target:    TargetScope{VehicleID: 42},
			want:      false,
			ambiguous: true,
		},
		{
			name:   "personal actor on own subject",
			level:  ScopePersonal,
			actor:  ScopeValues{SubjectID: 10},
			target: TargetScope{SubjectID: 10},
			want:   true,
		},
		{
			name:   "actor without own-level value denied",
			level:  ScopeFacility,
			actor:  ScopeValues{OrganizationID: 1},
			target: TargetScope{FacilityID: 7},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scopeSatisfies(tt.level, tt.actor, tt.target)
			if got != tt.want {
				t.Errorf("scopeSatisfies = %v, want %v", got, tt.want)
			}
			if tt.ambiguous && !errors.Is(err, ErrAmbiguousScope) {
				t.Errorf("expected ErrAmbiguousScope, got %v", err)
			}
			if !tt.ambiguous && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
