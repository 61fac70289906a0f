package authz

import (
	"fmt"

	"gorm.io/gorm"
)

// RoleRecord is the persisted shape of a registry entry. Position preserves
// the registration order List and the menu rely on.
type RoleRecord struct {
	ID           string            `gorm:"primaryKey;size:64"`
	DisplayNames map[string]string `gorm:"serializer:json"`
	DataScope    string            `gorm:"size:16;not null"`
	ReadOnly     bool              `gorm:"not null"`
	Layout       string            `gorm:"size:16;not null"`
	Position     int               `gorm:"not null"`
}

func (RoleRecord) TableName() string { return "authz_roles" }

// GrantRecord is the persisted shape of one permission matrix entry.
type GrantRecord struct {
	RoleID    string `gorm:"primaryKey;size:64"`
	Resource  string `gorm:"primaryKey;size:64"`
	CanView   bool   `gorm:"not null"`
	CanCreate bool   `gorm:"not null"`
	CanEdit   bool   `gorm:"not null"`
	CanDelete bool   `gorm:"not null"`
}

func (GrantRecord) TableName() string { return "authz_grants" }

// AutoMigrate creates or updates the policy and audit tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RoleRecord{}, &GrantRecord{}, &AuditRecord{}); err != nil {
		return fmt.Errorf("failed to migrate authz tables: %w", err)
	}
	return nil
}

// SeedDefaults inserts the shipped tables when the role table is empty.
// An already-seeded database is left untouched.
func SeedDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&RoleRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count roles: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, role := range DefaultRoles() {
			rec := RoleRecord{
				ID:           string(role.ID),
				DisplayNames: role.DisplayNames,
				DataScope:    role.DataScope.String(),
				ReadOnly:     role.ReadOnly,
				Layout:       string(role.Layout),
				Position:     i,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to seed role %q: %w", role.ID, err)
			}
		}
		for _, g := range DefaultGrants() {
			rec := GrantRecord{
				RoleID:    string(g.Role),
				Resource:  string(g.Resource),
				CanView:   g.Entry.View,
				CanCreate: g.Entry.Create,
				CanEdit:   g.Entry.Edit,
				CanDelete: g.Entry.Delete,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to seed grant (%s, %s): %w", g.Role, g.Resource, err)
			}
		}
		return nil
	})
}

// LoadSnapshot reads the persisted tables and builds a validated snapshot.
// The menu candidate list stays code-defined: it carries attribute rules
// that do not serialize.
func LoadSnapshot(db *gorm.DB) (*Snapshot, error) {
	var roleRecs []RoleRecord
	if err := db.Order("position").Find(&roleRecs).Error; err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}

	roles := make([]Role, 0, len(roleRecs))
	for _, rec := range roleRecs {
		level, err := ParseScopeLevel(rec.DataScope)
		if err != nil {
			return nil, fmt.Errorf("role %q: %w", rec.ID, err)
		}
		roles = append(roles, Role{
			ID:           RoleID(rec.ID),
			DisplayNames: rec.DisplayNames,
			DataScope:    level,
			ReadOnly:     rec.ReadOnly,
			Layout:       Layout(rec.Layout),
		})
	}

	var grantRecs []GrantRecord
	if err := db.Find(&grantRecs).Error; err != nil {
		return nil, fmt.Errorf("failed to load grants: %w", err)
	}

	grants := make([]Grant, 0, len(grantRecs))
	for _, rec := range grantRecs {
		grants = append(grants, Grant{
			Role:     RoleID(rec.RoleID),
			Resource: Resource(rec.Resource),
			Entry: PermissionEntry{
				View:   rec.CanView,
				Create: rec.CanCreate,
				Edit:   rec.CanEdit,
				Delete: rec.CanDelete,
			},
		})
	}

	registry, err := NewRegistry(roles)
	if err != nil {
		return nil, err
	}
	matrix, err := NewMatrix(grants)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(registry, matrix, DefaultMenu())
}
