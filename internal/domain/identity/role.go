package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/siteops/backend/internal/domain/shared"
)

// Permission is a functional permission in "<module>:<action>" form,
// e.g. "site:create" or "attendance:mark". It is a value object.
type Permission struct {
	Code     string
	Module   string
	Action   string
}

var permissionPartPattern = regexp.MustCompile(`^[a-z][a-z_]*$`)

// NewPermission creates a permission from a module and action
func NewPermission(module, action string) (*Permission, error) {
	module = strings.ToLower(strings.TrimSpace(module))
	action = strings.ToLower(strings.TrimSpace(action))
	if !permissionPartPattern.MatchString(module) {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission module must be lowercase letters and underscores")
	}
	if !permissionPartPattern.MatchString(action) {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission action must be lowercase letters and underscores")
	}

	return &Permission{
		Code:   module + ":" + action,
		Module: module,
		Action: action,
	}, nil
}

// ParsePermission parses a "<module>:<action>" code
func ParsePermission(code string) (*Permission, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission code must be in module:action form")
	}
	return NewPermission(parts[0], parts[1])
}

// PermissionList is stored as a comma-separated string column
type PermissionList []string

// Contains reports whether the list grants the given permission code.
// A "<module>:*" entry grants every action in the module, and "*:*"
// grants everything.
func (p PermissionList) Contains(code string) bool {
	parts := strings.SplitN(code, ":", 2)
	for _, granted := range p {
		if granted == code || granted == "*:*" {
			return true
		}
		if len(parts) == 2 && granted == parts[0]+":*" {
			return true
		}
	}
	return false
}

// Role groups permissions for assignment to users
type Role struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(500)"`
	Permissions string `gorm:"type:text;not null"` // comma-separated permission codes
	IsSystem    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a role with the given permission codes
func NewRole(name, description string, permissions []string) (*Role, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	for _, code := range permissions {
		if _, err := ParsePermission(code); err != nil && !isWildcard(code) {
			return nil, err
		}
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Permissions:       strings.Join(permissions, ","),
	}, nil
}

func isWildcard(code string) bool {
	if code == "*:*" {
		return true
	}
	parts := strings.SplitN(code, ":", 2)
	return len(parts) == 2 && parts[1] == "*" && permissionPartPattern.MatchString(parts[0])
}

// PermissionList returns the role's permission codes
func (r *Role) PermissionList() PermissionList {
	if r.Permissions == "" {
		return nil
	}
	return strings.Split(r.Permissions, ",")
}

// HasPermission reports whether the role grants the permission code
func (r *Role) HasPermission(code string) bool {
	return r.PermissionList().Contains(code)
}

// Update changes the role name and description
func (r *Role) Update(name, description string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetPermissions replaces the role's permission codes
func (r *Role) SetPermissions(permissions []string) error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}
	for _, code := range permissions {
		if _, err := ParsePermission(code); err != nil && !isWildcard(code) {
			return err
		}
	}
	r.Permissions = strings.Join(permissions, ",")
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}
