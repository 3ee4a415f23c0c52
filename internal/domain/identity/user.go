package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/shared"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// IsValid checks if the status is a valid UserStatus
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusDisabled
}

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User is a back-office account. Authentication is by username and
// bcrypt-hashed password; authorization comes from the assigned role.
type User struct {
	shared.BaseAggregateRoot
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(100);not null"`
	DisplayName  string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(200)"`
	Phone        string     `gorm:"type:varchar(20)"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	SiteID       *uuid.UUID `gorm:"type:uuid;index"` // nil means access to all sites
	Status       UserStatus `gorm:"type:varchar(20);not null;index"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user. passwordHash must already be hashed;
// raw passwords never reach the domain.
func NewUser(username, passwordHash, displayName, email string, roleID uuid.UUID, siteID *uuid.UUID) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be 3-50 characters of letters, digits, dot, hyphen or underscore")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	if roleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role ID cannot be empty")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      passwordHash,
		DisplayName:       displayName,
		Email:             email,
		RoleID:            roleID,
		SiteID:            siteID,
		Status:            UserStatusActive,
	}, nil
}

// UpdateProfile changes the user's display attributes
func (u *User) UpdateProfile(displayName, email, phone string) error {
	if displayName == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}
	u.DisplayName = displayName
	u.Email = email
	u.Phone = phone
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// ChangePassword sets a new password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// AssignRole changes the user's role
func (u *User) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROLE", "Role ID cannot be empty")
	}
	u.RoleID = roleID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// AssignSite scopes the user to a single site, or to all sites when nil
func (u *User) AssignSite(siteID *uuid.UUID) {
	u.SiteID = siteID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Disable blocks the account from logging in
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Enable reactivates a disabled account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "User is already active")
	}
	u.Status = UserStatusActive
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// IsActive returns true if the account can log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// CanAccessSite reports whether the user may act on the given site
func (u *User) CanAccessSite(siteID uuid.UUID) bool {
	return u.SiteID == nil || *u.SiteID == siteID
}
