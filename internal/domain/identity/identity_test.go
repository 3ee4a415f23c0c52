package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	user, err := NewUser("site.manager", "$2a$10$hashhashhashhashhashha", "Suresh Nair", "suresh@example.com", uuid.New(), nil)
	require.NoError(t, err)
	return user
}

func TestNewPermission(t *testing.T) {
	t.Run("valid permission", func(t *testing.T) {
		p, err := NewPermission("Attendance", "mark")
		require.NoError(t, err)
		assert.Equal(t, "attendance:mark", p.Code)
	})

	t.Run("invalid module", func(t *testing.T) {
		_, err := NewPermission("attendance!", "mark")
		assert.Error(t, err)
	})
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("site:create")
	require.NoError(t, err)
	assert.Equal(t, "site", p.Module)
	assert.Equal(t, "create", p.Action)

	_, err = ParsePermission("sitecreate")
	assert.Error(t, err)
}

func TestPermissionList_Contains(t *testing.T) {
	list := PermissionList{"site:read", "attendance:*"}

	assert.True(t, list.Contains("site:read"))
	assert.False(t, list.Contains("site:create"))
	assert.True(t, list.Contains("attendance:mark"))
	assert.True(t, list.Contains("attendance:read"))

	admin := PermissionList{"*:*"}
	assert.True(t, admin.Contains("anything:at_all"))
}

func TestNewRole(t *testing.T) {
	t.Run("valid role", func(t *testing.T) {
		role, err := NewRole("site_engineer", "Marks attendance and posts consumption", []string{"attendance:*", "consumption:create"})
		require.NoError(t, err)
		assert.True(t, role.HasPermission("attendance:mark"))
		assert.True(t, role.HasPermission("consumption:create"))
		assert.False(t, role.HasPermission("vendor:create"))
	})

	t.Run("rejects malformed permission", func(t *testing.T) {
		_, err := NewRole("broken", "", []string{"not-a-permission"})
		assert.Error(t, err)
	})
}

func TestRole_SetPermissions(t *testing.T) {
	role, err := NewRole("accountant", "", []string{"cashbook:read"})
	require.NoError(t, err)

	require.NoError(t, role.SetPermissions([]string{"cashbook:*", "rent:read"}))
	assert.True(t, role.HasPermission("cashbook:create"))

	role.IsSystem = true
	assert.Error(t, role.SetPermissions([]string{"cashbook:read"}))
	assert.Error(t, role.Update("renamed", ""))
}

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user := createTestUser(t)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.IsActive())
	})

	t.Run("short username", func(t *testing.T) {
		_, err := NewUser("ab", "hash", "Suresh Nair", "", uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("bad email", func(t *testing.T) {
		_, err := NewUser("site.manager", "hash", "Suresh Nair", "not-an-email", uuid.New(), nil)
		assert.Error(t, err)
	})

	t.Run("missing role", func(t *testing.T) {
		_, err := NewUser("site.manager", "hash", "Suresh Nair", "", uuid.Nil, nil)
		assert.Error(t, err)
	})
}

func TestUser_EnableDisable(t *testing.T) {
	user := createTestUser(t)

	require.NoError(t, user.Disable())
	assert.False(t, user.IsActive())
	assert.Error(t, user.Disable())

	require.NoError(t, user.Enable())
	assert.True(t, user.IsActive())
	assert.Error(t, user.Enable())
}

func TestUser_CanAccessSite(t *testing.T) {
	t.Run("unscoped user reaches every site", func(t *testing.T) {
		user := createTestUser(t)
		assert.True(t, user.CanAccessSite(uuid.New()))
	})

	t.Run("scoped user limited to own site", func(t *testing.T) {
		siteID := uuid.New()
		user, err := NewUser("tower.a", "hash", "Site Clerk", "", uuid.New(), &siteID)
		require.NoError(t, err)

		assert.True(t, user.CanAccessSite(siteID))
		assert.False(t, user.CanAccessSite(uuid.New()))
	})
}
