package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/identity"
	"github.com/siteops/backend/internal/domain/shared"
)

// RoleService manages roles and their permissions
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository, userRepo identity.UserRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo, userRepo: userRepo}
}

// Create adds a role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	exists, err := s.roleRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role with this name already exists")
	}

	role, err := identity.NewRole(req.Name, req.Description, req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	return &resp, nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// List retrieves roles with pagination
func (s *RoleService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[RoleResponse], error) {
	filter.Normalize()

	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.roleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, ToRoleResponse(role))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update renames a role. System roles reject modification in the domain.
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// SetPermissions replaces a role's permission codes
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, req SetPermissionsRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := role.SetPermissions(req.Permissions); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// Delete removes a role that is not a system role and has no users
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	users, err := s.userRepo.FindByRole(ctx, id)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is assigned to users and cannot be deleted")
	}

	return s.roleRepo.Delete(ctx, id)
}
