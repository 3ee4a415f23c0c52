package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/siteops/backend/internal/domain/identity"
	"github.com/siteops/backend/internal/domain/masterdata"
	"github.com/siteops/backend/internal/domain/shared"
	"github.com/siteops/backend/internal/infrastructure/auth"
)

// UserService manages user accounts
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	siteRepo masterdata.SiteRepository
	hasher   auth.PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	siteRepo masterdata.SiteRepository,
	hasher auth.PasswordHasher,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		siteRepo: siteRepo,
		hasher:   hasher,
	}
}

// Create adds a user account with a hashed password
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return nil, err
	}
	if req.SiteID != nil {
		if _, err := s.siteRepo.FindByID(ctx, *req.SiteID); err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password cannot be hashed")
	}

	user, err := identity.NewUser(req.Username, hash, req.DisplayName, req.Email, req.RoleID, req.SiteID)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" {
		if err := user.UpdateProfile(user.DisplayName, user.Email, req.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	filter.Normalize()

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a user's profile fields
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	return s.mutate(ctx, id, func(user *identity.User) error {
		displayName := user.DisplayName
		email := user.Email
		phone := user.Phone
		if req.DisplayName != nil {
			displayName = *req.DisplayName
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		return user.UpdateProfile(displayName, email, phone)
	})
}

// AssignRole changes a user's role
func (s *UserService) AssignRole(ctx context.Context, id uuid.UUID, req AssignRoleRequest) (*UserResponse, error) {
	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(user *identity.User) error {
		return user.AssignRole(req.RoleID)
	})
}

// AssignSite scopes a user to one site; nil grants access to all sites
func (s *UserService) AssignSite(ctx context.Context, id uuid.UUID, req AssignSiteRequest) (*UserResponse, error) {
	if req.SiteID != nil {
		if _, err := s.siteRepo.FindByID(ctx, *req.SiteID); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, id, func(user *identity.User) error {
		user.AssignSite(req.SiteID)
		return nil
	})
}

// Disable blocks a user from logging in. Users cannot disable themselves.
func (s *UserService) Disable(ctx context.Context, id, actorID uuid.UUID) (*UserResponse, error) {
	if id == actorID {
		return nil, shared.NewDomainError("SELF_DISABLE", "Users cannot disable their own account")
	}
	return s.mutate(ctx, id, (*identity.User).Disable)
}

// Enable reactivates a disabled user
func (s *UserService) Enable(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, id, (*identity.User).Enable)
}

// ResetPassword sets a new password without requiring the current one.
// Intended for administrators; self-service changes go through AuthService.
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be hashed")
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// mutate loads a user, applies fn and saves it back
func (s *UserService) mutate(ctx context.Context, id uuid.UUID, fn func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
