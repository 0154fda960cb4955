package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"caltrack/internal/authz"
	apperrors "caltrack/internal/errors"
	"caltrack/internal/model"
	"caltrack/internal/repository"
)

// UserPatch carries the optional fields of a privileged user update. Nil
// pointers leave the stored value untouched.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// UserService exposes user management, gated by the authz decision table.
// Every method takes the acting user, loaded fresh from storage by the
// authentication middleware.
type UserService interface {
	CreateUser(ctx context.Context, actor *model.User, name, email, password, role string) (*model.User, error)
	GetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, actor *model.User, filter repository.UserFilter) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, actor *model.User, id uuid.UUID) error
	SetExpectedCalories(ctx context.Context, actor *model.User, calories int) error
}

type userService struct {
	userRepo repository.UserRepository
	authSvc  AuthService
}

// NewUserService builds a UserService. User creation delegates to the auth
// service so admin-issued accounts share the registration path.
func NewUserService(userRepo repository.UserRepository, authSvc AuthService) UserService {
	return &userService{userRepo: userRepo, authSvc: authSvc}
}

func (s *userService) CreateUser(ctx context.Context, actor *model.User, name, email, password, role string) (*model.User, error) {
	if !authz.CanManageUsers(actor.Role) {
		return nil, apperrors.ErrUnauthorized
	}
	return s.authSvc.Register(ctx, name, email, password, role)
}

func (s *userService) GetUser(ctx context.Context, actor *model.User, id uuid.UUID) (*model.User, error) {
	if !authz.CanManageUsers(actor.Role) {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor *model.User, filter repository.UserFilter) ([]model.User, int64, error) {
	if !authz.CanManageUsers(actor.Role) {
		return nil, 0, apperrors.ErrUnauthorized
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 10
	}
	return s.userRepo.List(ctx, filter)
}

func (s *userService) UpdateUser(ctx context.Context, actor *model.User, id uuid.UUID, patch UserPatch) (*model.User, error) {
	user, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Role != nil {
		if !authz.ValidRole(*patch.Role) {
			return nil, apperrors.ErrInvalidRole
		}
		user.Role = *patch.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the target and cascades to its entries in one
// transaction. Regular actors are denied before the lookup so they cannot
// probe for existence; managers and admins get a 404 for unknown targets, and
// managers may only delete regular users.
func (s *userService) DeleteUser(ctx context.Context, actor *model.User, id uuid.UUID) error {
	if !authz.CanManageUsers(actor.Role) {
		return apperrors.ErrUnauthorized
	}

	target, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !authz.CanDeleteUser(actor.Role, target.Role) {
		return apperrors.ErrUnauthorized
	}

	if err := s.userRepo.DeleteWithEntries(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// SetExpectedCalories updates the actor's own daily budget. Any role may call
// it; it only ever touches the actor's row.
func (s *userService) SetExpectedCalories(ctx context.Context, actor *model.User, calories int) error {
	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	user.ExpectedDailyCalories = calories
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
