package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/config"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// UserService coordinates user account CRUD. Reads are open; mutations are
// permitted to the account holder or an ADMIN.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserCreateInput describes direct user creation.
type UserCreateInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UserUpdateInput describes the mutable account fields.
type UserUpdateInput struct {
	Username string
	Role     domain.Role
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// ListUsers returns a page of users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// CreateUser persists a new account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, apperrors.NewDuplicateEmail()
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateUser changes username and role after the owner-or-admin check.
func (s *UserService) UpdateUser(ctx context.Context, principal *auth.Principal, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateUser(principal, user.Email) {
		return nil, apperrors.NewForbidden("not allowed to modify this user")
	}

	user.Username = input.Username
	user.Role = input.Role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account after the owner-or-admin check.
func (s *UserService) DeleteUser(ctx context.Context, principal *auth.Principal, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutateUser(principal, user.Email) {
		return apperrors.NewForbidden("not allowed to delete this user")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
