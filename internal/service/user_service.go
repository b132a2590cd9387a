package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"userdir/internal/cache"
	apperrors "userdir/internal/errors"
	"userdir/internal/model"
	"userdir/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user domain operations.
type UserService interface {
	ListUsers(ctx context.Context, q *model.UserQuery) ([]model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	CreateUser(ctx context.Context, name string, age int, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, name string, age int, email string) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
	AddRole(ctx context.Context, id uint, name model.RoleName) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// ListUsers normalizes the query and runs it. A storage failure is
// reported as the users being unavailable; an empty page is a valid
// result, not an error.
func (s *userService) ListUsers(ctx context.Context, q *model.UserQuery) ([]model.User, error) {
	q.Normalize()
	users, err := s.repo.List(ctx, q)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidSortField) {
			return nil, err
		}
		return nil, apperrors.ErrUsersUnavailable
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, name string, age int, email string) (*model.User, error) {
	if err := s.checkEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	user := &model.User{Name: name, Age: age, Email: email}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser applies partial semantics: an empty name, non-positive age or
// empty email leaves the stored value untouched.
func (s *userService) UpdateUser(ctx context.Context, id uint, name string, age int, email string) (*model.User, error) {
	if email != "" {
		if err := s.checkEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if age > 0 {
		user.Age = age
	}
	if email != "" {
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		// A write conflict against a row that is gone is a plain not-found;
		// one against a row that still exists is fatal.
		exists, checkErr := s.repo.Exists(ctx, id)
		if checkErr == nil && !exists {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check user existence: %w", err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// AddRole inserts a role row for an existing user. Duplicate roles are
// allowed.
func (s *userService) AddRole(ctx context.Context, id uint, name model.RoleName) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check user existence: %w", err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}

	role := &model.Role{Name: name, UserID: id}
	if err := s.repo.AddRole(ctx, role); err != nil {
		return fmt.Errorf("add role: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// checkEmailFree reports ErrEmailTaken when email belongs to a user other
// than selfID. Comparison is case-insensitive.
func (s *userService) checkEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if existing.ID != selfID {
		return apperrors.ErrEmailTaken
	}
	return nil
}
