package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "userdir/internal/errors"
	"userdir/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, q *model.UserQuery) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
	AddRole(ctx context.Context, role *model.Role) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail matches case-insensitively; email uniqueness is enforced at
// write time rather than by a storage constraint.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List runs the user query pipeline: filters, role preload, sort, then
// pagination. Filtering happens before the pagination window is applied,
// so selective filters never consume page slots.
func (r *userRepository) List(ctx context.Context, q *model.UserQuery) ([]model.User, error) {
	order, err := orderClause(q)
	if err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).Model(&model.User{})

	if q.NameFilter != "" {
		tx = tx.Where("name LIKE ?", "%"+q.NameFilter+"%")
	}
	if q.MinAgeFilter != nil && *q.MinAgeFilter > 0 {
		tx = tx.Where("age >= ?", *q.MinAgeFilter)
	}
	if q.MaxAgeFilter != nil {
		tx = tx.Where("age <= ?", *q.MaxAgeFilter)
	}
	if q.EmailFilter != "" {
		tx = tx.Where("email LIKE ?", "%"+q.EmailFilter+"%")
	}

	// The role filter narrows each user's role list; it never excludes the
	// user itself.
	if q.RoleNameFilter != "" {
		kinds := model.MatchRoleNames(q.RoleNameFilter)
		if len(kinds) == 0 {
			tx = tx.Preload("Roles", "1 = 0")
		} else {
			tx = tx.Preload("Roles", "name IN ?", kinds)
		}
	} else {
		tx = tx.Preload("Roles")
	}

	var users []model.User
	err = tx.Order(order).
		Offset((q.PageNumber - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// orderClause dispatches the sort-field enum to a concrete column
// expression. RoleName sorts users by their lowest role kind.
func orderClause(q *model.UserQuery) (string, error) {
	var column string
	switch q.SortField {
	case model.SortByName:
		column = "name"
	case model.SortByAge:
		column = "age"
	case model.SortByEmail:
		column = "email"
	case model.SortByRoleName:
		column = "(SELECT MIN(roles.name) FROM roles WHERE roles.user_id = users.id)"
	default:
		return "", apperrors.ErrInvalidSortField
	}
	if q.Ascending() {
		return column + " ASC", nil
	}
	return column + " DESC", nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(user).Error
}

// Delete removes a user row; owned roles go with it via the FK cascade.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) AddRole(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}
