package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// UserFilter defines filters for listing users.
type UserFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// UserRepository provides access to user accounts and their role grants.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error)
	Deactivate(ctx context.Context, id uint) error
	RecordLogin(ctx context.Context, id uint, at time.Time) error
	ListActiveGrants(ctx context.Context, userID uint, schoolID *uint) ([]models.RoleGrant, error)
	CreateGrant(ctx context.Context, grant *models.RoleGrant) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("RoleGrants").First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("RoleGrants").Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(email) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", like, like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("last_name, first_name")
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var users []models.User
	if err := query.Preload("RoleGrants").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error) {
	tx := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id)
	if err := tx.Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Deactivate(ctx context.Context, id uint) error {
	update := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Where("status = ?", models.StatusActive).
		Update("status", models.StatusInactive)
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *userRepository) ListActiveGrants(ctx context.Context, userID uint, schoolID *uint) ([]models.RoleGrant, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", models.StatusActive)
	if schoolID != nil {
		query = query.Where("school_id = ? OR school_id IS NULL", *schoolID)
	}

	var grants []models.RoleGrant
	if err := query.Find(&grants).Error; err != nil {
		return nil, err
	}

	return grants, nil
}

func (r *userRepository) CreateGrant(ctx context.Context, grant *models.RoleGrant) error {
	return r.db.WithContext(ctx).Create(grant).Error
}
