package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// StudentFilter defines filters for listing students.
type StudentFilter struct {
	SchoolID        *uint
	Status          string
	Search          string
	Page            int
	PageSize        int
	IncludeInactive bool
}

// StudentRepository exposes persistence helpers for student records.
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	FindByEmailAtSchool(ctx context.Context, schoolID uint, email string) (models.Student, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByStudentNumber(ctx context.Context, number string, excludeID uint) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error)
	Deactivate(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if !filter.IncludeInactive && filter.Status == "" {
		query = query.Where("status = ?", models.StatusActive)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", like, like, like)
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

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) FindByEmailAtSchool(ctx context.Context, schoolID uint, email string) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("LOWER(email) = LOWER(?)", email).
		First(&student).Error
	if err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *studentRepository) ExistsByStudentNumber(ctx context.Context, number string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{}).Where("student_number = ?", number)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	tx := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Where("status <> ?", models.StatusInactive)

	update := tx.Updates(updates)
	if update.Error != nil {
		return models.Student{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.Student{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *studentRepository) Deactivate(ctx context.Context, id uint) error {
	update := r.db.WithContext(ctx).Model(&models.Student{}).
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
