package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// ClassroomFilter defines filters for listing classrooms.
type ClassroomFilter struct {
	SchoolID     *uint
	SchoolYearID *uint
	GradeLevel   string
	SubjectID    *uint
	TeacherID    *uint
	Kind         models.ClassroomKind
}

// ClassroomRepository exposes persistence helpers for classrooms.
type ClassroomRepository interface {
	List(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, error)
	GetByID(ctx context.Context, id uint) (models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Classroom, error)
	Delete(ctx context.Context, id uint) error
	CountActiveEnrollments(ctx context.Context, classroomID uint) (int64, error)
	Roster(ctx context.Context, classroomID uint) ([]models.Student, error)
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository constructs a classroom repository.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

func (r *classroomRepository) List(ctx context.Context, filter ClassroomFilter) ([]models.Classroom, error) {
	query := r.db.WithContext(ctx).Model(&models.Classroom{})

	if filter.SchoolID != nil {
		query = query.Where("school_id = ?", *filter.SchoolID)
	}
	if filter.SchoolYearID != nil {
		query = query.Where("school_year_id = ?", *filter.SchoolYearID)
	}
	if filter.GradeLevel != "" {
		query = query.Where("grade_level = ?", filter.GradeLevel)
	}
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	var classrooms []models.Classroom
	if err := query.Order("name").Find(&classrooms).Error; err != nil {
		return nil, err
	}

	return classrooms, nil
}

func (r *classroomRepository) GetByID(ctx context.Context, id uint) (models.Classroom, error) {
	var classroom models.Classroom
	if err := r.db.WithContext(ctx).First(&classroom, id).Error; err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Classroom, error) {
	tx := r.db.WithContext(ctx).Model(&models.Classroom{}).Where("id = ?", id)
	if err := tx.Updates(updates).Error; err != nil {
		return models.Classroom{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *classroomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Classroom{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *classroomRepository) CountActiveEnrollments(ctx context.Context, classroomID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("classroom_id = ?", classroomID).
		Where("status = ?", models.EnrollmentStatusActive).
		Count(&count).Error

	return count, err
}

func (r *classroomRepository) Roster(ctx context.Context, classroomID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.classroom_id = ?", classroomID).
		Where("enrollments.status = ?", models.EnrollmentStatusActive).
		Order("students.last_name, students.first_name").
		Find(&students).Error
	if err != nil {
		return nil, err
	}

	return students, nil
}
