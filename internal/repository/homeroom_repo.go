package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/models"
)

// AssignHomeroomParams carries the inputs of the homeroom assignment
// workflow. Either StudentID or a name (with optional email) must be given;
// SchoolID and SchoolYearID are inferred when absent.
type AssignHomeroomParams struct {
	StudentID    *uint
	FirstName    string
	LastName     string
	Email        *string
	TeacherID    uint
	SchoolID     *uint
	SchoolYearID *uint
	EnrolledByID *uint
}

// AssignHomeroomResult reports what the workflow did, for event emission and
// cache invalidation.
type AssignHomeroomResult struct {
	Student        models.Student
	Classroom      models.Classroom
	SchoolYearID   *uint
	Created        bool   // a new enrollment row was inserted
	ReplacedCount  int64  // prior conflicting enrollments marked replaced
	StudentCreated bool   // the student record was created by this call
}

// HomeroomRepository runs the assign-homeroom workflow. The whole sequence
// (resolve/create student, resolve/create classroom, conflict removal,
// idempotent insert) executes inside one transaction with the student row
// locked, so concurrent assignments for the same student serialize and the
// at-most-one-active-homeroom invariant holds.
type HomeroomRepository interface {
	AssignHomeroom(ctx context.Context, params AssignHomeroomParams) (AssignHomeroomResult, error)
}

type homeroomRepository struct {
	db *gorm.DB
}

// NewHomeroomRepository constructs the homeroom coordinator repository.
func NewHomeroomRepository(db *gorm.DB) HomeroomRepository {
	return &homeroomRepository{db: db}
}

func (r *homeroomRepository) AssignHomeroom(ctx context.Context, params AssignHomeroomParams) (AssignHomeroomResult, error) {
	var result AssignHomeroomResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teacher, schoolID, err := r.resolveTeacher(tx, params)
		if err != nil {
			return err
		}

		student, created, err := r.resolveStudent(tx, params, schoolID)
		if err != nil {
			return err
		}
		result.StudentCreated = created

		yearID, err := r.resolveSchoolYear(tx, params.SchoolYearID)
		if err != nil {
			return err
		}
		result.SchoolYearID = yearID

		classroom, err := r.resolveClassroom(tx, schoolID, teacher, yearID)
		if err != nil {
			return err
		}
		result.Classroom = classroom

		replaced, err := r.replaceConflicts(tx, student.ID, schoolID, classroom.ID, yearID)
		if err != nil {
			return err
		}
		result.ReplacedCount = replaced

		inserted, err := r.ensureEnrollment(tx, student.ID, classroom.ID, yearID, params.EnrolledByID)
		if err != nil {
			return err
		}
		result.Created = inserted

		return tx.First(&result.Student, student.ID).Error
	})
	if err != nil {
		return AssignHomeroomResult{}, err
	}

	return result, nil
}

// resolveTeacher verifies the teacher reference and determines the school.
// The school comes from the explicit parameter when given, otherwise from an
// active school-scoped teacher grant.
func (r *homeroomRepository) resolveTeacher(tx *gorm.DB, params AssignHomeroomParams) (models.User, uint, error) {
	var teacher models.User
	if err := tx.First(&teacher, params.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, 0, apperr.New(apperr.KindValidation, "teacher %d not found", params.TeacherID)
		}
		return models.User{}, 0, err
	}
	if !teacher.IsActive() {
		return models.User{}, 0, apperr.New(apperr.KindValidation, "teacher %d is not active", params.TeacherID)
	}

	grantQuery := tx.Model(&models.RoleGrant{}).
		Where("user_id = ?", params.TeacherID).
		Where("status = ?", models.StatusActive).
		Where("LOWER(role) LIKE ?", "%teacher%")

	if params.SchoolID != nil {
		var count int64
		if err := grantQuery.Where("school_id = ? OR school_id IS NULL", *params.SchoolID).Count(&count).Error; err != nil {
			return models.User{}, 0, err
		}
		if count == 0 {
			return models.User{}, 0, apperr.New(apperr.KindValidation, "user %d holds no active teacher role at school %d", params.TeacherID, *params.SchoolID)
		}
		return teacher, *params.SchoolID, nil
	}

	var grant models.RoleGrant
	err := grantQuery.Where("school_id IS NOT NULL").First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, 0, apperr.New(apperr.KindValidation, "school could not be determined for teacher %d", params.TeacherID)
		}
		return models.User{}, 0, err
	}

	return teacher, *grant.SchoolID, nil
}

// resolveStudent finds or creates the student, then locks the row so
// conflict removal and insertion cannot interleave with a concurrent
// assignment for the same student.
func (r *homeroomRepository) resolveStudent(tx *gorm.DB, params AssignHomeroomParams, schoolID uint) (models.Student, bool, error) {
	locked := tx
	if tx.Dialector.Name() == "postgres" {
		locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	if params.StudentID != nil {
		var student models.Student
		if err := locked.First(&student, *params.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Student{}, false, apperr.New(apperr.KindValidation, "student %d not found", *params.StudentID)
			}
			return models.Student{}, false, err
		}
		if student.SchoolID != schoolID {
			return models.Student{}, false, apperr.New(apperr.KindValidation, "student %d does not belong to school %d", student.ID, schoolID)
		}
		return student, false, nil
	}

	if params.Email != nil && strings.TrimSpace(*params.Email) != "" {
		var student models.Student
		err := locked.
			Where("school_id = ?", schoolID).
			Where("LOWER(email) = LOWER(?)", strings.TrimSpace(*params.Email)).
			First(&student).Error
		if err == nil {
			return student, false, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, false, err
		}
	}

	if strings.TrimSpace(params.FirstName) == "" || strings.TrimSpace(params.LastName) == "" {
		return models.Student{}, false, apperr.New(apperr.KindValidation, "student name is required to create a student record")
	}

	student := models.Student{
		SchoolID:  schoolID,
		FirstName: strings.TrimSpace(params.FirstName),
		LastName:  strings.TrimSpace(params.LastName),
		Email:     params.Email,
		Status:    models.StatusActive,
	}
	if err := tx.Create(&student).Error; err != nil {
		return models.Student{}, false, err
	}

	return student, true, nil
}

// resolveSchoolYear picks the explicit year when given, else the single
// globally-active year, else none (a year-unscoped assignment).
func (r *homeroomRepository) resolveSchoolYear(tx *gorm.DB, explicit *uint) (*uint, error) {
	if explicit != nil {
		var year models.SchoolYear
		if err := tx.First(&year, *explicit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.New(apperr.KindValidation, "school year %d not found", *explicit)
			}
			return nil, err
		}
		return &year.ID, nil
	}

	var year models.SchoolYear
	err := tx.Where("is_active = ?", true).First(&year).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &year.ID, nil
}

// resolveClassroom finds the teacher's homeroom classroom at the school, or
// creates one with a deterministic name. Legacy rows that predate the kind
// column are matched by name.
func (r *homeroomRepository) resolveClassroom(tx *gorm.DB, schoolID uint, teacher models.User, yearID *uint) (models.Classroom, error) {
	var classroom models.Classroom
	err := tx.
		Where("school_id = ?", schoolID).
		Where("teacher_id = ?", teacher.ID).
		Where("kind = ? OR LOWER(name) LIKE ?", models.ClassroomKindHomeroom, "%homeroom%").
		First(&classroom).Error
	if err == nil {
		return classroom, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Classroom{}, err
	}

	teacherID := teacher.ID
	classroom = models.Classroom{
		SchoolID:     schoolID,
		Name:         "Homeroom - " + teacher.FullName(),
		Kind:         models.ClassroomKindHomeroom,
		TeacherID:    &teacherID,
		SchoolYearID: yearID,
	}
	if err := tx.Create(&classroom).Error; err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}

// replaceConflicts marks every active enrollment of the student in a
// different teacher's homeroom at the same school and year as replaced.
// Year-unscoped assignments only displace year-unscoped enrollments.
func (r *homeroomRepository) replaceConflicts(tx *gorm.DB, studentID, schoolID, targetClassroomID uint, yearID *uint) (int64, error) {
	conflictQuery := tx.Model(&models.Enrollment{}).
		Joins("JOIN classrooms ON classrooms.id = enrollments.classroom_id").
		Where("enrollments.student_id = ?", studentID).
		Where("enrollments.status = ?", models.EnrollmentStatusActive).
		Where("enrollments.classroom_id <> ?", targetClassroomID).
		Where("classrooms.school_id = ?", schoolID).
		Where("classrooms.kind = ? OR LOWER(classrooms.name) LIKE ?", models.ClassroomKindHomeroom, "%homeroom%")
	if yearID != nil {
		conflictQuery = conflictQuery.Where("enrollments.school_year_id = ?", *yearID)
	} else {
		conflictQuery = conflictQuery.Where("enrollments.school_year_id IS NULL")
	}

	var ids []uint
	if err := conflictQuery.Pluck("enrollments.id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	update := tx.Model(&models.Enrollment{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":            models.EnrollmentStatusReplaced,
			"withdrawn_at":      now,
			"withdrawal_reason": "homeroom reassignment",
		})
	if update.Error != nil {
		return 0, update.Error
	}

	return update.RowsAffected, nil
}

// ensureEnrollment inserts an active enrollment unless one already exists for
// the same classroom and year, making repeated calls converge.
func (r *homeroomRepository) ensureEnrollment(tx *gorm.DB, studentID, classroomID uint, yearID, enrolledByID *uint) (bool, error) {
	existing := tx.Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Where("classroom_id = ?", classroomID).
		Where("status = ?", models.EnrollmentStatusActive)
	if yearID != nil {
		existing = existing.Where("school_year_id = ?", *yearID)
	} else {
		existing = existing.Where("school_year_id IS NULL")
	}

	var count int64
	if err := existing.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	enrollment := models.Enrollment{
		StudentID:    studentID,
		ClassroomID:  classroomID,
		SchoolYearID: yearID,
		Status:       models.EnrollmentStatusActive,
		EnrolledAt:   time.Now().UTC(),
		EnrolledByID: enrolledByID,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		return false, err
	}

	return true, nil
}
