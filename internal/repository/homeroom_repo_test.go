package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.RoleGrant{},
		&models.Student{},
		&models.Classroom{},
		&models.Enrollment{},
		&models.SchoolYear{},
		&models.Room{},
		&models.Subject{},
	))
	return db
}

func seedSchool(t *testing.T, db *gorm.DB, name string) models.School {
	t.Helper()
	school := models.School{Name: name, Timezone: "UTC"}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedTeacher(t *testing.T, db *gorm.DB, email, role string, schoolID uint) models.User {
	t.Helper()
	teacher := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Pat",
		LastName:     "Nguyen",
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(&teacher).Error)
	sid := schoolID
	grant := models.RoleGrant{UserID: teacher.ID, Role: models.Role(role), SchoolID: &sid, Status: models.StatusActive}
	require.NoError(t, db.Create(&grant).Error)
	return teacher
}

func activeEnrollments(t *testing.T, db *gorm.DB, studentID uint) []models.Enrollment {
	t.Helper()
	var enrollments []models.Enrollment
	require.NoError(t, db.
		Where("student_id = ?", studentID).
		Where("status = ?", models.EnrollmentStatusActive).
		Find(&enrollments).Error)
	return enrollments
}

func TestAssignHomeroomCreatesStudentClassroomAndEnrollment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Maple Elementary")
	teacher := seedTeacher(t, db, "t@maple.edu", "teacher", school.ID)

	email := "alice@example.com"
	params := AssignHomeroomParams{
		FirstName: "Alice",
		LastName:  "Carter",
		Email:     &email,
		TeacherID: teacher.ID,
		SchoolID:  &school.ID,
	}

	result, err := repo.AssignHomeroom(context.Background(), params)
	require.NoError(t, err)
	require.True(t, result.StudentCreated)
	require.True(t, result.Created)
	require.Equal(t, "Alice", result.Student.FirstName)
	require.Equal(t, school.ID, result.Student.SchoolID)
	require.Contains(t, result.Classroom.Name, "Homeroom")
	require.Equal(t, models.ClassroomKindHomeroom, result.Classroom.Kind)
	require.Nil(t, result.SchoolYearID, "no active year means year-unscoped enrollment")

	enrollments := activeEnrollments(t, db, result.Student.ID)
	require.Len(t, enrollments, 1)
	require.Nil(t, enrollments[0].SchoolYearID)

	// A second identical call must not create anything new.
	again, err := repo.AssignHomeroom(context.Background(), params)
	require.NoError(t, err)
	require.False(t, again.StudentCreated)
	require.False(t, again.Created)
	require.Equal(t, result.Student.ID, again.Student.ID)
	require.Equal(t, result.Classroom.ID, again.Classroom.ID)

	var total int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&total).Error)
	require.Equal(t, int64(1), total)
}

func TestAssignHomeroomReplacesOtherTeachersHomeroom(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Cedar Middle")
	teacherA := seedTeacher(t, db, "a@cedar.edu", "teacher", school.ID)
	teacherB := seedTeacher(t, db, "b@cedar.edu", "homeroom teacher", school.ID)

	year := models.SchoolYear{Name: "2026-2027", IsActive: true}
	require.NoError(t, db.Create(&year).Error)

	student := models.Student{SchoolID: school.ID, FirstName: "Ben", LastName: "Ward", Status: models.StatusActive}
	require.NoError(t, db.Create(&student).Error)

	first, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{StudentID: &student.ID, TeacherID: teacherA.ID, SchoolID: &school.ID})
	require.NoError(t, err)
	require.True(t, first.Created)
	require.Equal(t, &year.ID, first.SchoolYearID)

	second, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{StudentID: &student.ID, TeacherID: teacherB.ID, SchoolID: &school.ID})
	require.NoError(t, err)
	require.True(t, second.Created)
	require.Equal(t, int64(1), second.ReplacedCount)

	enrollments := activeEnrollments(t, db, student.ID)
	require.Len(t, enrollments, 1)
	require.Equal(t, second.Classroom.ID, enrollments[0].ClassroomID)

	var replaced models.Enrollment
	require.NoError(t, db.Where("status = ?", models.EnrollmentStatusReplaced).First(&replaced).Error)
	require.Equal(t, first.Classroom.ID, replaced.ClassroomID)
	require.NotNil(t, replaced.WithdrawnAt)
}

func TestAssignHomeroomCrossYearIndependence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Oak Academy")
	teacherA := seedTeacher(t, db, "a@oak.edu", "teacher", school.ID)
	teacherB := seedTeacher(t, db, "b@oak.edu", "teacher", school.ID)

	year1 := models.SchoolYear{Name: "2025-2026"}
	year2 := models.SchoolYear{Name: "2026-2027"}
	require.NoError(t, db.Create(&year1).Error)
	require.NoError(t, db.Create(&year2).Error)

	student := models.Student{SchoolID: school.ID, FirstName: "Cleo", LastName: "Diaz", Status: models.StatusActive}
	require.NoError(t, db.Create(&student).Error)

	_, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{StudentID: &student.ID, TeacherID: teacherA.ID, SchoolID: &school.ID, SchoolYearID: &year1.ID})
	require.NoError(t, err)
	_, err = repo.AssignHomeroom(context.Background(), AssignHomeroomParams{StudentID: &student.ID, TeacherID: teacherB.ID, SchoolID: &school.ID, SchoolYearID: &year2.ID})
	require.NoError(t, err)

	enrollments := activeEnrollments(t, db, student.ID)
	require.Len(t, enrollments, 2, "assignments in different years are independent")
}

func TestAssignHomeroomInfersSchoolFromTeacherGrant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Pine Elementary")
	teacher := seedTeacher(t, db, "t@pine.edu", "teacher", school.ID)

	result, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{
		FirstName: "Drew",
		LastName:  "Evans",
		TeacherID: teacher.ID,
	})
	require.NoError(t, err)
	require.Equal(t, school.ID, result.Student.SchoolID)
	require.Equal(t, school.ID, result.Classroom.SchoolID)
}

func TestAssignHomeroomRejectsNonTeacher(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Birch High")
	admin := seedTeacher(t, db, "admin@birch.edu", "admin_principal", school.ID)

	_, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{
		FirstName: "Eve",
		LastName:  "Flynn",
		TeacherID: admin.ID,
		SchoolID:  &school.ID,
	})
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssignHomeroomFailsWhenSchoolUndeterminable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	teacher := models.User{Email: "free@agent.edu", PasswordHash: "x", FirstName: "Gil", LastName: "Hart", Status: models.StatusActive}
	require.NoError(t, db.Create(&teacher).Error)
	grant := models.RoleGrant{UserID: teacher.ID, Role: "teacher", Status: models.StatusActive}
	require.NoError(t, db.Create(&grant).Error)

	_, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{
		FirstName: "Ida",
		LastName:  "Jones",
		TeacherID: teacher.ID,
	})
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssignHomeroomReusesStudentByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHomeroomRepository(db)

	school := seedSchool(t, db, "Willow Elementary")
	teacher := seedTeacher(t, db, "t@willow.edu", "teacher", school.ID)

	email := "kim@example.com"
	existing := models.Student{SchoolID: school.ID, FirstName: "Kim", LastName: "Lopez", Email: &email, Status: models.StatusActive}
	require.NoError(t, db.Create(&existing).Error)

	result, err := repo.AssignHomeroom(context.Background(), AssignHomeroomParams{
		FirstName: "Kim",
		LastName:  "Lopez",
		Email:     &email,
		TeacherID: teacher.ID,
		SchoolID:  &school.ID,
	})
	require.NoError(t, err)
	require.False(t, result.StudentCreated)
	require.Equal(t, existing.ID, result.Student.ID)
}
