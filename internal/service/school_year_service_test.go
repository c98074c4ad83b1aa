package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

func newSchoolYearService(db *gorm.DB) SchoolYearService {
	return NewSchoolYearService(
		repository.NewSchoolYearRepository(db),
		repository.NewEnrollmentRepository(db),
		zerolog.Nop(),
	)
}

func seedTestYear(t *testing.T, db *gorm.DB, name string, active bool) models.SchoolYear {
	t.Helper()
	year := models.SchoolYear{
		Name:      name,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		IsActive:  active,
	}
	require.NoError(t, db.Create(&year).Error)
	return year
}

func TestSchoolYearDeleteBlockedWhenReferenced(t *testing.T) {
	db := setupServiceDB(t)
	svc := newSchoolYearService(db)

	school := seedTestSchool(t, db, "Maple Elementary")
	year := seedTestYear(t, db, "2025-2026", false)
	classroom := models.Classroom{
		SchoolID: school.ID,
		Name:     "Room 3",
		Kind:     models.ClassroomKindHomeroom,
	}
	require.NoError(t, db.Create(&classroom).Error)
	student := seedTestStudent(t, db, school.ID, "Alice", "Nguyen")

	yearID := year.ID
	enrollment := models.Enrollment{
		StudentID:    student.ID,
		ClassroomID:  classroom.ID,
		SchoolYearID: &yearID,
		Status:       models.EnrollmentStatusActive,
		EnrolledAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	err := svc.Delete(testCtx(), year.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var count int64
	require.NoError(t, db.Model(&models.SchoolYear{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSchoolYearDeleteBlockedWhenActive(t *testing.T) {
	db := setupServiceDB(t)
	svc := newSchoolYearService(db)

	year := seedTestYear(t, db, "2025-2026", true)

	err := svc.Delete(testCtx(), year.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSchoolYearDeleteUnreferenced(t *testing.T) {
	db := setupServiceDB(t)
	svc := newSchoolYearService(db)

	year := seedTestYear(t, db, "2023-2024", false)

	require.NoError(t, svc.Delete(testCtx(), year.ID))

	var count int64
	require.NoError(t, db.Model(&models.SchoolYear{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestSchoolYearSetActiveSwitchesYears(t *testing.T) {
	db := setupServiceDB(t)
	svc := newSchoolYearService(db)

	old := seedTestYear(t, db, "2024-2025", true)
	next := seedTestYear(t, db, "2025-2026", false)

	resp, err := svc.SetActive(testCtx(), next.ID)
	require.NoError(t, err)
	require.True(t, resp.IsActive)

	active, err := svc.GetActive(testCtx())
	require.NoError(t, err)
	require.Equal(t, next.ID, active.ID)

	var reloaded models.SchoolYear
	require.NoError(t, db.First(&reloaded, old.ID).Error)
	require.False(t, reloaded.IsActive)
}

func TestSchoolYearGetActiveMissing(t *testing.T) {
	db := setupServiceDB(t)
	svc := newSchoolYearService(db)

	_, err := svc.GetActive(testCtx())
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
