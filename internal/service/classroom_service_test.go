package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

func TestRosterIsCached(t *testing.T) {
	db := setupServiceDB(t)
	cache, mr := setupTestCache(t)
	svc := NewClassroomService(
		repository.NewClassroomRepository(db),
		repository.NewSchoolRepository(db),
		cache,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	classroom := models.Classroom{SchoolID: school.ID, Name: "Room 4A", Kind: models.ClassroomKindCore}
	require.NoError(t, db.Create(&classroom).Error)
	student := seedTestStudent(t, db, school.ID, "Alice", "Nguyen")
	enrollActive(t, db, student.ID, classroom.ID)

	roster, err := svc.Roster(testCtx(), classroom.ID)
	require.NoError(t, err)
	require.Len(t, roster.Students, 1)
	require.True(t, mr.Exists(rosterKey(classroom.ID)))

	// A student enrolled behind the cache is invisible until invalidation.
	other := seedTestStudent(t, db, school.ID, "Ben", "Ortiz")
	enrollActive(t, db, other.ID, classroom.ID)

	cached, err := svc.Roster(testCtx(), classroom.ID)
	require.NoError(t, err)
	require.Len(t, cached.Students, 1)

	cache.Invalidate(testCtx(), classroom.ID)
	fresh, err := svc.Roster(testCtx(), classroom.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Students, 2)
}

func TestRosterUnknownClassroom(t *testing.T) {
	db := setupServiceDB(t)
	cache, _ := setupTestCache(t)
	svc := NewClassroomService(
		repository.NewClassroomRepository(db),
		repository.NewSchoolRepository(db),
		cache,
		zerolog.Nop(),
	)

	_, err := svc.Roster(testCtx(), 404)
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClassroomDeleteBlockedByActiveEnrollments(t *testing.T) {
	db := setupServiceDB(t)
	cache, _ := setupTestCache(t)
	svc := NewClassroomService(
		repository.NewClassroomRepository(db),
		repository.NewSchoolRepository(db),
		cache,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	classroom := models.Classroom{SchoolID: school.ID, Name: "Room 4A", Kind: models.ClassroomKindCore}
	require.NoError(t, db.Create(&classroom).Error)
	student := seedTestStudent(t, db, school.ID, "Alice", "Nguyen")
	enrollActive(t, db, student.ID, classroom.ID)

	err := svc.Delete(testCtx(), classroom.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	// Withdrawing the roster frees the classroom for deletion.
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("classroom_id = ?", classroom.ID).
		Update("status", models.EnrollmentStatusWithdrawn).Error)
	require.NoError(t, svc.Delete(testCtx(), classroom.ID))
}

func TestClassroomCreateDefaultsKind(t *testing.T) {
	db := setupServiceDB(t)
	cache, _ := setupTestCache(t)
	svc := NewClassroomService(
		repository.NewClassroomRepository(db),
		repository.NewSchoolRepository(db),
		cache,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")

	created, err := svc.Create(testCtx(), dto.ClassroomCreateRequest{
		SchoolID: school.ID,
		Name:     "Art Studio",
	})
	require.NoError(t, err)
	require.Equal(t, string(models.ClassroomKindCore), created.Kind)

	_, err = svc.Create(testCtx(), dto.ClassroomCreateRequest{
		SchoolID: school.ID + 99,
		Name:     "Orphan Room",
	})
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestClassroomUpdateInvalidatesRoster(t *testing.T) {
	db := setupServiceDB(t)
	cache, mr := setupTestCache(t)
	svc := NewClassroomService(
		repository.NewClassroomRepository(db),
		repository.NewSchoolRepository(db),
		cache,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	classroom := models.Classroom{SchoolID: school.ID, Name: "Room 4A", Kind: models.ClassroomKindCore}
	require.NoError(t, db.Create(&classroom).Error)

	cache.Set(testCtx(), classroom.ID, dto.RosterResponse{ClassroomID: classroom.ID})
	require.True(t, mr.Exists(rosterKey(classroom.ID)))

	name := "Room 4B"
	_, err := svc.Update(testCtx(), classroom.ID, dto.ClassroomUpdateRequest{Name: &name})
	require.NoError(t, err)
	require.False(t, mr.Exists(rosterKey(classroom.ID)))
}
