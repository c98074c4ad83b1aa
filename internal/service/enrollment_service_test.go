package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

func TestAssignHomeroomRejectsMissingTeacher(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewEnrollmentService(
		repository.NewHomeroomRepository(db),
		repository.NewEnrollmentRepository(db),
		&capturePublisher{},
		NewRosterCache(nil, time.Minute, zerolog.Nop()),
		5*time.Second,
		zerolog.Nop(),
	)

	_, err := svc.AssignHomeroom(testCtx(), dto.AssignHomeroomRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
	}, nil)
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAssignHomeroomPublishesEvent(t *testing.T) {
	db := setupServiceDB(t)
	publisher := &capturePublisher{}
	svc := NewEnrollmentService(
		repository.NewHomeroomRepository(db),
		repository.NewEnrollmentRepository(db),
		publisher,
		NewRosterCache(nil, time.Minute, zerolog.Nop()),
		5*time.Second,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Teacher", school.ID)

	resp, err := svc.AssignHomeroom(testCtx(), dto.AssignHomeroomRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		TeacherID: teacher.ID,
		SchoolID:  &school.ID,
	}, nil)
	require.NoError(t, err)
	require.True(t, resp.EnrollmentNew)
	require.True(t, resp.StudentCreated)
	require.Len(t, publisher.events, 1)
	require.Equal(t, resp.Student.ID, publisher.events[0].StudentID)
	require.Equal(t, resp.Classroom.ID, publisher.events[0].ClassroomID)
	require.Equal(t, school.ID, publisher.events[0].SchoolID)
}

func TestAssignHomeroomIdempotentCallSkipsEvent(t *testing.T) {
	db := setupServiceDB(t)
	publisher := &capturePublisher{}
	svc := NewEnrollmentService(
		repository.NewHomeroomRepository(db),
		repository.NewEnrollmentRepository(db),
		publisher,
		NewRosterCache(nil, time.Minute, zerolog.Nop()),
		5*time.Second,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Teacher", school.ID)

	req := dto.AssignHomeroomRequest{
		FirstName: "Alice",
		LastName:  "Nguyen",
		TeacherID: teacher.ID,
		SchoolID:  &school.ID,
	}

	first, err := svc.AssignHomeroom(testCtx(), req, nil)
	require.NoError(t, err)
	require.Len(t, publisher.events, 1)

	// Re-assigning the same student changes nothing and emits nothing.
	studentID := first.Student.ID
	req.StudentID = &studentID
	req.FirstName = ""
	req.LastName = ""
	second, err := svc.AssignHomeroom(testCtx(), req, nil)
	require.NoError(t, err)
	require.False(t, second.EnrollmentNew)
	require.Zero(t, second.ReplacedCount)
	require.Len(t, publisher.events, 1)
}

func TestAssignHomeroomInvalidatesRoster(t *testing.T) {
	db := setupServiceDB(t)
	cache, mr := setupTestCache(t)
	svc := NewEnrollmentService(
		repository.NewHomeroomRepository(db),
		repository.NewEnrollmentRepository(db),
		&capturePublisher{},
		cache,
		5*time.Second,
		zerolog.Nop(),
	)

	school := seedTestSchool(t, db, "Maple Elementary")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Teacher", school.ID)

	classroom := models.Classroom{
		SchoolID:  school.ID,
		Name:      "Homeroom - Dana Reyes",
		Kind:      models.ClassroomKindHomeroom,
		TeacherID: &teacher.ID,
	}
	require.NoError(t, db.Create(&classroom).Error)
	cache.Set(testCtx(), classroom.ID, dto.RosterResponse{ClassroomID: classroom.ID})
	require.True(t, mr.Exists(rosterKey(classroom.ID)))

	_, err := svc.AssignHomeroom(testCtx(), dto.AssignHomeroomRequest{
		FirstName: "Ben",
		LastName:  "Ortiz",
		TeacherID: teacher.ID,
		SchoolID:  &school.ID,
	}, nil)
	require.NoError(t, err)
	require.False(t, mr.Exists(rosterKey(classroom.ID)))
}

func TestWithdrawMissingEnrollment(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewEnrollmentService(
		repository.NewHomeroomRepository(db),
		repository.NewEnrollmentRepository(db),
		&capturePublisher{},
		NewRosterCache(nil, time.Minute, zerolog.Nop()),
		5*time.Second,
		zerolog.Nop(),
	)

	err := svc.Withdraw(testCtx(), 42, "moved away")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
