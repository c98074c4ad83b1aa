package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
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

func setupTestCache(t *testing.T) (RosterCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRosterCache(client, time.Minute, zerolog.Nop()), mr
}

type capturePublisher struct {
	events []HomeroomAssignedEvent
}

func (p *capturePublisher) PublishHomeroomAssigned(event HomeroomAssignedEvent) {
	p.events = append(p.events, event)
}

func seedTestSchool(t *testing.T, db *gorm.DB, name string) models.School {
	t.Helper()
	school := models.School{Name: name, Timezone: "UTC"}
	require.NoError(t, db.Create(&school).Error)
	return school
}

func seedTestTeacher(t *testing.T, db *gorm.DB, email, role string, schoolID uint) models.User {
	t.Helper()
	teacher := models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Dana",
		LastName:     "Reyes",
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(&teacher).Error)
	sid := schoolID
	grant := models.RoleGrant{UserID: teacher.ID, Role: models.Role(role), SchoolID: &sid, Status: models.StatusActive}
	require.NoError(t, db.Create(&grant).Error)
	return teacher
}

func seedTestStudent(t *testing.T, db *gorm.DB, schoolID uint, first, last string) models.Student {
	t.Helper()
	student := models.Student{
		SchoolID:  schoolID,
		FirstName: first,
		LastName:  last,
		Status:    models.StatusActive,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func enrollActive(t *testing.T, db *gorm.DB, studentID, classroomID uint) models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{
		StudentID:   studentID,
		ClassroomID: classroomID,
		Status:      models.EnrollmentStatusActive,
		EnrolledAt:  time.Now().UTC(),
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

func testCtx() context.Context {
	return context.Background()
}
