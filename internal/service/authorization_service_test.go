package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

func TestAuthorizeSubstringRoleMatch(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	school := seedTestSchool(t, db, "Maple Elementary")
	principal := seedTestTeacher(t, db, "principal@maple.test", "Admin_Principal", school.ID)

	require.NoError(t, svc.Authorize(testCtx(), principal.ID, []string{"admin"}, &school.ID))
	require.NoError(t, svc.Authorize(testCtx(), principal.ID, []string{"principal"}, &school.ID))
	require.NoError(t, svc.Authorize(testCtx(), principal.ID, []string{"teacher", "admin"}, &school.ID))

	err := svc.Authorize(testCtx(), principal.ID, []string{"teacher"}, &school.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAuthorizeEmptyRequirementOnlyNeedsAuth(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	school := seedTestSchool(t, db, "Maple Elementary")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Teacher", school.ID)

	require.NoError(t, svc.Authorize(testCtx(), teacher.ID, nil, nil))
}

func TestAuthorizeInactiveUserIsUnauthenticated(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	school := seedTestSchool(t, db, "Maple Elementary")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Teacher", school.ID)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", teacher.ID).Update("status", models.StatusInactive).Error)

	err := svc.Authorize(testCtx(), teacher.ID, []string{"teacher"}, &school.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestAuthorizeUnknownUserIsUnauthenticated(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	err := svc.Authorize(testCtx(), 999, nil, nil)
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestAuthorizeSchoolScopedGrant(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	maple := seedTestSchool(t, db, "Maple Elementary")
	oak := seedTestSchool(t, db, "Oak Middle")
	teacher := seedTestTeacher(t, db, "teacher@maple.test", "Lead Teacher", maple.ID)

	require.NoError(t, svc.Authorize(testCtx(), teacher.ID, []string{"teacher"}, &maple.ID))

	err := svc.Authorize(testCtx(), teacher.ID, []string{"teacher"}, &oak.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestAuthorizeGlobalGrantAppliesEverywhere(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthorizationService(users, zerolog.Nop())

	school := seedTestSchool(t, db, "Maple Elementary")
	admin := models.User{
		Email:        "super@district.test",
		PasswordHash: "x",
		FirstName:    "Sam",
		LastName:     "Okafor",
		Status:       models.StatusActive,
		RoleGrants: []models.RoleGrant{
			{Role: "District Superadmin", Status: models.StatusActive},
		},
	}
	require.NoError(t, db.Create(&admin).Error)

	require.NoError(t, svc.Authorize(testCtx(), admin.ID, []string{"superadmin"}, &school.ID))
	require.NoError(t, svc.Authorize(testCtx(), admin.ID, []string{"superadmin"}, nil))
}
