package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

const testSecret = "test-secret"

func setupAuthService(t *testing.T) (AuthService, repository.UserRepository) {
	t.Helper()
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthService(users, BcryptHasher{}, JWTIssuer{Secret: testSecret}, time.Hour, zerolog.Nop())

	hash, err := BcryptHasher{}.Hash("correct horse")
	require.NoError(t, err)
	user := models.User{
		Email:        "staff@maple.test",
		PasswordHash: hash,
		FirstName:    "Dana",
		LastName:     "Reyes",
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)

	return svc, users
}

func TestJWTIssuerSignsUserClaims(t *testing.T) {
	issuer := JWTIssuer{Secret: testSecret}

	signed, expiresAt, err := issuer.Issue(models.User{ID: 42, Email: "staff@maple.test"}, time.Hour)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "staff@maple.test", claims["email"])
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, users := setupAuthService(t)

	resp, err := svc.Login(testCtx(), dto.LoginRequest{Email: "staff@maple.test", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, "Bearer", resp.TokenType)
	require.True(t, resp.ExpiresAt.After(time.Now()))

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(resp.User.ID), claims["sub"])
	require.Equal(t, "staff@maple.test", claims["email"])

	stored, err := users.GetByEmail(testCtx(), "staff@maple.test")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(testCtx(), dto.LoginRequest{Email: "staff@maple.test", Password: "wrong"})
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(testCtx(), dto.LoginRequest{Email: "nobody@maple.test", Password: "correct horse"})
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	db := setupServiceDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAuthService(users, BcryptHasher{}, JWTIssuer{Secret: testSecret}, time.Hour, zerolog.Nop())

	hash, err := BcryptHasher{}.Hash("correct horse")
	require.NoError(t, err)
	user := models.User{
		Email:        "gone@maple.test",
		PasswordHash: hash,
		FirstName:    "Lee",
		LastName:     "Park",
		Status:       models.StatusInactive,
	}
	require.NoError(t, db.Create(&user).Error)

	_, err = svc.Login(testCtx(), dto.LoginRequest{Email: "gone@maple.test", Password: "correct horse"})
	require.Error(t, err)
	require.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestLoginValidatesPayload(t *testing.T) {
	svc, _ := setupAuthService(t)

	_, err := svc.Login(testCtx(), dto.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	require.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
