package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// PasswordHasher abstracts password hashing so tests can swap in a cheap
// implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// BcryptHasher hashes passwords with bcrypt at the default cost.
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer interface {
	Issue(user models.User, ttl time.Duration) (string, time.Time, error)
}

// JWTIssuer signs HS256 tokens carrying the user id and email.
type JWTIssuer struct {
	Secret string
}

func (j JWTIssuer) Issue(user models.User, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// AuthService handles credential verification and token issuance.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authService struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	issuer    TokenIssuer
	tokenTTL  time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service.
func NewAuthService(
	users repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		tokenTTL:  tokenTTL,
		validator: validator.New(),
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid login payload")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUnauthenticated, "invalid credentials")
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "invalid credentials")
	}

	token, expiresAt, err := s.issuer.Issue(user, s.tokenTTL)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to issue token")
	}

	if err := s.users.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is best-effort bookkeeping.
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login time")
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUnauthenticated, "principal could not be resolved")
		}
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
