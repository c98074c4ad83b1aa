package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// AuthorizationService decides whether a principal holds a required role,
// optionally scoped to a school. Role labels are admin-defined free text, so
// matching is the loose Satisfies relation on models.Role rather than an
// exact comparison.
type AuthorizationService interface {
	Authorize(ctx context.Context, userID uint, requiredRoles []string, schoolID *uint) error
}

type authorizationService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewAuthorizationService constructs the authorization resolver.
func NewAuthorizationService(users repository.UserRepository, logger zerolog.Logger) AuthorizationService {
	return &authorizationService{
		users:  users,
		logger: logger.With().Str("component", "authorization_service").Logger(),
	}
}

func (s *authorizationService) Authorize(ctx context.Context, userID uint, requiredRoles []string, schoolID *uint) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindUnauthenticated, "principal could not be resolved")
		}
		return err
	}
	if !user.IsActive() {
		return apperr.New(apperr.KindUnauthenticated, "principal is inactive")
	}

	// An empty requirement list only asserts authentication.
	if len(requiredRoles) == 0 {
		return nil
	}

	grants, err := s.users.ListActiveGrants(ctx, userID, schoolID)
	if err != nil {
		return err
	}

	held := make([]string, 0, len(grants))
	for _, grant := range grants {
		held = append(held, string(grant.Role))
		if grant.AppliesTo(schoolID) && grant.Role.SatisfiesAny(requiredRoles) {
			return nil
		}
	}

	// Diagnostic only: list what the principal holds so operators can see
	// why the check failed. Never blocks the decision.
	s.logger.Warn().
		Uint("user_id", userID).
		Strs("required_roles", requiredRoles).
		Strs("held_roles", held).
		Msg("authorization denied")

	return apperr.New(apperr.KindForbidden, "insufficient permissions")
}
