package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/sis-go-api/internal/apperr"
	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/models"
	"github.com/noah-isme/sis-go-api/internal/repository"
)

// UserService manages staff accounts and role grants.
type UserService interface {
	List(ctx context.Context, req dto.UserListRequest) (*dto.UserListResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, error)
	GrantRole(ctx context.Context, userID uint, req dto.RoleGrantCreateRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type userService struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user service.
func NewUserService(users repository.UserRepository, hasher PasswordHasher, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		hasher:    hasher,
		validator: validator.New(),
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, req dto.UserListRequest) (*dto.UserListResponse, error) {
	users, total, err := s.users.List(ctx, repository.UserFilter{
		Status:   req.Status,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.NewUserResponse(user))
	}

	return &dto.UserListResponse{
		Items:      items,
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user %d not found", id)
		}
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) Create(ctx context.Context, req dto.UserCreateRequest) (*dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid user payload")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.KindConflict, "a user with this email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to hash password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Status:       models.StatusActive,
	}
	if req.Role != "" {
		user.RoleGrants = []models.RoleGrant{{
			Role:     models.Role(req.Role),
			SchoolID: req.SchoolID,
			Status:   models.StatusActive,
		}}
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user created")

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GrantRole(ctx context.Context, userID uint, req dto.RoleGrantCreateRequest) (*dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperr.Wrap(err, apperr.KindValidation, "invalid grant payload")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user %d not found", userID)
		}
		return nil, err
	}

	grant := models.RoleGrant{
		UserID:   userID,
		Role:     models.Role(req.Role),
		SchoolID: req.SchoolID,
		Status:   models.StatusActive,
	}
	if err := s.users.CreateGrant(ctx, &grant); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", userID).Str("role", req.Role).Msg("role granted")

	return s.GetByID(ctx, userID)
}

func (s *userService) Deactivate(ctx context.Context, id uint) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "active user %d not found", id)
		}
		return err
	}

	s.logger.Info().Uint("user_id", id).Msg("user deactivated")
	return nil
}
