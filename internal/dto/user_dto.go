package dto

import (
	"time"

	"github.com/noah-isme/sis-go-api/internal/models"
)

// RoleGrantResponse serializes a role grant.
type RoleGrantResponse struct {
	ID       uint   `json:"id"`
	Role     string `json:"role"`
	SchoolID *uint  `json:"school_id,omitempty"`
	Status   string `json:"status"`
}

// UserResponse serializes a user account without credentials.
type UserResponse struct {
	ID          uint                `json:"id"`
	Email       string              `json:"email"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	Status      string              `json:"status"`
	LastLoginAt *time.Time          `json:"last_login_at,omitempty"`
	RoleGrants  []RoleGrantResponse `json:"role_grants"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewUserResponse maps a user model onto its response shape.
func NewUserResponse(user models.User) UserResponse {
	grants := make([]RoleGrantResponse, 0, len(user.RoleGrants))
	for _, grant := range user.RoleGrants {
		grants = append(grants, RoleGrantResponse{
			ID:       grant.ID,
			Role:     string(grant.Role),
			SchoolID: grant.SchoolID,
			Status:   grant.Status,
		})
	}

	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		RoleGrants:  grants,
		CreatedAt:   user.CreatedAt,
	}
}

// UserListRequest defines filters for listing users.
type UserListRequest struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// UserListResponse wraps a paginated user listing.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// UserCreateRequest captures the payload for creating a staff account.
type UserCreateRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required,min=1"`
	LastName  string `json:"last_name" validate:"required,min=1"`
	Role      string `json:"role" validate:"omitempty,min=1"`
	SchoolID  *uint  `json:"school_id"`
}

// RoleGrantCreateRequest captures the payload for granting a role.
type RoleGrantCreateRequest struct {
	Role     string `json:"role" validate:"required,min=1"`
	SchoolID *uint  `json:"school_id"`
}
