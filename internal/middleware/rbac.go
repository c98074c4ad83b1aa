package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// RequireRoles ensures the authenticated user holds one of the required
// roles. Role labels are free text, so the check runs against the grant
// store via the authorization resolver rather than a token claim. A school
// scope is picked up from the school_id query parameter when present.
func RequireRoles(authorizer service.AuthorizationService, roles ...string) fiber.Handler {
	required := make([]string, 0, len(roles))
	for _, role := range roles {
		normalized := strings.TrimSpace(role)
		if normalized != "" {
			required = append(required, normalized)
		}
	}

	return func(c *fiber.Ctx) error {
		userID, ok := UserIDFromContext(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		if err := authorizer.Authorize(c.UserContext(), userID, required, schoolScope(c)); err != nil {
			return utils.SendAppError(c, err)
		}

		return c.Next()
	}
}

// UserIDFromContext returns the principal bound by JWTProtected.
func UserIDFromContext(c *fiber.Ctx) (uint, bool) {
	switch v := c.Locals("user_id").(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func schoolScope(c *fiber.Ctx) *uint {
	raw := strings.TrimSpace(c.Query("school_id"))
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}
