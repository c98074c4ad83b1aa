package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// AuthHandler exposes login and session endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires auth routes. The caller attaches JWT protection to /me.
func (h *AuthHandler) Register(public fiber.Router, protected fiber.Router) {
	public.Post("/login", h.login)
	protected.Get("/me", h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Str("email", req.Email).Msg("login failed")
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "login successful", resp)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	resp, err := h.service.Me(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "session resolved", resp)
}
