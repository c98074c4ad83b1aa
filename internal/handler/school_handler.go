package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// SchoolHandler exposes school CRUD endpoints.
type SchoolHandler struct {
	service service.SchoolService
	logger  zerolog.Logger
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(service service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		service: service,
		logger:  logger.With().Str("component", "school_handler").Logger(),
	}
}

// Register wires school routes.
func (h *SchoolHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Post("/", h.create)
	router.Patch("/:id", h.update)
}

func (h *SchoolHandler) list(c *fiber.Ctx) error {
	schools, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list schools")
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "schools retrieved", schools)
}

func (h *SchoolHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	school, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school retrieved", school)
}

func (h *SchoolHandler) create(c *fiber.Ctx) error {
	var req dto.SchoolCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	school, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "school created", school)
}

func (h *SchoolHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	var req dto.SchoolUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	school, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school updated", school)
}
