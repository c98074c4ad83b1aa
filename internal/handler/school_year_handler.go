package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// SchoolYearHandler exposes school year endpoints.
type SchoolYearHandler struct {
	service service.SchoolYearService
	logger  zerolog.Logger
}

// NewSchoolYearHandler constructs a school year handler.
func NewSchoolYearHandler(service service.SchoolYearService, logger zerolog.Logger) *SchoolYearHandler {
	return &SchoolYearHandler{
		service: service,
		logger:  logger.With().Str("component", "school_year_handler").Logger(),
	}
}

// Register wires school year routes.
func (h *SchoolYearHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/active", h.getActive)
	router.Get("/:id", h.get)
	router.Post("/", h.create)
	router.Post("/:id/activate", h.setActive)
	router.Delete("/:id", h.delete)
}

func (h *SchoolYearHandler) list(c *fiber.Ctx) error {
	years, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list school years")
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school years retrieved", years)
}

func (h *SchoolYearHandler) getActive(c *fiber.Ctx) error {
	year, err := h.service.GetActive(c.UserContext())
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "active school year retrieved", year)
}

func (h *SchoolYearHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school year id")
	}

	year, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school year retrieved", year)
}

func (h *SchoolYearHandler) create(c *fiber.Ctx) error {
	var req dto.SchoolYearCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	year, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "school year created", year)
}

func (h *SchoolYearHandler) setActive(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school year id")
	}

	year, err := h.service.SetActive(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school year activated", year)
}

func (h *SchoolYearHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school year id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "school year deleted", nil)
}
