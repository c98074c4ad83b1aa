package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// RoomHandler exposes room endpoints.
type RoomHandler struct {
	service service.RoomService
	logger  zerolog.Logger
}

// NewRoomHandler constructs a room handler.
func NewRoomHandler(service service.RoomService, logger zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		logger:  logger.With().Str("component", "room_handler").Logger(),
	}
}

// Register wires room routes.
func (h *RoomHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Post("/", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.deactivate)
}

func (h *RoomHandler) list(c *fiber.Ctx) error {
	schoolID, err := parseQueryUint(c, "school_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}

	rooms, err := h.service.List(c.UserContext(), dto.RoomListRequest{
		SchoolID:     schoolID,
		RoomType:     c.Query("room_type"),
		BookableOnly: strings.EqualFold(c.Query("bookable_only"), "true"),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list rooms")
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "rooms retrieved", rooms)
}

func (h *RoomHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	room, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "room retrieved", room)
}

func (h *RoomHandler) create(c *fiber.Ctx) error {
	var req dto.RoomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	room, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "room created", room)
}

func (h *RoomHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	var req dto.RoomUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	room, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "room updated", room)
}

func (h *RoomHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	if err := h.service.Deactivate(c.UserContext(), id); err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "room deactivated", nil)
}
