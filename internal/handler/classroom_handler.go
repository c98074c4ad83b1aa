package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// ClassroomHandler exposes classroom CRUD and roster endpoints.
type ClassroomHandler struct {
	service service.ClassroomService
	logger  zerolog.Logger
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(service service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: service,
		logger:  logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// Register wires classroom routes.
func (h *ClassroomHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/roster", h.roster)
	router.Post("/", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ClassroomHandler) list(c *fiber.Ctx) error {
	schoolID, err := parseQueryUint(c, "school_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school id")
	}
	schoolYearID, err := parseQueryUint(c, "school_year_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid school year id")
	}
	subjectID, err := parseQueryUint(c, "subject_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
	}
	teacherID, err := parseQueryUint(c, "teacher_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid teacher id")
	}

	classrooms, err := h.service.List(c.UserContext(), dto.ClassroomListRequest{
		SchoolID:     schoolID,
		SchoolYearID: schoolYearID,
		GradeLevel:   c.Query("grade_level"),
		SubjectID:    subjectID,
		TeacherID:    teacherID,
		Kind:         c.Query("kind"),
	})
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list classrooms")
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "classrooms retrieved", classrooms)
}

func (h *ClassroomHandler) get(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	classroom, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "classroom retrieved", classroom)
}

func (h *ClassroomHandler) roster(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	roster, err := h.service.Roster(c.UserContext(), id)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "roster retrieved", roster)
}

func (h *ClassroomHandler) create(c *fiber.Ctx) error {
	var req dto.ClassroomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "classroom created", classroom)
}

func (h *ClassroomHandler) update(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	var req dto.ClassroomUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "classroom updated", classroom)
}

func (h *ClassroomHandler) delete(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "classroom deleted", nil)
}
