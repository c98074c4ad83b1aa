package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sis-go-api/internal/dto"
	"github.com/noah-isme/sis-go-api/internal/service"
	"github.com/noah-isme/sis-go-api/internal/utils"
)

// EnrollmentHandler exposes the homeroom assignment workflow and enrollment
// reads.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register wires enrollment routes.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Post("/assign-homeroom", h.assignHomeroom)
	router.Get("/students/:id", h.listByStudent)
	router.Post("/:id/withdraw", h.withdraw)
}

func (h *EnrollmentHandler) assignHomeroom(c *fiber.Ctx) error {
	var req dto.AssignHomeroomRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var enrolledBy *uint
	if id := userIDFromContext(c); id != 0 {
		enrolledBy = &id
	}

	resp, err := h.service.AssignHomeroom(c.UserContext(), req, enrolledBy)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Uint("teacher_id", req.TeacherID).Msg("homeroom assignment failed")
		return utils.SendAppError(c, err)
	}

	status := fiber.StatusOK
	if resp.EnrollmentNew {
		status = fiber.StatusCreated
	}

	return utils.SendSuccessWithStatus(c, status, "homeroom assigned", resp)
}

func (h *EnrollmentHandler) listByStudent(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	activeOnly := strings.EqualFold(c.Query("active_only"), "true")
	enrollments, err := h.service.ListByStudent(c.UserContext(), id, activeOnly)
	if err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "enrollments retrieved", enrollments)
}

func (h *EnrollmentHandler) withdraw(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid enrollment id")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Reason) == "" {
		req.Reason = "withdrawn"
	}

	if err := h.service.Withdraw(c.UserContext(), id, req.Reason); err != nil {
		return utils.SendAppError(c, err)
	}

	return utils.SendSuccess(c, "enrollment withdrawn", nil)
}
