package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/service"
	"github.com/noobie-hq/noobie-api/internal/utils"
)

// InvitationHandler exposes invite link creation for company accounts.
type InvitationHandler struct {
	service service.InvitationService
	logger  zerolog.Logger
}

// NewInvitationHandler constructs the handler.
func NewInvitationHandler(service service.InvitationService, logger zerolog.Logger) *InvitationHandler {
	return &InvitationHandler{
		service: service,
		logger:  logger.With().Str("component", "invitation_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *InvitationHandler) Register(router fiber.Router) {
	router.Post("", h.create)
}

func (h *InvitationHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateInvitationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	companyID := userIDFromContext(c)
	if companyID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	response, err := h.service.Create(c.Context(), companyID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "invitation created", response)
}

func (h *InvitationHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "Position ID is required")
	case errors.Is(err, service.ErrInvitationPositionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("invitation creation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
