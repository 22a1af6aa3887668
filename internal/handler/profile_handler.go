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

// ProfileHandler exposes the guideline profile lookup used by the commit
// hook before a review run.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Post("/rules", h.rules)
}

func (h *ProfileHandler) rules(c *fiber.Ctx) error {
	var payload dto.UserRulesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.GetRules(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	// Consumed directly by the commit hook; no envelope.
	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *ProfileHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "Email and password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "Invalid credentials")
	default:
		h.logger.Error().Err(err).Msg("profile lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
