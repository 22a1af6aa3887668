package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/service"
	"github.com/noobie-hq/noobie-api/internal/utils"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

// CommitHandler exposes the commit validation endpoint consumed by the
// pre-commit hook.
type CommitHandler struct {
	service service.CommitReviewService
	logger  zerolog.Logger
}

// NewCommitHandler constructs the handler.
func NewCommitHandler(service service.CommitReviewService, logger zerolog.Logger) *CommitHandler {
	return &CommitHandler{
		service: service,
		logger:  logger.With().Str("component", "commit_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *CommitHandler) Register(router fiber.Router) {
	router.Post("/validate", h.validate)
}

func (h *CommitHandler) validate(c *fiber.Ctx) error {
	var payload dto.CommitValidationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.ValidateCommit(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	// The commit hook parses this payload directly, so the verdict is
	// returned unwrapped rather than in the standard envelope.
	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *CommitHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "Missing required fields: email, password, gitDiff")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "Authentication failed")
	case errors.Is(err, service.ErrPositionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "User position not found")
	case errors.Is(err, service.ErrGuidelinesNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Position rules not found")
	case errors.Is(err, ai.ErrRateLimited):
		return utils.SendError(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.Is(err, ai.ErrQuotaExhausted):
		return utils.SendError(c, fiber.StatusPaymentRequired, "AI credits exhausted. Please add credits to continue.")
	case errors.Is(err, service.ErrClassifierUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "classifier unavailable")
	default:
		h.logger.Error().Err(err).Msg("commit validation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
