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

// TrainingTaskHandler exposes AI-generated training task creation.
type TrainingTaskHandler struct {
	service service.TrainingTaskService
	logger  zerolog.Logger
}

// NewTrainingTaskHandler constructs the handler.
func NewTrainingTaskHandler(service service.TrainingTaskService, logger zerolog.Logger) *TrainingTaskHandler {
	return &TrainingTaskHandler{
		service: service,
		logger:  logger.With().Str("component", "training_task_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *TrainingTaskHandler) Register(router fiber.Router) {
	router.Post("/tasks", h.generate)
}

func (h *TrainingTaskHandler) generate(c *fiber.Ctx) error {
	var payload dto.GenerateTasksRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Generate(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "training tasks generated", response)
}

func (h *TrainingTaskHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "Rules are required")
	case errors.Is(err, ai.ErrRateLimited):
		return utils.SendError(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	case errors.Is(err, ai.ErrQuotaExhausted):
		return utils.SendError(c, fiber.StatusPaymentRequired, "AI credits exhausted. Please contact admin.")
	case errors.Is(err, service.ErrClassifierUnavailable):
		return utils.SendError(c, fiber.StatusServiceUnavailable, "AI service not configured")
	default:
		h.logger.Error().Err(err).Msg("training task generation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
