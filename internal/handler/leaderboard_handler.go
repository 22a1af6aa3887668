package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/service"
	"github.com/noobie-hq/noobie-api/internal/utils"
)

// LeaderboardHandler exposes the intern rating board.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("", h.top)
}

func (h *LeaderboardHandler) top(c *fiber.Ctx) error {
	response, err := h.service.Top(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", response)
}
