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

// AuthHandler exchanges credentials for bearer tokens.
type AuthHandler struct {
	service   service.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the handler endpoints into the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.Authenticate(c.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	token, expiresAt, err := h.service.IssueToken(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("token issuance failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      user.Role,
	})
}
