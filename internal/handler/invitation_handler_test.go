package handler_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/handler"
	"github.com/noobie-hq/noobie-api/internal/service"
)

type mockInvitationService struct {
	response      dto.InvitationResponse
	err           error
	lastCompanyID uint
}

func (m *mockInvitationService) Create(_ context.Context, companyID uint, _ dto.CreateInvitationRequest) (dto.InvitationResponse, error) {
	m.lastCompanyID = companyID
	if m.err != nil {
		return dto.InvitationResponse{}, m.err
	}
	return m.response, nil
}

func newInvitationApp(svc service.InvitationService, userID interface{}) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/invitations", func(c *fiber.Ctx) error {
		if userID != nil {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	handler.NewInvitationHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func TestInvitationHandler_CreateSuccess(t *testing.T) {
	svc := &mockInvitationService{response: dto.InvitationResponse{
		ID:         1,
		Token:      "tok-123",
		PositionID: 3,
		CompanyID:  20,
		ExpiresAt:  time.Now().Add(7 * 24 * time.Hour),
		InviteURL:  "https://noobie.lovable.app/auth?invite=tok-123",
	}}
	app := newInvitationApp(svc, uint(20))

	resp := postJSON(t, app, "/api/v1/invitations", dto.CreateInvitationRequest{PositionID: 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(20), svc.lastCompanyID)

	var body struct {
		Success bool                   `json:"success"`
		Data    dto.InvitationResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "tok-123", body.Data.Token)
}

func TestInvitationHandler_MissingUserContext(t *testing.T) {
	app := newInvitationApp(&mockInvitationService{}, nil)

	resp := postJSON(t, app, "/api/v1/invitations", dto.CreateInvitationRequest{PositionID: 3})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInvitationHandler_UnknownPosition(t *testing.T) {
	app := newInvitationApp(&mockInvitationService{err: service.ErrInvitationPositionNotFound}, uint(20))

	resp := postJSON(t, app, "/api/v1/invitations", dto.CreateInvitationRequest{PositionID: 99})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
