package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/handler"
	"github.com/noobie-hq/noobie-api/internal/review"
	"github.com/noobie-hq/noobie-api/internal/service"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

type mockCommitService struct {
	response dto.CommitValidationResponse
	err      error
	last     dto.CommitValidationRequest
}

func (m *mockCommitService) ValidateCommit(_ context.Context, payload dto.CommitValidationRequest) (dto.CommitValidationResponse, error) {
	m.last = payload
	if m.err != nil {
		return dto.CommitValidationResponse{}, m.err
	}
	return m.response, nil
}

func newCommitApp(svc service.CommitReviewService) *fiber.App {
	app := fiber.New()
	handler.NewCommitHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/commits"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCommitHandler_ValidateSuccess(t *testing.T) {
	svc := &mockCommitService{response: dto.CommitValidationResponse{
		Category: "B",
		Score:    65,
		Breakdown: dto.CommitBreakdown{
			ExcellentLines: 7,
			OKLines:        2,
			BadLines:       1,
			TotalLines:     10,
		},
		Feedback:    "Solid work overall.",
		Issues:      "One unclear variable name.",
		AllowCommit: true,
		Details: dto.CommitDetails{
			Coefficients: review.DefaultCoefficients,
			Thresholds:   review.DefaultThresholds,
			RawScore:     6.5,
			MaxScore:     10,
		},
	}}
	app := newCommitApp(svc)

	resp := postJSON(t, app, "/api/v1/commits/validate", dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  "+added line",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "ada@example.com", svc.last.Email)

	// The hook reads the verdict fields directly off the response root.
	var body map[string]interface{}
	decodeResponse(t, resp, &body)
	require.Equal(t, "B", body["category"])
	require.InDelta(t, 65.0, body["score"], 0.001)
	require.Equal(t, true, body["allow_commit"])
	require.Equal(t, "Solid work overall.", body["feedback"])

	breakdown, ok := body["breakdown"].(map[string]interface{})
	require.True(t, ok)
	require.InDelta(t, 10.0, breakdown["total_lines"], 0.001)
}

func TestCommitHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized, "Authentication failed"},
		{"position missing", service.ErrPositionNotFound, fiber.StatusNotFound, "User position not found"},
		{"guidelines missing", service.ErrGuidelinesNotFound, fiber.StatusNotFound, "Position rules not found"},
		{"rate limited", fmt.Errorf("openai: %w", ai.ErrRateLimited), fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
		{"quota exhausted", fmt.Errorf("openai: %w", ai.ErrQuotaExhausted), fiber.StatusPaymentRequired, "AI credits exhausted. Please add credits to continue."},
		{"no classifier", service.ErrClassifierUnavailable, fiber.StatusServiceUnavailable, "classifier unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newCommitApp(&mockCommitService{err: tc.err})

			resp := postJSON(t, app, "/api/v1/commits/validate", dto.CommitValidationRequest{
				Email:    "ada@example.com",
				Password: "secret",
				GitDiff:  "+added line",
			})
			require.Equal(t, tc.wantStatus, resp.StatusCode)

			var body struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			decodeResponse(t, resp, &body)
			require.False(t, body.Success)
			require.Equal(t, tc.wantError, body.Error)
		})
	}
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}
