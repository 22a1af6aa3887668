package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/models"
	"github.com/noobie-hq/noobie-api/internal/repository"
)

// ErrInvitationPositionNotFound indicates the invitation targets a position
// that does not exist.
var ErrInvitationPositionNotFound = errors.New("position not found")

// InvitationService mints invite links companies share with new interns.
type InvitationService interface {
	Create(ctx context.Context, companyID uint, payload dto.CreateInvitationRequest) (dto.InvitationResponse, error)
}

type invitationService struct {
	invitations repository.InvitationRepository
	positions   repository.PositionRepository
	validator   *validator.Validate
	baseURL     string
	ttl         time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewInvitationService constructs the invitation service.
func NewInvitationService(invitations repository.InvitationRepository, positions repository.PositionRepository, validate *validator.Validate, baseURL string, ttl time.Duration, logger zerolog.Logger) InvitationService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &invitationService{
		invitations: invitations,
		positions:   positions,
		validator:   validate,
		baseURL:     baseURL,
		ttl:         ttl,
		logger:      logger.With().Str("component", "invitation_service").Logger(),
		now:         time.Now,
	}
}

func (s *invitationService) Create(ctx context.Context, companyID uint, payload dto.CreateInvitationRequest) (dto.InvitationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InvitationResponse{}, err
	}

	if _, err := s.positions.GetByID(ctx, payload.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InvitationResponse{}, ErrInvitationPositionNotFound
		}
		return dto.InvitationResponse{}, err
	}

	invitation := models.Invitation{
		Token:      uuid.NewString(),
		PositionID: payload.PositionID,
		CompanyID:  companyID,
		ExpiresAt:  s.now().Add(s.ttl),
	}

	if err := s.invitations.Create(ctx, &invitation); err != nil {
		return dto.InvitationResponse{}, err
	}

	return dto.InvitationResponse{
		ID:         invitation.ID,
		Token:      invitation.Token,
		PositionID: invitation.PositionID,
		CompanyID:  invitation.CompanyID,
		ExpiresAt:  invitation.ExpiresAt,
		InviteURL:  fmt.Sprintf("%s/auth?invite=%s", s.baseURL, invitation.Token),
	}, nil
}
