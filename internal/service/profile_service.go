package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/repository"
)

// ProfileService resolves the guideline profile shown to an intern before
// a commit review.
type ProfileService interface {
	GetRules(ctx context.Context, payload dto.UserRulesRequest) (dto.UserRulesResponse, error)
}

type profileService struct {
	auth      AuthService
	users     repository.UserRepository
	positions repository.PositionRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(auth AuthService, users repository.UserRepository, positions repository.PositionRepository, validate *validator.Validate, logger zerolog.Logger) ProfileService {
	return &profileService{
		auth:      auth,
		users:     users,
		positions: positions,
		validator: validate,
		logger:    logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) GetRules(ctx context.Context, payload dto.UserRulesRequest) (dto.UserRulesResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserRulesResponse{}, err
	}

	user, err := s.auth.Authenticate(ctx, payload.Email, payload.Password)
	if err != nil {
		return dto.UserRulesResponse{}, err
	}

	response := dto.UserRulesResponse{
		Name:  user.FullName(),
		Score: user.Rating,
	}

	if user.PositionID != nil {
		position, err := s.positions.GetByID(ctx, *user.PositionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserRulesResponse{}, err
		}
		if err == nil {
			response.Position = position.Name
			response.Rules = position.Rules
		}
	}

	if user.CompanyID != nil {
		company, err := s.users.GetByID(ctx, *user.CompanyID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserRulesResponse{}, err
		}
		if err == nil {
			response.Company = company.FullName()
		} else {
			s.logger.Warn().Uint("company_id", *user.CompanyID).Msg("company account missing for intern")
		}
	}

	return response, nil
}
