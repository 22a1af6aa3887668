package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/models"
	"github.com/noobie-hq/noobie-api/internal/observability"
	"github.com/noobie-hq/noobie-api/internal/repository"
	"github.com/noobie-hq/noobie-api/internal/review"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

// ErrPositionNotFound indicates the caller has no assigned position.
var ErrPositionNotFound = errors.New("user position not found")

// ErrGuidelinesNotFound indicates the caller's position carries no guideline text.
var ErrGuidelinesNotFound = errors.New("position rules not found")

// ErrClassifierUnavailable indicates no AI classifier is configured.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// CommitReviewService scores staged diffs against position guidelines and
// decides whether a commit may proceed.
type CommitReviewService interface {
	ValidateCommit(ctx context.Context, payload dto.CommitValidationRequest) (dto.CommitValidationResponse, error)
}

type commitReviewService struct {
	auth        AuthService
	users       repository.UserRepository
	positions   repository.PositionRepository
	submissions repository.CodeSubmissionRepository
	classifier  ai.Classifier
	scorer      review.Scorer
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewCommitReviewService constructs the commit review orchestrator.
func NewCommitReviewService(auth AuthService, users repository.UserRepository, positions repository.PositionRepository, submissions repository.CodeSubmissionRepository, classifier ai.Classifier, scorer review.Scorer, validate *validator.Validate, logger zerolog.Logger) CommitReviewService {
	return &commitReviewService{
		auth:        auth,
		users:       users,
		positions:   positions,
		submissions: submissions,
		classifier:  classifier,
		scorer:      scorer,
		validator:   validate,
		logger:      logger.With().Str("component", "commit_review_service").Logger(),
	}
}

// ValidateCommit runs one review pass: authenticate, resolve guidelines,
// count candidate lines, classify, score, persist, respond. There are no
// retries; classifier failures surface immediately with their kind intact.
func (s *commitReviewService) ValidateCommit(ctx context.Context, payload dto.CommitValidationRequest) (dto.CommitValidationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CommitValidationResponse{}, err
	}

	user, err := s.auth.Authenticate(ctx, payload.Email, payload.Password)
	if err != nil {
		return dto.CommitValidationResponse{}, err
	}

	position, err := s.resolvePosition(ctx, user)
	if err != nil {
		return dto.CommitValidationResponse{}, err
	}

	totalLines := review.CountAddedLines(payload.GitDiff)
	if totalLines == 0 {
		// A no-op diff passes without consulting the classifier and
		// leaves no audit trail: there is nothing to review.
		return s.buildResponse(review.Analysis{
			Feedback: "No code changes detected",
			Issues:   review.DefaultIssues,
		}, s.scorer.Score(review.Analysis{}, 0), 0), nil
	}

	if s.classifier == nil {
		return dto.CommitValidationResponse{}, ErrClassifierUnavailable
	}

	raw, err := s.classifier.ReviewDiff(ctx, ai.ReviewRequest{
		Position:   position.Name,
		Guidelines: position.Rules,
		Diff:       payload.GitDiff,
	})
	if err != nil {
		return dto.CommitValidationResponse{}, err
	}

	analysis := review.ParseAnalysis(raw)
	result := s.scorer.Score(analysis, totalLines)

	s.persistVerdict(ctx, user, payload.GitDiff, analysis, result, totalLines)
	observability.CommitVerdicts().WithLabelValues(string(result.Category)).Inc()

	return s.buildResponse(analysis, result, totalLines), nil
}

func (s *commitReviewService) resolvePosition(ctx context.Context, user models.User) (models.Position, error) {
	if user.PositionID == nil {
		return models.Position{}, ErrPositionNotFound
	}

	position, err := s.positions.GetByID(ctx, *user.PositionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Position{}, ErrPositionNotFound
		}
		return models.Position{}, err
	}

	if strings.TrimSpace(position.Rules) == "" {
		return models.Position{}, ErrGuidelinesNotFound
	}

	return position, nil
}

// persistVerdict writes the audit record and credits the intern's rating.
// Failures are logged only: the verdict is already computed and a storage
// hiccup must never overturn or block a commit decision.
func (s *commitReviewService) persistVerdict(ctx context.Context, user models.User, diff string, analysis review.Analysis, result review.Result, totalLines int) {
	points := result.Points()
	status := models.CodeSubmissionStatusRejected
	if result.AllowCommit() {
		status = models.CodeSubmissionStatusApproved
	}

	submission := models.CodeSubmission{
		InternID:      user.ID,
		Code:          diff,
		Feedback:      composeFeedback(result, analysis),
		PointsAwarded: points,
		Status:        status,
		Details: datatypes.JSONMap{
			"excellent_lines": analysis.Excellent,
			"ok_lines":        analysis.OK,
			"bad_lines":       analysis.Bad,
			"total_lines":     totalLines,
			"raw_score":       result.Raw,
			"max_score":       result.Max,
		},
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		s.logger.Error().Err(err).Uint("intern_id", user.ID).Msg("failed to store code submission")
	}

	if err := s.users.AddRatingPoints(ctx, user.ID, points); err != nil {
		s.logger.Error().Err(err).Uint("intern_id", user.ID).Int("points", points).Msg("failed to update rating points")
	}
}

func (s *commitReviewService) buildResponse(analysis review.Analysis, result review.Result, totalLines int) dto.CommitValidationResponse {
	return dto.CommitValidationResponse{
		Category: string(result.Category),
		Score:    result.DisplayScore(),
		Breakdown: dto.CommitBreakdown{
			ExcellentLines: analysis.Excellent,
			OKLines:        analysis.OK,
			BadLines:       analysis.Bad,
			TotalLines:     totalLines,
		},
		Feedback:    analysis.Feedback,
		Issues:      analysis.Issues,
		AllowCommit: result.AllowCommit(),
		Details: dto.CommitDetails{
			Coefficients: s.scorer.Coefficients(),
			Thresholds:   s.scorer.Thresholds(),
			RawScore:     roundToOneDecimal(result.Raw),
			MaxScore:     result.Max,
		},
	}
}

func composeFeedback(result review.Result, analysis review.Analysis) string {
	feedback := fmt.Sprintf("Category: %s | Score: %g%%\n\n%s", result.Category, result.DisplayScore(), analysis.Feedback)
	if analysis.Issues != "" {
		feedback = fmt.Sprintf("%s\n\nIssues:\n%s", feedback, analysis.Issues)
	}

	return feedback
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
