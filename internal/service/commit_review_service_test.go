package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/internal/models"
	"github.com/noobie-hq/noobie-api/internal/review"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

type stubUserRepo struct {
	user        models.User
	company     models.User
	top         []models.User
	pointsAdded []int
	err         error
	addErr      error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	switch id {
	case s.user.ID:
		return s.user, nil
	case s.company.ID:
		return s.company, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	if !strings.EqualFold(email, s.user.Email) {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) AddRatingPoints(ctx context.Context, id uint, points int) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.pointsAdded = append(s.pointsAdded, points)
	return nil
}

func (s *stubUserRepo) TopByRating(ctx context.Context, limit int) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit < len(s.top) {
		return s.top[:limit], nil
	}
	return s.top, nil
}

type stubPositionRepo struct {
	position models.Position
	err      error
}

func (s *stubPositionRepo) GetByID(ctx context.Context, id uint) (models.Position, error) {
	if s.err != nil {
		return models.Position{}, s.err
	}
	if id != s.position.ID {
		return models.Position{}, gorm.ErrRecordNotFound
	}
	return s.position, nil
}

type stubCodeSubmissionRepo struct {
	created *models.CodeSubmission
	err     error
}

func (s *stubCodeSubmissionRepo) Create(ctx context.Context, submission *models.CodeSubmission) error {
	if s.err != nil {
		return s.err
	}
	if submission.ID == 0 {
		submission.ID = 1
	}
	clone := *submission
	s.created = &clone
	return nil
}

func (s *stubCodeSubmissionRepo) ListByIntern(ctx context.Context, internID uint, limit int) ([]models.CodeSubmission, error) {
	return nil, errors.New("not implemented")
}

type stubClassifier struct {
	response string
	err      error
	called   bool
	request  ai.ReviewRequest
}

func (s *stubClassifier) ReviewDiff(ctx context.Context, req ai.ReviewRequest) (string, error) {
	s.called = true
	s.request = req
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func uintPtr(id uint) *uint {
	return &id
}

func buildDiff(lines int) string {
	var sb strings.Builder
	sb.WriteString("diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n")
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "+line %d\n", i)
	}
	return sb.String()
}

func newReviewFixture(t *testing.T) (*stubUserRepo, *stubPositionRepo, *stubCodeSubmissionRepo, *stubClassifier) {
	t.Helper()
	users := &stubUserRepo{user: models.User{
		ID:           7,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: hashPassword(t, "secret"),
		Role:         models.UserRoleIntern,
		PositionID:   uintPtr(3),
	}}
	positions := &stubPositionRepo{position: models.Position{ID: 3, Name: "Backend Intern", Rules: "Use descriptive names"}}
	submissions := &stubCodeSubmissionRepo{}
	classifier := &stubClassifier{response: "EXCELLENT_LINES: 7\nOK_LINES: 2\nBAD_LINES: 1\nFEEDBACK: Solid work overall.\nISSUES: One unclear variable name."}
	return users, positions, submissions, classifier
}

func newReviewService(users *stubUserRepo, positions *stubPositionRepo, submissions *stubCodeSubmissionRepo, classifier ai.Classifier) CommitReviewService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	auth := NewAuthService(users, "test-secret", 0, zerolog.Nop())
	return NewCommitReviewService(auth, users, positions, submissions, classifier, review.NewDefaultScorer(), validate, zerolog.Nop())
}

func TestCommitReviewServiceScoresAndPersists(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	svc := newReviewService(users, positions, submissions, classifier)

	resp, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(10),
	})
	require.NoError(t, err)

	require.Equal(t, "B", resp.Category)
	require.InDelta(t, 65.0, resp.Score, 0.001)
	require.True(t, resp.AllowCommit)
	require.Equal(t, 7, resp.Breakdown.ExcellentLines)
	require.Equal(t, 2, resp.Breakdown.OKLines)
	require.Equal(t, 1, resp.Breakdown.BadLines)
	require.Equal(t, 10, resp.Breakdown.TotalLines)
	require.Equal(t, "Solid work overall.", resp.Feedback)
	require.InDelta(t, 6.5, resp.Details.RawScore, 0.001)
	require.InDelta(t, 10.0, resp.Details.MaxScore, 0.001)

	require.True(t, classifier.called)
	require.Equal(t, "Backend Intern", classifier.request.Position)
	require.Equal(t, "Use descriptive names", classifier.request.Guidelines)

	require.NotNil(t, submissions.created)
	require.Equal(t, uint(7), submissions.created.InternID)
	require.Equal(t, 65, submissions.created.PointsAwarded)
	require.Equal(t, models.CodeSubmissionStatusApproved, submissions.created.Status)
	require.Contains(t, submissions.created.Feedback, "Category: B | Score: 65%")
	require.Contains(t, submissions.created.Feedback, "Issues:\nOne unclear variable name.")
	require.Equal(t, []int{65}, users.pointsAdded)
}

func TestCommitReviewServiceNegativeScoreRejects(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	classifier.response = "EXCELLENT_LINES: 0\nOK_LINES: 0\nBAD_LINES: 4\nFEEDBACK: Rewrite this.\nISSUES: Everything."
	svc := newReviewService(users, positions, submissions, classifier)

	resp, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(4),
	})
	require.NoError(t, err)

	require.Equal(t, "C", resp.Category)
	require.InDelta(t, -150.0, resp.Score, 0.001)
	require.False(t, resp.AllowCommit)

	require.NotNil(t, submissions.created)
	require.Equal(t, 0, submissions.created.PointsAwarded)
	require.Equal(t, models.CodeSubmissionStatusRejected, submissions.created.Status)
	require.Equal(t, []int{0}, users.pointsAdded)
}

func TestCommitReviewServiceEmptyDiffSkipsClassifier(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	svc := newReviewService(users, positions, submissions, classifier)

	resp, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  "--- a/main.go\n-removed line\n",
	})
	require.NoError(t, err)

	require.Equal(t, "A", resp.Category)
	require.InDelta(t, 100.0, resp.Score, 0.001)
	require.True(t, resp.AllowCommit)
	require.Equal(t, 0, resp.Breakdown.TotalLines)
	require.Equal(t, "No code changes detected", resp.Feedback)

	require.False(t, classifier.called)
	require.Nil(t, submissions.created)
	require.Empty(t, users.pointsAdded)
}

func TestCommitReviewServiceRejectsBadCredentials(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	svc := newReviewService(users, positions, submissions, classifier)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "wrong",
		GitDiff:  buildDiff(3),
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.False(t, classifier.called)
}

func TestCommitReviewServiceRequiresPosition(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	users.user.PositionID = nil
	svc := newReviewService(users, positions, submissions, classifier)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(3),
	})
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestCommitReviewServiceRequiresGuidelines(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	positions.position.Rules = "   "
	svc := newReviewService(users, positions, submissions, classifier)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(3),
	})
	require.ErrorIs(t, err, ErrGuidelinesNotFound)
}

func TestCommitReviewServicePropagatesClassifierErrors(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	classifier.err = fmt.Errorf("openai: %w", ai.ErrRateLimited)
	svc := newReviewService(users, positions, submissions, classifier)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(3),
	})
	require.ErrorIs(t, err, ai.ErrRateLimited)
	require.Nil(t, submissions.created)
}

func TestCommitReviewServiceRequiresClassifier(t *testing.T) {
	users, positions, submissions, _ := newReviewFixture(t)
	svc := newReviewService(users, positions, submissions, nil)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(3),
	})
	require.ErrorIs(t, err, ErrClassifierUnavailable)
}

func TestCommitReviewServiceStorageFailureDoesNotBlockVerdict(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	submissions.err = errors.New("database down")
	users.addErr = errors.New("database down")
	svc := newReviewService(users, positions, submissions, classifier)

	resp, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:    "ada@example.com",
		Password: "secret",
		GitDiff:  buildDiff(10),
	})
	require.NoError(t, err)
	require.Equal(t, "B", resp.Category)
	require.True(t, resp.AllowCommit)
}

func TestCommitReviewServiceValidatesPayload(t *testing.T) {
	users, positions, submissions, classifier := newReviewFixture(t)
	svc := newReviewService(users, positions, submissions, classifier)

	_, err := svc.ValidateCommit(context.Background(), dto.CommitValidationRequest{
		Email:   "ada@example.com",
		GitDiff: buildDiff(3),
	})
	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
}
