package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/models"
)

// CodeSubmissionRepository exposes persistence helpers for commit review records.
type CodeSubmissionRepository interface {
	Create(ctx context.Context, submission *models.CodeSubmission) error
	ListByIntern(ctx context.Context, internID uint, limit int) ([]models.CodeSubmission, error)
}

type codeSubmissionRepository struct {
	db *gorm.DB
}

// NewCodeSubmissionRepository constructs a code submission repository.
func NewCodeSubmissionRepository(db *gorm.DB) CodeSubmissionRepository {
	return &codeSubmissionRepository{db: db}
}

func (r *codeSubmissionRepository) Create(ctx context.Context, submission *models.CodeSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *codeSubmissionRepository) ListByIntern(ctx context.Context, internID uint, limit int) ([]models.CodeSubmission, error) {
	var submissions []models.CodeSubmission
	query := r.db.WithContext(ctx).
		Where("intern_id = ?", internID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}
