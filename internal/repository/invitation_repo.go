package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/models"
)

// InvitationRepository exposes persistence helpers for invite links.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	GetByToken(ctx context.Context, token string) (models.Invitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository constructs an invitation repository.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&invitation).Error
	if err != nil {
		return models.Invitation{}, err
	}

	return invitation, nil
}
