package dto

import "time"

// CreateInvitationRequest asks for an invite link for a position.
type CreateInvitationRequest struct {
	PositionID uint `json:"position_id" validate:"required,gt=0"`
}

// InvitationResponse describes a freshly minted invite link.
type InvitationResponse struct {
	ID         uint      `json:"id"`
	Token      string    `json:"token"`
	PositionID uint      `json:"position_id"`
	CompanyID  uint      `json:"company_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	InviteURL  string    `json:"invite_url"`
}
