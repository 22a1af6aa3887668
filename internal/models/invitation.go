package models

import "time"

// Invitation is a single-use link a company issues so an intern can join a
// position. Tokens expire after the configured TTL.
type Invitation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Token      string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	PositionID uint      `gorm:"not null" json:"position_id"`
	CompanyID  uint      `gorm:"not null" json:"company_id"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expired reports whether the invitation can no longer be redeemed.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
