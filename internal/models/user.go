package models

import "time"

// User roles.
const (
	UserRoleIntern  = "intern"
	UserRoleCompany = "company"
)

// User represents an account in the onboarding platform, either an intern
// submitting code or a company managing positions. Rating accumulates the
// points awarded by commit reviews and is only ever incremented.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:255;not null" json:"first_name"`
	LastName     string    `gorm:"size:255;not null" json:"last_name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:intern" json:"role"`
	PositionID   *uint     `json:"position_id"`
	CompanyID    *uint     `json:"company_id"`
	Rating       int       `gorm:"not null;default:0" json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns the display name used by profile responses.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
