package models

import "time"

// Position is a company-defined role with the coding guideline text used
// to prompt the commit review classifier.
type Position struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Rules     string    `gorm:"type:text" json:"rules"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
