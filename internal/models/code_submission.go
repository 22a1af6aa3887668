package models

import (
	"time"

	"gorm.io/datatypes"
)

// CodeSubmission statuses.
const (
	CodeSubmissionStatusApproved = "approved"
	CodeSubmissionStatusRejected = "rejected"
)

// CodeSubmission records one commit review verdict for an intern. Rows are
// written once when a review completes and never mutated afterwards.
type CodeSubmission struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	InternID      uint              `gorm:"not null;index" json:"intern_id"`
	Code          string            `gorm:"type:text" json:"code"`
	Feedback      string            `gorm:"type:text" json:"feedback"`
	PointsAwarded int               `gorm:"not null;default:0" json:"points_awarded"`
	Status        string            `gorm:"size:32;not null" json:"status"`
	Details       datatypes.JSONMap `json:"details"`
	CreatedAt     time.Time         `json:"created_at"`
}
