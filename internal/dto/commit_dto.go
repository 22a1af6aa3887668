package dto

import "github.com/noobie-hq/noobie-api/internal/review"

// CommitValidationRequest is the payload the commit hook sends for review.
// An empty diff is valid and short-circuits to an automatic pass.
type CommitValidationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	GitDiff  string `json:"gitDiff"`
}

// CommitBreakdown reports how the classifier distributed the added lines.
type CommitBreakdown struct {
	ExcellentLines int `json:"excellent_lines"`
	OKLines        int `json:"ok_lines"`
	BadLines       int `json:"bad_lines"`
	TotalLines     int `json:"total_lines"`
}

// CommitDetails exposes the scoring constants and raw numbers used for the
// verdict so clients can display and audit the math.
type CommitDetails struct {
	Coefficients review.Coefficients `json:"coefficients"`
	Thresholds   review.Thresholds   `json:"thresholds"`
	RawScore     float64             `json:"raw_score"`
	MaxScore     float64             `json:"max_score"`
}

// CommitValidationResponse is the verdict returned to the commit hook.
type CommitValidationResponse struct {
	Category    string          `json:"category"`
	Score       float64         `json:"score"`
	Breakdown   CommitBreakdown `json:"breakdown"`
	Feedback    string          `json:"feedback"`
	Issues      string          `json:"issues"`
	AllowCommit bool            `json:"allow_commit"`
	Details     CommitDetails   `json:"details"`
}
