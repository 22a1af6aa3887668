package ai

import (
	"context"
	"errors"
)

// ErrRateLimited signals the upstream model rejected the call with a rate
// limit; the caller may retry later.
var ErrRateLimited = errors.New("ai rate limit exceeded")

// ErrQuotaExhausted signals the account has no credits left; retrying will
// not help until an admin tops up.
var ErrQuotaExhausted = errors.New("ai credits exhausted")

// ReviewRequest carries the artefacts needed to review a staged diff
// against a position's coding guidelines.
type ReviewRequest struct {
	Position   string
	Guidelines string
	Diff       string
}

// Classifier grades the added lines of a diff against guidelines and
// returns the model's raw analysis text. The response is expected to carry
// EXCELLENT_LINES/OK_LINES/BAD_LINES counts plus FEEDBACK and ISSUES
// sections, but the format is advisory, not guaranteed.
type Classifier interface {
	ReviewDiff(ctx context.Context, req ReviewRequest) (string, error)
}

// TaskGenerator produces progressive training tasks from guideline text.
type TaskGenerator interface {
	GenerateTasks(ctx context.Context, guidelines string) (string, error)
}
