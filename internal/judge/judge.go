package judge

import (
	"context"

	"github.com/contesthub/backend/internal/domain"
)

// Unavailable is the judge wired in deployments without an execution
// backend. The submission gate still runs all eligibility checks; the
// handoff itself reports that execution is not available.
type Unavailable struct{}

// NewUnavailable creates a judge that rejects every execution request
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// Execute implements domain.Judge
func (Unavailable) Execute(ctx context.Context, code, language string, testCases []domain.TestCase) ([]domain.TestCaseVerdict, error) {
	return nil, domain.ErrJudgeUnavailable
}
