package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DsaProblem represents a coding problem within a contest
type DsaProblem struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID     uuid.UUID      `json:"contest_id" gorm:"type:uuid;not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description" gorm:"not null"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`
	Points        int            `json:"points" gorm:"not null"`
	TimeLimitMS   int            `json:"time_limit_ms" gorm:"not null"`
	MemoryLimitMB int            `json:"memory_limit_mb" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`

	// Relationships
	Contest   Contest    `json:"-" gorm:"foreignKey:ContestID"`
	TestCases []TestCase `json:"test_cases" gorm:"foreignKey:ProblemID"`
}

// TableName specifies the table name for GORM
func (DsaProblem) TableName() string {
	return "dsa_problems"
}

// TestCase represents a single input/output pair for a DSA problem.
// Hidden test cases are never returned to non-creator callers.
type TestCase struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProblemID      uuid.UUID `json:"problem_id" gorm:"type:uuid;not null;index"`
	Input          string    `json:"input" gorm:"not null"`
	ExpectedOutput string    `json:"expected_output" gorm:"not null"`
	IsHidden       bool      `json:"is_hidden" gorm:"not null;default:false"`
}

// TableName specifies the table name for GORM
func (TestCase) TableName() string {
	return "test_cases"
}

// DsaProblemRepository defines the interface for problem data access.
// Create must persist the problem and all its test cases atomically.
type DsaProblemRepository interface {
	Create(problem *DsaProblem) error
	FindByID(id uuid.UUID) (*DsaProblem, error)
	FindByIDWithContest(id uuid.UUID) (*DsaProblem, error)
}

// TestCaseRequest represents a test case in a problem creation request
type TestCaseRequest struct {
	Input          string `json:"input" binding:"required"`
	ExpectedOutput string `json:"expectedOutput" binding:"required"`
	IsHidden       bool   `json:"isHidden"`
}

// CreateDsaProblemRequest represents the data needed to add a problem to a contest
type CreateDsaProblemRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description" binding:"required"`
	Tags        []string          `json:"tags" binding:"required,min=1,dive,required"`
	Points      int               `json:"points" binding:"required,min=1"`
	TimeLimit   int               `json:"timeLimit" binding:"required,min=1"`
	MemoryLimit int               `json:"memoryLimit" binding:"required,min=1"`
	TestCases   []TestCaseRequest `json:"testCases" binding:"required,min=1,dive"`
}

// SubmitDsaRequest represents a code submission against a problem
type SubmitDsaRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

// TestCaseView is the reduced projection of a test case shown to contestees
type TestCaseView struct {
	ID             uuid.UUID `json:"id"`
	Input          string    `json:"input"`
	ExpectedOutput string    `json:"expectedOutput"`
	IsHidden       *bool     `json:"isHidden,omitempty"`
}

// DsaProblemView is the viewer-aware projection of a problem
type DsaProblemView struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Tags          []string       `json:"tags"`
	Points        int            `json:"points"`
	TimeLimitMS   int            `json:"timeLimit"`
	MemoryLimitMB int            `json:"memoryLimit"`
	TestCases     []TestCaseView `json:"testCases"`
}

// View builds the projection of the problem for the given viewer. Creators
// see every test case with its hidden flag; everyone else sees only the
// visible cases, without the flag.
func (p *DsaProblem) View(isCreatorViewer bool) DsaProblemView {
	cases := make([]TestCaseView, 0, len(p.TestCases))
	for i := range p.TestCases {
		tc := &p.TestCases[i]
		if isCreatorViewer {
			hidden := tc.IsHidden
			cases = append(cases, TestCaseView{
				ID:             tc.ID,
				Input:          tc.Input,
				ExpectedOutput: tc.ExpectedOutput,
				IsHidden:       &hidden,
			})
			continue
		}
		if tc.IsHidden {
			continue
		}
		cases = append(cases, TestCaseView{
			ID:             tc.ID,
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
		})
	}

	return DsaProblemView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Tags:          p.Tags,
		Points:        p.Points,
		TimeLimitMS:   p.TimeLimitMS,
		MemoryLimitMB: p.MemoryLimitMB,
		TestCases:     cases,
	}
}

// VerdictStatus is the outcome of running a submission against one test case
type VerdictStatus string

const (
	VerdictPassed VerdictStatus = "passed"
	VerdictFailed VerdictStatus = "failed"
	VerdictError  VerdictStatus = "error"
)

// TestCaseVerdict is the per-test-case result returned by the judge
type TestCaseVerdict struct {
	TestCaseID   uuid.UUID     `json:"testCaseId"`
	Status       VerdictStatus `json:"status"`
	RuntimeMS    int64         `json:"runtimeMs"`
	MemoryUsedKB int64         `json:"memoryUsedKb"`
}

// Judge is the external execution collaborator. It receives the problem's
// full test case set, hidden cases included, and returns one verdict per
// case. Score aggregation from verdicts is the caller's policy.
type Judge interface {
	Execute(ctx context.Context, code, language string, testCases []TestCase) ([]TestCaseVerdict, error)
}
