package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contest represents a time-boxed collection of MCQ questions and DSA
// problems owned by a creator
type Contest struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	StartTime   time.Time `json:"start_time" gorm:"not null;index"`
	EndTime     time.Time `json:"end_time" gorm:"not null"`
	CreatorID   uuid.UUID `json:"creator_id" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Creator      User          `json:"-" gorm:"foreignKey:CreatorID"`
	McqQuestions []McqQuestion `json:"-" gorm:"foreignKey:ContestID"`
	DsaProblems  []DsaProblem  `json:"-" gorm:"foreignKey:ContestID"`
}

// TableName specifies the table name for GORM
func (Contest) TableName() string {
	return "contests"
}

// IsActive reports whether now falls inside the contest window. Both bounds
// are inclusive: submissions are accepted at the exact start and end instants.
func (c *Contest) IsActive(now time.Time) bool {
	return !now.Before(c.StartTime) && !now.After(c.EndTime)
}

// IsOwnedBy reports whether the given user created this contest
func (c *Contest) IsOwnedBy(userID uuid.UUID) bool {
	return c.CreatorID == userID
}

// ContestRepository defines the interface for contest data access
type ContestRepository interface {
	Create(contest *Contest) error
	FindByID(id uuid.UUID) (*Contest, error)
	FindByIDWithChildren(id uuid.UUID) (*Contest, error)
}

// CreateContestRequest represents the data needed to create a new contest
type CreateContestRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

// ContestResponse represents a contest in API responses
type ContestResponse struct {
	ID          uuid.UUID `json:"contestId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatorID   uuid.UUID `json:"creatorId"`
}

// ToResponse converts a Contest to a ContestResponse
func (c *Contest) ToResponse() ContestResponse {
	return ContestResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		CreatorID:   c.CreatorID,
	}
}

// ContestDetailResponse is the role-filtered detail view of a contest with
// its nested questions and problems
type ContestDetailResponse struct {
	ContestResponse
	IsActive     bool              `json:"isActive"`
	McqQuestions []McqQuestionView `json:"mcqQuestions"`
	DsaProblems  []DsaProblemView  `json:"dsaProblems"`
}

// ToDetailResponse builds the detail view. Answer keys and hidden test cases
// are included only when the viewer is the contest's creator.
func (c *Contest) ToDetailResponse(isCreatorViewer bool, now time.Time) ContestDetailResponse {
	questions := make([]McqQuestionView, len(c.McqQuestions))
	for i := range c.McqQuestions {
		questions[i] = c.McqQuestions[i].View(isCreatorViewer)
	}

	problems := make([]DsaProblemView, len(c.DsaProblems))
	for i := range c.DsaProblems {
		problems[i] = c.DsaProblems[i].View(isCreatorViewer)
	}

	return ContestDetailResponse{
		ContestResponse: c.ToResponse(),
		IsActive:        c.IsActive(now),
		McqQuestions:    questions,
		DsaProblems:     problems,
	}
}
