package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// McqQuestion represents a multiple-choice question within a contest.
// CorrectOptionIndex is a 0-based index into Options and is never sent to
// non-creator viewers.
type McqQuestion struct {
	ID                 uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ContestID          uuid.UUID      `json:"contest_id" gorm:"type:uuid;not null;index"`
	QuestionText       string         `json:"question" gorm:"not null"`
	Options            pq.StringArray `json:"options" gorm:"type:text[];not null"`
	CorrectOptionIndex int            `json:"correct_option_index" gorm:"not null"`
	Points             int            `json:"points" gorm:"not null"`
	CreatedAt          time.Time      `json:"created_at"`

	// Relationships
	Contest     Contest         `json:"-" gorm:"foreignKey:ContestID"`
	Submissions []McqSubmission `json:"-" gorm:"foreignKey:QuestionID"`
}

// TableName specifies the table name for GORM
func (McqQuestion) TableName() string {
	return "mcq_questions"
}

// McqSubmission records a user's single answer to a question. The composite
// unique index is the real guard against double submission: two concurrent
// inserts cannot both succeed, regardless of any pre-check.
type McqSubmission struct {
	ID                  uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID              uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_mcq_submissions_user_question"`
	QuestionID          uuid.UUID `json:"question_id" gorm:"type:uuid;not null;uniqueIndex:idx_mcq_submissions_user_question"`
	SelectedOptionIndex int       `json:"selected_option_index" gorm:"not null"`
	IsCorrect           bool      `json:"is_correct" gorm:"not null"`
	PointsEarned        int       `json:"points_earned" gorm:"not null"`
	SubmittedAt         time.Time `json:"submitted_at" gorm:"not null"`

	// Relationships
	User     User        `json:"-" gorm:"foreignKey:UserID"`
	Question McqQuestion `json:"-" gorm:"foreignKey:QuestionID"`
}

// TableName specifies the table name for GORM
func (McqSubmission) TableName() string {
	return "mcq_submissions"
}

// McqQuestionRepository defines the interface for question data access
type McqQuestionRepository interface {
	Create(question *McqQuestion) error
	FindByID(id uuid.UUID) (*McqQuestion, error)
}

// McqSubmissionRepository defines the interface for submission data access.
// Create must surface a unique-constraint violation on (user, question) as
// ErrAlreadySubmitted.
type McqSubmissionRepository interface {
	Create(submission *McqSubmission) error
	ExistsByUserAndQuestion(userID, questionID uuid.UUID) (bool, error)
}

// CreateMcqRequest represents the data needed to add a question to a contest
type CreateMcqRequest struct {
	Question           string   `json:"question" binding:"required"`
	Options            []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectOptionIndex int      `json:"correctOptionIndex" binding:"min=0"`
	Points             int      `json:"points" binding:"required,min=1"`
}

// SubmitMcqRequest represents an answer submission
type SubmitMcqRequest struct {
	SelectedOptionIndex int `json:"selectedOptionIndex" binding:"min=0"`
}

// McqQuestionView is the viewer-aware projection of a question. The answer
// key field is a pointer so it is omitted entirely for non-creators.
type McqQuestionView struct {
	ID                 uuid.UUID `json:"id"`
	QuestionText       string    `json:"question"`
	Options            []string  `json:"options"`
	Points             int       `json:"points"`
	CorrectOptionIndex *int      `json:"correctOptionIndex,omitempty"`
}

// View builds the projection of the question for the given viewer
func (q *McqQuestion) View(isCreatorViewer bool) McqQuestionView {
	view := McqQuestionView{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Points:       q.Points,
	}
	if isCreatorViewer {
		idx := q.CorrectOptionIndex
		view.CorrectOptionIndex = &idx
	}
	return view
}

// McqGradeResult is the outcome of grading a single submission
type McqGradeResult struct {
	IsCorrect    bool `json:"isCorrect"`
	PointsEarned int  `json:"pointsEarned"`
}

// Grade evaluates a selected option against the answer key. Full points for
// the correct option, zero otherwise; no partial credit or negative marking.
func (q *McqQuestion) Grade(selectedOptionIndex int) McqGradeResult {
	if selectedOptionIndex == q.CorrectOptionIndex {
		return McqGradeResult{IsCorrect: true, PointsEarned: q.Points}
	}
	return McqGradeResult{IsCorrect: false, PointsEarned: 0}
}
