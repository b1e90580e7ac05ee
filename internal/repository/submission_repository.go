package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contesthub/backend/internal/domain"
)

// mcqQuestionRepository implements domain.McqQuestionRepository using GORM
type mcqQuestionRepository struct {
	db *gorm.DB
}

// NewMcqQuestionRepository creates a new MCQ question repository
func NewMcqQuestionRepository(db *gorm.DB) domain.McqQuestionRepository {
	return &mcqQuestionRepository{db: db}
}

// Create creates a new question in the database
func (r *mcqQuestionRepository) Create(question *domain.McqQuestion) error {
	return r.db.Create(question).Error
}

// FindByID finds a question by its ID
func (r *mcqQuestionRepository) FindByID(id uuid.UUID) (*domain.McqQuestion, error) {
	var question domain.McqQuestion
	result := r.db.Where("id = ?", id).First(&question)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, result.Error
	}
	return &question, nil
}

// mcqSubmissionRepository implements domain.McqSubmissionRepository using GORM
type mcqSubmissionRepository struct {
	db *gorm.DB
}

// NewMcqSubmissionRepository creates a new MCQ submission repository
func NewMcqSubmissionRepository(db *gorm.DB) domain.McqSubmissionRepository {
	return &mcqSubmissionRepository{db: db}
}

// Create inserts a submission record. The unique index on
// (user_id, question_id) makes this the authoritative duplicate check: a
// losing concurrent insert comes back as ErrAlreadySubmitted, not a 500.
func (r *mcqSubmissionRepository) Create(submission *domain.McqSubmission) error {
	result := r.db.Create(submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadySubmitted
		}
		return result.Error
	}
	return nil
}

// ExistsByUserAndQuestion checks whether the user has already answered the
// question
func (r *mcqSubmissionRepository) ExistsByUserAndQuestion(userID, questionID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.Model(&domain.McqSubmission{}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		Count(&count)
	return count > 0, result.Error
}
