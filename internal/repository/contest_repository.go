package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contesthub/backend/internal/domain"
)

// contestRepository implements domain.ContestRepository using GORM
type contestRepository struct {
	db *gorm.DB
}

// NewContestRepository creates a new contest repository
func NewContestRepository(db *gorm.DB) domain.ContestRepository {
	return &contestRepository{db: db}
}

// Create creates a new contest in the database
func (r *contestRepository) Create(contest *domain.Contest) error {
	return r.db.Create(contest).Error
}

// FindByID finds a contest by its ID (without nested questions/problems)
func (r *contestRepository) FindByID(id uuid.UUID) (*domain.Contest, error) {
	var contest domain.Contest
	result := r.db.Where("id = ?", id).First(&contest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContestNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}

// FindByIDWithChildren finds a contest with its questions, problems and
// test cases loaded
func (r *contestRepository) FindByIDWithChildren(id uuid.UUID) (*domain.Contest, error) {
	var contest domain.Contest
	result := r.db.
		Preload("McqQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("mcq_questions.created_at ASC")
		}).
		Preload("DsaProblems", func(db *gorm.DB) *gorm.DB {
			return db.Order("dsa_problems.created_at ASC")
		}).
		Preload("DsaProblems.TestCases").
		Where("id = ?", id).
		First(&contest)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContestNotFound
		}
		return nil, result.Error
	}
	return &contest, nil
}
