package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/contesthub/backend/internal/domain"
)

// dsaProblemRepository implements domain.DsaProblemRepository using GORM
type dsaProblemRepository struct {
	db *gorm.DB
}

// NewDsaProblemRepository creates a new DSA problem repository
func NewDsaProblemRepository(db *gorm.DB) domain.DsaProblemRepository {
	return &dsaProblemRepository{db: db}
}

// Create persists the problem and all its test cases in a single
// transaction, so a failed test case insert leaves no orphan problem row
func (r *dsaProblemRepository) Create(problem *domain.DsaProblem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		cases := problem.TestCases
		problem.TestCases = nil

		if err := tx.Create(problem).Error; err != nil {
			problem.TestCases = cases
			return err
		}

		for i := range cases {
			cases[i].ProblemID = problem.ID
		}
		if len(cases) > 0 {
			if err := tx.Create(&cases).Error; err != nil {
				problem.TestCases = cases
				return err
			}
		}

		problem.TestCases = cases
		return nil
	})
}

// FindByID finds a problem with its test cases loaded
func (r *dsaProblemRepository) FindByID(id uuid.UUID) (*domain.DsaProblem, error) {
	var problem domain.DsaProblem
	result := r.db.
		Preload("TestCases").
		Where("id = ?", id).
		First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, result.Error
	}
	return &problem, nil
}

// FindByIDWithContest finds a problem with its test cases and parent contest
// loaded, for submission eligibility checks
func (r *dsaProblemRepository) FindByIDWithContest(id uuid.UUID) (*domain.DsaProblem, error) {
	var problem domain.DsaProblem
	result := r.db.
		Preload("TestCases").
		Preload("Contest").
		Where("id = ?", id).
		First(&problem)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProblemNotFound
		}
		return nil, result.Error
	}
	return &problem, nil
}
