package data

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/contesthub/backend/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSeeder creates a new database seeder
func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

// SeedDemoData creates demo accounts and a sample contest so a fresh
// development instance is explorable. Skipped when any user already exists;
// never run in production.
func (s *Seeder) SeedDemoData() error {
	var count int64
	if err := s.db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		s.logger.Info("Users already exist, skipping demo seed",
			zap.Int64("count", count),
		)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	creator := domain.User{
		Name:         "Demo Creator",
		Email:        "creator@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCreator,
	}
	contestee := domain.User{
		Name:         "Demo Contestee",
		Email:        "contestee@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleContestee,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&creator).Error; err != nil {
			return err
		}
		if err := tx.Create(&contestee).Error; err != nil {
			return err
		}

		// Window starts tomorrow, so the problem set is still editable
		start := time.Now().Add(24 * time.Hour)
		contest := domain.Contest{
			Title:       "Demo Contest",
			Description: "A sample contest with one MCQ and one coding problem.",
			StartTime:   start,
			EndTime:     start.Add(2 * time.Hour),
			CreatorID:   creator.ID,
		}
		if err := tx.Create(&contest).Error; err != nil {
			return err
		}

		question := domain.McqQuestion{
			ContestID:          contest.ID,
			QuestionText:       "What is the time complexity of binary search?",
			Options:            []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
			CorrectOptionIndex: 1,
			Points:             5,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		problem := domain.DsaProblem{
			ContestID:     contest.ID,
			Title:         "Two Sum",
			Description:   "Given an array of integers and a target, return indices of the two numbers that add up to the target.",
			Tags:          []string{"array", "hash-table"},
			Points:        10,
			TimeLimitMS:   2000,
			MemoryLimitMB: 256,
		}
		if err := tx.Create(&problem).Error; err != nil {
			return err
		}

		cases := []domain.TestCase{
			{ProblemID: problem.ID, Input: "4\n2 7 11 15\n9", ExpectedOutput: "0 1", IsHidden: false},
			{ProblemID: problem.ID, Input: "3\n3 2 4\n6", ExpectedOutput: "1 2", IsHidden: true},
		}
		if err := tx.Create(&cases).Error; err != nil {
			return err
		}

		s.logger.Info("Demo data seeded",
			zap.String("creator_email", creator.Email),
			zap.String("contest_id", contest.ID.String()),
		)
		return nil
	})
}
