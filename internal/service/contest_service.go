package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/domain"
)

// ContestService handles the contest lifecycle and MCQ grading
type ContestService struct {
	contestRepo  domain.ContestRepository
	questionRepo domain.McqQuestionRepository
	subRepo      domain.McqSubmissionRepository
	tracer       trace.Tracer
	logger       *zap.Logger
	now          func() time.Time
}

// NewContestService creates a new contest service
func NewContestService(
	contestRepo domain.ContestRepository,
	questionRepo domain.McqQuestionRepository,
	subRepo domain.McqSubmissionRepository,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ContestService {
	return &ContestService{
		contestRepo:  contestRepo,
		questionRepo: questionRepo,
		subRepo:      subRepo,
		tracer:       tracer,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateContest creates a new contest owned by the caller. The window must
// be a real interval: startTime strictly before endTime.
func (s *ContestService) CreateContest(ctx context.Context, creatorID uuid.UUID, req *domain.CreateContestRequest) (*domain.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CreateContest")
	defer span.End()

	span.SetAttributes(attribute.String("user.id", creatorID.String()))

	if !req.StartTime.Before(req.EndTime) {
		return nil, domain.NewValidationError("start time must be before end time")
	}

	contest := &domain.Contest{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatorID:   creatorID,
	}

	if err := s.contestRepo.Create(contest); err != nil {
		s.logger.Error("Failed to create contest", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Contest created",
		zap.String("contest_id", contest.ID.String()),
		zap.String("creator_id", creatorID.String()),
		zap.Time("start_time", contest.StartTime),
		zap.Time("end_time", contest.EndTime),
	)

	span.SetAttributes(attribute.String("contest.id", contest.ID.String()))
	return contest, nil
}

// GetContestDetails returns the contest with its nested questions and
// problems, redacted for non-creator viewers
func (s *ContestService) GetContestDetails(ctx context.Context, contestID, viewerID uuid.UUID) (*domain.ContestDetailResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.GetContestDetails")
	defer span.End()

	span.SetAttributes(attribute.String("contest.id", contestID.String()))

	contest, err := s.contestRepo.FindByIDWithChildren(contestID)
	if err != nil {
		return nil, err
	}

	detail := contest.ToDetailResponse(contest.IsOwnedBy(viewerID), s.now())
	return &detail, nil
}

// AddMcqQuestion adds a question to a contest. Only the contest's creator
// may add questions, and the answer key must point inside the option list.
// Unlike DSA problems, questions may be added while the contest is running.
func (s *ContestService) AddMcqQuestion(ctx context.Context, contestID, callerID uuid.UUID, req *domain.CreateMcqRequest) (*domain.McqQuestion, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.AddMcqQuestion")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", callerID.String()),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	if !contest.IsOwnedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	if req.CorrectOptionIndex >= len(req.Options) {
		return nil, domain.NewValidationError("correctOptionIndex is out of range")
	}

	question := &domain.McqQuestion{
		ContestID:          contest.ID,
		QuestionText:       req.Question,
		Options:            req.Options,
		CorrectOptionIndex: req.CorrectOptionIndex,
		Points:             req.Points,
	}

	if err := s.questionRepo.Create(question); err != nil {
		s.logger.Error("Failed to create question", zap.Error(err))
		return nil, err
	}

	s.logger.Info("MCQ question added",
		zap.String("contest_id", contest.ID.String()),
		zap.String("question_id", question.ID.String()),
	)

	return question, nil
}

// SubmitAnswer grades a contestee's answer to a question. Each (user,
// question) pair transitions Unanswered -> Answered exactly once; the second
// attempt, even a concurrent one, fails with ErrAlreadySubmitted.
func (s *ContestService) SubmitAnswer(ctx context.Context, contestID, questionID, userID uuid.UUID, selectedOptionIndex int) (*domain.McqGradeResult, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.SubmitAnswer")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("question.id", questionID.String()),
		attribute.String("user.id", userID.String()),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.ContestID != contest.ID {
		return nil, domain.ErrQuestionNotFound
	}

	if !contest.IsActive(s.now()) {
		return nil, domain.ErrContestNotActive
	}

	// Fast path for the common repeat; the unique index on
	// (user_id, question_id) closes the race between concurrent firsts.
	exists, err := s.subRepo.ExistsByUserAndQuestion(userID, questionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadySubmitted
	}

	result := question.Grade(selectedOptionIndex)

	submission := &domain.McqSubmission{
		UserID:              userID,
		QuestionID:          question.ID,
		SelectedOptionIndex: selectedOptionIndex,
		IsCorrect:           result.IsCorrect,
		PointsEarned:        result.PointsEarned,
		SubmittedAt:         s.now(),
	}

	if err := s.subRepo.Create(submission); err != nil {
		if errors.Is(err, domain.ErrAlreadySubmitted) {
			return nil, domain.ErrAlreadySubmitted
		}
		s.logger.Error("Failed to persist submission", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Answer submitted",
		zap.String("question_id", question.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("is_correct", result.IsCorrect),
		zap.Int("points_earned", result.PointsEarned),
	)

	return &result, nil
}
