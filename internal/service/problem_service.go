package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/domain"
)

// ProblemService handles DSA problem authoring and the submission gate
type ProblemService struct {
	problemRepo domain.DsaProblemRepository
	contestRepo domain.ContestRepository
	judge       domain.Judge
	tracer      trace.Tracer
	logger      *zap.Logger
	now         func() time.Time
}

// NewProblemService creates a new problem service
func NewProblemService(
	problemRepo domain.DsaProblemRepository,
	contestRepo domain.ContestRepository,
	judge domain.Judge,
	tracer trace.Tracer,
	logger *zap.Logger,
) *ProblemService {
	return &ProblemService{
		problemRepo: problemRepo,
		contestRepo: contestRepo,
		judge:       judge,
		tracer:      tracer,
		logger:      logger,
		now:         time.Now,
	}
}

// AddProblem adds a DSA problem with its test cases to a contest. The
// problem set is frozen while the contest is active, so creation is only
// allowed outside the contest window. The problem and all its test cases
// are persisted atomically.
func (s *ProblemService) AddProblem(ctx context.Context, contestID, callerID uuid.UUID, req *domain.CreateDsaProblemRequest) (*domain.DsaProblem, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.AddProblem")
	defer span.End()

	span.SetAttributes(
		attribute.String("contest.id", contestID.String()),
		attribute.String("user.id", callerID.String()),
		attribute.Int("test_case.count", len(req.TestCases)),
	)

	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		return nil, err
	}

	if !contest.IsOwnedBy(callerID) {
		return nil, domain.ErrForbidden
	}

	if contest.IsActive(s.now()) {
		return nil, domain.ErrContestActive
	}

	cases := make([]domain.TestCase, len(req.TestCases))
	for i, tc := range req.TestCases {
		cases[i] = domain.TestCase{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			IsHidden:       tc.IsHidden,
		}
	}

	problem := &domain.DsaProblem{
		ContestID:     contest.ID,
		Title:         req.Title,
		Description:   req.Description,
		Tags:          req.Tags,
		Points:        req.Points,
		TimeLimitMS:   req.TimeLimit,
		MemoryLimitMB: req.MemoryLimit,
		TestCases:     cases,
	}

	if err := s.problemRepo.Create(problem); err != nil {
		s.logger.Error("Failed to create problem", zap.Error(err))
		return nil, err
	}

	s.logger.Info("DSA problem added",
		zap.String("contest_id", contest.ID.String()),
		zap.String("problem_id", problem.ID.String()),
		zap.Int("test_cases", len(problem.TestCases)),
	)

	return problem, nil
}

// GetProblem returns a problem redacted for the viewer: hidden test cases
// are visible only to the owning contest's creator
func (s *ProblemService) GetProblem(ctx context.Context, problemID, viewerID uuid.UUID) (*domain.DsaProblemView, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.GetProblem")
	defer span.End()

	span.SetAttributes(attribute.String("problem.id", problemID.String()))

	problem, err := s.problemRepo.FindByIDWithContest(problemID)
	if err != nil {
		return nil, err
	}

	view := problem.View(problem.Contest.IsOwnedBy(viewerID))
	return &view, nil
}

// SubmitSolution checks submission eligibility and hands the code with the
// problem's full test case set to the judge. Creators cannot submit to
// problems in their own contests, and the contest must be active.
func (s *ProblemService) SubmitSolution(ctx context.Context, problemID, userID uuid.UUID, req *domain.SubmitDsaRequest) ([]domain.TestCaseVerdict, error) {
	ctx, span := s.tracer.Start(ctx, "ProblemService.SubmitSolution")
	defer span.End()

	span.SetAttributes(
		attribute.String("problem.id", problemID.String()),
		attribute.String("user.id", userID.String()),
		attribute.String("submission.language", req.Language),
	)

	problem, err := s.problemRepo.FindByIDWithContest(problemID)
	if err != nil {
		return nil, err
	}

	if problem.Contest.IsOwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	if !problem.Contest.IsActive(s.now()) {
		return nil, domain.ErrContestNotActive
	}

	verdicts, err := s.judge.Execute(ctx, req.Code, req.Language, problem.TestCases)
	if err != nil {
		s.logger.Warn("Judge execution failed",
			zap.String("problem_id", problem.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return verdicts, nil
}
