package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/contesthub/backend/internal/domain"
)

type problemFixture struct {
	svc      *ProblemService
	problems *memProblemRepo
	contests *memContestRepo
	judge    *recordingJudge
}

func newProblemFixture(at time.Time) *problemFixture {
	problems := newMemProblemRepo()
	contests := newMemContestRepo()
	judge := &recordingJudge{}
	svc := NewProblemService(problems, contests, judge, otel.Tracer("test"), zap.NewNop())
	svc.now = func() time.Time { return at }
	return &problemFixture{svc: svc, problems: problems, contests: contests, judge: judge}
}

func TestAddProblem(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	creatorID := uuid.New()

	seedContest := func(f *problemFixture) *domain.Contest {
		contest := &domain.Contest{
			Title:     "Round",
			StartTime: start,
			EndTime:   end,
			CreatorID: creatorID,
		}
		if err := f.contests.Create(contest); err != nil {
			t.Fatalf("seed contest: %v", err)
		}
		return contest
	}

	req := &domain.CreateDsaProblemRequest{
		Title:       "Two Sum",
		Description: "Find two numbers that add up to target",
		Tags:        []string{"arrays"},
		Points:      100,
		TimeLimit:   2000,
		MemoryLimit: 256,
		TestCases: []domain.TestCaseRequest{
			{Input: "1 2", ExpectedOutput: "3"},
			{Input: "4 5", ExpectedOutput: "9", IsHidden: true},
		},
	}

	t.Run("contest not found", func(t *testing.T) {
		f := newProblemFixture(start.Add(-time.Hour))
		seedContest(f)
		_, err := f.svc.AddProblem(context.Background(), uuid.New(), creatorID, req)
		if !errors.Is(err, domain.ErrContestNotFound) {
			t.Fatalf("err = %v, want ErrContestNotFound", err)
		}
	})

	t.Run("non-creator forbidden", func(t *testing.T) {
		f := newProblemFixture(start.Add(-time.Hour))
		contest := seedContest(f)
		_, err := f.svc.AddProblem(context.Background(), contest.ID, uuid.New(), req)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("rejected while contest is active", func(t *testing.T) {
		f := newProblemFixture(start.Add(time.Minute))
		contest := seedContest(f)
		_, err := f.svc.AddProblem(context.Background(), contest.ID, creatorID, req)
		if !errors.Is(err, domain.ErrContestActive) {
			t.Fatalf("err = %v, want ErrContestActive", err)
		}
		if len(f.problems.problems) != 0 {
			t.Fatal("problem must not be persisted while the contest is active")
		}
	})

	t.Run("allowed before the window", func(t *testing.T) {
		f := newProblemFixture(start.Add(-time.Hour))
		contest := seedContest(f)
		problem, err := f.svc.AddProblem(context.Background(), contest.ID, creatorID, req)
		if err != nil {
			t.Fatalf("AddProblem: %v", err)
		}
		if problem.ContestID != contest.ID {
			t.Fatalf("problem contest id = %s, want %s", problem.ContestID, contest.ID)
		}
		if len(problem.TestCases) != 2 {
			t.Fatalf("test cases = %d, want 2", len(problem.TestCases))
		}
		for _, tc := range problem.TestCases {
			if tc.ProblemID != problem.ID {
				t.Fatal("test cases must be linked to the created problem")
			}
		}
	})

	t.Run("allowed after the window", func(t *testing.T) {
		f := newProblemFixture(end.Add(time.Hour))
		contest := seedContest(f)
		if _, err := f.svc.AddProblem(context.Background(), contest.ID, creatorID, req); err != nil {
			t.Fatalf("AddProblem after window: %v", err)
		}
	})
}

func TestGetProblemRedaction(t *testing.T) {
	creatorID := uuid.New()
	f := newProblemFixture(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	problem := &domain.DsaProblem{
		ContestID: uuid.New(),
		Title:     "Two Sum",
		Contest:   domain.Contest{CreatorID: creatorID},
		TestCases: []domain.TestCase{
			{ID: uuid.New(), Input: "1 2", ExpectedOutput: "3"},
			{ID: uuid.New(), Input: "4 5", ExpectedOutput: "9", IsHidden: true},
		},
	}
	if err := f.problems.Create(problem); err != nil {
		t.Fatalf("seed problem: %v", err)
	}

	creatorView, err := f.svc.GetProblem(context.Background(), problem.ID, creatorID)
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if len(creatorView.TestCases) != 2 {
		t.Fatalf("creator view test cases = %d, want 2", len(creatorView.TestCases))
	}

	contesteeView, err := f.svc.GetProblem(context.Background(), problem.ID, uuid.New())
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if len(contesteeView.TestCases) != 1 {
		t.Fatalf("contestee view test cases = %d, want 1", len(contesteeView.TestCases))
	}

	if _, err := f.svc.GetProblem(context.Background(), uuid.New(), creatorID); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Fatalf("missing problem err = %v, want ErrProblemNotFound", err)
	}
}

func TestSubmitSolution(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	creatorID := uuid.New()

	seedProblem := func(f *problemFixture) *domain.DsaProblem {
		problem := &domain.DsaProblem{
			ContestID: uuid.New(),
			Title:     "Two Sum",
			Contest: domain.Contest{
				StartTime: start,
				EndTime:   end,
				CreatorID: creatorID,
			},
			TestCases: []domain.TestCase{
				{ID: uuid.New(), Input: "1 2", ExpectedOutput: "3"},
				{ID: uuid.New(), Input: "4 5", ExpectedOutput: "9", IsHidden: true},
			},
		}
		if err := f.problems.Create(problem); err != nil {
			t.Fatalf("seed problem: %v", err)
		}
		return problem
	}

	req := &domain.SubmitDsaRequest{Code: "print(input())", Language: "python"}

	t.Run("creator cannot submit to own problem", func(t *testing.T) {
		f := newProblemFixture(start.Add(time.Minute))
		problem := seedProblem(f)
		_, err := f.svc.SubmitSolution(context.Background(), problem.ID, creatorID, req)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("rejected outside the window", func(t *testing.T) {
		f := newProblemFixture(end.Add(time.Second))
		problem := seedProblem(f)
		_, err := f.svc.SubmitSolution(context.Background(), problem.ID, uuid.New(), req)
		if !errors.Is(err, domain.ErrContestNotActive) {
			t.Fatalf("err = %v, want ErrContestNotActive", err)
		}
	})

	t.Run("judge receives the full test case set", func(t *testing.T) {
		f := newProblemFixture(start.Add(time.Minute))
		problem := seedProblem(f)
		f.judge.verdicts = []domain.TestCaseVerdict{
			{TestCaseID: problem.TestCases[0].ID, Status: domain.VerdictPassed, RuntimeMS: 12},
			{TestCaseID: problem.TestCases[1].ID, Status: domain.VerdictFailed, RuntimeMS: 15},
		}

		verdicts, err := f.svc.SubmitSolution(context.Background(), problem.ID, uuid.New(), req)
		if err != nil {
			t.Fatalf("SubmitSolution: %v", err)
		}
		if len(verdicts) != 2 {
			t.Fatalf("verdicts = %d, want 2", len(verdicts))
		}
		if len(f.judge.testCases) != 2 {
			t.Fatalf("judge saw %d test cases, want all 2", len(f.judge.testCases))
		}
		if f.judge.code != req.Code || f.judge.language != req.Language {
			t.Fatal("judge must receive the submitted code and language")
		}
	})

	t.Run("judge unavailable", func(t *testing.T) {
		f := newProblemFixture(start.Add(time.Minute))
		problem := seedProblem(f)
		f.judge.err = domain.ErrJudgeUnavailable
		_, err := f.svc.SubmitSolution(context.Background(), problem.ID, uuid.New(), req)
		if !errors.Is(err, domain.ErrJudgeUnavailable) {
			t.Fatalf("err = %v, want ErrJudgeUnavailable", err)
		}
	})

	t.Run("problem not found", func(t *testing.T) {
		f := newProblemFixture(start.Add(time.Minute))
		seedProblem(f)
		_, err := f.svc.SubmitSolution(context.Background(), uuid.New(), uuid.New(), req)
		if !errors.Is(err, domain.ErrProblemNotFound) {
			t.Fatalf("err = %v, want ErrProblemNotFound", err)
		}
	})
}
