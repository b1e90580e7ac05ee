package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/contesthub/backend/internal/domain"
)

// In-memory repository implementations for service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memContestRepo struct {
	mu       sync.Mutex
	contests map[uuid.UUID]*domain.Contest
}

func newMemContestRepo() *memContestRepo {
	return &memContestRepo{contests: make(map[uuid.UUID]*domain.Contest)}
}

func (r *memContestRepo) Create(contest *domain.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contest.ID == uuid.Nil {
		contest.ID = uuid.New()
	}
	r.contests[contest.ID] = contest
	return nil
}

func (r *memContestRepo) FindByID(id uuid.UUID) (*domain.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contests[id]; ok {
		return c, nil
	}
	return nil, domain.ErrContestNotFound
}

func (r *memContestRepo) FindByIDWithChildren(id uuid.UUID) (*domain.Contest, error) {
	return r.FindByID(id)
}

type memQuestionRepo struct {
	mu        sync.Mutex
	questions map[uuid.UUID]*domain.McqQuestion
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: make(map[uuid.UUID]*domain.McqQuestion)}
}

func (r *memQuestionRepo) Create(question *domain.McqQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	r.questions[question.ID] = question
	return nil
}

func (r *memQuestionRepo) FindByID(id uuid.UUID) (*domain.McqQuestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.questions[id]; ok {
		return q, nil
	}
	return nil, domain.ErrQuestionNotFound
}

type submissionKey struct {
	userID     uuid.UUID
	questionID uuid.UUID
}

// memSubmissionRepo mirrors the storage-level unique index: Create is
// atomic on the (user, question) pair.
type memSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[submissionKey]*domain.McqSubmission

	// skipExistsCheck makes ExistsByUserAndQuestion lie, to exercise the
	// path where two concurrent submissions both pass the pre-check
	skipExistsCheck bool
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{submissions: make(map[submissionKey]*domain.McqSubmission)}
}

func (r *memSubmissionRepo) Create(submission *domain.McqSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := submissionKey{submission.UserID, submission.QuestionID}
	if _, ok := r.submissions[key]; ok {
		return domain.ErrAlreadySubmitted
	}
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	r.submissions[key] = submission
	return nil
}

func (r *memSubmissionRepo) ExistsByUserAndQuestion(userID, questionID uuid.UUID) (bool, error) {
	if r.skipExistsCheck {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.submissions[submissionKey{userID, questionID}]
	return ok, nil
}

type memProblemRepo struct {
	mu       sync.Mutex
	problems map[uuid.UUID]*domain.DsaProblem
}

func newMemProblemRepo() *memProblemRepo {
	return &memProblemRepo{problems: make(map[uuid.UUID]*domain.DsaProblem)}
}

func (r *memProblemRepo) Create(problem *domain.DsaProblem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if problem.ID == uuid.Nil {
		problem.ID = uuid.New()
	}
	for i := range problem.TestCases {
		problem.TestCases[i].ProblemID = problem.ID
	}
	r.problems[problem.ID] = problem
	return nil
}

func (r *memProblemRepo) FindByID(id uuid.UUID) (*domain.DsaProblem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.problems[id]; ok {
		return p, nil
	}
	return nil, domain.ErrProblemNotFound
}

func (r *memProblemRepo) FindByIDWithContest(id uuid.UUID) (*domain.DsaProblem, error) {
	return r.FindByID(id)
}

// recordingJudge captures what the submission gate hands off
type recordingJudge struct {
	code      string
	language  string
	testCases []domain.TestCase
	verdicts  []domain.TestCaseVerdict
	err       error
}

func (j *recordingJudge) Execute(ctx context.Context, code, language string, testCases []domain.TestCase) ([]domain.TestCaseVerdict, error) {
	j.code = code
	j.language = language
	j.testCases = testCases
	return j.verdicts, j.err
}
