package domain

import "errors"

// Domain errors - these are business logic errors that should be translated
// to appropriate HTTP status codes by the handler layer

var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Contest errors
	ErrContestNotFound  = errors.New("contest not found")
	ErrContestActive    = errors.New("cannot add problems to an active contest")
	ErrContestNotActive = errors.New("contest is not active")

	// Question and problem errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrProblemNotFound  = errors.New("problem not found")

	// Submission errors
	ErrAlreadySubmitted = errors.New("already submitted")
	ErrJudgeUnavailable = errors.New("code execution is not available")

	// General errors
	ErrValidation     = errors.New("validation failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// DomainError wraps an error with additional context
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a caller-facing message
func NewValidationError(message string) error {
	return &DomainError{
		Err:     ErrValidation,
		Message: message,
	}
}
