package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")

	ErrExamNotFound     = errors.New("exam not found")
	ErrExamNotActive    = errors.New("exam is not active")
	ErrQuestionNotFound = errors.New("question not found")

	ErrProfessorNotFound   = errors.New("professor not found")
	ErrProfessorExists     = errors.New("professor with this name and subject already exists")
	ErrProfessorReferenced = errors.New("professor is referenced by existing questions")

	ErrSessionNotFound      = errors.New("no in-progress attempt found")
	ErrExamAlreadyCompleted = errors.New("exam was already completed")
	ErrAlreadyAnswered      = errors.New("question already answered in this attempt")
	ErrAlreadySubmitted     = errors.New("attempt already submitted")

	ErrResultNotFound     = errors.New("result not found")
	ErrResultNotCompleted = errors.New("result is not completed yet")
	ErrReportNotFound     = errors.New("report not found")
	ErrReportExists       = errors.New("report already generated for this result")
)

// ValidationError marks malformed input so the transport layer can answer
// 400 instead of 500.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}
