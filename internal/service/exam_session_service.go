package service

import (
	"errors"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// ExamSessionService owns the attempt lifecycle: start, resume, answer,
// submit. All state lives in the store; every call re-reads it, so
// concurrent requests only meet at the database's unique indexes and
// conditional updates.
type ExamSessionService struct {
	ResultRepo   *repository.ExamResultRepository
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
}

func NewExamSessionService(
	resultRepo *repository.ExamResultRepository,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
) *ExamSessionService {
	return &ExamSessionService{
		ResultRepo:   resultRepo,
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
	}
}

// SessionQuestion is a question as shown to the student: no correct answer.
type SessionQuestion struct {
	ID                   uint     `json:"id"`
	Text                 string   `json:"text"`
	Alternatives         []string `json:"alternatives"`
	EducationalIndicator string   `json:"educationalIndicator"`
	Position             int      `json:"position"`
}

type SessionResponse struct {
	Result    *model.ExamResult `json:"result"`
	Exam      *model.Exam       `json:"exam"`
	Questions []SessionQuestion `json:"questions"`
}

type SessionSnapshot struct {
	Result           *model.ExamResult `json:"result"`
	Exam             *model.Exam       `json:"exam"`
	Questions        []SessionQuestion `json:"questions"`
	ElapsedSeconds   int               `json:"elapsedSeconds"`
	RemainingSeconds *int              `json:"remainingSeconds,omitempty"` // nil when the exam has no time limit
	Answers          map[uint]int      `json:"answers"`                    // questionId -> selected alternative
}

func (s *ExamSessionService) sessionQuestions(examID uint) ([]SessionQuestion, error) {
	links, err := s.ExamRepo.ListQuestions(examID)
	if err != nil {
		return nil, err
	}

	qs := make([]SessionQuestion, 0, len(links))
	for _, link := range links {
		if link.Question == nil {
			continue
		}
		alts, err := link.Question.DecodeAlternatives()
		if err != nil {
			return nil, err
		}
		qs = append(qs, SessionQuestion{
			ID:                   link.Question.ID,
			Text:                 link.Question.Text,
			Alternatives:         alts,
			EducationalIndicator: link.Question.EducationalIndicator,
			Position:             link.Position,
		})
	}
	return qs, nil
}

// Start begins a new attempt, or resumes the in-progress one if the student
// already has it. A completed attempt blocks any further start.
func (s *ExamSessionService) Start(examID, userID uint) (*SessionResponse, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if exam.Status != model.ExamActive {
		return nil, util.ErrExamNotActive
	}

	if _, err := s.ResultRepo.FindByUserExamStatus(userID, examID, model.ResultCompleted); err == nil {
		return nil, util.ErrExamAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	result, err := s.ResultRepo.FindByUserExamStatus(userID, examID, model.ResultInProgress)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if result == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		result = &model.ExamResult{
			UserID:         userID,
			ExamID:         examID,
			Status:         model.ResultInProgress,
			StartedAt:      time.Now(),
			TotalQuestions: exam.TotalQuestions,
		}
		if err := s.ResultRepo.Create(result); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
			// Lost a concurrent start. If the winner is still in progress we
			// resume it; if it already completed, starting is a conflict.
			result, err = s.ResultRepo.FindByUserExamStatus(userID, examID, model.ResultInProgress)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, util.ErrExamAlreadyCompleted
				}
				return nil, err
			}
		}
	}

	questions, err := s.sessionQuestions(examID)
	if err != nil {
		return nil, err
	}

	return &SessionResponse{Result: result, Exam: exam, Questions: questions}, nil
}

// Get returns the current in-progress attempt with the answers recorded so
// far and the time budget.
func (s *ExamSessionService) Get(examID, userID uint) (*SessionSnapshot, error) {
	result, err := s.ResultRepo.FindByUserExamStatus(userID, examID, model.ResultInProgress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	questions, err := s.sessionQuestions(examID)
	if err != nil {
		return nil, err
	}

	answers, err := s.ResultRepo.GetAnswers(result.ID)
	if err != nil {
		return nil, err
	}
	selected := make(map[uint]int, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedAnswer
	}

	elapsed := int(time.Since(result.StartedAt).Seconds())
	var remaining *int
	if exam.TimeLimit > 0 {
		r := exam.TimeLimit*60 - elapsed
		if r < 0 {
			r = 0
		}
		remaining = &r
	}

	return &SessionSnapshot{
		Result:           result,
		Exam:             exam,
		Questions:        questions,
		ElapsedSeconds:   elapsed,
		RemainingSeconds: remaining,
		Answers:          selected,
	}, nil
}

// Answer records one answer for an in-progress attempt. Correctness is
// fixed at answer time; the aggregate score is only computed at submit.
func (s *ExamSessionService) Answer(resultID string, userID uint, questionID uint, selectedAnswer, timeSpent int) (*model.ExamAnswer, error) {
	if selectedAnswer < 0 || selectedAnswer > 3 {
		return nil, util.NewValidationError("selectedAnswer must be between 0 and 3")
	}

	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if result.UserID != userID || result.Status != model.ResultInProgress {
		return nil, util.ErrSessionNotFound
	}

	question, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	answer := &model.ExamAnswer{
		ExamResultID:   result.ID,
		QuestionID:     question.ID,
		SelectedAnswer: selectedAnswer,
		IsCorrect:      selectedAnswer == question.CorrectAnswer,
		TimeSpent:      timeSpent,
	}

	if err := s.ResultRepo.CreateAnswer(answer); err != nil {
		// The (result, question) unique index is the arbiter for duplicate
		// answers, including racing ones.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAlreadyAnswered
		}
		return nil, err
	}
	return answer, nil
}

// Submit scores the attempt and completes it. The status-guarded update
// makes the transition exactly-once: a repeat submit affects no rows and fails.
func (s *ExamSessionService) Submit(resultID string, userID uint) (*model.ExamResult, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if result.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	if result.Status != model.ResultInProgress {
		return nil, util.ErrAlreadySubmitted
	}

	answers, err := s.ResultRepo.GetAnswers(result.ID)
	if err != nil {
		return nil, err
	}

	correct := CorrectCount(answers)
	percentage := Percentage(correct, result.TotalQuestions)

	done, err := s.ResultRepo.Complete(result.ID, correct, percentage)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, util.ErrAlreadySubmitted
	}

	return s.ResultRepo.FindByID(result.ID)
}

// LatestResult is the globally most recent completed attempt of the student.
func (s *ExamSessionService) LatestResult(userID uint) (*model.ExamResult, error) {
	result, err := s.ResultRepo.LatestCompletedByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	return result, nil
}

// MyResults lists the student's completed attempts, newest first.
func (s *ExamSessionService) MyResults(userID uint, limit int) ([]model.ExamResult, error) {
	return s.ResultRepo.ListCompletedByUser(userID, limit)
}
