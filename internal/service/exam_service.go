package service

import (
	"errors"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type ExamService struct {
	Repo         *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
}

func NewExamService(repo *repository.ExamRepository, questionRepo *repository.QuestionRepository) *ExamService {
	return &ExamService{Repo: repo, QuestionRepo: questionRepo}
}

type ExamReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TimeLimit   int    `json:"timeLimit"`
	// Question ids in presentation order.
	QuestionIDs []uint `json:"questionIds" binding:"required"`
	Activate    bool   `json:"activate"`
}

func (s *ExamService) Create(req ExamReq) (*model.Exam, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title is required")
	}
	if len(req.QuestionIDs) == 0 {
		return nil, util.NewValidationError("an exam requires at least one question")
	}
	if req.TimeLimit < 0 {
		return nil, util.NewValidationError("timeLimit must not be negative")
	}

	links := make([]model.ExamQuestion, 0, len(req.QuestionIDs))
	seen := make(map[uint]bool, len(req.QuestionIDs))
	for i, qid := range req.QuestionIDs {
		if seen[qid] {
			return nil, util.NewValidationError("duplicate question in exam")
		}
		seen[qid] = true
		if _, err := s.QuestionRepo.FindByID(qid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrQuestionNotFound
			}
			return nil, err
		}
		links = append(links, model.ExamQuestion{QuestionID: qid, Position: i})
	}

	status := model.ExamDraft
	if req.Activate {
		status = model.ExamActive
	}

	exam := &model.Exam{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Status:         status,
		TimeLimit:      req.TimeLimit,
		TotalQuestions: len(links),
	}

	if err := s.Repo.CreateWithQuestions(exam, links); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Get(id uint) (*model.Exam, []model.ExamQuestion, error) {
	exam, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrExamNotFound
		}
		return nil, nil, err
	}

	links, err := s.Repo.ListQuestions(id)
	if err != nil {
		return nil, nil, err
	}
	return exam, links, nil
}

func (s *ExamService) UpdateStatus(id uint, status model.ExamStatus) (*model.Exam, error) {
	switch status {
	case model.ExamDraft, model.ExamActive, model.ExamArchived:
	default:
		return nil, util.NewValidationError("invalid exam status")
	}

	exam, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	exam.Status = status
	if err := s.Repo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) List(status model.ExamStatus, page, limit int) ([]model.Exam, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(status, page, limit)
}

func (s *ExamService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}
	return s.Repo.Delete(id)
}
