package service

import (
	"encoding/json"
	"errors"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo          *repository.QuestionRepository
	ProfessorRepo *repository.ProfessorRepository
}

func NewQuestionService(repo *repository.QuestionRepository, professorRepo *repository.ProfessorRepository) *QuestionService {
	return &QuestionService{Repo: repo, ProfessorRepo: professorRepo}
}

type QuestionReq struct {
	Text                 string   `json:"text" binding:"required"`
	Alternatives         []string `json:"alternatives" binding:"required"`
	CorrectAnswer        *int     `json:"correctAnswer" binding:"required"`
	EducationalIndicator string   `json:"educationalIndicator" binding:"required"`
	IsActive             *bool    `json:"isActive"`
	ProfessorID          uint     `json:"professorId" binding:"required"`
}

func validateQuestionReq(req QuestionReq) ([]string, error) {
	if len(req.Alternatives) != util.AlternativesPerQuestion {
		return nil, util.NewValidationError("a question requires exactly 4 alternatives")
	}
	alts := make([]string, 0, len(req.Alternatives))
	for _, a := range req.Alternatives {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, util.NewValidationError("alternatives must not be empty")
		}
		alts = append(alts, a)
	}
	if req.CorrectAnswer == nil || *req.CorrectAnswer < 0 || *req.CorrectAnswer > 3 {
		return nil, util.NewValidationError("correctAnswer must be between 0 and 3")
	}
	return alts, nil
}

func (s *QuestionService) Create(req QuestionReq) (*model.Question, error) {
	alts, err := validateQuestionReq(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.ProfessorRepo.FindByID(req.ProfessorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfessorNotFound
		}
		return nil, err
	}

	raw, err := json.Marshal(alts)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		Text:                 strings.TrimSpace(req.Text),
		Alternatives:         raw,
		CorrectAnswer:        *req.CorrectAnswer,
		EducationalIndicator: strings.TrimSpace(req.EducationalIndicator),
		IsActive:             true,
		ProfessorID:          req.ProfessorID,
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req QuestionReq) (*model.Question, error) {
	q, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	alts, err := validateQuestionReq(req)
	if err != nil {
		return nil, err
	}

	if req.ProfessorID != q.ProfessorID {
		if _, err := s.ProfessorRepo.FindByID(req.ProfessorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrProfessorNotFound
			}
			return nil, err
		}
	}

	raw, err := json.Marshal(alts)
	if err != nil {
		return nil, err
	}

	q.Text = strings.TrimSpace(req.Text)
	q.Alternatives = raw
	q.CorrectAnswer = *req.CorrectAnswer
	q.EducationalIndicator = strings.TrimSpace(req.EducationalIndicator)
	q.ProfessorID = req.ProfessorID
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *QuestionService) List(filter repository.QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(filter, page, limit)
}
