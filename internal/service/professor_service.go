package service

import (
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ProfessorService struct {
	Repo         *repository.ProfessorRepository
	QuestionRepo *repository.QuestionRepository
}

func NewProfessorService(repo *repository.ProfessorRepository, questionRepo *repository.QuestionRepository) *ProfessorService {
	return &ProfessorService{Repo: repo, QuestionRepo: questionRepo}
}

type ProfessorReq struct {
	Name     string `json:"name" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"isActive"`
}

func (s *ProfessorService) Create(req ProfessorReq) (*model.Professor, error) {
	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	if name == "" || subject == "" {
		return nil, util.NewValidationError("name and subject are required")
	}

	if _, err := s.Repo.FindByNameAndSubject(name, subject); err == nil {
		return nil, util.ErrProfessorExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Professor{
		Name:     name,
		Subject:  subject,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrProfessorExists
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfessorService) Get(id uint) (*model.Professor, error) {
	p, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfessorNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *ProfessorService) Update(id uint, req ProfessorReq) (*model.Professor, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	subject := strings.TrimSpace(req.Subject)
	if name == "" || subject == "" {
		return nil, util.NewValidationError("name and subject are required")
	}

	if name != p.Name || subject != p.Subject {
		if existing, err := s.Repo.FindByNameAndSubject(name, subject); err == nil && existing.ID != id {
			return nil, util.ErrProfessorExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	p.Name = name
	p.Subject = subject
	p.Email = req.Email
	p.Phone = req.Phone
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrProfessorExists
		}
		return nil, err
	}
	return p, nil
}

// Delete refuses to remove a professor that any question still references.
func (s *ProfessorService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	count, err := s.QuestionRepo.CountByProfessor(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrProfessorReferenced
	}

	return s.Repo.Delete(id)
}

func (s *ProfessorService) List(page, limit int) ([]model.Professor, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(page, limit)
}
