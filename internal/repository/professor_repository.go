package repository

import (
	"exam_admin_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type ProfessorRepository struct {
	DB *gorm.DB
}

func NewProfessorRepository(db *gorm.DB) *ProfessorRepository {
	return &ProfessorRepository{DB: db}
}

func (r *ProfessorRepository) Create(p *model.Professor) error {
	return r.DB.Create(p).Error
}

func (r *ProfessorRepository) FindByID(id uint) (*model.Professor, error) {
	var p model.Professor
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessorRepository) FindByNameAndSubject(name, subject string) (*model.Professor, error) {
	var p model.Professor
	err := r.DB.Where("name = ? AND subject = ?", name, subject).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindBySubjectContains matches active professors whose subject contains the
// given fragment, case-insensitively. Used for report referrals.
func (r *ProfessorRepository) FindBySubjectContains(subject string) (*model.Professor, error) {
	var p model.Professor
	pattern := "%" + strings.ToLower(subject) + "%"
	err := r.DB.Where("is_active = ?", true).
		Where("LOWER(subject) LIKE ?", pattern).
		Order("name asc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessorRepository) Update(p *model.Professor) error {
	return r.DB.Save(p).Error
}

func (r *ProfessorRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Professor{}, id).Error
}

func (r *ProfessorRepository) List(page, limit int) ([]model.Professor, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Professor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ps []model.Professor
	offset := (page - 1) * limit
	err := r.DB.Order("name asc, subject asc").Offset(offset).Limit(limit).Find(&ps).Error
	return ps, total, err
}
