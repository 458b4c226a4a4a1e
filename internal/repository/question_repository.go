package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionFilter composes the optional search criteria into a single
// conjunctive query. Fields left at their zero value (nil for the pointer)
// are not applied. Values are always bound as parameters.
type QuestionFilter struct {
	Text        string
	Indicator   string
	ProfessorID uint
	IsActive    *bool
}

func (f QuestionFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Text != "" {
		q = q.Where("text LIKE ?", "%"+f.Text+"%")
	}
	if f.Indicator != "" {
		q = q.Where("educational_indicator = ?", f.Indicator)
	}
	if f.ProfessorID != 0 {
		q = q.Where("professor_id = ?", f.ProfessorID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}
	return q
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.Preload("Professor").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) List(filter QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	var total int64
	if err := filter.apply(r.DB.Model(&model.Question{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qs []model.Question
	offset := (page - 1) * limit
	err := filter.apply(r.DB.Preload("Professor")).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) CountByProfessor(professorID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("professor_id = ?", professorID).Count(&count).Error
	return count, err
}
