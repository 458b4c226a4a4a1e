package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// CreateWithQuestions inserts the exam and its question links in one
// transaction so TotalQuestions always matches the created links.
func (r *ExamRepository) CreateWithQuestions(exam *model.Exam, links []model.ExamQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exam).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].ExamID = exam.ID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.DB.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}

func (r *ExamRepository) List(status model.ExamStatus, page, limit int) ([]model.Exam, int64, error) {
	query := r.DB.Model(&model.Exam{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exams []model.Exam
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&exams).Error
	return exams, total, err
}

// ListQuestions returns the exam's questions in their configured order.
func (r *ExamRepository) ListQuestions(examID uint) ([]model.ExamQuestion, error) {
	var links []model.ExamQuestion
	err := r.DB.Where("exam_id = ?", examID).
		Preload("Question").
		Preload("Question.Professor").
		Order("position asc, id asc").
		Find(&links).Error
	return links, err
}
