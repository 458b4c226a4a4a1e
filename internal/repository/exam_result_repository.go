package repository

import (
	"exam_admin_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ExamResultRepository struct {
	DB *gorm.DB
}

func NewExamResultRepository(db *gorm.DB) *ExamResultRepository {
	return &ExamResultRepository{DB: db}
}

func (r *ExamResultRepository) Create(result *model.ExamResult) error {
	return r.DB.Create(result).Error
}

func (r *ExamResultRepository) FindByID(id string) (*model.ExamResult, error) {
	var result model.ExamResult
	if err := r.DB.First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ExamResultRepository) FindByUserExamStatus(userID, examID uint, status model.ResultStatus) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("user_id = ? AND exam_id = ? AND status = ?", userID, examID, status).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Complete marks the result submitted with its final score. The status
// predicate makes the transition atomic: a second submit affects zero rows.
func (r *ExamResultRepository) Complete(id string, totalScore, percentage int) (bool, error) {
	now := time.Now()
	res := r.DB.Model(&model.ExamResult{}).
		Where("id = ? AND status = ?", id, model.ResultInProgress).
		Updates(map[string]interface{}{
			"status":       model.ResultCompleted,
			"completed_at": &now,
			"total_score":  totalScore,
			"percentage":   percentage,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ExamResultRepository) CreateAnswer(answer *model.ExamAnswer) error {
	return r.DB.Create(answer).Error
}

// GetAnswers loads every answer of an attempt with the question and its
// professor, which is all the report generator needs.
func (r *ExamResultRepository) GetAnswers(resultID string) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	err := r.DB.Where("exam_result_id = ?", resultID).
		Preload("Question").
		Preload("Question.Professor").
		Order("created_at asc").
		Find(&answers).Error
	return answers, err
}

func (r *ExamResultRepository) ListCompletedByUser(userID uint, limit int) ([]model.ExamResult, error) {
	var results []model.ExamResult
	query := r.DB.Where("user_id = ? AND status = ?", userID, model.ResultCompleted).
		Preload("Exam").
		Order("completed_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&results).Error
	return results, err
}

// LatestCompletedByUser returns the single most recent completed attempt.
func (r *ExamResultRepository) LatestCompletedByUser(userID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.ResultCompleted).
		Preload("Exam").
		Order("completed_at desc").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
