package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

// StatisticsRepository holds the cross-entity aggregate queries the admin
// dashboard and student stats are built from.
type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) CountCompletedResults() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("status = ?", model.ResultCompleted).
		Count(&count).Error
	return count, err
}

func (r *StatisticsRepository) AverageCompletedPercentage() (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.ExamResult{}).
		Where("status = ?", model.ResultCompleted).
		Select("AVG(percentage)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// ScoreDistribution buckets completed percentages into the six fixed bands.
// Bands with no results are still present with a zero count.
func (r *StatisticsRepository) ScoreDistribution() ([]model.ScoreBand, error) {
	type row struct {
		Band  string
		Count int64
	}

	var rows []row
	err := r.DB.Model(&model.ExamResult{}).
		Select(`CASE
			WHEN percentage >= 90 THEN '90-100'
			WHEN percentage >= 80 THEN '80-89'
			WHEN percentage >= 70 THEN '70-79'
			WHEN percentage >= 60 THEN '60-69'
			WHEN percentage >= 50 THEN '50-59'
			ELSE '0-49'
		END AS band, COUNT(*) AS count`).
		Where("status = ?", model.ResultCompleted).
		Group("band").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Band] = r.Count
	}

	bands := []string{"90-100", "80-89", "70-79", "60-69", "50-59", "0-49"}
	out := make([]model.ScoreBand, 0, len(bands))
	for _, b := range bands {
		out = append(out, model.ScoreBand{Band: b, Count: counts[b]})
	}
	return out, nil
}

// QuestionAnswerCounts aggregates every answer ever given per question.
// The correct rate itself is derived in the service layer.
func (r *StatisticsRepository) QuestionAnswerCounts() ([]model.QuestionDifficulty, error) {
	var rows []model.QuestionDifficulty
	err := r.DB.Table("exam_answers a").
		Select(`q.id AS question_id, q.text AS text,
			COUNT(a.id) AS total_answers,
			SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END) AS correct_answers`).
		Joins("JOIN questions q ON q.id = a.question_id").
		Where("a.deleted_at IS NULL AND q.deleted_at IS NULL").
		Group("q.id, q.text").
		Scan(&rows).Error
	return rows, err
}

func (r *StatisticsRepository) CountExams() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exam{}).Count(&count).Error
	return count, err
}

func (r *StatisticsRepository) CountStudents() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("role = ?", model.Student).Count(&count).Error
	return count, err
}

func (r *StatisticsRepository) CountActiveQuestions() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
