package repository

import (
	"exam_admin_backend/internal/model"

	"gorm.io/gorm"
)

type ExamReportRepository struct {
	DB *gorm.DB
}

func NewExamReportRepository(db *gorm.DB) *ExamReportRepository {
	return &ExamReportRepository{DB: db}
}

func (r *ExamReportRepository) Create(report *model.ExamReport) error {
	return r.DB.Create(report).Error
}

func (r *ExamReportRepository) FindByResultID(resultID string) (*model.ExamReport, error) {
	var report model.ExamReport
	err := r.DB.Where("exam_result_id = ?", resultID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ExamReportRepository) ListByResultIDs(resultIDs []string) ([]model.ExamReport, error) {
	if len(resultIDs) == 0 {
		return nil, nil
	}
	var reports []model.ExamReport
	err := r.DB.Where("exam_result_id IN ?", resultIDs).Find(&reports).Error
	return reports, err
}

func (r *ExamReportRepository) ListAll() ([]model.ExamReport, error) {
	var reports []model.ExamReport
	err := r.DB.Find(&reports).Error
	return reports, err
}
