package model

import "time"

type ResultStatus string

const (
	ResultInProgress ResultStatus = "in_progress"
	ResultCompleted  ResultStatus = "completed"
)

// ExamResult is one attempt at one exam by one student.
//
// The (user_id, exam_id, status) unique index is what enforces "at most one
// in-progress attempt and at most one completed attempt per pair" even under
// concurrent starts; a losing insert comes back as a duplicate-key error.
// swagger:model ExamResult
type ExamResult struct {
	UUIDBase
	UserID      uint         `gorm:"index;type:bigint unsigned;uniqueIndex:idx_result_user_exam_status" json:"userId"`
	ExamID      uint         `gorm:"index;type:bigint unsigned;uniqueIndex:idx_result_user_exam_status" json:"examId"`
	Status      ResultStatus `gorm:"size:20;default:'in_progress';uniqueIndex:idx_result_user_exam_status" json:"status"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	// Copied from the exam at start time, deliberately never recomputed.
	TotalQuestions int `gorm:"default:0" json:"totalQuestions"`
	TotalScore     int `gorm:"default:0" json:"totalScore"`
	Percentage     int `gorm:"default:0" json:"percentage"`
	Exam           *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	User           *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// swagger:model ExamAnswer
type ExamAnswer struct {
	UUIDBase
	ExamResultID   string    `gorm:"index;type:varchar(36);uniqueIndex:idx_answer_result_question" json:"examResultId"`
	QuestionID     uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_answer_result_question" json:"questionId"`
	SelectedAnswer int       `gorm:"not null" json:"selectedAnswer"`
	IsCorrect      bool      `gorm:"default:false" json:"isCorrect"`
	TimeSpent      int       `gorm:"default:0" json:"timeSpent"` // Seconds, 0 when not reported
	Question       *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
