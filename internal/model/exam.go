package model

type ExamStatus string

const (
	ExamDraft    ExamStatus = "draft"
	ExamActive   ExamStatus = "active"
	ExamArchived ExamStatus = "archived"
)

// swagger:model Exam
type Exam struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      ExamStatus `gorm:"size:20;default:'draft'" json:"status"`
	TimeLimit   int        `gorm:"default:0" json:"timeLimit"` // Minutes, 0 = unlimited
	// Fixed at creation so historical results stay stable even if the
	// question set is edited later.
	TotalQuestions int `gorm:"default:0" json:"totalQuestions"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamQuestion links a question into an exam at a given position.
type ExamQuestion struct {
	BaseModel
	ExamID     uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_exam_question" json:"examId"`
	QuestionID uint      `gorm:"index;type:bigint unsigned;uniqueIndex:idx_exam_question" json:"questionId"`
	Position   int       `gorm:"default:0" json:"position"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}
