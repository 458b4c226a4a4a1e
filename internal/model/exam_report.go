package model

import "encoding/json"

// ExamReport is the per-attempt analysis. One row per completed result,
// guaranteed by the unique index on exam_result_id.
// swagger:model ExamReport
type ExamReport struct {
	UUIDBase
	ExamResultID      string          `gorm:"type:varchar(36);uniqueIndex" json:"examResultId"`
	ContentBreakdown  json.RawMessage `gorm:"type:json" json:"contentBreakdown"` // JSON: {indicator: pct, ..., "subjects": {subject: pct}}
	Strengths         json.RawMessage `gorm:"type:json" json:"strengths"`        // JSON: []string
	Weaknesses        json.RawMessage `gorm:"type:json" json:"weaknesses"`       // JSON: []string
	Recommendations   json.RawMessage `gorm:"type:json" json:"recommendations"`  // JSON: []string
	AssignedProfessor string          `gorm:"size:100" json:"assignedProfessor,omitempty"`
	ProfessorSubject  string          `gorm:"size:100" json:"professorSubject,omitempty"`
}

func (ExamReport) TableName() string {
	return "exam_reports"
}
