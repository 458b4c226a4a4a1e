package model

import "encoding/json"

// swagger:model Question
type Question struct {
	BaseModel
	Text                 string          `gorm:"type:text;not null" json:"text"`
	Alternatives         json.RawMessage `gorm:"type:json" json:"alternatives"` // JSON: exactly 4 strings
	CorrectAnswer        int             `gorm:"not null" json:"correctAnswer"` // 0-3 index into alternatives
	EducationalIndicator string          `gorm:"size:255;index" json:"educationalIndicator"`
	IsActive             bool            `gorm:"default:true" json:"isActive"`
	ProfessorID          uint            `gorm:"index;type:bigint unsigned" json:"professorId"`
	Professor            *Professor      `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// DecodeAlternatives unpacks the stored JSON alternative texts.
func (q *Question) DecodeAlternatives() ([]string, error) {
	var alts []string
	if len(q.Alternatives) == 0 {
		return alts, nil
	}
	err := json.Unmarshal(q.Alternatives, &alts)
	return alts, err
}
