package model

// Professor is a referral target for report recommendations, not a login account.
// swagger:model Professor
type Professor struct {
	BaseModel
	Name     string `gorm:"size:100;not null;uniqueIndex:idx_professor_name_subject" json:"name"`
	Subject  string `gorm:"size:100;not null;uniqueIndex:idx_professor_name_subject" json:"subject"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Professor) TableName() string {
	return "professors"
}
