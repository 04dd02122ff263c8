package models

import (
	"time"
)

// Mastery holds one scalar per (student, skill). Each grading event overwrites
// the prior value: latest observed, not a rolling average.
type Mastery struct {
	StudentID   uint      `json:"student_id" gorm:"primaryKey;autoIncrement:false"`
	SkillTag    string    `json:"skill_tag" gorm:"primaryKey;size:64"`
	MasteryPct  int       `json:"mastery_pct" gorm:"not null" validate:"min=0,max=100"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null;autoUpdateTime"`
}

func (Mastery) TableName() string {
	return "mastery"
}
