package models

import (
	"time"
)

// Lesson and Assignment are owned by the enclosing platform; the grading
// pipeline only reads them to resolve questions and the lesson skill tag.

type Lesson struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"not null;size:200"`
	Subject    string `json:"subject" gorm:"size:100"`
	GradeBand  string `json:"grade_band" gorm:"size:32"`
	SkillTag   string `json:"skill_tag" gorm:"size:64;index"`
	Difficulty int    `json:"difficulty" gorm:"default:1"`

	Questions []Question `json:"questions" gorm:"foreignKey:LessonID"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Assignment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	ClassID  uint      `json:"class_id" gorm:"not null;index"`
	LessonID uint      `json:"lesson_id" gorm:"not null;index"`
	Type     string    `json:"type" gorm:"size:32;default:quiz"`
	DueAt    time.Time `json:"due_at"`

	Lesson Lesson `json:"lesson" gorm:"foreignKey:LessonID"`
}

func (Assignment) TableName() string {
	return "assignments"
}
