package models

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// User rows are managed by the platform's identity service; the pipeline only
// joins against them for display names.
type User struct {
	ID   uint     `json:"id" gorm:"primaryKey"`
	Name string   `json:"name" gorm:"not null;size:200"`
	Role UserRole `json:"role" gorm:"not null;size:16;index"`
}

func (User) TableName() string {
	return "users"
}
