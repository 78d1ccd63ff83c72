package entity

import (
	"time"
)

// Chapter представляет главу внутри предмета
type Chapter struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500;not null;default:''" json:"description"`
	SubjectID   uint   `gorm:"not null;index" json:"subject_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Quizzes []Quiz   `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Chapter) TableName() string {
	return "chapters"
}
