package entity

import (
	"math"
	"time"
)

// Score представляет одну попытку пользователя пройти тест.
// Повторные попытки разрешены: ограничений уникальности нет.
type Score struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	QuizID             uint      `gorm:"not null;index" json:"quiz_id"`
	UserID             uint      `gorm:"not null;index" json:"user_id"`
	TotalScored        int       `gorm:"not null;default:0" json:"total_scored"`
	TotalQuestions     int       `gorm:"not null;default:0" json:"total_questions"`
	TimeStampOfAttempt time.Time `gorm:"not null;index" json:"time_stamp_of_attempt"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "scores"
}

// Percentage возвращает процент правильных ответов, округленный до целого
func (s *Score) Percentage() int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalScored) / float64(s.TotalQuestions) * 100))
}
