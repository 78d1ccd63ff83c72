package entity

import (
	"time"
)

// MinCorrectOption и MaxCorrectOption задают допустимый диапазон correct_option
const (
	MinCorrectOption = 1
	MaxCorrectOption = 4
)

// Question представляет вопрос теста с четырьмя вариантами ответа.
// CorrectOption — номер правильного варианта (1-4).
type Question struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	QuizID            uint   `gorm:"not null;index" json:"quiz_id"`
	QuestionStatement string `gorm:"size:1000;not null" json:"question_statement"`
	Option1           string `gorm:"size:255;not null" json:"option1"`
	Option2           string `gorm:"size:255;not null" json:"option2"`
	Option3           string `gorm:"size:255;not null" json:"option3"`
	Option4           string `gorm:"size:255;not null" json:"option4"`
	CorrectOption     int    `gorm:"not null" json:"-"` // Скрыто от клиента

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedOption int) bool {
	return selectedOption == q.CorrectOption
}

// Options возвращает варианты ответа в порядке нумерации
func (q *Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// IsValidCorrectOption проверяет, что номер варианта находится в диапазоне 1-4
func IsValidCorrectOption(option int) bool {
	return option >= MinCorrectOption && option <= MaxCorrectOption
}
