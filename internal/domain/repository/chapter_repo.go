package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// ChapterRepository определяет методы для работы с главами
type ChapterRepository interface {
	Create(chapter *entity.Chapter) error
	GetByID(id uint) (*entity.Chapter, error)
	// ListWithSubject возвращает все главы с предзагруженным предметом для отображения
	ListWithSubject() ([]entity.Chapter, error)
	ListBySubject(subjectID uint) ([]entity.Chapter, error)
	Update(chapter *entity.Chapter) error
	// Delete удаляет главу вместе с тестами, вопросами и результатами в одной транзакции
	Delete(id uint) error
}
