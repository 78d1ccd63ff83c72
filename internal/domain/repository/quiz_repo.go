package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с тестами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// ListWithChapterAndSubject возвращает все тесты с предзагруженной
	// главой и её предметом для админских списков
	ListWithChapterAndSubject() ([]entity.Quiz, error)
	ListByChapter(chapterID uint) ([]entity.Quiz, error)
	Count() (int64, error)
	Update(quiz *entity.Quiz) error
	// Delete удаляет тест вместе с его вопросами и результатами в одной
	// транзакции; результаты соседних тестов главы не затрагиваются
	Delete(id uint) error
}
