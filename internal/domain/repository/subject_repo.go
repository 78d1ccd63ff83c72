package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// SubjectAttempts содержит число попыток прохождения тестов по предмету
type SubjectAttempts struct {
	SubjectID uint   `json:"subject_id"`
	Name      string `json:"name"`
	Attempts  int64  `json:"attempts"`
}

// SubjectRepository определяет методы для работы с предметами
type SubjectRepository interface {
	Create(subject *entity.Subject) error
	GetByID(id uint) (*entity.Subject, error)
	// List возвращает все предметы с предзагруженными главами
	List() ([]entity.Subject, error)
	ListLimit(limit int) ([]entity.Subject, error)
	Count() (int64, error)
	Update(subject *entity.Subject) error
	// Delete удаляет предмет вместе со всеми главами, тестами,
	// вопросами и результатами в одной транзакции
	Delete(id uint) error
	// AttemptsBySubject группирует результаты по предметам через
	// связку Score → Quiz → Chapter → Subject
	AttemptsBySubject() ([]SubjectAttempts, error)
}
