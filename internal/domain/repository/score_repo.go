package repository

import (
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// ScoreRepository определяет методы для работы с результатами попыток
type ScoreRepository interface {
	Create(score *entity.Score) error
	// GetByIDForUser возвращает результат только если он принадлежит
	// указанному пользователю; чужой результат — ErrNotFound
	GetByIDForUser(id, userID uint) (*entity.Score, error)
	// ListByUser возвращает все результаты пользователя, самые свежие первыми,
	// с предзагруженной цепочкой Quiz → Chapter → Subject
	ListByUser(userID uint) ([]entity.Score, error)
	// ListRecentByUser возвращает не более limit последних результатов
	ListRecentByUser(userID uint, limit int) ([]entity.Score, error)
}
