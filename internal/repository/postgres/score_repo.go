package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// ScoreRepo реализует repository.ScoreRepository
type ScoreRepo struct {
	db *gorm.DB
}

// NewScoreRepo создает новый репозиторий результатов
func NewScoreRepo(db *gorm.DB) *ScoreRepo {
	return &ScoreRepo{db: db}
}

// Create сохраняет результат попытки
func (r *ScoreRepo) Create(score *entity.Score) error {
	return r.db.Create(score).Error
}

// GetByIDForUser возвращает результат, только если он принадлежит пользователю.
// Чужой результат неотличим от несуществующего — ErrNotFound.
func (r *ScoreRepo) GetByIDForUser(id, userID uint) (*entity.Score, error) {
	var score entity.Score
	err := r.db.Preload("Quiz").Preload("Quiz.Chapter").Preload("Quiz.Chapter.Subject").
		Where("id = ? AND user_id = ?", id, userID).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &score, nil
}

// ListByUser возвращает все результаты пользователя, самые свежие первыми
func (r *ScoreRepo) ListByUser(userID uint) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.Preload("Quiz").Preload("Quiz.Chapter").Preload("Quiz.Chapter.Subject").
		Where("user_id = ?", userID).
		Order("time_stamp_of_attempt DESC").
		Find(&scores).Error
	return scores, err
}

// ListRecentByUser возвращает не более limit последних результатов пользователя
func (r *ScoreRepo) ListRecentByUser(userID uint, limit int) ([]entity.Score, error) {
	var scores []entity.Score
	err := r.db.Preload("Quiz").Preload("Quiz.Chapter").
		Where("user_id = ?", userID).
		Order("time_stamp_of_attempt DESC").
		Limit(limit).
		Find(&scores).Error
	return scores, err
}
