package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// ChapterRepo реализует repository.ChapterRepository
type ChapterRepo struct {
	db *gorm.DB
}

// NewChapterRepo создает новый репозиторий глав
func NewChapterRepo(db *gorm.DB) *ChapterRepo {
	return &ChapterRepo{db: db}
}

// Create создает новую главу
func (r *ChapterRepo) Create(chapter *entity.Chapter) error {
	return r.db.Create(chapter).Error
}

// GetByID возвращает главу по ID
func (r *ChapterRepo) GetByID(id uint) (*entity.Chapter, error) {
	var chapter entity.Chapter
	err := r.db.First(&chapter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &chapter, nil
}

// ListWithSubject возвращает все главы с предзагруженным предметом
func (r *ChapterRepo) ListWithSubject() ([]entity.Chapter, error) {
	var chapters []entity.Chapter
	err := r.db.Preload("Subject").Order("id").Find(&chapters).Error
	return chapters, err
}

// ListBySubject возвращает главы предмета
func (r *ChapterRepo) ListBySubject(subjectID uint) ([]entity.Chapter, error) {
	var chapters []entity.Chapter
	err := r.db.Where("subject_id = ?", subjectID).Order("id").Find(&chapters).Error
	return chapters, err
}

// Update обновляет информацию о главе
func (r *ChapterRepo) Update(chapter *entity.Chapter) error {
	return r.db.Save(chapter).Error
}

// Delete удаляет главу и транзитивно её тесты, вопросы и результаты
// в одной транзакции
func (r *ChapterRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		quizIDs := tx.Model(&entity.Quiz{}).Select("id").Where("chapter_id = ?", id)

		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&entity.Score{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&entity.Quiz{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Chapter{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
