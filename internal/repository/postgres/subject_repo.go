package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// SubjectRepo реализует repository.SubjectRepository
type SubjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo создает новый репозиторий предметов
func NewSubjectRepo(db *gorm.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

// Create создает новый предмет
func (r *SubjectRepo) Create(subject *entity.Subject) error {
	return r.db.Create(subject).Error
}

// GetByID возвращает предмет по ID
func (r *SubjectRepo) GetByID(id uint) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.First(&subject, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// List возвращает все предметы с предзагруженными главами
func (r *SubjectRepo) List() ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := r.db.Preload("Chapters").Order("id").Find(&subjects).Error
	return subjects, err
}

// ListLimit возвращает не более limit предметов
func (r *SubjectRepo) ListLimit(limit int) ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := r.db.Order("id").Limit(limit).Find(&subjects).Error
	return subjects, err
}

// Count возвращает общее число предметов
func (r *SubjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Subject{}).Count(&count).Error
	return count, err
}

// Update обновляет информацию о предмете
func (r *SubjectRepo) Update(subject *entity.Subject) error {
	return r.db.Save(subject).Error
}

// Delete удаляет предмет и транзитивно все его главы, тесты, вопросы и
// результаты в одной транзакции. Дублирует ON DELETE CASCADE из схемы,
// чтобы инвариант каскада не зависел от конкретной БД.
func (r *SubjectRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		chapterIDs := tx.Model(&entity.Chapter{}).Select("id").Where("subject_id = ?", id)
		quizIDs := tx.Model(&entity.Quiz{}).Select("id").Where("chapter_id IN (?)", chapterIDs)

		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&entity.Score{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id IN (?)", chapterIDs).Delete(&entity.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("subject_id = ?", id).Delete(&entity.Chapter{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&entity.Subject{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// AttemptsBySubject группирует результаты попыток по предметам через
// связку Score → Quiz → Chapter → Subject
func (r *SubjectRepo) AttemptsBySubject() ([]repository.SubjectAttempts, error) {
	var attempts []repository.SubjectAttempts
	err := r.db.Table("subjects").
		Select("subjects.id AS subject_id, subjects.name AS name, COUNT(scores.id) AS attempts").
		Joins("JOIN chapters ON chapters.subject_id = subjects.id").
		Joins("JOIN quizzes ON quizzes.chapter_id = chapters.id").
		Joins("JOIN scores ON scores.quiz_id = quizzes.id").
		Group("subjects.id, subjects.name").
		Order("subjects.id").
		Scan(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
