package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// ContentService управляет предметами и главами
type ContentService struct {
	subjectRepo repository.SubjectRepository
	chapterRepo repository.ChapterRepository
}

// NewContentService создает новый сервис учебного контента
func NewContentService(subjectRepo repository.SubjectRepository, chapterRepo repository.ChapterRepository) (*ContentService, error) {
	if subjectRepo == nil || chapterRepo == nil {
		return nil, fmt.Errorf("SubjectRepository and ChapterRepository are required for ContentService")
	}
	return &ContentService{
		subjectRepo: subjectRepo,
		chapterRepo: chapterRepo,
	}, nil
}

// ListSubjects возвращает все предметы с их главами
func (s *ContentService) ListSubjects() ([]entity.Subject, error) {
	return s.subjectRepo.List()
}

// GetSubject возвращает предмет по идентификатору
func (s *ContentService) GetSubject(id uint) (*entity.Subject, error) {
	return s.subjectRepo.GetByID(id)
}

// CreateSubject создает новый предмет
func (s *ContentService) CreateSubject(name, description string) (*entity.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperrors.ErrValidation)
	}

	subject := &entity.Subject{
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return subject, nil
}

// UpdateSubject обновляет название и описание предмета
func (s *ContentService) UpdateSubject(id uint, name, description string) (*entity.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperrors.ErrValidation)
	}

	subject, err := s.subjectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	subject.Name = name
	subject.Description = strings.TrimSpace(description)
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return subject, nil
}

// DeleteSubject удаляет предмет со всем подчиненным контентом
func (s *ContentService) DeleteSubject(id uint) error {
	return s.subjectRepo.Delete(id)
}

// ListChapters возвращает все главы с предзагруженными предметами
func (s *ContentService) ListChapters() ([]entity.Chapter, error) {
	return s.chapterRepo.ListWithSubject()
}

// GetChapter возвращает главу по идентификатору
func (s *ContentService) GetChapter(id uint) (*entity.Chapter, error) {
	return s.chapterRepo.GetByID(id)
}

// CreateChapter создает главу внутри существующего предмета
func (s *ContentService) CreateChapter(subjectID uint, name, description string) (*entity.Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: chapter name is required", apperrors.ErrValidation)
	}

	// Глава не может ссылаться на несуществующий предмет
	if _, err := s.subjectRepo.GetByID(subjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	chapter := &entity.Chapter{
		SubjectID:   subjectID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.chapterRepo.Create(chapter); err != nil {
		return nil, fmt.Errorf("failed to create chapter: %w", err)
	}
	return chapter, nil
}

// ChaptersBySubject возвращает главы одного предмета
func (s *ContentService) ChaptersBySubject(subjectID uint) ([]entity.Chapter, error) {
	if _, err := s.subjectRepo.GetByID(subjectID); err != nil {
		return nil, err
	}
	return s.chapterRepo.ListBySubject(subjectID)
}

// UpdateChapter обновляет название, описание и предмет главы.
// Смена subjectID переносит главу вместе с её тестами в другой предмет.
func (s *ContentService) UpdateChapter(id, subjectID uint, name, description string) (*entity.Chapter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: chapter name is required", apperrors.ErrValidation)
	}

	chapter, err := s.chapterRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	// Перенос возможен только в существующий предмет
	if _, err := s.subjectRepo.GetByID(subjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	chapter.SubjectID = subjectID
	chapter.Name = name
	chapter.Description = strings.TrimSpace(description)
	if err := s.chapterRepo.Update(chapter); err != nil {
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}
	return chapter, nil
}

// DeleteChapter удаляет главу со всеми тестами, вопросами и результатами
func (s *ContentService) DeleteChapter(id uint) error {
	return s.chapterRepo.Delete(id)
}
