package service

import (
	"fmt"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// UserService предоставляет админские операции над пользователями
type UserService struct {
	userRepo  repository.UserRepository
	scoreRepo repository.ScoreRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, scoreRepo repository.ScoreRepository) (*UserService, error) {
	if userRepo == nil || scoreRepo == nil {
		return nil, fmt.Errorf("UserRepository and ScoreRepository are required for UserService")
	}
	return &UserService{
		userRepo:  userRepo,
		scoreRepo: scoreRepo,
	}, nil
}

// ListUsers возвращает всех обычных пользователей. Администраторы
// в списке не показываются.
func (s *UserService) ListUsers() ([]entity.User, error) {
	return s.userRepo.ListNonAdmins()
}

// GetUser возвращает пользователя по идентификатору
func (s *UserService) GetUser(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// DeleteUser удаляет пользователя вместе с его результатами.
// Учетные записи администраторов удалить нельзя.
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return fmt.Errorf("%w: admin accounts cannot be deleted", apperrors.ErrForbidden)
	}
	return s.userRepo.Delete(id)
}

// UserScores возвращает пользователя и все его результаты для
// админского просмотра и выгрузки
func (s *UserService) UserScores(id uint) (*entity.User, []entity.Score, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	scores, err := s.scoreRepo.ListByUser(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user scores: %w", err)
	}
	return user, scores, nil
}
