package service

import (
	"fmt"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// recentScoresLimit — число последних результатов на дашборде пользователя
const recentScoresLimit = 5

// ErrNoQuestions возвращается при попытке начать тест без вопросов
var ErrNoQuestions = fmt.Errorf("%w: quiz has no questions yet", apperrors.ErrValidation)

// AttemptService проводит попытки прохождения тестов и хранит их результаты
type AttemptService struct {
	quizRepo  repository.QuizRepository
	scoreRepo repository.ScoreRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(quizRepo repository.QuizRepository, scoreRepo repository.ScoreRepository) (*AttemptService, error) {
	if quizRepo == nil || scoreRepo == nil {
		return nil, fmt.Errorf("QuizRepository and ScoreRepository are required for AttemptService")
	}
	return &AttemptService{
		quizRepo:  quizRepo,
		scoreRepo: scoreRepo,
	}, nil
}

// StartQuiz возвращает тест с вопросами для начала попытки.
// Тест без вопросов начать нельзя, попытка не фиксируется.
func (s *AttemptService) StartQuiz(quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return quiz, nil
}

// SubmitQuiz подсчитывает ответы и записывает результат попытки.
// answers — отправленные ответы по идентификаторам вопросов; вопрос без
// ответа считается отвеченным неверно. Лимит времени теста носит
// рекомендательный характер и на прием ответов не влияет.
func (s *AttemptService) SubmitQuiz(quizID, userID uint, answers map[uint]int) (*entity.Score, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	scored := 0
	for _, question := range quiz.Questions {
		if selected, ok := answers[question.ID]; ok && question.IsCorrect(selected) {
			scored++
		}
	}

	score := &entity.Score{
		QuizID:             quiz.ID,
		UserID:             userID,
		TotalScored:        scored,
		TotalQuestions:     len(quiz.Questions),
		TimeStampOfAttempt: time.Now(),
	}
	if err := s.scoreRepo.Create(score); err != nil {
		return nil, fmt.Errorf("failed to save attempt score: %w", err)
	}
	return score, nil
}

// GetResult возвращает результат попытки, если он принадлежит пользователю
func (s *AttemptService) GetResult(scoreID, userID uint) (*entity.Score, error) {
	return s.scoreRepo.GetByIDForUser(scoreID, userID)
}

// History возвращает все результаты пользователя, самые свежие первыми
func (s *AttemptService) History(userID uint) ([]entity.Score, error) {
	return s.scoreRepo.ListByUser(userID)
}

// RecentScores возвращает последние результаты для дашборда пользователя
func (s *AttemptService) RecentScores(userID uint) ([]entity.Score, error) {
	return s.scoreRepo.ListRecentByUser(userID, recentScoresLimit)
}
