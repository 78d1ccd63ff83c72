package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// QuizService управляет тестами и их вопросами
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	chapterRepo  repository.ChapterRepository
}

// QuizInput содержит данные формы создания или изменения теста
type QuizInput struct {
	ChapterID    uint
	DateOfQuiz   string // формат 2006-01-02
	TimeDuration int    // минуты
	Remarks      string
}

// QuestionInput содержит данные формы создания или изменения вопроса
type QuestionInput struct {
	QuestionStatement string
	Option1           string
	Option2           string
	Option3           string
	Option4           string
	CorrectOption     int
}

// NewQuizService создает новый сервис тестов
func NewQuizService(quizRepo repository.QuizRepository, questionRepo repository.QuestionRepository, chapterRepo repository.ChapterRepository) (*QuizService, error) {
	if quizRepo == nil || questionRepo == nil || chapterRepo == nil {
		return nil, fmt.Errorf("QuizRepository, QuestionRepository and ChapterRepository are required for QuizService")
	}
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		chapterRepo:  chapterRepo,
	}, nil
}

// ListQuizzes возвращает все тесты с предзагруженной главой и предметом
func (s *QuizService) ListQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.ListWithChapterAndSubject()
}

// GetQuiz возвращает тест по идентификатору
func (s *QuizService) GetQuiz(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(id)
}

// GetQuizWithQuestions возвращает тест вместе с его вопросами
func (s *QuizService) GetQuizWithQuestions(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(id)
}

// QuizzesByChapter возвращает тесты одной главы
func (s *QuizService) QuizzesByChapter(chapterID uint) ([]entity.Quiz, error) {
	if _, err := s.chapterRepo.GetByID(chapterID); err != nil {
		return nil, err
	}
	return s.quizRepo.ListByChapter(chapterID)
}

// CreateQuiz создает тест в существующей главе
func (s *QuizService) CreateQuiz(input QuizInput) (*entity.Quiz, error) {
	date, duration, err := s.validateQuizInput(input)
	if err != nil {
		return nil, err
	}

	quiz := &entity.Quiz{
		ChapterID:    input.ChapterID,
		DateOfQuiz:   date,
		TimeDuration: duration,
		Remarks:      strings.TrimSpace(input.Remarks),
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	return quiz, nil
}

// UpdateQuiz обновляет параметры теста
func (s *QuizService) UpdateQuiz(id uint, input QuizInput) (*entity.Quiz, error) {
	date, duration, err := s.validateQuizInput(input)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	quiz.ChapterID = input.ChapterID
	quiz.DateOfQuiz = date
	quiz.TimeDuration = duration
	quiz.Remarks = strings.TrimSpace(input.Remarks)
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	return quiz, nil
}

// DeleteQuiz удаляет тест вместе с вопросами и результатами
func (s *QuizService) DeleteQuiz(id uint) error {
	return s.quizRepo.Delete(id)
}

// validateQuizInput проверяет форму теста и разбирает дату
func (s *QuizService) validateQuizInput(input QuizInput) (time.Time, int, error) {
	if input.TimeDuration <= 0 {
		return time.Time{}, 0, fmt.Errorf("%w: time duration must be a positive number of minutes", apperrors.ErrValidation)
	}

	dateStr := strings.TrimSpace(input.DateOfQuiz)
	if dateStr == "" {
		return time.Time{}, 0, fmt.Errorf("%w: date of quiz is required", apperrors.ErrValidation)
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}

	if _, err := s.chapterRepo.GetByID(input.ChapterID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return time.Time{}, 0, fmt.Errorf("%w: chapter not found", apperrors.ErrValidation)
		}
		return time.Time{}, 0, err
	}

	return date, input.TimeDuration, nil
}

// ListQuestions возвращает вопросы теста
func (s *QuizService) ListQuestions(quizID uint) ([]entity.Question, error) {
	return s.questionRepo.GetByQuizID(quizID)
}

// GetQuestion возвращает вопрос по идентификатору
func (s *QuizService) GetQuestion(id uint) (*entity.Question, error) {
	return s.questionRepo.GetByID(id)
}

// CreateQuestion добавляет вопрос в существующий тест
func (s *QuizService) CreateQuestion(quizID uint, input QuestionInput) (*entity.Question, error) {
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: quiz not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	question := &entity.Question{
		QuizID:            quizID,
		QuestionStatement: input.QuestionStatement,
		Option1:           input.Option1,
		Option2:           input.Option2,
		Option3:           input.Option3,
		Option4:           input.Option4,
		CorrectOption:     input.CorrectOption,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// UpdateQuestion обновляет текст, варианты и правильный ответ вопроса.
// Уже записанные результаты попыток при этом не пересчитываются.
func (s *QuizService) UpdateQuestion(id uint, input QuestionInput) (*entity.Question, error) {
	if err := validateQuestionInput(&input); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	question.QuestionStatement = input.QuestionStatement
	question.Option1 = input.Option1
	question.Option2 = input.Option2
	question.Option3 = input.Option3
	question.Option4 = input.Option4
	question.CorrectOption = input.CorrectOption
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос
func (s *QuizService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}

// validateQuestionInput нормализует и проверяет форму вопроса
func validateQuestionInput(input *QuestionInput) error {
	input.QuestionStatement = strings.TrimSpace(input.QuestionStatement)
	input.Option1 = strings.TrimSpace(input.Option1)
	input.Option2 = strings.TrimSpace(input.Option2)
	input.Option3 = strings.TrimSpace(input.Option3)
	input.Option4 = strings.TrimSpace(input.Option4)

	if input.QuestionStatement == "" {
		return fmt.Errorf("%w: question statement is required", apperrors.ErrValidation)
	}
	if input.Option1 == "" || input.Option2 == "" || input.Option3 == "" || input.Option4 == "" {
		return fmt.Errorf("%w: all four options are required", apperrors.ErrValidation)
	}
	if !entity.IsValidCorrectOption(input.CorrectOption) {
		return fmt.Errorf("%w: correct option must be between %d and %d",
			apperrors.ErrValidation, entity.MinCorrectOption, entity.MaxCorrectOption)
	}
	return nil
}
