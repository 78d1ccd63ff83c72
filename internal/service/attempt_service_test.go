package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// quizWithQuestions собирает тест из пяти вопросов с известными ответами
func quizWithQuestions() *entity.Quiz {
	return &entity.Quiz{
		ID:        10,
		ChapterID: 2,
		Questions: []entity.Question{
			{ID: 101, QuizID: 10, CorrectOption: 1},
			{ID: 102, QuizID: 10, CorrectOption: 2},
			{ID: 103, QuizID: 10, CorrectOption: 3},
			{ID: 104, QuizID: 10, CorrectOption: 4},
			{ID: 105, QuizID: 10, CorrectOption: 1},
		},
	}
}

func TestAttemptService_StartQuiz_Success(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetWithQuestions", uint(10)).Return(quizWithQuestions(), nil)

	attemptService, err := NewAttemptService(mockQuizRepo, new(MockScoreRepository))
	require.NoError(t, err)

	// Act
	quiz, err := attemptService.StartQuiz(10)

	// Assert
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestAttemptService_StartQuiz_NoQuestions(t *testing.T) {
	// Тест без вопросов начать нельзя
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetWithQuestions", uint(11)).Return(&entity.Quiz{ID: 11}, nil)

	attemptService, err := NewAttemptService(mockQuizRepo, new(MockScoreRepository))
	require.NoError(t, err)

	_, err = attemptService.StartQuiz(11)

	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAttemptService_SubmitQuiz_ScoresAnswers(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockScoreRepo := new(MockScoreRepository)
	mockQuizRepo.On("GetWithQuestions", uint(10)).Return(quizWithQuestions(), nil)
	mockScoreRepo.On("Create", mock.AnythingOfType("*entity.Score")).Return(nil)

	attemptService, err := NewAttemptService(mockQuizRepo, mockScoreRepo)
	require.NoError(t, err)

	// Три верных ответа, один неверный, один вопрос без ответа
	answers := map[uint]int{
		101: 1, // верно
		102: 2, // верно
		103: 1, // неверно
		104: 4, // верно
	}

	// Act
	score, err := attemptService.SubmitQuiz(10, 7, answers)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, score.TotalScored, "Засчитываются только совпавшие ответы")
	assert.Equal(t, 5, score.TotalQuestions)
	assert.Equal(t, uint(7), score.UserID)
	assert.Equal(t, 60, score.Percentage())
	assert.False(t, score.TimeStampOfAttempt.IsZero(), "Момент попытки должен фиксироваться")
	mockScoreRepo.AssertExpectations(t)
}

func TestAttemptService_SubmitQuiz_EmptyAnswersStillRecorded(t *testing.T) {
	// Пустая отправка — это нулевой результат, а не ошибка
	mockQuizRepo := new(MockQuizRepository)
	mockScoreRepo := new(MockScoreRepository)
	mockQuizRepo.On("GetWithQuestions", uint(10)).Return(quizWithQuestions(), nil)
	mockScoreRepo.On("Create", mock.AnythingOfType("*entity.Score")).Return(nil)

	attemptService, err := NewAttemptService(mockQuizRepo, mockScoreRepo)
	require.NoError(t, err)

	score, err := attemptService.SubmitQuiz(10, 7, map[uint]int{})

	require.NoError(t, err)
	assert.Equal(t, 0, score.TotalScored)
	assert.Equal(t, 5, score.TotalQuestions)
	mockScoreRepo.AssertExpectations(t)
}

func TestAttemptService_SubmitQuiz_NoQuestions(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockScoreRepo := new(MockScoreRepository)
	mockQuizRepo.On("GetWithQuestions", uint(11)).Return(&entity.Quiz{ID: 11}, nil)

	attemptService, err := NewAttemptService(mockQuizRepo, mockScoreRepo)
	require.NoError(t, err)

	_, err = attemptService.SubmitQuiz(11, 7, map[uint]int{})

	assert.ErrorIs(t, err, ErrNoQuestions)
	mockScoreRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAttemptService_GetResult_ForeignScoreHidden(t *testing.T) {
	// Чужой результат неотличим от несуществующего
	mockScoreRepo := new(MockScoreRepository)
	mockScoreRepo.On("GetByIDForUser", uint(55), uint(7)).Return(nil, apperrors.ErrNotFound)

	attemptService, err := NewAttemptService(new(MockQuizRepository), mockScoreRepo)
	require.NoError(t, err)

	_, err = attemptService.GetResult(55, 7)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttemptService_RecentScores_UsesLimit(t *testing.T) {
	mockScoreRepo := new(MockScoreRepository)
	mockScoreRepo.On("ListRecentByUser", uint(7), recentScoresLimit).Return([]entity.Score{}, nil)

	attemptService, err := NewAttemptService(new(MockQuizRepository), mockScoreRepo)
	require.NoError(t, err)

	_, err = attemptService.RecentScores(7)

	require.NoError(t, err)
	mockScoreRepo.AssertExpectations(t)
}
