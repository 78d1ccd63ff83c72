package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
)

func newStatsService(t *testing.T, userRepo *MockUserRepository, subjectRepo *MockSubjectRepository) *StatsService {
	t.Helper()
	statsService, err := NewStatsService(userRepo, subjectRepo, new(MockQuizRepository), new(MockQuestionRepository))
	require.NoError(t, err)
	return statsService
}

func TestStatsService_Counts(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockSubjectRepo := new(MockSubjectRepository)
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)
	mockUserRepo.On("CountNonAdmins").Return(int64(12), nil)
	mockSubjectRepo.On("Count").Return(int64(3), nil)
	mockQuizRepo.On("Count").Return(int64(8), nil)
	mockQuestionRepo.On("Count").Return(int64(40), nil)

	statsService, err := NewStatsService(mockUserRepo, mockSubjectRepo, mockQuizRepo, mockQuestionRepo)
	require.NoError(t, err)

	// Act
	counts, err := statsService.Counts()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(12), counts.Users, "Администраторы не входят в счетчик пользователей")
	assert.Equal(t, int64(3), counts.Subjects)
	assert.Equal(t, int64(8), counts.Quizzes)
	assert.Equal(t, int64(40), counts.Questions)
}

func TestStatsService_Registrations_SixMonthsOldestFirst(t *testing.T) {
	// Arrange: опорная точка - 31 марта, чтобы проверить перенос через
	// конец года и короткий февраль
	now := time.Date(2025, time.March, 31, 15, 0, 0, 0, time.UTC)
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("CountNonAdminsByMonth", 2024, time.October).Return(int64(1), nil)
	mockUserRepo.On("CountNonAdminsByMonth", 2024, time.November).Return(int64(0), nil)
	mockUserRepo.On("CountNonAdminsByMonth", 2024, time.December).Return(int64(2), nil)
	mockUserRepo.On("CountNonAdminsByMonth", 2025, time.January).Return(int64(5), nil)
	mockUserRepo.On("CountNonAdminsByMonth", 2025, time.February).Return(int64(3), nil)
	mockUserRepo.On("CountNonAdminsByMonth", 2025, time.March).Return(int64(4), nil)

	statsService := newStatsService(t, mockUserRepo, new(MockSubjectRepository))

	// Act
	months, err := statsService.Registrations(now)

	// Assert
	require.NoError(t, err)
	require.Len(t, months, registrationMonths)
	assert.Equal(t, "Oct", months[0].Label, "Самый старый месяц идет первым")
	assert.Equal(t, "Mar", months[5].Label, "Текущий месяц идет последним")
	assert.Equal(t, int64(1), months[0].Count)
	assert.Equal(t, int64(0), months[1].Count, "Месяц без регистраций дает ноль, а не пропуск")
	assert.Equal(t, int64(4), months[5].Count)
	mockUserRepo.AssertExpectations(t)
}

func TestStatsService_SubjectAttempts_PassThrough(t *testing.T) {
	mockSubjectRepo := new(MockSubjectRepository)
	attempts := []repository.SubjectAttempts{
		{SubjectID: 1, Name: "Mathematics", Attempts: 9},
		{SubjectID: 2, Name: "Physics", Attempts: 4},
	}
	mockSubjectRepo.On("AttemptsBySubject").Return(attempts, nil)

	statsService := newStatsService(t, new(MockUserRepository), mockSubjectRepo)

	got, err := statsService.SubjectAttempts()

	require.NoError(t, err)
	assert.Equal(t, attempts, got)
	mockSubjectRepo.AssertNotCalled(t, "ListLimit", chartSubjectsLimit)
}

func TestStatsService_SubjectAttempts_FallbackWhenEmpty(t *testing.T) {
	// Без единой попытки график показывает предметы с нулями
	mockSubjectRepo := new(MockSubjectRepository)
	mockSubjectRepo.On("AttemptsBySubject").Return([]repository.SubjectAttempts{}, nil)
	mockSubjectRepo.On("ListLimit", chartSubjectsLimit).Return([]entity.Subject{
		{ID: 1, Name: "Mathematics"},
		{ID: 2, Name: "Physics"},
	}, nil)

	statsService := newStatsService(t, new(MockUserRepository), mockSubjectRepo)

	got, err := statsService.SubjectAttempts()

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mathematics", got[0].Name)
	assert.Zero(t, got[0].Attempts)
	mockSubjectRepo.AssertExpectations(t)
}
