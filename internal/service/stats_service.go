package service

import (
	"fmt"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/repository"
)

// registrationMonths — глубина графика регистраций в месяцах
const registrationMonths = 6

// chartSubjectsLimit — максимум предметов в графике при отсутствии попыток
const chartSubjectsLimit = 5

// DashboardCounts содержит сводные счетчики для админского дашборда
type DashboardCounts struct {
	Users     int64 `json:"users"`
	Subjects  int64 `json:"subjects"`
	Quizzes   int64 `json:"quizzes"`
	Questions int64 `json:"questions"`
}

// MonthlyRegistrations — число регистраций за один календарный месяц
type MonthlyRegistrations struct {
	Label string `json:"label"` // короткое имя месяца, например "Jan"
	Count int64  `json:"count"`
}

// StatsService собирает статистику для админского дашборда
type StatsService struct {
	userRepo     repository.UserRepository
	subjectRepo  repository.SubjectRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
) (*StatsService, error) {
	if userRepo == nil || subjectRepo == nil || quizRepo == nil || questionRepo == nil {
		return nil, fmt.Errorf("all repositories are required for StatsService")
	}
	return &StatsService{
		userRepo:     userRepo,
		subjectRepo:  subjectRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
	}, nil
}

// Counts возвращает сводные счетчики. Администраторы в число
// пользователей не входят.
func (s *StatsService) Counts() (*DashboardCounts, error) {
	users, err := s.userRepo.CountNonAdmins()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	subjects, err := s.subjectRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count subjects: %w", err)
	}
	quizzes, err := s.quizRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}
	questions, err := s.questionRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	return &DashboardCounts{
		Users:     users,
		Subjects:  subjects,
		Quizzes:   quizzes,
		Questions: questions,
	}, nil
}

// Registrations возвращает регистрации за последние registrationMonths
// календарных месяцев включая текущий, от старого к новому
func (s *StatsService) Registrations(now time.Time) ([]MonthlyRegistrations, error) {
	result := make([]MonthlyRegistrations, 0, registrationMonths)

	// Первое число текущего месяца как опорная точка, чтобы
	// AddDate не перескакивал через короткие месяцы
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := registrationMonths - 1; i >= 0; i-- {
		month := anchor.AddDate(0, -i, 0)
		count, err := s.userRepo.CountNonAdminsByMonth(month.Year(), month.Month())
		if err != nil {
			return nil, fmt.Errorf("failed to count registrations for %s: %w", month.Format("2006-01"), err)
		}
		result = append(result, MonthlyRegistrations{
			Label: month.Format("Jan"),
			Count: count,
		})
	}
	return result, nil
}

// SubjectAttempts возвращает число попыток по предметам. Если попыток
// еще нет, возвращает до chartSubjectsLimit предметов с нулями, чтобы
// график не был пустым.
func (s *StatsService) SubjectAttempts() ([]repository.SubjectAttempts, error) {
	attempts, err := s.subjectRepo.AttemptsBySubject()
	if err != nil {
		return nil, fmt.Errorf("failed to load subject attempts: %w", err)
	}
	if len(attempts) > 0 {
		return attempts, nil
	}

	subjects, err := s.subjectRepo.ListLimit(chartSubjectsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load subjects for chart: %w", err)
	}
	fallback := make([]repository.SubjectAttempts, 0, len(subjects))
	for _, subject := range subjects {
		fallback = append(fallback, repository.SubjectAttempts{
			SubjectID: subject.ID,
			Name:      subject.Name,
			Attempts:  0,
		})
	}
	return fallback, nil
}
