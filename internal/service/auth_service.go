package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// dateLayout — формат дат в формах (дата рождения, дата теста)
const dateLayout = "2006-01-02"

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Сообщение намеренно не уточняет, существует ли такой username.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

// AuthService предоставляет методы регистрации и аутентификации
type AuthService struct {
	userRepo repository.UserRepository
	email    EmailService
}

// RegisterInput содержит данные формы регистрации
type RegisterInput struct {
	Username      string
	Password      string
	FullName      string
	Qualification string
	DateOfBirth   string // необязательно, формат 2006-01-02
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, email EmailService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if email == nil {
		email = &NoopEmailService{}
	}
	return &AuthService{
		userRepo: userRepo,
		email:    email,
	}, nil
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(input RegisterInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(strings.ToLower(input.Username))
	input.FullName = strings.TrimSpace(input.FullName)
	input.Qualification = strings.TrimSpace(input.Qualification)

	if input.Username == "" || input.Password == "" || input.FullName == "" {
		return nil, fmt.Errorf("%w: username, password and full name are required", apperrors.ErrValidation)
	}

	// Дата рождения необязательна, но если задана — должна разбираться
	dob, err := parseOptionalDate(input.DateOfBirth)
	if err != nil {
		return nil, err
	}

	// Проверяем, существует ли пользователь с таким username
	_, err = s.userRepo.GetByUsername(input.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}

	user := &entity.User{
		Username:      input.Username,
		Password:      input.Password, // хешируется в BeforeSave
		FullName:      input.FullName,
		Qualification: input.Qualification,
		DateOfBirth:   dob,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Гонка двух регистраций: уникальный индекс по username ловит дубликат
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Приветственное письмо не должно ломать регистрацию
	if err := s.email.SendWelcome(context.Background(), user.Username, user.FullName); err != nil {
		log.Printf("[AuthService] Не удалось отправить приветственное письмо для %s: %v", user.Username, err)
	}

	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя.
// Несуществующий username и неверный пароль неотличимы для вызывающего.
func (s *AuthService) Login(username, password string) (*entity.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword меняет пароль пользователя. Состояние не изменяется,
// пока не пройдены все проверки.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrValidation)
	}
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters long", apperrors.ErrValidation)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: new passwords do not match", apperrors.ErrValidation)
	}

	return s.userRepo.UpdatePassword(userID, newPassword)
}

// GetProfile возвращает профиль пользователя
func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile обновляет имя, квалификацию и дату рождения пользователя
func (s *AuthService) UpdateProfile(userID uint, fullName, qualification, dateOfBirth string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}

	updates := map[string]interface{}{
		"full_name":     fullName,
		"qualification": strings.TrimSpace(qualification),
	}

	dob, err := parseOptionalDate(dateOfBirth)
	if err != nil {
		return nil, err
	}
	if dob != nil {
		updates["date_of_birth"] = *dob
	}

	if err := s.userRepo.UpdateProfile(userID, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.userRepo.GetByID(userID)
}

// parseOptionalDate разбирает необязательную дату формы.
// Пустая строка — это nil без ошибки, мусор — ErrValidation.
func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", apperrors.ErrValidation)
	}
	return &parsed, nil
}
