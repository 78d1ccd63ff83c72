// Package bootstrap выполняет первоначальную настройку данных при старте.
package bootstrap

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/quizmaster-api/internal/config"
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// EnsureAdmin создает учетную запись администратора, если её еще нет.
// Существующая запись не изменяется, в том числе её пароль.
func EnsureAdmin(userRepo repository.UserRepository, cfg config.AdminConfig) error {
	username := strings.TrimSpace(strings.ToLower(cfg.Username))
	if username == "" {
		return fmt.Errorf("admin username is required")
	}
	if cfg.Password == "" {
		return fmt.Errorf("admin password is required")
	}

	existing, err := userRepo.GetByUsername(username)
	if err == nil {
		if !existing.IsAdmin {
			return fmt.Errorf("user %s already exists but is not an admin", username)
		}
		log.Printf("[Bootstrap] Администратор %s уже существует", username)
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	admin := &entity.User{
		Username: username,
		Password: cfg.Password, // хешируется в BeforeSave
		FullName: cfg.FullName,
		IsAdmin:  true,
	}
	if err := userRepo.Create(admin); err != nil {
		// Параллельный старт второго инстанса мог успеть первым
		if errors.Is(err, apperrors.ErrConflict) {
			log.Printf("[Bootstrap] Администратор %s создан параллельно", username)
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Printf("[Bootstrap] Создана учетная запись администратора %s (ID=%d)", username, admin.ID)
	return nil
}
