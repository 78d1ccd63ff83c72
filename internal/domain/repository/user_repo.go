package repository

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// UpdateProfile обновляет только переданные поля профиля, не затрагивая пароль
	UpdateProfile(userID uint, updates map[string]interface{}) error
	// UpdatePassword хеширует и сохраняет новый пароль, минуя хук BeforeSave
	UpdatePassword(userID uint, newPassword string) error
	ListNonAdmins() ([]entity.User, error)
	CountNonAdmins() (int64, error)
	// CountNonAdminsByMonth считает не-админов, зарегистрированных в указанном месяце
	CountNonAdminsByMonth(year int, month time.Month) (int64, error)
	// Delete удаляет пользователя вместе с его результатами в одной транзакции
	Delete(id uint) error
}
