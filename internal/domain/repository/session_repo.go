package repository

import (
	"time"
)

// SessionRepository определяет методы хранилища сессий.
// Реализация держит данные сессии в Redis с TTL.
type SessionRepository interface {
	SetJSON(key string, value interface{}, expiration time.Duration) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	Exists(key string) (bool, error)
	// Touch продлевает время жизни ключа на expiration от текущего момента
	Touch(key string, expiration time.Duration) error
}
