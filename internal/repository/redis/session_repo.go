package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository поверх Redis
type SessionRepo struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewSessionRepo создает новый репозиторий сессий и возвращает ошибку при проблемах
func NewSessionRepo(client redis.UniversalClient) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionRepo")
	}
	return &SessionRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// SetJSON сохраняет структуру JSON с TTL
func (r *SessionRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, key, data, expiration).Err()
}

// GetJSON получает структуру JSON
func (r *SessionRepo) GetJSON(key string, dest interface{}) error {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete удаляет сессию
func (r *SessionRepo) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Exists проверяет существование ключа
func (r *SessionRepo) Exists(key string) (bool, error) {
	result, err := r.client.Exists(r.ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// Touch продлевает время жизни ключа
func (r *SessionRepo) Touch(key string, expiration time.Duration) error {
	return r.client.Expire(r.ctx, key, expiration).Err()
}
