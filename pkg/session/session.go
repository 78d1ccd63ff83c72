package session

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/quizmaster-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

// Категории flash-сообщений
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

// SessionCookie — имя куки с подписанным идентификатором сессии
const SessionCookie = "session_id"

// Flash представляет одноразовое сообщение для пользователя
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data — содержимое сессии, хранящееся в Redis.
// QuizID и QuizStartTime — маркеры текущей попытки; они информационные
// и не участвуют в подсчете результата.
type Data struct {
	UserID        uint       `json:"user_id,omitempty"`
	FullName      string     `json:"full_name,omitempty"`
	IsAdmin       bool       `json:"is_admin,omitempty"`
	QuizID        uint       `json:"quiz_id,omitempty"`
	QuizStartTime *time.Time `json:"quiz_start_time,omitempty"`
	Flashes       []Flash    `json:"flashes,omitempty"`
}

// Session — загруженная сессия одного запроса
type Session struct {
	ID   string
	Data Data

	manager *Manager
}

// Manager управляет жизненным циклом сессий: идентификатор — UUID,
// данные — JSON в Redis с TTL, кука несет идентификатор в виде
// HMAC-подписанного JWT, чтобы его нельзя было подделать на клиенте.
type Manager struct {
	store    repository.SessionRepository
	secret   []byte
	lifetime time.Duration

	cookiePath   string
	cookieSecure bool
	sameSite     http.SameSite
}

// NewManager создает новый менеджер сессий
func NewManager(store repository.SessionRepository, secret string, lifetime time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("SessionRepository is required for session Manager")
	}
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Manager{
		store:      store,
		secret:     []byte(secret),
		lifetime:   lifetime,
		cookiePath: "/",
		sameSite:   http.SameSiteLaxMode,
	}, nil
}

// SetCookieAttributes настраивает атрибуты куки (Secure для production)
func (m *Manager) SetCookieAttributes(secure bool, sameSite http.SameSite) {
	m.cookieSecure = secure
	m.sameSite = sameSite
}

// sessionKey формирует ключ Redis для сессии
func sessionKey(id string) string {
	return "session:" + id
}

// sign упаковывает идентификатор сессии в подписанный JWT
func (m *Manager) sign(id string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// parse проверяет подпись и извлекает идентификатор сессии
func (m *Manager) parse(signed string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}

// Load возвращает сессию запроса. Если куки нет, подпись не сходится или
// данные в Redis истекли — возвращается новая пустая сессия.
func (m *Manager) Load(r *http.Request) *Session {
	session := &Session{
		ID:      uuid.NewString(),
		manager: m,
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return session
	}

	id, err := m.parse(cookie.Value)
	if err != nil {
		log.Printf("[Session] Отклонена кука с недействительной подписью: %v", err)
		return session
	}

	var data Data
	if err := m.store.GetJSON(sessionKey(id), &data); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Session] Ошибка чтения сессии %s из хранилища: %v", id, err)
		}
		return session
	}

	session.ID = id
	session.Data = data
	return session
}

// Save сохраняет данные сессии в Redis и выставляет куку
func (m *Manager) Save(w http.ResponseWriter, session *Session) error {
	if err := m.store.SetJSON(sessionKey(session.ID), session.Data, m.lifetime); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	signed, err := m.sign(session.ID)
	if err != nil {
		return fmt.Errorf("failed to sign session id: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     m.cookiePath,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: m.sameSite,
		MaxAge:   int(m.lifetime.Seconds()),
	})
	return nil
}

// Renew выдает сессии новый идентификатор и удаляет запись старого.
// Вызывается при входе, чтобы кука, выданная до аутентификации, не
// открывала привилегированную сессию (session fixation).
func (m *Manager) Renew(session *Session) {
	if err := m.store.Delete(sessionKey(session.ID)); err != nil {
		log.Printf("[Session] Ошибка удаления прежней сессии %s: %v", session.ID, err)
	}
	session.ID = uuid.NewString()
}

// Destroy удаляет сессию из хранилища и сбрасывает куку
func (m *Manager) Destroy(w http.ResponseWriter, session *Session) error {
	if err := m.store.Delete(sessionKey(session.ID)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     m.cookiePath,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: m.sameSite,
		MaxAge:   -1,
	})

	session.Data = Data{}
	return nil
}

// AddFlash добавляет одноразовое сообщение в сессию
func (s *Session) AddFlash(category, message string) {
	s.Data.Flashes = append(s.Data.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes забирает накопленные сообщения и очищает их в сессии
func (s *Session) PopFlashes() []Flash {
	flashes := s.Data.Flashes
	s.Data.Flashes = nil
	return flashes
}

// IsAuthenticated сообщает, привязана ли сессия к пользователю
func (s *Session) IsAuthenticated() bool {
	return s.Data.UserID != 0
}

// StartAttempt записывает маркеры начала попытки
func (s *Session) StartAttempt(quizID uint, startedAt time.Time) {
	s.Data.QuizID = quizID
	s.Data.QuizStartTime = &startedAt
}

// ClearAttempt сбрасывает маркеры попытки независимо от её исхода
func (s *Session) ClearAttempt() {
	s.Data.QuizID = 0
	s.Data.QuizStartTime = nil
}
