package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/pkg/session"
)

// Ключи контекста Gin
const (
	ContextSessionKey = "session"
	ContextAuthKey    = "auth"
)

// Role — роль вызывающего в рамках одного запроса
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
)

// AuthContext — явный контекст аутентификации запроса. Строится из
// сессии один раз на запрос и передается обработчикам через контекст
// Gin вместо чтения глобального состояния.
type AuthContext struct {
	Role     Role
	UserID   uint
	FullName string
}

// IsUser сообщает, аутентифицирован ли вызывающий как обычный пользователь
func (a AuthContext) IsUser() bool {
	return a.Role == RoleUser
}

// IsAdmin сообщает, аутентифицирован ли вызывающий как администратор
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// AuthMiddleware строит AuthContext из сессии и защищает маршруты по ролям
type AuthMiddleware struct {
	sessions *session.Manager
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// LoadSession загружает сессию запроса и кладет её вместе с AuthContext
// в контекст Gin. Применяется ко всем маршрутам до ролевых guard'ов.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := m.sessions.Load(c.Request)
		c.Set(ContextSessionKey, sess)

		auth := AuthContext{Role: RoleAnonymous}
		if sess.IsAuthenticated() {
			auth.UserID = sess.Data.UserID
			auth.FullName = sess.Data.FullName
			if sess.Data.IsAdmin {
				auth.Role = RoleAdmin
			} else {
				auth.Role = RoleUser
			}
		}
		c.Set(ContextAuthKey, auth)

		c.Next()
	}
}

// RequireUser пропускает только аутентифицированных обычных пользователей.
// Администратор здесь приравнен к постороннему: у него своя часть интерфейса.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetAuth(c).IsUser() {
			m.denyAccess(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin пропускает только администраторов
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetAuth(c).IsAdmin() {
			m.denyAccess(c)
			return
		}
		c.Next()
	}
}

// denyAccess прерывает запрос: flash "Access denied" и редирект на логин
func (m *AuthMiddleware) denyAccess(c *gin.Context) {
	sess := GetSession(c)
	if sess != nil {
		sess.AddFlash(session.FlashError, "Access denied")
		if err := m.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[AuthMiddleware] Ошибка сохранения сессии при отказе в доступе: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}

// GetSession возвращает сессию запроса из контекста Gin
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// GetAuth возвращает AuthContext запроса; при отсутствии — анонимный
func GetAuth(c *gin.Context) AuthContext {
	value, exists := c.Get(ContextAuthKey)
	if !exists {
		return AuthContext{Role: RoleAnonymous}
	}
	auth, ok := value.(AuthContext)
	if !ok {
		return AuthContext{Role: RoleAnonymous}
	}
	return auth
}
