package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// memoryStore — in-memory реализация repository.SessionRepository для тестов
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) SetJSON(key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return nil
}

func (s *memoryStore) GetJSON(key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (s *memoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStore) Exists(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok, nil
}

func (s *memoryStore) Touch(string, time.Duration) error { return nil }

// newTestRouter собирает роутер с защищенными маршрутами и менеджером сессий
func newTestRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := session.NewManager(newMemoryStore(), "0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	authMiddleware := NewAuthMiddleware(manager)

	router := gin.New()
	router.Use(authMiddleware.LoadSession())
	router.GET("/user/dashboard", authMiddleware.RequireUser(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetAuth(c).UserID})
	})
	router.GET("/admin/dashboard", authMiddleware.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router, manager
}

// loginAs сохраняет сессию с заданной ролью и возвращает её куку
func loginAs(t *testing.T, manager *session.Manager, userID uint, isAdmin bool) *http.Cookie {
	t.Helper()

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Data.UserID = userID
	sess.Data.FullName = "Test"
	sess.Data.IsAdmin = isAdmin

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Save(rec, sess))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestRequireUser_AllowsRegularUser(t *testing.T) {
	router, manager := newTestRouter(t)
	cookie := loginAs(t, manager, 7, false)

	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUser_RedirectsAnonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireUser_RejectsAdmin(t *testing.T) {
	// У администратора свой интерфейс; пользовательская часть для него закрыта
	router, manager := newTestRouter(t)
	cookie := loginAs(t, manager, 1, true)

	req := httptest.NewRequest(http.MethodGet, "/user/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAdmin_RejectsRegularUser(t *testing.T) {
	router, manager := newTestRouter(t)
	cookie := loginAs(t, manager, 7, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	router, manager := newTestRouter(t)
	cookie := loginAs(t, manager, 1, true)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
