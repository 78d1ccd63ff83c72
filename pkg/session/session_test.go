package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

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

// roundTrip сохраняет сессию и возвращает запрос с выставленной кукой
func roundTrip(t *testing.T, m *Manager, sess *Session) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, sess))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "Save должен выставить ровно одну куку")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return req
}

func TestManager_SaveAndLoad(t *testing.T) {
	// Arrange
	manager, err := NewManager(newMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Data.UserID = 42
	sess.Data.FullName = "Test Student"
	sess.Data.IsAdmin = false

	// Act: сохраняем и загружаем по куке
	req := roundTrip(t, manager, sess)
	loaded := manager.Load(req)

	// Assert
	assert.Equal(t, sess.ID, loaded.ID, "Идентификатор сессии должен сохраняться между запросами")
	assert.Equal(t, uint(42), loaded.Data.UserID)
	assert.Equal(t, "Test Student", loaded.Data.FullName)
	assert.True(t, loaded.IsAuthenticated())
}

func TestManager_Load_NoCookieReturnsFreshSession(t *testing.T) {
	manager, err := NewManager(newMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, sess.ID, "Новая сессия должна получить идентификатор")
	assert.False(t, sess.IsAuthenticated(), "Новая сессия должна быть анонимной")
}

func TestManager_Load_RejectsTamperedCookie(t *testing.T) {
	manager, err := NewManager(newMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Data.UserID = 7
	req := roundTrip(t, manager, sess)

	// Подменяем подпись куки
	cookie := req.Cookies()[0]
	tampered := cookie.Value[:strings.LastIndex(cookie.Value, ".")] + ".forged"
	forgedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	forgedReq.AddCookie(&http.Cookie{Name: SessionCookie, Value: tampered})

	loaded := manager.Load(forgedReq)

	assert.NotEqual(t, sess.ID, loaded.ID, "Подделанная кука не должна открывать существующую сессию")
	assert.False(t, loaded.IsAuthenticated())
}

func TestManager_Destroy(t *testing.T) {
	store := newMemoryStore()
	manager, err := NewManager(store, testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Data.UserID = 5
	req := roundTrip(t, manager, sess)

	rec := httptest.NewRecorder()
	require.NoError(t, manager.Destroy(rec, sess))

	// Данные стерты и в сессии, и в хранилище
	assert.Zero(t, sess.Data.UserID, "Destroy должен очистить данные сессии")
	exists, _ := store.Exists("session:" + sess.ID)
	assert.False(t, exists, "Destroy должен удалить сессию из хранилища")

	// Старая кука больше не работает
	loaded := manager.Load(req)
	assert.False(t, loaded.IsAuthenticated())
}

func TestManager_Renew_RotatesIdentifier(t *testing.T) {
	// Идентификатор, выданный до входа, не должен открывать
	// аутентифицированную сессию
	store := newMemoryStore()
	manager, err := NewManager(store, testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.AddFlash(FlashInfo, "pre-login message")
	preLoginReq := roundTrip(t, manager, sess)
	oldID := sess.ID

	// Act: вход ротирует идентификатор и сохраняет сессию заново
	manager.Renew(sess)
	sess.Data.UserID = 42
	postLoginReq := roundTrip(t, manager, sess)

	// Assert
	assert.NotEqual(t, oldID, sess.ID, "Renew должен выдать новый идентификатор")

	exists, _ := store.Exists("session:" + oldID)
	assert.False(t, exists, "Запись старого идентификатора должна быть удалена")

	stale := manager.Load(preLoginReq)
	assert.False(t, stale.IsAuthenticated(), "Старая кука не должна открывать аутентифицированную сессию")

	fresh := manager.Load(postLoginReq)
	assert.Equal(t, uint(42), fresh.Data.UserID)
	flashes := fresh.PopFlashes()
	require.Len(t, flashes, 1, "Данные сессии переезжают вместе с новым идентификатором")
	assert.Equal(t, "pre-login message", flashes[0].Message)
}

func TestSession_Flashes(t *testing.T) {
	manager, err := NewManager(newMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.AddFlash(FlashSuccess, "Subject added successfully!")
	sess.AddFlash(FlashError, "Access denied")

	flashes := sess.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, FlashSuccess, flashes[0].Category)
	assert.Equal(t, "Subject added successfully!", flashes[0].Message)
	assert.Equal(t, FlashError, flashes[1].Category)

	// Повторный Pop возвращает пустой список
	assert.Empty(t, sess.PopFlashes(), "Flash-сообщения одноразовые")
}

func TestSession_AttemptMarkers(t *testing.T) {
	manager, err := NewManager(newMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	sess := manager.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	startedAt := time.Now()

	sess.StartAttempt(12, startedAt)
	assert.Equal(t, uint(12), sess.Data.QuizID)
	require.NotNil(t, sess.Data.QuizStartTime)

	sess.ClearAttempt()
	assert.Zero(t, sess.Data.QuizID, "ClearAttempt должен сбросить маркеры попытки")
	assert.Nil(t, sess.Data.QuizStartTime)
}

func TestNewManager_RequiresStrongSecret(t *testing.T) {
	_, err := NewManager(newMemoryStore(), "short", time.Hour)
	assert.Error(t, err, "Короткий секрет должен быть отклонен")
}
