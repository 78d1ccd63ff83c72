package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// AuthHandler обрабатывает вход, регистрацию и выход
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// LoginRequest представляет форму входа
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterRequest представляет форму регистрации
type RegisterRequest struct {
	Username      string `form:"username" binding:"required"`
	Password      string `form:"password" binding:"required,min=6"`
	FullName      string `form:"full_name" binding:"required"`
	Qualification string `form:"qualification"`
	DateOfBirth   string `form:"dob"`
}

// LoginPage отдает данные страницы входа вместе с flash-сообщениями
func (h *AuthHandler) LoginPage(c *gin.Context) {
	sess := middleware.GetSession(c)
	flashes := []session.Flash{}
	if sess != nil {
		flashes = sess.PopFlashes()
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[AuthHandler] Ошибка сохранения сессии на странице входа: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    "login",
		"flashes": dto.NewFlashViews(flashes),
	})
}

// Login обрабатывает форму входа и открывает сессию
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Username and password are required", "/login")
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			flashRedirect(c, h.sessions, session.FlashError, "Invalid username or password", "/login")
			return
		}
		flashError(c, h.sessions, err, "/login")
		return
	}

	sess := middleware.GetSession(c)
	if sess == nil {
		respondError(c, errors.New("session is not loaded"))
		return
	}

	// Анонимный идентификатор не должен пережить вход
	h.sessions.Renew(sess)

	sess.Data.UserID = user.ID
	sess.Data.FullName = user.FullName
	sess.Data.IsAdmin = user.IsAdmin
	sess.AddFlash(session.FlashSuccess, "Logged in successfully!")
	if err := h.sessions.Save(c.Writer, sess); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) вошел в систему", user.ID, user.Username)

	if user.IsAdmin {
		c.Redirect(http.StatusSeeOther, "/admin/dashboard")
		return
	}
	c.Redirect(http.StatusSeeOther, "/user/dashboard")
}

// RegisterPage отдает данные страницы регистрации
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	sess := middleware.GetSession(c)
	flashes := []session.Flash{}
	if sess != nil {
		flashes = sess.PopFlashes()
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[AuthHandler] Ошибка сохранения сессии на странице регистрации: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    "register",
		"flashes": dto.NewFlashViews(flashes),
	})
}

// Register обрабатывает форму регистрации
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Please fill in all required fields (password of 6+ characters)", "/register")
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		FullName:      req.FullName,
		Qualification: req.Qualification,
		DateOfBirth:   req.DateOfBirth,
	})
	if err != nil {
		flashError(c, h.sessions, err, "/register")
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) зарегистрирован", user.ID, user.Username)
	flashRedirect(c, h.sessions, session.FlashSuccess, "Registration successful! Please log in.", "/login")
}

// Logout закрывает сессию и возвращает на страницу входа
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess != nil {
		if err := h.sessions.Destroy(c.Writer, sess); err != nil {
			log.Printf("[AuthHandler] Ошибка уничтожения сессии: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/login")
}
