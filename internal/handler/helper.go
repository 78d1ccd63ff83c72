package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/middleware"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// respondError переводит доменную ошибку в HTTP-статус и JSON-ответ
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// flashRedirect добавляет flash-сообщение, сохраняет сессию и делает
// редирект после обработки формы
func flashRedirect(c *gin.Context, sessions *session.Manager, category, message, location string) {
	sess := middleware.GetSession(c)
	if sess != nil {
		sess.AddFlash(category, message)
		if err := sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[Handler] Ошибка сохранения сессии перед редиректом: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, location)
}

// flashError переводит доменную ошибку формы во flash-сообщение и редирект.
// Текст валидационных ошибок показывается как есть, внутренние скрываются.
func flashError(c *gin.Context, sessions *session.Manager, err error, location string) {
	message := "Something went wrong. Please try again."
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrForbidden):
		message = userFacingMessage(err)
	case errors.Is(err, apperrors.ErrNotFound):
		message = "Resource not found"
	default:
		log.Printf("[Handler] Внутренняя ошибка формы: %v", err)
	}
	flashRedirect(c, sessions, session.FlashError, message, location)
}

// userFacingMessage срезает префикс сентинельной ошибки, оставляя
// человекочитаемую часть
func userFacingMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		apperrors.ErrValidation,
		apperrors.ErrConflict,
		apperrors.ErrUnauthorized,
		apperrors.ErrForbidden,
	} {
		if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
			return trimmed
		}
	}
	return msg
}
