package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// AdminHandler обрабатывает админский дашборд и операции над пользователями
type AdminHandler struct {
	statsService *service.StatsService
	userService  *service.UserService
	sessions     *session.Manager
}

// NewAdminHandler создает новый админский обработчик
func NewAdminHandler(statsService *service.StatsService, userService *service.UserService, sessions *session.Manager) *AdminHandler {
	return &AdminHandler{
		statsService: statsService,
		userService:  userService,
		sessions:     sessions,
	}
}

// Dashboard отдает сводные счетчики и данные для графиков
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.statsService.Counts()
	if err != nil {
		respondError(c, err)
		return
	}
	registrations, err := h.statsService.Registrations(time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	attempts, err := h.statsService.SubjectAttempts()
	if err != nil {
		respondError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	flashes := []session.Flash{}
	if sess != nil {
		flashes = sess.PopFlashes()
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[AdminHandler] Ошибка сохранения сессии на дашборде: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":           counts,
		"registrations":    registrations,
		"subject_attempts": attempts,
		"flashes":          dto.NewFlashViews(flashes),
	})
}

// ListUsers отдает всех обычных пользователей
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.NewUserViews(users)})
}

// DeleteUser удаляет пользователя вместе с его результатами
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := middleware.GetUintParam(c, "userID")

	if err := h.userService.DeleteUser(id); err != nil {
		flashError(c, h.sessions, err, "/admin/users")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "User deleted successfully!", "/admin/users")
}

// UserScores отдает все результаты пользователя для админского просмотра
func (h *AdminHandler) UserScores(c *gin.Context) {
	id := middleware.GetUintParam(c, "userID")

	user, scores, err := h.userService.UserScores(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   dto.NewUserView(user),
		"scores": dto.NewScoreViews(scores),
	})
}

// ExportUserScores выгружает результаты пользователя в xlsx
func (h *AdminHandler) ExportUserScores(c *gin.Context) {
	id := middleware.GetUintParam(c, "userID")

	user, scores, err := h.userService.UserScores(id)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("scores_user_%d", user.ID)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	// StreamWriter на случай больших историй попыток
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Scores"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Subject", "Chapter", "Quiz ID", "Scored", "Total Questions", "Percentage", "Attempted At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	views := dto.NewScoreViews(scores)
	for i, score := range views {
		rowNum := i + 2 // первая строка занята заголовками
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			sanitizeForExcel(score.SubjectName),
			sanitizeForExcel(score.ChapterName),
			score.QuizID,
			score.TotalScored,
			score.TotalQuestions,
			score.Percentage,
			score.AttemptedAt.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
