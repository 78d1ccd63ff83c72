package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// UserHandler обрабатывает пользовательскую часть: просмотр контента,
// прохождение тестов, история результатов и профиль
type UserHandler struct {
	contentService *service.ContentService
	quizService    *service.QuizService
	attemptService *service.AttemptService
	authService    *service.AuthService
	sessions       *session.Manager
}

// NewUserHandler создает новый пользовательский обработчик
func NewUserHandler(
	contentService *service.ContentService,
	quizService *service.QuizService,
	attemptService *service.AttemptService,
	authService *service.AuthService,
	sessions *session.Manager,
) *UserHandler {
	return &UserHandler{
		contentService: contentService,
		quizService:    quizService,
		attemptService: attemptService,
		authService:    authService,
		sessions:       sessions,
	}
}

// ProfileRequest представляет форму редактирования профиля
type ProfileRequest struct {
	FullName      string `form:"full_name" binding:"required"`
	Qualification string `form:"qualification"`
	DateOfBirth   string `form:"dob"`
}

// ChangePasswordRequest представляет форму смены пароля
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword     string `form:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

// Dashboard отдает предметы и последние результаты пользователя
func (h *UserHandler) Dashboard(c *gin.Context) {
	auth := middleware.GetAuth(c)

	subjects, err := h.contentService.ListSubjects()
	if err != nil {
		respondError(c, err)
		return
	}
	recent, err := h.attemptService.RecentScores(auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	flashes := []session.Flash{}
	if sess != nil {
		flashes = sess.PopFlashes()
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[UserHandler] Ошибка сохранения сессии на дашборде: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"full_name":     auth.FullName,
		"subjects":      dto.NewSubjectViews(subjects),
		"recent_scores": dto.NewScoreViews(recent),
		"flashes":       dto.NewFlashViews(flashes),
	})
}

// SubjectChapters отдает главы выбранного предмета
func (h *UserHandler) SubjectChapters(c *gin.Context) {
	subjectID := middleware.GetUintParam(c, "subjectID")

	subject, err := h.contentService.GetSubject(subjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	chapters, err := h.contentService.ChaptersBySubject(subjectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subject":  dto.NewSubjectView(subject),
		"chapters": dto.NewChapterViews(chapters),
	})
}

// ChapterQuizzes отдает тесты выбранной главы
func (h *UserHandler) ChapterQuizzes(c *gin.Context) {
	chapterID := middleware.GetUintParam(c, "chapterID")

	chapter, err := h.contentService.GetChapter(chapterID)
	if err != nil {
		respondError(c, err)
		return
	}
	quizzes, err := h.quizService.QuizzesByChapter(chapterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"chapter": dto.NewChapterView(chapter),
		"quizzes": dto.NewQuizViews(quizzes),
	})
}

// StartQuiz начинает попытку: отдает вопросы без правильных ответов
// и запоминает момент старта в сессии
func (h *UserHandler) StartQuiz(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")

	quiz, err := h.attemptService.StartQuiz(quizID)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			flashRedirect(c, h.sessions, session.FlashWarning, "This quiz has no questions yet.", "/user/dashboard")
			return
		}
		respondError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	if sess != nil {
		sess.StartAttempt(quiz.ID, time.Now())
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz":      dto.NewQuizView(quiz),
		"questions": dto.NewAttemptQuestionViews(quiz.Questions),
	})
}

// SubmitQuiz принимает ответы формы, подсчитывает результат и ведет
// на страницу результата. Поля формы: question_<id> = номер варианта.
func (h *UserHandler) SubmitQuiz(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")
	auth := middleware.GetAuth(c)

	if err := c.Request.ParseForm(); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Invalid form submission", "/user/dashboard")
		return
	}

	answers := make(map[uint]int)
	for field, values := range c.Request.PostForm {
		var questionID uint
		if _, err := fmt.Sscanf(field, "question_%d", &questionID); err != nil || len(values) == 0 {
			continue
		}
		selected, err := strconv.Atoi(values[0])
		if err != nil {
			continue // вопрос без разбираемого ответа считается неотвеченным
		}
		answers[questionID] = selected
	}

	score, err := h.attemptService.SubmitQuiz(quizID, auth.UserID, answers)

	// Маркеры попытки очищаются независимо от исхода
	if sess := middleware.GetSession(c); sess != nil {
		sess.ClearAttempt()
		if saveErr := h.sessions.Save(c.Writer, sess); saveErr != nil {
			log.Printf("[UserHandler] Ошибка сохранения сессии после попытки: %v", saveErr)
		}
	}

	if err != nil {
		flashError(c, h.sessions, err, "/user/dashboard")
		return
	}

	log.Printf("[UserHandler] Пользователь ID=%d завершил тест ID=%d: %d/%d",
		auth.UserID, quizID, score.TotalScored, score.TotalQuestions)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/user/quiz/result/%d", score.ID))
}

// QuizResult отдает результат попытки, принадлежащей пользователю
func (h *UserHandler) QuizResult(c *gin.Context) {
	scoreID := middleware.GetUintParam(c, "scoreID")
	auth := middleware.GetAuth(c)

	score, err := h.attemptService.GetResult(scoreID, auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": dto.NewScoreView(score)})
}

// Scores отдает всю историю результатов пользователя
func (h *UserHandler) Scores(c *gin.Context) {
	auth := middleware.GetAuth(c)

	scores, err := h.attemptService.History(auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": dto.NewScoreViews(scores)})
}

// Profile отдает профиль пользователя
func (h *UserHandler) Profile(c *gin.Context) {
	auth := middleware.GetAuth(c)

	user, err := h.authService.GetProfile(auth.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	flashes := []session.Flash{}
	if sess != nil {
		flashes = sess.PopFlashes()
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[UserHandler] Ошибка сохранения сессии в профиле: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": dto.NewUserView(user),
		"flashes": dto.NewFlashViews(flashes),
	})
}

// UpdateProfile обрабатывает форму редактирования профиля
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	auth := middleware.GetAuth(c)

	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Full name is required", "/user/profile")
		return
	}

	user, err := h.authService.UpdateProfile(auth.UserID, req.FullName, req.Qualification, req.DateOfBirth)
	if err != nil {
		flashError(c, h.sessions, err, "/user/profile")
		return
	}

	// Имя в сессии должно отражать обновленный профиль
	if sess := middleware.GetSession(c); sess != nil {
		sess.Data.FullName = user.FullName
		sess.AddFlash(session.FlashSuccess, "Profile updated successfully!")
		if err := h.sessions.Save(c.Writer, sess); err != nil {
			log.Printf("[UserHandler] Ошибка сохранения сессии после обновления профиля: %v", err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/user/profile")
}

// ChangePassword обрабатывает форму смены пароля
func (h *UserHandler) ChangePassword(c *gin.Context) {
	auth := middleware.GetAuth(c)

	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "All password fields are required", "/user/profile")
		return
	}

	if err := h.authService.ChangePassword(auth.UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		flashError(c, h.sessions, err, "/user/profile")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Password changed successfully!", "/user/profile")
}
