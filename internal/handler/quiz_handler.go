package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// QuizHandler обрабатывает админские операции над тестами и вопросами
type QuizHandler struct {
	quizService *service.QuizService
	sessions    *session.Manager
}

// NewQuizHandler создает новый обработчик тестов
func NewQuizHandler(quizService *service.QuizService, sessions *session.Manager) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		sessions:    sessions,
	}
}

// QuizRequest представляет форму теста
type QuizRequest struct {
	ChapterID    uint   `form:"chapter_id" binding:"required"`
	DateOfQuiz   string `form:"date_of_quiz" binding:"required"`
	TimeDuration int    `form:"time_duration" binding:"required"`
	Remarks      string `form:"remarks"`
}

// QuestionRequest представляет форму вопроса
type QuestionRequest struct {
	QuestionStatement string `form:"question_statement" binding:"required"`
	Option1           string `form:"option1" binding:"required"`
	Option2           string `form:"option2" binding:"required"`
	Option3           string `form:"option3" binding:"required"`
	Option4           string `form:"option4" binding:"required"`
	CorrectOption     int    `form:"correct_option" binding:"required"`
}

// ListQuizzes отдает все тесты с главой и предметом
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewQuizViews(quizzes)})
}

// CreateQuiz обрабатывает форму добавления теста
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Chapter, date and duration are required", "/admin/quizzes")
		return
	}

	if _, err := h.quizService.CreateQuiz(service.QuizInput{
		ChapterID:    req.ChapterID,
		DateOfQuiz:   req.DateOfQuiz,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	}); err != nil {
		flashError(c, h.sessions, err, "/admin/quizzes")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Quiz added successfully!", "/admin/quizzes")
}

// UpdateQuiz обрабатывает форму изменения теста
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := middleware.GetUintParam(c, "quizID")

	var req QuizRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Chapter, date and duration are required", "/admin/quizzes")
		return
	}

	if _, err := h.quizService.UpdateQuiz(id, service.QuizInput{
		ChapterID:    req.ChapterID,
		DateOfQuiz:   req.DateOfQuiz,
		TimeDuration: req.TimeDuration,
		Remarks:      req.Remarks,
	}); err != nil {
		flashError(c, h.sessions, err, "/admin/quizzes")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Quiz updated successfully!", "/admin/quizzes")
}

// DeleteQuiz удаляет тест вместе с вопросами и результатами
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id := middleware.GetUintParam(c, "quizID")

	if err := h.quizService.DeleteQuiz(id); err != nil {
		flashError(c, h.sessions, err, "/admin/quizzes")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Quiz deleted successfully!", "/admin/quizzes")
}

// ListQuestions отдает вопросы теста вместе с правильными ответами
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")

	quiz, err := h.quizService.GetQuiz(quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	questions, err := h.quizService.ListQuestions(quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quiz":      dto.NewQuizView(quiz),
		"questions": dto.NewAdminQuestionViews(questions),
	})
}

// CreateQuestion обрабатывает форму добавления вопроса
func (h *QuizHandler) CreateQuestion(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")
	location := fmt.Sprintf("/admin/quizzes/%d/questions", quizID)

	var req QuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "All question fields are required", location)
		return
	}

	if _, err := h.quizService.CreateQuestion(quizID, questionInput(req)); err != nil {
		flashError(c, h.sessions, err, location)
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Question added successfully!", location)
}

// UpdateQuestion обрабатывает форму изменения вопроса
func (h *QuizHandler) UpdateQuestion(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")
	questionID := middleware.GetUintParam(c, "questionID")
	location := fmt.Sprintf("/admin/quizzes/%d/questions", quizID)

	var req QuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "All question fields are required", location)
		return
	}

	if _, err := h.quizService.UpdateQuestion(questionID, questionInput(req)); err != nil {
		flashError(c, h.sessions, err, location)
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Question updated successfully!", location)
}

// DeleteQuestion удаляет вопрос
func (h *QuizHandler) DeleteQuestion(c *gin.Context) {
	quizID := middleware.GetUintParam(c, "quizID")
	questionID := middleware.GetUintParam(c, "questionID")
	location := fmt.Sprintf("/admin/quizzes/%d/questions", quizID)

	if err := h.quizService.DeleteQuestion(questionID); err != nil {
		flashError(c, h.sessions, err, location)
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Question deleted successfully!", location)
}

// questionInput конвертирует форму вопроса во входные данные сервиса
func questionInput(req QuestionRequest) service.QuestionInput {
	return service.QuestionInput{
		QuestionStatement: req.QuestionStatement,
		Option1:           req.Option1,
		Option2:           req.Option2,
		Option3:           req.Option3,
		Option4:           req.Option4,
		CorrectOption:     req.CorrectOption,
	}
}
