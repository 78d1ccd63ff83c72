package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/handler/dto"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// ContentHandler обрабатывает админские операции над предметами и главами
type ContentHandler struct {
	contentService *service.ContentService
	sessions       *session.Manager
}

// NewContentHandler создает новый обработчик учебного контента
func NewContentHandler(contentService *service.ContentService, sessions *session.Manager) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		sessions:       sessions,
	}
}

// SubjectRequest представляет форму предмета
type SubjectRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// ChapterRequest представляет форму главы
type ChapterRequest struct {
	SubjectID   uint   `form:"subject_id" binding:"required"`
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

// ListSubjects отдает все предметы с главами
func (h *ContentHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.contentService.ListSubjects()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": dto.NewSubjectViews(subjects)})
}

// CreateSubject обрабатывает форму добавления предмета
func (h *ContentHandler) CreateSubject(c *gin.Context) {
	var req SubjectRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Subject name is required", "/admin/subjects")
		return
	}

	if _, err := h.contentService.CreateSubject(req.Name, req.Description); err != nil {
		flashError(c, h.sessions, err, "/admin/subjects")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Subject added successfully!", "/admin/subjects")
}

// UpdateSubject обрабатывает форму изменения предмета
func (h *ContentHandler) UpdateSubject(c *gin.Context) {
	id := middleware.GetUintParam(c, "subjectID")

	var req SubjectRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Subject name is required", "/admin/subjects")
		return
	}

	if _, err := h.contentService.UpdateSubject(id, req.Name, req.Description); err != nil {
		flashError(c, h.sessions, err, "/admin/subjects")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Subject updated successfully!", "/admin/subjects")
}

// DeleteSubject удаляет предмет со всем подчиненным контентом
func (h *ContentHandler) DeleteSubject(c *gin.Context) {
	id := middleware.GetUintParam(c, "subjectID")

	if err := h.contentService.DeleteSubject(id); err != nil {
		flashError(c, h.sessions, err, "/admin/subjects")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Subject deleted successfully!", "/admin/subjects")
}

// ListChapters отдает все главы с именами предметов
func (h *ContentHandler) ListChapters(c *gin.Context) {
	chapters, err := h.contentService.ListChapters()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapters": dto.NewChapterViews(chapters)})
}

// CreateChapter обрабатывает форму добавления главы
func (h *ContentHandler) CreateChapter(c *gin.Context) {
	var req ChapterRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Chapter name and subject are required", "/admin/chapters")
		return
	}

	if _, err := h.contentService.CreateChapter(req.SubjectID, req.Name, req.Description); err != nil {
		flashError(c, h.sessions, err, "/admin/chapters")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Chapter added successfully!", "/admin/chapters")
}

// UpdateChapter обрабатывает форму изменения главы
func (h *ContentHandler) UpdateChapter(c *gin.Context) {
	id := middleware.GetUintParam(c, "chapterID")

	var req ChapterRequest
	if err := c.ShouldBind(&req); err != nil {
		flashRedirect(c, h.sessions, session.FlashError, "Chapter name and subject are required", "/admin/chapters")
		return
	}

	if _, err := h.contentService.UpdateChapter(id, req.SubjectID, req.Name, req.Description); err != nil {
		flashError(c, h.sessions, err, "/admin/chapters")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Chapter updated successfully!", "/admin/chapters")
}

// DeleteChapter удаляет главу со всеми тестами и результатами
func (h *ContentHandler) DeleteChapter(c *gin.Context) {
	id := middleware.GetUintParam(c, "chapterID")

	if err := h.contentService.DeleteChapter(id); err != nil {
		flashError(c, h.sessions, err, "/admin/chapters")
		return
	}
	flashRedirect(c, h.sessions, session.FlashSuccess, "Chapter deleted successfully!", "/admin/chapters")
}
