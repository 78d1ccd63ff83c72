// Package dto содержит модели представления для JSON-ответов обработчиков.
// Сущности домена не отдаются наружу напрямую: модели скрывают служебные
// поля и правильные ответы вопросов во время попытки.
package dto

import (
	"time"

	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

// FlashView — одноразовое сообщение для отображения на странице
type FlashView struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// NewFlashViews конвертирует flash-сообщения сессии
func NewFlashViews(flashes []session.Flash) []FlashView {
	views := make([]FlashView, 0, len(flashes))
	for _, f := range flashes {
		views = append(views, FlashView{Category: f.Category, Message: f.Message})
	}
	return views
}

// SubjectView — предмет в списках и на дашбордах
type SubjectView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Chapters    []ChapterView `json:"chapters,omitempty"`
}

// NewSubjectView конвертирует предмет вместе с загруженными главами
func NewSubjectView(subject *entity.Subject) SubjectView {
	view := SubjectView{
		ID:          subject.ID,
		Name:        subject.Name,
		Description: subject.Description,
	}
	for i := range subject.Chapters {
		view.Chapters = append(view.Chapters, NewChapterView(&subject.Chapters[i]))
	}
	return view
}

// NewSubjectViews конвертирует список предметов
func NewSubjectViews(subjects []entity.Subject) []SubjectView {
	views := make([]SubjectView, 0, len(subjects))
	for i := range subjects {
		views = append(views, NewSubjectView(&subjects[i]))
	}
	return views
}

// ChapterView — глава с необязательным именем предмета для админских списков
type ChapterView struct {
	ID          uint   `json:"id"`
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewChapterView конвертирует главу; имя предмета берется из предзагрузки
func NewChapterView(chapter *entity.Chapter) ChapterView {
	view := ChapterView{
		ID:          chapter.ID,
		SubjectID:   chapter.SubjectID,
		Name:        chapter.Name,
		Description: chapter.Description,
	}
	if chapter.Subject != nil {
		view.SubjectName = chapter.Subject.Name
	}
	return view
}

// NewChapterViews конвертирует список глав
func NewChapterViews(chapters []entity.Chapter) []ChapterView {
	views := make([]ChapterView, 0, len(chapters))
	for i := range chapters {
		views = append(views, NewChapterView(&chapters[i]))
	}
	return views
}

// QuizView — тест с цепочкой глава/предмет для отображения
type QuizView struct {
	ID           uint   `json:"id"`
	ChapterID    uint   `json:"chapter_id"`
	ChapterName  string `json:"chapter_name,omitempty"`
	SubjectName  string `json:"subject_name,omitempty"`
	DateOfQuiz   string `json:"date_of_quiz"`
	TimeDuration int    `json:"time_duration"`
	Remarks      string `json:"remarks"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

// NewQuizView конвертирует тест; глава и предмет берутся из предзагрузки
func NewQuizView(quiz *entity.Quiz) QuizView {
	view := QuizView{
		ID:           quiz.ID,
		ChapterID:    quiz.ChapterID,
		DateOfQuiz:   quiz.DateOfQuiz.Format("2006-01-02"),
		TimeDuration: quiz.TimeDuration,
		Remarks:      quiz.Remarks,
		NumQuestions: len(quiz.Questions),
	}
	if quiz.Chapter != nil {
		view.ChapterName = quiz.Chapter.Name
		if quiz.Chapter.Subject != nil {
			view.SubjectName = quiz.Chapter.Subject.Name
		}
	}
	return view
}

// NewQuizViews конвертирует список тестов
func NewQuizViews(quizzes []entity.Quiz) []QuizView {
	views := make([]QuizView, 0, len(quizzes))
	for i := range quizzes {
		views = append(views, NewQuizView(&quizzes[i]))
	}
	return views
}

// AttemptQuestionView — вопрос во время попытки, без правильного ответа
type AttemptQuestionView struct {
	ID                uint     `json:"id"`
	QuestionStatement string   `json:"question_statement"`
	Options           []string `json:"options"`
}

// NewAttemptQuestionViews конвертирует вопросы теста для прохождения
func NewAttemptQuestionViews(questions []entity.Question) []AttemptQuestionView {
	views := make([]AttemptQuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, AttemptQuestionView{
			ID:                questions[i].ID,
			QuestionStatement: questions[i].QuestionStatement,
			Options:           questions[i].Options(),
		})
	}
	return views
}

// AdminQuestionView — вопрос в админке, с правильным ответом
type AdminQuestionView struct {
	ID                uint     `json:"id"`
	QuizID            uint     `json:"quiz_id"`
	QuestionStatement string   `json:"question_statement"`
	Options           []string `json:"options"`
	CorrectOption     int      `json:"correct_option"`
}

// NewAdminQuestionViews конвертирует вопросы для админских списков
func NewAdminQuestionViews(questions []entity.Question) []AdminQuestionView {
	views := make([]AdminQuestionView, 0, len(questions))
	for i := range questions {
		views = append(views, AdminQuestionView{
			ID:                questions[i].ID,
			QuizID:            questions[i].QuizID,
			QuestionStatement: questions[i].QuestionStatement,
			Options:           questions[i].Options(),
			CorrectOption:     questions[i].CorrectOption,
		})
	}
	return views
}

// ScoreView — результат попытки с цепочкой тест/глава/предмет
type ScoreView struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quiz_id"`
	SubjectName    string    `json:"subject_name,omitempty"`
	ChapterName    string    `json:"chapter_name,omitempty"`
	TotalScored    int       `json:"total_scored"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// NewScoreView конвертирует результат попытки
func NewScoreView(score *entity.Score) ScoreView {
	view := ScoreView{
		ID:             score.ID,
		QuizID:         score.QuizID,
		TotalScored:    score.TotalScored,
		TotalQuestions: score.TotalQuestions,
		Percentage:     score.Percentage(),
		AttemptedAt:    score.TimeStampOfAttempt,
	}
	if score.Quiz != nil && score.Quiz.Chapter != nil {
		view.ChapterName = score.Quiz.Chapter.Name
		if score.Quiz.Chapter.Subject != nil {
			view.SubjectName = score.Quiz.Chapter.Subject.Name
		}
	}
	return view
}

// NewScoreViews конвертирует список результатов
func NewScoreViews(scores []entity.Score) []ScoreView {
	views := make([]ScoreView, 0, len(scores))
	for i := range scores {
		views = append(views, NewScoreView(&scores[i]))
	}
	return views
}

// UserView — пользователь в админских списках и профиле
type UserView struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name"`
	Qualification string     `json:"qualification"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewUserView конвертирует пользователя, скрывая хеш пароля и флаг роли
func NewUserView(user *entity.User) UserView {
	return UserView{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Qualification: user.Qualification,
		DateOfBirth:   user.DateOfBirth,
		CreatedAt:     user.CreatedAt,
	}
}

// NewUserViews конвертирует список пользователей
func NewUserViews(users []entity.User) []UserView {
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, NewUserView(&users[i]))
	}
	return views
}
