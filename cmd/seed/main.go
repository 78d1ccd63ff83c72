// Команда seed наполняет базу демонстрационными данными:
// примеры пользователей, предметы с главами и один тест с вопросами.
// Повторный запуск безопасен: существующие записи не дублируются.
package main

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/yourusername/quizmaster-api/internal/bootstrap"
	"github.com/yourusername/quizmaster-api/internal/config"
	"github.com/yourusername/quizmaster-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizmaster-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/quizmaster-api/internal/repository/postgres"
	"github.com/yourusername/quizmaster-api/pkg/database"
	"gorm.io/gorm"
)

type sampleUser struct {
	username      string
	password      string
	fullName      string
	qualification string
	dob           time.Time
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[Seed] Failed to load config: %v", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("[Seed] Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := database.MigrateDB(db); err != nil {
		log.Printf("[Seed] Failed to migrate database: %v", err)
		os.Exit(1)
	}

	userRepo := pgRepo.NewUserRepo(db)

	if err := bootstrap.EnsureAdmin(userRepo, cfg.Admin); err != nil {
		log.Printf("[Seed] Failed to ensure admin account: %v", err)
		os.Exit(1)
	}

	seedUsers(userRepo)
	subjectIDs := seedSubjects(db)
	chapterIDs := seedChapters(db, subjectIDs)
	seedQuiz(db, chapterIDs)

	log.Println("[Seed] Демо-данные готовы")
}

// seedUsers создает примеры обычных пользователей
func seedUsers(userRepo *pgRepo.UserRepo) {
	users := []sampleUser{
		{"john.doe@example.com", "password123", "John Doe", "Bachelor of Science", time.Date(1995, 5, 15, 0, 0, 0, 0, time.UTC)},
		{"jane.smith@example.com", "password123", "Jane Smith", "Master of Arts", time.Date(1993, 8, 22, 0, 0, 0, 0, time.UTC)},
		{"student@example.com", "student123", "Test Student", "High School", time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, u := range users {
		if _, err := userRepo.GetByUsername(u.username); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[Seed] Ошибка проверки пользователя %s: %v", u.username, err)
			continue
		}

		dob := u.dob
		user := &entity.User{
			Username:      u.username,
			Password:      u.password, // хешируется в BeforeSave
			FullName:      u.fullName,
			Qualification: u.qualification,
			DateOfBirth:   &dob,
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("[Seed] Ошибка создания пользователя %s: %v", u.username, err)
			continue
		}
		log.Printf("[Seed] Создан пользователь %s", u.username)
	}
}

// seedSubjects создает предметы и возвращает их идентификаторы по имени
func seedSubjects(db *gorm.DB) map[string]uint {
	subjects := []entity.Subject{
		{Name: "Mathematics", Description: "Comprehensive mathematics covering algebra, geometry, calculus, and statistics."},
		{Name: "Science", Description: "General science including physics, chemistry, and biology concepts."},
		{Name: "History", Description: "World history covering ancient civilizations to modern times."},
		{Name: "English Literature", Description: "English literature, grammar, and comprehension skills."},
		{Name: "Computer Science", Description: "Programming, algorithms, data structures, and computer fundamentals."},
	}

	ids := make(map[string]uint, len(subjects))
	for _, s := range subjects {
		var existing entity.Subject
		err := db.Where("name = ?", s.Name).First(&existing).Error
		if err == nil {
			ids[s.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Seed] Ошибка проверки предмета %s: %v", s.Name, err)
			continue
		}

		subject := s
		if err := db.Create(&subject).Error; err != nil {
			log.Printf("[Seed] Ошибка создания предмета %s: %v", s.Name, err)
			continue
		}
		ids[subject.Name] = subject.ID
		log.Printf("[Seed] Создан предмет %s", subject.Name)
	}
	return ids
}

// seedChapters создает главы и возвращает их идентификаторы по имени
func seedChapters(db *gorm.DB, subjectIDs map[string]uint) map[string]uint {
	chaptersBySubject := map[string][]entity.Chapter{
		"Mathematics": {
			{Name: "Algebra Basics", Description: "Linear equations, quadratic equations, and polynomials"},
			{Name: "Geometry", Description: "Shapes, angles, area, and volume calculations"},
			{Name: "Calculus", Description: "Derivatives, integrals, and limits"},
			{Name: "Statistics", Description: "Mean, median, mode, and probability"},
		},
		"Science": {
			{Name: "Physics Fundamentals", Description: "Motion, force, energy, and waves"},
			{Name: "Chemistry Basics", Description: "Atoms, molecules, and chemical reactions"},
			{Name: "Biology Introduction", Description: "Cell structure, genetics, and evolution"},
			{Name: "Earth Science", Description: "Geology, weather, and environmental science"},
		},
		"Computer Science": {
			{Name: "Programming Basics", Description: "Variables, loops, and functions"},
			{Name: "Data Structures", Description: "Arrays, lists, stacks, and queues"},
			{Name: "Algorithms", Description: "Sorting, searching, and optimization"},
			{Name: "Web Development", Description: "HTML, CSS, JavaScript, and frameworks"},
		},
	}

	ids := make(map[string]uint)
	for subjectName, chapters := range chaptersBySubject {
		subjectID, ok := subjectIDs[subjectName]
		if !ok {
			continue
		}
		for _, ch := range chapters {
			var existing entity.Chapter
			err := db.Where("name = ? AND subject_id = ?", ch.Name, subjectID).First(&existing).Error
			if err == nil {
				ids[ch.Name] = existing.ID
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("[Seed] Ошибка проверки главы %s: %v", ch.Name, err)
				continue
			}

			chapter := ch
			chapter.SubjectID = subjectID
			if err := db.Create(&chapter).Error; err != nil {
				log.Printf("[Seed] Ошибка создания главы %s: %v", ch.Name, err)
				continue
			}
			ids[chapter.Name] = chapter.ID
		}
	}
	log.Println("[Seed] Главы готовы")
	return ids
}

// seedQuiz создает один тест по алгебре с пятью вопросами
func seedQuiz(db *gorm.DB, chapterIDs map[string]uint) {
	chapterID, ok := chapterIDs["Algebra Basics"]
	if !ok {
		return
	}

	var existing entity.Quiz
	err := db.Where("chapter_id = ?", chapterID).First(&existing).Error
	if err == nil {
		return // тест уже есть
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[Seed] Ошибка проверки теста: %v", err)
		return
	}

	quiz := entity.Quiz{
		ChapterID:    chapterID,
		DateOfQuiz:   time.Now().Truncate(24 * time.Hour),
		TimeDuration: 30,
		Remarks:      "Basic algebra assessment",
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Printf("[Seed] Ошибка создания теста: %v", err)
		return
	}

	questions := []entity.Question{
		{QuestionStatement: "What is the value of x in the equation: 2x + 5 = 13?", Option1: "x = 3", Option2: "x = 4", Option3: "x = 5", Option4: "x = 6", CorrectOption: 2},
		{QuestionStatement: "Simplify: 3x + 7x", Option1: "10x", Option2: "21x", Option3: "10x²", Option4: "4x", CorrectOption: 1},
		{QuestionStatement: "What is the slope of the line y = 2x + 3?", Option1: "2", Option2: "3", Option3: "2x", Option4: "5", CorrectOption: 1},
		{QuestionStatement: "Factor: x² - 9", Option1: "(x - 3)(x - 3)", Option2: "(x + 3)(x + 3)", Option3: "(x + 3)(x - 3)", Option4: "Cannot be factored", CorrectOption: 3},
		{QuestionStatement: "If f(x) = 2x + 1, what is f(5)?", Option1: "10", Option2: "11", Option3: "12", Option4: "9", CorrectOption: 2},
	}
	for i := range questions {
		questions[i].QuizID = quiz.ID
		if err := db.Create(&questions[i]).Error; err != nil {
			log.Printf("[Seed] Ошибка создания вопроса: %v", err)
		}
	}
	log.Printf("[Seed] Создан тест по алгебре с %d вопросами", len(questions))
}
