package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizmaster-api/internal/bootstrap"
	"github.com/yourusername/quizmaster-api/internal/config"
	"github.com/yourusername/quizmaster-api/internal/handler"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	pgRepo "github.com/yourusername/quizmaster-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizmaster-api/internal/repository/redis"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/database"
	"github.com/yourusername/quizmaster-api/pkg/session"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis с использованием унифицированной конфигурации
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	subjectRepo := pgRepo.NewSubjectRepo(db)
	chapterRepo := pgRepo.NewChapterRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	scoreRepo := pgRepo.NewScoreRepo(db)

	sessionRepo, err := redisRepo.NewSessionRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize SessionRepo: %v", err)
		os.Exit(1)
	}

	// Создаем учетную запись администратора, если её еще нет
	if err := bootstrap.EnsureAdmin(userRepo, cfg.Admin); err != nil {
		log.Printf("Failed to ensure admin account: %v", err)
		os.Exit(1)
	}

	// Менеджер сессий: данные в Redis, кука с подписанным идентификатором
	sessionLifetime := time.Duration(cfg.Session.LifetimeHrs) * time.Hour
	sessions, err := session.NewManager(sessionRepo, cfg.Session.Secret, sessionLifetime)
	if err != nil {
		log.Printf("Failed to initialize session manager: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode
	cookieSecure := cfg.Session.CookieSecure || isProduction
	sessions.SetCookieAttributes(cookieSecure, http.SameSiteLaxMode)

	// Сервис почты: реальная отправка только при включенном Email.Enabled
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, emailService)
	if err != nil {
		log.Printf("Failed to initialize AuthService: %v", err)
		os.Exit(1)
	}
	contentService, err := service.NewContentService(subjectRepo, chapterRepo)
	if err != nil {
		log.Printf("Failed to initialize ContentService: %v", err)
		os.Exit(1)
	}
	quizService, err := service.NewQuizService(quizRepo, questionRepo, chapterRepo)
	if err != nil {
		log.Printf("Failed to initialize QuizService: %v", err)
		os.Exit(1)
	}
	attemptService, err := service.NewAttemptService(quizRepo, scoreRepo)
	if err != nil {
		log.Printf("Failed to initialize AttemptService: %v", err)
		os.Exit(1)
	}
	statsService, err := service.NewStatsService(userRepo, subjectRepo, quizRepo, questionRepo)
	if err != nil {
		log.Printf("Failed to initialize StatsService: %v", err)
		os.Exit(1)
	}
	userService, err := service.NewUserService(userRepo, scoreRepo)
	if err != nil {
		log.Printf("Failed to initialize UserService: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, sessions)
	adminHandler := handler.NewAdminHandler(statsService, userService, sessions)
	contentHandler := handler.NewContentHandler(contentService, sessions)
	quizHandler := handler.NewQuizHandler(quizService, sessions)
	userHandler := handler.NewUserHandler(contentService, quizService, attemptService, authService, sessions)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Сессия загружается для всех маршрутов до ролевых проверок
	router.Use(authMiddleware.LoadSession())

	// Публичные маршруты
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)
	router.GET("/logout", authHandler.Logout)

	// Админская часть
	admin := router.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)

		admin.GET("/subjects", contentHandler.ListSubjects)
		admin.POST("/subjects", contentHandler.CreateSubject)
		subjectWithID := admin.Group("/subjects/:id")
		subjectWithID.Use(middleware.ExtractUintParam("id", "subjectID"))
		{
			subjectWithID.POST("/edit", contentHandler.UpdateSubject)
			subjectWithID.POST("/delete", contentHandler.DeleteSubject)
		}

		admin.GET("/chapters", contentHandler.ListChapters)
		admin.POST("/chapters", contentHandler.CreateChapter)
		chapterWithID := admin.Group("/chapters/:id")
		chapterWithID.Use(middleware.ExtractUintParam("id", "chapterID"))
		{
			chapterWithID.POST("/edit", contentHandler.UpdateChapter)
			chapterWithID.POST("/delete", contentHandler.DeleteChapter)
		}

		admin.GET("/quizzes", quizHandler.ListQuizzes)
		admin.POST("/quizzes", quizHandler.CreateQuiz)
		quizWithID := admin.Group("/quizzes/:id")
		quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
		{
			quizWithID.POST("/edit", quizHandler.UpdateQuiz)
			quizWithID.POST("/delete", quizHandler.DeleteQuiz)

			quizWithID.GET("/questions", quizHandler.ListQuestions)
			quizWithID.POST("/questions", quizHandler.CreateQuestion)
			questionWithID := quizWithID.Group("/questions/:qid")
			questionWithID.Use(middleware.ExtractUintParam("qid", "questionID"))
			{
				questionWithID.POST("/edit", quizHandler.UpdateQuestion)
				questionWithID.POST("/delete", quizHandler.DeleteQuestion)
			}
		}

		admin.GET("/users", adminHandler.ListUsers)
		userWithID := admin.Group("/users/:id")
		userWithID.Use(middleware.ExtractUintParam("id", "userID"))
		{
			userWithID.POST("/delete", adminHandler.DeleteUser)
			userWithID.GET("/scores", adminHandler.UserScores)
			userWithID.GET("/scores/export", adminHandler.ExportUserScores)
		}
	}

	// Пользовательская часть; администраторы сюда не допускаются
	user := router.Group("/user")
	user.Use(authMiddleware.RequireUser())
	{
		user.GET("/dashboard", userHandler.Dashboard)
		user.GET("/subject/:id", middleware.ExtractUintParam("id", "subjectID"), userHandler.SubjectChapters)
		user.GET("/chapter/:id/quizzes", middleware.ExtractUintParam("id", "chapterID"), userHandler.ChapterQuizzes)

		user.GET("/quiz/:id/start", middleware.ExtractUintParam("id", "quizID"), userHandler.StartQuiz)
		user.POST("/quiz/:id/submit", middleware.ExtractUintParam("id", "quizID"), userHandler.SubmitQuiz)
		user.GET("/quiz/result/:id", middleware.ExtractUintParam("id", "scoreID"), userHandler.QuizResult)
		user.GET("/scores", userHandler.Scores)

		user.GET("/profile", userHandler.Profile)
		user.POST("/profile", userHandler.UpdateProfile)
		user.POST("/profile/change-password", userHandler.ChangePassword)
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 15
	}
	writeTimeout := cfg.Server.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 15
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнала остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown с таймаутом
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if sqlDB, err := database.GetSQLDB(db); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}

	log.Println("Server exited")
}
