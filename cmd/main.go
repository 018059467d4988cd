package main

import (
	"fmt"
	"log"

	"github.com/Xusanbek0039/lms-platform/internal/config"
	"github.com/Xusanbek0039/lms-platform/internal/handlers"
	"github.com/Xusanbek0039/lms-platform/internal/repository"
	"github.com/Xusanbek0039/lms-platform/internal/services"
	"github.com/Xusanbek0039/lms-platform/pkg/database"
	"github.com/Xusanbek0039/lms-platform/pkg/storage"
	"github.com/Xusanbek0039/lms-platform/pkg/telegram"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем администратора по умолчанию
	if err := db.CreateDefaultAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("Failed to create default admin: %v", err)
	}

	// Инициализируем файловое хранилище
	fileStorage, err := storage.NewStorage(cfg.UploadPath, cfg.MaxFileSize)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Инициализируем Telegram бота; без токена push-уведомления отключены
	var telegramBot *telegram.Bot
	if cfg.TelegramBotToken != "" {
		telegramBot, err = telegram.NewBot(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("Failed to initialize Telegram bot: %v", err)
		}
	}

	// Создаем репозитории
	userRepo := repository.NewUserRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	lessonRepo := repository.NewLessonRepository(db.DB)
	progressRepo := repository.NewProgressRepository(db.DB)
	testRepo := repository.NewTestRepository(db.DB)
	homeworkRepo := repository.NewHomeworkRepository(db.DB)
	coinRepo := repository.NewCoinRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	marketRepo := repository.NewMarketRepository(db.DB)
	blogRepo := repository.NewBlogRepository(db.DB)
	assistantRepo := repository.NewAssistantRepository(db.DB)

	// Создаем сервисы
	notifier := services.NewNotificationService(messageRepo, userRepo, paymentRepo, telegramBot)
	ledger := services.NewLedgerService(db.DB, coinRepo, userRepo)
	progressService := services.NewProgressService(progressRepo, testRepo, homeworkRepo, lessonRepo, courseRepo, notifier)
	authService := services.NewAuthService(userRepo, coinRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, paymentRepo, coinRepo)
	courseService := services.NewCourseService(courseRepo, lessonRepo, userRepo, coinRepo, notifier)
	videoService := services.NewVideoService(db.DB, lessonRepo, progressRepo, coinRepo, ledger, progressService, notifier)
	testService := services.NewTestService(db.DB, lessonRepo, testRepo, coinRepo, ledger, progressService, notifier)
	homeworkService := services.NewHomeworkService(db.DB, lessonRepo, homeworkRepo, userRepo, coinRepo, ledger, progressService)
	paymentService := services.NewPaymentService(paymentRepo, userRepo, messageRepo, notifier)
	marketService := services.NewMarketService(db.DB, marketRepo, coinRepo, ledger)
	blogService := services.NewBlogService(db.DB, blogRepo, userRepo, coinRepo, ledger)
	assistantService := services.NewAssistantService(assistantRepo, cfg.AIAPIURL, cfg.AIAPIKey, cfg.AIModel, cfg.AITimeout)

	// Создаем обработчики
	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Course:    handlers.NewCourseHandler(courseService, progressService),
		Learning:  handlers.NewLearningHandler(videoService, testService, homeworkService, fileStorage),
		Coin:      handlers.NewCoinHandler(ledger),
		Message:   handlers.NewMessageHandler(notifier),
		Market:    handlers.NewMarketHandler(marketService),
		Blog:      handlers.NewBlogHandler(blogService),
		Admin:     handlers.NewAdminHandler(userService, paymentService, authService, ledger),
		Assistant: handlers.NewAssistantHandler(assistantService),
	}

	router := handlers.SetupRouter(h, authService, paymentService, notifier)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
