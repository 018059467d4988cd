package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB открывает отдельную in-memory базу на тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.PaymentStatus{},
		&models.GateRun{},
		&models.Course{},
		&models.Section{},
		&models.Enrollment{},
		&models.Lesson{},
		&models.VideoLesson{},
		&models.Homework{},
		&models.Test{},
		&models.Question{},
		&models.AnswerOption{},
		&models.VideoProgress{},
		&models.TestResult{},
		&models.TestUserAnswer{},
		&models.HomeworkSubmission{},
		&models.MilestoneNotice{},
		&models.Message{},
		&models.CoinTransaction{},
		&models.ActivityLog{},
		&models.Product{},
		&models.ProductLike{},
		&models.ProductComment{},
		&models.ProductPurchase{},
		&models.Post{},
		&models.PostComment{},
		&models.PostLike{},
		&models.CommentLike{},
		&models.ChatSession{},
		&models.ChatMessage{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// testEnv собирает репозитории и сервисы поверх одной тестовой базы
type testEnv struct {
	db *gorm.DB

	userRepo     repository.UserRepository
	courseRepo   repository.CourseRepository
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
	testRepo     repository.TestRepository
	homeworkRepo repository.HomeworkRepository
	coinRepo     repository.CoinRepository
	messageRepo  repository.MessageRepository
	paymentRepo  repository.PaymentRepository
	marketRepo   repository.MarketRepository
	blogRepo     repository.BlogRepository

	ledger   LedgerService
	notifier NotificationService
	progress ProgressService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)

	env := &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		courseRepo:   repository.NewCourseRepository(db),
		lessonRepo:   repository.NewLessonRepository(db),
		progressRepo: repository.NewProgressRepository(db),
		testRepo:     repository.NewTestRepository(db),
		homeworkRepo: repository.NewHomeworkRepository(db),
		coinRepo:     repository.NewCoinRepository(db),
		messageRepo:  repository.NewMessageRepository(db),
		paymentRepo:  repository.NewPaymentRepository(db),
		marketRepo:   repository.NewMarketRepository(db),
		blogRepo:     repository.NewBlogRepository(db),
	}
	env.ledger = NewLedgerService(db, env.coinRepo, env.userRepo)
	env.notifier = NewNotificationService(env.messageRepo, env.userRepo, env.paymentRepo, nil)
	env.progress = NewProgressService(env.progressRepo, env.testRepo, env.homeworkRepo, env.lessonRepo, env.courseRepo, env.notifier)
	return env
}

func (e *testEnv) createUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Username:     fmt.Sprintf("user-%s", uuid.New().String()[:8]),
		PasswordHash: "x",
		FirstName:    "Тест",
		LastName:     "Пользователь",
		Phone:        fmt.Sprintf("+7%d", time.Now().UnixNano()),
		Role:         role,
	}
	if err := e.userRepo.Create(user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createCourse(t *testing.T) *models.Course {
	t.Helper()
	course := &models.Course{Name: "Тестовый курс"}
	if err := e.courseRepo.Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func (e *testEnv) createVideoLesson(t *testing.T, courseID uuid.UUID, title string) *models.VideoLesson {
	t.Helper()
	lesson := &models.Lesson{CourseID: courseID, Title: title, Type: models.LessonTypeVideo}
	if err := e.lessonRepo.Create(lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	video := &models.VideoLesson{LessonID: lesson.ID, VideoURL: "https://example.com/v.mp4"}
	if err := e.lessonRepo.CreateVideo(video); err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}

// createTestLesson создает тест с вопросами по одному правильному
// и одному неправильному варианту на вопрос
func (e *testEnv) createTestLesson(t *testing.T, courseID uuid.UUID, questions int, passingScore int, allowRetry bool) *models.Test {
	t.Helper()
	lesson := &models.Lesson{CourseID: courseID, Title: "Тест", Type: models.LessonTypeTest}
	if err := e.lessonRepo.Create(lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	test := &models.Test{LessonID: lesson.ID, PassingScore: passingScore, AllowRetry: allowRetry}
	if err := e.lessonRepo.CreateTest(test); err != nil {
		t.Fatalf("create test: %v", err)
	}
	for i := 0; i < questions; i++ {
		question := &models.Question{TestID: test.ID, Text: fmt.Sprintf("Вопрос %d", i+1), Order: i + 1}
		if err := e.lessonRepo.CreateQuestion(question); err != nil {
			t.Fatalf("create question: %v", err)
		}
		for _, correct := range []bool{true, false} {
			option := &models.AnswerOption{QuestionID: question.ID, Text: "Вариант", IsCorrect: correct}
			if err := e.lessonRepo.CreateAnswerOption(option); err != nil {
				t.Fatalf("create option: %v", err)
			}
		}
	}
	return test
}

func (e *testEnv) createHomeworkLesson(t *testing.T, courseID uuid.UUID, dueDate *time.Time) *models.Homework {
	t.Helper()
	lesson := &models.Lesson{CourseID: courseID, Title: "Задание", Type: models.LessonTypeHomework}
	if err := e.lessonRepo.Create(lesson); err != nil {
		t.Fatalf("create lesson: %v", err)
	}
	homework := &models.Homework{LessonID: lesson.ID, Description: "Решить задачи", DueDate: dueDate}
	if err := e.lessonRepo.CreateHomework(homework); err != nil {
		t.Fatalf("create homework: %v", err)
	}
	return homework
}

func (e *testEnv) userCoins(t *testing.T, userID uuid.UUID) int {
	t.Helper()
	user, err := e.userRepo.GetByID(userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	return user.Coins
}

func (e *testEnv) messagesFor(t *testing.T, userID uuid.UUID) []models.Message {
	t.Helper()
	messages, err := e.messageRepo.ListByRecipient(userID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	return messages
}
