package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase создает новое подключение к базе данных
func NewDatabase(dbPath string) (*Database, error) {
	// Создаем директорию для базы данных если она не существует
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

// Migrate выполняет миграцию базы данных
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
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
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateDefaultAdmin создает администратора по умолчанию, если его нет.
// Пустой пароль отключает создание.
func (d *Database) CreateDefaultAdmin(username, password string) error {
	if password == "" {
		return nil
	}

	var user models.User
	err := d.DB.Where("username = ?", username).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    "Администратор",
		Role:         models.RoleAdmin,
	}
	return d.DB.Create(&admin).Error
}
