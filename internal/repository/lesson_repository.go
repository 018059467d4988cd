package repository

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonRepository интерфейс для работы с уроками и их содержимым
type LessonRepository interface {
	Create(lesson *models.Lesson) error
	GetByID(id uuid.UUID) (*models.Lesson, error)
	ListByCourse(courseID uuid.UUID) ([]models.Lesson, error)
	CountByCourse(courseID uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error

	CreateVideo(video *models.VideoLesson) error
	GetVideoByID(id uuid.UUID) (*models.VideoLesson, error)

	CreateHomework(homework *models.Homework) error
	GetHomeworkByID(id uuid.UUID) (*models.Homework, error)

	CreateTest(test *models.Test) error
	GetTestByID(id uuid.UUID) (*models.Test, error)
	CreateQuestion(question *models.Question) error
	CreateAnswerOption(option *models.AnswerOption) error
}

// lessonRepository реализация репозитория уроков
type lessonRepository struct {
	db *gorm.DB
}

// NewLessonRepository создает новый репозиторий уроков
func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

// Create создает элемент урока
func (r *lessonRepository) Create(lesson *models.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	return r.db.Create(lesson).Error
}

// GetByID получает урок по ID вместе с содержимым
func (r *lessonRepository) GetByID(id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.Preload("Video").Preload("Homework").Preload("Test").
		First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListByCourse получает уроки курса в порядке сортировки
func (r *lessonRepository) ListByCourse(courseID uuid.UUID) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.Preload("Video").Preload("Homework").Preload("Test").
		Where("course_id = ?", courseID).Order("sort_order").Find(&lessons).Error
	return lessons, err
}

// CountByCourse считает элементы урока в курсе
func (r *lessonRepository) CountByCourse(courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// Delete удаляет урок
func (r *lessonRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Lesson{}, "id = ?", id).Error
}

// CreateVideo создает видеоурок
func (r *lessonRepository) CreateVideo(video *models.VideoLesson) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	return r.db.Create(video).Error
}

// GetVideoByID получает видеоурок по ID вместе с уроком
func (r *lessonRepository) GetVideoByID(id uuid.UUID) (*models.VideoLesson, error) {
	var video models.VideoLesson
	err := r.db.Preload("Lesson").First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// CreateHomework создает домашнее задание
func (r *lessonRepository) CreateHomework(homework *models.Homework) error {
	if homework.ID == uuid.Nil {
		homework.ID = uuid.New()
	}
	return r.db.Create(homework).Error
}

// GetHomeworkByID получает домашнее задание по ID вместе с уроком
func (r *lessonRepository) GetHomeworkByID(id uuid.UUID) (*models.Homework, error) {
	var homework models.Homework
	err := r.db.Preload("Lesson").First(&homework, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &homework, nil
}

// CreateTest создает тест
func (r *lessonRepository) CreateTest(test *models.Test) error {
	if test.ID == uuid.Nil {
		test.ID = uuid.New()
	}
	return r.db.Create(test).Error
}

// GetTestByID получает тест по ID вместе с вопросами и вариантами ответов
func (r *lessonRepository) GetTestByID(id uuid.UUID) (*models.Test, error) {
	var test models.Test
	err := r.db.Preload("Lesson").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Questions.Options").
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// CreateQuestion создает вопрос теста
func (r *lessonRepository) CreateQuestion(question *models.Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	return r.db.Create(question).Error
}

// CreateAnswerOption создает вариант ответа
func (r *lessonRepository) CreateAnswerOption(option *models.AnswerOption) error {
	if option.ID == uuid.Nil {
		option.ID = uuid.New()
	}
	return r.db.Create(option).Error
}
