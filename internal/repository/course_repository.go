package repository

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseRepository интерфейс для работы с курсами и записями на них
type CourseRepository interface {
	Create(course *models.Course) error
	GetByID(id uuid.UUID) (*models.Course, error)
	Update(course *models.Course) error
	Delete(id uuid.UUID) error
	List() ([]models.Course, error)

	CreateSection(section *models.Section) error
	ListSections(courseID uuid.UUID) ([]models.Section, error)

	CreateEnrollment(enrollment *models.Enrollment) error
	EnrollmentExists(userID, courseID uuid.UUID) (bool, error)
	ListEnrollmentsByUser(userID uuid.UUID) ([]models.Enrollment, error)
	ListEnrollmentsByCourse(courseID uuid.UUID) ([]models.Enrollment, error)
}

// courseRepository реализация репозитория курсов
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository создает новый репозиторий курсов
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create создает новый курс
func (r *courseRepository) Create(course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.Create(course).Error
}

// GetByID получает курс по ID
func (r *courseRepository) GetByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Update обновляет курс
func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete удаляет курс
func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}

// List получает все курсы
func (r *courseRepository) List() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// CreateSection создает раздел курса
func (r *courseRepository) CreateSection(section *models.Section) error {
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	return r.db.Create(section).Error
}

// ListSections получает разделы курса в порядке сортировки
func (r *courseRepository) ListSections(courseID uuid.UUID) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Where("course_id = ?", courseID).Order("sort_order").Find(&sections).Error
	return sections, err
}

// CreateEnrollment записывает ученика на курс
func (r *courseRepository) CreateEnrollment(enrollment *models.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	return r.db.Create(enrollment).Error
}

// EnrollmentExists проверяет, записан ли ученик на курс
func (r *courseRepository) EnrollmentExists(userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// ListEnrollmentsByUser получает записи пользователя на курсы
func (r *courseRepository) ListEnrollmentsByUser(userID uuid.UUID) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

// ListEnrollmentsByCourse получает всех записанных на курс
func (r *courseRepository) ListEnrollmentsByCourse(courseID uuid.UUID) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("course_id = ?", courseID).Find(&enrollments).Error
	return enrollments, err
}
