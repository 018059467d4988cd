package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseService управляет курсами, уроками и записью учеников
type CourseService interface {
	CreateCourse(course *models.Course, creatorID uuid.UUID) error
	GetCourse(id uuid.UUID) (*models.Course, error)
	ListCourses() ([]models.Course, error)
	UpdateCourse(course *models.Course) error
	DeleteCourse(id uuid.UUID) error

	CreateSection(section *models.Section) error
	ListSections(courseID uuid.UUID) ([]models.Section, error)

	// AddLesson добавляет урок и оповещает записанных учеников
	AddLesson(lesson *models.Lesson, creatorID uuid.UUID) error
	GetLesson(id uuid.UUID) (*models.Lesson, error)
	ListLessons(courseID uuid.UUID) ([]models.Lesson, error)

	CreateVideo(video *models.VideoLesson) error
	CreateHomework(homework *models.Homework) error
	CreateTest(test *models.Test) error
	CreateQuestion(question *models.Question) error
	CreateAnswerOption(option *models.AnswerOption) error

	// Enroll записывает ученика на курс. Повторная запись — ErrAlreadyEnrolled.
	Enroll(userID, courseID uuid.UUID) (*models.Enrollment, error)
	ListEnrollments(userID uuid.UUID) ([]models.Enrollment, error)
	ListCourseStudents(courseID uuid.UUID) ([]models.Enrollment, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	lessonRepo repository.LessonRepository
	userRepo   repository.UserRepository
	coinRepo   repository.CoinRepository
	notifier   NotificationService
}

// NewCourseService создает новый сервис курсов
func NewCourseService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	userRepo repository.UserRepository,
	coinRepo repository.CoinRepository,
	notifier NotificationService,
) CourseService {
	return &courseService{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
		userRepo:   userRepo,
		coinRepo:   coinRepo,
		notifier:   notifier,
	}
}

// CreateCourse создает курс. Доступно преподавателям и администраторам.
func (s *courseService) CreateCourse(course *models.Course, creatorID uuid.UUID) error {
	creator, err := s.userRepo.GetByID(creatorID)
	if err != nil {
		return err
	}
	if !creator.IsTeacher() && !creator.IsAdmin() {
		return ErrAccessDenied
	}
	if course.Name == "" {
		return fmt.Errorf("%w: course name is required", ErrValidation)
	}
	return s.courseRepo.Create(course)
}

// GetCourse получает курс по ID
func (s *courseService) GetCourse(id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.GetByID(id)
}

// ListCourses получает все курсы
func (s *courseService) ListCourses() ([]models.Course, error) {
	return s.courseRepo.List()
}

// UpdateCourse обновляет курс
func (s *courseService) UpdateCourse(course *models.Course) error {
	return s.courseRepo.Update(course)
}

// DeleteCourse удаляет курс
func (s *courseService) DeleteCourse(id uuid.UUID) error {
	return s.courseRepo.Delete(id)
}

// CreateSection создает раздел курса
func (s *courseService) CreateSection(section *models.Section) error {
	return s.courseRepo.CreateSection(section)
}

// ListSections получает разделы курса по порядку
func (s *courseService) ListSections(courseID uuid.UUID) ([]models.Section, error) {
	return s.courseRepo.ListSections(courseID)
}

// AddLesson добавляет урок в курс и рассылает уведомление
// всем записанным ученикам
func (s *courseService) AddLesson(lesson *models.Lesson, creatorID uuid.UUID) error {
	creator, err := s.userRepo.GetByID(creatorID)
	if err != nil {
		return err
	}
	if !creator.IsTeacher() && !creator.IsAdmin() {
		return ErrAccessDenied
	}

	course, err := s.courseRepo.GetByID(lesson.CourseID)
	if err != nil {
		return err
	}
	if err := s.lessonRepo.Create(lesson); err != nil {
		return err
	}

	if err := s.notifyNewLesson(course, lesson); err != nil {
		log.Printf("Failed to notify students about new lesson %s: %v", lesson.ID, err)
	}
	return nil
}

// notifyNewLesson отправляет личное сообщение каждому записанному ученику
func (s *courseService) notifyNewLesson(course *models.Course, lesson *models.Lesson) error {
	enrollments, err := s.courseRepo.ListEnrollmentsByCourse(course.ID)
	if err != nil {
		return err
	}
	for _, enrollment := range enrollments {
		if err := s.notifier.Send(enrollment.UserID,
			fmt.Sprintf("Новый урок в курсе «%s»! 🎓", course.Name),
			fmt.Sprintf("Добавлен новый урок: «%s». Заходите и продолжайте обучение!", lesson.Title),
			models.MessageTypeReminder,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetLesson получает урок по ID
func (s *courseService) GetLesson(id uuid.UUID) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(id)
}

// ListLessons получает уроки курса по порядку
func (s *courseService) ListLessons(courseID uuid.UUID) ([]models.Lesson, error) {
	return s.lessonRepo.ListByCourse(courseID)
}

// CreateVideo создает видеоурок
func (s *courseService) CreateVideo(video *models.VideoLesson) error {
	return s.lessonRepo.CreateVideo(video)
}

// CreateHomework создает домашнее задание
func (s *courseService) CreateHomework(homework *models.Homework) error {
	return s.lessonRepo.CreateHomework(homework)
}

// CreateTest создает тест
func (s *courseService) CreateTest(test *models.Test) error {
	return s.lessonRepo.CreateTest(test)
}

// CreateQuestion создает вопрос теста
func (s *courseService) CreateQuestion(question *models.Question) error {
	return s.lessonRepo.CreateQuestion(question)
}

// CreateAnswerOption создает вариант ответа
func (s *courseService) CreateAnswerOption(option *models.AnswerOption) error {
	return s.lessonRepo.CreateAnswerOption(option)
}

// Enroll записывает ученика на курс
func (s *courseService) Enroll(userID, courseID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.EnrollmentExists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.courseRepo.CreateEnrollment(enrollment); err != nil {
		// уникальный индекс ловит гонку двух одновременных записей
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityEnrollCourse,
		Description: fmt.Sprintf("Записался на курс: %s", course.Name),
	}); err != nil {
		log.Printf("Failed to log enrollment activity: %v", err)
	}
	return enrollment, nil
}

// ListEnrollments получает записи ученика вместе с курсами
func (s *courseService) ListEnrollments(userID uuid.UUID) ([]models.Enrollment, error) {
	return s.courseRepo.ListEnrollmentsByUser(userID)
}

// ListCourseStudents получает записи учеников на курс
func (s *courseService) ListCourseStudents(courseID uuid.UUID) ([]models.Enrollment, error) {
	return s.courseRepo.ListEnrollmentsByCourse(courseID)
}
