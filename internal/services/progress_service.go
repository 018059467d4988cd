package services

import (
	"fmt"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
)

// Пороги прогресса курса в порядке убывания приоритета:
// за один проход отправляется только старшая новая веха.
var milestoneThresholds = []int{75, 50, 25}

// ProgressService отслеживает прогресс ученика по курсу и отправляет
// мотивационные сообщения о вехах и достижениях
type ProgressService interface {
	CourseProgress(userID, courseID uuid.UUID) (completed, total int64, percent float64, err error)

	OnVideoWatched(userID uuid.UUID, video *models.VideoLesson) error
	OnTestCompleted(userID uuid.UUID, result *models.TestResult, courseID uuid.UUID, lessonTitle string) error
	OnHomeworkGraded(userID uuid.UUID, submission *models.HomeworkSubmission, grade int) error
}

type progressService struct {
	progressRepo repository.ProgressRepository
	testRepo     repository.TestRepository
	homeworkRepo repository.HomeworkRepository
	lessonRepo   repository.LessonRepository
	courseRepo   repository.CourseRepository
	notifier     NotificationService
}

// NewProgressService создает новый сервис прогресса
func NewProgressService(
	progressRepo repository.ProgressRepository,
	testRepo repository.TestRepository,
	homeworkRepo repository.HomeworkRepository,
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
	notifier NotificationService,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		testRepo:     testRepo,
		homeworkRepo: homeworkRepo,
		lessonRepo:   lessonRepo,
		courseRepo:   courseRepo,
		notifier:     notifier,
	}
}

// CourseProgress считает завершённость курса: просмотренные видео,
// тесты с хотя бы одной попыткой и сданные задания против всех элементов курса
func (s *progressService) CourseProgress(userID, courseID uuid.UUID) (int64, int64, float64, error) {
	total, err := s.lessonRepo.CountByCourse(courseID)
	if err != nil {
		return 0, 0, 0, err
	}
	if total == 0 {
		return 0, 0, 0, nil
	}

	watched, err := s.progressRepo.CountWatchedInCourse(userID, courseID)
	if err != nil {
		return 0, 0, 0, err
	}
	tests, err := s.testRepo.CountDistinctTestsAttemptedInCourse(userID, courseID)
	if err != nil {
		return 0, 0, 0, err
	}
	homeworks, err := s.homeworkRepo.CountDistinctHomeworksSubmittedInCourse(userID, courseID)
	if err != nil {
		return 0, 0, 0, err
	}

	completed := watched + tests + homeworks
	percent := float64(completed) / float64(total) * 100
	return completed, total, percent, nil
}

// OnVideoWatched вызывается после фиксации просмотра видео
func (s *progressService) OnVideoWatched(userID uuid.UUID, video *models.VideoLesson) error {
	if err := s.checkFirstVideoWatched(userID); err != nil {
		return err
	}
	return s.evaluateMilestones(userID, video.Lesson.CourseID)
}

// OnTestCompleted вызывается после записи результата теста
func (s *progressService) OnTestCompleted(userID uuid.UUID, result *models.TestResult, courseID uuid.UUID, lessonTitle string) error {
	if err := s.checkFirstTestPassed(userID, result); err != nil {
		return err
	}
	if !result.Passed {
		if err := s.checkTestDifficulty(userID, result, lessonTitle); err != nil {
			return err
		}
	}
	return s.evaluateMilestones(userID, courseID)
}

// OnHomeworkGraded вызывается после проверки домашнего задания
func (s *progressService) OnHomeworkGraded(userID uuid.UUID, submission *models.HomeworkSubmission, grade int) error {
	if err := s.notifier.Send(userID,
		"Домашнее задание проверено! 📝",
		fmt.Sprintf("Задание урока «%s» проверено. Оценка: %d. Посмотрите результат!", submission.Homework.Lesson.Title, grade),
		models.MessageTypeSystem,
	); err != nil {
		return err
	}
	return s.evaluateMilestones(userID, submission.Homework.Lesson.CourseID)
}

// checkFirstVideoWatched поздравляет с первым просмотренным видео
func (s *progressService) checkFirstVideoWatched(userID uuid.UUID) error {
	watched, err := s.progressRepo.CountWatchedByUser(userID)
	if err != nil {
		return err
	}
	if watched != 1 {
		return nil
	}
	return s.notifier.Send(userID,
		"Поздравляем! Вы начали обучение! 🚀",
		"Вы завершили свой первый урок! Отличное начало. Продолжайте и получайте новые знания!",
		models.MessageTypeAchievement,
	)
}

// checkFirstTestPassed поздравляет с первым сданным тестом
func (s *progressService) checkFirstTestPassed(userID uuid.UUID, result *models.TestResult) error {
	if !result.Passed {
		return nil
	}
	passed, err := s.testRepo.CountPassedByStudent(userID)
	if err != nil {
		return err
	}
	if passed != 1 {
		return nil
	}
	return s.notifier.Send(userID,
		"Первое достижение! Вперёд! 🎯",
		fmt.Sprintf("Вы успешно прошли свой первый тест! Балл: %d%%. Вы можете добиться ещё большего!", result.Score),
		models.MessageTypeAchievement,
	)
}

// checkTestDifficulty советует повторить материал после двух и более неудач
func (s *progressService) checkTestDifficulty(userID uuid.UUID, result *models.TestResult, lessonTitle string) error {
	failed, err := s.testRepo.CountFailed(result.TestID, userID)
	if err != nil {
		return err
	}
	if failed < 2 {
		return nil
	}
	return s.notifier.Send(userID,
		fmt.Sprintf("Трудности с темой «%s» 📚", lessonTitle),
		"Похоже, эта тема даётся непросто. Советуем пересмотреть урок и задать вопросы преподавателю. Любая трудность — возможность научиться!",
		models.MessageTypeRecommendation,
	)
}

// evaluateMilestones проверяет вехи 75/50/25 в порядке убывания и отправляет
// сообщение только о старшей новой вехе. Идемпотентность — структурная
// запись (user, course, threshold), а не разбор текста сообщений.
func (s *progressService) evaluateMilestones(userID, courseID uuid.UUID) error {
	_, total, percent, err := s.CourseProgress(userID, courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return err
	}

	for _, threshold := range milestoneThresholds {
		if percent < float64(threshold) {
			continue
		}
		exists, err := s.progressRepo.MilestoneExists(userID, courseID, threshold)
		if err != nil {
			return err
		}
		if exists {
			// старшая веха уже отмечена, младшие не рассылаем
			return nil
		}

		if err := s.progressRepo.CreateMilestoneNotice(&models.MilestoneNotice{
			UserID:    userID,
			CourseID:  courseID,
			Threshold: threshold,
		}); err != nil {
			return err
		}
		return s.notifier.Send(userID,
			milestoneTitle(threshold, course.Name),
			milestoneContent(threshold),
			models.MessageTypeMotivation,
		)
	}
	return nil
}

func milestoneTitle(threshold int, courseName string) string {
	switch threshold {
	case 75:
		return fmt.Sprintf("Курс «%s» пройден на 75%%! 🏆", courseName)
	case 50:
		return fmt.Sprintf("Половина курса «%s» позади! 🎉", courseName)
	default:
		return fmt.Sprintf("Курс «%s» пройден на 25%%! ✨", courseName)
	}
}

func milestoneContent(threshold int) string {
	switch threshold {
	case 75:
		return "Вы уже прошли три четверти курса! До конца совсем немного, продолжайте! 💪"
	case 50:
		return "Вы прошли 50% курса! Отличный результат, так держать! 💪"
	default:
		return "Хорошее начало! Вы уже прошли четверть курса. Вперёд! 🚀"
	}
}
