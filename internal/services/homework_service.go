package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HomeworkService управляет сдачей и проверкой домашних заданий
type HomeworkService interface {
	// SubmitHomework записывает сдачу; повторная сдача — новая ревизия.
	SubmitHomework(userID, homeworkID uuid.UUID, filePath string) (*models.HomeworkSubmission, error)

	// GradeHomework выставляет оценку 1-100. Повторная проверка меняет
	// оценку, но коины начисляются только за первую.
	GradeHomework(submissionID, graderID uuid.UUID, grade int, feedback string) (*models.HomeworkSubmission, error)

	GetSubmission(id uuid.UUID) (*models.HomeworkSubmission, error)
	ListPendingByCourse(courseID uuid.UUID) ([]models.HomeworkSubmission, error)
}

type homeworkService struct {
	db           *gorm.DB
	lessonRepo   repository.LessonRepository
	homeworkRepo repository.HomeworkRepository
	userRepo     repository.UserRepository
	coinRepo     repository.CoinRepository
	ledger       LedgerService
	progress     ProgressService
}

// NewHomeworkService создает новый сервис домашних заданий
func NewHomeworkService(
	db *gorm.DB,
	lessonRepo repository.LessonRepository,
	homeworkRepo repository.HomeworkRepository,
	userRepo repository.UserRepository,
	coinRepo repository.CoinRepository,
	ledger LedgerService,
	progress ProgressService,
) HomeworkService {
	return &homeworkService{
		db:           db,
		lessonRepo:   lessonRepo,
		homeworkRepo: homeworkRepo,
		userRepo:     userRepo,
		coinRepo:     coinRepo,
		ledger:       ledger,
		progress:     progress,
	}
}

// SubmitHomework записывает сдачу задания. Опоздание фиксируется
// в момент сдачи по сроку задания.
func (s *homeworkService) SubmitHomework(userID, homeworkID uuid.UUID, filePath string) (*models.HomeworkSubmission, error) {
	homework, err := s.lessonRepo.GetHomeworkByID(homeworkID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	isLate := homework.DueDate != nil && now.After(*homework.DueDate)

	revisions, err := s.homeworkRepo.CountSubmissions(homeworkID, userID)
	if err != nil {
		return nil, err
	}

	submission := &models.HomeworkSubmission{
		HomeworkID:    homeworkID,
		StudentID:     userID,
		FilePath:      filePath,
		Status:        models.SubmissionPending,
		IsLate:        isLate,
		RevisionCount: int(revisions),
		SubmittedAt:   now,
	}
	if err := s.homeworkRepo.CreateSubmission(submission); err != nil {
		return nil, err
	}

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivitySubmitHomework,
		Description: fmt.Sprintf("Сдал задание: %s", homework.Lesson.Title),
	}); err != nil {
		log.Printf("Failed to log homework activity: %v", err)
	}

	submission.Homework = *homework
	return submission, nil
}

// GradeHomework выставляет оценку. Оценка, статус и выплата пишутся
// в одной транзакции; флаг coin_awarded не даёт заплатить дважды.
func (s *homeworkService) GradeHomework(submissionID, graderID uuid.UUID, grade int, feedback string) (*models.HomeworkSubmission, error) {
	if grade < 1 || grade > 100 {
		return nil, fmt.Errorf("%w: grade must be 1-100, got %d", ErrValidation, grade)
	}

	grader, err := s.userRepo.GetByID(graderID)
	if err != nil {
		return nil, err
	}
	if !grader.IsTeacher() && !grader.IsAdmin() {
		return nil, ErrAccessDenied
	}

	submission, err := s.homeworkRepo.GetSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.Grade = &grade
	submission.Feedback = feedback
	submission.GradedByID = &graderID
	submission.GradedAt = &now
	submission.Status = models.SubmissionGraded

	awarded := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.homeworkRepo.UpdateSubmission(tx, submission); err != nil {
			return err
		}
		claimed, err := s.homeworkRepo.ClaimCoinAward(tx, submission.ID)
		if err != nil {
			return err
		}
		if claimed {
			awarded = true
			return s.ledger.AddCoinsTx(tx, submission.StudentID, CoinsPerHomeworkGrade,
				fmt.Sprintf("Задание проверено: %s", submission.Homework.Lesson.Title))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	submission.CoinAwarded = submission.CoinAwarded || awarded

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      submission.StudentID,
		ActionType:  models.ActivityHomeworkGraded,
		Description: fmt.Sprintf("Задание проверено: %s (оценка %d)", submission.Homework.Lesson.Title, grade),
	}); err != nil {
		log.Printf("Failed to log grading activity: %v", err)
	}

	if err := s.progress.OnHomeworkGraded(submission.StudentID, submission, grade); err != nil {
		log.Printf("Failed to evaluate progress after grading %s: %v", submissionID, err)
	}
	return submission, nil
}

// GetSubmission получает сдачу по ID
func (s *homeworkService) GetSubmission(id uuid.UUID) (*models.HomeworkSubmission, error) {
	return s.homeworkRepo.GetSubmissionByID(id)
}

// ListPendingByCourse получает непроверенные сдачи по курсу
func (s *homeworkService) ListPendingByCourse(courseID uuid.UUID) ([]models.HomeworkSubmission, error) {
	return s.homeworkRepo.ListPendingByCourse(courseID)
}
