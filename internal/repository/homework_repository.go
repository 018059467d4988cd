package repository

import (
	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HomeworkRepository интерфейс для сдач домашних заданий
type HomeworkRepository interface {
	CreateSubmission(submission *models.HomeworkSubmission) error
	GetSubmissionByID(id uuid.UUID) (*models.HomeworkSubmission, error)
	GetLatestSubmission(homeworkID, studentID uuid.UUID) (*models.HomeworkSubmission, error)
	UpdateSubmission(tx *gorm.DB, submission *models.HomeworkSubmission) error
	CountSubmissions(homeworkID, studentID uuid.UUID) (int64, error)
	CountDistinctHomeworksSubmittedInCourse(studentID, courseID uuid.UUID) (int64, error)
	ListPendingByCourse(courseID uuid.UUID) ([]models.HomeworkSubmission, error)
	ClaimCoinAward(tx *gorm.DB, submissionID uuid.UUID) (bool, error)
}

// homeworkRepository реализация репозитория домашних заданий
type homeworkRepository struct {
	db *gorm.DB
}

// NewHomeworkRepository создает новый репозиторий домашних заданий
func NewHomeworkRepository(db *gorm.DB) HomeworkRepository {
	return &homeworkRepository{db: db}
}

// CreateSubmission создает сдачу задания
func (r *homeworkRepository) CreateSubmission(submission *models.HomeworkSubmission) error {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	return r.db.Create(submission).Error
}

// GetSubmissionByID получает сдачу по ID вместе с заданием
func (r *homeworkRepository) GetSubmissionByID(id uuid.UUID) (*models.HomeworkSubmission, error) {
	var submission models.HomeworkSubmission
	err := r.db.Preload("Homework").Preload("Homework.Lesson").
		First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetLatestSubmission получает последнюю сдачу ученика по заданию
func (r *homeworkRepository) GetLatestSubmission(homeworkID, studentID uuid.UUID) (*models.HomeworkSubmission, error) {
	var submission models.HomeworkSubmission
	err := r.db.Where("homework_id = ? AND student_id = ?", homeworkID, studentID).
		Order("submitted_at DESC").First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// UpdateSubmission обновляет сдачу (в рамках переданной транзакции)
func (r *homeworkRepository) UpdateSubmission(tx *gorm.DB, submission *models.HomeworkSubmission) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(submission).Error
}

// CountSubmissions считает сдачи ученика по заданию
func (r *homeworkRepository) CountSubmissions(homeworkID, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.HomeworkSubmission{}).
		Where("homework_id = ? AND student_id = ?", homeworkID, studentID).
		Count(&count).Error
	return count, err
}

// CountDistinctHomeworksSubmittedInCourse считает задания курса, по которым есть сдача
func (r *homeworkRepository) CountDistinctHomeworksSubmittedInCourse(studentID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.HomeworkSubmission{}).
		Distinct("homework_submissions.homework_id").
		Joins("JOIN homeworks ON homeworks.id = homework_submissions.homework_id").
		Joins("JOIN lessons ON lessons.id = homeworks.lesson_id").
		Where("homework_submissions.student_id = ? AND lessons.course_id = ?", studentID, courseID).
		Count(&count).Error
	return count, err
}

// ListPendingByCourse получает непроверенные сдачи по курсу
func (r *homeworkRepository) ListPendingByCourse(courseID uuid.UUID) ([]models.HomeworkSubmission, error) {
	var submissions []models.HomeworkSubmission
	err := r.db.Preload("Homework").
		Joins("JOIN homeworks ON homeworks.id = homework_submissions.homework_id").
		Joins("JOIN lessons ON lessons.id = homeworks.lesson_id").
		Where("lessons.course_id = ? AND homework_submissions.status = ?", courseID, models.SubmissionPending).
		Order("homework_submissions.submitted_at").
		Find(&submissions).Error
	return submissions, err
}

// ClaimCoinAward атомарно взводит флаг выплаты за проверенное задание
func (r *homeworkRepository) ClaimCoinAward(tx *gorm.DB, submissionID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.HomeworkSubmission{}).
		Where("id = ? AND coin_awarded = ?", submissionID, false).
		Update("coin_awarded", true)
	return res.RowsAffected > 0, res.Error
}
