package repository

import (
	"errors"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository интерфейс для прогресса просмотра видео и вех курса
type ProgressRepository interface {
	GetOrCreateVideoProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error)
	GetVideoProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error)
	UpdateVideoProgress(tx *gorm.DB, progress *models.VideoProgress) error
	ClaimCoinAward(tx *gorm.DB, progressID uuid.UUID) (bool, error)
	CountWatchedByUser(userID uuid.UUID) (int64, error)
	CountWatchedInCourse(userID, courseID uuid.UUID) (int64, error)

	MilestoneExists(userID, courseID uuid.UUID, threshold int) (bool, error)
	CreateMilestoneNotice(notice *models.MilestoneNotice) error
}

// progressRepository реализация репозитория прогресса
type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository создает новый репозиторий прогресса
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// GetOrCreateVideoProgress лениво создает запись прогресса при первом обращении.
// Явный get-or-create, чтобы дальше логика могла считать запись существующей.
func (r *progressRepository) GetOrCreateVideoProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error) {
	var progress models.VideoProgress
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&progress).Error
	if err == nil {
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = models.VideoProgress{
		ID:      uuid.New(),
		UserID:  userID,
		VideoID: videoID,
	}
	if err := r.db.Create(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetVideoProgress получает запись прогресса
func (r *progressRepository) GetVideoProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error) {
	var progress models.VideoProgress
	err := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpdateVideoProgress обновляет запись прогресса (в рамках переданной транзакции)
func (r *progressRepository) UpdateVideoProgress(tx *gorm.DB, progress *models.VideoProgress) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(progress).Error
}

// ClaimCoinAward атомарно взводит флаг выплаты за просмотр.
// Проверка и установка в одном UPDATE защищают от двойной выплаты.
func (r *progressRepository) ClaimCoinAward(tx *gorm.DB, progressID uuid.UUID) (bool, error) {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.VideoProgress{}).
		Where("id = ? AND coin_awarded = ?", progressID, false).
		Update("coin_awarded", true)
	return res.RowsAffected > 0, res.Error
}

// CountWatchedByUser считает все просмотренные пользователем видео
func (r *progressRepository) CountWatchedByUser(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoProgress{}).
		Where("user_id = ? AND watched = ?", userID, true).
		Count(&count).Error
	return count, err
}

// CountWatchedInCourse считает просмотренные видео в рамках курса
func (r *progressRepository) CountWatchedInCourse(userID, courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.VideoProgress{}).
		Joins("JOIN video_lessons ON video_lessons.id = video_progresses.video_id").
		Joins("JOIN lessons ON lessons.id = video_lessons.lesson_id").
		Where("video_progresses.user_id = ? AND video_progresses.watched = ? AND lessons.course_id = ?",
			userID, true, courseID).
		Count(&count).Error
	return count, err
}

// MilestoneExists проверяет, отправлялось ли сообщение о данной вехе
func (r *progressRepository) MilestoneExists(userID, courseID uuid.UUID, threshold int) (bool, error) {
	var count int64
	err := r.db.Model(&models.MilestoneNotice{}).
		Where("user_id = ? AND course_id = ? AND threshold = ?", userID, courseID, threshold).
		Count(&count).Error
	return count > 0, err
}

// CreateMilestoneNotice фиксирует отправку сообщения о вехе
func (r *progressRepository) CreateMilestoneNotice(notice *models.MilestoneNotice) error {
	if notice.ID == uuid.Nil {
		notice.ID = uuid.New()
	}
	return r.db.Create(notice).Error
}
