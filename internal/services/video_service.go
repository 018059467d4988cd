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

// VideoService фиксирует просмотры видеоуроков
type VideoService interface {
	// WatchVideo отмечает просмотр. Повторный вызов ничего не меняет
	// и не приносит коинов.
	WatchVideo(userID, videoID uuid.UUID) (*models.VideoProgress, error)
	GetProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error)
}

type videoService struct {
	db           *gorm.DB
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
	coinRepo     repository.CoinRepository
	ledger       LedgerService
	progress     ProgressService
	notifier     NotificationService
}

// NewVideoService создает новый сервис видеоуроков
func NewVideoService(
	db *gorm.DB,
	lessonRepo repository.LessonRepository,
	progressRepo repository.ProgressRepository,
	coinRepo repository.CoinRepository,
	ledger LedgerService,
	progress ProgressService,
	notifier NotificationService,
) VideoService {
	return &videoService{
		db:           db,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		coinRepo:     coinRepo,
		ledger:       ledger,
		progress:     progress,
		notifier:     notifier,
	}
}

// WatchVideo отмечает видео просмотренным. Переход watched false->true
// происходит ровно один раз; выплата и строка журнала пишутся в одной
// транзакции со взведением флага.
func (s *videoService) WatchVideo(userID, videoID uuid.UUID) (*models.VideoProgress, error) {
	video, err := s.lessonRepo.GetVideoByID(videoID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetOrCreateVideoProgress(userID, videoID)
	if err != nil {
		return nil, err
	}
	if progress.Watched {
		return progress, nil
	}

	now := time.Now()
	progress.Watched = true
	progress.WatchedAt = &now

	awarded := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.progressRepo.UpdateVideoProgress(tx, progress); err != nil {
			return err
		}
		claimed, err := s.progressRepo.ClaimCoinAward(tx, progress.ID)
		if err != nil {
			return err
		}
		if claimed {
			awarded = true
			return s.ledger.AddCoinsTx(tx, userID, CoinsPerVideoWatched,
				fmt.Sprintf("Просмотр видео: %s", video.Lesson.Title))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	progress.CoinAwarded = progress.CoinAwarded || awarded

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityWatchVideo,
		Description: fmt.Sprintf("Просмотрел видео: %s", video.Lesson.Title),
	}); err != nil {
		log.Printf("Failed to log video activity: %v", err)
	}

	if awarded {
		s.notifyCoinReward(userID, CoinsPerVideoWatched)
	}
	if err := s.progress.OnVideoWatched(userID, video); err != nil {
		log.Printf("Failed to evaluate progress after video %s: %v", videoID, err)
	}
	return progress, nil
}

// GetProgress получает прогресс просмотра
func (s *videoService) GetProgress(userID, videoID uuid.UUID) (*models.VideoProgress, error) {
	return s.progressRepo.GetOrCreateVideoProgress(userID, videoID)
}

// notifyCoinReward сообщает о полученных коинах
func (s *videoService) notifyCoinReward(userID uuid.UUID, amount int) {
	if err := s.notifier.Send(userID,
		fmt.Sprintf("Вы получили +%d коинов! 🪙", amount),
		fmt.Sprintf("Вы заработали %d коинов! Их можно обменять на подарки в магазине.", amount),
		models.MessageTypeAchievement,
	); err != nil {
		log.Printf("Failed to send coin reward message: %v", err)
	}
}
