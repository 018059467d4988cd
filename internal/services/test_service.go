package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestService управляет прохождением тестов: старт, сдача, политика пересдачи.
// Результат после сдачи неизменяем; пересдача — новый результат,
// если тест её разрешает.
type TestService interface {
	// StartTest начинает попытку. Если пересдача запрещена и результат
	// уже есть, возвращает его вместе с ErrInvalidStateTransition.
	StartTest(userID, testID uuid.UUID) (*models.TestResult, time.Time, error)

	// SubmitTest оценивает ответы и записывает результат.
	// answers: вопрос -> выбранный вариант (nil — вопрос пропущен).
	SubmitTest(userID, testID uuid.UUID, answers map[uuid.UUID]*uuid.UUID, startedAt time.Time) (*models.TestResult, error)

	GetResult(id uuid.UUID) (*models.TestResult, error)
}

type testService struct {
	db         *gorm.DB
	lessonRepo repository.LessonRepository
	testRepo   repository.TestRepository
	coinRepo   repository.CoinRepository
	ledger     LedgerService
	progress   ProgressService
	notifier   NotificationService
}

// NewTestService создает новый сервис тестов
func NewTestService(
	db *gorm.DB,
	lessonRepo repository.LessonRepository,
	testRepo repository.TestRepository,
	coinRepo repository.CoinRepository,
	ledger LedgerService,
	progress ProgressService,
	notifier NotificationService,
) TestService {
	return &testService{
		db:         db,
		lessonRepo: lessonRepo,
		testRepo:   testRepo,
		coinRepo:   coinRepo,
		ledger:     ledger,
		progress:   progress,
		notifier:   notifier,
	}
}

// StartTest проверяет право на попытку и возвращает время старта.
// Хранение времени между запросами — забота вызывающего слоя (сессии).
func (s *testService) StartTest(userID, testID uuid.UUID) (*models.TestResult, time.Time, error) {
	test, err := s.lessonRepo.GetTestByID(testID)
	if err != nil {
		return nil, time.Time{}, err
	}

	if !test.AllowRetry {
		existing, err := s.testRepo.GetLatestResult(testID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, err
		}
		if existing != nil {
			return existing, time.Time{}, ErrInvalidStateTransition
		}
	}
	return nil, time.Now(), nil
}

// SubmitTest оценивает ответы и записывает неизменяемый результат.
// Результат, снимок ответов и выплата пишутся в одной транзакции.
func (s *testService) SubmitTest(userID, testID uuid.UUID, answers map[uuid.UUID]*uuid.UUID, startedAt time.Time) (*models.TestResult, error) {
	test, err := s.lessonRepo.GetTestByID(testID)
	if err != nil {
		return nil, err
	}

	if !test.AllowRetry {
		existing, err := s.testRepo.GetLatestResult(testID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return existing, ErrInvalidStateTransition
		}
	}

	total := len(test.Questions)
	correct := 0
	userAnswers := make([]models.TestUserAnswer, 0, total)
	for i, question := range test.Questions {
		selected := answers[question.ID]
		// выбранный вариант сверяется с вариантами самого вопроса;
		// чужой или отсутствующий id — просто неверный ответ
		isCorrect := false
		var selectedID *uuid.UUID
		if selected != nil {
			for _, option := range question.Options {
				if option.ID == *selected {
					id := option.ID
					selectedID = &id
					isCorrect = option.IsCorrect
					break
				}
			}
		}
		if isCorrect {
			correct++
		}
		userAnswers = append(userAnswers, models.TestUserAnswer{
			QuestionID:       question.ID,
			SelectedOptionID: selectedID,
			IsCorrect:        isCorrect,
			Order:            i + 1,
		})
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	now := time.Now()
	if startedAt.IsZero() {
		startedAt = now
	}
	result := &models.TestResult{
		TestID:         testID,
		StudentID:      userID,
		Score:          score,
		TotalQuestions: total,
		CorrectAnswers: correct,
		StartedAt:      startedAt,
		CompletedAt:    now,
		Passed:         score >= test.PassingScore,
	}

	awarded := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.testRepo.CreateResult(tx, result); err != nil {
			return err
		}
		for i := range userAnswers {
			userAnswers[i].TestResultID = result.ID
			if err := s.testRepo.CreateAnswer(tx, &userAnswers[i]); err != nil {
				return err
			}
		}
		if correct == 0 {
			// без правильных ответов флаг остаётся невзведённым
			return nil
		}
		claimed, err := s.testRepo.ClaimCoinAward(tx, result.ID)
		if err != nil {
			return err
		}
		if claimed {
			awarded = true
			return s.ledger.AddCoinsTx(tx, userID, correct*CoinsPerCorrectAnswer,
				fmt.Sprintf("Тест: %s (%d правильных)", test.Lesson.Title, correct))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.CoinAwarded = awarded
	result.Answers = userAnswers

	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivitySubmitTest,
		Description: fmt.Sprintf("Сдал тест: %s (%d%%)", test.Lesson.Title, score),
	}); err != nil {
		log.Printf("Failed to log test activity: %v", err)
	}

	if awarded {
		if err := s.notifier.Send(userID,
			fmt.Sprintf("Вы получили +%d коинов! 🪙", correct*CoinsPerCorrectAnswer),
			fmt.Sprintf("Вы заработали %d коинов за правильные ответы! Их можно обменять на подарки в магазине.", correct*CoinsPerCorrectAnswer),
			models.MessageTypeAchievement,
		); err != nil {
			log.Printf("Failed to send coin reward message: %v", err)
		}
	}

	if err := s.progress.OnTestCompleted(userID, result, test.Lesson.CourseID, test.Lesson.Title); err != nil {
		log.Printf("Failed to evaluate progress after test %s: %v", testID, err)
	}
	return result, nil
}

// GetResult получает результат по ID вместе с ответами
func (s *testService) GetResult(id uuid.UUID) (*models.TestResult, error) {
	return s.testRepo.GetResultByID(id)
}
