package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"
	"github.com/Xusanbek0039/lms-platform/pkg/telegram"

	"github.com/google/uuid"
)

const birthdaySweepMarker = "birthday_sweep"

// NotificationService рассылает сообщения пользователям.
// Рассылка по роли материализуется строкой на каждого получателя,
// чтобы статус прочтения был независимым; общее объявление — одна строка.
type NotificationService interface {
	Send(userID uuid.UUID, title, content string, messageType models.MessageType) error
	SendFrom(senderID *uuid.UUID, userID uuid.UUID, title, content string, messageType models.MessageType) error
	SendToCohort(cohort models.Cohort, senderID *uuid.UUID, title, content string, messageType models.MessageType) error
	ListByUser(userID uuid.UUID) ([]models.Message, error)
	MarkAsRead(messageID uuid.UUID) error
	CountUnread(userID uuid.UUID) (int64, error)

	// RunDailySweepIfDue запускает поздравления с днём рождения и
	// предупреждения о неактивности не чаще раза в календарный день.
	RunDailySweepIfDue(now time.Time) error
}

type notificationService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	bot         *telegram.Bot
}

// NewNotificationService создает новый сервис уведомлений
func NewNotificationService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	bot *telegram.Bot,
) NotificationService {
	return &notificationService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		bot:         bot,
	}
}

// Send отправляет системное сообщение пользователю
func (s *notificationService) Send(userID uuid.UUID, title, content string, messageType models.MessageType) error {
	return s.SendFrom(nil, userID, title, content, messageType)
}

// SendFrom отправляет сообщение от имени пользователя (nil — системное)
func (s *notificationService) SendFrom(senderID *uuid.UUID, userID uuid.UUID, title, content string, messageType models.MessageType) error {
	message := &models.Message{
		Title:       title,
		Content:     content,
		MessageType: messageType,
		RecipientID: &userID,
		SenderID:    senderID,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return err
	}

	// Push в Telegram, если бот настроен и аккаунт привязан
	if s.bot != nil {
		if user, err := s.userRepo.GetByID(userID); err == nil && user.TelegramID != nil {
			if err := s.bot.SendMessage(*user.TelegramID, title+"\n\n"+content); err != nil {
				log.Printf("Failed to push message %s to telegram: %v", message.ID, err)
			}
		}
	}
	return nil
}

// SendToCohort рассылает сообщение группе получателей.
// Для all создается одна широковещательная строка, для ролей —
// пакетная вставка по строке на получателя.
func (s *notificationService) SendToCohort(cohort models.Cohort, senderID *uuid.UUID, title, content string, messageType models.MessageType) error {
	if cohort == models.CohortAll {
		return s.messageRepo.Create(&models.Message{
			Title:       title,
			Content:     content,
			MessageType: models.MessageTypeAll,
			SenderID:    senderID,
		})
	}

	var role models.UserRole
	switch cohort {
	case models.CohortStudents:
		role = models.RoleStudent
	case models.CohortTeachers:
		role = models.RoleTeacher
	default:
		return fmt.Errorf("%w: unknown cohort %q", ErrValidation, cohort)
	}

	users, err := s.userRepo.ListByRole(role)
	if err != nil {
		return err
	}
	messages := make([]models.Message, 0, len(users))
	for _, user := range users {
		userID := user.ID
		messages = append(messages, models.Message{
			Title:       title,
			Content:     content,
			MessageType: messageType,
			RecipientID: &userID,
			SenderID:    senderID,
		})
	}
	return s.messageRepo.CreateBatch(messages)
}

// ListByUser получает сообщения пользователя вместе с общими объявлениями
func (s *notificationService) ListByUser(userID uuid.UUID) ([]models.Message, error) {
	return s.messageRepo.ListByRecipient(userID)
}

// MarkAsRead помечает сообщение прочитанным
func (s *notificationService) MarkAsRead(messageID uuid.UUID) error {
	return s.messageRepo.MarkAsRead(messageID)
}

// CountUnread считает непрочитанные сообщения пользователя
func (s *notificationService) CountUnread(userID uuid.UUID) (int64, error) {
	return s.messageRepo.CountUnread(userID)
}

// RunDailySweepIfDue выполняет ежедневный обход не чаще раза в день.
// Маркер хранится в базе, поэтому рестарт процесса не приводит к повтору.
func (s *notificationService) RunDailySweepIfDue(now time.Time) error {
	today := now.Format("2006-01-02")
	lastRun, err := s.paymentRepo.GetGateRun(birthdaySweepMarker)
	if err != nil {
		return err
	}
	if lastRun == today {
		return nil
	}
	if err := s.paymentRepo.SetGateRun(birthdaySweepMarker, today); err != nil {
		return err
	}

	if err := s.sendBirthdayGreetings(now); err != nil {
		log.Printf("Birthday sweep failed: %v", err)
	}
	if err := s.sendInactivityWarnings(now); err != nil {
		log.Printf("Inactivity sweep failed: %v", err)
	}
	return nil
}

// sendBirthdayGreetings поздравляет именинников: личное сообщение
// и общее объявление, оба не чаще раза в день
func (s *notificationService) sendBirthdayGreetings(now time.Time) error {
	users, err := s.userRepo.ListWithBirthday(now.Day(), int(now.Month()))
	if err != nil {
		return err
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, user := range users {
		sent, err := s.messageRepo.ExistsForRecipientSince(user.ID, models.MessageTypePersonal, startOfDay)
		if err != nil {
			return err
		}
		if !sent {
			if err := s.Send(user.ID,
				"С днём рождения! 🎂",
				fmt.Sprintf("Уважаемый(ая) %s, поздравляем вас с днём рождения! Желаем здоровья и успехов в учёбе!", user.FirstName),
				models.MessageTypePersonal,
			); err != nil {
				return err
			}
		}

		announced, err := s.messageRepo.ExistsBroadcastSince(models.MessageTypeAll, user.FullName(), startOfDay)
		if err != nil {
			return err
		}
		if !announced {
			if err := s.messageRepo.Create(&models.Message{
				Title:       "Сегодня день рождения! 🎉",
				Content:     fmt.Sprintf("Дорогие пользователи! Сегодня день рождения у %s. Поздравляем от всей команды!", user.FullName()),
				MessageType: models.MessageTypeAll,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// sendInactivityWarnings предупреждает учеников, неактивных 3 и более дней
func (s *notificationService) sendInactivityWarnings(now time.Time) error {
	students, err := s.userRepo.ListUnblockedStudents()
	if err != nil {
		return err
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, student := range students {
		if student.LastActivity == nil {
			continue
		}
		daysInactive := int(now.Sub(*student.LastActivity).Hours() / 24)
		if daysInactive < 3 {
			continue
		}

		sent, err := s.messageRepo.ExistsForRecipientSince(student.ID, models.MessageTypeWarning, startOfDay)
		if err != nil {
			return err
		}
		if sent {
			continue
		}
		if err := s.Send(student.ID,
			fmt.Sprintf("Нет активности %d дней", daysInactive),
			fmt.Sprintf("Вы не заходили на платформу %d дней. Продолжим обучение? Мы вас ждём!", daysInactive),
			models.MessageTypeWarning,
		); err != nil {
			return err
		}
	}
	return nil
}
