package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
)

const paymentGateMarker = "payment_gate"

// Дни месячного платёжного цикла
const (
	billingResetDay    = 1  // сброс цикла
	billingReminderDay = 5  // напоминание об оплате
	billingBlockDay    = 10 // автоблокировка неплательщиков
)

// PaymentService управляет платёжным циклом учеников:
// напоминание, автоблокировка, восстановление после оплаты
type PaymentService interface {
	// RunDailyCheckIfDue запускает проверку не чаще раза в календарный день
	RunDailyCheckIfDue(now time.Time) error

	// MarkPaid отмечает оплату и снимает автоблокировку
	MarkPaid(userID uuid.UUID, now time.Time) error

	GetStatus(userID uuid.UUID) (*models.PaymentStatus, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
	notifier    NotificationService
}

// NewPaymentService создает новый сервис платёжного цикла
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	notifier NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

// RunDailyCheckIfDue выполняет дневные проверки платёжного цикла.
// Маркер последнего запуска живёт в базе: повторный вызов в тот же день —
// no-op, рестарт процесса повтора не вызывает.
func (s *paymentService) RunDailyCheckIfDue(now time.Time) error {
	today := now.Format("2006-01-02")
	lastRun, err := s.paymentRepo.GetGateRun(paymentGateMarker)
	if err != nil {
		return err
	}
	if lastRun == today {
		return nil
	}
	if err := s.paymentRepo.SetGateRun(paymentGateMarker, today); err != nil {
		return err
	}

	// Просроченные оплаты блокируются независимо от дня месяца
	if err := s.expireOverdue(now); err != nil {
		log.Printf("Payment expiry check failed: %v", err)
	}

	// Шаги цикла в календарном порядке: после простоя сервиса через
	// границу месяца сброс произойдёт раньше блокировки.
	// Сброс только при переходе в новый месяц относительно прошлого запуска.
	if lastRun != "" && lastRun < now.Format("2006-01") {
		if err := s.paymentRepo.ResetBillingCycle(); err != nil {
			return fmt.Errorf("reset billing cycle: %w", err)
		}
	}
	if now.Day() >= billingReminderDay {
		if err := s.sendPaymentReminders(now); err != nil {
			log.Printf("Payment reminders failed: %v", err)
		}
	}
	if now.Day() >= billingBlockDay {
		if err := s.blockUnpaid(now); err != nil {
			log.Printf("Payment auto-block failed: %v", err)
		}
	}
	return nil
}

// expireOverdue снимает is_paid и блокирует учеников с истёкшим сроком оплаты
func (s *paymentService) expireOverdue(now time.Time) error {
	students, err := s.userRepo.ListUnblockedStudents()
	if err != nil {
		return err
	}
	for _, student := range students {
		status, err := s.paymentRepo.GetOrCreateByUser(student.ID)
		if err != nil {
			return err
		}
		if !status.IsPaid || status.PaidUntil == nil || !status.PaidUntil.Before(now) {
			continue
		}

		status.IsPaid = false
		status.AutoBlocked = true
		if err := s.paymentRepo.Update(status); err != nil {
			return err
		}
		if err := s.userRepo.SetBlocked(student.ID, true); err != nil {
			return err
		}
	}
	return nil
}

// sendPaymentReminders напоминает об оплате раз в календарный месяц
func (s *paymentService) sendPaymentReminders(now time.Time) error {
	students, err := s.userRepo.ListUnblockedStudents()
	if err != nil {
		return err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for _, student := range students {
		sent, err := s.messageRepo.ExistsForRecipientSince(student.ID, models.MessageTypePayment, monthStart)
		if err != nil {
			return err
		}
		if sent {
			continue
		}
		if err := s.notifier.Send(student.ID,
			"Напоминание об оплате 💳",
			"Не забудьте оплатить обучение за этот месяц. После 10 числа доступ к платформе будет ограничен.",
			models.MessageTypePayment,
		); err != nil {
			return err
		}
	}
	return nil
}

// blockUnpaid блокирует неоплативших учеников и отправляет системное сообщение
func (s *paymentService) blockUnpaid(now time.Time) error {
	students, err := s.userRepo.ListUnblockedStudents()
	if err != nil {
		return err
	}
	for _, student := range students {
		status, err := s.paymentRepo.GetOrCreateByUser(student.ID)
		if err != nil {
			return err
		}
		if status.IsPaid {
			continue
		}

		status.AutoBlocked = true
		if err := s.paymentRepo.Update(status); err != nil {
			return err
		}
		if err := s.userRepo.SetBlocked(student.ID, true); err != nil {
			return err
		}
		if err := s.notifier.Send(student.ID,
			"Доступ ограничен ⛔",
			"Оплата за этот месяц не поступила, доступ к платформе приостановлен. После оплаты обратитесь к администратору.",
			models.MessageTypeSystem,
		); err != nil {
			return err
		}
	}
	return nil
}

// MarkPaid отмечает оплату до конца текущего месяца и восстанавливает
// автоматически заблокированного ученика
func (s *paymentService) MarkPaid(userID uuid.UUID, now time.Time) error {
	status, err := s.paymentRepo.GetOrCreateByUser(userID)
	if err != nil {
		return err
	}

	paidUntil := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	status.IsPaid = true
	status.LastPaymentDate = &now
	status.PaidUntil = &paidUntil

	wasAutoBlocked := status.AutoBlocked
	status.AutoBlocked = false
	if err := s.paymentRepo.Update(status); err != nil {
		return err
	}

	if wasAutoBlocked {
		if err := s.userRepo.SetBlocked(userID, false); err != nil {
			return err
		}
		if err := s.notifier.Send(userID,
			"Доступ восстановлен ✅",
			"Оплата получена, доступ к платформе восстановлен. Приятной учёбы!",
			models.MessageTypeSystem,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetStatus получает платёжный статус ученика
func (s *paymentService) GetStatus(userID uuid.UUID) (*models.PaymentStatus, error) {
	return s.paymentRepo.GetOrCreateByUser(userID)
}
