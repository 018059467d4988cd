package services

import (
	"testing"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newPaymentService(env *testEnv) PaymentService {
	return NewPaymentService(env.paymentRepo, env.userRepo, env.messageRepo, env.notifier)
}

func TestPaymentGateBlocksUnpaidOnDayTen(t *testing.T) {
	env := newTestEnv(t)
	svc := newPaymentService(env)
	student := env.createUser(t, models.RoleStudent)

	day10 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if err := svc.RunDailyCheckIfDue(day10); err != nil {
		t.Fatalf("RunDailyCheckIfDue() error = %v", err)
	}

	user, err := env.userRepo.GetByID(student.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !user.IsBlocked {
		t.Error("unpaid student should be blocked on day 10")
	}

	status, err := svc.GetStatus(student.ID)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !status.AutoBlocked {
		t.Error("status should be marked auto-blocked")
	}

	var systemMessages int
	for _, msg := range env.messagesFor(t, student.ID) {
		if msg.MessageType == models.MessageTypeSystem {
			systemMessages++
		}
	}
	if systemMessages != 1 {
		t.Errorf("system messages = %d, want 1", systemMessages)
	}
}

func TestPaymentGateRunsOncePerDay(t *testing.T) {
	env := newTestEnv(t)
	svc := newPaymentService(env)
	student := env.createUser(t, models.RoleStudent)

	day5 := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)
	if err := svc.RunDailyCheckIfDue(day5); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	// повторный запуск в тот же день ничего не добавляет
	if err := svc.RunDailyCheckIfDue(day5.Add(2 * time.Hour)); err != nil {
		t.Fatalf("second run error = %v", err)
	}

	var reminders int
	for _, msg := range env.messagesFor(t, student.ID) {
		if msg.MessageType == models.MessageTypePayment {
			reminders++
		}
	}
	if reminders != 1 {
		t.Errorf("payment reminders = %d, want 1", reminders)
	}
}

func TestPaymentGateSkipsPaidStudents(t *testing.T) {
	env := newTestEnv(t)
	svc := newPaymentService(env)
	student := env.createUser(t, models.RoleStudent)

	if err := svc.MarkPaid(student.ID, time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}

	day10 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if err := svc.RunDailyCheckIfDue(day10); err != nil {
		t.Fatalf("RunDailyCheckIfDue() error = %v", err)
	}

	user, err := env.userRepo.GetByID(student.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.IsBlocked {
		t.Error("paid student should not be blocked")
	}
}

func TestMarkPaidReinstatesAutoBlocked(t *testing.T) {
	env := newTestEnv(t)
	svc := newPaymentService(env)
	student := env.createUser(t, models.RoleStudent)

	day10 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	if err := svc.RunDailyCheckIfDue(day10); err != nil {
		t.Fatalf("RunDailyCheckIfDue() error = %v", err)
	}

	if err := svc.MarkPaid(student.ID, day10.Add(24*time.Hour)); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}

	user, err := env.userRepo.GetByID(student.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.IsBlocked {
		t.Error("paid student should be unblocked")
	}

	status, err := svc.GetStatus(student.ID)
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if !status.IsPaid || status.AutoBlocked {
		t.Errorf("status paid=%v autoBlocked=%v, want paid and not auto-blocked", status.IsPaid, status.AutoBlocked)
	}
	if status.PaidUntil == nil || !status.PaidUntil.After(day10) {
		t.Error("paid_until should cover the rest of the month")
	}
}

func TestManualBlockIsNotLiftedByPayment(t *testing.T) {
	env := newTestEnv(t)
	svc := newPaymentService(env)
	student := env.createUser(t, models.RoleStudent)

	// ручная блокировка администратором, не автоматическая
	if err := env.userRepo.SetBlocked(student.ID, true); err != nil {
		t.Fatalf("SetBlocked() error = %v", err)
	}

	if err := svc.MarkPaid(student.ID, time.Now()); err != nil {
		t.Fatalf("MarkPaid() error = %v", err)
	}

	user, err := env.userRepo.GetByID(student.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !user.IsBlocked {
		t.Error("manual block should survive payment")
	}
}
