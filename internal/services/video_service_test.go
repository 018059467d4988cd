package services

import (
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newVideoService(env *testEnv) VideoService {
	return NewVideoService(env.db, env.lessonRepo, env.progressRepo, env.coinRepo, env.ledger, env.progress, env.notifier)
}

func TestWatchVideoAwardsOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)
	video := env.createVideoLesson(t, course.ID, "Введение")

	progress, err := svc.WatchVideo(student.ID, video.ID)
	if err != nil {
		t.Fatalf("WatchVideo() error = %v", err)
	}
	if !progress.Watched || !progress.CoinAwarded {
		t.Errorf("progress watched=%v awarded=%v, want both true", progress.Watched, progress.CoinAwarded)
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerVideoWatched {
		t.Errorf("coins = %d, want %d", got, CoinsPerVideoWatched)
	}

	// повторный просмотр ничего не меняет
	again, err := svc.WatchVideo(student.ID, video.ID)
	if err != nil {
		t.Fatalf("second WatchVideo() error = %v", err)
	}
	if again.ID != progress.ID {
		t.Error("second watch should return the same progress row")
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerVideoWatched {
		t.Errorf("coins after rewatch = %d, want %d", got, CoinsPerVideoWatched)
	}

	transactions, err := env.ledger.ListTransactions(student.ID)
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("transactions = %d, want 1", len(transactions))
	}
}

func TestWatchFirstVideoSendsGreeting(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)
	video := env.createVideoLesson(t, course.ID, "Введение")

	if _, err := svc.WatchVideo(student.ID, video.ID); err != nil {
		t.Fatalf("WatchVideo() error = %v", err)
	}

	var hasGreeting bool
	for _, msg := range env.messagesFor(t, student.ID) {
		if msg.MessageType == models.MessageTypeAchievement && msg.Title == "Поздравляем! Вы начали обучение! 🚀" {
			hasGreeting = true
		}
	}
	if !hasGreeting {
		t.Error("first watched video should produce a greeting message")
	}
}
