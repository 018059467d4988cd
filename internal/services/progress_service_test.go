package services

import (
	"strings"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
)

func TestMilestonesFireOncePerThreshold(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	// 4 видео: каждый просмотр добавляет 25%
	videos := make([]*models.VideoLesson, 0, 4)
	for _, title := range []string{"Урок 1", "Урок 2", "Урок 3", "Урок 4"} {
		videos = append(videos, env.createVideoLesson(t, course.ID, title))
	}

	// 25%
	if _, err := svc.WatchVideo(student.ID, videos[0].ID); err != nil {
		t.Fatalf("WatchVideo() error = %v", err)
	}
	messages := env.messagesFor(t, student.ID)
	if got := milestoneCount(messages); got != 1 {
		t.Fatalf("milestones after 25%% = %d, want 1", got)
	}
	if !strings.Contains(lastMilestone(messages).Title, "25%") {
		t.Errorf("milestone title = %q, want 25%%", lastMilestone(messages).Title)
	}

	// 50%
	if _, err := svc.WatchVideo(student.ID, videos[1].ID); err != nil {
		t.Fatalf("WatchVideo() error = %v", err)
	}
	messages = env.messagesFor(t, student.ID)
	if got := milestoneCount(messages); got != 2 {
		t.Fatalf("milestones after 50%% = %d, want 2", got)
	}

	// повторная оценка того же прогресса вехи не дублирует
	if err := env.progress.OnVideoWatched(student.ID, mustVideoWithLesson(t, env, videos[1].ID)); err != nil {
		t.Fatalf("OnVideoWatched() error = %v", err)
	}
	if got := milestoneCount(env.messagesFor(t, student.ID)); got != 2 {
		t.Errorf("milestones after repeat = %d, want 2", got)
	}
}

func TestMilestoneSkipsToHighestThreshold(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	// единственное видео: первый просмотр сразу дает 100%
	video := env.createVideoLesson(t, course.ID, "Единственный урок")
	svc := newVideoService(env)
	if _, err := svc.WatchVideo(student.ID, video.ID); err != nil {
		t.Fatalf("WatchVideo() error = %v", err)
	}

	messages := env.messagesFor(t, student.ID)
	if got := milestoneCount(messages); got != 1 {
		t.Fatalf("milestones = %d, want only the highest", got)
	}
	if !strings.Contains(lastMilestone(messages).Title, "75%") {
		t.Errorf("milestone title = %q, want 75%%", lastMilestone(messages).Title)
	}
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	completed, total, percent, err := env.progress.CourseProgress(student.ID, course.ID)
	if err != nil {
		t.Fatalf("CourseProgress() error = %v", err)
	}
	if completed != 0 || total != 0 || percent != 0 {
		t.Errorf("progress = %d/%d (%f%%), want zeros", completed, total, percent)
	}
}

func mustVideoWithLesson(t *testing.T, env *testEnv, videoID uuid.UUID) *models.VideoLesson {
	t.Helper()
	video, err := env.lessonRepo.GetVideoByID(videoID)
	if err != nil {
		t.Fatalf("get video: %v", err)
	}
	return video
}

func milestoneCount(messages []models.Message) int {
	count := 0
	for _, msg := range messages {
		if msg.MessageType == models.MessageTypeMotivation {
			count++
		}
	}
	return count
}

func lastMilestone(messages []models.Message) *models.Message {
	for i := range messages {
		if messages[i].MessageType == models.MessageTypeMotivation {
			return &messages[i]
		}
	}
	return &models.Message{}
}
