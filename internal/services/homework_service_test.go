package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newHomeworkService(env *testEnv) HomeworkService {
	return NewHomeworkService(env.db, env.lessonRepo, env.homeworkRepo, env.userRepo, env.coinRepo, env.ledger, env.progress)
}

func TestGradeHomeworkAwardsOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := newHomeworkService(env)
	student := env.createUser(t, models.RoleStudent)
	teacher := env.createUser(t, models.RoleTeacher)
	course := env.createCourse(t)
	homework := env.createHomeworkLesson(t, course.ID, nil)

	submission, err := svc.SubmitHomework(student.ID, homework.ID, "uploads/hw.pdf")
	if err != nil {
		t.Fatalf("SubmitHomework() error = %v", err)
	}
	if submission.Status != models.SubmissionPending {
		t.Errorf("status = %s, want pending", submission.Status)
	}

	graded, err := svc.GradeHomework(submission.ID, teacher.ID, 90, "Хорошая работа")
	if err != nil {
		t.Fatalf("GradeHomework() error = %v", err)
	}
	if graded.Status != models.SubmissionGraded || graded.Grade == nil || *graded.Grade != 90 {
		t.Errorf("graded status=%s grade=%v, want graded/90", graded.Status, graded.Grade)
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerHomeworkGrade {
		t.Errorf("coins = %d, want %d", got, CoinsPerHomeworkGrade)
	}

	// повторная проверка меняет оценку без второй выплаты
	regraded, err := svc.GradeHomework(submission.ID, teacher.ID, 70, "После пересмотра")
	if err != nil {
		t.Fatalf("re-GradeHomework() error = %v", err)
	}
	if regraded.Grade == nil || *regraded.Grade != 70 {
		t.Errorf("regraded grade = %v, want 70", regraded.Grade)
	}
	if got := env.userCoins(t, student.ID); got != CoinsPerHomeworkGrade {
		t.Errorf("coins after regrade = %d, want %d", got, CoinsPerHomeworkGrade)
	}
}

func TestGradeHomeworkValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := newHomeworkService(env)
	student := env.createUser(t, models.RoleStudent)
	teacher := env.createUser(t, models.RoleTeacher)
	course := env.createCourse(t)
	homework := env.createHomeworkLesson(t, course.ID, nil)

	submission, err := svc.SubmitHomework(student.ID, homework.ID, "uploads/hw.pdf")
	if err != nil {
		t.Fatalf("SubmitHomework() error = %v", err)
	}

	tests := []struct {
		name  string
		grade int
	}{
		{name: "zero", grade: 0},
		{name: "negative", grade: -5},
		{name: "over max", grade: 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GradeHomework(submission.ID, teacher.ID, tt.grade, "")
			if !errors.Is(err, ErrValidation) {
				t.Errorf("GradeHomework(%d) error = %v, want ErrValidation", tt.grade, err)
			}
		})
	}

	// ученик не может проверять задания
	if _, err := svc.GradeHomework(submission.ID, student.ID, 80, ""); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("student grading error = %v, want ErrAccessDenied", err)
	}
}

func TestSubmitHomeworkLateAndRevisions(t *testing.T) {
	env := newTestEnv(t)
	svc := newHomeworkService(env)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	past := time.Now().Add(-24 * time.Hour)
	homework := env.createHomeworkLesson(t, course.ID, &past)

	first, err := svc.SubmitHomework(student.ID, homework.ID, "uploads/v1.pdf")
	if err != nil {
		t.Fatalf("SubmitHomework() error = %v", err)
	}
	if !first.IsLate {
		t.Error("submission after due date should be late")
	}
	if first.RevisionCount != 0 {
		t.Errorf("first revision = %d, want 0", first.RevisionCount)
	}

	second, err := svc.SubmitHomework(student.ID, homework.ID, "uploads/v2.pdf")
	if err != nil {
		t.Fatalf("second SubmitHomework() error = %v", err)
	}
	if second.RevisionCount != 1 {
		t.Errorf("second revision = %d, want 1", second.RevisionCount)
	}
}
