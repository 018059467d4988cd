package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/Xusanbek0039/lms-platform/internal/models"
)

func newCourseService(env *testEnv) CourseService {
	return NewCourseService(env.courseRepo, env.lessonRepo, env.userRepo, env.coinRepo, env.notifier)
}

func TestCreateCourseRequiresTeacher(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	student := env.createUser(t, models.RoleStudent)
	teacher := env.createUser(t, models.RoleTeacher)

	course := &models.Course{Name: "Алгебра"}
	if err := svc.CreateCourse(course, student.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("student CreateCourse() error = %v, want ErrAccessDenied", err)
	}
	if err := svc.CreateCourse(course, teacher.ID); err != nil {
		t.Fatalf("teacher CreateCourse() error = %v", err)
	}
	if err := svc.CreateCourse(&models.Course{}, teacher.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("empty name error = %v, want ErrValidation", err)
	}
}

func TestEnrollDuplicate(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	student := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	if _, err := svc.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if _, err := svc.Enroll(student.ID, course.ID); !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("second Enroll() error = %v, want ErrAlreadyEnrolled", err)
	}

	enrollments, err := svc.ListEnrollments(student.ID)
	if err != nil {
		t.Fatalf("ListEnrollments() error = %v", err)
	}
	if len(enrollments) != 1 {
		t.Errorf("enrollments = %d, want 1", len(enrollments))
	}
}

func TestAddLessonNotifiesEnrolled(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	teacher := env.createUser(t, models.RoleTeacher)
	enrolled := env.createUser(t, models.RoleStudent)
	outsider := env.createUser(t, models.RoleStudent)
	course := env.createCourse(t)

	if _, err := svc.Enroll(enrolled.ID, course.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	lesson := &models.Lesson{CourseID: course.ID, Title: "Введение", Type: models.LessonTypeVideo}
	if err := svc.AddLesson(lesson, teacher.ID); err != nil {
		t.Fatalf("AddLesson() error = %v", err)
	}

	messages := env.messagesFor(t, enrolled.ID)
	if len(messages) != 1 {
		t.Fatalf("enrolled messages = %d, want 1", len(messages))
	}
	if !strings.Contains(messages[0].Title, course.Name) {
		t.Errorf("notification title = %q, want course name", messages[0].Title)
	}
	if got := len(env.messagesFor(t, outsider.ID)); got != 0 {
		t.Errorf("outsider messages = %d, want 0", got)
	}

	student := env.createUser(t, models.RoleStudent)
	if err := svc.AddLesson(&models.Lesson{CourseID: course.ID, Title: "Ещё урок"}, student.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("student AddLesson() error = %v, want ErrAccessDenied", err)
	}
}

func TestListCourseStudents(t *testing.T) {
	env := newTestEnv(t)
	svc := newCourseService(env)
	course := env.createCourse(t)
	other := env.createCourse(t)

	a := env.createUser(t, models.RoleStudent)
	b := env.createUser(t, models.RoleStudent)
	if _, err := svc.Enroll(a.ID, course.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}
	if _, err := svc.Enroll(b.ID, other.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	students, err := svc.ListCourseStudents(course.ID)
	if err != nil {
		t.Fatalf("ListCourseStudents() error = %v", err)
	}
	if len(students) != 1 || students[0].UserID != a.ID {
		t.Errorf("course students = %v, want only the first student", students)
	}
}
