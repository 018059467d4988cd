package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoProgress отмечает просмотр видео учеником.
// Создаётся лениво при первом открытии; watched переходит в true ровно один раз.
type VideoProgress struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_video_progress_user_video"`
	VideoID     uuid.UUID  `json:"video_id" gorm:"type:text;not null;uniqueIndex:idx_video_progress_user_video"`
	Watched     bool       `json:"watched" gorm:"default:false"`
	WatchedAt   *time.Time `json:"watched_at"`
	CoinAwarded bool       `json:"coin_awarded" gorm:"default:false"` // защита от двойной выплаты

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связи
	User  User        `json:"-" gorm:"foreignKey:UserID"`
	Video VideoLesson `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}

// TestResult представляет одну попытку прохождения теста (append-only)
type TestResult struct {
	ID             uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	TestID         uuid.UUID `json:"test_id" gorm:"type:text;not null;index"`
	StudentID      uuid.UUID `json:"student_id" gorm:"type:text;not null;index"`
	Score          int       `json:"score"` // 0-100
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	Passed         bool      `json:"passed"`
	CoinAwarded    bool      `json:"coin_awarded" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	Test    Test             `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Student User             `json:"-" gorm:"foreignKey:StudentID"`
	Answers []TestUserAnswer `json:"answers,omitempty" gorm:"foreignKey:TestResultID"`
}

// TestUserAnswer фиксирует ответ на один вопрос; запись неизменяема
type TestUserAnswer struct {
	ID               uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	TestResultID     uuid.UUID  `json:"test_result_id" gorm:"type:text;not null;index"`
	QuestionID       uuid.UUID  `json:"question_id" gorm:"type:text;not null"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id" gorm:"type:text"` // nil — вопрос пропущен
	IsCorrect        bool       `json:"is_correct"`
	Order            int        `json:"order" gorm:"column:sort_order"`

	CreatedAt time.Time `json:"created_at"`
}

// SubmissionStatus определяет статус домашней работы
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionReviewing SubmissionStatus = "reviewing"
	SubmissionRevision  SubmissionStatus = "revision"
	SubmissionAccepted  SubmissionStatus = "accepted"
	SubmissionGraded    SubmissionStatus = "graded"
)

// HomeworkSubmission представляет сдачу домашнего задания.
// Повторные сдачи разрешены, актуальна последняя.
type HomeworkSubmission struct {
	ID            uuid.UUID        `json:"id" gorm:"type:text;primary_key"`
	HomeworkID    uuid.UUID        `json:"homework_id" gorm:"type:text;not null;index"`
	StudentID     uuid.UUID        `json:"student_id" gorm:"type:text;not null;index"`
	FilePath      string           `json:"file_path"`
	Status        SubmissionStatus `json:"status" gorm:"default:'pending'"`
	Grade         *int             `json:"grade"` // 1-100
	Feedback      string           `json:"feedback"`
	GradedByID    *uuid.UUID       `json:"graded_by_id" gorm:"type:text"`
	GradedAt      *time.Time       `json:"graded_at"`
	CoinAwarded   bool             `json:"coin_awarded" gorm:"default:false"`
	IsLate        bool             `json:"is_late" gorm:"default:false"` // вычисляется при сдаче
	RevisionCount int              `json:"revision_count" gorm:"default:0"`

	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Связи
	Homework Homework `json:"homework,omitempty" gorm:"foreignKey:HomeworkID"`
	Student  User     `json:"-" gorm:"foreignKey:StudentID"`
	GradedBy *User    `json:"-" gorm:"foreignKey:GradedByID"`
}

// MilestoneNotice фиксирует отправленное сообщение о прогрессе курса.
// Структурный ключ идемпотентности вместо поиска подстроки в заголовке.
type MilestoneNotice struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_milestone_user_course_threshold"`
	CourseID  uuid.UUID `json:"course_id" gorm:"type:text;not null;uniqueIndex:idx_milestone_user_course_threshold"`
	Threshold int       `json:"threshold" gorm:"not null;uniqueIndex:idx_milestone_user_course_threshold"` // 25, 50, 75

	CreatedAt time.Time `json:"created_at"`
}
