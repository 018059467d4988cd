package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonType определяет тип элемента урока
type LessonType string

const (
	LessonTypeVideo    LessonType = "video"
	LessonTypeHomework LessonType = "homework"
	LessonTypeTest     LessonType = "test"
)

// Lesson представляет элемент курса: видео, домашнее задание или тест.
// Тип определяет, какая из дочерних записей заполнена.
type Lesson struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	SectionID *uuid.UUID     `json:"section_id" gorm:"type:text"`
	Title     string         `json:"title" gorm:"not null"`
	Type      LessonType     `json:"type" gorm:"not null"`
	Order     int            `json:"order" gorm:"column:sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Course   Course       `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Section  *Section     `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Video    *VideoLesson `json:"video,omitempty" gorm:"foreignKey:LessonID"`
	Homework *Homework    `json:"homework,omitempty" gorm:"foreignKey:LessonID"`
	Test     *Test        `json:"test,omitempty" gorm:"foreignKey:LessonID"`
}

// VideoLesson представляет видеоурок
type VideoLesson struct {
	ID       uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	LessonID uuid.UUID `json:"lesson_id" gorm:"type:text;uniqueIndex;not null"`
	VideoURL string    `json:"video_url"`
	Duration int       `json:"duration"` // секунды

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

// Homework представляет домашнее задание
type Homework struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	LessonID    uuid.UUID  `json:"lesson_id" gorm:"type:text;uniqueIndex;not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	MaxScore    int        `json:"max_score" gorm:"default:100"`
	LatePenalty int        `json:"late_penalty" gorm:"default:0"` // процент штрафа за опоздание

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

// Test представляет тест урока
type Test struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	LessonID     uuid.UUID `json:"lesson_id" gorm:"type:text;uniqueIndex;not null"`
	TimeLimit    int       `json:"time_limit"` // минуты, 0 — без ограничения
	PassingScore int       `json:"passing_score" gorm:"default:60"`
	AllowRetry   bool      `json:"allow_retry" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Lesson    Lesson     `json:"-" gorm:"foreignKey:LessonID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID"`
}

// Question представляет вопрос теста
type Question struct {
	ID     uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	TestID uuid.UUID `json:"test_id" gorm:"type:text;not null;index"`
	Text   string    `json:"text" gorm:"not null"`
	Order  int       `json:"order" gorm:"column:sort_order"`

	CreatedAt time.Time `json:"created_at"`

	Options []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

// AnswerOption представляет вариант ответа на вопрос
type AnswerOption struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:text;not null;index"`
	Text       string    `json:"text" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
}
