package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course представляет курс (направление обучения)
type Course struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	PhotoPath   string         `json:"photo_path"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
	Lessons  []Lesson  `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

// Section группирует уроки внутри курса (только порядок, на логику не влияет)
type Section struct {
	ID       uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	CourseID uuid.UUID `json:"course_id" gorm:"type:text;not null;index"`
	Title    string    `json:"title" gorm:"not null"`
	Order    int       `json:"order" gorm:"column:sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enrollment связывает ученика с курсом; пара уникальна и не изменяется
type Enrollment struct {
	ID       uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uuid.UUID `json:"course_id" gorm:"type:text;not null;uniqueIndex:idx_enrollment_user_course"`

	CreatedAt time.Time `json:"created_at"`

	// Связи
	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
