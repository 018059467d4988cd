package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostType определяет тип публикации
type PostType string

const (
	PostTypeNews         PostType = "news"
	PostTypeArticle      PostType = "article"
	PostTypeAnnouncement PostType = "announcement"
)

// Post представляет публикацию в блоге
type Post struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primary_key"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content"`
	ImagePath string         `json:"image_path"`
	AuthorID  uuid.UUID      `json:"author_id" gorm:"type:text;not null"`
	PostType  PostType       `json:"post_type" gorm:"default:'article'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Author   User          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []PostComment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes    []PostLike    `json:"likes,omitempty" gorm:"foreignKey:PostID"`
}

// PostComment представляет комментарий к публикации.
// Каждый комментарий награждается коином — намеренно без ключа идемпотентности.
type PostComment struct {
	ID     uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	PostID uuid.UUID `json:"post_id" gorm:"type:text;not null;index"`
	UserID uuid.UUID `json:"user_id" gorm:"type:text;not null"`
	Text   string    `json:"text" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	User  User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Likes []CommentLike `json:"likes,omitempty" gorm:"foreignKey:CommentID"`
}

// PostLike представляет лайк публикации; снятие лайка возвращает коин
type PostLike struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	PostID      uuid.UUID `json:"post_id" gorm:"type:text;not null;uniqueIndex:idx_post_like"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_post_like"`
	CoinAwarded bool      `json:"coin_awarded" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentLike представляет лайк комментария; коин получает автор комментария
type CommentLike struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	CommentID uuid.UUID `json:"comment_id" gorm:"type:text;not null;uniqueIndex:idx_comment_like"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:text;not null;uniqueIndex:idx_comment_like"`

	CreatedAt time.Time `json:"created_at"`
}
