package repository

import (
	"errors"

	"github.com/Xusanbek0039/lms-platform/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogRepository интерфейс для блога: посты, комментарии, лайки
type BlogRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uuid.UUID) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uuid.UUID) error
	ListPosts(search string, postType models.PostType) ([]models.Post, error)

	CreateComment(comment *models.PostComment) error
	GetCommentByID(id uuid.UUID) (*models.PostComment, error)
	ListComments(postID uuid.UUID) ([]models.PostComment, error)

	GetPostLike(postID, userID uuid.UUID) (*models.PostLike, error)
	CreatePostLike(like *models.PostLike) error
	UpdatePostLike(tx *gorm.DB, like *models.PostLike) error
	DeletePostLike(tx *gorm.DB, likeID uuid.UUID) error

	GetCommentLike(commentID, userID uuid.UUID) (*models.CommentLike, error)
	CreateCommentLike(like *models.CommentLike) error
	DeleteCommentLike(commentID, userID uuid.UUID) error
}

// blogRepository реализация репозитория блога
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository создает новый репозиторий блога
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// CreatePost создает публикацию
func (r *blogRepository) CreatePost(post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return r.db.Create(post).Error
}

// GetPostByID получает публикацию по ID вместе с автором
func (r *blogRepository) GetPostByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost обновляет публикацию
func (r *blogRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost удаляет публикацию
func (r *blogRepository) DeletePost(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}

// ListPosts получает публикации с поиском по заголовку и тексту
func (r *blogRepository) ListPosts(search string, postType models.PostType) ([]models.Post, error) {
	query := r.db.Preload("Author").Order("created_at DESC")
	if search != "" {
		query = query.Where("title LIKE ? OR content LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if postType != "" {
		query = query.Where("post_type = ?", postType)
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	return posts, err
}

// CreateComment создает комментарий к публикации
func (r *blogRepository) CreateComment(comment *models.PostComment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	return r.db.Create(comment).Error
}

// GetCommentByID получает комментарий по ID
func (r *blogRepository) GetCommentByID(id uuid.UUID) (*models.PostComment, error) {
	var comment models.PostComment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments получает комментарии публикации в порядке добавления
func (r *blogRepository) ListComments(postID uuid.UUID) ([]models.PostComment, error) {
	var comments []models.PostComment
	err := r.db.Preload("User").Where("post_id = ?", postID).
		Order("created_at").Find(&comments).Error
	return comments, err
}

// GetPostLike получает лайк публикации, nil если лайка нет
func (r *blogRepository) GetPostLike(postID, userID uuid.UUID) (*models.PostLike, error) {
	var like models.PostLike
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CreatePostLike создает лайк публикации
func (r *blogRepository) CreatePostLike(like *models.PostLike) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return r.db.Create(like).Error
}

// UpdatePostLike обновляет лайк публикации (в рамках переданной транзакции)
func (r *blogRepository) UpdatePostLike(tx *gorm.DB, like *models.PostLike) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(like).Error
}

// DeletePostLike удаляет лайк публикации (в рамках переданной транзакции)
func (r *blogRepository) DeletePostLike(tx *gorm.DB, likeID uuid.UUID) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&models.PostLike{}, "id = ?", likeID).Error
}

// GetCommentLike получает лайк комментария, nil если лайка нет
func (r *blogRepository) GetCommentLike(commentID, userID uuid.UUID) (*models.CommentLike, error) {
	var like models.CommentLike
	err := r.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateCommentLike создает лайк комментария
func (r *blogRepository) CreateCommentLike(like *models.CommentLike) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return r.db.Create(like).Error
}

// DeleteCommentLike удаляет лайк комментария
func (r *blogRepository) DeleteCommentLike(commentID, userID uuid.UUID) error {
	return r.db.Delete(&models.CommentLike{}, "comment_id = ? AND user_id = ?", commentID, userID).Error
}
