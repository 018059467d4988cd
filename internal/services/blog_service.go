package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogService управляет блогом: публикации, комментарии, лайки
type BlogService interface {
	// CreatePost создает публикацию. Доступно преподавателям и администраторам.
	CreatePost(post *models.Post, authorID uuid.UUID) error
	GetPost(id uuid.UUID) (*models.Post, error)
	ListPosts(search string, postType models.PostType) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uuid.UUID) error

	// AddComment добавляет комментарий; каждый комментарий приносит коин
	AddComment(userID, postID uuid.UUID, text string) (*models.PostComment, error)
	ListComments(postID uuid.UUID) ([]models.PostComment, error)

	// TogglePostLike ставит или снимает лайк публикации. Лайк приносит коин,
	// снятие лайка его возвращает. Возвращает true, если лайк стоит после вызова.
	TogglePostLike(userID, postID uuid.UUID) (bool, error)

	// ToggleCommentLike ставит или снимает лайк комментария.
	// Коин получает автор комментария, не лайкнувший.
	ToggleCommentLike(userID, commentID uuid.UUID) (bool, error)
}

type blogService struct {
	db       *gorm.DB
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
	coinRepo repository.CoinRepository
	ledger   LedgerService
}

// NewBlogService создает новый сервис блога
func NewBlogService(
	db *gorm.DB,
	blogRepo repository.BlogRepository,
	userRepo repository.UserRepository,
	coinRepo repository.CoinRepository,
	ledger LedgerService,
) BlogService {
	return &blogService{
		db:       db,
		blogRepo: blogRepo,
		userRepo: userRepo,
		coinRepo: coinRepo,
		ledger:   ledger,
	}
}

// CreatePost создает публикацию
func (s *blogService) CreatePost(post *models.Post, authorID uuid.UUID) error {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return err
	}
	if !author.IsTeacher() && !author.IsAdmin() {
		return ErrAccessDenied
	}
	if post.Title == "" {
		return fmt.Errorf("%w: post title is required", ErrValidation)
	}
	post.AuthorID = authorID
	return s.blogRepo.CreatePost(post)
}

// GetPost получает публикацию по ID
func (s *blogService) GetPost(id uuid.UUID) (*models.Post, error) {
	return s.blogRepo.GetPostByID(id)
}

// ListPosts получает публикации с поиском и фильтром по типу
func (s *blogService) ListPosts(search string, postType models.PostType) ([]models.Post, error) {
	return s.blogRepo.ListPosts(search, postType)
}

// UpdatePost обновляет публикацию
func (s *blogService) UpdatePost(post *models.Post) error {
	return s.blogRepo.UpdatePost(post)
}

// DeletePost удаляет публикацию
func (s *blogService) DeletePost(id uuid.UUID) error {
	return s.blogRepo.DeletePost(id)
}

// AddComment добавляет комментарий к публикации и начисляет коин.
// Комментариев может быть сколько угодно, каждый приносит коин.
func (s *blogService) AddComment(userID, postID uuid.UUID, text string) (*models.PostComment, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &models.PostComment{
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := s.blogRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	if err := s.ledger.AddCoins(userID, CoinsPerComment,
		fmt.Sprintf("Комментарий к посту: %s", post.Title)); err != nil {
		return comment, err
	}
	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityCommentPost,
		Description: fmt.Sprintf("Прокомментировал пост: %s", post.Title),
	}); err != nil {
		log.Printf("Failed to log post comment activity: %v", err)
	}
	return comment, nil
}

// ListComments получает комментарии публикации
func (s *blogService) ListComments(postID uuid.UUID) ([]models.PostComment, error) {
	return s.blogRepo.ListComments(postID)
}

// TogglePostLike переключает лайк публикации. Лайк приносит коин, снятие
// возвращает его: флаг coin_awarded и удаление строки меняются в одной
// транзакции со списанием, двойного возврата не бывает.
func (s *blogService) TogglePostLike(userID, postID uuid.UUID) (bool, error) {
	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		return false, err
	}

	existing, err := s.blogRepo.GetPostLike(postID, userID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		// снятие лайка: коин возвращается, если был начислен
		err = s.db.Transaction(func(tx *gorm.DB) error {
			if existing.CoinAwarded {
				err := s.ledger.RemoveCoinsTx(tx, userID, CoinsPerPostLike,
					fmt.Sprintf("Снял лайк с поста: %s", post.Title))
				// потраченный коин не делает снятие лайка невозможным
				if err != nil && !errors.Is(err, ErrInsufficientBalance) {
					return err
				}
			}
			return s.blogRepo.DeletePostLike(tx, existing.ID)
		})
		if err != nil {
			return true, err
		}
		return false, nil
	}

	like := &models.PostLike{
		PostID:      postID,
		UserID:      userID,
		CoinAwarded: true,
	}
	if err := s.blogRepo.CreatePostLike(like); err != nil {
		return false, err
	}
	if err := s.ledger.AddCoins(userID, CoinsPerPostLike,
		fmt.Sprintf("Лайк поста: %s", post.Title)); err != nil {
		return true, err
	}
	if err := s.coinRepo.CreateActivity(&models.ActivityLog{
		UserID:      userID,
		ActionType:  models.ActivityLikePost,
		Description: fmt.Sprintf("Лайкнул пост: %s", post.Title),
	}); err != nil {
		log.Printf("Failed to log post like activity: %v", err)
	}
	return true, nil
}

// ToggleCommentLike переключает лайк комментария. Коин достаётся автору
// комментария; лайк собственного комментария коинов не приносит.
func (s *blogService) ToggleCommentLike(userID, commentID uuid.UUID) (bool, error) {
	comment, err := s.blogRepo.GetCommentByID(commentID)
	if err != nil {
		return false, err
	}

	existing, err := s.blogRepo.GetCommentLike(commentID, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		// снятие лайка комментария коин автора не трогает
		if err := s.blogRepo.DeleteCommentLike(commentID, userID); err != nil {
			return true, err
		}
		return false, nil
	}

	like := &models.CommentLike{
		CommentID: commentID,
		UserID:    userID,
	}
	if err := s.blogRepo.CreateCommentLike(like); err != nil {
		return false, err
	}
	if comment.UserID != userID {
		if err := s.ledger.AddCoins(comment.UserID, CoinsPerCommentLike,
			"Лайк вашего комментария"); err != nil {
			return true, err
		}
	}
	return true, nil
}
