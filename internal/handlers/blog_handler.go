package handlers

import (
	"net/http"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
)

// BlogHandler представляет обработчик блога
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler создает новый обработчик блога
func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// PostRequest представляет запрос создания публикации
type PostRequest struct {
	Title    string          `json:"title" binding:"required"`
	Content  string          `json:"content"`
	PostType models.PostType `json:"post_type"`
}

// PostCommentRequest представляет запрос добавления комментария
type PostCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListPosts возвращает публикации с поиском и фильтром по типу
func (h *BlogHandler) ListPosts(c *gin.Context) {
	posts, err := h.blogService.ListPosts(c.Query("search"), models.PostType(c.Query("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost возвращает публикацию вместе с комментариями
func (h *BlogHandler) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	post, err := h.blogService.GetPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	comments, err := h.blogService.ListComments(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     post,
		"comments": comments,
	})
}

// CreatePost создает публикацию (преподаватель или администратор)
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		PostType: req.PostType,
	}
	if post.PostType == "" {
		post.PostType = models.PostTypeArticle
	}
	if err := h.blogService.CreatePost(post, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeletePost удаляет публикацию
func (h *BlogHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.blogService.DeletePost(postID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddComment добавляет комментарий к публикации
func (h *BlogHandler) AddComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.blogService.AddComment(currentUserID(c), postID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ToggleLike ставит или снимает лайк публикации
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, err := h.blogService.TogglePostLike(currentUserID(c), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleCommentLike ставит или снимает лайк комментария
func (h *BlogHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	liked, err := h.blogService.ToggleCommentLike(currentUserID(c), commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
