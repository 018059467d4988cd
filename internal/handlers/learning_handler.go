package handlers

import (
	"net/http"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/services"
	"github.com/Xusanbek0039/lms-platform/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LearningHandler представляет обработчик учебного процесса:
// просмотр видео, тесты, домашние задания
type LearningHandler struct {
	videoService    services.VideoService
	testService     services.TestService
	homeworkService services.HomeworkService
	storage         *storage.Storage
}

// NewLearningHandler создает новый обработчик учебного процесса
func NewLearningHandler(
	videoService services.VideoService,
	testService services.TestService,
	homeworkService services.HomeworkService,
	storage *storage.Storage,
) *LearningHandler {
	return &LearningHandler{
		videoService:    videoService,
		testService:     testService,
		homeworkService: homeworkService,
		storage:         storage,
	}
}

// SubmitTestRequest представляет ответы на тест:
// вопрос -> выбранный вариант (null — вопрос пропущен)
type SubmitTestRequest struct {
	Answers   map[uuid.UUID]*uuid.UUID `json:"answers"`
	StartedAt time.Time                `json:"started_at"`
}

// GradeHomeworkRequest представляет запрос проверки задания
type GradeHomeworkRequest struct {
	Grade    int    `json:"grade" binding:"required"`
	Feedback string `json:"feedback"`
}

// WatchVideo отмечает видео просмотренным
func (h *LearningHandler) WatchVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	progress, err := h.videoService.WatchVideo(currentUserID(c), videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// StartTest начинает попытку прохождения теста
func (h *LearningHandler) StartTest(c *gin.Context) {
	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	existing, startedAt, err := h.testService.StartTest(currentUserID(c), testID)
	if err != nil {
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "Retry is not allowed for this test",
				"result": existing,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"started_at": startedAt})
}

// SubmitTest принимает ответы и возвращает результат
func (h *LearningHandler) SubmitTest(c *gin.Context) {
	testID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.testService.SubmitTest(currentUserID(c), testID, req.Answers, req.StartedAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetTestResult возвращает результат теста вместе с ответами
func (h *LearningHandler) GetTestResult(c *gin.Context) {
	resultID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.testService.GetResult(resultID)
	if err != nil {
		respondError(c, err)
		return
	}

	user := currentUser(c)
	if user != nil && result.StudentID != user.ID && !user.IsTeacher() && !user.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitHomework принимает файл сдачи задания (multipart/form-data)
func (h *LearningHandler) SubmitHomework(c *gin.Context) {
	homeworkID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	userID := currentUserID(c)
	filePath, err := h.storage.SaveFile(file, userID, "homework")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.homeworkService.SubmitHomework(userID, homeworkID, filePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

// GradeHomework выставляет оценку за сдачу
func (h *LearningHandler) GradeHomework(c *gin.Context) {
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GradeHomeworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.homeworkService.GradeHomework(submissionID, currentUserID(c), req.Grade, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

// PendingSubmissions возвращает непроверенные сдачи по курсу
func (h *LearningHandler) PendingSubmissions(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	submissions, err := h.homeworkService.ListPendingByCourse(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}
