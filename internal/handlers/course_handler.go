package handlers

import (
	"net/http"
	"time"

	"github.com/Xusanbek0039/lms-platform/internal/models"
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CourseHandler представляет обработчик курсов и уроков
type CourseHandler struct {
	courseService   services.CourseService
	progressService services.ProgressService
}

// NewCourseHandler создает новый обработчик курсов
func NewCourseHandler(courseService services.CourseService, progressService services.ProgressService) *CourseHandler {
	return &CourseHandler{
		courseService:   courseService,
		progressService: progressService,
	}
}

// CreateCourseRequest представляет запрос создания курса
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSectionRequest представляет запрос создания раздела
type CreateSectionRequest struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
}

// CreateLessonRequest представляет запрос создания урока.
// В зависимости от типа заполняется одна из вложенных структур.
type CreateLessonRequest struct {
	Title     string            `json:"title" binding:"required"`
	Type      models.LessonType `json:"type" binding:"required"`
	SectionID *uuid.UUID        `json:"section_id"`
	Order     int               `json:"order"`

	Video *struct {
		VideoURL string `json:"video_url" binding:"required"`
		Duration int    `json:"duration"`
	} `json:"video"`

	Homework *struct {
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		MaxScore    int        `json:"max_score"`
		LatePenalty int        `json:"late_penalty"`
	} `json:"homework"`

	Test *struct {
		TimeLimit    int  `json:"time_limit"`
		PassingScore int  `json:"passing_score"`
		AllowRetry   bool `json:"allow_retry"`

		Questions []struct {
			Text    string `json:"text" binding:"required"`
			Options []struct {
				Text      string `json:"text" binding:"required"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options" binding:"required"`
		} `json:"questions"`
	} `json:"test"`
}

// ListCourses возвращает все курсы
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse возвращает курс по ID
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	course, err := h.courseService.GetCourse(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourse создает курс
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.courseService.CreateCourse(course, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// CreateSection создает раздел курса
func (h *CourseHandler) CreateSection(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section := &models.Section{
		CourseID: courseID,
		Title:    req.Title,
		Order:    req.Order,
	}
	if err := h.courseService.CreateSection(section); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

// ListLessons возвращает уроки курса
func (h *CourseHandler) ListLessons(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lessons, err := h.courseService.ListLessons(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// CreateLesson создает урок вместе с содержимым
func (h *CourseHandler) CreateLesson(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson := &models.Lesson{
		CourseID:  courseID,
		SectionID: req.SectionID,
		Title:     req.Title,
		Type:      req.Type,
		Order:     req.Order,
	}
	if err := h.courseService.AddLesson(lesson, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	switch req.Type {
	case models.LessonTypeVideo:
		if req.Video != nil {
			video := &models.VideoLesson{
				LessonID: lesson.ID,
				VideoURL: req.Video.VideoURL,
				Duration: req.Video.Duration,
			}
			if err := h.courseService.CreateVideo(video); err != nil {
				respondError(c, err)
				return
			}
			lesson.Video = video
		}
	case models.LessonTypeHomework:
		if req.Homework != nil {
			homework := &models.Homework{
				LessonID:    lesson.ID,
				Description: req.Homework.Description,
				DueDate:     req.Homework.DueDate,
				MaxScore:    req.Homework.MaxScore,
				LatePenalty: req.Homework.LatePenalty,
			}
			if err := h.courseService.CreateHomework(homework); err != nil {
				respondError(c, err)
				return
			}
			lesson.Homework = homework
		}
	case models.LessonTypeTest:
		if req.Test != nil {
			test := &models.Test{
				LessonID:     lesson.ID,
				TimeLimit:    req.Test.TimeLimit,
				PassingScore: req.Test.PassingScore,
				AllowRetry:   req.Test.AllowRetry,
			}
			if err := h.courseService.CreateTest(test); err != nil {
				respondError(c, err)
				return
			}
			for i, q := range req.Test.Questions {
				question := &models.Question{
					TestID: test.ID,
					Text:   q.Text,
					Order:  i + 1,
				}
				if err := h.courseService.CreateQuestion(question); err != nil {
					respondError(c, err)
					return
				}
				for _, o := range q.Options {
					option := &models.AnswerOption{
						QuestionID: question.ID,
						Text:       o.Text,
						IsCorrect:  o.IsCorrect,
					}
					if err := h.courseService.CreateAnswerOption(option); err != nil {
						respondError(c, err)
						return
					}
				}
			}
			lesson.Test = test
		}
	}

	c.JSON(http.StatusCreated, lesson)
}

// Enroll записывает авторизованного пользователя на курс
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	enrollment, err := h.courseService.Enroll(currentUserID(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// MyCourses возвращает курсы авторизованного пользователя
func (h *CourseHandler) MyCourses(c *gin.Context) {
	enrollments, err := h.courseService.ListEnrollments(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

// CourseProgress возвращает прогресс по курсу
func (h *CourseHandler) CourseProgress(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	completed, total, percent, err := h.progressService.CourseProgress(currentUserID(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"completed": completed,
		"total":     total,
		"percent":   percent,
	})
}
