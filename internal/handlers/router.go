package handlers

import (
	"github.com/Xusanbek0039/lms-platform/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers собирает все обработчики приложения
type Handlers struct {
	Auth      *AuthHandler
	Course    *CourseHandler
	Learning  *LearningHandler
	Coin      *CoinHandler
	Message   *MessageHandler
	Market    *MarketHandler
	Blog      *BlogHandler
	Admin     *AdminHandler
	Assistant *AssistantHandler
}

// SetupRouter настраивает маршруты приложения
func SetupRouter(
	h *Handlers,
	authService services.AuthService,
	paymentService services.PaymentService,
	notifier services.NotificationService,
) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Публичные маршруты
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Авторизованные маршруты; ежедневные проверки запускаются
	// на первом запросе каждого дня
	auth := api.Group("")
	auth.Use(AuthMiddleware(authService), SweepMiddleware(paymentService, notifier))
	{
		auth.GET("/auth/me", h.Auth.Me)
		auth.POST("/auth/change-password", h.Auth.ChangePassword)

		auth.GET("/courses", h.Course.ListCourses)
		auth.GET("/courses/:id", h.Course.GetCourse)
		auth.GET("/courses/:id/lessons", h.Course.ListLessons)
		auth.POST("/courses/:id/enroll", h.Course.Enroll)
		auth.GET("/courses/:id/progress", h.Course.CourseProgress)
		auth.GET("/my/courses", h.Course.MyCourses)

		auth.POST("/videos/:id/watch", h.Learning.WatchVideo)
		auth.POST("/tests/:id/start", h.Learning.StartTest)
		auth.POST("/tests/:id/submit", h.Learning.SubmitTest)
		auth.GET("/test-results/:id", h.Learning.GetTestResult)
		auth.POST("/homeworks/:id/submit", h.Learning.SubmitHomework)

		auth.GET("/coins/balance", h.Coin.Balance)
		auth.GET("/coins/transactions", h.Coin.Transactions)

		auth.GET("/messages", h.Message.List)
		auth.GET("/messages/unread", h.Message.UnreadCount)
		auth.POST("/messages/:id/read", h.Message.MarkAsRead)

		auth.GET("/market/products", h.Market.ListProducts)
		auth.GET("/market/products/:id", h.Market.GetProduct)
		auth.POST("/market/products/:id/like", h.Market.ToggleLike)
		auth.POST("/market/products/:id/comments", h.Market.AddComment)
		auth.POST("/market/products/:id/purchase", h.Market.Purchase)

		auth.GET("/blog/posts", h.Blog.ListPosts)
		auth.GET("/blog/posts/:id", h.Blog.GetPost)
		auth.POST("/blog/posts/:id/comments", h.Blog.AddComment)
		auth.POST("/blog/posts/:id/like", h.Blog.ToggleLike)
		auth.POST("/blog/comments/:id/like", h.Blog.ToggleCommentLike)

		auth.POST("/assistant/ask", h.Assistant.Ask)
		auth.GET("/assistant/sessions", h.Assistant.ListSessions)
		auth.GET("/assistant/sessions/:id/messages", h.Assistant.ListMessages)
	}

	// Маршруты преподавателя
	teacher := auth.Group("")
	teacher.Use(TeacherOrAdminMiddleware())
	{
		teacher.POST("/courses", h.Course.CreateCourse)
		teacher.POST("/courses/:id/sections", h.Course.CreateSection)
		teacher.POST("/courses/:id/lessons", h.Course.CreateLesson)
		teacher.GET("/courses/:id/submissions", h.Learning.PendingSubmissions)
		teacher.POST("/submissions/:id/grade", h.Learning.GradeHomework)
		teacher.POST("/blog/posts", h.Blog.CreatePost)
	}

	// Маршруты администратора
	admin := auth.Group("/admin")
	admin.Use(AdminOnlyMiddleware())
	{
		admin.GET("/users", h.Admin.ListUsers)
		admin.POST("/users", h.Admin.CreateUser)
		admin.POST("/users/:id/block", h.Admin.BlockUser)
		admin.POST("/users/:id/unblock", h.Admin.UnblockUser)
		admin.POST("/users/:id/mark-paid", h.Admin.MarkPaid)
		admin.GET("/users/:id/payment", h.Admin.PaymentStatus)
		admin.POST("/users/:id/coins", h.Admin.AdjustCoins)
		admin.GET("/users/:id/coins/verify", h.Coin.Verify)
		admin.GET("/activities", h.Admin.Activities)

		admin.POST("/messages", h.Message.Send)

		admin.POST("/market/products", h.Market.CreateProduct)
		admin.PUT("/market/products/:id", h.Market.UpdateProduct)
		admin.DELETE("/market/products/:id", h.Market.DeleteProduct)
		admin.GET("/market/purchases", h.Market.ListPurchases)
		admin.POST("/market/purchases/:id/deliver", h.Market.MarkDelivered)

		admin.DELETE("/blog/posts/:id", h.Blog.DeletePost)
	}

	return router
}
