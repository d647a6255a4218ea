package api

import (
	"net/http"

	"gymhub/internal/database"
	"gymhub/internal/handlers"
	"gymhub/internal/metrics"
	"gymhub/internal/middleware"
	"gymhub/internal/models"

	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handlers *handlers.Handlers
	Users    middleware.KeyResolver
	// Metrics == nil отключает /metrics
	Metrics    *metrics.Metrics
	DB         *database.DB
	CORSOrigin string
}

// NewRouter собирает middleware и таблицу маршрутов
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(cfg.CORSOrigin),
	)
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	h := cfg.Handlers
	adminOnly := middleware.Auth(cfg.Users, cfg.Metrics, models.RoleAdmin)
	staff := middleware.Auth(cfg.Users, cfg.Metrics, models.RoleAdmin, models.RoleTrainer)

	activities := router.Group("/activities")
	{
		activities.POST("", h.CreateActivity)
		activities.GET("", h.ListActivities)
		activities.GET("/:id", h.GetActivity)
		activities.PATCH("", h.UpdateActivity)
		activities.DELETE("", h.DeleteActivity)
	}

	rooms := router.Group("/rooms")
	{
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.PATCH("", h.UpdateRoom)
		rooms.DELETE("", h.DeleteRoom)
	}

	sessions := router.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("", h.ListSessions)
		sessions.GET("/:id", h.GetSession)
		sessions.PATCH("", h.UpdateSession)
		sessions.DELETE("", h.DeleteSession)
	}
	router.GET("/top-sessions/:amount", h.TopSessions)

	bookings := router.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("", h.UpdateBooking)
		bookings.DELETE("", h.DeleteBooking)
	}
	router.GET("/my-bookings/:user_id", h.ListUserBookings)

	blogs := router.Group("/blogs")
	{
		blogs.POST("", h.CreateBlog)
		blogs.GET("", h.ListBlogs)
		blogs.GET("/:id", h.GetBlog)
		blogs.PATCH("", h.UpdateBlog)
		blogs.DELETE("", h.DeleteBlog)
	}
	router.GET("/my-blogs/:user_id", h.ListUserBlogs)

	router.POST("/upload-xml-activities", h.UploadActivities)
	router.POST("/upload-xml-rooms", h.UploadRooms)

	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)

		users.POST("", adminOnly, h.CreateUser)
		users.GET("", staff, h.ListUsers)
		users.PATCH("", staff, h.UpdateUser)
		users.DELETE("", h.DeleteUser)

		users.GET("/by-key/:key", h.GetUserByKey)
		users.GET("/:id", h.GetUser)
	}

	// Health check endpoint
	router.GET("/health", healthCheck(cfg.DB))

	return router
}

// healthCheck отдаёт состояние пула соединений
func healthCheck(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"service": "gymhub-api"}
		status := http.StatusOK

		if db != nil {
			hc := db.Health(c.Request.Context())
			body["database"] = hc
			if !hc.Healthy() {
				status = http.StatusServiceUnavailable
			}
		}

		body["status"] = status
		body["message"] = http.StatusText(status)
		c.JSON(status, body)
	}
}
