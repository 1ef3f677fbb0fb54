package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inboxflow/inboxflow-api/internal/api/handler"
	"github.com/inboxflow/inboxflow-api/internal/api/middleware"
	"github.com/inboxflow/inboxflow-api/internal/core/ports"
	"github.com/inboxflow/inboxflow-api/internal/core/service"
)

// Dependencies carries everything the router wires together. Repositories
// and the session store are injected so the storage backend stays a startup
// decision, never a handler concern.
type Dependencies struct {
	Users         ports.UserRepository
	Tasks         ports.TaskRepository
	Notifications ports.NotificationRepository
	Sessions      ports.SessionStore
	Mailer        ports.Mailer
	Logger        zerolog.Logger

	// SecureCookies marks the session cookie Secure; enabled in production.
	SecureCookies bool

	// Mongo and Redis are only used by the readiness probe and may be nil
	// when the memory backend is active.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echoprometheus.NewMiddleware("inboxflow"))

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.Users, deps.Notifications, deps.Mailer, deps.Logger)
	taskService := service.NewTaskService(deps.Tasks, deps.Notifications, deps.Logger)
	notificationService := service.NewNotificationService(deps.Notifications)

	authHandler := handler.NewAuthHandler(authService, deps.Sessions, deps.SecureCookies)
	taskHandler := handler.NewTaskHandler(taskService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	session := middleware.Session(deps.Sessions)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/logout", authHandler.Logout, session)
	auth.GET("/me", authHandler.Me, session)
	auth.PUT("/me", authHandler.UpdateMe, session)

	// --- Task routes (all protected) ---
	tasks := e.Group("/api/tasks", session)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/categories", taskHandler.Categories)
	tasks.POST("/import-email", taskHandler.ImportEmail)
	tasks.POST("/import-file", taskHandler.ImportFile)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.GET("/:id/export-pdf", taskHandler.ExportPDF)
	tasks.GET("/:id/export-docx", taskHandler.ExportDOCX)

	// --- Notification routes (all protected) ---
	notifications := e.Group("/api/notifications", session)
	notifications.GET("", notificationHandler.List)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
