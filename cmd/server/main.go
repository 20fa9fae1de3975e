package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/ksuda/task-workflow-api/internal/config"
	"github.com/ksuda/task-workflow-api/internal/constants"
	"github.com/ksuda/task-workflow-api/internal/database"
	"github.com/ksuda/task-workflow-api/internal/handlers"
	applogger "github.com/ksuda/task-workflow-api/internal/logger"
	"github.com/ksuda/task-workflow-api/internal/middleware"
	"github.com/ksuda/task-workflow-api/internal/repository"
	"github.com/ksuda/task-workflow-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog, err := applogger.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}
	appLog.Info("database connection established", "driver", cfg.DBDriver)

	// Run migrations
	if err := database.Migrate(); err != nil {
		appLog.Fatal("failed to run migrations", "error", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		appLog.Fatal("failed to add indexes", "error", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// CORS for the browser client
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		appLog.Fatal("failed to create Redis store", "error", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)

	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, appLog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Workflow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskID(), taskHandler.GetTask)
			tasks.POST("/:id/submit", middleware.RequireTaskID(), taskHandler.SubmitTask)
			tasks.POST("/:id/approve", middleware.RequireTaskID(), taskHandler.ApproveTask)
			tasks.POST("/:id/reject", middleware.RequireTaskID(), taskHandler.RejectTask)
			tasks.GET("/:id/comments", middleware.RequireTaskID(), taskHandler.ListComments)
			tasks.POST("/:id/comments", middleware.RequireTaskID(), taskHandler.AddComment)
			tasks.POST("/:id/checklist", middleware.RequireTaskID(), taskHandler.AddChecklistItem)
			tasks.POST("/:id/checklist/:item_id/toggle", middleware.RequireTaskID(), taskHandler.ToggleChecklistItem)
		}
	}

	// Start server
	appLog.Info("server starting", "addr", ":8080")
	if err := r.Run(":8080"); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}
}
