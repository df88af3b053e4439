package router

import (
	"context"

	"todo-list/backend/internal/config"
	"todo-list/backend/internal/handlers"
	"todo-list/backend/internal/middleware"
	"todo-list/backend/internal/monitoring"
	"todo-list/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New wires the handlers, services and middleware into a gin engine.
func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	todoService := services.NewTodoService()
	userService := services.NewUserService(cfg.Auth.BCryptCost)
	registerService := services.NewRegisterService(cfg.Auth.BCryptCost)
	authService := services.NewAuthService(cfg.Auth)
	blacklistService := services.NewBlacklistService()

	todoHandler := handlers.NewTodoHandler(db, todoService)
	userHandler := handlers.NewUserHandler(db, userService, registerService)
	registerHandler := handlers.NewRegisterHandler(db, registerService, logger)
	authHandler := handlers.NewAuthHandler(db, authService)
	logoutHandler := handlers.NewLogoutHandler(db, blacklistService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RecoveryWithLog(logger))
	r.Use(monitoring.MetricsMiddleware())
	r.Use(cors.Default())

	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}

	healthChecker := monitoring.NewHealthChecker()
	healthChecker.Register("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	r.GET("/health", healthChecker.Handler)
	r.GET("/metrics", monitoring.MetricsHandler)

	authz := middleware.AuthzMiddleware(middleware.AuthzConfig{
		Secret:    []byte(cfg.Auth.JWTSecret),
		DB:        db,
		Blacklist: blacklistService,
	})

	todos := r.Group("/api/todoes", authz)
	{
		todos.GET("", todoHandler.GetTodos)
		todos.GET("/:id", todoHandler.GetTodoByID)
		todos.POST("", todoHandler.CreateTodo)
		todos.PUT("/:id", todoHandler.UpdateTodo)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}

	users := r.Group("/api/user")
	{
		users.GET("", userHandler.GetUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.POST("", userHandler.CreateUser)
		users.POST("/Register", registerHandler.Registration)
		users.POST("/Login", authHandler.Login)
		users.POST("/Logout", logoutHandler.Logout)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	return r
}
