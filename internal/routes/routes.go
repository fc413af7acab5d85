package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendafacil/agenda-api/internal/auth"
	"github.com/agendafacil/agenda-api/internal/config"
	"github.com/agendafacil/agenda-api/internal/handlers"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/repository"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// REPOSITORIES (SINGLETONS)
	// ======================================================
	userRepo := repository.NewUserGormRepository(db)
	appointmentRepo := repository.NewAppointmentGormRepository(db)
	taskRepo := repository.NewTaskGormRepository(db)

	authService := auth.NewService(userRepo, cfg.JWTSecret)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(cfg)
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(userRepo)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	spaHandler := handlers.NewSPAHandler(cfg.StaticDir)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth(authService))
		{
			secured.GET("/auth/me", meHandler.GetMe)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/tasks", taskHandler.List)
			secured.POST("/tasks", taskHandler.Create)
			secured.PUT("/tasks/:id", taskHandler.Update)
			secured.DELETE("/tasks/:id", taskHandler.Delete)
		}
	}

	// ======================================================
	// SPA FALLBACK (STATIC CLIENT)
	// ======================================================
	r.NoRoute(spaHandler.Serve)
}
