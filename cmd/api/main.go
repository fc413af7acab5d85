package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/agendafacil/agenda-api/internal/config"
	dbpkg "github.com/agendafacil/agenda-api/internal/db"
	"github.com/agendafacil/agenda-api/internal/logger"
	"github.com/agendafacil/agenda-api/internal/middleware"
	"github.com/agendafacil/agenda-api/internal/routes"
	"github.com/agendafacil/agenda-api/internal/validators"
)

func main() {
	// missing .env is fine, the environment wins anyway
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, !cfg.IsProduction())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == config.DevJWTSecret {
			log.Warn().Msg("JWT_SECRET is still the development default; set a real secret")
		}
	}

	db := dbpkg.NewDB(cfg)

	validators.RegisterBindings()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
