package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendafacil/agenda-api/internal/config"
)

type HealthHandler struct {
	env string
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{env: cfg.Env}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"message":     "Agenda API is running",
		"environment": h.env,
	})
}
